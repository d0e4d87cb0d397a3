package service

import (
	"context"
	"strings"
	"time"

	hr "house_rental"
	"house_rental/internal/logger"
	"house_rental/internal/models"
	"house_rental/internal/repository"
)

type ActivityService struct {
	repo repository.ActivityRepo
	log  *logger.Logger
}

func NewActivityService(repo repository.ActivityRepo, log *logger.Logger) *ActivityService {
	return &ActivityService{repo: repo, log: log}
}

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeActivityType trims spaces and uppercases the type filter.
func normalizeActivityType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f ActivityFilter) (ActivityFilter, error) {
	out := ActivityFilter{
		From:  normalizeToUTC(f.From),
		To:    normalizeToUTC(f.To),
		Type:  normalizeActivityType(f.Type),
		Actor: strings.TrimSpace(f.Actor),
	}
	if !out.From.IsZero() && !out.To.IsZero() && out.From.After(out.To) {
		return ActivityFilter{}, hr.Errorf(hr.ErrValidation, "invalid time range: from must be <= to")
	}
	return out, nil
}

// Record appends to the log. It never fails the caller; errors are logged.
func (s *ActivityService) Record(ctx context.Context, a models.Activity) {
	if err := s.repo.Append(ctx, a); err != nil && s.log != nil {
		s.log.Errorw("activity_record_failed", "type", a.Type, "subject", a.Subject, "err", err)
	}
}

func (s *ActivityService) List(ctx context.Context, f ActivityFilter) ([]models.Activity, error) {
	f, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	out, err := s.repo.List(ctx, f.From, f.To, f.Type, f.Actor)
	if err != nil {
		return nil, hr.StorageErr("list activity", err)
	}
	return out, nil
}
