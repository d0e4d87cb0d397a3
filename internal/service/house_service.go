package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	hr "house_rental"
	"house_rental/internal/models"
	"house_rental/internal/repository"

	"github.com/google/uuid"
)

type HouseService struct {
	houses   repository.Houses
	activity Activity
	limits   UploadLimits
}

func NewHouseService(houses repository.Houses, activity Activity, limits UploadLimits) *HouseService {
	return &HouseService{houses: houses, activity: activity, limits: limits}
}

func validateHouse(h models.House, maxPhotos int) error {
	var problems []string
	if strings.TrimSpace(h.Name) == "" {
		problems = append(problems, "name is required")
	}
	if h.NumberOfRooms < 0 {
		problems = append(problems, "numberOfRooms must be >= 0")
	}
	if h.MaxGuest < 0 {
		problems = append(problems, "maxGuest must be >= 0")
	}
	if h.PricePerNight < 0 {
		problems = append(problems, "pricePerNight must be >= 0")
	}
	if h.SharedBetween < 0 {
		problems = append(problems, "sharedBetween must be >= 0")
	}
	if maxPhotos > 0 && len(h.Photos) > maxPhotos {
		problems = append(problems, fmt.Sprintf("a house holds at most %d photos", maxPhotos))
	}
	if len(problems) > 0 {
		return hr.Errorf(hr.ErrValidation, "%s", strings.Join(problems, "; "))
	}
	return nil
}

// cloneStrings returns a non-nil copy of xs.
func cloneStrings(xs []string) []string {
	out := make([]string, len(xs))
	copy(out, xs)
	return out
}

// Create stores a new house owned by ownerID. reservedBy starts empty.
func (s *HouseService) Create(ctx context.Context, ownerID string, in HouseInput) (models.House, error) {
	now := time.Now().UTC()
	h := models.House{
		ID:            uuid.NewString(),
		Owner:         ownerID,
		Name:          strings.TrimSpace(in.Name),
		Description:   strings.TrimSpace(in.Description),
		NumberOfRooms: in.NumberOfRooms,
		MaxGuest:      in.MaxGuest,
		PricePerNight: in.PricePerNight,
		Location:      strings.TrimSpace(in.Location),
		Amenities:     cloneStrings(in.Amenities),
		SharedBetween: in.SharedBetween,
		Photos:        cloneStrings(in.Photos),
		ReservedBy:    nil,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := validateHouse(h, s.limits.MaxHousePhotos); err != nil {
		return models.House{}, err
	}
	if err := s.houses.Create(ctx, h); err != nil {
		return models.House{}, hr.StorageErr("create house", err)
	}

	s.activity.Record(ctx, models.Activity{
		Type:        models.ActivityHouseCreated,
		Actor:       ownerID,
		Subject:     h.ID,
		Description: fmt.Sprintf("house %q created", h.Name),
	})
	return h, nil
}

func (s *HouseService) List(ctx context.Context) ([]models.House, error) {
	hs, err := s.houses.List(ctx)
	if err != nil {
		return nil, hr.StorageErr("list houses", err)
	}
	return hs, nil
}

// Get returns the house or ErrNotFound. Malformed ids cannot exist and are
// reported as not found.
func (s *HouseService) Get(ctx context.Context, id string) (models.House, error) {
	if !isID(id) {
		return models.House{}, hr.Errorf(hr.ErrNotFound, "house %q not found", id)
	}
	h, err := s.houses.GetByID(ctx, id)
	if err != nil {
		return models.House{}, hr.StorageErr("get house", err)
	}
	if h == nil {
		return models.House{}, hr.Errorf(hr.ErrNotFound, "house %q not found", id)
	}
	return *h, nil
}

func (s *HouseService) ListByOwner(ctx context.Context, ownerID string) ([]models.House, error) {
	hs, err := s.houses.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, hr.StorageErr("list houses by owner", err)
	}
	return hs, nil
}

// owned loads a house and checks that requesterID owns it.
func (s *HouseService) owned(ctx context.Context, id, requesterID string) (models.House, error) {
	h, err := s.Get(ctx, id)
	if err != nil {
		return models.House{}, err
	}
	if h.Owner != requesterID {
		return models.House{}, hr.Errorf(hr.ErrForbidden, "house %q is not owned by the requester", id)
	}
	return h, nil
}

// validatePatch checks each provided field on its own; no rule spans two
// fields, so a valid patch over a valid house stays valid.
func validatePatch(p HousePatch, maxPhotos int) error {
	var problems []string
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		problems = append(problems, "name must not be empty")
	}
	for field, v := range map[string]*int{
		"numberOfRooms": p.NumberOfRooms,
		"maxGuest":      p.MaxGuest,
		"sharedBetween": p.SharedBetween,
	} {
		if v != nil && *v < 0 {
			problems = append(problems, field+" must be >= 0")
		}
	}
	if p.PricePerNight != nil && *p.PricePerNight < 0 {
		problems = append(problems, "pricePerNight must be >= 0")
	}
	if p.Photos != nil && maxPhotos > 0 && len(*p.Photos) > maxPhotos {
		problems = append(problems, fmt.Sprintf("a house holds at most %d photos", maxPhotos))
	}
	if len(problems) > 0 {
		sort.Strings(problems)
		return hr.Errorf(hr.ErrValidation, "%s", strings.Join(problems, "; "))
	}
	return nil
}

func trimmed(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	return &v
}

// changes converts the patch into the store's field list.
func (p HousePatch) changes(now time.Time) repository.HouseChanges {
	c := repository.HouseChanges{
		Name:          trimmed(p.Name),
		Description:   trimmed(p.Description),
		NumberOfRooms: p.NumberOfRooms,
		MaxGuest:      p.MaxGuest,
		PricePerNight: p.PricePerNight,
		Location:      trimmed(p.Location),
		SharedBetween: p.SharedBetween,
		UpdatedAt:     now,
	}
	if p.Amenities != nil {
		xs := cloneStrings(*p.Amenities)
		c.Amenities = &xs
	}
	if p.Photos != nil {
		xs := cloneStrings(*p.Photos)
		c.Photos = &xs
	}
	return c
}

// Update merges the provided fields into the house. Only the owner may update.
// Only the patched fields are written, so a concurrent update of other fields
// survives.
func (s *HouseService) Update(ctx context.Context, id, requesterID string, p HousePatch) (models.House, error) {
	if _, err := s.owned(ctx, id, requesterID); err != nil {
		return models.House{}, err
	}
	if err := validatePatch(p, s.limits.MaxHousePhotos); err != nil {
		return models.House{}, err
	}

	h, err := s.houses.Update(ctx, id, p.changes(time.Now().UTC()))
	if err != nil {
		// deleted between lookup and write
		if errors.Is(err, hr.ErrNotFound) {
			return models.House{}, err
		}
		return models.House{}, hr.StorageErr("update house", err)
	}

	s.activity.Record(ctx, models.Activity{
		Type:        models.ActivityHouseUpdated,
		Actor:       requesterID,
		Subject:     h.ID,
		Description: fmt.Sprintf("house %q updated", h.Name),
	})
	return *h, nil
}

// Delete removes the house and returns the deleted record. Photos that
// reference the house are kept.
func (s *HouseService) Delete(ctx context.Context, id, requesterID string) (models.House, error) {
	h, err := s.owned(ctx, id, requesterID)
	if err != nil {
		return models.House{}, err
	}
	if err := s.houses.Delete(ctx, id); err != nil {
		if errors.Is(err, hr.ErrNotFound) {
			return models.House{}, err
		}
		return models.House{}, hr.StorageErr("delete house", err)
	}

	s.activity.Record(ctx, models.Activity{
		Type:        models.ActivityHouseDeleted,
		Actor:       requesterID,
		Subject:     h.ID,
		Description: fmt.Sprintf("house %q deleted", h.Name),
	})
	return h, nil
}
