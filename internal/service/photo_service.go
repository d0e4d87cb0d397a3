package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	hr "house_rental"
	"house_rental/internal/models"
	"house_rental/internal/repository"
	"house_rental/internal/storage"

	"github.com/google/uuid"
)

const photoFolder = "houses"

type PhotoService struct {
	photos   repository.Photos
	houses   repository.Houses
	files    *storage.FileStorage
	activity Activity
	limits   UploadLimits
}

func NewPhotoService(photos repository.Photos, houses repository.Houses, files *storage.FileStorage, activity Activity, limits UploadLimits) *PhotoService {
	return &PhotoService{photos: photos, houses: houses, files: files, activity: activity, limits: limits}
}

// checkFiles enforces the per-request count and per-file size limits.
func (s *PhotoService) checkFiles(files []UploadFile) error {
	if len(files) == 0 {
		return hr.Errorf(hr.ErrValidation, "no files uploaded")
	}
	if s.limits.MaxFiles > 0 && len(files) > s.limits.MaxFiles {
		return hr.Errorf(hr.ErrValidation, "too many files: %d (max %d)", len(files), s.limits.MaxFiles)
	}
	for _, f := range files {
		if s.limits.MaxFileBytes > 0 && f.Size > s.limits.MaxFileBytes {
			return hr.Errorf(hr.ErrValidation, "file %q exceeds %d bytes", f.Name, s.limits.MaxFileBytes)
		}
	}
	return nil
}

// targetHouse resolves the optional house the photos are attached to.
func (s *PhotoService) targetHouse(ctx context.Context, houseID, requesterID string, incoming int) (*models.House, error) {
	if houseID == "" {
		return nil, nil
	}
	if !isID(houseID) {
		return nil, hr.Errorf(hr.ErrValidation, "malformed house id %q", houseID)
	}
	h, err := s.houses.GetByID(ctx, houseID)
	if err != nil {
		return nil, hr.StorageErr("get house", err)
	}
	if h == nil {
		return nil, hr.Errorf(hr.ErrNotFound, "house %q not found", houseID)
	}
	if h.Owner != requesterID {
		return nil, hr.Errorf(hr.ErrForbidden, "house %q is not owned by the requester", houseID)
	}
	if limit := s.limits.MaxHousePhotos; limit > 0 && len(h.Photos)+incoming > limit {
		return nil, hr.Errorf(hr.ErrValidation, "house %q already has %d photos (max %d)", houseID, len(h.Photos), limit)
	}
	return h, nil
}

// Upload validates every limit before writing anything, then stores each file
// and a HousePhoto record per file. Any later failure removes the records and
// files written so far.
func (s *PhotoService) Upload(ctx context.Context, requesterID string, req UploadRequest) ([]string, error) {
	if err := s.checkFiles(req.Files); err != nil {
		return nil, err
	}
	house, err := s.targetHouse(ctx, req.HouseID, requesterID, len(req.Files))
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(req.Files))
	records := make([]models.HousePhoto, 0, len(req.Files))
	rollback := func() {
		// cleanup must outlive a cancelled request
		cctx := context.WithoutCancel(ctx)
		for _, rec := range records {
			_ = s.photos.Delete(cctx, rec.ID)
		}
		for _, p := range paths {
			_ = s.files.Remove(p)
		}
	}

	for _, f := range req.Files {
		p, err := s.saveFile(ctx, f)
		if err != nil {
			rollback()
			return nil, err
		}
		paths = append(paths, p)

		rec := models.HousePhoto{
			ID:        uuid.NewString(),
			House:     req.HouseID,
			Path:      p,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.photos.Create(ctx, rec); err != nil {
			rollback()
			return nil, hr.StorageErr("create house photo", err)
		}
		records = append(records, rec)
	}

	if house != nil {
		_, err := s.houses.AttachPhotos(ctx, house.ID, paths, s.limits.MaxHousePhotos, time.Now().UTC())
		if err != nil {
			rollback()
			// deleted or filled up since targetHouse
			if errors.Is(err, hr.ErrNotFound) || errors.Is(err, hr.ErrValidation) {
				return nil, err
			}
			return nil, hr.StorageErr("attach photos to house", err)
		}
	}

	for _, rec := range records {
		s.activity.Record(ctx, models.Activity{
			Type:        models.ActivityPhotoUploaded,
			Actor:       requesterID,
			Subject:     rec.ID,
			Description: fmt.Sprintf("photo %s uploaded", rec.Path),
		})
	}
	return paths, nil
}

func (s *PhotoService) saveFile(ctx context.Context, f UploadFile) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", hr.Errorf(hr.ErrValidation, "cannot read file %q: %v", f.Name, err)
	}
	defer rc.Close()

	p, err := s.files.SaveImage(ctx, photoFolder, rc)
	if err != nil {
		if errors.Is(err, storage.ErrNotImage) {
			return "", hr.Errorf(hr.ErrValidation, "file %q: %v", f.Name, err)
		}
		return "", hr.StorageErr("store file", err)
	}
	return p, nil
}

// Get returns the photo record; malformed ids are a validation error.
func (s *PhotoService) Get(ctx context.Context, id string) (models.HousePhoto, error) {
	if !isID(id) {
		return models.HousePhoto{}, hr.Errorf(hr.ErrValidation, "malformed photo id %q", id)
	}
	p, err := s.photos.GetByID(ctx, id)
	if err != nil {
		return models.HousePhoto{}, hr.StorageErr("get house photo", err)
	}
	if p == nil {
		return models.HousePhoto{}, hr.Errorf(hr.ErrNotFound, "photo %q not found", id)
	}
	return *p, nil
}

func (s *PhotoService) List(ctx context.Context) ([]models.HousePhoto, error) {
	ps, err := s.photos.List(ctx)
	if err != nil {
		return nil, hr.StorageErr("list house photos", err)
	}
	return ps, nil
}
