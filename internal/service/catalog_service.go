package service

import (
	"context"
	"errors"
	"strings"

	hr "house_rental"
	"house_rental/internal/models"
	"house_rental/internal/repository"

	"github.com/google/uuid"
)

type AmenityService struct {
	amenities repository.Amenities
}

func NewAmenityService(amenities repository.Amenities) *AmenityService {
	return &AmenityService{amenities: amenities}
}

func (s *AmenityService) Create(ctx context.Context, in AmenityInput) (models.Amenity, error) {
	a := models.Amenity{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
	}
	if a.Name == "" {
		return models.Amenity{}, hr.Errorf(hr.ErrValidation, "name is required")
	}
	if err := s.amenities.Create(ctx, a); err != nil {
		return models.Amenity{}, hr.StorageErr("create amenity", err)
	}
	return a, nil
}

func (s *AmenityService) List(ctx context.Context) ([]models.Amenity, error) {
	as, err := s.amenities.List(ctx)
	if err != nil {
		return nil, hr.StorageErr("list amenities", err)
	}
	return as, nil
}

// Delete removes the amenity and returns it. Houses keep their references.
func (s *AmenityService) Delete(ctx context.Context, id string) (models.Amenity, error) {
	if !isID(id) {
		return models.Amenity{}, hr.Errorf(hr.ErrNotFound, "amenity %q not found", id)
	}
	a, err := s.amenities.GetByID(ctx, id)
	if err != nil {
		return models.Amenity{}, hr.StorageErr("get amenity", err)
	}
	if a == nil {
		return models.Amenity{}, hr.Errorf(hr.ErrNotFound, "amenity %q not found", id)
	}
	if err := s.amenities.Delete(ctx, id); err != nil {
		if errors.Is(err, hr.ErrNotFound) {
			return models.Amenity{}, err
		}
		return models.Amenity{}, hr.StorageErr("delete amenity", err)
	}
	return *a, nil
}

type LocationService struct {
	locations repository.Locations
}

func NewLocationService(locations repository.Locations) *LocationService {
	return &LocationService{locations: locations}
}

func (s *LocationService) Create(ctx context.Context, in LocationInput) (models.Location, error) {
	l := models.Location{
		ID:        uuid.NewString(),
		Address:   strings.TrimSpace(in.Address),
		City:      strings.TrimSpace(in.City),
		Country:   strings.TrimSpace(in.Country),
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
	}
	if l.Address == "" || l.City == "" || l.Country == "" {
		return models.Location{}, hr.Errorf(hr.ErrValidation, "address, city and country are required")
	}
	if l.Latitude < -90 || l.Latitude > 90 {
		return models.Location{}, hr.Errorf(hr.ErrValidation, "latitude must be within [-90, 90]")
	}
	if l.Longitude < -180 || l.Longitude > 180 {
		return models.Location{}, hr.Errorf(hr.ErrValidation, "longitude must be within [-180, 180]")
	}
	if err := s.locations.Create(ctx, l); err != nil {
		return models.Location{}, hr.StorageErr("create location", err)
	}
	return l, nil
}

func (s *LocationService) Get(ctx context.Context, id string) (models.Location, error) {
	if !isID(id) {
		return models.Location{}, hr.Errorf(hr.ErrNotFound, "location %q not found", id)
	}
	l, err := s.locations.GetByID(ctx, id)
	if err != nil {
		return models.Location{}, hr.StorageErr("get location", err)
	}
	if l == nil {
		return models.Location{}, hr.Errorf(hr.ErrNotFound, "location %q not found", id)
	}
	return *l, nil
}
