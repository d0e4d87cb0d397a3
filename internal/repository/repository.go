package repository

import (
	"context"
	"database/sql"
	"time"

	"house_rental/internal/models"
)

// Lookups return (nil, nil) when the record does not exist.

type Users interface {
	Create(ctx context.Context, u models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, u models.User) error
}

// Houses writes only the fields it is given, so concurrent updates of
// different fields never undo each other. Update and AttachPhotos return the
// stored house after the write, or ErrNotFound.
type Houses interface {
	Create(ctx context.Context, h models.House) error
	List(ctx context.Context) ([]models.House, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.House, error)
	GetByID(ctx context.Context, id string) (*models.House, error)
	Update(ctx context.Context, id string, c HouseChanges) (*models.House, error)
	// AttachPhotos appends paths unless the house would then hold more than
	// limit photos (ErrValidation). limit <= 0 disables the check.
	AttachPhotos(ctx context.Context, id string, paths []string, limit int, at time.Time) (*models.House, error)
	Delete(ctx context.Context, id string) error
}

// HouseChanges lists the house fields to overwrite; nil fields keep their
// stored value. UpdatedAt is always written.
type HouseChanges struct {
	Name          *string
	Description   *string
	NumberOfRooms *int
	MaxGuest      *int
	PricePerNight *float64
	Location      *string
	Amenities     *[]string
	SharedBetween *int
	Photos        *[]string
	UpdatedAt     time.Time
}

// Apply returns h with the changes merged in.
func (c HouseChanges) Apply(h models.House) models.House {
	if c.Name != nil {
		h.Name = *c.Name
	}
	if c.Description != nil {
		h.Description = *c.Description
	}
	if c.NumberOfRooms != nil {
		h.NumberOfRooms = *c.NumberOfRooms
	}
	if c.MaxGuest != nil {
		h.MaxGuest = *c.MaxGuest
	}
	if c.PricePerNight != nil {
		h.PricePerNight = *c.PricePerNight
	}
	if c.Location != nil {
		h.Location = *c.Location
	}
	if c.Amenities != nil {
		h.Amenities = append([]string{}, *c.Amenities...)
	}
	if c.SharedBetween != nil {
		h.SharedBetween = *c.SharedBetween
	}
	if c.Photos != nil {
		h.Photos = append([]string{}, *c.Photos...)
	}
	h.UpdatedAt = c.UpdatedAt
	return h
}

type Photos interface {
	Create(ctx context.Context, p models.HousePhoto) error
	GetByID(ctx context.Context, id string) (*models.HousePhoto, error)
	List(ctx context.Context) ([]models.HousePhoto, error)
	Delete(ctx context.Context, id string) error
}

type Amenities interface {
	Create(ctx context.Context, a models.Amenity) error
	GetByID(ctx context.Context, id string) (*models.Amenity, error)
	List(ctx context.Context) ([]models.Amenity, error)
	Delete(ctx context.Context, id string) error
}

type Locations interface {
	Create(ctx context.Context, l models.Location) error
	GetByID(ctx context.Context, id string) (*models.Location, error)
}

type ActivityRepo interface {
	Append(ctx context.Context, a models.Activity) error
	// List filters by the inclusive [from, to] range, type and actor; zero
	// values disable a filter.
	List(ctx context.Context, from, to time.Time, typ, actor string) ([]models.Activity, error)
}

type Repository struct {
	Users     Users
	Houses    Houses
	Photos    Photos
	Amenities Amenities
	Locations Locations
	Activity  ActivityRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:     NewUserRepository(db),
		Houses:    NewHouseSQLite(db),
		Photos:    NewPhotoSQLite(db),
		Amenities: NewAmenitySQLite(db),
		Locations: NewLocationSQLite(db),
		Activity:  NewActivitySQLite(db),
	}
}
