package service

import (
	"context"

	"house_rental/internal/logger"
	"house_rental/internal/models"
	"house_rental/internal/repository"
	"house_rental/internal/storage"
)

// Authorization covers the credential store and the token service.
type Authorization interface {
	Register(ctx context.Context, in RegisterInput) (models.User, error)
	Login(ctx context.Context, email, password string) (models.User, string, error)
	ParseToken(accessToken string) (string, error)
	GetProfile(ctx context.Context, userID string) (models.User, error)
	UpdateProfile(ctx context.Context, userID, requesterID string, in ProfileInput) (models.User, error)
}

// Houses is the owned rental resource. Update and Delete check ownership
// after the lookup.
type Houses interface {
	Create(ctx context.Context, ownerID string, in HouseInput) (models.House, error)
	List(ctx context.Context) ([]models.House, error)
	Get(ctx context.Context, id string) (models.House, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.House, error)
	Update(ctx context.Context, id, requesterID string, p HousePatch) (models.House, error)
	Delete(ctx context.Context, id, requesterID string) (models.House, error)
}

// Photos stores uploaded images and their records.
type Photos interface {
	Upload(ctx context.Context, requesterID string, req UploadRequest) ([]string, error)
	Get(ctx context.Context, id string) (models.HousePhoto, error)
	List(ctx context.Context) ([]models.HousePhoto, error)
}

type Amenities interface {
	Create(ctx context.Context, in AmenityInput) (models.Amenity, error)
	List(ctx context.Context) ([]models.Amenity, error)
	Delete(ctx context.Context, id string) (models.Amenity, error)
}

type Locations interface {
	Create(ctx context.Context, in LocationInput) (models.Location, error)
	Get(ctx context.Context, id string) (models.Location, error)
}

// Activity is the append-only audit log of house mutations.
type Activity interface {
	Record(ctx context.Context, a models.Activity)
	List(ctx context.Context, f ActivityFilter) ([]models.Activity, error)
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Houses    Houses
	Photos    Photos
	Amenities Amenities
	Locations Locations
	Activity  Activity
}

// Deps carries what the services need besides the repositories.
type Deps struct {
	Storage *storage.FileStorage
	Log     *logger.Logger
	Auth    AuthConfig
	Upload  UploadLimits
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, deps Deps) *Service {
	activity := NewActivityService(repos.Activity, deps.Log)
	return &Service{
		Authorization: NewAuthService(repos.Users, deps.Auth),
		Houses:        NewHouseService(repos.Houses, activity, deps.Upload),
		Photos:        NewPhotoService(repos.Photos, repos.Houses, deps.Storage, activity, deps.Upload),
		Amenities:     NewAmenityService(repos.Amenities),
		Locations:     NewLocationService(repos.Locations),
		Activity:      activity,
	}
}
