package service

import (
	"io"
	"time"
)

type RegisterInput struct {
	FirstName       string
	LastName        string
	Email           string
	PhoneNumber     string
	Password        string
	ConfirmPassword string
}

// ProfileInput holds the profile fields a user may change.
type ProfileInput struct {
	FirstName   *string
	LastName    *string
	PhoneNumber *string
}

type HouseInput struct {
	Name          string
	Description   string
	NumberOfRooms int
	MaxGuest      int
	PricePerNight float64
	Location      string
	Amenities     []string
	SharedBetween int
	Photos        []string
}

// HousePatch carries the fields to merge; nil means "leave unchanged".
type HousePatch struct {
	Name          *string
	Description   *string
	NumberOfRooms *int
	MaxGuest      *int
	PricePerNight *float64
	Location      *string
	Amenities     *[]string
	SharedBetween *int
	Photos        *[]string
}

// UploadFile is one file of a multipart upload.
type UploadFile struct {
	Name string
	Size int64
	Open func() (io.ReadCloser, error)
}

// UploadRequest is a photo upload. HouseID is optional; when set the stored
// paths are appended to that house.
type UploadRequest struct {
	Files   []UploadFile
	HouseID string
}

type AmenityInput struct {
	Name        string
	Description string
}

type LocationInput struct {
	Address   string
	City      string
	Country   string
	Latitude  float64
	Longitude float64
}

// ActivityFilter supports history filtering by time range and type.
type ActivityFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "HOUSE_CREATED", "HOUSE_UPDATED", "HOUSE_DELETED", "PHOTO_UPLOADED"
	// Actor limits entries to one user's actions; empty means everyone.
	Actor string
}

// AuthConfig configures token signing.
type AuthConfig struct {
	SigningKey []byte
	TokenTTL   time.Duration
}

// UploadLimits bounds photo uploads.
type UploadLimits struct {
	MaxFiles       int   // per request
	MaxHousePhotos int   // per house
	MaxFileBytes   int64 // per file; 0 disables the check
}
