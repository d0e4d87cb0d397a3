package models

import "time"

// House is a rental listing. Owner is the only user allowed to mutate it.
type House struct {
	ID            string    `json:"id" bson:"_id"`
	Owner         string    `json:"owner" bson:"owner"`
	Name          string    `json:"name" bson:"name"`
	Description   string    `json:"description" bson:"description"`
	NumberOfRooms int       `json:"numberOfRooms" bson:"numberOfRooms"`
	MaxGuest      int       `json:"maxGuest" bson:"maxGuest"`
	PricePerNight float64   `json:"pricePerNight" bson:"pricePerNight"`
	Location      string    `json:"location,omitempty" bson:"location,omitempty"`
	Amenities     []string  `json:"amenities" bson:"amenities"`
	SharedBetween int       `json:"sharedBetween" bson:"sharedBetween"`
	Photos        []string  `json:"photos" bson:"photos"`
	ReservedBy    *string   `json:"reservedBy" bson:"reservedBy"` // nil means not rented
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"`
}

// HousePhoto is an uploaded image. House is empty when the uploader did not
// associate the photo with a listing.
type HousePhoto struct {
	ID        string    `json:"id" bson:"_id"`
	House     string    `json:"house,omitempty" bson:"house,omitempty"`
	Path      string    `json:"path" bson:"path"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

type Amenity struct {
	ID          string `json:"id" bson:"_id"`
	Name        string `json:"name" bson:"name"`
	Description string `json:"description" bson:"description"`
}

type Location struct {
	ID        string  `json:"id" bson:"_id"`
	Address   string  `json:"address" bson:"address"`
	City      string  `json:"city" bson:"city"`
	Country   string  `json:"country" bson:"country"`
	Latitude  float64 `json:"latitude" bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
}
