package models

import "time"

type User struct {
	ID           string    `json:"id" bson:"_id"`
	FirstName    string    `json:"firstName" bson:"firstName"`
	LastName     string    `json:"lastName" bson:"lastName"`
	Email        string    `json:"email" bson:"email"`
	PhoneNumber  string    `json:"phoneNumber" bson:"phoneNumber"`
	PasswordHash string    `json:"-" bson:"passwordHash"` // don’t expose hash
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}
