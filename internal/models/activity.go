package models

import "time"

// Activity types written to the audit log.
const (
	ActivityHouseCreated  = "HOUSE_CREATED"
	ActivityHouseUpdated  = "HOUSE_UPDATED"
	ActivityHouseDeleted  = "HOUSE_DELETED"
	ActivityPhotoUploaded = "PHOTO_UPLOADED"
)

// Activity is a single audit log entry.
type Activity struct {
	ID          string    `json:"id" bson:"_id"`
	OccurredAt  time.Time `json:"occurredAt" bson:"occurredAt"`
	Type        string    `json:"type" bson:"type"`       // HOUSE_CREATED | HOUSE_UPDATED | HOUSE_DELETED | PHOTO_UPLOADED
	Actor       string    `json:"actor" bson:"actor"`     // user id
	Subject     string    `json:"subject" bson:"subject"` // house or photo id
	Description string    `json:"description" bson:"description"`
}
