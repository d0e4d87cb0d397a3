// Package mongostore implements the repository interfaces on MongoDB.
// Every write touches a single document, which Mongo applies atomically.
package mongostore

import (
	"context"
	"errors"
	"fmt"

	hr "house_rental"
	"house_rental/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	collUsers     = "users"
	collHouses    = "houses"
	collPhotos    = "housePhotos"
	collAmenities = "amenities"
	collLocations = "locations"
	collActivity  = "activity"
)

// Connect dials uri and verifies the primary is reachable.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the unique email index and the owner lookup index.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(collUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create users.email index: %w", err)
	}
	_, err = db.Collection(collHouses).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create houses.owner index: %w", err)
	}
	return nil
}

// NewRepository wires every collection-backed store.
func NewRepository(db *mongo.Database) *repository.Repository {
	return &repository.Repository{
		Users:     &UserStore{users: db.Collection(collUsers)},
		Houses:    &HouseStore{houses: db.Collection(collHouses)},
		Photos:    &PhotoStore{photos: db.Collection(collPhotos)},
		Amenities: &AmenityStore{amenities: db.Collection(collAmenities)},
		Locations: &LocationStore{locations: db.Collection(collLocations)},
		Activity:  &ActivityStore{activity: db.Collection(collActivity)},
	}
}

// findOne decodes the first match into T, returning (nil, nil) when absent.
func findOne[T any](ctx context.Context, c *mongo.Collection, filter any) (*T, error) {
	var out T
	err := c.FindOne(ctx, filter).Decode(&out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find in %s: %w", c.Name(), err)
	}
	return &out, nil
}

// findAll decodes all matches into a non-nil slice.
func findAll[T any](ctx context.Context, c *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cur, err := c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", c.Name(), err)
	}
	out := make([]T, 0, 16)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.Name(), err)
	}
	return out, nil
}

// deleteByID removes a document by _id; a miss is ErrNotFound.
func deleteByID(ctx context.Context, c *mongo.Collection, kind, id string) error {
	res, err := c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete %s %q: %w", kind, id, err)
	}
	if res.DeletedCount == 0 {
		return hr.Errorf(hr.ErrNotFound, "%s %q not found", kind, id)
	}
	return nil
}

// naturalOrder returns documents in storage order. Ids are UUIDs and
// createdAt only has millisecond precision, so neither orders inserts.
func naturalOrder() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "$natural", Value: 1}})
}
