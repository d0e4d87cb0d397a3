package mongostore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	hr "house_rental"
	"house_rental/internal/models"
	"house_rental/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	_ repository.Users        = (*UserStore)(nil)
	_ repository.Houses       = (*HouseStore)(nil)
	_ repository.Photos       = (*PhotoStore)(nil)
	_ repository.Amenities    = (*AmenityStore)(nil)
	_ repository.Locations    = (*LocationStore)(nil)
	_ repository.ActivityRepo = (*ActivityStore)(nil)
)

type UserStore struct {
	users *mongo.Collection
}

func (s *UserStore) Create(ctx context.Context, u models.User) error {
	if _, err := s.users.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return hr.Errorf(hr.ErrConflict, "email %q is already registered", u.Email)
		}
		return fmt.Errorf("insert user %q: %w", u.Email, err)
	}
	return nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return findOne[models.User](ctx, s.users, bson.M{"email": email})
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	return findOne[models.User](ctx, s.users, bson.M{"_id": id})
}

func (s *UserStore) UpdateProfile(ctx context.Context, u models.User) error {
	res, err := s.users.UpdateOne(ctx, bson.M{"_id": u.ID}, bson.M{"$set": bson.M{
		"firstName":   u.FirstName,
		"lastName":    u.LastName,
		"phoneNumber": u.PhoneNumber,
	}})
	if err != nil {
		return fmt.Errorf("update user %q: %w", u.ID, err)
	}
	if res.MatchedCount == 0 {
		return hr.Errorf(hr.ErrNotFound, "user %q not found", u.ID)
	}
	return nil
}

type HouseStore struct {
	houses *mongo.Collection
}

func (s *HouseStore) Create(ctx context.Context, h models.House) error {
	if _, err := s.houses.InsertOne(ctx, normalizeHouse(h)); err != nil {
		return fmt.Errorf("insert house %q: %w", h.ID, err)
	}
	return nil
}

func (s *HouseStore) List(ctx context.Context) ([]models.House, error) {
	return s.find(ctx, bson.M{})
}

func (s *HouseStore) ListByOwner(ctx context.Context, ownerID string) ([]models.House, error) {
	return s.find(ctx, bson.M{"owner": ownerID})
}

func (s *HouseStore) GetByID(ctx context.Context, id string) (*models.House, error) {
	h, err := findOne[models.House](ctx, s.houses, bson.M{"_id": id})
	if err != nil || h == nil {
		return h, err
	}
	n := normalizeHouse(*h)
	return &n, nil
}

// Update $sets the provided fields and returns the document after the write.
func (s *HouseStore) Update(ctx context.Context, id string, c repository.HouseChanges) (*models.House, error) {
	return s.modify(ctx, bson.M{"_id": id}, bson.M{"$set": houseSet(c)}, id)
}

// AttachPhotos pushes paths in one update. The filter only matches while the
// house has room, so concurrent uploads cannot overfill it.
func (s *HouseStore) AttachPhotos(ctx context.Context, id string, paths []string, limit int, at time.Time) (*models.House, error) {
	update := bson.M{
		"$push": bson.M{"photos": bson.M{"$each": paths}},
		"$set":  bson.M{"updatedAt": at.UTC()},
	}
	h, err := s.modify(ctx, attachFilter(id, len(paths), limit), update, id)
	if err == nil || !errors.Is(err, hr.ErrNotFound) || limit <= 0 {
		return h, err
	}
	current, ferr := s.GetByID(ctx, id)
	if ferr != nil {
		return nil, ferr
	}
	if current == nil {
		return nil, err
	}
	return nil, hr.Errorf(hr.ErrValidation, "house %q already has %d photos (max %d)", id, len(current.Photos), limit)
}

func (s *HouseStore) modify(ctx context.Context, filter, update bson.M, id string) (*models.House, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var h models.House
	if err := s.houses.FindOneAndUpdate(ctx, filter, update, opts).Decode(&h); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, hr.Errorf(hr.ErrNotFound, "house %q not found", id)
		}
		return nil, fmt.Errorf("update house %q: %w", id, err)
	}
	h = normalizeHouse(h)
	return &h, nil
}

func (s *HouseStore) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, s.houses, "house", id)
}

func (s *HouseStore) find(ctx context.Context, filter bson.M) ([]models.House, error) {
	hs, err := findAll[models.House](ctx, s.houses, filter, naturalOrder())
	if err != nil {
		return nil, err
	}
	for i := range hs {
		hs[i] = normalizeHouse(hs[i])
	}
	return hs, nil
}

// normalizeHouse keeps list fields non-nil so they encode as [] on both sides.
func normalizeHouse(h models.House) models.House {
	if h.Amenities == nil {
		h.Amenities = []string{}
	}
	if h.Photos == nil {
		h.Photos = []string{}
	}
	return h
}

// houseSet maps the provided changes to $set fields; updatedAt is always set.
func houseSet(c repository.HouseChanges) bson.M {
	set := bson.M{"updatedAt": c.UpdatedAt.UTC()}
	if c.Name != nil {
		set["name"] = *c.Name
	}
	if c.Description != nil {
		set["description"] = *c.Description
	}
	if c.NumberOfRooms != nil {
		set["numberOfRooms"] = *c.NumberOfRooms
	}
	if c.MaxGuest != nil {
		set["maxGuest"] = *c.MaxGuest
	}
	if c.PricePerNight != nil {
		set["pricePerNight"] = *c.PricePerNight
	}
	if c.Location != nil {
		set["location"] = *c.Location
	}
	if c.Amenities != nil {
		set["amenities"] = append([]string{}, *c.Amenities...)
	}
	if c.SharedBetween != nil {
		set["sharedBetween"] = *c.SharedBetween
	}
	if c.Photos != nil {
		set["photos"] = append([]string{}, *c.Photos...)
	}
	return set
}

// attachFilter matches the house only while adding n photos stays within limit.
func attachFilter(id string, n, limit int) bson.M {
	filter := bson.M{"_id": id}
	if limit > 0 {
		filter["$expr"] = bson.M{"$lte": bson.A{
			bson.M{"$add": bson.A{bson.M{"$size": bson.M{"$ifNull": bson.A{"$photos", bson.A{}}}}, n}},
			limit,
		}}
	}
	return filter
}

type PhotoStore struct {
	photos *mongo.Collection
}

func (s *PhotoStore) Create(ctx context.Context, p models.HousePhoto) error {
	if _, err := s.photos.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("insert house photo %q: %w", p.ID, err)
	}
	return nil
}

func (s *PhotoStore) GetByID(ctx context.Context, id string) (*models.HousePhoto, error) {
	return findOne[models.HousePhoto](ctx, s.photos, bson.M{"_id": id})
}

func (s *PhotoStore) List(ctx context.Context) ([]models.HousePhoto, error) {
	return findAll[models.HousePhoto](ctx, s.photos, bson.M{}, naturalOrder())
}

func (s *PhotoStore) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, s.photos, "house photo", id)
}

type AmenityStore struct {
	amenities *mongo.Collection
}

func (s *AmenityStore) Create(ctx context.Context, a models.Amenity) error {
	if _, err := s.amenities.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("insert amenity %q: %w", a.Name, err)
	}
	return nil
}

func (s *AmenityStore) GetByID(ctx context.Context, id string) (*models.Amenity, error) {
	return findOne[models.Amenity](ctx, s.amenities, bson.M{"_id": id})
}

// List orders by name; amenities carry no timestamp.
func (s *AmenityStore) List(ctx context.Context) ([]models.Amenity, error) {
	return findAll[models.Amenity](ctx, s.amenities, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
}

func (s *AmenityStore) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, s.amenities, "amenity", id)
}

type LocationStore struct {
	locations *mongo.Collection
}

func (s *LocationStore) Create(ctx context.Context, l models.Location) error {
	if _, err := s.locations.InsertOne(ctx, l); err != nil {
		return fmt.Errorf("insert location %q: %w", l.ID, err)
	}
	return nil
}

func (s *LocationStore) GetByID(ctx context.Context, id string) (*models.Location, error) {
	return findOne[models.Location](ctx, s.locations, bson.M{"_id": id})
}

type ActivityStore struct {
	activity *mongo.Collection
}

func (s *ActivityStore) Append(ctx context.Context, a models.Activity) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.OccurredAt.IsZero() {
		a.OccurredAt = time.Now().UTC()
	}
	a.Type = strings.ToUpper(strings.TrimSpace(a.Type))
	if _, err := s.activity.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("insert activity %q: %w", a.Type, err)
	}
	return nil
}

func (s *ActivityStore) List(ctx context.Context, from, to time.Time, typ, actor string) ([]models.Activity, error) {
	sort := options.Find().SetSort(bson.D{{Key: "occurredAt", Value: 1}})
	return findAll[models.Activity](ctx, s.activity, activityFilter(from, to, typ, actor), sort)
}

// activityFilter builds the inclusive time range, type and actor filter.
func activityFilter(from, to time.Time, typ, actor string) bson.M {
	filter := bson.M{}
	occurred := bson.M{}
	if !from.IsZero() {
		occurred["$gte"] = from.UTC()
	}
	if !to.IsZero() {
		occurred["$lte"] = to.UTC()
	}
	if len(occurred) > 0 {
		filter["occurredAt"] = occurred
	}
	if typ = strings.ToUpper(strings.TrimSpace(typ)); typ != "" {
		filter["type"] = typ
	}
	if actor != "" {
		filter["actor"] = actor
	}
	return filter
}
