package service

import (
	"context"
	"errors"
	"sync"
	"time"

	hr "house_rental"
	"house_rental/internal/models"
	"house_rental/internal/repository"
)

// memStore is an in-memory stand-in for every repository interface.
type memStore struct {
	mu        sync.Mutex
	users     []models.User
	houses    []models.House
	photos    []models.HousePhoto
	amenities []models.Amenity
	locations []models.Location
	activity  []models.Activity

	// failWith makes every call of the named operation fail.
	failWith map[string]error
}

func newMemStore() *memStore { return &memStore{failWith: map[string]error{}} }

func (m *memStore) repos() *repository.Repository {
	return &repository.Repository{
		Users:     memUsers{m},
		Houses:    memHouses{m},
		Photos:    memPhotos{m},
		Amenities: memAmenities{m},
		Locations: memLocations{m},
		Activity:  memActivity{m},
	}
}

func (m *memStore) fail(op string) error { return m.failWith[op] }

type memUsers struct{ m *memStore }

func (r memUsers) Create(_ context.Context, u models.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.fail("users.create"); err != nil {
		return err
	}
	for _, x := range r.m.users {
		if x.Email == u.Email {
			return hr.Errorf(hr.ErrConflict, "duplicate email")
		}
	}
	r.m.users = append(r.m.users, u)
	return nil
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.fail("users.get"); err != nil {
		return nil, err
	}
	for _, x := range r.m.users {
		if x.Email == email {
			u := x
			return &u, nil
		}
	}
	return nil, nil
}

func (r memUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, x := range r.m.users {
		if x.ID == id {
			u := x
			return &u, nil
		}
	}
	return nil, nil
}

func (r memUsers) UpdateProfile(_ context.Context, u models.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i := range r.m.users {
		if r.m.users[i].ID == u.ID {
			r.m.users[i].FirstName = u.FirstName
			r.m.users[i].LastName = u.LastName
			r.m.users[i].PhoneNumber = u.PhoneNumber
			return nil
		}
	}
	return hr.Errorf(hr.ErrNotFound, "user not found")
}

type memHouses struct{ m *memStore }

func copyHouse(h models.House) models.House {
	h.Amenities = append([]string{}, h.Amenities...)
	h.Photos = append([]string{}, h.Photos...)
	return h
}

func (r memHouses) Create(_ context.Context, h models.House) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.fail("houses.create"); err != nil {
		return err
	}
	r.m.houses = append(r.m.houses, copyHouse(h))
	return nil
}

func (r memHouses) List(_ context.Context) ([]models.House, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.fail("houses.list"); err != nil {
		return nil, err
	}
	out := make([]models.House, 0, len(r.m.houses))
	for _, h := range r.m.houses {
		out = append(out, copyHouse(h))
	}
	return out, nil
}

func (r memHouses) ListByOwner(_ context.Context, ownerID string) ([]models.House, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := make([]models.House, 0)
	for _, h := range r.m.houses {
		if h.Owner == ownerID {
			out = append(out, copyHouse(h))
		}
	}
	return out, nil
}

func (r memHouses) GetByID(_ context.Context, id string) (*models.House, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.fail("houses.get"); err != nil {
		return nil, err
	}
	for _, h := range r.m.houses {
		if h.ID == id {
			c := copyHouse(h)
			return &c, nil
		}
	}
	return nil, nil
}

func (r memHouses) Update(_ context.Context, id string, c repository.HouseChanges) (*models.House, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.fail("houses.update"); err != nil {
		return nil, err
	}
	for i := range r.m.houses {
		if r.m.houses[i].ID == id {
			r.m.houses[i] = c.Apply(r.m.houses[i])
			h := copyHouse(r.m.houses[i])
			return &h, nil
		}
	}
	return nil, hr.Errorf(hr.ErrNotFound, "house not found")
}

func (r memHouses) AttachPhotos(_ context.Context, id string, paths []string, limit int, at time.Time) (*models.House, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.fail("houses.update"); err != nil {
		return nil, err
	}
	for i := range r.m.houses {
		if r.m.houses[i].ID != id {
			continue
		}
		if limit > 0 && len(r.m.houses[i].Photos)+len(paths) > limit {
			return nil, hr.Errorf(hr.ErrValidation, "photo limit reached")
		}
		r.m.houses[i].Photos = append(r.m.houses[i].Photos, paths...)
		r.m.houses[i].UpdatedAt = at
		h := copyHouse(r.m.houses[i])
		return &h, nil
	}
	return nil, hr.Errorf(hr.ErrNotFound, "house not found")
}

func (r memHouses) Delete(_ context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i := range r.m.houses {
		if r.m.houses[i].ID == id {
			r.m.houses = append(r.m.houses[:i], r.m.houses[i+1:]...)
			return nil
		}
	}
	return hr.Errorf(hr.ErrNotFound, "house not found")
}

type memPhotos struct{ m *memStore }

func (r memPhotos) Create(_ context.Context, p models.HousePhoto) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.fail("photos.create"); err != nil {
		return err
	}
	r.m.photos = append(r.m.photos, p)
	return nil
}

func (r memPhotos) GetByID(_ context.Context, id string) (*models.HousePhoto, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, p := range r.m.photos {
		if p.ID == id {
			c := p
			return &c, nil
		}
	}
	return nil, nil
}

func (r memPhotos) List(_ context.Context) ([]models.HousePhoto, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return append([]models.HousePhoto{}, r.m.photos...), nil
}

func (r memPhotos) Delete(_ context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i := range r.m.photos {
		if r.m.photos[i].ID == id {
			r.m.photos = append(r.m.photos[:i], r.m.photos[i+1:]...)
			return nil
		}
	}
	return hr.Errorf(hr.ErrNotFound, "photo not found")
}

type memAmenities struct{ m *memStore }

func (r memAmenities) Create(_ context.Context, a models.Amenity) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.amenities = append(r.m.amenities, a)
	return nil
}

func (r memAmenities) GetByID(_ context.Context, id string) (*models.Amenity, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, a := range r.m.amenities {
		if a.ID == id {
			c := a
			return &c, nil
		}
	}
	return nil, nil
}

func (r memAmenities) List(_ context.Context) ([]models.Amenity, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return append([]models.Amenity{}, r.m.amenities...), nil
}

func (r memAmenities) Delete(_ context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i := range r.m.amenities {
		if r.m.amenities[i].ID == id {
			r.m.amenities = append(r.m.amenities[:i], r.m.amenities[i+1:]...)
			return nil
		}
	}
	return hr.Errorf(hr.ErrNotFound, "amenity not found")
}

type memLocations struct{ m *memStore }

func (r memLocations) Create(_ context.Context, l models.Location) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.locations = append(r.m.locations, l)
	return nil
}

func (r memLocations) GetByID(_ context.Context, id string) (*models.Location, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, l := range r.m.locations {
		if l.ID == id {
			c := l
			return &c, nil
		}
	}
	return nil, nil
}

type memActivity struct{ m *memStore }

func (r memActivity) Append(_ context.Context, a models.Activity) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.fail("activity.append"); err != nil {
		return err
	}
	r.m.activity = append(r.m.activity, a)
	return nil
}

func (r memActivity) List(_ context.Context, from, to time.Time, typ, actor string) ([]models.Activity, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := make([]models.Activity, 0)
	for _, a := range r.m.activity {
		if typ != "" && a.Type != typ {
			continue
		}
		if actor != "" && a.Actor != actor {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

// hookedHouses runs afterGet once, right after the first GetByID returns, to
// land a concurrent write between a service's read and its write.
type hookedHouses struct {
	repository.Houses
	afterGet func()
}

func (r *hookedHouses) GetByID(ctx context.Context, id string) (*models.House, error) {
	h, err := r.Houses.GetByID(ctx, id)
	if f := r.afterGet; f != nil {
		r.afterGet = nil
		f()
	}
	return h, err
}

var errDBDown = errors.New("db down")
