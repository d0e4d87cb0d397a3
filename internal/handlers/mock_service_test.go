package handlers

import (
	"context"
	"net/http"

	"house_rental/internal/models"
	"house_rental/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerUser models.User
	registerErr  error
	loginUser    models.User
	loginToken   string
	loginErr     error
	parseID      string
	parseErr     error
	profile      models.User
	profileErr   error

	lastRegister    service.RegisterInput
	lastLoginEmail  string
	lastParseToken  string
	lastProfileUser string
	lastRequester   string
}

func (m *mockAuth) Register(_ context.Context, in service.RegisterInput) (models.User, error) {
	m.lastRegister = in
	return m.registerUser, m.registerErr
}

func (m *mockAuth) Login(_ context.Context, email, _ string) (models.User, string, error) {
	m.lastLoginEmail = email
	return m.loginUser, m.loginToken, m.loginErr
}

func (m *mockAuth) ParseToken(token string) (string, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

func (m *mockAuth) GetProfile(_ context.Context, userID string) (models.User, error) {
	m.lastProfileUser = userID
	return m.profile, m.profileErr
}

func (m *mockAuth) UpdateProfile(_ context.Context, userID, requesterID string, _ service.ProfileInput) (models.User, error) {
	m.lastProfileUser = userID
	m.lastRequester = requesterID
	return m.profile, m.profileErr
}

type mockHouses struct {
	house  models.House
	houses []models.House
	err    error

	lastOwner     string
	lastID        string
	lastRequester string
	lastInput     service.HouseInput
	lastPatch     service.HousePatch
}

func (m *mockHouses) Create(_ context.Context, ownerID string, in service.HouseInput) (models.House, error) {
	m.lastOwner = ownerID
	m.lastInput = in
	return m.house, m.err
}

func (m *mockHouses) List(context.Context) ([]models.House, error) { return m.houses, m.err }

func (m *mockHouses) Get(_ context.Context, id string) (models.House, error) {
	m.lastID = id
	return m.house, m.err
}

func (m *mockHouses) ListByOwner(_ context.Context, ownerID string) ([]models.House, error) {
	m.lastOwner = ownerID
	return m.houses, m.err
}

func (m *mockHouses) Update(_ context.Context, id, requesterID string, p service.HousePatch) (models.House, error) {
	m.lastID = id
	m.lastRequester = requesterID
	m.lastPatch = p
	return m.house, m.err
}

func (m *mockHouses) Delete(_ context.Context, id, requesterID string) (models.House, error) {
	m.lastID = id
	m.lastRequester = requesterID
	return m.house, m.err
}

type mockPhotos struct {
	paths  []string
	photo  models.HousePhoto
	photos []models.HousePhoto
	err    error

	uploadCalls   int
	lastRequest   service.UploadRequest
	lastRequester string
}

func (m *mockPhotos) Upload(_ context.Context, requesterID string, req service.UploadRequest) ([]string, error) {
	m.uploadCalls++
	m.lastRequester = requesterID
	m.lastRequest = req
	return m.paths, m.err
}

func (m *mockPhotos) Get(context.Context, string) (models.HousePhoto, error) { return m.photo, m.err }

func (m *mockPhotos) List(context.Context) ([]models.HousePhoto, error) { return m.photos, m.err }

type mockAmenities struct {
	amenity   models.Amenity
	amenities []models.Amenity
	err       error
	lastInput service.AmenityInput
	lastID    string
}

func (m *mockAmenities) Create(_ context.Context, in service.AmenityInput) (models.Amenity, error) {
	m.lastInput = in
	return m.amenity, m.err
}

func (m *mockAmenities) List(context.Context) ([]models.Amenity, error) { return m.amenities, m.err }

func (m *mockAmenities) Delete(_ context.Context, id string) (models.Amenity, error) {
	m.lastID = id
	return m.amenity, m.err
}

type mockLocations struct {
	location  models.Location
	err       error
	lastInput service.LocationInput
	lastID    string
}

func (m *mockLocations) Create(_ context.Context, in service.LocationInput) (models.Location, error) {
	m.lastInput = in
	return m.location, m.err
}

func (m *mockLocations) Get(_ context.Context, id string) (models.Location, error) {
	m.lastID = id
	return m.location, m.err
}

type mockActivity struct {
	resp       []models.Activity
	err        error
	lastFilter service.ActivityFilter
}

func (m *mockActivity) Record(context.Context, models.Activity) {}

func (m *mockActivity) List(_ context.Context, f service.ActivityFilter) ([]models.Activity, error) {
	m.lastFilter = f
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
