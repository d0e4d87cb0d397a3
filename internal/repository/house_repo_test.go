package repository

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"regexp"
	"testing"
	"time"

	hr "house_rental"
	"house_rental/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

var houseCols = []string{
	"id", "owner", "name", "description", "number_of_rooms", "max_guest", "price_per_night",
	"location", "amenities", "shared_between", "photos", "reserved_by", "created_at", "updated_at",
}

func newMockHouseRepo(t *testing.T) (*HouseSQLite, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return NewHouseSQLite(db), mock, cleanup
}

func TestHouseSQLite_Create_EncodesLists(t *testing.T) {
	repo, mock, cleanup := newMockHouseRepo(t)
	defer cleanup()

	now := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	h := models.House{
		ID: "h-1", Owner: "u-1", Name: "Cabin", Description: "lake",
		NumberOfRooms: 2, MaxGuest: 4, PricePerNight: 100,
		Amenities: []string{"wifi"}, CreatedAt: now, UpdatedAt: now,
	}

	mock.ExpectExec(regexp.QuoteMeta(insertHouseSQL)).
		WithArgs("h-1", "u-1", "Cabin", "lake", 2, 4, 100.0, "", `["wifi"]`, 0, `[]`, nil, now, now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), h); err != nil {
		t.Fatalf("Create: %v", err)
	}
}

func TestHouseSQLite_GetByID(t *testing.T) {
	now := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)

	t.Run("decodes row", func(t *testing.T) {
		repo, mock, cleanup := newMockHouseRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectHouseByIDSQL)).
			WithArgs("h-1").
			WillReturnRows(sqlmock.NewRows(houseCols).AddRow(
				"h-1", "u-1", "Cabin", "lake", 2, 4, 100.0,
				"loc-1", `["wifi","sauna"]`, 1, `["/uploads/houses/a.png"]`, "u-2", now, now,
			))

		h, err := repo.GetByID(context.Background(), "h-1")
		if err != nil || h == nil {
			t.Fatalf("GetByID = %+v, %v", h, err)
		}
		if !reflect.DeepEqual(h.Amenities, []string{"wifi", "sauna"}) || len(h.Photos) != 1 {
			t.Fatalf("lists not decoded: %+v", h)
		}
		if h.ReservedBy == nil || *h.ReservedBy != "u-2" {
			t.Fatalf("reservedBy = %v, want u-2", h.ReservedBy)
		}
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock, cleanup := newMockHouseRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectHouseByIDSQL)).
			WithArgs("nope").
			WillReturnError(sql.ErrNoRows)

		h, err := repo.GetByID(context.Background(), "nope")
		if err != nil || h != nil {
			t.Fatalf("expected (nil, nil), got (%+v, %v)", h, err)
		}
	})
}

func TestHouseSQLite_Update_WritesOnlyProvidedColumns(t *testing.T) {
	repo, mock, cleanup := newMockHouseRepo(t)
	defer cleanup()

	now := time.Date(2025, 5, 2, 9, 0, 0, 0, time.UTC)
	name := "Renamed"
	amenities := []string{"wifi"}

	mock.ExpectQuery(regexp.QuoteMeta(updateHouseSQLPrefix+"name = ?, amenities = ?, updated_at = ? WHERE id = ? RETURNING")).
		WithArgs("Renamed", `["wifi"]`, now, "h-1").
		WillReturnRows(sqlmock.NewRows(houseCols).AddRow(
			"h-1", "u-1", "Renamed", "lake", 2, 4, 250.0,
			"", `["wifi"]`, 0, `[]`, nil, now, now,
		))

	h, err := repo.Update(context.Background(), "h-1", HouseChanges{Name: &name, Amenities: &amenities, UpdatedAt: now})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if h.Name != "Renamed" || h.PricePerNight != 250 {
		t.Fatalf("expected stored row back, got %+v", h)
	}
}

func TestHouseSQLite_AttachPhotos(t *testing.T) {
	at := time.Date(2025, 5, 2, 9, 0, 0, 0, time.UTC)

	t.Run("limit reached", func(t *testing.T) {
		repo, mock, cleanup := newMockHouseRepo(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(attachPhotoSQL)).
			WithArgs("/uploads/houses/a.png", at, "h-1", 5, 5).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta(countHousePhotosSQL)).
			WithArgs("h-1").
			WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(5))
		mock.ExpectRollback()

		_, err := repo.AttachPhotos(context.Background(), "h-1", []string{"/uploads/houses/a.png"}, 5, at)
		if !errors.Is(err, hr.ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("missing house", func(t *testing.T) {
		repo, mock, cleanup := newMockHouseRepo(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(attachPhotoSQL)).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta(countHousePhotosSQL)).WithArgs("h-404").WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		_, err := repo.AttachPhotos(context.Background(), "h-404", []string{"/uploads/houses/a.png"}, 5, at)
		if !errors.Is(err, hr.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestHouseSQLite_UpdateAndDelete_MissingRow(t *testing.T) {
	repo, mock, cleanup := newMockHouseRepo(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(updateHouseSQLPrefix)).WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(regexp.QuoteMeta(deleteHouseSQL)).WithArgs("h-404").WillReturnResult(sqlmock.NewResult(0, 0))

	if _, err := repo.Update(context.Background(), "h-404", HouseChanges{}); !errors.Is(err, hr.ErrNotFound) {
		t.Fatalf("Update: expected ErrNotFound, got %v", err)
	}
	if err := repo.Delete(context.Background(), "h-404"); !errors.Is(err, hr.ErrNotFound) {
		t.Fatalf("Delete: expected ErrNotFound, got %v", err)
	}
}

func TestHouseSQLite_List_QueryError(t *testing.T) {
	repo, mock, cleanup := newMockHouseRepo(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(selectHousesSQL)).WillReturnError(errors.New("boom"))

	if _, err := repo.List(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
