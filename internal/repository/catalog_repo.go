package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"house_rental/internal/models"
)

// AmenitySQLite and LocationSQLite back the reference data a house points at.

type AmenitySQLite struct {
	db *sql.DB
}

func NewAmenitySQLite(db *sql.DB) *AmenitySQLite { return &AmenitySQLite{db: db} }

var _ Amenities = (*AmenitySQLite)(nil)

const (
	insertAmenitySQL     = `INSERT INTO amenities (id, name, description) VALUES (?, ?, ?)`
	selectAmenitiesSQL   = `SELECT id, name, description FROM amenities ORDER BY rowid ASC`
	selectAmenityByIDSQL = `SELECT id, name, description FROM amenities WHERE id = ?`
	deleteAmenitySQL     = `DELETE FROM amenities WHERE id = ?`
)

func (r *AmenitySQLite) Create(ctx context.Context, a models.Amenity) error {
	if _, err := r.db.ExecContext(ctx, insertAmenitySQL, a.ID, a.Name, a.Description); err != nil {
		return fmt.Errorf("insert amenity %q: %w", a.Name, err)
	}
	return nil
}

func (r *AmenitySQLite) GetByID(ctx context.Context, id string) (*models.Amenity, error) {
	var a models.Amenity
	err := r.db.QueryRowContext(ctx, selectAmenityByIDSQL, id).Scan(&a.ID, &a.Name, &a.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select amenity %q: %w", id, err)
	}
	return &a, nil
}

func (r *AmenitySQLite) List(ctx context.Context) ([]models.Amenity, error) {
	rows, err := r.db.QueryContext(ctx, selectAmenitiesSQL)
	if err != nil {
		return nil, fmt.Errorf("select amenities: %w", err)
	}
	defer rows.Close()

	out := make([]models.Amenity, 0, 16)
	for rows.Next() {
		var a models.Amenity
		if err := rows.Scan(&a.ID, &a.Name, &a.Description); err != nil {
			return nil, fmt.Errorf("scan amenity: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AmenitySQLite) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteAmenitySQL, id)
	if err != nil {
		return fmt.Errorf("delete amenity %q: %w", id, err)
	}
	return expectOneRow(res, "amenity", id)
}

type LocationSQLite struct {
	db *sql.DB
}

func NewLocationSQLite(db *sql.DB) *LocationSQLite { return &LocationSQLite{db: db} }

var _ Locations = (*LocationSQLite)(nil)

const (
	insertLocationSQL = `INSERT INTO locations (id, address, city, country, latitude, longitude)
		VALUES (?, ?, ?, ?, ?, ?)`
	selectLocationByIDSQL = `SELECT id, address, city, country, latitude, longitude FROM locations WHERE id = ?`
)

func (r *LocationSQLite) Create(ctx context.Context, l models.Location) error {
	_, err := r.db.ExecContext(ctx, insertLocationSQL, l.ID, l.Address, l.City, l.Country, l.Latitude, l.Longitude)
	if err != nil {
		return fmt.Errorf("insert location %q: %w", l.ID, err)
	}
	return nil
}

func (r *LocationSQLite) GetByID(ctx context.Context, id string) (*models.Location, error) {
	var l models.Location
	err := r.db.QueryRowContext(ctx, selectLocationByIDSQL, id).
		Scan(&l.ID, &l.Address, &l.City, &l.Country, &l.Latitude, &l.Longitude)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select location %q: %w", id, err)
	}
	return &l, nil
}
