package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	hr "house_rental"
	"house_rental/internal/models"
)

type HouseSQLite struct {
	db *sql.DB
}

func NewHouseSQLite(db *sql.DB) *HouseSQLite {
	return &HouseSQLite{db: db}
}

var _ Houses = (*HouseSQLite)(nil)

const (
	houseColumns = `id, owner, name, description, number_of_rooms, max_guest, price_per_night,
		location, amenities, shared_between, photos, reserved_by, created_at, updated_at`

	insertHouseSQL = `INSERT INTO houses (` + houseColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	selectHousesSQL        = `SELECT ` + houseColumns + ` FROM houses ORDER BY rowid ASC`
	selectHousesByOwnerSQL = `SELECT ` + houseColumns + ` FROM houses WHERE owner = ? ORDER BY rowid ASC`
	selectHouseByIDSQL     = `SELECT ` + houseColumns + ` FROM houses WHERE id = ?`

	updateHouseSQLPrefix = `UPDATE houses SET `
	updateHouseSQLSuffix = ` WHERE id = ? RETURNING ` + houseColumns

	// appends one path; the guard keeps the array within the limit
	attachPhotoSQL = `UPDATE houses SET photos = json_insert(photos, '$[#]', ?), updated_at = ?
		WHERE id = ? AND (? <= 0 OR json_array_length(photos) < ?)`
	countHousePhotosSQL = `SELECT json_array_length(photos) FROM houses WHERE id = ?`

	deleteHouseSQL = `DELETE FROM houses WHERE id = ?`
)

// marshalStrings converts the slice to a JSON array string ("[]" for nil).
func marshalStrings(xs []string) (string, error) {
	if xs == nil {
		xs = []string{}
	}
	b, err := json.Marshal(xs)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// unmarshalStrings parses a JSON array string into a non-nil slice.
func unmarshalStrings(s string) ([]string, error) {
	xs := []string{}
	if s == "" {
		return xs, nil
	}
	if err := json.Unmarshal([]byte(s), &xs); err != nil {
		return nil, err
	}
	return xs, nil
}

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func (r *HouseSQLite) Create(ctx context.Context, h models.House) error {
	amenities, err := marshalStrings(h.Amenities)
	if err != nil {
		return fmt.Errorf("marshal amenities: %w", err)
	}
	photos, err := marshalStrings(h.Photos)
	if err != nil {
		return fmt.Errorf("marshal photos: %w", err)
	}

	_, err = r.db.ExecContext(ctx, insertHouseSQL,
		h.ID, h.Owner, h.Name, h.Description, h.NumberOfRooms, h.MaxGuest, h.PricePerNight,
		h.Location, amenities, h.SharedBetween, photos, nullString(h.ReservedBy),
		h.CreatedAt.UTC(), h.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert house %q: %w", h.ID, err)
	}
	return nil
}

// List returns every house in insertion order.
func (r *HouseSQLite) List(ctx context.Context) ([]models.House, error) {
	return r.query(ctx, selectHousesSQL)
}

func (r *HouseSQLite) ListByOwner(ctx context.Context, ownerID string) ([]models.House, error) {
	return r.query(ctx, selectHousesByOwnerSQL, ownerID)
}

func (r *HouseSQLite) GetByID(ctx context.Context, id string) (*models.House, error) {
	h, err := scanHouse(r.db.QueryRowContext(ctx, selectHouseByIDSQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select house %q: %w", id, err)
	}
	return &h, nil
}

// updateAssignments builds the SET list for the provided fields only.
func updateAssignments(c HouseChanges) ([]string, []any, error) {
	var (
		sets []string
		args []any
	)
	add := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if c.Name != nil {
		add("name", *c.Name)
	}
	if c.Description != nil {
		add("description", *c.Description)
	}
	if c.NumberOfRooms != nil {
		add("number_of_rooms", *c.NumberOfRooms)
	}
	if c.MaxGuest != nil {
		add("max_guest", *c.MaxGuest)
	}
	if c.PricePerNight != nil {
		add("price_per_night", *c.PricePerNight)
	}
	if c.Location != nil {
		add("location", *c.Location)
	}
	if c.Amenities != nil {
		amenities, err := marshalStrings(*c.Amenities)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal amenities: %w", err)
		}
		add("amenities", amenities)
	}
	if c.SharedBetween != nil {
		add("shared_between", *c.SharedBetween)
	}
	if c.Photos != nil {
		photos, err := marshalStrings(*c.Photos)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal photos: %w", err)
		}
		add("photos", photos)
	}
	add("updated_at", c.UpdatedAt.UTC())
	return sets, args, nil
}

// Update writes the provided columns in one statement and returns the row.
func (r *HouseSQLite) Update(ctx context.Context, id string, c HouseChanges) (*models.House, error) {
	sets, args, err := updateAssignments(c)
	if err != nil {
		return nil, err
	}
	q := updateHouseSQLPrefix + strings.Join(sets, ", ") + updateHouseSQLSuffix
	h, err := scanHouse(r.db.QueryRowContext(ctx, q, append(args, id)...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, hr.Errorf(hr.ErrNotFound, "house %q not found", id)
		}
		return nil, fmt.Errorf("update house %q: %w", id, err)
	}
	return &h, nil
}

// AttachPhotos appends every path inside one transaction. Each append is
// guarded by the limit, so concurrent uploads cannot overfill a house.
func (r *HouseSQLite) AttachPhotos(ctx context.Context, id string, paths []string, limit int, at time.Time) (*models.House, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin attach photos: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, p := range paths {
		res, err := tx.ExecContext(ctx, attachPhotoSQL, p, at.UTC(), id, limit, limit)
		if err != nil {
			return nil, fmt.Errorf("attach photo to house %q: %w", id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("rows affected for house %q: %w", id, err)
		}
		if n == 0 {
			return nil, attachRejected(ctx, tx, id, limit)
		}
	}

	h, err := scanHouse(tx.QueryRowContext(ctx, selectHouseByIDSQL, id))
	if err != nil {
		return nil, fmt.Errorf("select house %q: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit attach photos: %w", err)
	}
	return &h, nil
}

// attachRejected explains why the guarded append matched no row.
func attachRejected(ctx context.Context, tx *sql.Tx, id string, limit int) error {
	var count int
	err := tx.QueryRowContext(ctx, countHousePhotosSQL, id).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return hr.Errorf(hr.ErrNotFound, "house %q not found", id)
	}
	if err != nil {
		return fmt.Errorf("count photos of house %q: %w", id, err)
	}
	return hr.Errorf(hr.ErrValidation, "house %q already has %d photos (max %d)", id, count, limit)
}

func (r *HouseSQLite) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteHouseSQL, id)
	if err != nil {
		return fmt.Errorf("delete house %q: %w", id, err)
	}
	return expectOneRow(res, "house", id)
}

func (r *HouseSQLite) query(ctx context.Context, q string, args ...any) ([]models.House, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("select houses: %w", err)
	}
	defer rows.Close()

	out := make([]models.House, 0, 16)
	for rows.Next() {
		h, err := scanHouse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan house: %w", err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate houses: %w", err)
	}
	return out, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanHouse(s rowScanner) (models.House, error) {
	var (
		h                    models.House
		amenities, photos    string
		reservedBy           sql.NullString
		createdAt, updatedAt time.Time
	)
	if err := s.Scan(
		&h.ID, &h.Owner, &h.Name, &h.Description, &h.NumberOfRooms, &h.MaxGuest, &h.PricePerNight,
		&h.Location, &amenities, &h.SharedBetween, &photos, &reservedBy, &createdAt, &updatedAt,
	); err != nil {
		return models.House{}, err
	}

	var err error
	if h.Amenities, err = unmarshalStrings(amenities); err != nil {
		return models.House{}, fmt.Errorf("decode amenities: %w", err)
	}
	if h.Photos, err = unmarshalStrings(photos); err != nil {
		return models.House{}, fmt.Errorf("decode photos: %w", err)
	}
	if reservedBy.Valid {
		v := reservedBy.String
		h.ReservedBy = &v
	}
	h.CreatedAt = createdAt.UTC()
	h.UpdatedAt = updatedAt.UTC()
	return h, nil
}
