package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"house_rental/internal/models"
)

type PhotoSQLite struct {
	db *sql.DB
}

func NewPhotoSQLite(db *sql.DB) *PhotoSQLite { return &PhotoSQLite{db: db} }

var _ Photos = (*PhotoSQLite)(nil)

const (
	insertPhotoSQL     = `INSERT INTO house_photos (id, house, path, created_at) VALUES (?, ?, ?, ?)`
	selectPhotosSQL    = `SELECT id, house, path, created_at FROM house_photos ORDER BY rowid ASC`
	selectPhotoByIDSQL = `SELECT id, house, path, created_at FROM house_photos WHERE id = ?`
	deletePhotoSQL     = `DELETE FROM house_photos WHERE id = ?`
)

func (r *PhotoSQLite) Create(ctx context.Context, p models.HousePhoto) error {
	if _, err := r.db.ExecContext(ctx, insertPhotoSQL, p.ID, p.House, p.Path, p.CreatedAt.UTC()); err != nil {
		return fmt.Errorf("insert house photo %q: %w", p.ID, err)
	}
	return nil
}

func (r *PhotoSQLite) GetByID(ctx context.Context, id string) (*models.HousePhoto, error) {
	p, err := scanPhoto(r.db.QueryRowContext(ctx, selectPhotoByIDSQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select house photo %q: %w", id, err)
	}
	return &p, nil
}

func (r *PhotoSQLite) List(ctx context.Context) ([]models.HousePhoto, error) {
	rows, err := r.db.QueryContext(ctx, selectPhotosSQL)
	if err != nil {
		return nil, fmt.Errorf("select house photos: %w", err)
	}
	defer rows.Close()

	out := make([]models.HousePhoto, 0, 16)
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, fmt.Errorf("scan house photo: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PhotoSQLite) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deletePhotoSQL, id)
	if err != nil {
		return fmt.Errorf("delete house photo %q: %w", id, err)
	}
	return expectOneRow(res, "house photo", id)
}

func scanPhoto(s rowScanner) (models.HousePhoto, error) {
	var (
		p         models.HousePhoto
		createdAt time.Time
	)
	if err := s.Scan(&p.ID, &p.House, &p.Path, &createdAt); err != nil {
		return models.HousePhoto{}, err
	}
	p.CreatedAt = createdAt.UTC()
	return p, nil
}
