package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	hr "house_rental"
	"house_rental/internal/models"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	insertUserSQL = `INSERT INTO users (id, first_name, last_name, email, phone_number, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	selectUserColumns    = `SELECT id, first_name, last_name, email, phone_number, password_hash, created_at FROM users`
	selectUserByEmailSQL = selectUserColumns + ` WHERE email = ?`
	selectUserByIDSQL    = selectUserColumns + ` WHERE id = ?`
	updateUserProfileSQL = `UPDATE users SET first_name = ?, last_name = ?, phone_number = ? WHERE id = ?`
)

// isUniqueViolation reports whether err is SQLite's UNIQUE constraint error.
func isUniqueViolation(err error) bool {
	var serr *sqlite.Error
	return errors.As(err, &serr) && serr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

// Create inserts a new user. A duplicate email yields ErrConflict.
func (r *UserRepository) Create(ctx context.Context, u models.User) error {
	_, err := r.db.ExecContext(ctx, insertUserSQL,
		u.ID, u.FirstName, u.LastName, u.Email, u.PhoneNumber, u.PasswordHash, u.CreatedAt.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return hr.Errorf(hr.ErrConflict, "email %q is already registered", u.Email)
		}
		return fmt.Errorf("insert user %q: %w", u.Email, err)
	}
	return nil
}

// GetByEmail fetches a user by email. Returns (nil, nil) if not found.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, selectUserByEmailSQL, email))
	if err != nil {
		return nil, fmt.Errorf("select user %q: %w", email, err)
	}
	return u, nil
}

// GetByID fetches a user by id. Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, selectUserByIDSQL, id))
	if err != nil {
		return nil, fmt.Errorf("select user %q: %w", id, err)
	}
	return u, nil
}

// UpdateProfile overwrites the mutable profile fields.
func (r *UserRepository) UpdateProfile(ctx context.Context, u models.User) error {
	res, err := r.db.ExecContext(ctx, updateUserProfileSQL, u.FirstName, u.LastName, u.PhoneNumber, u.ID)
	if err != nil {
		return fmt.Errorf("update user %q: %w", u.ID, err)
	}
	return expectOneRow(res, "user", u.ID)
}

func scanUser(row *sql.Row) (*models.User, error) {
	var (
		u         models.User
		createdAt time.Time
	)
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PhoneNumber, &u.PasswordHash, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.CreatedAt = createdAt.UTC()
	return &u, nil
}

// expectOneRow turns a zero-row UPDATE/DELETE into ErrNotFound.
func expectOneRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for %s %q: %w", kind, id, err)
	}
	if n == 0 {
		return hr.Errorf(hr.ErrNotFound, "%s %q not found", kind, id)
	}
	return nil
}
