package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"house_rental/internal/models"

	"github.com/google/uuid"
)

type ActivitySQLite struct {
	db *sql.DB
}

func NewActivitySQLite(db *sql.DB) *ActivitySQLite { return &ActivitySQLite{db: db} }

var _ ActivityRepo = (*ActivitySQLite)(nil)

const insertActivitySQL = `INSERT INTO activity (id, occurred_at, type, actor, subject, description)
	VALUES (?, ?, ?, ?, ?, ?)`

// Append inserts a new entry. If ID or OccurredAt are empty, they’re set.
func (r *ActivitySQLite) Append(ctx context.Context, a models.Activity) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.OccurredAt.IsZero() {
		a.OccurredAt = time.Now().UTC()
	} else {
		a.OccurredAt = a.OccurredAt.UTC()
	}

	_, err := r.db.ExecContext(ctx, insertActivitySQL,
		a.ID,
		a.OccurredAt,
		strings.ToUpper(strings.TrimSpace(a.Type)),
		a.Actor,
		a.Subject,
		a.Description,
	)
	if err != nil {
		return fmt.Errorf("insert activity %q: %w", a.Type, err)
	}
	return nil
}

// List returns entries filtered by [from, to] (inclusive), type and actor, ordered ASC.
func (r *ActivitySQLite) List(ctx context.Context, from, to time.Time, typ, actor string) ([]models.Activity, error) {
	var (
		conds []string
		args  []any
	)

	if !from.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, from.UTC())
	}
	if !to.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, to.UTC())
	}
	if typ = strings.ToUpper(strings.TrimSpace(typ)); typ != "" {
		conds = append(conds, "type = ?")
		args = append(args, typ)
	}
	if actor != "" {
		conds = append(conds, "actor = ?")
		args = append(args, actor)
	}

	q := `SELECT id, occurred_at, type, actor, subject, description FROM activity`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY occurred_at ASC, rowid ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("select activity: %w", err)
	}
	defer rows.Close()

	out := make([]models.Activity, 0, 64)
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(&a.ID, &a.OccurredAt, &a.Type, &a.Actor, &a.Subject, &a.Description); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		a.OccurredAt = a.OccurredAt.UTC()
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
