package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"pet-lost-found/internal/domain/sightings"
)

type SightingsRepo struct {
	db *sql.DB
}

func NewSightingsRepo(db *sql.DB) *SightingsRepo {
	return &SightingsRepo{db: db}
}

const sightingColumns = `
	id, finder_phone, finder_name, description, location, photo_url,
	alert_id, matched_at, created_at`

func (r *SightingsRepo) Create(ctx context.Context, s sightings.Sighting) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sightings (`+sightingColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		s.ID,
		s.FinderPhone,
		s.FinderName,
		s.Description,
		s.Location,
		s.PhotoURL,
		nullString(s.AlertID),
		toNullTime(s.MatchedAt),
		s.CreatedAt,
	)
	return err
}

func (r *SightingsRepo) GetByID(ctx context.Context, id string) (sightings.Sighting, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return sightings.Sighting{}, sightings.ErrNotFound
	}

	s, err := scanSighting(r.db.QueryRowContext(ctx, `SELECT `+sightingColumns+` FROM sightings WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sightings.Sighting{}, sightings.ErrNotFound
		}
		return sightings.Sighting{}, err
	}
	return s, nil
}

// LinkAlert es condicional: solo vincula si alert_id sigue NULL.
func (r *SightingsRepo) LinkAlert(ctx context.Context, id, alertID string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE sightings
		SET alert_id = $2, matched_at = $3
		WHERE id = $1 AND alert_id IS NULL
	`, id, alertID, at)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM sightings WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return sightings.ErrNotFound
	}
	return sightings.ErrAlreadyMatched
}

func (r *SightingsRepo) ListByAlert(ctx context.Context, alertID string) ([]sightings.Sighting, error) {
	return r.list(ctx, `
		SELECT `+sightingColumns+`
		FROM sightings
		WHERE alert_id = $1
		ORDER BY created_at DESC
	`, alertID)
}

func (r *SightingsRepo) ListUnmatched(ctx context.Context, limit int) ([]sightings.Sighting, error) {
	return r.list(ctx, `
		SELECT `+sightingColumns+`
		FROM sightings
		WHERE alert_id IS NULL
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
}

func (r *SightingsRepo) list(ctx context.Context, query string, args ...any) ([]sightings.Sighting, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]sightings.Sighting, 0)
	for rows.Next() {
		s, err := scanSighting(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanSighting(sc scanner) (sightings.Sighting, error) {
	var (
		s       sightings.Sighting
		alertID sql.NullString
		matched sql.NullTime
	)
	if err := sc.Scan(
		&s.ID,
		&s.FinderPhone,
		&s.FinderName,
		&s.Description,
		&s.Location,
		&s.PhotoURL,
		&alertID,
		&matched,
		&s.CreatedAt,
	); err != nil {
		return sightings.Sighting{}, err
	}
	s.AlertID = alertID.String
	s.MatchedAt = fromNullTime(matched)
	return s, nil
}
