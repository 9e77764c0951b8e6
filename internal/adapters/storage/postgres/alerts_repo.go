package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-lost-found/internal/domain/alerts"
)

const oneActivePerPetIndex = "lost_pet_alerts_one_active_per_pet"

type AlertsRepo struct {
	db *sql.DB
}

func NewAlertsRepo(db *sql.DB) *AlertsRepo {
	return &AlertsRepo{db: db}
}

const alertColumns = `
	id, pet_id, owner_id,
	last_seen_at, last_seen_location, description, extra_info,
	status, resolved_at, resolved_by,
	created_at, updated_at`

// CreateActive: insert + currently_lost=true en la misma transacción.
// El índice parcial único convierte la carrera en ErrAlreadyActive.
func (r *AlertsRepo) CreateActive(ctx context.Context, a alerts.Alert) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO lost_pet_alerts (`+alertColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		a.ID,
		a.PetID,
		a.OwnerID,
		a.LastSeenAt,
		a.LastSeenLocation,
		a.Description,
		a.ExtraInfo,
		string(a.Status),
		toNullTime(a.ResolvedAt),
		string(a.ResolvedBy),
		a.CreatedAt,
		a.UpdatedAt,
	)
	if name, dup := constraintName(err); dup && (name == "" || name == oneActivePerPetIndex) {
		return alerts.ErrAlreadyActive
	}
	if err != nil {
		return err
	}

	if err = setLost(ctx, tx, a.PetID, true); err != nil {
		return fmt.Errorf("mark pet lost: %w", err)
	}
	return tx.Commit()
}

func (r *AlertsRepo) GetByID(ctx context.Context, id string) (alerts.Alert, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return alerts.Alert{}, alerts.ErrNotFound
	}
	return r.getOne(ctx, `SELECT `+alertColumns+` FROM lost_pet_alerts WHERE id = $1`, id)
}

func (r *AlertsRepo) GetActiveByPet(ctx context.Context, petID string) (alerts.Alert, error) {
	return r.getOne(ctx, `
		SELECT `+alertColumns+`
		FROM lost_pet_alerts
		WHERE pet_id = $1 AND status = 'active'
	`, petID)
}

func (r *AlertsRepo) ListActiveByOwner(ctx context.Context, ownerID string) ([]alerts.Alert, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+alertColumns+`
		FROM lost_pet_alerts
		WHERE owner_id = $1 AND status = 'active'
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]alerts.Alert, 0)
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AlertsRepo) Resolve(ctx context.Context, id string, by alerts.ResolvedBy, at time.Time) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var petID string
	err = tx.QueryRowContext(ctx, `
		UPDATE lost_pet_alerts
		SET status = 'resolved', resolved_at = $2, resolved_by = $3, updated_at = $2
		WHERE id = $1 AND status = 'active'
		RETURNING pet_id
	`, id, at, string(by)).Scan(&petID)
	if errors.Is(err, sql.ErrNoRows) {
		// ya resuelta o inexistente
		var exists bool
		if err = tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM lost_pet_alerts WHERE id = $1)`, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			err = alerts.ErrNotFound
			return err
		}
		return tx.Commit()
	}
	if err != nil {
		return err
	}

	if err = setLost(ctx, tx, petID, false); err != nil {
		return fmt.Errorf("clear pet lost: %w", err)
	}
	return tx.Commit()
}

func (r *AlertsRepo) getOne(ctx context.Context, query, arg string) (alerts.Alert, error) {
	a, err := scanAlert(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return alerts.Alert{}, alerts.ErrNotFound
		}
		return alerts.Alert{}, err
	}
	return a, nil
}

func scanAlert(s scanner) (alerts.Alert, error) {
	var (
		a          alerts.Alert
		status     string
		resolvedBy string
		resolvedAt sql.NullTime
	)
	if err := s.Scan(
		&a.ID,
		&a.PetID,
		&a.OwnerID,
		&a.LastSeenAt,
		&a.LastSeenLocation,
		&a.Description,
		&a.ExtraInfo,
		&status,
		&resolvedAt,
		&resolvedBy,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return alerts.Alert{}, err
	}
	a.Status = alerts.Status(status)
	a.ResolvedBy = alerts.ResolvedBy(resolvedBy)
	a.ResolvedAt = fromNullTime(resolvedAt)
	return a, nil
}
