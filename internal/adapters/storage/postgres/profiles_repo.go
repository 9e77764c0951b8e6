package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"pet-lost-found/internal/domain/profiles"
)

type ProfilesRepo struct {
	db *sql.DB
}

func NewProfilesRepo(db *sql.DB) *ProfilesRepo {
	return &ProfilesRepo{db: db}
}

const profileColumns = `
	id, phone, name, email, city, country, neighborhood,
	is_subscriber, created_at, updated_at`

func (r *ProfilesRepo) Create(ctx context.Context, p profiles.Profile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (`+profileColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		p.ID,
		p.Phone,
		p.Name,
		p.Email,
		p.City,
		p.Country,
		p.Neighborhood,
		p.IsSubscriber,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if _, dup := constraintName(err); dup {
		return profiles.ErrDuplicate
	}
	return err
}

func (r *ProfilesRepo) Update(ctx context.Context, p profiles.Profile) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE profiles
		SET
			name = $2,
			email = $3,
			city = $4,
			country = $5,
			neighborhood = $6,
			is_subscriber = $7,
			updated_at = $8
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		p.Email,
		p.City,
		p.Country,
		p.Neighborhood,
		p.IsSubscriber,
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return profiles.ErrNotFound
	}
	return nil
}

func (r *ProfilesRepo) GetByID(ctx context.Context, id string) (profiles.Profile, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return profiles.Profile{}, profiles.ErrNotFound
	}
	return r.getOne(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
}

func (r *ProfilesRepo) GetByPhone(ctx context.Context, phone string) (profiles.Profile, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return profiles.Profile{}, profiles.ErrNotFound
	}
	return r.getOne(ctx, `SELECT `+profileColumns+` FROM profiles WHERE phone = $1`, phone)
}

// ListReachable: perfiles con ciudad y teléfono no vacíos.
func (r *ProfilesRepo) ListReachable(ctx context.Context) ([]profiles.Profile, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+profileColumns+`
		FROM profiles
		WHERE btrim(city) <> '' AND btrim(phone) <> ''
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]profiles.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProfilesRepo) getOne(ctx context.Context, query string, arg string) (profiles.Profile, error) {
	p, err := scanProfile(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return profiles.Profile{}, profiles.ErrNotFound
		}
		return profiles.Profile{}, err
	}
	return p, nil
}

func scanProfile(s scanner) (profiles.Profile, error) {
	var p profiles.Profile
	err := s.Scan(
		&p.ID,
		&p.Phone,
		&p.Name,
		&p.Email,
		&p.City,
		&p.Country,
		&p.Neighborhood,
		&p.IsSubscriber,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

// -------------------------
// Plans
// -------------------------

type PlansRepo struct {
	db *sql.DB
}

func NewPlansRepo(db *sql.DB) *PlansRepo {
	return &PlansRepo{db: db}
}

func (r *PlansRepo) GetByID(ctx context.Context, id string) (profiles.Plan, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, price::float8, pet_limit, duration_months, is_active
		FROM plans
		WHERE id = $1
	`, strings.TrimSpace(id))

	var p profiles.Plan
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.PetLimit, &p.DurationMonths, &p.Active); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return profiles.Plan{}, profiles.ErrPlanNotFound
		}
		return profiles.Plan{}, err
	}
	return p, nil
}

func (r *PlansRepo) ListActive(ctx context.Context) ([]profiles.Plan, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, price::float8, pet_limit, duration_months, is_active
		FROM plans
		WHERE is_active
		ORDER BY price ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]profiles.Plan, 0)
	for rows.Next() {
		var p profiles.Plan
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.PetLimit, &p.DurationMonths, &p.Active); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// -------------------------
// Subscriptions
// -------------------------

type SubscriptionsRepo struct {
	db *sql.DB
}

func NewSubscriptionsRepo(db *sql.DB) *SubscriptionsRepo {
	return &SubscriptionsRepo{db: db}
}

func (r *SubscriptionsRepo) Create(ctx context.Context, s profiles.Subscription) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_subscriptions (id, profile_id, plan_id, status, activated_at, expires_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`,
		s.ID,
		s.ProfileID,
		s.PlanID,
		string(s.Status),
		s.ActivatedAt,
		s.ExpiresAt,
	)
	return err
}

// ListByProfile devuelve todas (vigentes o no) con el plan incluido;
// el filtro de vigencia es de quota.
func (r *SubscriptionsRepo) ListByProfile(ctx context.Context, profileID string) ([]profiles.Subscription, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			s.id, s.profile_id, s.plan_id, s.status, s.activated_at, s.expires_at,
			p.id, p.name, p.price::float8, p.pet_limit, p.duration_months, p.is_active
		FROM user_subscriptions s
		JOIN plans p ON p.id = s.plan_id
		WHERE s.profile_id = $1
		ORDER BY s.activated_at ASC
	`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]profiles.Subscription, 0)
	for rows.Next() {
		var (
			s      profiles.Subscription
			status string
		)
		if err := rows.Scan(
			&s.ID, &s.ProfileID, &s.PlanID, &status, &s.ActivatedAt, &s.ExpiresAt,
			&s.Plan.ID, &s.Plan.Name, &s.Plan.Price, &s.Plan.PetLimit, &s.Plan.DurationMonths, &s.Plan.Active,
		); err != nil {
			return nil, err
		}
		s.Status = profiles.SubscriptionStatus(status)
		s.ActivatedAt = s.ActivatedAt.In(time.UTC)
		s.ExpiresAt = s.ExpiresAt.In(time.UTC)
		out = append(out, s)
	}
	return out, rows.Err()
}
