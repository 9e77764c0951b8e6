package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"pet-lost-found/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const petColumns = `
	id, owner_id,
	name, species, breed, color, gender, size, coat_type,
	birth_date, photo_url, marks, currently_lost,
	created_at, updated_at`

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (`+petColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`,
		p.ID,
		p.OwnerID,
		p.Name,
		p.Species,
		p.Breed,
		p.Color,
		string(p.Gender),
		string(p.Size),
		p.CoatType,
		toNullTime(p.BirthDate),
		p.PhotoURL,
		p.Marks,
		p.CurrentlyLost,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

// Update no toca currently_lost; eso es de alerts.
func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $2,
			species = $3,
			breed = $4,
			color = $5,
			gender = $6,
			size = $7,
			coat_type = $8,
			birth_date = $9,
			photo_url = $10,
			marks = $11,
			updated_at = $12
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		p.Species,
		p.Breed,
		p.Color,
		string(p.Gender),
		string(p.Size),
		p.CoatType,
		toNullTime(p.BirthDate),
		p.PhotoURL,
		p.Marks,
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	p, err := scanPet(r.db.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}
	return p, nil
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerID string) ([]pets.Pet, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE owner_id = $1
		ORDER BY created_at ASC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PetsRepo) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM pets WHERE owner_id = $1`, ownerID).Scan(&n)
	return n, err
}

// execer: setLost corre dentro de la transacción de alerts.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func setLost(ctx context.Context, db execer, id string, lost bool) error {
	res, err := db.ExecContext(ctx, `
		UPDATE pets SET currently_lost = $2, updated_at = now() WHERE id = $1
	`, id, lost)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func scanPet(s scanner) (pets.Pet, error) {
	var (
		p      pets.Pet
		gender string
		size   string
		bd     sql.NullTime
	)
	if err := s.Scan(
		&p.ID,
		&p.OwnerID,
		&p.Name,
		&p.Species,
		&p.Breed,
		&p.Color,
		&gender,
		&size,
		&p.CoatType,
		&bd,
		&p.PhotoURL,
		&p.Marks,
		&p.CurrentlyLost,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return pets.Pet{}, err
	}
	p.Gender = pets.Gender(gender)
	p.Size = pets.Size(size)
	// birth_date es date; pgx la trae como medianoche UTC
	p.BirthDate = fromNullTime(bd)
	return p, nil
}
