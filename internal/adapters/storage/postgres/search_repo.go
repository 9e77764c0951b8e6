package postgres

import (
	"context"
	"database/sql"

	"pet-lost-found/internal/domain/matching"
)

// SearchRepo delega el ranking a la función search_lost_pets (ver migraciones).
type SearchRepo struct {
	db *sql.DB
}

func NewSearchRepo(db *sql.DB) *SearchRepo {
	return &SearchRepo{db: db}
}

func (r *SearchRepo) SearchActive(ctx context.Context, query string, limit int) ([]matching.Candidate, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			alert_id, pet_id, rank,
			pet_name, species, breed, color, gender, size, coat_type, marks, photo_url,
			last_seen_at, last_seen_location, description,
			owner_name, owner_phone, owner_city, owner_neighborhood
		FROM search_lost_pets($1, $2)
	`, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]matching.Candidate, 0)
	for rows.Next() {
		var c matching.Candidate
		if err := rows.Scan(
			&c.AlertID,
			&c.PetID,
			&c.Rank,
			&c.PetName,
			&c.Species,
			&c.Breed,
			&c.Color,
			&c.Gender,
			&c.Size,
			&c.CoatType,
			&c.Marks,
			&c.PhotoURL,
			&c.LastSeenAt,
			&c.LastSeenLocation,
			&c.Description,
			&c.OwnerName,
			&c.OwnerPhone,
			&c.OwnerCity,
			&c.OwnerNeighborhood,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
