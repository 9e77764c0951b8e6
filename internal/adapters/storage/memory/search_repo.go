package memory

import (
	"context"
	"sort"
	"strings"

	"pet-lost-found/internal/domain/matching"
	"pet-lost-found/internal/platform/textnorm"
)

// minTokenLen descarta artículos y conectores cortos ("el", "de", "con").
const minTokenLen = 3

// SearchRepo aproxima search_lost_pets: fracción de términos de la consulta
// presentes en el texto de la alerta, +0.1 si la frase aparece completa.
type SearchRepo struct {
	alerts   *AlertRepo
	pets     *PetRepo
	profiles *ProfileRepo
}

func NewSearchRepo(alerts *AlertRepo, pets *PetRepo, profiles *ProfileRepo) *SearchRepo {
	return &SearchRepo{alerts: alerts, pets: pets, profiles: profiles}
}

func (r *SearchRepo) SearchActive(ctx context.Context, query string, limit int) ([]matching.Candidate, error) {
	terms := textnorm.Tokens(query, minTokenLen)
	phrase := textnorm.Fold(query)

	out := make([]matching.Candidate, 0)
	for _, a := range r.alerts.listActive() {
		pet, err := r.pets.GetByID(ctx, a.PetID)
		if err != nil {
			continue
		}
		owner, _ := r.profiles.GetByID(ctx, a.OwnerID)

		doc := textnorm.Fold(strings.Join([]string{
			pet.Name, pet.Species, pet.Breed, pet.Color, pet.Marks, string(pet.Size), pet.CoatType,
			a.Description, a.LastSeenLocation, a.ExtraInfo,
		}, " "))
		rank := score(doc, terms, phrase)
		if rank <= 0 {
			continue
		}

		out = append(out, matching.Candidate{
			AlertID:           a.ID,
			PetID:             pet.ID,
			Rank:              rank,
			PetName:           pet.Name,
			Species:           pet.Species,
			Breed:             pet.Breed,
			Color:             pet.Color,
			Gender:            string(pet.Gender),
			Size:              string(pet.Size),
			CoatType:          pet.CoatType,
			Marks:             pet.Marks,
			PhotoURL:          pet.PhotoURL,
			LastSeenAt:        a.LastSeenAt,
			LastSeenLocation:  a.LastSeenLocation,
			Description:       a.Description,
			OwnerName:         owner.Name,
			OwnerPhone:        owner.Phone,
			OwnerCity:         owner.City,
			OwnerNeighborhood: owner.Neighborhood,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Rank != out[j].Rank {
			return out[i].Rank > out[j].Rank
		}
		return out[i].LastSeenAt.After(out[j].LastSeenAt)
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func score(doc string, terms []string, phrase string) float64 {
	words := make(map[string]struct{})
	for _, w := range strings.Fields(doc) {
		words[w] = struct{}{}
	}

	var rank float64
	if len(terms) > 0 {
		hits := 0
		for _, t := range terms {
			if _, ok := words[t]; ok {
				hits++
			}
		}
		rank = float64(hits) / float64(len(terms))
	}
	if phrase != "" && strings.Contains(doc, phrase) {
		rank += 0.1
	}
	return rank
}
