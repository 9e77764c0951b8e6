package matching

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"pet-lost-found/internal/apperrors"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes: minQueryLength se exige acá, no en el servicio.
func RegisterRoutes(r chi.Router, svc *Service, minQueryLength int) {
	r.Post("/search", searchHandler(svc, minQueryLength))
}

type searchRequest struct {
	Description string `json:"description"`
}

type candidateResponse struct {
	AlertID           string    `json:"alert_id"`
	PetID             string    `json:"pet_id"`
	Rank              float64   `json:"rank"`
	PetName           string    `json:"pet_name"`
	Species           string    `json:"species"`
	Breed             string    `json:"breed"`
	Color             string    `json:"color"`
	Gender            string    `json:"gender"`
	Size              string    `json:"size"`
	CoatType          string    `json:"coat_type"`
	Marks             string    `json:"marks,omitempty"`
	PhotoURL          string    `json:"photo_url"`
	LastSeenAt        time.Time `json:"last_seen_at"`
	LastSeenLocation  string    `json:"last_seen_location,omitempty"`
	Description       string    `json:"description,omitempty"`
	OwnerName         string    `json:"owner_name"`
	OwnerPhone        string    `json:"owner_phone"`
	OwnerCity         string    `json:"owner_city"`
	OwnerNeighborhood string    `json:"owner_neighborhood,omitempty"`
}

type searchResponse struct {
	Results []candidateResponse `json:"results"`
	Message string              `json:"message,omitempty"`
}

// searchHandler godoc
// @Summary Buscar mascotas perdidas
// @Description Busca entre las alertas activas a partir de una descripción libre. Devuelve hasta 5 resultados ordenados por relevancia. Sin coincidencias responde 200 con `results` vacío y `message`.
// @Tags search
// @Accept json
// @Produce json
// @Param payload body searchRequest true "Descripción del animal encontrado"
// @Success 200 {object} searchResponse
// @Failure 400 {object} apperrors.HTTPBody "VALIDATION_ERROR"
// @Failure 503 {object} apperrors.HTTPBody "SEARCH_UNAVAILABLE"
// @Router /search [post]
func searchHandler(svc *Service, minLen int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		desc := strings.TrimSpace(req.Description)
		if utf8.RuneCountInString(desc) < minLen {
			writeError(w, apperrors.Validation(
				fmt.Sprintf("description must have at least %d characters", minLen), "description"))
			return
		}

		res, err := svc.Search(r.Context(), desc)
		if err != nil {
			writeError(w, err)
			return
		}

		out := searchResponse{Results: make([]candidateResponse, 0, len(res.Candidates)), Message: res.Message}
		for _, c := range res.Candidates {
			out.Results = append(out.Results, toCandidateResponse(c))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toCandidateResponse(c Candidate) candidateResponse {
	return candidateResponse{
		AlertID:           c.AlertID,
		PetID:             c.PetID,
		Rank:              c.Rank,
		PetName:           c.PetName,
		Species:           c.Species,
		Breed:             c.Breed,
		Color:             c.Color,
		Gender:            c.Gender,
		Size:              c.Size,
		CoatType:          c.CoatType,
		Marks:             c.Marks,
		PhotoURL:          c.PhotoURL,
		LastSeenAt:        c.LastSeenAt,
		LastSeenLocation:  c.LastSeenLocation,
		Description:       c.Description,
		OwnerName:         c.OwnerName,
		OwnerPhone:        c.OwnerPhone,
		OwnerCity:         c.OwnerCity,
		OwnerNeighborhood: c.OwnerNeighborhood,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, apperrors.HTTPStatus(err), apperrors.Body(err))
}
