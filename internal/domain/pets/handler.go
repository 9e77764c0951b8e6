package pets

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"pet-lost-found/internal/apperrors"
	"pet-lost-found/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", registerPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))
		pr.Get("/{petID}", getPetHandler(svc))
		pr.Patch("/{petID}", updatePetHandler(svc))
	})
}

type registerPetRequest struct {
	Name      string `json:"name"`
	Species   string `json:"species"`
	Breed     string `json:"breed"`
	Color     string `json:"color"`
	Gender    string `json:"gender"`
	Size      string `json:"size"`
	CoatType  string `json:"coat_type"`
	BirthDate string `json:"birth_date"` // YYYY-MM-DD opcional
	PhotoURL  string `json:"photo_url"`
	Marks     string `json:"marks"`
}

type updatePetRequest struct {
	Name     *string `json:"name"`
	Species  *string `json:"species"`
	Breed    *string `json:"breed"`
	Color    *string `json:"color"`
	Gender   *string `json:"gender"`
	Size     *string `json:"size"`
	CoatType *string `json:"coat_type"`
	PhotoURL *string `json:"photo_url"`
	Marks    *string `json:"marks"`
}

type petResponse struct {
	ID            string     `json:"id"`
	OwnerID       string     `json:"owner_id"`
	Name          string     `json:"name"`
	Species       string     `json:"species"`
	Breed         string     `json:"breed"`
	Color         string     `json:"color"`
	Gender        Gender     `json:"gender"`
	Size          Size       `json:"size"`
	CoatType      string     `json:"coat_type"`
	BirthDate     *time.Time `json:"birth_date,omitempty"`
	PhotoURL      string     `json:"photo_url"`
	Marks         string     `json:"marks,omitempty"`
	CurrentlyLost bool       `json:"currently_lost"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// registerPetHandler godoc
// @Summary Registrar mascota
// @Description Registra una mascota del usuario. Requiere suscripción vigente y cupo disponible. Todos los campos obligatorios faltantes se listan juntos en `fields`.
// @Tags pets
// @Accept json
// @Produce json
// @Param X-Debug-Phone header string false "Solo en modo dev, teléfono del usuario"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body registerPetRequest true "Datos de la mascota"
// @Success 201 {object} petResponse
// @Failure 400 {object} apperrors.HTTPBody "VALIDATION_ERROR"
// @Failure 401 {string} string "unauthorized"
// @Failure 402 {object} apperrors.HTTPBody "SUBSCRIPTION_REQUIRED / EXPIRED / INVALID"
// @Failure 403 {object} apperrors.HTTPBody "PET_LIMIT_EXCEEDED"
// @Failure 503 {object} apperrors.HTTPBody "DATABASE_ERROR"
// @Router /pets [post]
func registerPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		phone := middleware.Phone(r.Context())
		if phone == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req registerPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var bd *time.Time
		if strings.TrimSpace(req.BirthDate) != "" {
			t, err := time.Parse("2006-01-02", req.BirthDate)
			if err != nil {
				writeError(w, apperrors.Validation("birth_date must be YYYY-MM-DD", "birth_date"))
				return
			}
			bd = &t
		}

		p, err := svc.Register(r.Context(), phone, RegisterInput{
			Name:      req.Name,
			Species:   req.Species,
			Breed:     req.Breed,
			Color:     req.Color,
			Gender:    req.Gender,
			Size:      req.Size,
			CoatType:  req.CoatType,
			BirthDate: bd,
			PhotoURL:  req.PhotoURL,
			Marks:     req.Marks,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

// listPetsHandler godoc
// @Summary Listar mis mascotas
// @Tags pets
// @Produce json
// @Param X-Debug-Phone header string false "Solo en modo dev, teléfono del usuario"
// @Success 200 {array} petResponse
// @Failure 401 {string} string "unauthorized"
// @Router /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		phone := middleware.Phone(r.Context())
		if phone == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByOwner(r.Context(), phone)
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getPetHandler godoc
// @Summary Ver mascota
// @Tags pets
// @Produce json
// @Param X-Debug-Phone header string false "Solo en modo dev, teléfono del usuario"
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} petResponse
// @Failure 404 {object} apperrors.HTTPBody "PET_NOT_FOUND"
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		phone := middleware.Phone(r.Context())
		if phone == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.Get(r.Context(), phone, chi.URLParam(r, "petID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// updatePetHandler godoc
// @Summary Actualizar mascota
// @Description PATCH parcial. Los campos obligatorios no pueden quedar vacíos; `birth_date: null` la borra. `currently_lost` solo cambia con alertas.
// @Tags pets
// @Accept json
// @Produce json
// @Param X-Debug-Phone header string false "Solo en modo dev, teléfono del usuario"
// @Param petID path string true "ID de la mascota"
// @Param payload body updatePetRequest true "Campos a modificar"
// @Success 200 {object} petResponse
// @Failure 400 {object} apperrors.HTTPBody "VALIDATION_ERROR"
// @Failure 404 {object} apperrors.HTTPBody "PET_NOT_FOUND"
// @Router /pets/{petID} [patch]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		phone := middleware.Phone(r.Context())
		if phone == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// map primero para distinguir "birth_date": null de "no enviado"
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		var req updatePetRequest
		b, _ := json.Marshal(raw)
		if err := json.Unmarshal(b, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := UpdateInput{
			Name:     req.Name,
			Species:  req.Species,
			Breed:    req.Breed,
			Color:    req.Color,
			Gender:   req.Gender,
			Size:     req.Size,
			CoatType: req.CoatType,
			PhotoURL: req.PhotoURL,
			Marks:    req.Marks,
		}
		if v, exists := raw["birth_date"]; exists {
			in.BirthDateSet = true
			if string(v) != "null" {
				var s string
				if err := json.Unmarshal(v, &s); err != nil {
					writeError(w, apperrors.Validation("birth_date must be YYYY-MM-DD or null", "birth_date"))
					return
				}
				t, err := time.Parse("2006-01-02", s)
				if err != nil {
					writeError(w, apperrors.Validation("birth_date must be YYYY-MM-DD or null", "birth_date"))
					return
				}
				in.BirthDate = &t
			}
		}

		updated, err := svc.Update(r.Context(), phone, chi.URLParam(r, "petID"), in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(updated))
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:            p.ID,
		OwnerID:       p.OwnerID,
		Name:          p.Name,
		Species:       p.Species,
		Breed:         p.Breed,
		Color:         p.Color,
		Gender:        p.Gender,
		Size:          p.Size,
		CoatType:      p.CoatType,
		BirthDate:     p.BirthDate,
		PhotoURL:      p.PhotoURL,
		Marks:         p.Marks,
		CurrentlyLost: p.CurrentlyLost,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// writeJSON/writeError se repiten en cada módulo; no hay paquete de helpers HTTP todavía.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, apperrors.HTTPStatus(err), apperrors.Body(err))
}
