package profiles

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"pet-lost-found/internal/apperrors"
	"pet-lost-found/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/profiles", ensureProfileHandler(svc))
	r.Get("/me", getMeHandler(svc))
	r.Patch("/me", updateMeHandler(svc))
	r.Post("/me/subscriptions", subscribeHandler(svc))
	r.Get("/plans", listPlansHandler(svc))
}

type profileRequest struct {
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	City         *string `json:"city"`
	Country      *string `json:"country"`
	Neighborhood *string `json:"neighborhood"`
}

type subscribeRequest struct {
	PlanID string `json:"plan_id"`
}

type profileResponse struct {
	ID           string    `json:"id"`
	Phone        string    `json:"phone"`
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	City         string    `json:"city,omitempty"`
	Country      string    `json:"country,omitempty"`
	Neighborhood string    `json:"neighborhood,omitempty"`
	IsSubscriber bool      `json:"is_subscriber"`
	CreatedAt    time.Time `json:"created_at"`
}

type planResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	PetLimit       int     `json:"pet_limit"`
	Unlimited      bool    `json:"unlimited"`
	DurationMonths int     `json:"duration_months"`
}

type subscriptionResponse struct {
	ID          string       `json:"id"`
	Plan        planResponse `json:"plan"`
	Status      string       `json:"status"`
	ActivatedAt time.Time    `json:"activated_at"`
	ExpiresAt   time.Time    `json:"expires_at"`
}

// ensureProfileHandler godoc
// @Summary Crear (o recuperar) mi perfil
// @Description Primera interacción del usuario. Si el teléfono ya tiene perfil lo devuelve; los campos enviados se aplican encima.
// @Tags profiles
// @Accept json
// @Produce json
// @Param X-Debug-Phone header string false "Solo en modo dev, teléfono del usuario"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body profileRequest false "Datos opcionales del perfil"
// @Success 200 {object} profileResponse
// @Failure 400 {object} apperrors.HTTPBody "VALIDATION_ERROR"
// @Router /profiles [post]
func ensureProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Phone) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// body opcional
		var req profileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		name := claims.Name
		if req.Name != nil {
			name = *req.Name
		}
		p, err := svc.Ensure(r.Context(), claims.Phone, name)
		if err != nil {
			writeError(w, err)
			return
		}

		if req.Email != nil || req.City != nil || req.Country != nil || req.Neighborhood != nil {
			p, err = svc.Update(r.Context(), p.Phone, UpdateInput{
				Email:        req.Email,
				City:         req.City,
				Country:      req.Country,
				Neighborhood: req.Neighborhood,
			})
			if err != nil {
				writeError(w, err)
				return
			}
		}
		writeJSON(w, http.StatusOK, toProfileResponse(p))
	}
}

// getMeHandler godoc
// @Summary Ver mi perfil
// @Tags profiles
// @Produce json
// @Param X-Debug-Phone header string false "Solo en modo dev"
// @Success 200 {object} profileResponse
// @Failure 404 {object} apperrors.HTTPBody "PROFILE_NOT_FOUND"
// @Router /me [get]
func getMeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		phone := middleware.Phone(r.Context())
		if phone == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.Get(r.Context(), phone)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toProfileResponse(p))
	}
}

// updateMeHandler godoc
// @Summary Actualizar mi perfil
// @Description La ciudad define a quién llegan las difusiones de alertas.
// @Tags profiles
// @Accept json
// @Produce json
// @Param X-Debug-Phone header string false "Solo en modo dev"
// @Param payload body profileRequest true "Campos a cambiar"
// @Success 200 {object} profileResponse
// @Failure 400 {object} apperrors.HTTPBody "VALIDATION_ERROR"
// @Failure 404 {object} apperrors.HTTPBody "PROFILE_NOT_FOUND"
// @Router /me [patch]
func updateMeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		phone := middleware.Phone(r.Context())
		if phone == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req profileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Update(r.Context(), phone, UpdateInput(req))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toProfileResponse(p))
	}
}

// subscribeHandler godoc
// @Summary Activar un plan
// @Description Registra la suscripción ya pagada. El cobro ocurre fuera de este servicio.
// @Tags profiles
// @Accept json
// @Produce json
// @Param X-Debug-Phone header string false "Solo en modo dev"
// @Param payload body subscribeRequest true "Plan"
// @Success 201 {object} subscriptionResponse
// @Failure 404 {object} apperrors.HTTPBody "PROFILE_NOT_FOUND / PLAN_NOT_FOUND"
// @Router /me/subscriptions [post]
func subscribeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		phone := middleware.Phone(r.Context())
		if phone == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req subscribeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		sub, err := svc.Subscribe(r.Context(), phone, req.PlanID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, subscriptionResponse{
			ID:          sub.ID,
			Plan:        toPlanResponse(sub.Plan),
			Status:      string(sub.Status),
			ActivatedAt: sub.ActivatedAt,
			ExpiresAt:   sub.ExpiresAt,
		})
	}
}

// listPlansHandler godoc
// @Summary Planes disponibles
// @Tags profiles
// @Produce json
// @Success 200 {array} planResponse
// @Router /plans [get]
func listPlansHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		plans, err := svc.ListPlans(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		out := make([]planResponse, 0, len(plans))
		for _, p := range plans {
			out = append(out, toPlanResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toProfileResponse(p Profile) profileResponse {
	return profileResponse{
		ID:           p.ID,
		Phone:        p.Phone,
		Name:         p.Name,
		Email:        p.Email,
		City:         p.City,
		Country:      p.Country,
		Neighborhood: p.Neighborhood,
		IsSubscriber: p.IsSubscriber,
		CreatedAt:    p.CreatedAt,
	}
}

func toPlanResponse(p Plan) planResponse {
	return planResponse{
		ID:             p.ID,
		Name:           p.Name,
		Price:          p.Price,
		PetLimit:       p.PetLimit,
		Unlimited:      p.Unlimited(),
		DurationMonths: p.DurationMonths,
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
