package alerts

import (
	"encoding/json"
	"net/http"
	"time"

	"pet-lost-found/internal/apperrors"
	"pet-lost-found/internal/domain/broadcast"
	"pet-lost-found/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/alerts", createAlertHandler(svc))
	r.Post("/alerts/{alertID}/resolve", resolveAlertHandler(svc))
	r.Post("/alerts/{alertID}/broadcast", rebroadcastHandler(svc))
	r.Get("/me/alerts", listMyAlertsHandler(svc))
}

type createAlertRequest struct {
	LastSeen    string `json:"last_seen"`
	Pet         string `json:"pet"` // id o nombre
	Description string `json:"description"`
	Location    string `json:"location"`
	ExtraInfo   string `json:"extra_info"`
}

type alertResponse struct {
	ID               string     `json:"id"`
	PetID            string     `json:"pet_id"`
	LastSeenAt       time.Time  `json:"last_seen_at"`
	LastSeenLocation string     `json:"last_seen_location,omitempty"`
	Description      string     `json:"description,omitempty"`
	ExtraInfo        string     `json:"extra_info,omitempty"`
	Status           Status     `json:"status"`
	ResolvedAt       *time.Time `json:"resolved_at,omitempty"`
	ResolvedBy       ResolvedBy `json:"resolved_by,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

type createAlertResponse struct {
	Alert          alertResponse     `json:"alert"`
	PetName        string            `json:"pet_name"`
	Broadcast      *broadcast.Result `json:"broadcast,omitempty"`
	BroadcastError string            `json:"broadcast_error,omitempty"`
}

// createAlertHandler godoc
// @Summary Reportar mascota perdida
// @Description Crea una alerta activa y la difunde a los usuarios de la misma ciudad. Si el dueño tiene varias mascotas y no indica cuál (`pet`), responde PET_AMBIGUOUS con `candidates`. La difusión es best-effort: su falla no anula la alerta.
// @Tags alerts
// @Accept json
// @Produce json
// @Param X-Debug-Phone header string false "Solo en modo dev, teléfono del usuario"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createAlertRequest true "last_seen: RFC3339, YYYY-MM-DD[ HH:MM] o DD/MM/YYYY"
// @Success 201 {object} createAlertResponse
// @Failure 400 {object} apperrors.HTTPBody "VALIDATION_ERROR"
// @Failure 404 {object} apperrors.HTTPBody "PET_NOT_FOUND"
// @Failure 409 {object} apperrors.HTTPBody "ALERT_ALREADY_ACTIVE"
// @Failure 422 {object} apperrors.HTTPBody "PET_AMBIGUOUS"
// @Router /alerts [post]
func createAlertHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		phone := middleware.Phone(r.Context())
		if phone == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createAlertRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		res, err := svc.Create(r.Context(), phone, CreateInput{
			LastSeen:    req.LastSeen,
			PetRef:      req.Pet,
			Description: req.Description,
			Location:    req.Location,
			ExtraInfo:   req.ExtraInfo,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, createAlertResponse{
			Alert:          toAlertResponse(res.Alert),
			PetName:        res.Pet.Name,
			Broadcast:      res.Broadcast,
			BroadcastError: res.BroadcastError,
		})
	}
}

// resolveAlertHandler godoc
// @Summary Marcar mascota como encontrada
// @Tags alerts
// @Produce json
// @Param X-Debug-Phone header string false "Solo en modo dev, teléfono del usuario"
// @Param alertID path string true "ID de la alerta"
// @Success 200 {object} alertResponse
// @Failure 404 {object} apperrors.HTTPBody "ALERT_NOT_FOUND"
// @Router /alerts/{alertID}/resolve [post]
func resolveAlertHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		phone := middleware.Phone(r.Context())
		if phone == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		a, err := svc.Resolve(r.Context(), phone, chi.URLParam(r, "alertID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAlertResponse(a))
	}
}

// rebroadcastHandler godoc
// @Summary Reintentar difusión
// @Description Vuelve a difundir una alerta activa, útil cuando broadcast_error vino lleno. Si la alerta ya se difundió responde con broadcast.duplicate=true y no envía nada.
// @Tags alerts
// @Produce json
// @Param X-Debug-Phone header string false "Solo en modo dev, teléfono del usuario"
// @Param alertID path string true "ID de la alerta"
// @Success 200 {object} createAlertResponse
// @Failure 404 {object} apperrors.HTTPBody "ALERT_NOT_FOUND"
// @Failure 409 {object} apperrors.HTTPBody "ALERT_NOT_ACTIVE"
// @Router /alerts/{alertID}/broadcast [post]
func rebroadcastHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		phone := middleware.Phone(r.Context())
		if phone == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		res, err := svc.Rebroadcast(r.Context(), phone, chi.URLParam(r, "alertID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, createAlertResponse{
			Alert:          toAlertResponse(res.Alert),
			PetName:        res.Pet.Name,
			Broadcast:      res.Broadcast,
			BroadcastError: res.BroadcastError,
		})
	}
}

// listMyAlertsHandler godoc
// @Summary Mis alertas activas
// @Tags alerts
// @Produce json
// @Param X-Debug-Phone header string false "Solo en modo dev, teléfono del usuario"
// @Success 200 {array} alertResponse
// @Router /me/alerts [get]
func listMyAlertsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		phone := middleware.Phone(r.Context())
		if phone == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListActiveByOwner(r.Context(), phone)
		if err != nil {
			writeError(w, err)
			return
		}
		out := make([]alertResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAlertResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toAlertResponse(a Alert) alertResponse {
	return alertResponse{
		ID:               a.ID,
		PetID:            a.PetID,
		LastSeenAt:       a.LastSeenAt,
		LastSeenLocation: a.LastSeenLocation,
		Description:      a.Description,
		ExtraInfo:        a.ExtraInfo,
		Status:           a.Status,
		ResolvedAt:       a.ResolvedAt,
		ResolvedBy:       a.ResolvedBy,
		CreatedAt:        a.CreatedAt,
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
