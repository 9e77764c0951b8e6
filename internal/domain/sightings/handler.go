package sightings

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-lost-found/internal/apperrors"
	"pet-lost-found/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/sightings", func(sr chi.Router) {
		sr.Post("/", reportSightingHandler(svc))
		sr.Get("/", listUnmatchedHandler(svc))
		sr.Get("/{sightingID}", getSightingHandler(svc))
		sr.Post("/{sightingID}/confirm", confirmSightingHandler(svc))
	})
	r.Get("/alerts/{alertID}/sightings", listAlertSightingsHandler(svc))
}

type reportSightingRequest struct {
	FinderName  string `json:"finder_name"`
	Description string `json:"description"`
	Location    string `json:"location"`
	PhotoURL    string `json:"photo_url"`
	AlertID     string `json:"alert_id"`
}

type confirmSightingRequest struct {
	AlertID string `json:"alert_id"`
}

type sightingResponse struct {
	ID          string     `json:"id"`
	FinderPhone string     `json:"finder_phone"`
	FinderName  string     `json:"finder_name"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	PhotoURL    string     `json:"photo_url"`
	AlertID     *string    `json:"alert_id"`
	MatchedAt   *time.Time `json:"matched_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type matchResponse struct {
	AlertID     string `json:"alert_id"`
	PetID       string `json:"pet_id"`
	PetName     string `json:"pet_name"`
	Species     string `json:"species"`
	Breed       string `json:"breed"`
	OwnerName   string `json:"owner_name"`
	OwnerPhone  string `json:"owner_phone"`
	FinderName  string `json:"finder_name"`
	FinderPhone string `json:"finder_phone"`
	Location    string `json:"location"`
	PhotoURL    string `json:"photo_url"`
}

type reportResponse struct {
	SightingID        string         `json:"sighting_id"`
	IsMatch           bool           `json:"is_match"`
	Match             *matchResponse `json:"match,omitempty"`
	NotificationSent  bool           `json:"notification_sent"`
	MessageID         string         `json:"message_id,omitempty"`
	NotificationError string         `json:"notification_error,omitempty"`
}

// reportSightingHandler godoc
// @Summary Reportar avistamiento
// @Description Guarda el reporte de quien encontró un animal. La foto es obligatoria. Con `alert_id` queda vinculado y se notifica una vez al dueño; si la notificación falla el avistamiento igual queda guardado (`notification_sent=false`).
// @Tags sightings
// @Accept json
// @Produce json
// @Param X-Debug-Phone header string false "Solo en modo dev, teléfono de quien reporta"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body reportSightingRequest true "Datos del avistamiento"
// @Success 201 {object} reportResponse
// @Failure 400 {object} apperrors.HTTPBody "PHOTO_REQUIRED / INVALID_ID / VALIDATION_ERROR"
// @Failure 404 {object} apperrors.HTTPBody "ALERT_NOT_FOUND"
// @Router /sightings [post]
func reportSightingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Phone) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req reportSightingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		name := req.FinderName
		if strings.TrimSpace(name) == "" {
			name = claims.Name
		}

		res, err := svc.Report(r.Context(), ReportInput{
			FinderPhone: claims.Phone,
			FinderName:  name,
			Description: req.Description,
			Location:    req.Location,
			PhotoURL:    req.PhotoURL,
			AlertID:     req.AlertID,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toReportResponse(res))
	}
}

// confirmSightingHandler godoc
// @Summary Confirmar coincidencia
// @Description Vincula un avistamiento sin alerta con una alerta existente y notifica al dueño una vez.
// @Tags sightings
// @Accept json
// @Produce json
// @Param X-Debug-Phone header string false "Solo en modo dev"
// @Param sightingID path string true "ID del avistamiento"
// @Param payload body confirmSightingRequest true "Alerta a vincular"
// @Success 200 {object} reportResponse
// @Failure 400 {object} apperrors.HTTPBody "INVALID_ID"
// @Failure 404 {object} apperrors.HTTPBody "SIGHTING_NOT_FOUND / ALERT_NOT_FOUND"
// @Failure 409 {object} apperrors.HTTPBody "SIGHTING_ALREADY_MATCHED"
// @Router /sightings/{sightingID}/confirm [post]
func confirmSightingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if middleware.Phone(r.Context()) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req confirmSightingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		res, err := svc.Confirm(r.Context(), chi.URLParam(r, "sightingID"), req.AlertID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toReportResponse(res))
	}
}

// getSightingHandler godoc
// @Summary Ver avistamiento
// @Tags sightings
// @Produce json
// @Param sightingID path string true "ID del avistamiento"
// @Success 200 {object} sightingResponse
// @Failure 404 {object} apperrors.HTTPBody "SIGHTING_NOT_FOUND"
// @Router /sightings/{sightingID} [get]
func getSightingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if middleware.Phone(r.Context()) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		sg, err := svc.Get(r.Context(), chi.URLParam(r, "sightingID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSightingResponse(sg))
	}
}

// listUnmatchedHandler godoc
// @Summary Avistamientos sin alerta
// @Tags sightings
// @Produce json
// @Param limit query int false "Máximo de resultados (<= 50)"
// @Success 200 {array} sightingResponse
// @Router /sightings [get]
func listUnmatchedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if middleware.Phone(r.Context()) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		items, err := svc.ListUnmatched(r.Context(), limit)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSightingResponses(items))
	}
}

// listAlertSightingsHandler godoc
// @Summary Avistamientos de mi alerta
// @Tags sightings
// @Produce json
// @Param X-Debug-Phone header string false "Solo en modo dev, teléfono del dueño"
// @Param alertID path string true "ID de la alerta"
// @Success 200 {array} sightingResponse
// @Failure 404 {object} apperrors.HTTPBody "ALERT_NOT_FOUND"
// @Router /alerts/{alertID}/sightings [get]
func listAlertSightingsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		phone := middleware.Phone(r.Context())
		if phone == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByAlert(r.Context(), phone, chi.URLParam(r, "alertID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSightingResponses(items))
	}
}

func toReportResponse(res Result) reportResponse {
	out := reportResponse{
		SightingID:        res.SightingID,
		IsMatch:           res.IsMatch,
		NotificationSent:  res.NotificationSent,
		MessageID:         res.MessageID,
		NotificationError: res.NotificationError,
	}
	if m := res.Match; m != nil {
		out.Match = &matchResponse{
			AlertID:     m.AlertID,
			PetID:       m.Pet.ID,
			PetName:     m.Pet.Name,
			Species:     m.Pet.Species,
			Breed:       m.Pet.Breed,
			OwnerName:   m.Owner.Name,
			OwnerPhone:  m.Owner.Phone,
			FinderName:  m.Finder.Name,
			FinderPhone: m.Finder.Phone,
			Location:    m.Finder.Location,
			PhotoURL:    m.Finder.PhotoURL,
		}
	}
	return out
}

func toSightingResponse(sg Sighting) sightingResponse {
	out := sightingResponse{
		ID:          sg.ID,
		FinderPhone: sg.FinderPhone,
		FinderName:  sg.FinderName,
		Description: sg.Description,
		Location:    sg.Location,
		PhotoURL:    sg.PhotoURL,
		MatchedAt:   sg.MatchedAt,
		CreatedAt:   sg.CreatedAt,
	}
	if sg.AlertID != "" {
		id := sg.AlertID
		out.AlertID = &id
	}
	return out
}

func toSightingResponses(items []Sighting) []sightingResponse {
	out := make([]sightingResponse, 0, len(items))
	for _, sg := range items {
		out = append(out, toSightingResponse(sg))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, apperrors.HTTPStatus(err), apperrors.Body(err))
}
