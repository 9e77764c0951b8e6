package quota

import (
	"encoding/json"
	"net/http"
	"time"

	"pet-lost-found/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, res *Resolver) {
	r.Get("/me/quota", getQuotaHandler(res))
}

type subscriptionSummary struct {
	PlanID    string    `json:"plan_id"`
	PlanName  string    `json:"plan_name"`
	PetLimit  int       `json:"pet_limit"`
	ExpiresAt time.Time `json:"expires_at"`
}

type quotaResponse struct {
	Active        bool                  `json:"active"`
	TotalLimit    int                   `json:"total_limit"`
	CurrentCount  int                   `json:"current_count"`
	Remaining     int                   `json:"remaining"` // -1 = ilimitado
	CanRegister   bool                  `json:"can_register"`
	Unlimited     bool                  `json:"unlimited"`
	Denial        Denial                `json:"denial,omitempty"`
	Reason        string                `json:"reason,omitempty"`
	Subscriptions []subscriptionSummary `json:"subscriptions"`
}

// getQuotaHandler godoc
// @Summary Mi cuota de mascotas
// @Description Suma los cupos de todas las suscripciones vigentes. Siempre responde 200; si no hay cuota activa `denial` explica el motivo.
// @Tags profiles
// @Produce json
// @Param X-Debug-Phone header string false "Solo en modo dev, teléfono del usuario"
// @Success 200 {object} quotaResponse
// @Router /me/quota [get]
func getQuotaHandler(res *Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		phone := middleware.Phone(r.Context())
		if phone == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		st := res.Check(r.Context(), phone)

		subs := make([]subscriptionSummary, 0, len(st.Subscriptions))
		for _, s := range st.Subscriptions {
			subs = append(subs, subscriptionSummary{
				PlanID:    s.Plan.ID,
				PlanName:  s.Plan.Name,
				PetLimit:  s.Plan.PetLimit,
				ExpiresAt: s.ExpiresAt,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(quotaResponse{
			Active:        st.Active,
			TotalLimit:    st.TotalLimit,
			CurrentCount:  st.CurrentCount,
			Remaining:     st.Remaining(),
			CanRegister:   st.CanRegister,
			Unlimited:     st.Unlimited,
			Denial:        st.Denial,
			Reason:        st.Reason,
			Subscriptions: subs,
		})
	}
}
