package broadcast

import (
	"context"
	"time"
)

// Summary es lo que ven los destinatarios de la difusión.
type Summary struct {
	PetName   string
	Species   string
	Breed     string
	Gender    string
	AgeBucket string
	Marks     string
	LastSeen  string
	PhotoURL  string
}

// Request es una difusión a la ciudad del dueño.
// Sender, si viene, reemplaza el remitente configurado.
type Request struct {
	AlertID    string
	City       string
	OwnerPhone string
	Sender     string
	Summary    Summary
}

// RecipientResult es la entrada del ledger por destinatario.
type RecipientResult struct {
	Phone     string `json:"phone"`
	Name      string `json:"name"`
	MessageID string `json:"message_id"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}

// Result de una difusión. SuccessfulSends + FailedSends == TotalRecipients.
type Result struct {
	TotalRecipients int               `json:"total_recipients"`
	SuccessfulSends int               `json:"successful_sends"`
	FailedSends     int               `json:"failed_sends"`
	Recipients      []RecipientResult `json:"recipients"`
	Success         bool              `json:"success"`
	NothingToDo     bool              `json:"nothing_to_do"`

	// Duplicate: la alerta ya se había difundido (guard tomado).
	Duplicate bool `json:"duplicate,omitempty"`
	// Queued: el envío sigue en background; el ledger queda en logs.
	Queued bool `json:"queued,omitempty"`
}

// Guard asegura que una alerta se difunda a lo sumo una vez.
// Acquire devuelve false si la clave ya estaba tomada; Release la suelta.
type Guard interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}
