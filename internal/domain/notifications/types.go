package notifications

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("resource not found")
	QueryTimeoutDuration = time.Second * 5
)

// Delivery states stored in notificaciones.estado.
const (
	StatusPending = "pendiente"
	StatusSent    = "enviada"
	StatusFailed  = "fallida"
)

type Notification struct {
	ID        int64      `json:"id"`
	SenderID  *int64     `json:"remitente_id,omitempty"`
	Recipient string     `json:"destinatario"`
	Subject   string     `json:"asunto"`
	Message   string     `json:"mensaje"`
	Status    string     `json:"estado"`
	Error     *string    `json:"error,omitempty"`
	CreatedAt time.Time  `json:"creado_en"`
	SentAt    *time.Time `json:"enviado_en,omitempty"`
}

type ListFilter struct {
	Status   string
	SenderID *int64
}

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusSent, StatusFailed:
		return true
	}
	return false
}
