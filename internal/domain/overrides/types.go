package overrides

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("permission override not found")
	QueryTimeoutDuration = time.Second * 5
)

// Override is an explicit per-user exception to a role default for one permission.
type Override struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"usuario_id"`
	Permission string    `json:"permiso"`
	Active     bool      `json:"activo"`
	AssignedAt time.Time `json:"fecha_asignacion"`
}
