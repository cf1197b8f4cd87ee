package professionals

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrConflict          = errors.New("a professional with that license number already exists")
	QueryTimeoutDuration = time.Second * 5
)

type Professional struct {
	ID        int64     `json:"id"`
	UserID    *int64    `json:"usuario_id,omitempty"`
	FirstName string    `json:"nombre"`
	LastName  string    `json:"apellido"`
	Specialty string    `json:"especialidad"`
	License   string    `json:"matricula"`
	Phone     *string   `json:"telefono,omitempty"`
	Email     *string   `json:"email,omitempty"`
	IsActive  bool      `json:"activo"`
	CreatedAt time.Time `json:"creado_en"`
	UpdatedAt time.Time `json:"actualizado_en"`
}

type ListFilter struct {
	Query      string
	Specialty  string
	ActiveOnly bool
}
