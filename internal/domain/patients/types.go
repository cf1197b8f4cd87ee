package patients

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrConflict          = errors.New("a patient with that document already exists")
	QueryTimeoutDuration = time.Second * 5
)

type Patient struct {
	ID             int64      `json:"id"`
	Code           string     `json:"codigo"`
	FirstName      string     `json:"nombre"`
	LastName       string     `json:"apellido"`
	Document       string     `json:"documento"`
	BirthDate      *time.Time `json:"fecha_nacimiento,omitempty" swaggertype:"string"`
	Phone          *string    `json:"telefono,omitempty"`
	Email          *string    `json:"email,omitempty"`
	Address        *string    `json:"direccion,omitempty"`
	Insurance      *string    `json:"obra_social,omitempty"`
	ProfessionalID *int64     `json:"profesional_id,omitempty"`
	CreatedAt      time.Time  `json:"creado_en"`
	UpdatedAt      time.Time  `json:"actualizado_en"`
}

type ListFilter struct {
	Query          string
	ProfessionalID *int64
}
