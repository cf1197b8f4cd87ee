package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"consultorio/internal/domain/patients"
	"consultorio/internal/domain/professionals"
	"consultorio/internal/params"

	"github.com/go-chi/chi/v5"
)

type CreatePatientPayload struct {
	FirstName      string  `json:"nombre" validate:"required,max=100"`
	LastName       string  `json:"apellido" validate:"required,max=100"`
	Document       string  `json:"documento" validate:"required,documento"`
	BirthDate      *string `json:"fecha_nacimiento" validate:"omitempty,datetime=2006-01-02"`
	Phone          *string `json:"telefono" validate:"omitempty,telefono"`
	Email          *string `json:"email" validate:"omitempty,email,max=255"`
	Address        *string `json:"direccion" validate:"omitempty,max=255"`
	Insurance      *string `json:"obra_social" validate:"omitempty,max=100"`
	ProfessionalID *int64  `json:"profesional_id" validate:"omitempty,gt=0"`
}

type UpdatePatientPayload struct {
	FirstName      *string `json:"nombre" validate:"omitempty,max=100"`
	LastName       *string `json:"apellido" validate:"omitempty,max=100"`
	Document       *string `json:"documento" validate:"omitempty,documento"`
	BirthDate      *string `json:"fecha_nacimiento" validate:"omitempty,datetime=2006-01-02"`
	Phone          *string `json:"telefono" validate:"omitempty,telefono"`
	Email          *string `json:"email" validate:"omitempty,email,max=255"`
	Address        *string `json:"direccion" validate:"omitempty,max=255"`
	Insurance      *string `json:"obra_social" validate:"omitempty,max=100"`
	ProfessionalID *int64  `json:"profesional_id" validate:"omitempty,gt=0"`
}

type PatientList struct {
	Patients   []patients.Patient `json:"pacientes"`
	Pagination params.Pagination  `json:"pagination"`
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, *s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, want YYYY-MM-DD", *s)
	}
	return &t, nil
}

// checkProfessional rejects references to professionals that do not exist.
func (app *application) checkProfessional(ctx context.Context, id *int64) error {
	if id == nil {
		return nil
	}
	if _, err := app.store.Professionals.GetByID(ctx, *id); err != nil {
		if errors.Is(err, professionals.ErrNotFound) {
			return errBadReference{fmt.Errorf("professional %d does not exist", *id)}
		}
		return err
	}
	return nil
}

type errBadReference struct{ error }

func (e errBadReference) Unwrap() error { return e.error }

// listPatientsHandler godoc
//
//	@Summary		List patients
//	@Tags			pacientes
//	@Produce		json
//	@Param			q				query		string	false	"Search by name or document"
//	@Param			profesional_id	query		int		false	"Assigned professional"
//	@Param			page			query		int		false	"Page"
//	@Param			limit			query		int		false	"Page size"
//	@Success		200				{object}	PatientList
//	@Failure		400				{object}	error	"Bad request"
//	@Failure		403				{object}	error	"Forbidden"
//	@Security		ApiKeyAuth
//	@Router			/pacientes [get]
func (app *application) listPatientsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pg := params.ParsePagination(q)
	professionalID, err := params.OptionalID(q, "profesional_id")
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("invalid profesional_id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	list, total, err := app.store.Patients.List(ctx, patients.ListFilter{Query: q.Get("q"), ProfessionalID: professionalID}, pg.Limit, pg.Offset)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	pg.ComputeMeta(total)

	if err := app.jsonResponse(w, http.StatusOK, PatientList{Patients: list, Pagination: pg}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// createPatientHandler godoc
//
//	@Summary		Register a patient
//	@Tags			pacientes
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreatePatientPayload	true	"Patient"
//	@Success		201		{object}	patients.Patient
//	@Failure		400		{object}	ErrorBadRequestResponse	"Bad request"
//	@Failure		409		{object}	error					"Document already registered"
//	@Security		ApiKeyAuth
//	@Router			/pacientes [post]
func (app *application) createPatientHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreatePatientPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	birth, err := parseDate(payload.BirthDate)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := app.checkProfessional(ctx, payload.ProfessionalID); err != nil {
		app.referenceError(w, r, err)
		return
	}

	p := &patients.Patient{
		FirstName:      payload.FirstName,
		LastName:       payload.LastName,
		Document:       payload.Document,
		BirthDate:      birth,
		Phone:          payload.Phone,
		Email:          payload.Email,
		Address:        payload.Address,
		Insurance:      payload.Insurance,
		ProfessionalID: payload.ProfessionalID,
	}
	if err := app.store.Patients.Create(ctx, p); err != nil {
		switch {
		case errors.Is(err, patients.ErrConflict):
			app.conflictResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, p); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) referenceError(w http.ResponseWriter, r *http.Request, err error) {
	var bad errBadReference
	if errors.As(err, &bad) {
		app.badRequestResponse(w, r, err)
		return
	}
	app.internalServerError(w, r, err)
}

func (app *application) writePatient(w http.ResponseWriter, r *http.Request, id int64) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	p, err := app.store.Patients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, patients.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, p); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getPatientHandler godoc
//
//	@Summary		Get a patient
//	@Tags			pacientes
//	@Produce		json
//	@Param			patientID	path		int	true	"Patient ID"
//	@Success		200			{object}	patients.Patient
//	@Failure		404			{object}	error	"Not found"
//	@Security		ApiKeyAuth
//	@Router			/pacientes/{patientID} [get]
func (app *application) getPatientHandler(w http.ResponseWriter, r *http.Request) {
	id, err := params.ParseID(chi.URLParam(r, "patientID"))
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("invalid patientID"))
		return
	}
	app.writePatient(w, r, id)
}

// getPatientByCodeHandler godoc
//
//	@Summary		Get a patient by record code
//	@Tags			pacientes
//	@Produce		json
//	@Param			code	path		string	true	"Record code, e.g. HC-K4Q9ZP"
//	@Success		200		{object}	patients.Patient
//	@Failure		400		{object}	error	"Malformed code"
//	@Failure		404		{object}	error	"Not found"
//	@Security		ApiKeyAuth
//	@Router			/pacientes/codigo/{code} [get]
func (app *application) getPatientByCodeHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.codec.Decode(chi.URLParam(r, "code"))
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	app.writePatient(w, r, id)
}

// updatePatientHandler godoc
//
//	@Summary		Update a patient
//	@Tags			pacientes
//	@Accept			json
//	@Produce		json
//	@Param			patientID	path		int						true	"Patient ID"
//	@Param			payload		body		UpdatePatientPayload	true	"Fields to change"
//	@Success		200			{object}	patients.Patient
//	@Failure		400			{object}	error	"Bad request"
//	@Failure		404			{object}	error	"Not found"
//	@Failure		409			{object}	error	"Document already registered"
//	@Security		ApiKeyAuth
//	@Router			/pacientes/{patientID} [patch]
func (app *application) updatePatientHandler(w http.ResponseWriter, r *http.Request) {
	id, err := params.ParseID(chi.URLParam(r, "patientID"))
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("invalid patientID"))
		return
	}

	var payload UpdatePatientPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	p, err := app.store.Patients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, patients.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if payload.FirstName != nil {
		p.FirstName = *payload.FirstName
	}
	if payload.LastName != nil {
		p.LastName = *payload.LastName
	}
	if payload.Document != nil {
		p.Document = *payload.Document
	}
	if payload.BirthDate != nil {
		birth, err := parseDate(payload.BirthDate)
		if err != nil {
			app.badRequestResponse(w, r, err)
			return
		}
		p.BirthDate = birth
	}
	if payload.Phone != nil {
		p.Phone = payload.Phone
	}
	if payload.Email != nil {
		p.Email = payload.Email
	}
	if payload.Address != nil {
		p.Address = payload.Address
	}
	if payload.Insurance != nil {
		p.Insurance = payload.Insurance
	}
	if payload.ProfessionalID != nil {
		if err := app.checkProfessional(ctx, payload.ProfessionalID); err != nil {
			app.referenceError(w, r, err)
			return
		}
		p.ProfessionalID = payload.ProfessionalID
	}

	if err := app.store.Patients.Update(ctx, p); err != nil {
		switch {
		case errors.Is(err, patients.ErrNotFound):
			app.notFoundResponse(w, r, err)
		case errors.Is(err, patients.ErrConflict):
			app.conflictResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, p); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deletePatientHandler godoc
//
//	@Summary		Delete a patient
//	@Tags			pacientes
//	@Param			patientID	path	int	true	"Patient ID"
//	@Success		204			"No Content"
//	@Failure		404			{object}	error	"Not found"
//	@Security		ApiKeyAuth
//	@Router			/pacientes/{patientID} [delete]
func (app *application) deletePatientHandler(w http.ResponseWriter, r *http.Request) {
	id, err := params.ParseID(chi.URLParam(r, "patientID"))
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("invalid patientID"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := app.store.Patients.Delete(ctx, id); err != nil {
		if errors.Is(err, patients.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
