package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"consultorio/internal/domain/professionals"
	"consultorio/internal/domain/users"
	"consultorio/internal/params"

	"github.com/go-chi/chi/v5"
)

type CreateProfessionalPayload struct {
	UserID    *int64  `json:"usuario_id" validate:"omitempty,gt=0"`
	FirstName string  `json:"nombre" validate:"required,max=100"`
	LastName  string  `json:"apellido" validate:"required,max=100"`
	Specialty string  `json:"especialidad" validate:"required,max=100"`
	License   string  `json:"matricula" validate:"required,max=50"`
	Phone     *string `json:"telefono" validate:"omitempty,telefono"`
	Email     *string `json:"email" validate:"omitempty,email,max=255"`
}

type UpdateProfessionalPayload struct {
	UserID    *int64  `json:"usuario_id" validate:"omitempty,gt=0"`
	FirstName *string `json:"nombre" validate:"omitempty,max=100"`
	LastName  *string `json:"apellido" validate:"omitempty,max=100"`
	Specialty *string `json:"especialidad" validate:"omitempty,max=100"`
	License   *string `json:"matricula" validate:"omitempty,max=50"`
	Phone     *string `json:"telefono" validate:"omitempty,telefono"`
	Email     *string `json:"email" validate:"omitempty,email,max=255"`
	IsActive  *bool   `json:"activo"`
}

type ProfessionalList struct {
	Professionals []professionals.Professional `json:"profesionales"`
	Pagination    params.Pagination            `json:"pagination"`
}

func (app *application) checkLinkedUser(ctx context.Context, id *int64) error {
	if id == nil {
		return nil
	}
	if _, err := app.store.Users.GetByID(ctx, *id); err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return errBadReference{fmt.Errorf("user %d does not exist", *id)}
		}
		return err
	}
	return nil
}

// listProfessionalsHandler godoc
//
//	@Summary		List professionals
//	@Tags			profesionales
//	@Produce		json
//	@Param			q				query		string	false	"Search by name or license"
//	@Param			especialidad	query		string	false	"Specialty"
//	@Param			activos			query		bool	false	"Only active professionals"
//	@Param			page			query		int		false	"Page"
//	@Param			limit			query		int		false	"Page size"
//	@Success		200				{object}	ProfessionalList
//	@Failure		403				{object}	error	"Forbidden"
//	@Security		ApiKeyAuth
//	@Router			/profesionales [get]
func (app *application) listProfessionalsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pg := params.ParsePagination(q)

	filter := professionals.ListFilter{Query: q.Get("q"), Specialty: q.Get("especialidad")}
	if v := q.Get("activos"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			app.badRequestResponse(w, r, fmt.Errorf("invalid activos"))
			return
		}
		filter.ActiveOnly = active
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	list, total, err := app.store.Professionals.List(ctx, filter, pg.Limit, pg.Offset)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	pg.ComputeMeta(total)

	if err := app.jsonResponse(w, http.StatusOK, ProfessionalList{Professionals: list, Pagination: pg}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// createProfessionalHandler godoc
//
//	@Summary		Register a professional
//	@Tags			profesionales
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreateProfessionalPayload	true	"Professional"
//	@Success		201		{object}	professionals.Professional
//	@Failure		400		{object}	ErrorBadRequestResponse	"Bad request"
//	@Failure		409		{object}	error					"License already registered"
//	@Security		ApiKeyAuth
//	@Router			/profesionales [post]
func (app *application) createProfessionalHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateProfessionalPayload
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

	if err := app.checkLinkedUser(ctx, payload.UserID); err != nil {
		app.referenceError(w, r, err)
		return
	}

	p := &professionals.Professional{
		UserID:    payload.UserID,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Specialty: payload.Specialty,
		License:   payload.License,
		Phone:     payload.Phone,
		Email:     payload.Email,
		IsActive:  true,
	}
	if err := app.store.Professionals.Create(ctx, p); err != nil {
		if errors.Is(err, professionals.ErrConflict) {
			app.conflictResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, p); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) loadProfessional(w http.ResponseWriter, r *http.Request) (*professionals.Professional, bool) {
	id, err := params.ParseID(chi.URLParam(r, "professionalID"))
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("invalid professionalID"))
		return nil, false
	}

	p, err := app.store.Professionals.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, professionals.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return nil, false
		}
		app.internalServerError(w, r, err)
		return nil, false
	}
	return p, true
}

// getProfessionalHandler godoc
//
//	@Summary		Get a professional
//	@Tags			profesionales
//	@Produce		json
//	@Param			professionalID	path		int	true	"Professional ID"
//	@Success		200				{object}	professionals.Professional
//	@Failure		404				{object}	error	"Not found"
//	@Security		ApiKeyAuth
//	@Router			/profesionales/{professionalID} [get]
func (app *application) getProfessionalHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := app.loadProfessional(w, r)
	if !ok {
		return
	}
	if err := app.jsonResponse(w, http.StatusOK, p); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateProfessionalHandler godoc
//
//	@Summary		Update a professional
//	@Tags			profesionales
//	@Accept			json
//	@Produce		json
//	@Param			professionalID	path		int							true	"Professional ID"
//	@Param			payload			body		UpdateProfessionalPayload	true	"Fields to change"
//	@Success		200				{object}	professionals.Professional
//	@Failure		400				{object}	error	"Bad request"
//	@Failure		404				{object}	error	"Not found"
//	@Failure		409				{object}	error	"License already registered"
//	@Security		ApiKeyAuth
//	@Router			/profesionales/{professionalID} [patch]
func (app *application) updateProfessionalHandler(w http.ResponseWriter, r *http.Request) {
	var payload UpdateProfessionalPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	p, ok := app.loadProfessional(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if payload.UserID != nil {
		if err := app.checkLinkedUser(ctx, payload.UserID); err != nil {
			app.referenceError(w, r, err)
			return
		}
		p.UserID = payload.UserID
	}
	if payload.FirstName != nil {
		p.FirstName = *payload.FirstName
	}
	if payload.LastName != nil {
		p.LastName = *payload.LastName
	}
	if payload.Specialty != nil {
		p.Specialty = *payload.Specialty
	}
	if payload.License != nil {
		p.License = *payload.License
	}
	if payload.Phone != nil {
		p.Phone = payload.Phone
	}
	if payload.Email != nil {
		p.Email = payload.Email
	}
	if payload.IsActive != nil {
		p.IsActive = *payload.IsActive
	}

	if err := app.store.Professionals.Update(ctx, p); err != nil {
		switch {
		case errors.Is(err, professionals.ErrNotFound):
			app.notFoundResponse(w, r, err)
		case errors.Is(err, professionals.ErrConflict):
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

// deleteProfessionalHandler godoc
//
//	@Summary		Delete a professional
//	@Tags			profesionales
//	@Param			professionalID	path	int	true	"Professional ID"
//	@Success		204				"No Content"
//	@Failure		404				{object}	error	"Not found"
//	@Security		ApiKeyAuth
//	@Router			/profesionales/{professionalID} [delete]
func (app *application) deleteProfessionalHandler(w http.ResponseWriter, r *http.Request) {
	id, err := params.ParseID(chi.URLParam(r, "professionalID"))
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("invalid professionalID"))
		return
	}

	if err := app.store.Professionals.Delete(r.Context(), id); err != nil {
		if errors.Is(err, professionals.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
