package main

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"slices"
	"strings"
	"time"

	"consultorio/internal/domain/storage"
	"consultorio/internal/domain/users"
	"consultorio/internal/params"
	"consultorio/internal/permissions"

	"github.com/go-chi/chi/v5"
)

type CreateUserPayload struct {
	FirstName string `json:"nombre" validate:"required,max=100"`
	LastName  string `json:"apellido" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	Role      string `json:"rol" validate:"required"`
	IsActive  *bool  `json:"activo"`

	// Permissions are initial overrides, true grants and false revokes.
	Permissions map[string]bool `json:"permisos"`
}

type UpdateUserPayload struct {
	FirstName *string `json:"nombre" validate:"omitempty,max=100"`
	LastName  *string `json:"apellido" validate:"omitempty,max=100"`
	Email     *string `json:"email" validate:"omitempty,email,max=255"`
	Password  *string `json:"password" validate:"omitempty,min=8,max=72"`
	Role      *string `json:"rol"`
	IsActive  *bool   `json:"activo"`
}

type UserList struct {
	Users      []users.User      `json:"usuarios"`
	Pagination params.Pagination `json:"pagination"`
}

func (app *application) validRole(role string) error {
	if !app.resolver.Catalog().IsRole(role) {
		return fmt.Errorf("unknown role %q", role)
	}
	return nil
}

// listUsersHandler godoc
//
//	@Summary		List users
//	@Description	Paginated list. q searches name and e-mail; rol filters by role.
//	@Tags			usuarios
//	@Produce		json
//	@Param			q		query		string	false	"Search"
//	@Param			rol		query		string	false	"Role"
//	@Param			page	query		int		false	"Page"
//	@Param			limit	query		int		false	"Page size"
//	@Success		200		{object}	UserList
//	@Failure		400		{object}	error	"Bad request"
//	@Failure		401		{object}	error	"Unauthorized"
//	@Failure		403		{object}	error	"Forbidden"
//	@Security		ApiKeyAuth
//	@Router			/usuarios [get]
func (app *application) listUsersHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pg := params.ParsePagination(q)
	filter := users.ListFilter{
		Query: q.Get("q"),
		Role:  strings.TrimSpace(q.Get("rol")),
	}
	if filter.Role != "" {
		if err := app.validRole(filter.Role); err != nil {
			app.badRequestResponse(w, r, err)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	list, total, err := app.store.Users.List(ctx, filter, pg.Limit, pg.Offset)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	pg.ComputeMeta(total)

	if err := app.jsonResponse(w, http.StatusOK, UserList{Users: list, Pagination: pg}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// createUserHandler godoc
//
//	@Summary		Create a user
//	@Tags			usuarios
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreateUserPayload	true	"User"
//	@Success		201		{object}	users.User
//	@Failure		400		{object}	ErrorBadRequestResponse	"Bad request"
//	@Failure		409		{object}	error					"E-mail already in use"
//	@Security		ApiKeyAuth
//	@Router			/usuarios [post]
func (app *application) createUserHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateUserPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := app.validRole(payload.Role); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	for p := range payload.Permissions {
		if !app.resolver.IsValidPermission(p) {
			app.badRequestResponse(w, r, fmt.Errorf("%w: %q", permissions.ErrUnknownPermission, p))
			return
		}
	}

	user := &users.User{
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Email:     payload.Email,
		Role:      payload.Role,
		IsActive:  true,
	}
	if payload.IsActive != nil {
		user.IsActive = *payload.IsActive
	}
	if err := user.Password.Set(payload.Password); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	// the user and its initial overrides are stored together or not at all
	err := app.tx.WithTx(ctx, func(tx *storage.Tx) error {
		if err := tx.Users.Create(ctx, user); err != nil {
			return err
		}
		resolver := app.resolver.WithStore(tx.Overrides)
		for _, p := range slices.Sorted(maps.Keys(payload.Permissions)) {
			set := resolver.Revoke
			if payload.Permissions[p] {
				set = resolver.Grant
			}
			if _, err := set(ctx, user.ID, p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, users.ErrDuplicateEmail):
			app.conflictResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	app.logger.Infow("user created", "user_id", user.ID, "role", user.Role, "overrides", len(payload.Permissions))

	if err := app.jsonResponse(w, http.StatusCreated, user); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getCurrentUserHandler godoc
//
//	@Summary		Current user
//	@Description	Returns the authenticated user with the effective permission set.
//	@Tags			usuarios
//	@Produce		json
//	@Success		200	{object}	UserPermissions
//	@Failure		401	{object}	error	"Unauthorized"
//	@Security		ApiKeyAuth
//	@Router			/usuarios/me [get]
func (app *application) getCurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	if user == nil {
		app.unauthorizedErrorResponse(w, r, fmt.Errorf("no user in context"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	perms, err := app.resolver.GetUserPermissions(ctx, user.ID, user.Role)
	if err != nil {
		app.serviceUnavailableResponse(w, r, err)
		return
	}

	resp := struct {
		*users.User
		Permissions map[string]bool `json:"permisos"`
	}{User: user, Permissions: perms}

	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

// loadUser fetches the {userID} path user, writing the error response itself.
func (app *application) loadUser(w http.ResponseWriter, r *http.Request) (*users.User, bool) {
	id, err := params.ParseID(chi.URLParam(r, "userID"))
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("invalid userID"))
		return nil, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, err := app.store.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			app.notFoundResponse(w, r, err)
		} else {
			app.internalServerError(w, r, err)
		}
		return nil, false
	}
	return user, true
}

// getUserHandler godoc
//
//	@Summary		Get a user
//	@Tags			usuarios
//	@Produce		json
//	@Param			userID	path		int	true	"User ID"
//	@Success		200		{object}	users.User
//	@Failure		404		{object}	error	"Not found"
//	@Security		ApiKeyAuth
//	@Router			/usuarios/{userID} [get]
func (app *application) getUserHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := app.loadUser(w, r)
	if !ok {
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, user); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateUserHandler godoc
//
//	@Summary		Update a user
//	@Description	Only the fields present in the body change.
//	@Tags			usuarios
//	@Accept			json
//	@Produce		json
//	@Param			userID	path		int					true	"User ID"
//	@Param			payload	body		UpdateUserPayload	true	"Fields to change"
//	@Success		200		{object}	users.User
//	@Failure		400		{object}	error	"Bad request"
//	@Failure		404		{object}	error	"Not found"
//	@Failure		409		{object}	error	"E-mail already in use"
//	@Security		ApiKeyAuth
//	@Router			/usuarios/{userID} [patch]
func (app *application) updateUserHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := app.loadUser(w, r)
	if !ok {
		return
	}

	var payload UpdateUserPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if payload.FirstName != nil {
		user.FirstName = *payload.FirstName
	}
	if payload.LastName != nil {
		user.LastName = *payload.LastName
	}
	if payload.Email != nil {
		user.Email = *payload.Email
	}
	if payload.Role != nil {
		if err := app.validRole(*payload.Role); err != nil {
			app.badRequestResponse(w, r, err)
			return
		}
		user.Role = *payload.Role
	}
	if payload.IsActive != nil {
		user.IsActive = *payload.IsActive
	}
	if payload.Password != nil {
		if err := user.Password.Set(*payload.Password); err != nil {
			app.internalServerError(w, r, err)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := app.store.Users.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, users.ErrNotFound):
			app.notFoundResponse(w, r, err)
		case errors.Is(err, users.ErrDuplicateEmail):
			app.conflictResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, user); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteUserHandler godoc
//
//	@Summary		Delete a user
//	@Description	Deletes the user and, with it, every permission override.
//	@Tags			usuarios
//	@Param			userID	path	int	true	"User ID"
//	@Success		204		"No Content"
//	@Failure		400		{object}	error	"Cannot delete yourself"
//	@Failure		404		{object}	error	"Not found"
//	@Security		ApiKeyAuth
//	@Router			/usuarios/{userID} [delete]
func (app *application) deleteUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := params.ParseID(chi.URLParam(r, "userID"))
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("invalid userID"))
		return
	}
	if p, ok := getPrincipal(r); ok && p.UserID == id {
		app.badRequestResponse(w, r, fmt.Errorf("you cannot delete your own account"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := app.store.Users.Delete(ctx, id); err != nil {
		if errors.Is(err, users.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
