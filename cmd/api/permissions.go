package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"consultorio/internal/domain/overrides"
	"consultorio/internal/domain/storage"
	"consultorio/internal/permissions"

	"github.com/go-chi/chi/v5"
)

type PermissionCatalog struct {
	Permissions []permissions.Definition `json:"permisos"`
	Roles       map[string][]string      `json:"roles"`
}

type UserPermissions struct {
	UserID      int64                `json:"usuario_id"`
	Role        string               `json:"rol"`
	Permissions map[string]bool      `json:"permisos"`
	Overrides   []overrides.Override `json:"excepciones"`
}

// listPermissionsHandler godoc
//
//	@Summary		Permission catalog
//	@Description	Every known permission and the default set of each role.
//	@Tags			permisos
//	@Produce		json
//	@Success		200	{object}	PermissionCatalog
//	@Failure		401	{object}	error	"Unauthorized"
//	@Failure		403	{object}	error	"Forbidden"
//	@Security		ApiKeyAuth
//	@Router			/permisos [get]
func (app *application) listPermissionsHandler(w http.ResponseWriter, r *http.Request) {
	catalog := app.resolver.Catalog()

	roles := make(map[string][]string)
	for _, role := range catalog.Roles() {
		roles[role] = catalog.RoleDefaults(role)
	}

	resp := PermissionCatalog{Permissions: catalog.Definitions(), Roles: roles}
	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getUserPermissionsHandler godoc
//
//	@Summary		Effective permissions of a user
//	@Description	Role defaults merged with the user's overrides, plus the overrides themselves.
//	@Tags			permisos
//	@Produce		json
//	@Param			userID	path		int	true	"User ID"
//	@Success		200		{object}	UserPermissions
//	@Failure		404		{object}	error	"Not found"
//	@Failure		503		{object}	error	"Override store unavailable"
//	@Security		ApiKeyAuth
//	@Router			/usuarios/{userID}/permisos [get]
func (app *application) getUserPermissionsHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := app.loadUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	perms, err := app.resolver.GetUserPermissions(ctx, user.ID, user.Role)
	if err != nil {
		app.serviceUnavailableResponse(w, r, err)
		return
	}
	list, err := app.store.Overrides.FindByUser(ctx, user.ID)
	if err != nil {
		app.serviceUnavailableResponse(w, r, err)
		return
	}

	resp := UserPermissions{UserID: user.ID, Role: user.Role, Permissions: perms, Overrides: list}
	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

// grantPermissionHandler godoc
//
//	@Summary		Grant a permission
//	@Description	Stores an active override, whatever the role default is.
//	@Tags			permisos
//	@Produce		json
//	@Param			userID		path		int		true	"User ID"
//	@Param			permission	path		string	true	"Permission, e.g. pacientes.leer"
//	@Success		200			{object}	overrides.Override
//	@Failure		400			{object}	error	"Unknown permission"
//	@Failure		404			{object}	error	"User not found"
//	@Security		ApiKeyAuth
//	@Router			/usuarios/{userID}/permisos/{permission}/conceder [post]
func (app *application) grantPermissionHandler(w http.ResponseWriter, r *http.Request) {
	app.setOverride(w, r, (*permissions.Resolver).Grant)
}

// revokePermissionHandler godoc
//
//	@Summary		Revoke a permission
//	@Description	Stores an inactive override, whatever the role default is.
//	@Tags			permisos
//	@Produce		json
//	@Param			userID		path		int		true	"User ID"
//	@Param			permission	path		string	true	"Permission, e.g. pacientes.leer"
//	@Success		200			{object}	overrides.Override
//	@Failure		400			{object}	error	"Unknown permission"
//	@Failure		404			{object}	error	"User not found"
//	@Security		ApiKeyAuth
//	@Router			/usuarios/{userID}/permisos/{permission}/revocar [post]
func (app *application) revokePermissionHandler(w http.ResponseWriter, r *http.Request) {
	app.setOverride(w, r, (*permissions.Resolver).Revoke)
}

type overrideFunc func(r *permissions.Resolver, ctx context.Context, userID int64, permission string) (*overrides.Override, error)

func (app *application) setOverride(w http.ResponseWriter, r *http.Request, set overrideFunc) {
	user, ok := app.loadUser(w, r)
	if !ok {
		return
	}
	permission := chi.URLParam(r, "permission")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var o *overrides.Override
	err := app.tx.WithTx(ctx, func(tx *storage.Tx) error {
		var err error
		o, err = set(app.resolver.WithStore(tx.Overrides), ctx, user.ID, permission)
		return err
	})
	if err != nil {
		if errors.Is(err, permissions.ErrUnknownPermission) {
			app.badRequestResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	by, _ := getPrincipal(r)
	app.logger.Infow("permission override set",
		"user_id", user.ID, "permission", o.Permission, "active", o.Active, "by", by.UserID)

	if err := app.jsonResponse(w, http.StatusOK, o); err != nil {
		app.internalServerError(w, r, err)
	}
}

// resetPermissionHandler godoc
//
//	@Summary		Reset a permission to the role default
//	@Description	Deletes the user's override for the permission.
//	@Tags			permisos
//	@Param			userID		path	int		true	"User ID"
//	@Param			permission	path	string	true	"Permission"
//	@Success		204			"No Content"
//	@Failure		400			{object}	error	"Unknown permission"
//	@Failure		404			{object}	error	"No override for that permission"
//	@Security		ApiKeyAuth
//	@Router			/usuarios/{userID}/permisos/{permission} [delete]
func (app *application) resetPermissionHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := app.loadUser(w, r)
	if !ok {
		return
	}
	permission := chi.URLParam(r, "permission")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := app.resolver.ResetOverride(ctx, user.ID, permission); err != nil {
		switch {
		case errors.Is(err, permissions.ErrUnknownPermission):
			app.badRequestResponse(w, r, err)
		case errors.Is(err, overrides.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	app.logger.Infow("permission override removed", "user_id", user.ID, "permission", permission)
	w.WriteHeader(http.StatusNoContent)
}
