package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"consultorio/internal/auth"
	"consultorio/internal/domain/users"
)

// ErrorBadRequestResponse represents the standard error format for bad request API responses.
//
//	@name			ErrorBadRequestResponse
//	@description	Standard error response format returned by all bad request API endpoints
type ErrorBadRequestResponse struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"Key: 'CreateTokenPayload.Email' Error:Field validation for 'Email' failed on the 'email' tag"`
	Status  int    `json:"status" example:"400"`
}

// ErrorInternalServerResponse represents the standard error format for internal server API responses.
//
//	@name			ErrorInternalServerResponse
//	@description	Standard error response format returned by all internal server error API endpoints
type ErrorInternalServerResponse struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"the server encountered a problem"`
	Status  int    `json:"status" example:"500"`
}

type CreateTokenPayload struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// TokenResponse is the body of a successful login or refresh.
type TokenResponse struct {
	auth.TokenPair
	User *users.User `json:"usuario"`
}

// createTokenHandler godoc
//
//	@Summary		Log in
//	@Description	Exchanges e-mail and password for an access and a refresh token.
//	@Tags			autenticacion
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreateTokenPayload			true	"Credentials"
//	@Success		200		{object}	TokenResponse				"Tokens"
//	@Failure		400		{object}	ErrorBadRequestResponse		"Bad request"
//	@Failure		401		{object}	error						"Invalid credentials or inactive user"
//	@Failure		429		{object}	error						"Too many attempts"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Router			/autenticacion/token [post]
func (app *application) createTokenHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateTokenPayload
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

	user, err := app.store.Users.GetByEmail(ctx, payload.Email)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrNotFound):
			app.unauthorizedErrorResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := user.Password.Compare(payload.Password); err != nil {
		app.unauthorizedErrorResponse(w, r, err)
		return
	}
	if !user.IsActive {
		app.unauthorizedErrorResponse(w, r, fmt.Errorf("user %d is inactive", user.ID))
		return
	}

	pair, err := app.authenticator.GenerateTokens(user.ID, user.Role)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.logger.Infow("user logged in", "user_id", user.ID, "role", user.Role)

	if err := app.jsonResponse(w, http.StatusOK, TokenResponse{TokenPair: pair, User: user}); err != nil {
		app.internalServerError(w, r, err)
	}
}

type RefreshPayload struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// refreshTokenHandler godoc
//
//	@Summary		Refresh tokens
//	@Description	Validates the refresh token, revokes it and issues a new pair.
//	@Tags			autenticacion
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		RefreshPayload	true	"Refresh token"
//	@Success		200		{object}	TokenResponse	"New tokens"
//	@Failure		400		{object}	error			"Bad request"
//	@Failure		401		{object}	error			"Unauthorized"
//	@Failure		503		{object}	error			"Token store unavailable"
//	@Router			/autenticacion/refresh [post]
func (app *application) refreshTokenHandler(w http.ResponseWriter, r *http.Request) {
	var payload RefreshPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	claims, err := app.authenticator.ValidateRefreshToken(payload.RefreshToken)
	if err != nil {
		app.unauthorizedErrorResponse(w, r, fmt.Errorf("invalid refresh token: %w", err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, err := claims.UserID()
	if err != nil {
		app.unauthorizedErrorResponse(w, r, err)
		return
	}
	user, err := app.store.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			app.unauthorizedErrorResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}
	if !user.IsActive {
		app.unauthorizedErrorResponse(w, r, fmt.Errorf("user %d is inactive", user.ID))
		return
	}

	// one use per refresh token
	first, err := app.tokens.RevokeOnce(ctx, claims.ID, claims.ExpiresAt.Time)
	if err != nil {
		app.serviceUnavailableResponse(w, r, err)
		return
	}
	if !first {
		app.unauthorizedErrorResponse(w, r, fmt.Errorf("refresh token %s was already used or revoked", claims.ID))
		return
	}

	pair, err := app.authenticator.GenerateTokens(user.ID, user.Role)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, TokenResponse{TokenPair: pair, User: user}); err != nil {
		app.internalServerError(w, r, err)
	}
}

type LogoutPayload struct {
	RefreshToken string `json:"refresh_token"`
}

// logoutHandler godoc
//
//	@Summary		Log out
//	@Description	Revokes the current access token and, when given, the refresh token.
//	@Tags			autenticacion
//	@Accept			json
//	@Param			payload	body	LogoutPayload	false	"Refresh token to revoke"
//	@Success		204		"No Content"
//	@Failure		401		{object}	error	"Unauthorized"
//	@Failure		503		{object}	error	"Token store unavailable"
//	@Security		ApiKeyAuth
//	@Router			/autenticacion/logout [post]
func (app *application) logoutHandler(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	if claims == nil {
		app.unauthorizedErrorResponse(w, r, fmt.Errorf("no token in context"))
		return
	}

	var payload LogoutPayload
	if r.ContentLength != 0 {
		if err := readJSON(w, r, &payload); err != nil {
			app.badRequestResponse(w, r, err)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := app.tokens.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		app.serviceUnavailableResponse(w, r, err)
		return
	}

	if payload.RefreshToken != "" {
		refresh, err := app.authenticator.ValidateRefreshToken(payload.RefreshToken)
		if err == nil && refresh.Subject == claims.Subject {
			if err := app.tokens.Revoke(ctx, refresh.ID, refresh.ExpiresAt.Time); err != nil {
				app.serviceUnavailableResponse(w, r, err)
				return
			}
		}
	}

	w.WriteHeader(http.StatusNoContent)
}
