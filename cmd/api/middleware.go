package main

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"consultorio/internal/domain/users"
	"consultorio/internal/permissions"
)

func (app *application) BasicAuthMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				app.unauthorizedBasicErrorResponse(w, r, fmt.Errorf("authorization header is missing"))
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Basic" {
				app.unauthorizedBasicErrorResponse(w, r, fmt.Errorf("authorization header is malformed"))
				return
			}

			decoded, err := base64.StdEncoding.DecodeString(parts[1])
			if err != nil {
				app.unauthorizedBasicErrorResponse(w, r, err)
				return
			}

			creds := strings.SplitN(string(decoded), ":", 2)
			if len(creds) != 2 ||
				subtle.ConstantTimeCompare([]byte(creds[0]), []byte(app.config.BasicUser)) != 1 ||
				subtle.ConstantTimeCompare([]byte(creds[1]), []byte(app.config.BasicPass)) != 1 {
				app.unauthorizedBasicErrorResponse(w, r, fmt.Errorf("invalid credentials"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// AuthTokenMiddleware verifies the bearer token and puts the caller in the context.
// The role used for authorization is the one stored for the user, not the token's copy.
func (app *application) AuthTokenMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			app.unauthorizedErrorResponse(w, r, fmt.Errorf("authorization header is missing"))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			app.unauthorizedErrorResponse(w, r, fmt.Errorf("authorization header is malformed"))
			return
		}

		claims, err := app.authenticator.ValidateAccessToken(parts[1])
		if err != nil {
			app.unauthorizedErrorResponse(w, r, err)
			return
		}

		ctx := r.Context()

		revoked, err := app.tokens.IsRevoked(ctx, claims.ID)
		if err != nil {
			app.serviceUnavailableResponse(w, r, fmt.Errorf("check token revocation: %w", err))
			return
		}
		if revoked {
			app.unauthorizedErrorResponse(w, r, fmt.Errorf("token %s was revoked", claims.ID))
			return
		}

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

		next.ServeHTTP(w, r.WithContext(withAuthenticated(ctx, user, claims)))
	})
}

// requirePermission lets the request through only when the gate allows permission
// for the authenticated principal.
func (app *application) requirePermission(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := getPrincipal(r)
			if !ok {
				app.unauthorizedErrorResponse(w, r, fmt.Errorf("no authenticated principal"))
				return
			}

			err := app.gate.Authorize(r.Context(), p, permission)
			switch {
			case err == nil:
				next.ServeHTTP(w, r)
			case errors.Is(err, permissions.ErrUnavailable):
				app.serviceUnavailableResponse(w, r, err)
			default:
				app.forbiddenResponse(w, r)
			}
		})
	}
}

func (app *application) RateLimiterMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.config.RateLimiterEnabled {
			if allow, retryAfter := app.rateLimiter.Allow(r.RemoteAddr); !allow {
				app.rateLimitExceededResponse(w, r, retryAfter)
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}
