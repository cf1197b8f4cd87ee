package main

import (
	"context"
	"net/http"

	"consultorio/internal/auth"
	"consultorio/internal/domain/users"
	"consultorio/internal/permissions"
)

type ctxKey string

const (
	userCtx      ctxKey = "user"
	principalCtx ctxKey = "principal"
	claimsCtx    ctxKey = "claims"
)

func withAuthenticated(ctx context.Context, user *users.User, claims *auth.Claims) context.Context {
	ctx = context.WithValue(ctx, userCtx, user)
	ctx = context.WithValue(ctx, claimsCtx, claims)
	return context.WithValue(ctx, principalCtx, permissions.Principal{UserID: user.ID, Role: user.Role})
}

func getUserFromContext(r *http.Request) *users.User {
	if user, ok := r.Context().Value(userCtx).(*users.User); ok {
		return user
	}
	return nil
}

func getPrincipal(r *http.Request) (permissions.Principal, bool) {
	p, ok := r.Context().Value(principalCtx).(permissions.Principal)
	return p, ok
}

func getClaims(r *http.Request) *auth.Claims {
	if c, ok := r.Context().Value(claimsCtx).(*auth.Claims); ok {
		return c
	}
	return nil
}
