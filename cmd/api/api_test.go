package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"consultorio/internal/auth"
	"consultorio/internal/domain/errorlogs"
	"consultorio/internal/domain/notifications"
	"consultorio/internal/domain/patients"
	"consultorio/internal/domain/storage"
	"consultorio/internal/domain/users"
	"consultorio/internal/metrics"
	"consultorio/internal/permissions"
	"consultorio/internal/ratelimiter"
	"consultorio/internal/tokens"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testPassword = "password123"

type testEnv struct {
	app           *application
	handler       http.Handler
	users         *fakeUsers
	overrides     *fakeOverrides
	patients      *fakePatients
	professionals *fakeProfessionals
	notifications *fakeNotifications
	errorLogs     *fakeErrorLogs
	denylist      *fakeDenylist
	queue         *fakeQueue
	tx            *fakeTx
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	codec, err := patients.NewCodec("test-salt")
	require.NoError(t, err)

	env := &testEnv{
		users:         newFakeUsers(),
		overrides:     &fakeOverrides{},
		patients:      newFakePatients(codec),
		professionals: newFakeProfessionals(),
		notifications: newFakeNotifications(),
		errorLogs:     &fakeErrorLogs{},
		denylist:      &fakeDenylist{revoked: make(map[string]time.Time)},
		queue:         &fakeQueue{},
	}
	env.tx = &fakeTx{users: env.users, overrides: env.overrides, patients: env.patients}

	cfg := config{
		Env:                   "test",
		BasicUser:             "admin",
		BasicPass:             "s3cret",
		TokenSecret:           "access-secret",
		TokenRefreshSecret:    "refresh-secret",
		TokenIssuer:           "consultorio",
		AccessTokenTTL:        15 * time.Minute,
		RefreshTokenTTL:       time.Hour,
		LoginRateLimit:        100,
		LoginRateWindow:       time.Minute,
		RateLimiterRequests:   1000,
		RateLimiterTimeFrame:  time.Second,
		ErrorLogRetention:     time.Hour,
		ErrorLogPurgeSchedule: "@every 1h",
	}

	catalog, err := permissions.DefaultCatalog()
	require.NoError(t, err)

	store := &storage.Container{
		Users:         env.users,
		Overrides:     env.overrides,
		Patients:      env.patients,
		Professionals: env.professionals,
		Notifications: env.notifications,
		ErrorLogs:     env.errorLogs,
	}
	logger := zap.NewNop().Sugar()
	resolver := permissions.NewResolver(catalog, store.Overrides)
	registry := prometheus.NewRegistry()

	env.app = &application{
		config:   cfg,
		logger:   logger,
		store:    store,
		tx:       env.tx,
		codec:    codec,
		resolver: resolver,
		gate:     permissions.NewGate(resolver, logger, metrics.New(registry)),
		authenticator: auth.NewJWTAuthenticator(auth.Config{
			Secret:        cfg.TokenSecret,
			RefreshSecret: cfg.TokenRefreshSecret,
			Audience:      cfg.TokenIssuer,
			Issuer:        cfg.TokenIssuer,
			AccessTTL:     cfg.AccessTokenTTL,
			RefreshTTL:    cfg.RefreshTokenTTL,
		}),
		tokens:      env.denylist,
		jobs:        env.queue,
		rateLimiter: ratelimiter.NewFixedWindowLimiter(cfg.RateLimiterRequests, cfg.RateLimiterTimeFrame),
		metrics:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}
	env.handler = env.app.mount()
	return env
}

func (e *testEnv) seedUser(t *testing.T, role, email string) *users.User {
	t.Helper()
	u := &users.User{FirstName: "Ana", LastName: "Pérez", Email: email, Role: role, IsActive: true}
	require.NoError(t, u.Password.Set(testPassword))
	require.NoError(t, e.users.Create(t.Context(), u))
	return u
}

func (e *testEnv) tokens(t *testing.T, u *users.User) auth.TokenPair {
	t.Helper()
	pair, err := e.app.authenticator.GenerateTokens(u.ID, u.Role)
	require.NoError(t, err)
	return pair
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)
	return rr
}

// decodeData unwraps the {"data": ...} envelope into v.
func decodeData(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.NoError(t, json.Unmarshal(env.Data, v))
}

func TestHealthRequiresBasicAuth(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/v1/health", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Header().Get("WWW-Authenticate"), "Basic")

	req := httptest.NewRequest(http.MethodGet, "/v1/health", nil)
	req.SetBasicAuth("admin", "wrong")
	rr = httptest.NewRecorder()
	env.handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/health", nil)
	req.SetBasicAuth("admin", "s3cret")
	rr = httptest.NewRecorder()
	env.handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var data map[string]string
	decodeData(t, rr, &data)
	assert.Equal(t, "ok", data["status"])
	assert.Equal(t, "test", data["env"])
	assert.Equal(t, version, data["version"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/v1/pacientes", "/v1/usuarios/me", "/v1/permisos", "/v1/logs"} {
		rr := env.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, path)
	}

	rr := env.do(t, http.MethodGet, "/v1/pacientes", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestInactiveUserTokenRejected(t *testing.T) {
	env := newTestEnv(t)
	u := env.seedUser(t, permissions.RoleAdmin, "admin@consultorio.test")
	token := env.tokens(t, u).AccessToken

	u.IsActive = false
	require.NoError(t, env.users.Update(t.Context(), u))

	rr := env.do(t, http.MethodGet, "/v1/usuarios/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestSecretaryOverrides(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, permissions.RoleAdmin, "admin@consultorio.test")
	secretary := env.seedUser(t, permissions.RoleSecretary, "secretaria@consultorio.test")
	adminToken := env.tokens(t, admin).AccessToken
	secToken := env.tokens(t, secretary).AccessToken

	notification := map[string]string{
		"destinatario": "paciente@example.com",
		"asunto":       "Turno",
		"mensaje":      "Su turno es el lunes.",
	}
	base := fmt.Sprintf("/v1/usuarios/%d/permisos", secretary.ID)

	// role defaults
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/v1/pacientes", secToken, nil).Code)
	assert.Equal(t, http.StatusForbidden, env.do(t, http.MethodPost, "/v1/notificaciones", secToken, notification).Code)

	rr := env.do(t, http.MethodPost, base+"/notificaciones.enviar/conceder", adminToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = env.do(t, http.MethodPost, "/v1/notificaciones", secToken, notification)
	require.Equal(t, http.StatusAccepted, rr.Code)
	var created notifications.Notification
	decodeData(t, rr, &created)
	assert.Equal(t, notifications.StatusPending, created.Status)
	require.NotNil(t, created.SenderID)
	assert.Equal(t, secretary.ID, *created.SenderID)
	assert.Equal(t, []int64{created.ID}, env.queue.queued())

	rr = env.do(t, http.MethodPost, base+"/pacientes.leer/revocar", adminToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, http.StatusForbidden, env.do(t, http.MethodGet, "/v1/pacientes", secToken, nil).Code)

	// granting twice keeps one row
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, base+"/notificaciones.enviar/conceder", adminToken, nil).Code)
	list, err := env.overrides.FindByUser(t.Context(), secretary.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	rr = env.do(t, http.MethodDelete, base+"/pacientes.leer", adminToken, nil)
	require.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/v1/pacientes", secToken, nil).Code)

	rr = env.do(t, http.MethodGet, base, adminToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var perms UserPermissions
	decodeData(t, rr, &perms)
	assert.Equal(t, permissions.RoleSecretary, perms.Role)
	assert.True(t, perms.Permissions[permissions.NotificationsSend])
	assert.True(t, perms.Permissions[permissions.PatientsRead])
	assert.False(t, perms.Permissions[permissions.UsersDelete])
	assert.Len(t, perms.Overrides, 1)
}

func TestSecretaryCannotAssignPermissions(t *testing.T) {
	env := newTestEnv(t)
	secretary := env.seedUser(t, permissions.RoleSecretary, "secretaria@consultorio.test")
	token := env.tokens(t, secretary).AccessToken

	path := fmt.Sprintf("/v1/usuarios/%d/permisos/usuarios.eliminar/conceder", secretary.ID)
	rr := env.do(t, http.MethodPost, path, token, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	list, err := env.overrides.FindByUser(t.Context(), secretary.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestOverrideStoreFailureIsUnavailable(t *testing.T) {
	env := newTestEnv(t)
	secretary := env.seedUser(t, permissions.RoleSecretary, "secretaria@consultorio.test")
	token := env.tokens(t, secretary).AccessToken

	env.overrides.fail(errStoreDown)

	rr := env.do(t, http.MethodGet, "/v1/pacientes", token, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Zero(t, env.patients.calls(), "handler must not run")

	logs := env.errorLogs.all()
	require.Len(t, logs, 1)
	assert.Equal(t, "/v1/pacientes", logs[0].Path)

	req := httptest.NewRequest(http.MethodGet, "/v1/metrics", nil)
	req.SetBasicAuth("admin", "s3cret")
	mrr := httptest.NewRecorder()
	env.handler.ServeHTTP(mrr, req)
	require.Equal(t, http.StatusOK, mrr.Code)
	assert.Contains(t, mrr.Body.String(), `consultorio_authz_decisions_total{outcome="error",permission="pacientes.leer"} 1`)
}

func TestUnknownPermission(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, permissions.RoleAdmin, "admin@consultorio.test")
	target := env.seedUser(t, permissions.RoleProfessional, "medico@consultorio.test")
	token := env.tokens(t, admin).AccessToken
	base := fmt.Sprintf("/v1/usuarios/%d/permisos", target.ID)

	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPost, base+"/pacientes.volar/conceder", token, nil).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPost, base+"/pacientes.volar/revocar", token, nil).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodDelete, base+"/pacientes.volar", token, nil).Code)

	// valid permission, nothing to reset
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodDelete, base+"/pacientes.leer", token, nil).Code)

	// unknown user
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodPost, "/v1/usuarios/999/permisos/pacientes.leer/conceder", token, nil).Code)
}

func TestPermissionCatalogEndpoint(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, permissions.RoleAdmin, "admin@consultorio.test")

	rr := env.do(t, http.MethodGet, "/v1/permisos", env.tokens(t, admin).AccessToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var cat PermissionCatalog
	decodeData(t, rr, &cat)
	assert.Len(t, cat.Permissions, len(env.app.resolver.Catalog().Permissions()))
	assert.Contains(t, cat.Roles[permissions.RoleSecretary], permissions.PatientsRead)
	assert.NotContains(t, cat.Roles[permissions.RoleSecretary], permissions.NotificationsSend)
}

func TestCurrentUserIncludesPermissions(t *testing.T) {
	env := newTestEnv(t)
	u := env.seedUser(t, permissions.RoleProfessional, "medico@consultorio.test")

	rr := env.do(t, http.MethodGet, "/v1/usuarios/me", env.tokens(t, u).AccessToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var me struct {
		ID          int64           `json:"id"`
		Email       string          `json:"email"`
		Permissions map[string]bool `json:"permisos"`
	}
	decodeData(t, rr, &me)
	assert.Equal(t, u.ID, me.ID)
	assert.True(t, me.Permissions[permissions.PatientsRead])
	assert.False(t, me.Permissions[permissions.PatientsDelete])
	assert.NotContains(t, rr.Body.String(), "password")
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	u := env.seedUser(t, permissions.RoleSecretary, "secretaria@consultorio.test")
	inactive := env.seedUser(t, permissions.RoleSecretary, "baja@consultorio.test")
	inactive.IsActive = false
	require.NoError(t, env.users.Update(t.Context(), inactive))

	tests := []struct {
		name     string
		email    string
		password string
		want     int
	}{
		{"valid credentials", "SECRETARIA@consultorio.test", testPassword, http.StatusOK},
		{"wrong password", u.Email, "password999", http.StatusUnauthorized},
		{"unknown email", "nadie@consultorio.test", testPassword, http.StatusUnauthorized},
		{"inactive user", inactive.Email, testPassword, http.StatusUnauthorized},
		{"invalid email", "not-an-email", testPassword, http.StatusBadRequest},
		{"short password", u.Email, "short", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.do(t, http.MethodPost, "/v1/autenticacion/token", "", map[string]string{
				"email":    tt.email,
				"password": tt.password,
			})
			require.Equal(t, tt.want, rr.Code, rr.Body.String())
			if tt.want != http.StatusOK {
				return
			}

			var resp TokenResponse
			decodeData(t, rr, &resp)
			assert.NotEmpty(t, resp.AccessToken)
			assert.NotEmpty(t, resp.RefreshToken)
			require.NotNil(t, resp.User)
			assert.Equal(t, u.ID, resp.User.ID)

			claims, err := env.app.authenticator.ValidateAccessToken(resp.AccessToken)
			require.NoError(t, err)
			assert.Equal(t, permissions.RoleSecretary, claims.Role)
		})
	}
}

func TestLoginRejectsUnknownFields(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodPost, "/v1/autenticacion/token", "", map[string]string{
		"email":    "a@b.com",
		"password": testPassword,
		"rol":      "administrador",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLogoutRevokesTokens(t *testing.T) {
	env := newTestEnv(t)
	u := env.seedUser(t, permissions.RoleSecretary, "secretaria@consultorio.test")
	pair := env.tokens(t, u)

	require.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/v1/usuarios/me", pair.AccessToken, nil).Code)

	rr := env.do(t, http.MethodPost, "/v1/autenticacion/logout", pair.AccessToken, LogoutPayload{RefreshToken: pair.RefreshToken})
	require.Equal(t, http.StatusNoContent, rr.Code)

	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, "/v1/usuarios/me", pair.AccessToken, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodPost, "/v1/autenticacion/refresh", "", RefreshPayload{RefreshToken: pair.RefreshToken}).Code)
}

func TestRefreshRotatesTokens(t *testing.T) {
	env := newTestEnv(t)
	u := env.seedUser(t, permissions.RoleSecretary, "secretaria@consultorio.test")
	pair := env.tokens(t, u)

	// an access token is not a refresh token
	rr := env.do(t, http.MethodPost, "/v1/autenticacion/refresh", "", RefreshPayload{RefreshToken: pair.AccessToken})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = env.do(t, http.MethodPost, "/v1/autenticacion/refresh", "", RefreshPayload{RefreshToken: pair.RefreshToken})
	require.Equal(t, http.StatusOK, rr.Code)
	var resp TokenResponse
	decodeData(t, rr, &resp)
	assert.NotEqual(t, pair.RefreshToken, resp.RefreshToken)
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/v1/usuarios/me", resp.AccessToken, nil).Code)

	rr = env.do(t, http.MethodPost, "/v1/autenticacion/refresh", "", RefreshPayload{RefreshToken: pair.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRefreshTokenIsSingleUseUnderConcurrency(t *testing.T) {
	env := newTestEnv(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	env.app.tokens = tokens.NewDenylist(rdb)

	u := env.seedUser(t, permissions.RoleSecretary, "secretaria@consultorio.test")
	pair := env.tokens(t, u)
	body, err := json.Marshal(RefreshPayload{RefreshToken: pair.RefreshToken})
	require.NoError(t, err)

	const attempts = 20
	codes := make(chan int, attempts)
	var wg sync.WaitGroup
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/v1/autenticacion/refresh", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()
			env.handler.ServeHTTP(rr, req)
			codes <- rr.Code
		}()
	}
	wg.Wait()
	close(codes)

	counts := map[int]int{}
	for code := range codes {
		counts[code]++
	}
	assert.Equal(t, 1, counts[http.StatusOK])
	assert.Equal(t, attempts-1, counts[http.StatusUnauthorized])
}

func TestCreateUser(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, permissions.RoleAdmin, "admin@consultorio.test")
	token := env.tokens(t, admin).AccessToken

	payload := map[string]any{
		"nombre":   "Lucía",
		"apellido": "Gómez",
		"email":    "lucia@consultorio.test",
		"password": "supersecreta",
		"rol":      permissions.RoleLeadSecretary,
	}

	rr := env.do(t, http.MethodPost, "/v1/usuarios", token, payload)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.NotContains(t, rr.Body.String(), "supersecreta")

	var created users.User
	decodeData(t, rr, &created)
	assert.True(t, created.IsActive)
	assert.Equal(t, permissions.RoleLeadSecretary, created.Role)

	rr = env.do(t, http.MethodPost, "/v1/usuarios", token, payload)
	assert.Equal(t, http.StatusConflict, rr.Code)

	payload["email"] = "otra@consultorio.test"
	payload["rol"] = "director"
	rr = env.do(t, http.MethodPost, "/v1/usuarios", token, payload)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = env.do(t, http.MethodGet, "/v1/usuarios?rol=director", token, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = env.do(t, http.MethodGet, "/v1/usuarios?rol="+permissions.RoleLeadSecretary, token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var list UserList
	decodeData(t, rr, &list)
	require.Len(t, list.Users, 1)
	assert.Equal(t, created.ID, list.Users[0].ID)
	assert.Equal(t, 1, list.Pagination.Total)
}

func TestCreateUserWithInitialOverrides(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, permissions.RoleAdmin, "admin@consultorio.test")
	token := env.tokens(t, admin).AccessToken

	payload := map[string]any{
		"nombre":   "Lucía",
		"apellido": "Gómez",
		"email":    "lucia@consultorio.test",
		"password": "supersecreta",
		"rol":      permissions.RoleSecretary,
		"permisos": map[string]bool{
			permissions.NotificationsSend: true,
			permissions.PatientsRead:      false,
		},
	}

	rr := env.do(t, http.MethodPost, "/v1/usuarios", token, payload)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Equal(t, 1, env.tx.count())

	var created users.User
	decodeData(t, rr, &created)
	rr = env.do(t, http.MethodGet, fmt.Sprintf("/v1/usuarios/%d/permisos", created.ID), token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var perms UserPermissions
	decodeData(t, rr, &perms)
	assert.True(t, perms.Permissions[permissions.NotificationsSend])
	assert.False(t, perms.Permissions[permissions.PatientsRead])
	assert.Len(t, perms.Overrides, 2)

	// unknown names are rejected before anything is stored
	payload["email"] = "otra@consultorio.test"
	payload["permisos"] = map[string]bool{"pacientes.volar": true}
	rr = env.do(t, http.MethodPost, "/v1/usuarios", token, payload)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, 1, env.tx.count())

	// a failed transaction stores nothing through the handler
	env.tx.err = errStoreDown
	payload["permisos"] = map[string]bool{permissions.NotificationsSend: true}
	rr = env.do(t, http.MethodPost, "/v1/usuarios", token, payload)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	_, err := env.users.GetByEmail(t.Context(), "otra@consultorio.test")
	assert.ErrorIs(t, err, users.ErrNotFound)
}

func TestOverrideChangesRunInTransaction(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, permissions.RoleAdmin, "admin@consultorio.test")
	secretary := env.seedUser(t, permissions.RoleSecretary, "secretaria@consultorio.test")
	token := env.tokens(t, admin).AccessToken
	base := fmt.Sprintf("/v1/usuarios/%d/permisos/%s", secretary.ID, permissions.NotificationsSend)

	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, base+"/conceder", token, nil).Code)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, base+"/revocar", token, nil).Code)
	assert.Equal(t, 2, env.tx.count())

	env.tx.err = errStoreDown
	rr := env.do(t, http.MethodPost, base+"/conceder", token, nil)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	env.tx.err = nil
	ok, err := env.app.resolver.HasPermission(t.Context(), secretary.ID, secretary.Role, permissions.NotificationsSend)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUserCannotDeleteThemselves(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, permissions.RoleAdmin, "admin@consultorio.test")
	other := env.seedUser(t, permissions.RoleSecretary, "secretaria@consultorio.test")
	token := env.tokens(t, admin).AccessToken

	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodDelete, fmt.Sprintf("/v1/usuarios/%d", admin.ID), token, nil).Code)
	assert.Equal(t, http.StatusNoContent, env.do(t, http.MethodDelete, fmt.Sprintf("/v1/usuarios/%d", other.ID), token, nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodDelete, fmt.Sprintf("/v1/usuarios/%d", other.ID), token, nil).Code)
}

func TestInternalErrorIsRecorded(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, permissions.RoleAdmin, "admin@consultorio.test")
	token := env.tokens(t, admin).AccessToken
	env.patients.listErr = errStoreDown

	rr := env.do(t, http.MethodGet, "/v1/pacientes", token, nil)
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), errStoreDown.Error())

	logs := env.errorLogs.all()
	require.Len(t, logs, 1)
	assert.Equal(t, http.MethodGet, logs[0].Method)
	assert.Equal(t, "/v1/pacientes", logs[0].Path)
	assert.Equal(t, errStoreDown.Error(), logs[0].Message)
	require.NotNil(t, logs[0].UserID)
	assert.Equal(t, admin.ID, *logs[0].UserID)

	rr = env.do(t, http.MethodGet, "/v1/logs", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var list ErrorLogList
	decodeData(t, rr, &list)
	require.Len(t, list.Logs, 1)

	path := fmt.Sprintf("/v1/logs/%d", list.Logs[0].ID)
	assert.Equal(t, http.StatusNoContent, env.do(t, http.MethodDelete, path, token, nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodDelete, path, token, nil).Code)
}

func TestPatientsFlow(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, permissions.RoleAdmin, "admin@consultorio.test")
	token := env.tokens(t, admin).AccessToken

	rr := env.do(t, http.MethodPost, "/v1/profesionales", token, map[string]any{
		"nombre":       "Marta",
		"apellido":     "Ruiz",
		"especialidad": "Pediatría",
		"matricula":    "MN-1234",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var doctor struct {
		ID     int64 `json:"id"`
		Active bool  `json:"activo"`
	}
	decodeData(t, rr, &doctor)
	assert.True(t, doctor.Active)

	patient := map[string]any{
		"nombre":           "Juan",
		"apellido":         "López",
		"documento":        "30123456",
		"fecha_nacimiento": "1984-03-02",
		"profesional_id":   999,
	}
	rr = env.do(t, http.MethodPost, "/v1/pacientes", token, patient)
	assert.Equal(t, http.StatusBadRequest, rr.Code, "unknown professional")

	patient["profesional_id"] = doctor.ID
	patient["documento"] = "30.123.456"
	rr = env.do(t, http.MethodPost, "/v1/pacientes", token, patient)
	assert.Equal(t, http.StatusBadRequest, rr.Code, "malformed document")

	patient["documento"] = "30123456"
	rr = env.do(t, http.MethodPost, "/v1/pacientes", token, patient)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var created patients.Patient
	decodeData(t, rr, &created)
	assert.True(t, strings.HasPrefix(created.Code, "HC-"))
	require.NotNil(t, created.BirthDate)
	assert.Equal(t, 1984, created.BirthDate.Year())

	rr = env.do(t, http.MethodPost, "/v1/pacientes", token, patient)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = env.do(t, http.MethodGet, "/v1/pacientes/codigo/"+strings.ToLower(created.Code), token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var byCode patients.Patient
	decodeData(t, rr, &byCode)
	assert.Equal(t, created.ID, byCode.ID)

	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/v1/pacientes/codigo/XX-1", token, nil).Code)

	path := fmt.Sprintf("/v1/pacientes/%d", created.ID)
	rr = env.do(t, http.MethodPatch, path, token, map[string]any{"obra_social": "OSDE"})
	require.Equal(t, http.StatusOK, rr.Code)
	var updated patients.Patient
	decodeData(t, rr, &updated)
	require.NotNil(t, updated.Insurance)
	assert.Equal(t, "OSDE", *updated.Insurance)
	assert.Equal(t, "Juan", updated.FirstName)

	rr = env.do(t, http.MethodGet, fmt.Sprintf("/v1/pacientes?profesional_id=%d", doctor.ID), token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var list PatientList
	decodeData(t, rr, &list)
	assert.Len(t, list.Patients, 1)

	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/v1/pacientes?profesional_id=abc", token, nil).Code)
	assert.Equal(t, http.StatusNoContent, env.do(t, http.MethodDelete, path, token, nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, path, token, nil).Code)
}

func TestProfessionalRoleCannotDeletePatients(t *testing.T) {
	env := newTestEnv(t)
	doctor := env.seedUser(t, permissions.RoleProfessional, "medico@consultorio.test")
	token := env.tokens(t, doctor).AccessToken

	assert.Equal(t, http.StatusForbidden, env.do(t, http.MethodDelete, "/v1/pacientes/1", token, nil).Code)
	assert.Equal(t, http.StatusForbidden, env.do(t, http.MethodPost, "/v1/profesionales", token, map[string]any{}).Code)
}

func TestNotificationEnqueueFailure(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, permissions.RoleAdmin, "admin@consultorio.test")
	token := env.tokens(t, admin).AccessToken
	env.queue.err = errStoreDown

	rr := env.do(t, http.MethodPost, "/v1/notificaciones", token, map[string]string{
		"destinatario": "paciente@example.com",
		"asunto":       "Turno",
		"mensaje":      "Hola",
	})
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)

	n, err := env.notifications.GetByID(t.Context(), 1)
	require.NoError(t, err)
	assert.Equal(t, notifications.StatusFailed, n.Status)

	rr = env.do(t, http.MethodGet, "/v1/notificaciones?estado="+notifications.StatusFailed, token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var list NotificationList
	decodeData(t, rr, &list)
	assert.Len(t, list.Notifications, 1)

	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/v1/notificaciones?estado=leida", token, nil).Code)
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/v1/notificaciones/1", token, nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/v1/notificaciones/2", token, nil).Code)
}

func TestErrorLogPurge(t *testing.T) {
	env := newTestEnv(t)
	env.errorLogs.entries = []errorlogs.Entry{
		{ID: 1, Path: "/old", CreatedAt: time.Now().Add(-2 * time.Hour)},
		{ID: 2, Path: "/new", CreatedAt: time.Now()},
	}

	env.app.purgeErrorLogs()

	left := env.errorLogs.all()
	require.Len(t, left, 1)
	assert.Equal(t, "/new", left[0].Path)
}

func TestScheduleErrorLogPurge(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.app.scheduleErrorLogPurge())
	require.NotNil(t, env.app.scheduler)
	assert.Len(t, env.app.scheduler.Entries(), 1)
	<-env.app.scheduler.Stop().Done()

	env.app.config.ErrorLogPurgeSchedule = "not a schedule"
	assert.Error(t, env.app.scheduleErrorLogPurge())
}
