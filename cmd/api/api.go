package main

import (
	"context"
	"errors"
	"expvar"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"consultorio/docs"
	"consultorio/internal/auth"
	"consultorio/internal/domain/patients"
	"consultorio/internal/domain/storage"
	"consultorio/internal/jobs"
	"consultorio/internal/permissions"
	"consultorio/internal/ratelimiter"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/robfig/cron/v3"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"github.com/unrolled/secure"
	"go.uber.org/zap"
)

// tokenRevoker is the denylist of access and refresh token ids.
type tokenRevoker interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	RevokeOnce(ctx context.Context, jti string, expiresAt time.Time) (bool, error)
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// unitOfWork runs fn over repositories that share one transaction.
type unitOfWork interface {
	WithTx(ctx context.Context, fn func(tx *storage.Tx) error) error
}

type application struct {
	config        config
	logger        *zap.SugaredLogger
	store         *storage.Container
	tx            unitOfWork
	codec         *patients.Codec
	resolver      *permissions.Resolver
	gate          *permissions.Gate
	authenticator auth.Authenticator
	tokens        tokenRevoker
	jobs          jobs.Enqueuer
	rateLimiter   ratelimiter.Limiter
	metrics       http.Handler
	scheduler     *cron.Cron
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		SSLRedirect:        app.config.isProduction(),
		SSLProxyHeaders:    map[string]string{"X-Forwarded-Proto": "https"},
		IsDevelopment:      !app.config.isProduction(),
	}).Handler)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(app.RateLimiterMiddleware)

	r.Route("/v1", func(r chi.Router) {
		r.With(app.BasicAuthMiddleware()).Get("/health", app.healthCheckHandler)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/v1/swagger/doc.json")))
		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)
		if app.metrics != nil {
			r.With(app.BasicAuthMiddleware()).Handle("/metrics", app.metrics)
		}

		r.Route("/autenticacion", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(httprate.Limit(app.config.LoginRateLimit, app.config.LoginRateWindow,
					httprate.WithKeyFuncs(httprate.KeyByIP)))
				r.Post("/token", app.createTokenHandler)
				r.Post("/refresh", app.refreshTokenHandler)
			})
			r.With(app.AuthTokenMiddleware).Post("/logout", app.logoutHandler)
		})

		r.Group(func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)

			r.With(app.requirePermission(permissions.PermissionsRead)).Get("/permisos", app.listPermissionsHandler)

			r.Route("/usuarios", func(r chi.Router) {
				r.With(app.requirePermission(permissions.UsersRead)).Get("/", app.listUsersHandler)
				r.With(app.requirePermission(permissions.UsersCreate)).Post("/", app.createUserHandler)
				r.Get("/me", app.getCurrentUserHandler)

				r.Route("/{userID}", func(r chi.Router) {
					r.With(app.requirePermission(permissions.UsersRead)).Get("/", app.getUserHandler)
					r.With(app.requirePermission(permissions.UsersEdit)).Patch("/", app.updateUserHandler)
					r.With(app.requirePermission(permissions.UsersDelete)).Delete("/", app.deleteUserHandler)

					r.With(app.requirePermission(permissions.PermissionsRead)).Get("/permisos", app.getUserPermissionsHandler)
					r.Route("/permisos/{permission}", func(r chi.Router) {
						r.Use(app.requirePermission(permissions.PermissionsAssign))
						r.Post("/conceder", app.grantPermissionHandler)
						r.Post("/revocar", app.revokePermissionHandler)
						r.Delete("/", app.resetPermissionHandler)
					})
				})
			})

			r.Route("/pacientes", func(r chi.Router) {
				r.With(app.requirePermission(permissions.PatientsRead)).Get("/", app.listPatientsHandler)
				r.With(app.requirePermission(permissions.PatientsCreate)).Post("/", app.createPatientHandler)
				r.With(app.requirePermission(permissions.PatientsRead)).Get("/codigo/{code}", app.getPatientByCodeHandler)

				r.Route("/{patientID}", func(r chi.Router) {
					r.With(app.requirePermission(permissions.PatientsRead)).Get("/", app.getPatientHandler)
					r.With(app.requirePermission(permissions.PatientsEdit)).Patch("/", app.updatePatientHandler)
					r.With(app.requirePermission(permissions.PatientsDelete)).Delete("/", app.deletePatientHandler)
				})
			})

			r.Route("/profesionales", func(r chi.Router) {
				r.With(app.requirePermission(permissions.ProfessionalsRead)).Get("/", app.listProfessionalsHandler)
				r.With(app.requirePermission(permissions.ProfessionalsCreate)).Post("/", app.createProfessionalHandler)

				r.Route("/{professionalID}", func(r chi.Router) {
					r.With(app.requirePermission(permissions.ProfessionalsRead)).Get("/", app.getProfessionalHandler)
					r.With(app.requirePermission(permissions.ProfessionalsEdit)).Patch("/", app.updateProfessionalHandler)
					r.With(app.requirePermission(permissions.ProfessionalsDelete)).Delete("/", app.deleteProfessionalHandler)
				})
			})

			r.Route("/notificaciones", func(r chi.Router) {
				r.With(app.requirePermission(permissions.NotificationsRead)).Get("/", app.listNotificationsHandler)
				r.With(app.requirePermission(permissions.NotificationsSend)).Post("/", app.createNotificationHandler)
				r.With(app.requirePermission(permissions.NotificationsRead)).Get("/{notificationID}", app.getNotificationHandler)
			})

			r.Route("/logs", func(r chi.Router) {
				r.With(app.requirePermission(permissions.LogsRead)).Get("/", app.listErrorLogsHandler)
				r.With(app.requirePermission(permissions.LogsDelete)).Delete("/{logID}", app.deleteErrorLogHandler)
			})
		})
	})
	return r
}

func (app *application) run(mux http.Handler) error {
	// Docs
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.ExternalURL
	docs.SwaggerInfo.BasePath = "/v1"

	srv := &http.Server{
		Addr:         app.config.Addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		if app.scheduler != nil {
			<-app.scheduler.Stop().Done()
		}
		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.Addr, "env", app.config.Env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.Addr, "env", app.config.Env)

	return nil
}
