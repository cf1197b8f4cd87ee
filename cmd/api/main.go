package main

import (
	"database/sql"
	"expvar"
	"fmt"
	"os"
	"runtime"

	"consultorio/internal/auth"
	"consultorio/internal/db"
	"consultorio/internal/domain/patients"
	"consultorio/internal/domain/storage"
	"consultorio/internal/jobs"
	"consultorio/internal/metrics"
	"consultorio/internal/permissions"
	"consultorio/internal/ratelimiter"
	"consultorio/internal/tokens"

	"github.com/hibiken/asynq"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates a new zap logger with color.
func NewLogger() (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)
	core := zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), zapcore.InfoLevel)

	return zap.New(core).Sugar(), nil
}

var version = "1.0.0"

//	@title			Consultorio API
//	@description	Administrative backend for a medical practice: users, patients, professionals, permissions and notifications.

//	@contact.name	API Support
//	@contact.email	soporte@consultorio.local

//	@BasePath					/v1
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer access token

//	@securityDefinitions.basic	BasicAuth

func main() {
	logger, err := NewLogger()
	if err != nil {
		fmt.Println("Error creating logger:", err)
		return
	}
	defer logger.Sync()

	cfg, err := loadConfig()
	if err != nil {
		logger.Fatalw("invalid configuration", "error", err)
	}

	// Database
	pool, err := db.New(cfg.DBAddr, cfg.DBMaxConns, cfg.DBMaxIdleTime)
	if err != nil {
		logger.Fatal(err)
	}
	defer pool.Close()
	logger.Info("database connection pool established")

	logsDB, err := sql.Open("postgres", cfg.DBAddr)
	if err != nil {
		logger.Fatal(err)
	}
	defer logsDB.Close()
	logsDB.SetMaxOpenConns(5)

	codec, err := patients.NewCodec(cfg.HashidsSalt)
	if err != nil {
		logger.Fatal(err)
	}
	store := storage.NewContainer(pool, logsDB, codec)

	// Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer rdb.Close()

	queue := jobs.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer queue.Close()

	// Permissions
	catalog, err := permissions.DefaultCatalog()
	if err != nil {
		logger.Fatal(err)
	}
	resolver := permissions.NewResolver(catalog, store.Overrides)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	jwtAuthenticator := auth.NewJWTAuthenticator(auth.Config{
		Secret:        cfg.TokenSecret,
		RefreshSecret: cfg.TokenRefreshSecret,
		Audience:      cfg.TokenIssuer,
		Issuer:        cfg.TokenIssuer,
		AccessTTL:     cfg.AccessTokenTTL,
		RefreshTTL:    cfg.RefreshTokenTTL,
	})

	app := &application{
		config:        cfg,
		logger:        logger,
		store:         store,
		tx:            store,
		codec:         codec,
		resolver:      resolver,
		gate:          permissions.NewGate(resolver, logger, m),
		authenticator: jwtAuthenticator,
		tokens:        tokens.NewDenylist(rdb),
		jobs:          queue,
		rateLimiter:   ratelimiter.NewFixedWindowLimiter(cfg.RateLimiterRequests, cfg.RateLimiterTimeFrame),
		metrics:       promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}

	if err := app.scheduleErrorLogPurge(); err != nil {
		logger.Fatalw("invalid error log purge schedule", "error", err)
	}

	//Metrics collected http://localhost:8080/v1/debug/vars
	expvar.NewString("version").Set(version)
	expvar.Publish("database", expvar.Func(func() any {
		s := pool.Stat()
		return map[string]any{
			"total_conns":    s.TotalConns(),
			"idle_conns":     s.IdleConns(),
			"acquired_conns": s.AcquiredConns(),
			"max_conns":      s.MaxConns(),
		}
	}))
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.mount()

	logger.Fatal(app.run(mux))
}
