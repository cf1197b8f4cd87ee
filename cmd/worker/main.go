package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"consultorio/internal/db"
	"consultorio/internal/domain/notifications"
	"consultorio/internal/domain/users"
	"consultorio/internal/jobs"
	"consultorio/internal/mailer"
	"consultorio/internal/metrics"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

func newLogger() *zap.SugaredLogger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(os.Stdout), zapcore.InfoLevel)
	return zap.New(core).Sugar().Named("worker")
}

func main() {
	logger := newLogger()
	defer logger.Sync()

	if err := run(logger); err != nil {
		logger.Fatalw("worker stopped", "error", err)
	}
}

func run(logger *zap.SugaredLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := db.New(cfg.DBAddr, cfg.DBMaxConns, cfg.DBMaxIdleTime)
	if err != nil {
		return err
	}
	defer pool.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	smtp := mailer.NewSMTPMailer(mailer.SMTPConfig{
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		Username:  cfg.SMTPUsername,
		Password:  cfg.SMTPPassword,
		FromEmail: cfg.SMTPFromEmail,
		Timeout:   cfg.SMTPTimeout,
	})
	processor := jobs.NewNotificationProcessor(
		notifications.NewRepository(pool),
		users.NewRepository(pool),
		smtp,
		logger,
	)

	srv := asynq.NewServer(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, asynq.Config{
		Concurrency: cfg.Concurrency,
		Queues:      map[string]int{jobs.QueueDefault: 1},
		Logger:      logger,
	})

	metricsSrv := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Start(jobs.NewServeMux(processor, m)); err != nil {
			return fmt.Errorf("start asynq server: %w", err)
		}
		logger.Infow("worker has started", "concurrency", cfg.Concurrency, "env", cfg.Env)
		<-ctx.Done()
		srv.Shutdown()
		return nil
	})

	g.Go(func() error {
		logger.Infow("metrics server has started", "addr", cfg.MetricsAddr)
		if err := metricsSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return metricsSrv.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	logger.Infow("worker has stopped")
	return err
}
