package storage

import (
	"context"
	"database/sql"
	"fmt"

	"consultorio/internal/db"
	"consultorio/internal/domain/errorlogs"
	"consultorio/internal/domain/notifications"
	"consultorio/internal/domain/overrides"
	"consultorio/internal/domain/patients"
	"consultorio/internal/domain/professionals"
	"consultorio/internal/domain/users"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Container struct {
	pool          *pgxpool.Pool
	codec         *patients.Codec
	Users         users.Store
	Overrides     overrides.Store
	Patients      patients.Store
	Professionals professionals.Store
	Notifications notifications.Store
	ErrorLogs     errorlogs.Store
}

// NewContainer wires every store. logs may be nil when error logging to the
// database is not wanted; ErrorLogs is then nil too.
func NewContainer(pool *pgxpool.Pool, logs *sql.DB, codec *patients.Codec) *Container {
	c := &Container{
		pool:          pool,
		codec:         codec,
		Users:         users.NewRepository(pool),
		Overrides:     overrides.NewRepository(pool),
		Patients:      patients.NewRepository(pool, codec),
		Professionals: professionals.NewRepository(pool),
		Notifications: notifications.NewRepository(pool),
	}
	if logs != nil {
		c.ErrorLogs = errorlogs.NewSQLStore(logs)
	}
	return c
}

// Tx is a tx-scoped set of repositories for atomic units of work.
type Tx struct {
	Users     users.Store
	Overrides overrides.Store
	Patients  patients.Store
}

// WithTx runs fn atomically over tx-scoped repositories.
func (c *Container) WithTx(ctx context.Context, fn func(s *Tx) error) error {
	if c.pool == nil {
		return fmt.Errorf("storage container pool is nil")
	}
	return db.WithTx(ctx, c.pool, func(tx pgx.Tx) error {
		return fn(&Tx{
			Users:     users.NewRepository(tx),
			Overrides: overrides.NewRepository(tx),
			Patients:  patients.NewRepository(tx, c.codec),
		})
	})
}
