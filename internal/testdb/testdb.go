// Package testdb opens a real postgres for repository tests. Tests calling it are
// skipped unless TEST_DATABASE_URL is set.
package testdb

import (
	"context"
	"os"
	"testing"
	"time"

	"consultorio/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
)

const envVar = "TEST_DATABASE_URL"

// Pool connects to TEST_DATABASE_URL, applies the schema and truncates every table.
func Pool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}
	dsn := os.Getenv(envVar)
	if dsn == "" {
		t.Skipf("skipping database test: %s not set", envVar)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Skipf("database not reachable: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Skipf("database not reachable: %v", err)
	}
	t.Cleanup(pool.Close)

	schema, err := migrations.FS.ReadFile(migrations.InitUp)
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}
	if _, err := pool.Exec(ctx, string(schema)); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE logs_errores, notificaciones, pacientes, profesionales, permisos_usuario, usuarios RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return pool
}

// InsertUser creates a bare user row and returns its id.
func InsertUser(t *testing.T, pool *pgxpool.Pool, email, role string) int64 {
	t.Helper()
	var id int64
	err := pool.QueryRow(context.Background(),
		`INSERT INTO usuarios (nombre, apellido, email, password, rol) VALUES ('Test', 'User', $1, '\x00', $2) RETURNING id`,
		email, role,
	).Scan(&id)
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}
	return id
}
