// Package errorlogs persists server-side failures so administrators can review them
// without access to the process logs.
package errorlogs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound          = errors.New("resource not found")
	QueryTimeoutDuration = time.Second * 5
)

type Entry struct {
	ID        int64     `json:"id"`
	Method    string    `json:"metodo"`
	Path      string    `json:"ruta"`
	Message   string    `json:"mensaje"`
	UserID    *int64    `json:"usuario_id,omitempty"`
	CreatedAt time.Time `json:"creado_en"`
}

type Store interface {
	Insert(ctx context.Context, e *Entry) error
	List(ctx context.Context, limit, offset int) ([]Entry, int, error)
	Delete(ctx context.Context, id int64) error
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// SQLStore runs on database/sql with the lib/pq driver.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Insert(ctx context.Context, e *Entry) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		INSERT INTO logs_errores (metodo, ruta, mensaje, usuario_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, creado_en
	`
	var userID sql.NullInt64
	if e.UserID != nil {
		userID = sql.NullInt64{Int64: *e.UserID, Valid: true}
	}
	if err := s.db.QueryRowContext(ctx, query, e.Method, e.Path, e.Message, userID).Scan(&e.ID, &e.CreatedAt); err != nil {
		return fmt.Errorf("insert error log: %w", err)
	}
	return nil
}

func (s *SQLStore) List(ctx context.Context, limit, offset int) ([]Entry, int, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM logs_errores`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count error logs: %w", err)
	}

	query := `
		SELECT id, metodo, ruta, mensaje, usuario_id, creado_en
		FROM logs_errores
		ORDER BY creado_en DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list error logs: %w", err)
	}
	defer rows.Close()

	list := []Entry{}
	for rows.Next() {
		var (
			e      Entry
			userID sql.NullInt64
		)
		if err := rows.Scan(&e.ID, &e.Method, &e.Path, &e.Message, &userID, &e.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan error log: %w", err)
		}
		if userID.Valid {
			id := userID.Int64
			e.UserID = &id
		}
		list = append(list, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (s *SQLStore) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `DELETE FROM logs_errores WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// PurgeOlderThan deletes entries created before cutoff and returns how many went.
func (s *SQLStore) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `DELETE FROM logs_errores WHERE creado_en < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge error logs: %w", err)
	}
	return res.RowsAffected()
}
