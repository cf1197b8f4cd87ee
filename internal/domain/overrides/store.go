package overrides

import (
	"context"
	"errors"
	"fmt"

	"consultorio/internal/db"

	"github.com/jackc/pgx/v5"
)

type Store interface {
	FindByUser(ctx context.Context, userID int64) ([]Override, error)
	FindByUserAndPermission(ctx context.Context, userID int64, permission string) (*Override, error)
	Insert(ctx context.Context, userID int64, permission string, active bool) (*Override, error)
	UpdateActive(ctx context.Context, id int64, active bool) (*Override, error)
	Delete(ctx context.Context, userID int64, permission string) error
}

type Repository struct {
	db db.Querier
}

func NewRepository(q db.Querier) *Repository {
	return &Repository{db: q}
}

const overrideColumns = `id, usuario_id, permiso, activo, fecha_asignacion`

// FindByUser returns every override row of the user, most recent assignment first.
func (r *Repository) FindByUser(ctx context.Context, userID int64) ([]Override, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		SELECT ` + overrideColumns + `
		FROM permisos_usuario
		WHERE usuario_id = $1
		ORDER BY fecha_asignacion DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("find overrides for user %d: %w", userID, err)
	}
	defer rows.Close()

	var list []Override
	for rows.Next() {
		var o Override
		if err := rows.Scan(&o.ID, &o.UserID, &o.Permission, &o.Active, &o.AssignedAt); err != nil {
			return nil, err
		}
		list = append(list, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// FindByUserAndPermission returns the most recent row for the pair, or ErrNotFound.
func (r *Repository) FindByUserAndPermission(ctx context.Context, userID int64, permission string) (*Override, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		SELECT ` + overrideColumns + `
		FROM permisos_usuario
		WHERE usuario_id = $1 AND permiso = $2
		ORDER BY fecha_asignacion DESC, id DESC
		LIMIT 1
	`
	return scanOne(r.db.QueryRow(ctx, query, userID, permission))
}

// Insert creates the row. A row that appeared for the same pair since the caller's
// lookup is overwritten rather than duplicated.
func (r *Repository) Insert(ctx context.Context, userID int64, permission string, active bool) (*Override, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		INSERT INTO permisos_usuario (usuario_id, permiso, activo, fecha_asignacion)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (usuario_id, permiso)
		DO UPDATE SET activo = EXCLUDED.activo, fecha_asignacion = EXCLUDED.fecha_asignacion
		RETURNING ` + overrideColumns
	o, err := scanOne(r.db.QueryRow(ctx, query, userID, permission, active))
	if err != nil {
		return nil, fmt.Errorf("insert override %s for user %d: %w", permission, userID, err)
	}
	return o, nil
}

func (r *Repository) UpdateActive(ctx context.Context, id int64, active bool) (*Override, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		UPDATE permisos_usuario
		SET activo = $2, fecha_asignacion = NOW()
		WHERE id = $1
		RETURNING ` + overrideColumns
	return scanOne(r.db.QueryRow(ctx, query, id, active))
}

func (r *Repository) Delete(ctx context.Context, userID int64, permission string) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM permisos_usuario WHERE usuario_id = $1 AND permiso = $2`, userID, permission)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanOne(row pgx.Row) (*Override, error) {
	var o Override
	if err := row.Scan(&o.ID, &o.UserID, &o.Permission, &o.Active, &o.AssignedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}
