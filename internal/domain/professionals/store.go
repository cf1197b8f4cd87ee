package professionals

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"consultorio/internal/db"

	"github.com/jackc/pgx/v5"
)

type Store interface {
	GetByID(ctx context.Context, id int64) (*Professional, error)
	Create(ctx context.Context, p *Professional) error
	Update(ctx context.Context, p *Professional) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter ListFilter, limit, offset int) ([]Professional, int, error)
}

type Repository struct {
	db db.Querier
}

func NewRepository(q db.Querier) *Repository {
	return &Repository{db: q}
}

const professionalColumns = `id, usuario_id, nombre, apellido, especialidad, matricula, telefono, email, activo, creado_en, actualizado_en`

func scanProfessional(row pgx.Row) (*Professional, error) {
	p := &Professional{}
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.FirstName,
		&p.LastName,
		&p.Specialty,
		&p.License,
		&p.Phone,
		&p.Email,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Professional, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return scanProfessional(r.db.QueryRow(ctx, `SELECT `+professionalColumns+` FROM profesionales WHERE id = $1`, id))
}

func (r *Repository) Create(ctx context.Context, p *Professional) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		INSERT INTO profesionales (usuario_id, nombre, apellido, especialidad, matricula, telefono, email, activo)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, creado_en, actualizado_en
	`
	err := r.db.QueryRow(ctx, query,
		p.UserID, p.FirstName, p.LastName, p.Specialty, p.License, p.Phone, p.Email, p.IsActive,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (r *Repository) Update(ctx context.Context, p *Professional) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		UPDATE profesionales
		SET usuario_id = $1, nombre = $2, apellido = $3, especialidad = $4, matricula = $5,
		    telefono = $6, email = $7, activo = $8, actualizado_en = NOW()
		WHERE id = $9
		RETURNING actualizado_en
	`
	err := r.db.QueryRow(ctx, query,
		p.UserID, p.FirstName, p.LastName, p.Specialty, p.License, p.Phone, p.Email, p.IsActive, p.ID,
	).Scan(&p.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return ErrNotFound
		case db.IsUniqueViolation(err):
			return ErrConflict
		default:
			return err
		}
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM profesionales WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) List(ctx context.Context, filter ListFilter, limit, offset int) ([]Professional, int, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	where := []string{"TRUE"}
	args := []any{}
	if q := strings.TrimSpace(filter.Query); q != "" {
		args = append(args, db.ContainsPattern(q))
		where = append(where, fmt.Sprintf(`(nombre ILIKE $%[1]d ESCAPE '\' OR apellido ILIKE $%[1]d ESCAPE '\' OR matricula ILIKE $%[1]d ESCAPE '\')`, len(args)))
	}
	if filter.Specialty != "" {
		args = append(args, db.EscapeLike(filter.Specialty))
		where = append(where, fmt.Sprintf(`especialidad ILIKE $%d ESCAPE '\'`, len(args)))
	}
	if filter.ActiveOnly {
		where = append(where, "activo")
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM profesionales WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count professionals: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM profesionales WHERE %s ORDER BY apellido, nombre, id LIMIT $%d OFFSET $%d`,
		professionalColumns, cond, len(args)-1, len(args))
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list professionals: %w", err)
	}
	defer rows.Close()

	list := []Professional{}
	for rows.Next() {
		p, err := scanProfessional(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}
