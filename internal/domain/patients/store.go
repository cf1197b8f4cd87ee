package patients

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"consultorio/internal/db"

	"github.com/jackc/pgx/v5"
)

type Store interface {
	GetByID(ctx context.Context, id int64) (*Patient, error)
	Create(ctx context.Context, p *Patient) error
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter ListFilter, limit, offset int) ([]Patient, int, error)
}

// Repository fills Patient.Code from the id on every read.
type Repository struct {
	db    db.Querier
	codec *Codec
}

func NewRepository(q db.Querier, codec *Codec) *Repository {
	return &Repository{db: q, codec: codec}
}

const patientColumns = `id, nombre, apellido, documento, fecha_nacimiento, telefono, email, direccion, obra_social, profesional_id, creado_en, actualizado_en`

func (r *Repository) scan(row pgx.Row) (*Patient, error) {
	p := &Patient{}
	err := row.Scan(
		&p.ID,
		&p.FirstName,
		&p.LastName,
		&p.Document,
		&p.BirthDate,
		&p.Phone,
		&p.Email,
		&p.Address,
		&p.Insurance,
		&p.ProfessionalID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := r.setCode(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *Repository) setCode(p *Patient) error {
	code, err := r.codec.Encode(p.ID)
	if err != nil {
		return fmt.Errorf("encode patient %d: %w", p.ID, err)
	}
	p.Code = code
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return r.scan(r.db.QueryRow(ctx, `SELECT `+patientColumns+` FROM pacientes WHERE id = $1`, id))
}

func (r *Repository) Create(ctx context.Context, p *Patient) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		INSERT INTO pacientes (nombre, apellido, documento, fecha_nacimiento, telefono, email, direccion, obra_social, profesional_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, creado_en, actualizado_en
	`
	err := r.db.QueryRow(ctx, query,
		p.FirstName, p.LastName, p.Document, p.BirthDate, p.Phone, p.Email, p.Address, p.Insurance, p.ProfessionalID,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	return r.setCode(p)
}

func (r *Repository) Update(ctx context.Context, p *Patient) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		UPDATE pacientes
		SET nombre = $1, apellido = $2, documento = $3, fecha_nacimiento = $4, telefono = $5,
		    email = $6, direccion = $7, obra_social = $8, profesional_id = $9, actualizado_en = NOW()
		WHERE id = $10
		RETURNING actualizado_en
	`
	err := r.db.QueryRow(ctx, query,
		p.FirstName, p.LastName, p.Document, p.BirthDate, p.Phone, p.Email, p.Address, p.Insurance, p.ProfessionalID, p.ID,
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
	return r.setCode(p)
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM pacientes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) List(ctx context.Context, filter ListFilter, limit, offset int) ([]Patient, int, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	where := []string{"TRUE"}
	args := []any{}
	if q := strings.TrimSpace(filter.Query); q != "" {
		args = append(args, db.ContainsPattern(q))
		where = append(where, fmt.Sprintf(`(nombre ILIKE $%[1]d ESCAPE '\' OR apellido ILIKE $%[1]d ESCAPE '\' OR documento ILIKE $%[1]d ESCAPE '\')`, len(args)))
	}
	if filter.ProfessionalID != nil {
		args = append(args, *filter.ProfessionalID)
		where = append(where, fmt.Sprintf("profesional_id = $%d", len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM pacientes WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count patients: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM pacientes WHERE %s ORDER BY apellido, nombre, id LIMIT $%d OFFSET $%d`,
		patientColumns, cond, len(args)-1, len(args))
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list patients: %w", err)
	}
	defer rows.Close()

	list := []Patient{}
	for rows.Next() {
		p, err := r.scan(rows)
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
