package notifications

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"consultorio/internal/db"

	"github.com/jackc/pgx/v5"
)

type Store interface {
	Create(ctx context.Context, n *Notification) error
	GetByID(ctx context.Context, id int64) (*Notification, error)
	List(ctx context.Context, filter ListFilter, limit, offset int) ([]Notification, int, error)
	MarkSent(ctx context.Context, id int64) error
	MarkFailed(ctx context.Context, id int64, reason string) error
}

type Repository struct {
	db db.Querier
}

func NewRepository(q db.Querier) *Repository {
	return &Repository{db: q}
}

const notificationColumns = `id, remitente_id, destinatario, asunto, mensaje, estado, error, creado_en, enviado_en`

func scanNotification(row pgx.Row) (*Notification, error) {
	n := &Notification{}
	err := row.Scan(
		&n.ID,
		&n.SenderID,
		&n.Recipient,
		&n.Subject,
		&n.Message,
		&n.Status,
		&n.Error,
		&n.CreatedAt,
		&n.SentAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return n, nil
}

// Create stores n as pending regardless of n.Status.
func (r *Repository) Create(ctx context.Context, n *Notification) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		INSERT INTO notificaciones (remitente_id, destinatario, asunto, mensaje, estado)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, creado_en
	`
	n.Status = StatusPending
	return r.db.QueryRow(ctx, query, n.SenderID, n.Recipient, n.Subject, n.Message, n.Status).
		Scan(&n.ID, &n.CreatedAt)
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return scanNotification(r.db.QueryRow(ctx, `SELECT `+notificationColumns+` FROM notificaciones WHERE id = $1`, id))
}

func (r *Repository) List(ctx context.Context, filter ListFilter, limit, offset int) ([]Notification, int, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	where := []string{"TRUE"}
	args := []any{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("estado = $%d", len(args)))
	}
	if filter.SenderID != nil {
		args = append(args, *filter.SenderID)
		where = append(where, fmt.Sprintf("remitente_id = $%d", len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM notificaciones WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM notificaciones WHERE %s ORDER BY creado_en DESC, id DESC LIMIT $%d OFFSET $%d`,
		notificationColumns, cond, len(args)-1, len(args))
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	list := []Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *Repository) MarkSent(ctx context.Context, id int64) error {
	return r.setStatus(ctx, id, StatusSent, nil)
}

func (r *Repository) MarkFailed(ctx context.Context, id int64, reason string) error {
	return r.setStatus(ctx, id, StatusFailed, &reason)
}

func (r *Repository) setStatus(ctx context.Context, id int64, status string, reason *string) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		UPDATE notificaciones
		SET estado = $1, error = $2,
		    enviado_en = CASE WHEN $3 THEN NOW() ELSE enviado_en END
		WHERE id = $4
	`
	tag, err := r.db.Exec(ctx, query, status, reason, status == StatusSent, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
