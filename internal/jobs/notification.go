package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"consultorio/internal/domain/notifications"
	"consultorio/internal/domain/users"
	"consultorio/internal/mailer"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

type NotificationStore interface {
	GetByID(ctx context.Context, id int64) (*notifications.Notification, error)
	MarkSent(ctx context.Context, id int64) error
	MarkFailed(ctx context.Context, id int64, reason string) error
}

type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*users.User, error)
}

// notificationEmail is the data passed to mailer.NotificationTemplate.
type notificationEmail struct {
	RecipientName string
	SenderName    string
	Subject       string
	Message       string
}

type NotificationProcessor struct {
	store  NotificationStore
	users  UserLookup
	mailer mailer.Client
	logger *zap.SugaredLogger
}

func NewNotificationProcessor(store NotificationStore, users UserLookup, m mailer.Client, logger *zap.SugaredLogger) *NotificationProcessor {
	return &NotificationProcessor{store: store, users: users, mailer: m, logger: logger}
}

// Handle sends the notification and records the outcome. Failed sends are
// retried by asynq; the row is marked as failed only on the last attempt.
func (p *NotificationProcessor) Handle(ctx context.Context, t *asynq.Task) error {
	var payload NotificationPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
	}

	n, err := p.store.GetByID(ctx, payload.NotificationID)
	if err != nil {
		if errors.Is(err, notifications.ErrNotFound) {
			p.logger.Warnw("notification vanished before delivery", "notification_id", payload.NotificationID)
			return fmt.Errorf("notification %d: %w", payload.NotificationID, asynq.SkipRetry)
		}
		return err
	}
	if n.Status != notifications.StatusPending {
		return nil
	}

	data := notificationEmail{Subject: n.Subject, Message: n.Message}
	if n.SenderID != nil {
		if sender, err := p.users.GetByID(ctx, *n.SenderID); err == nil {
			data.SenderName = sender.FirstName + " " + sender.LastName
		}
	}

	if _, err := p.mailer.Send(mailer.NotificationTemplate, "", n.Recipient, data); err != nil {
		p.logger.Errorw("notification delivery failed", "notification_id", n.ID, "error", err)
		if finalAttempt(ctx) {
			if markErr := p.store.MarkFailed(ctx, n.ID, err.Error()); markErr != nil {
				p.logger.Errorw("failed to mark notification as failed", "notification_id", n.ID, "error", markErr)
			}
		}
		return err
	}

	if err := p.store.MarkSent(ctx, n.ID); err != nil {
		return fmt.Errorf("mark notification %d sent: %v: %w", n.ID, err, asynq.SkipRetry)
	}
	p.logger.Infow("notification sent", "notification_id", n.ID)
	return nil
}

func finalAttempt(ctx context.Context) bool {
	retried, ok := asynq.GetRetryCount(ctx)
	if !ok {
		return true
	}
	limit, ok := asynq.GetMaxRetry(ctx)
	if !ok {
		return true
	}
	return retried >= limit
}

