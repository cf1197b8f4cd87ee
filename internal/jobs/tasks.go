// Package jobs defines the background tasks queued on asynq and their processors.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	QueueDefault = "default"

	// TaskSendNotification delivers one stored notification by e-mail.
	TaskSendNotification = "notificacion:enviar"
)

type NotificationPayload struct {
	NotificationID int64 `json:"notificacion_id"`
}

func NewNotificationTask(notificationID int64) (*asynq.Task, error) {
	body, err := json.Marshal(NotificationPayload{NotificationID: notificationID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSendNotification, body,
		asynq.Queue(QueueDefault),
		asynq.MaxRetry(5),
		asynq.Timeout(time.Minute),
	), nil
}

// Enqueuer is what the API needs from the queue.
type Enqueuer interface {
	EnqueueNotification(ctx context.Context, notificationID int64) error
}

// Client submits jobs to the queue.
type Client struct {
	client *asynq.Client
}

func NewClient(opt asynq.RedisConnOpt) *Client {
	return &Client{client: asynq.NewClient(opt)}
}

func (c *Client) EnqueueNotification(ctx context.Context, notificationID int64) error {
	task, err := NewNotificationTask(notificationID)
	if err != nil {
		return err
	}
	if _, err := c.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("enqueue notification %d: %w", notificationID, err)
	}
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
