package jobs

import (
	"context"

	"consultorio/internal/metrics"

	"github.com/hibiken/asynq"
)

// NewServeMux routes every task type to its processor. Runs are counted in m when set.
func NewServeMux(notif *NotificationProcessor, m *metrics.Metrics) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Use(Instrument(m))
	mux.HandleFunc(TaskSendNotification, notif.Handle)
	return mux
}

func Instrument(m *metrics.Metrics) asynq.MiddlewareFunc {
	return func(next asynq.Handler) asynq.Handler {
		return asynq.HandlerFunc(func(ctx context.Context, t *asynq.Task) error {
			tracker := m.Track(t.Type())
			return tracker.End(next.ProcessTask(ctx, t))
		})
	}
}
