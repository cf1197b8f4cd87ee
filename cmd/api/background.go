package main

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
)

// scheduleErrorLogPurge registers the retention job on a new scheduler and starts it.
func (app *application) scheduleErrorLogPurge() error {
	if app.store.ErrorLogs == nil {
		return nil
	}

	c := cron.New()
	if _, err := c.AddFunc(app.config.ErrorLogPurgeSchedule, app.purgeErrorLogs); err != nil {
		return err
	}
	c.Start()
	app.scheduler = c

	app.logger.Infow("error log purge scheduled", "schedule", app.config.ErrorLogPurgeSchedule, "retention", app.config.ErrorLogRetention.String())
	return nil
}

func (app *application) purgeErrorLogs() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-app.config.ErrorLogRetention)
	n, err := app.store.ErrorLogs.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		app.logger.Errorw("error log purge failed", "error", err)
		return
	}
	app.logger.Infow("error logs purged", "deleted", n, "cutoff", cutoff.Format(time.RFC3339))
}
