package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"consultorio/internal/domain/notifications"
	"consultorio/internal/params"

	"github.com/go-chi/chi/v5"
)

type CreateNotificationPayload struct {
	Recipient string `json:"destinatario" validate:"required,email,max=255"`
	Subject   string `json:"asunto" validate:"required,max=200"`
	Message   string `json:"mensaje" validate:"required,max=5000"`
}

type NotificationList struct {
	Notifications []notifications.Notification `json:"notificaciones"`
	Pagination    params.Pagination            `json:"pagination"`
}

// listNotificationsHandler godoc
//
//	@Summary		List notifications
//	@Tags			notificaciones
//	@Produce		json
//	@Param			estado			query		string	false	"pendiente, enviada or fallida"
//	@Param			remitente_id	query		int		false	"Sender user ID"
//	@Param			page			query		int		false	"Page"
//	@Param			limit			query		int		false	"Page size"
//	@Success		200				{object}	NotificationList
//	@Failure		400				{object}	error	"Bad request"
//	@Security		ApiKeyAuth
//	@Router			/notificaciones [get]
func (app *application) listNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pg := params.ParsePagination(q)

	status := q.Get("estado")
	if status != "" && !notifications.ValidStatus(status) {
		app.badRequestResponse(w, r, fmt.Errorf("invalid estado %q", status))
		return
	}
	senderID, err := params.OptionalID(q, "remitente_id")
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("invalid remitente_id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	list, total, err := app.store.Notifications.List(ctx, notifications.ListFilter{Status: status, SenderID: senderID}, pg.Limit, pg.Offset)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	pg.ComputeMeta(total)

	if err := app.jsonResponse(w, http.StatusOK, NotificationList{Notifications: list, Pagination: pg}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// createNotificationHandler godoc
//
//	@Summary		Send a notification e-mail
//	@Description	Stores the notification as pending and queues it for delivery.
//	@Tags			notificaciones
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreateNotificationPayload	true	"Notification"
//	@Success		202		{object}	notifications.Notification
//	@Failure		400		{object}	ErrorBadRequestResponse		"Bad request"
//	@Failure		503		{object}	error						"Queue unavailable"
//	@Security		ApiKeyAuth
//	@Router			/notificaciones [post]
func (app *application) createNotificationHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateNotificationPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	sender := getUserFromContext(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	n := &notifications.Notification{
		SenderID:  &sender.ID,
		Recipient: payload.Recipient,
		Subject:   payload.Subject,
		Message:   payload.Message,
	}
	if err := app.store.Notifications.Create(ctx, n); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jobs.EnqueueNotification(ctx, n.ID); err != nil {
		if markErr := app.store.Notifications.MarkFailed(ctx, n.ID, "could not be queued"); markErr != nil {
			app.logger.Errorw("failed to mark notification", "notification_id", n.ID, "error", markErr)
		}
		app.serviceUnavailableResponse(w, r, fmt.Errorf("enqueue notification %d: %w", n.ID, err))
		return
	}

	app.logger.Infow("notification queued", "notification_id", n.ID, "sender_id", sender.ID)

	if err := app.jsonResponse(w, http.StatusAccepted, n); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getNotificationHandler godoc
//
//	@Summary		Get a notification
//	@Tags			notificaciones
//	@Produce		json
//	@Param			notificationID	path		int	true	"Notification ID"
//	@Success		200				{object}	notifications.Notification
//	@Failure		404				{object}	error	"Not found"
//	@Security		ApiKeyAuth
//	@Router			/notificaciones/{notificationID} [get]
func (app *application) getNotificationHandler(w http.ResponseWriter, r *http.Request) {
	id, err := params.ParseID(chi.URLParam(r, "notificationID"))
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("invalid notificationID"))
		return
	}

	n, err := app.store.Notifications.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, notifications.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, n); err != nil {
		app.internalServerError(w, r, err)
	}
}
