package main

import (
	"errors"
	"fmt"
	"net/http"

	"consultorio/internal/domain/errorlogs"
	"consultorio/internal/params"

	"github.com/go-chi/chi/v5"
)

type ErrorLogList struct {
	Logs       []errorlogs.Entry `json:"logs"`
	Pagination params.Pagination `json:"pagination"`
}

// listErrorLogsHandler godoc
//
//	@Summary		List recorded server errors
//	@Tags			logs
//	@Produce		json
//	@Param			page	query		int	false	"Page"
//	@Param			limit	query		int	false	"Page size"
//	@Success		200		{object}	ErrorLogList
//	@Security		ApiKeyAuth
//	@Router			/logs [get]
func (app *application) listErrorLogsHandler(w http.ResponseWriter, r *http.Request) {
	if app.store.ErrorLogs == nil {
		app.serviceUnavailableResponse(w, r, errors.New("error log store is not configured"))
		return
	}

	pg := params.ParsePagination(r.URL.Query())
	list, total, err := app.store.ErrorLogs.List(r.Context(), pg.Limit, pg.Offset)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	pg.ComputeMeta(total)

	if err := app.jsonResponse(w, http.StatusOK, ErrorLogList{Logs: list, Pagination: pg}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteErrorLogHandler godoc
//
//	@Summary		Delete a recorded error
//	@Tags			logs
//	@Param			logID	path	int	true	"Log ID"
//	@Success		204		"No Content"
//	@Failure		404		{object}	error	"Not found"
//	@Security		ApiKeyAuth
//	@Router			/logs/{logID} [delete]
func (app *application) deleteErrorLogHandler(w http.ResponseWriter, r *http.Request) {
	if app.store.ErrorLogs == nil {
		app.serviceUnavailableResponse(w, r, errors.New("error log store is not configured"))
		return
	}

	id, err := params.ParseID(chi.URLParam(r, "logID"))
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("invalid logID"))
		return
	}

	if err := app.store.ErrorLogs.Delete(r.Context(), id); err != nil {
		if errors.Is(err, errorlogs.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
