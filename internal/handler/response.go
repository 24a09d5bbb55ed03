package handler

// RESPONSE HELPERS:
// Every JSON endpoint answers through writeJSON / writeError so the shape
// of a response never depends on which handler produced it.
//
// ERROR FORMAT:
//
//	{"error": "not_found", "message": "user not found with id ghost"}
//
// HTML pages use the same mapping (statusFor) to pick the status code of
// the error view.

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hamzaabialal/github-clone/internal/apperror"
)

// ErrorResponse is the body of every JSON error.
type ErrorResponse struct {
	Error   string `json:"error"`   // machine-readable kind, e.g. "not_found"
	Message string `json:"message"` // human-readable description
}

// writeJSON sends data as JSON with the given status. Headers go out before
// the body, so the status cannot change once encoding has started.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// statusFor maps a service error to an HTTP status and an error kind.
//
//	ErrValidation → 400 validation_error
//	ErrNotFound   → 404 not_found
//	ErrSuperseded → 409 superseded
//	ErrUpstream   → 502 upstream_error
//	anything else → 500 internal_error
//
// The service layer knows nothing about HTTP; this is the only place the
// translation happens.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, apperror.ErrValidation):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, apperror.ErrSuperseded):
		return http.StatusConflict, "superseded"
	case errors.Is(err, apperror.ErrUpstream):
		return http.StatusBadGateway, "upstream_error"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// messageFor returns the text shown to the user for err. Only AppError
// messages are shown verbatim; raw errors may carry URLs or SQL and are
// replaced by a generic sentence.
func messageFor(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "An internal error occurred"
}

// writeError maps err to a status and sends it as an ErrorResponse.
func writeError(w http.ResponseWriter, err error) {
	status, kind := statusFor(err)
	writeJSON(w, status, ErrorResponse{
		Error:   kind,
		Message: messageFor(err),
	})
}

// clientGone reports whether the request's own context ended. Nobody is
// listening for a response in that case.
func clientGone(r *http.Request, err error) bool {
	return errors.Is(err, context.Canceled) && r.Context().Err() != nil
}
