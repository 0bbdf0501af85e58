// Package handlers implements the HTTP API. Every response uses the same
// envelope: {"success": true, "data": ...} or
// {"success": false, "error": {"message": ..., "code": ...}}.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"bidboard/db"
	"bidboard/internal/auth"
	"bidboard/internal/ratelimit"
	"bidboard/internal/validate"
)

// Machine-readable error codes carried in the envelope alongside the
// HTTP status.
const (
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeNotFound          = "NOT_FOUND"
	CodeBadRequest        = "BAD_REQUEST"
	CodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	CodeInternalError     = "INTERNAL_ERROR"
)

const maxBodyBytes = 1 << 20

// SessionCookie is the cookie carrying the session token. A Bearer token in
// the Authorization header is accepted as an alternative.
const SessionCookie = "bidboard_session"

type Handler struct {
	Store    StorageInterface
	Sessions *auth.Sessions
	Limiter  *ratelimit.Limiter
	Logger   *zap.Logger
}

func NewHandler(store StorageInterface, sessions *auth.Sessions, limiter *ratelimit.Limiter, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Sessions: sessions, Limiter: limiter, Logger: logger}
}

type apiError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

type envelope struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *apiError `json:"error,omitempty"`
}

func (h *Handler) respond(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if status == http.StatusNoContent {
		return
	}
	if err := json.NewEncoder(w).Encode(envelope{Success: true, Data: data}); err != nil {
		h.Logger.Error("encode response", zap.Error(err))
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Error: &apiError{Message: message, Code: code}}); err != nil {
		h.Logger.Error("encode error response", zap.Error(err))
	}
}

// fail maps domain errors to envelope responses. Validation failures become
// 400 with the field message, missing rows become 404, anything else is
// logged and reported as an opaque 500.
func (h *Handler) fail(w http.ResponseWriter, err error) {
	var fe *validate.FieldError
	switch {
	case errors.As(err, &fe):
		h.respondError(w, http.StatusBadRequest, CodeBadRequest, fe.Message)
	case errors.Is(err, db.ErrNotFound):
		h.respondError(w, http.StatusNotFound, CodeNotFound, "Not found")
	default:
		h.Logger.Error("request failed", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, CodeInternalError, "Internal server error")
	}
}

// decode reads a bounded JSON body into dst. A false return means the error
// response has already been written.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.respondError(w, http.StatusBadRequest, CodeBadRequest, "Invalid JSON body")
		return false
	}
	return true
}

// requireOwner enforces that the caller owns the resource. ErrNotFound maps
// to 404 so probing for other users' ids reveals nothing; a mismatched owner
// is 403. A false return means the error response has already been written.
func (h *Handler) requireOwner(w http.ResponseWriter, r *http.Request, owner string, err error) bool {
	if err != nil {
		h.fail(w, err)
		return false
	}
	if owner != UserID(r.Context()) {
		h.respondError(w, http.StatusForbidden, CodeForbidden, "Forbidden")
		return false
	}
	return true
}

// HealthHandler reports service and database health. Public, no session
// required.
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	dbStatus := "ok"
	if err := h.Store.Ping(r.Context()); err != nil {
		h.Logger.Warn("database ping failed", zap.Error(err))
		status = "degraded"
		dbStatus = "unreachable"
	}
	h.respond(w, http.StatusOK, map[string]string{"status": status, "database": dbStatus})
}
