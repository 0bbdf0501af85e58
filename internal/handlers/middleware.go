package handlers

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"bidboard/internal/metrics"
	"bidboard/internal/ratelimit"
)

type ctxKey int

const userIDKey ctxKey = 0

// UserID returns the authenticated user id from the request context, or ""
// on unauthenticated requests.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// WithUser returns a context carrying an authenticated user id.
func WithUser(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// RequestLogger logs each request with zap and records it in the Prometheus
// request counter.
func (h *Handler) RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		metrics.RequestsTotal.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Inc()
		h.Logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// Recoverer converts panics into a 500 envelope instead of a dropped
// connection.
func (h *Handler) Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				h.Logger.Error("panic recovered",
					zap.Any("panic", rec),
					zap.String("path", r.URL.Path),
				)
				h.respondError(w, http.StatusInternalServerError, CodeInternalError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

var mutatingMethods = map[string]bool{
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// OriginCheck rejects cross-site mutations. When a browser sends an Origin
// header on a mutating request its host must match the request host; absent
// Origin (curl, server-to-server) passes through.
func (h *Handler) OriginCheck(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if mutatingMethods[r.Method] {
			if origin := r.Header.Get("Origin"); origin != "" && origin != "null" {
				parsed, err := url.Parse(origin)
				if err != nil || !strings.EqualFold(parsed.Host, r.Host) {
					h.respondError(w, http.StatusForbidden, CodeForbidden, "Cross-origin request rejected")
					return
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

// Authenticate resolves the session from the cookie or a Bearer token and
// stores the user id in the context. Requests without a valid session get a
// 401 envelope.
func (h *Handler) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := ""
		if c, err := r.Cookie(SessionCookie); err == nil {
			token = c.Value
		}
		if token == "" {
			if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
				token = strings.TrimPrefix(header, "Bearer ")
			}
		}
		if token == "" {
			h.respondError(w, http.StatusUnauthorized, CodeUnauthorized, "Authentication required")
			return
		}
		userID, err := h.Sessions.Verify(token)
		if err != nil {
			h.respondError(w, http.StatusUnauthorized, CodeUnauthorized, "Invalid or expired session")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), userID)))
	})
}

// RateLimit enforces the given policy per client identity. Limit headers are
// set on every response; a denied request gets 429 with Retry-After.
func (h *Handler) RateLimit(cfg ratelimit.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := ratelimit.Identity(r, UserID(r.Context()))
			res := h.Limiter.Check(identity, cfg)
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(res.Reset.Unix(), 10))
			if !res.Allowed {
				metrics.RateLimitDenials.Inc()
				retryAfter := int(time.Until(res.Reset).Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				h.respondError(w, http.StatusTooManyRequests, CodeRateLimitExceeded,
					"Too many requests, please try again later")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
