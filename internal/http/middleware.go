package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"authsvc/internal/auth"
	"authsvc/internal/metrics"
	"authsvc/internal/token"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func newSlogMiddleware(logger *slog.Logger, recorder metrics.Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			duration := time.Since(start)
			if recorder != nil {
				recorder.RecordRequestDuration(duration)
			}
			logger.Info("http request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "duration", duration.String())
		})
	}
}

// newRecovererMiddleware converts panics into the generic JSON 500 envelope.
// Internal details go to the log, never to the response body.
func newRecovererMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered", "panic", rec, "path", r.URL.Path)
					writeInternalError(w)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const userContextKey contextKey = "user"

// UserFromContext extracts the authenticated user from the request context.
// Returns nil if the guard middleware hasn't populated the context.
func UserFromContext(ctx context.Context) *auth.User {
	user, _ := ctx.Value(userContextKey).(*auth.User)
	return user
}

// newGuardMiddleware gates protected routes on a valid bearer token. It
// extracts the token, verifies signature and expiry, and resolves the subject
// back to a stored user. Missing, invalid, expired, and orphaned tokens all
// produce the same denial; only the log and metrics see which check failed.
func newGuardMiddleware(issuer *token.Issuer, repo auth.Repository, recorder metrics.Recorder, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				recorder.RecordTokenVerification("missing")
				writeAccessDenied(w, "No token provided")
				return
			}

			claims, err := issuer.Parse(raw)
			if err != nil {
				logger.Warn("token rejected", "error", err)
				recorder.RecordTokenVerification("invalid")
				writeAccessDenied(w, "Invalid token")
				return
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				logger.Warn("token subject is not a user id", "error", err)
				recorder.RecordTokenVerification("invalid")
				writeAccessDenied(w, "Invalid token")
				return
			}

			user, err := repo.FindByID(r.Context(), userID)
			if err != nil {
				logger.Error("user lookup failed", "error", err)
				writeInternalError(w)
				return
			}
			if user == nil {
				logger.Warn("token subject no longer exists", "user_id", userID)
				recorder.RecordTokenVerification("unknown_user")
				writeAccessDenied(w, "Invalid token")
				return
			}

			recorder.RecordTokenVerification("ok")
			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from the Authorization header, or "" when
// the header is absent or not a bearer scheme.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	scheme, value, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(value)
}
