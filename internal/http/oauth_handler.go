package http

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"time"

	"log/slog"

	"authsvc/internal/auth"
	"authsvc/internal/metrics"
	"authsvc/internal/token"
)

const (
	oauthStateCookieName = "authsvc_oauth_state"
	oauthStateCookieTTL  = 10 * time.Minute
)

type googleAuthenticator interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (*auth.GoogleClaims, error)
}

// OAuthHandler drives the Google login flow: consent redirect, callback
// exchange, user upsert, and token issuance.
type OAuthHandler struct {
	google       googleAuthenticator
	authService  *auth.Service
	issuer       *token.Issuer
	recorder     metrics.Recorder
	logger       *slog.Logger
	secureCookie bool
}

// NewOAuthHandler creates a new OAuthHandler.
func NewOAuthHandler(google googleAuthenticator, authService *auth.Service, issuer *token.Issuer, recorder metrics.Recorder, logger *slog.Logger, secureCookie bool) *OAuthHandler {
	return &OAuthHandler{
		google:       google,
		authService:  authService,
		issuer:       issuer,
		recorder:     recorder,
		logger:       logger,
		secureCookie: secureCookie,
	}
}

// Initiate handles GET /auth/google.
// Stores a CSRF state cookie and redirects to Google's consent screen.
func (h *OAuthHandler) Initiate(w http.ResponseWriter, r *http.Request) {
	state, err := auth.GenerateState()
	if err != nil {
		h.logger.Error("failed to generate state", "error", err)
		writeInternalError(w)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookieName,
		Value:    state,
		Path:     "/auth",
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(oauthStateCookieTTL.Seconds()),
	})

	http.Redirect(w, r, h.google.AuthURL(state), http.StatusFound)
}

// Callback handles GET /auth/google/callback.
// Verifies state, exchanges the authorization code, upserts the user, and
// answers with a signed session token. Every failure keeps the historical
// 500 envelope; the specific cause goes to the log only.
func (h *OAuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie(oauthStateCookieName)
	if err != nil || stateCookie.Value == "" {
		h.logger.Warn("oauth callback: missing state cookie")
		h.fail(w, "state", "Unable to complete authentication")
		return
	}

	stateParam := r.URL.Query().Get("state")
	if subtle.ConstantTimeCompare([]byte(stateParam), []byte(stateCookie.Value)) != 1 {
		h.logger.Warn("oauth callback: state mismatch")
		h.fail(w, "state", "Unable to complete authentication")
		return
	}

	// Clear state cookie; it is single-use.
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookieName,
		Value:    "",
		Path:     "/auth",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
	})

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.logger.Warn("oauth callback: provider error", "error", errParam)
		h.fail(w, "provider", "Unable to complete authentication")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		h.logger.Warn("oauth callback: missing authorization code")
		h.fail(w, "code", "Unable to complete authentication")
		return
	}

	claims, err := h.google.Exchange(r.Context(), code)
	if err != nil {
		h.logger.Error("oauth callback: exchange failed", "error", err)
		h.fail(w, "exchange", "Unable to complete authentication")
		return
	}

	if !claims.EmailVerified {
		h.logger.Warn("oauth callback: email not verified", "email", claims.Email)
		h.fail(w, "unverified_email", "Unable to complete authentication")
		return
	}

	user, err := h.authService.Complete(r.Context(), claims)
	if err != nil {
		if errors.Is(err, auth.ErrIncompleteProfile) {
			h.logger.Warn("oauth callback: incomplete profile", "error", err)
			h.fail(w, "incomplete_profile", "Unable to complete authentication")
			return
		}
		h.logger.Error("oauth callback: user upsert failed", "error", err)
		h.fail(w, "persistence", "Unable to create user account")
		return
	}

	signed, err := h.issuer.Issue(user)
	if err != nil {
		h.logger.Error("oauth callback: token issuance failed", "error", err)
		h.fail(w, "signing", "Unable to generate access token")
		return
	}

	h.recorder.RecordLoginSuccess()
	h.logger.Info("oauth login successful", "user_id", user.ID, "email", user.Email)

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Authentication successful",
		"user": map[string]any{
			"id":    user.ID.String(),
			"email": user.Email,
			"name":  user.Name,
		},
		"token": signed,
	})
}

func (h *OAuthHandler) fail(w http.ResponseWriter, reason, message string) {
	h.recorder.RecordLoginFailure(reason)
	writeAuthFailure(w, message)
}
