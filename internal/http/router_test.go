package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"authsvc/internal/auth"
	"authsvc/internal/config"
	"authsvc/internal/metrics"
	"authsvc/internal/token"
)

func newRouterFixture(t *testing.T) (http.Handler, *token.Issuer, *auth.InMemoryRepository) {
	t.Helper()
	issuer, err := token.NewIssuer("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewIssuer returned error: %v", err)
	}
	repo := auth.NewInMemoryRepository()
	registry := prometheus.NewRegistry()
	recorder := metrics.NewCollector(registry)
	cfg := config.Config{
		Environment:    "development",
		AllowedOrigins: []string{"http://localhost:3000"},
	}
	oauthHandler := NewOAuthHandler(&fakeGoogleAuthenticator{}, auth.NewService(repo), issuer, recorder, discardLogger(), false)
	router := NewRouter(cfg, oauthHandler, issuer, repo, recorder, registry, discardLogger())
	return router, issuer, repo
}

func TestRouterProtectedPostsWithValidToken(t *testing.T) {
	router, issuer, repo := newRouterFixture(t)

	user, err := auth.NewService(repo).Complete(context.Background(), &auth.GoogleClaims{
		Sub:   "sub-1",
		Email: "user@example.com",
		Name:  "User",
	})
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	raw, err := issuer.Issue(user)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Success bool   `json:"success"`
		Data    []Post `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	if !body.Success {
		t.Fatal("expected success=true")
	}
	if len(body.Data) != 3 {
		t.Fatalf("expected three sample posts, got %d", len(body.Data))
	}
	if body.Data[0].PostID != 1 || body.Data[0].Title == "" {
		t.Fatalf("unexpected first post: %+v", body.Data[0])
	}
}

func TestRouterProtectedPostsWithoutToken(t *testing.T) {
	router, _, _ := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	body := decodeDenial(t, rec)
	if body["message"] != "No token provided" {
		t.Fatalf("expected No token provided message, got %v", body["message"])
	}
}

func TestRouterUnmatchedRouteAnswersJSON404(t *testing.T) {
	router, _, _ := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	if body["error"] != "Not Found" {
		t.Fatalf("expected Not Found error, got %v", body["error"])
	}
	if msg, _ := body["message"].(string); !strings.Contains(msg, "/nope") {
		t.Fatalf("expected message to name the route, got %v", body["message"])
	}
}

func TestRouterHealth(t *testing.T) {
	router, _, _ := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("expected ok status, got %v", body["status"])
	}
}

func TestRouterServesMetrics(t *testing.T) {
	router, _, _ := newRouterFixture(t)

	// Generate one guarded request so counters have samples.
	denied := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	router.ServeHTTP(httptest.NewRecorder(), denied)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "authsvc_token_verifications_total") {
		t.Fatal("expected token verification metric in exposition")
	}
}
