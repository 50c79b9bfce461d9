package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/perfectpest/pestcontrol-platform/internal/catalog"
	"github.com/perfectpest/pestcontrol-platform/internal/leads"
	"github.com/perfectpest/pestcontrol-platform/internal/settings"
	"github.com/perfectpest/pestcontrol-platform/pkg/logging"
)

func testHandler(t *testing.T) http.Handler {
	t.Helper()
	logger := logging.Default()
	return New(&Config{
		Logger:          logger,
		LeadsHandler:    leads.NewHandler(leads.NewInMemoryRepository(), nil, nil, logger),
		CatalogHandler:  catalog.NewHandler(catalog.NewInMemoryRepository(), logger),
		SettingsHandler: settings.NewHandler(settings.NewInMemoryStore(), logger),
		AdminAPIToken:   "test-token",
	})
}

func TestHealthEndpoint(t *testing.T) {
	handler := testHandler(t)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %q", body["status"])
	}
}

func TestPublicBookingRoute(t *testing.T) {
	handler := testHandler(t)

	body := `{"fullName":"Rajesh Kumar","phone":"9876543210","serviceType":"General Pest Control","message":"Cockroaches in kitchen"}`
	req := httptest.NewRequest(http.MethodPost, "/api/leads", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	handler := testHandler(t)

	paths := []struct {
		method, path string
	}{
		{http.MethodGet, "/admin/leads"},
		{http.MethodGet, "/admin/services"},
		{http.MethodGet, "/admin/settings/smtp"},
	}

	for _, p := range paths {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(p.method, p.path, nil))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected status %d, got %d", p.method, p.path, http.StatusUnauthorized, w.Code)
		}
	}
}

func TestAdminRouteWithToken(t *testing.T) {
	handler := testHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/leads", nil)
	req.Header.Set("Authorization", "Bearer test-token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
}

func TestPublicContactNotConfigured(t *testing.T) {
	handler := testHandler(t)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/contact", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestUnknownRoute(t *testing.T) {
	handler := testHandler(t)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}
