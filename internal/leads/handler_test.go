package leads

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/perfectpest/pestcontrol-platform/pkg/logging"
)

type recordingNotifier struct {
	dispatched []*Lead
}

func (n *recordingNotifier) Dispatch(lead *Lead) {
	n.dispatched = append(n.dispatched, lead)
}

type bookingResponse struct {
	Success bool   `json:"success"`
	Data    *Lead  `json:"data"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func postBooking(t *testing.T, h *Handler, payload map[string]any) (*httptest.ResponseRecorder, bookingResponse) {
	t.Helper()
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/leads", bytes.NewReader(body))
	w := httptest.NewRecorder()

	h.CreateBooking(w, req)

	var resp bookingResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return w, resp
}

var tokenPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

func TestCreateBookingFullSubmission(t *testing.T) {
	repo := NewInMemoryRepository()
	notifier := &recordingNotifier{}
	handler := NewHandler(repo, notifier, nil, logging.Default())

	w, resp := postBooking(t, handler, map[string]any{
		"fullName":    "Rajesh Kumar",
		"phone":       "9876543210",
		"serviceType": "Anti Termite Treatment",
		"email":       "rajesh@example.com",
		"address":     "12 Main St",
		"serviceDate": "2024-03-01",
		"message":     "Termites in roof",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, resp.Error)
	}
	if !resp.Success {
		t.Fatal("expected success response")
	}
	if resp.Message != "Service booking request submitted successfully! We'll contact you soon." {
		t.Errorf("unexpected message: %q", resp.Message)
	}

	lead := resp.Data
	if lead.Status != StatusNew {
		t.Errorf("expected status new, got %s", lead.Status)
	}
	if lead.Priority != PriorityMedium {
		t.Errorf("expected priority medium, got %s", lead.Priority)
	}
	if lead.Source != SourceWebsite {
		t.Errorf("expected source website, got %s", lead.Source)
	}
	if !tokenPattern.MatchString(lead.ReviewToken) {
		t.Errorf("expected 64-char hex review token, got %q", lead.ReviewToken)
	}

	if len(notifier.dispatched) != 1 {
		t.Fatalf("expected 1 dispatched notification, got %d", len(notifier.dispatched))
	}
	if notifier.dispatched[0].ID != lead.ID {
		t.Error("dispatched lead does not match persisted lead")
	}
}

func TestCreateBookingDefaults(t *testing.T) {
	repo := NewInMemoryRepository()
	notifier := &recordingNotifier{}
	handler := NewHandler(repo, notifier, nil, logging.Default())

	w, resp := postBooking(t, handler, map[string]any{
		"fullName":    "Rajesh Kumar",
		"phone":       "9876543210",
		"serviceType": "Anti Termite Treatment",
		"message":     "Termites in roof",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, resp.Error)
	}

	lead := resp.Data
	if lead.Address != DefaultAddress {
		t.Errorf("expected default address, got %q", lead.Address)
	}
	if lead.ServiceDate != time.Now().Format("2006-01-02") {
		t.Errorf("expected today's date, got %s", lead.ServiceDate)
	}
	if lead.ReviewToken != "" {
		t.Errorf("expected no review token without email, got %q", lead.ReviewToken)
	}

	if len(notifier.dispatched) != 1 {
		t.Fatalf("expected 1 dispatched notification, got %d", len(notifier.dispatched))
	}
}

func TestCreateBookingMissingRequiredFields(t *testing.T) {
	repo := NewInMemoryRepository()
	notifier := &recordingNotifier{}
	handler := NewHandler(repo, notifier, nil, logging.Default())

	w, resp := postBooking(t, handler, map[string]any{
		"fullName":    "",
		"phone":       "123",
		"serviceType": "X",
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
	if resp.Error != ErrMissingRequiredFields.Error() {
		t.Errorf("unexpected error message: %q", resp.Error)
	}

	stored, err := repo.List(context.Background(), ListFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stored) != 0 {
		t.Errorf("expected no record created, got %d", len(stored))
	}
	if len(notifier.dispatched) != 0 {
		t.Errorf("expected no notifications, got %d", len(notifier.dispatched))
	}
}

func TestCreateBookingSchemaViolation(t *testing.T) {
	repo := NewInMemoryRepository()
	handler := NewHandler(repo, nil, nil, logging.Default())

	w, resp := postBooking(t, handler, map[string]any{
		"fullName":    "Rajesh Kumar",
		"phone":       "9876543210",
		"serviceType": "Anti Termite Treatment",
		"message":     "Termites in roof",
		"status":      "archived",
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
	if resp.Error != msgSchemaViolation {
		t.Errorf("expected generic schema message, got %q", resp.Error)
	}
}

func TestCreateBookingInvalidJSON(t *testing.T) {
	handler := NewHandler(NewInMemoryRepository(), nil, nil, logging.Default())

	r := httptest.NewRequest(http.MethodPost, "/api/leads", strings.NewReader("{"))
	w := httptest.NewRecorder()
	handler.CreateBooking(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestCreateBookingWithoutNotifier(t *testing.T) {
	handler := NewHandler(NewInMemoryRepository(), nil, nil, logging.Default())

	w, _ := postBooking(t, handler, map[string]any{
		"fullName":    "Rajesh Kumar",
		"phone":       "9876543210",
		"serviceType": "General Pest Control",
		"message":     "Cockroaches in kitchen",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
}
