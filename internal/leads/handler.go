package leads

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/perfectpest/pestcontrol-platform/internal/api/respond"
	"github.com/perfectpest/pestcontrol-platform/internal/observability/metrics"
	"github.com/perfectpest/pestcontrol-platform/pkg/logging"
)

// Client-facing messages. The schema-failure text is deliberately generic;
// field-level detail stays in the logs.
const (
	msgBookingReceived  = "Service booking request submitted successfully! We'll contact you soon."
	msgSchemaViolation  = "Please check all required fields are filled correctly"
	msgCreateFailed     = "Failed to create lead"
	msgInvalidBody      = "Invalid request body"
	msgLeadNotFound     = "Lead not found"
	msgListLeadsFailed  = "Failed to list leads"
	msgUpdateLeadFailed = "Failed to update lead"
)

// Notifier dispatches best-effort notifications for a persisted lead without
// blocking the caller.
type Notifier interface {
	Dispatch(lead *Lead)
}

// Handler handles HTTP requests for leads
type Handler struct {
	repo     Repository
	notifier Notifier
	metrics  *metrics.LeadMetrics
	logger   *logging.Logger
}

// NewHandler creates a new leads handler. notifier and m may be nil.
func NewHandler(repo Repository, notifier Notifier, m *metrics.LeadMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		repo:     repo,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
	}
}

// CreateBooking handles POST /api/leads requests. Persistence decides the
// caller-visible outcome; notification runs detached afterwards.
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode booking request", "error", err)
		respond.Error(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	req.Normalize(time.Now())
	if err := req.Validate(); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	lead, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		if IsValidationError(err) {
			h.logger.Warn("booking rejected by schema validation", "error", err)
			respond.Error(w, http.StatusBadRequest, msgSchemaViolation)
			return
		}
		h.logger.Error("failed to create lead", "error", err)
		respond.Error(w, http.StatusInternalServerError, msgCreateFailed)
		return
	}

	h.logger.Info("lead created",
		"id", lead.ID,
		"service_type", lead.ServiceType,
		"source", lead.Source,
		"has_email", lead.Email != "",
	)
	h.metrics.LeadCreated(lead.Source)

	if h.notifier != nil {
		h.notifier.Dispatch(lead)
	}

	respond.Success(w, http.StatusOK, lead, msgBookingReceived)
}

// ListResponse is the payload for admin lead listings.
type ListResponse struct {
	Leads  []*Lead `json:"leads"`
	Count  int     `json:"count"`
	Offset int     `json:"offset"`
	Limit  int     `json:"limit"`
}

// List handles GET /admin/leads requests.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{Limit: 50}

	q := r.URL.Query()
	if limitStr := q.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 && limit <= 100 {
			filter.Limit = limit
		}
	}
	if offsetStr := q.Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
			filter.Offset = offset
		}
	}
	filter.Status = q.Get("status")
	filter.Priority = q.Get("priority")
	filter.Source = q.Get("source")

	leads, err := h.repo.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list leads", "error", err)
		respond.Error(w, http.StatusInternalServerError, msgListLeadsFailed)
		return
	}

	respond.Success(w, http.StatusOK, ListResponse{
		Leads:  leads,
		Count:  len(leads),
		Offset: filter.Offset,
		Limit:  filter.Limit,
	}, "")
}

// Get handles GET /admin/leads/{id} requests.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	lead, err := h.repo.GetByID(r.Context(), id)
	if errors.Is(err, ErrLeadNotFound) {
		respond.Error(w, http.StatusNotFound, msgLeadNotFound)
		return
	}
	if err != nil {
		h.logger.Error("failed to get lead", "error", err, "id", id)
		respond.Error(w, http.StatusInternalServerError, msgListLeadsFailed)
		return
	}

	respond.Success(w, http.StatusOK, lead, "")
}

// UpdateLead handles PATCH /admin/leads/{id} requests for the staff-editable
// fields (status, priority, estimated cost, notes).
func (h *Handler) UpdateLead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var upd Update
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		respond.Error(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	lead, err := h.repo.Update(r.Context(), id, upd)
	if err != nil {
		switch {
		case errors.Is(err, ErrLeadNotFound):
			respond.Error(w, http.StatusNotFound, msgLeadNotFound)
		case IsValidationError(err):
			h.logger.Warn("lead update rejected by schema validation", "error", err, "id", id)
			respond.Error(w, http.StatusBadRequest, msgSchemaViolation)
		default:
			h.logger.Error("failed to update lead", "error", err, "id", id)
			respond.Error(w, http.StatusInternalServerError, msgUpdateLeadFailed)
		}
		return
	}

	respond.Success(w, http.StatusOK, lead, "")
}
