package catalog

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/perfectpest/pestcontrol-platform/internal/api/respond"
	"github.com/perfectpest/pestcontrol-platform/pkg/logging"
)

// Handler handles HTTP requests for the service catalog.
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a new catalog handler.
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, logger: logger}
}

// ListPublic handles GET /api/services: only active entries.
func (h *Handler) ListPublic(w http.ResponseWriter, r *http.Request) {
	services, err := h.repo.List(r.Context(), true)
	if err != nil {
		h.logger.Error("failed to list services", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Failed to list services")
		return
	}
	respond.Success(w, http.StatusOK, services, "")
}

// GetBySlug handles GET /api/services/{slug}.
func (h *Handler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	svc, err := h.repo.GetBySlug(r.Context(), slug)
	if errors.Is(err, ErrServiceNotFound) {
		respond.Error(w, http.StatusNotFound, "Service not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to get service", "error", err, "slug", slug)
		respond.Error(w, http.StatusInternalServerError, "Failed to get service")
		return
	}
	respond.Success(w, http.StatusOK, svc, "")
}

// ListAdmin handles GET /admin/services: all entries, inactive included.
func (h *Handler) ListAdmin(w http.ResponseWriter, r *http.Request) {
	services, err := h.repo.List(r.Context(), false)
	if err != nil {
		h.logger.Error("failed to list services", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Failed to list services")
		return
	}
	respond.Success(w, http.StatusOK, services, "")
}

// Create handles POST /admin/services.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var svc Service
	if err := json.NewDecoder(r.Body).Decode(&svc); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.repo.Create(r.Context(), &svc)
	if errors.Is(err, ErrInvalidService) {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.logger.Error("failed to create service", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Failed to create service")
		return
	}

	h.logger.Info("service created", "id", created.ID, "slug", created.Slug)
	respond.Success(w, http.StatusCreated, created, "Service created")
}

// Update handles PUT /admin/services/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var svc Service
	if err := json.NewDecoder(r.Body).Decode(&svc); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.repo.Update(r.Context(), id, &svc)
	switch {
	case errors.Is(err, ErrServiceNotFound):
		respond.Error(w, http.StatusNotFound, "Service not found")
		return
	case errors.Is(err, ErrInvalidService):
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		h.logger.Error("failed to update service", "error", err, "id", id)
		respond.Error(w, http.StatusInternalServerError, "Failed to update service")
		return
	}

	respond.Success(w, http.StatusOK, updated, "Service updated")
}

// Delete handles DELETE /admin/services/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.repo.Delete(r.Context(), id)
	if errors.Is(err, ErrServiceNotFound) {
		respond.Error(w, http.StatusNotFound, "Service not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to delete service", "error", err, "id", id)
		respond.Error(w, http.StatusInternalServerError, "Failed to delete service")
		return
	}

	respond.Success(w, http.StatusOK, nil, "Service deleted")
}
