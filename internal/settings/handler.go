package settings

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/perfectpest/pestcontrol-platform/internal/api/respond"
	"github.com/perfectpest/pestcontrol-platform/pkg/logging"
)

// Handler exposes the settings records over HTTP: admin read/write plus the
// public contact endpoint consumed by the site's contact section.
type Handler struct {
	store  Store
	logger *logging.Logger
}

// NewHandler creates a settings handler.
func NewHandler(store Store, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, logger: logger}
}

// GetSMTP handles GET /admin/settings/smtp. The password is blanked in the
// response.
func (h *Handler) GetSMTP(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.store.ActiveSMTP(r.Context())
	if errors.Is(err, ErrNotConfigured) {
		respond.Error(w, http.StatusNotFound, "SMTP is not configured")
		return
	}
	if err != nil {
		h.logger.Error("failed to load smtp settings", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Failed to load SMTP settings")
		return
	}

	cfg.Password = ""
	respond.Success(w, http.StatusOK, cfg, "")
}

// PutSMTP handles PUT /admin/settings/smtp.
func (h *Handler) PutSMTP(w http.ResponseWriter, r *http.Request) {
	var cfg SMTPSettings
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := cfg.Validate(); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.SaveSMTP(r.Context(), &cfg); err != nil {
		h.logger.Error("failed to save smtp settings", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Failed to save SMTP settings")
		return
	}

	h.logger.Info("smtp settings updated", "host", cfg.Host, "active", cfg.Active)
	respond.Success(w, http.StatusOK, nil, "SMTP settings saved")
}

// GetContact handles GET /api/contact and GET /admin/settings/contact.
func (h *Handler) GetContact(w http.ResponseWriter, r *http.Request) {
	info, err := h.store.Contact(r.Context())
	if err != nil {
		h.logger.Error("failed to load contact info", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Failed to load contact info")
		return
	}
	if info == nil {
		respond.Error(w, http.StatusNotFound, "Contact info is not configured")
		return
	}
	respond.Success(w, http.StatusOK, info, "")
}

// PutContact handles PUT /admin/settings/contact.
func (h *Handler) PutContact(w http.ResponseWriter, r *http.Request) {
	var info ContactInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.store.SaveContact(r.Context(), &info); err != nil {
		h.logger.Error("failed to save contact info", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Failed to save contact info")
		return
	}

	h.logger.Info("contact info updated")
	respond.Success(w, http.StatusOK, nil, "Contact info saved")
}
