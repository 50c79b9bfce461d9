package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/perfectpest/pestcontrol-platform/internal/leads"
	"github.com/perfectpest/pestcontrol-platform/internal/observability/metrics"
	"github.com/perfectpest/pestcontrol-platform/internal/settings"
	"github.com/perfectpest/pestcontrol-platform/pkg/logging"
)

// Email kinds used in logs and metrics labels.
const (
	kindAdmin    = "admin"
	kindCustomer = "customer"
)

// SenderFactory builds a send-capable transport from a stored settings
// record. Swapped out in tests.
type SenderFactory func(cfg settings.SMTPSettings, logger *logging.Logger) EmailSender

// Service turns a persisted lead into zero, one, or two outbound emails:
// a staff alert and, when the lead left an email address, a customer
// confirmation.
type Service struct {
	store   settings.Store
	factory SenderFactory
	metrics *metrics.LeadMetrics
	logger  *logging.Logger
}

// NewService creates a notification service. factory defaults to the SMTP
// transport; m may be nil.
func NewService(store settings.Store, factory SenderFactory, m *metrics.LeadMetrics, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	if factory == nil {
		factory = func(cfg settings.SMTPSettings, logger *logging.Logger) EmailSender {
			return NewSMTPSender(cfg, logger)
		}
	}
	return &Service{
		store:   store,
		factory: factory,
		metrics: m,
		logger:  logger,
	}
}

// LeadCreated sends the notifications for a freshly persisted lead. A
// missing or inactive SMTP configuration is a skip, not a failure. Each send
// is independent: the customer confirmation is still attempted when the
// staff alert fails. The returned error is for logging only; callers must
// not surface it to the submitter.
func (s *Service) LeadCreated(ctx context.Context, lead *leads.Lead) error {
	cfg, err := s.store.ActiveSMTP(ctx)
	if errors.Is(err, settings.ErrNotConfigured) {
		s.logger.Warn("notify: smtp not configured, skipping notifications", "lead_id", lead.ID)
		return nil
	}
	if err != nil {
		s.logger.Error("notify: failed to load smtp settings", "error", err, "lead_id", lead.ID)
		return fmt.Errorf("notify: load smtp settings: %w", err)
	}

	sender := s.factory(*cfg, s.logger)

	var errs []error

	adminMsg := adminAlertEmail(lead, cfg.FromEmail)
	if err := sender.Send(ctx, adminMsg); err != nil {
		s.logger.Error("notify: failed to send admin alert", "error", err, "lead_id", lead.ID)
		s.metrics.EmailFailed(kindAdmin)
		errs = append(errs, err)
	} else {
		s.logger.Info("notify: admin alert sent", "lead_id", lead.ID)
		s.metrics.EmailSent(kindAdmin)
	}

	if lead.Email == "" {
		s.logger.Info("notify: lead has no email, skipping customer confirmation", "lead_id", lead.ID)
		return joinErrs(errs)
	}

	contact, err := s.store.Contact(ctx)
	if err != nil {
		// The confirmation still goes out, just without contact channels.
		s.logger.Warn("notify: failed to load contact info", "error", err)
		contact = nil
	}

	customerMsg := customerConfirmationEmail(lead, contact, cfg.FromName)
	if err := sender.Send(ctx, customerMsg); err != nil {
		s.logger.Error("notify: failed to send customer confirmation", "error", err, "lead_id", lead.ID)
		s.metrics.EmailFailed(kindCustomer)
		errs = append(errs, err)
	} else {
		s.logger.Info("notify: customer confirmation sent", "lead_id", lead.ID, "to", lead.Email)
		s.metrics.EmailSent(kindCustomer)
	}

	return joinErrs(errs)
}

func joinErrs(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("notify: %d notification(s) failed", len(errs))
}
