package settings

import (
	"context"
	"sync"
	"time"
)

// Store persists the deployment settings records. The notification pipeline
// only reads; writes come from the admin surface.
type Store interface {
	ActiveSMTP(ctx context.Context) (*SMTPSettings, error)
	SaveSMTP(ctx context.Context, s *SMTPSettings) error
	Contact(ctx context.Context) (*ContactInfo, error)
	SaveContact(ctx context.Context, c *ContactInfo) error
}

// InMemoryStore is a Store backed by process memory, used in tests and when
// no database is configured.
type InMemoryStore struct {
	mu      sync.RWMutex
	smtp    *SMTPSettings
	contact *ContactInfo
}

// NewInMemoryStore creates an empty in-memory settings store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// ActiveSMTP returns the stored SMTP settings, or ErrNotConfigured when none
// exist or the record is inactive.
func (s *InMemoryStore) ActiveSMTP(ctx context.Context) (*SMTPSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.smtp == nil || !s.smtp.Active {
		return nil, ErrNotConfigured
	}
	copied := *s.smtp
	return &copied, nil
}

// SaveSMTP validates and stores the SMTP settings record.
func (s *InMemoryStore) SaveSMTP(ctx context.Context, cfg *SMTPSettings) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *cfg
	copied.UpdatedAt = time.Now().UTC()
	s.smtp = &copied
	return nil
}

// Contact returns the stored contact record; nil when none has been saved.
func (s *InMemoryStore) Contact(ctx context.Context) (*ContactInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.contact == nil {
		return nil, nil
	}
	copied := *s.contact
	return &copied, nil
}

// SaveContact stores the contact record.
func (s *InMemoryStore) SaveContact(ctx context.Context, c *ContactInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *c
	copied.UpdatedAt = time.Now().UTC()
	s.contact = &copied
	return nil
}
