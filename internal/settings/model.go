// Package settings holds the admin-editable deployment records: the SMTP
// transport configuration and the business contact details.
package settings

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotConfigured is returned when no active SMTP settings record exists.
// The notification pipeline treats it as "skip, don't fail".
var ErrNotConfigured = errors.New("settings: no active smtp configuration")

// SMTPSettings is the stored transport configuration used to send
// transactional email. Exactly one record is active per deployment.
type SMTPSettings struct {
	ID        string    `bson:"_id,omitempty" json:"id,omitempty"`
	Host      string    `bson:"host" json:"host"`
	Port      int       `bson:"port" json:"port"`
	Secure    bool      `bson:"secure" json:"secure"`
	Username  string    `bson:"username,omitempty" json:"username,omitempty"`
	Password  string    `bson:"password,omitempty" json:"password,omitempty"`
	FromName  string    `bson:"fromName" json:"fromName"`
	FromEmail string    `bson:"fromEmail" json:"fromEmail"`
	Active    bool      `bson:"active" json:"active"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Addr returns the host:port dial address.
func (s *SMTPSettings) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Validate checks the fields required to build a transport.
func (s *SMTPSettings) Validate() error {
	if strings.TrimSpace(s.Host) == "" {
		return errors.New("settings: host is required")
	}
	if s.Port <= 0 || s.Port > 65535 {
		return errors.New("settings: port must be between 1 and 65535")
	}
	if strings.TrimSpace(s.FromEmail) == "" {
		return errors.New("settings: fromEmail is required")
	}
	return nil
}

// ContactInfo is the business contact record shown on the site and embedded
// in customer confirmation emails.
type ContactInfo struct {
	ID             string    `bson:"_id,omitempty" json:"id,omitempty"`
	Phone          string    `bson:"phone" json:"phone"`
	WhatsAppNumber string    `bson:"whatsappNumber" json:"whatsappNumber"`
	Email          string    `bson:"email" json:"email"`
	Address        string    `bson:"address" json:"address"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}
