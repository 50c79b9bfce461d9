// Package catalog manages the pest-control service offerings shown on the
// marketing site.
package catalog

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

var (
	// ErrServiceNotFound is returned when a catalog entry is not found
	ErrServiceNotFound = errors.New("service not found")

	// ErrInvalidService is returned when a catalog entry fails validation
	ErrInvalidService = errors.New("service name and description are required")
)

// Service is one pest-control offering (e.g. "Anti Termite Treatment").
type Service struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Slug         string    `bson:"slug" json:"slug"`
	Description  string    `bson:"description" json:"description"`
	Features     []string  `bson:"features,omitempty" json:"features,omitempty"`
	PriceRange   string    `bson:"priceRange,omitempty" json:"priceRange,omitempty"`
	ImageURL     string    `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Active       bool      `bson:"active" json:"active"`
	DisplayOrder int       `bson:"displayOrder" json:"displayOrder"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Validate checks the fields required for a catalog entry and fills the slug
// from the name when absent.
func (s *Service) Validate() error {
	s.Name = strings.TrimSpace(s.Name)
	s.Description = strings.TrimSpace(s.Description)
	if s.Name == "" || s.Description == "" {
		return ErrInvalidService
	}
	if s.Slug == "" {
		s.Slug = Slugify(s.Name)
	}
	return nil
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a service name to a URL-safe slug.
func Slugify(name string) string {
	slug := slugStrip.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}
