package leads

import (
	"regexp"
	"strings"
	"time"
)

// Lead statuses. A lead starts as "new" and moves through the workflow as
// staff follow up.
const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Lead priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Lead sources.
const (
	SourceWebsite  = "website"
	SourceWhatsApp = "whatsapp"
	SourcePhone    = "phone"
	SourceReferral = "referral"
)

// DefaultAddress is substituted when a submission omits the service address.
const DefaultAddress = "To be specified"

var validStatuses = map[string]struct{}{
	StatusNew:       {},
	StatusContacted: {},
	StatusConfirmed: {},
	StatusCompleted: {},
	StatusCancelled: {},
}

var validPriorities = map[string]struct{}{
	PriorityLow:    {},
	PriorityMedium: {},
	PriorityHigh:   {},
}

var validSources = map[string]struct{}{
	SourceWebsite:  {},
	SourceWhatsApp: {},
	SourcePhone:    {},
	SourceReferral: {},
}

// IsValidStatus reports whether value is an allowed lead status.
func IsValidStatus(value string) bool {
	_, ok := validStatuses[value]
	return ok
}

// IsValidPriority reports whether value is an allowed lead priority.
func IsValidPriority(value string) bool {
	_, ok := validPriorities[value]
	return ok
}

// IsValidSource reports whether value is an allowed lead source.
func IsValidSource(value string) bool {
	_, ok := validSources[value]
	return ok
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Lead represents one customer service inquiry captured by the intake form.
type Lead struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	FullName      string    `bson:"fullName" json:"fullName"`
	Phone         string    `bson:"phone" json:"phone"`
	Email         string    `bson:"email,omitempty" json:"email"`
	ServiceType   string    `bson:"serviceType" json:"serviceType"`
	ServiceDate   string    `bson:"serviceDate" json:"serviceDate"`
	ServiceTime   string    `bson:"serviceTime,omitempty" json:"serviceTime,omitempty"`
	Address       string    `bson:"address" json:"address"`
	PropertyType  string    `bson:"propertyType,omitempty" json:"propertyType,omitempty"`
	PropertySize  float64   `bson:"propertySize,omitempty" json:"propertySize,omitempty"`
	Message       string    `bson:"message" json:"message"`
	Status        string    `bson:"status" json:"status"`
	Priority      string    `bson:"priority" json:"priority"`
	Source        string    `bson:"source" json:"source"`
	EstimatedCost string    `bson:"estimatedCost,omitempty" json:"estimatedCost,omitempty"`
	Notes         string    `bson:"notes,omitempty" json:"notes,omitempty"`
	ReviewToken   string    `bson:"reviewToken,omitempty" json:"reviewToken,omitempty"`
	ReviewLink    string    `bson:"reviewLink,omitempty" json:"reviewLink,omitempty"`
	SubmittedAt   time.Time `bson:"submittedAt" json:"submittedAt"`
	LastUpdated   time.Time `bson:"lastUpdated" json:"lastUpdated"`
}

// validate enforces the persisted-record invariants. This is the
// authoritative schema layer: BookingRequest.Validate only guards the fast
// client-facing rejection, while every repository calls this before a write.
func (l *Lead) validate() error {
	required := []struct {
		field, value string
	}{
		{"fullName", l.FullName},
		{"phone", l.Phone},
		{"serviceType", l.ServiceType},
		{"address", l.Address},
		{"message", l.Message},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Field: f.field, Reason: "must not be empty"}
		}
	}
	if !IsValidStatus(l.Status) {
		return &ValidationError{Field: "status", Reason: "must be one of new, contacted, confirmed, completed, cancelled"}
	}
	if !IsValidPriority(l.Priority) {
		return &ValidationError{Field: "priority", Reason: "must be one of low, medium, high"}
	}
	if !IsValidSource(l.Source) {
		return &ValidationError{Field: "source", Reason: "must be one of website, whatsapp, phone, referral"}
	}
	if l.Email != "" && !emailPattern.MatchString(l.Email) {
		return &ValidationError{Field: "email", Reason: "must be a valid email address"}
	}
	return nil
}

// BookingRequest is the inbound payload for creating a lead.
type BookingRequest struct {
	FullName     string  `json:"fullName"`
	Phone        string  `json:"phone"`
	Email        string  `json:"email"`
	ServiceType  string  `json:"serviceType"`
	ServiceDate  string  `json:"serviceDate"`
	ServiceTime  string  `json:"serviceTime"`
	Address      string  `json:"address"`
	PropertyType string  `json:"propertyType"`
	PropertySize float64 `json:"propertySize"`
	Message      string  `json:"message"`
	Status       string  `json:"status"`
	Priority     string  `json:"priority"`
	Source       string  `json:"source"`
	ReviewToken  string  `json:"reviewToken"`
}

// Normalize trims fields and fills defaults: address, service date, workflow
// enums, and a review token when the submitter left an email and no token was
// supplied by the caller.
func (r *BookingRequest) Normalize(now time.Time) {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Email = strings.TrimSpace(r.Email)
	r.ServiceType = strings.TrimSpace(r.ServiceType)
	r.ServiceDate = strings.TrimSpace(r.ServiceDate)
	r.ServiceTime = strings.TrimSpace(r.ServiceTime)
	r.Address = strings.TrimSpace(r.Address)
	r.PropertyType = strings.TrimSpace(r.PropertyType)
	r.Message = strings.TrimSpace(r.Message)

	if r.Address == "" {
		r.Address = DefaultAddress
	}
	if r.ServiceDate == "" {
		r.ServiceDate = now.Format("2006-01-02")
	}
	if r.Status == "" {
		r.Status = StatusNew
	}
	if r.Priority == "" {
		r.Priority = PriorityMedium
	}
	if r.Source == "" {
		r.Source = SourceWebsite
	}
	if r.Email != "" && r.ReviewToken == "" {
		r.ReviewToken = NewReviewToken()
	}
}

// Validate performs the fast required-presence check. The repository's schema
// layer re-checks these fields along with the rest of the invariants.
func (r *BookingRequest) Validate() error {
	if r.FullName == "" || r.Phone == "" || r.ServiceType == "" {
		return ErrMissingRequiredFields
	}
	return nil
}

// lead builds an unsaved Lead from the normalized request.
func (r *BookingRequest) lead(now time.Time) *Lead {
	return &Lead{
		FullName:     r.FullName,
		Phone:        r.Phone,
		Email:        r.Email,
		ServiceType:  r.ServiceType,
		ServiceDate:  r.ServiceDate,
		ServiceTime:  r.ServiceTime,
		Address:      r.Address,
		PropertyType: r.PropertyType,
		PropertySize: r.PropertySize,
		Message:      r.Message,
		Status:       r.Status,
		Priority:     r.Priority,
		Source:       r.Source,
		ReviewToken:  r.ReviewToken,
		SubmittedAt:  now,
		LastUpdated:  now,
	}
}
