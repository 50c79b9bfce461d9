package leads

import (
	"errors"
	"testing"
	"time"
)

func validRequest() BookingRequest {
	return BookingRequest{
		FullName:    "Rajesh Kumar",
		Phone:       "9876543210",
		ServiceType: "Anti Termite Treatment",
		Email:       "rajesh@example.com",
		Address:     "12 Main St",
		ServiceDate: "2024-03-01",
		Message:     "Termites in roof",
	}
}

func TestNormalizeDefaults(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	req := validRequest()
	req.Address = ""
	req.ServiceDate = ""
	req.Normalize(now)

	if req.Address != DefaultAddress {
		t.Errorf("expected default address %q, got %q", DefaultAddress, req.Address)
	}
	if req.ServiceDate != "2024-03-15" {
		t.Errorf("expected service date 2024-03-15, got %s", req.ServiceDate)
	}
	if req.Status != StatusNew {
		t.Errorf("expected default status %q, got %q", StatusNew, req.Status)
	}
	if req.Priority != PriorityMedium {
		t.Errorf("expected default priority %q, got %q", PriorityMedium, req.Priority)
	}
	if req.Source != SourceWebsite {
		t.Errorf("expected default source %q, got %q", SourceWebsite, req.Source)
	}
}

func TestNormalizeTrimsFields(t *testing.T) {
	req := validRequest()
	req.FullName = "  Rajesh Kumar  "
	req.Phone = " 9876543210 "
	req.Normalize(time.Now())

	if req.FullName != "Rajesh Kumar" {
		t.Errorf("expected trimmed name, got %q", req.FullName)
	}
	if req.Phone != "9876543210" {
		t.Errorf("expected trimmed phone, got %q", req.Phone)
	}
}

func TestNormalizeAttachesReviewToken(t *testing.T) {
	req := validRequest()
	req.Normalize(time.Now())

	if len(req.ReviewToken) != 64 {
		t.Fatalf("expected 64-char review token, got %d chars", len(req.ReviewToken))
	}
}

func TestNormalizeNoTokenWithoutEmail(t *testing.T) {
	req := validRequest()
	req.Email = ""
	req.Normalize(time.Now())

	if req.ReviewToken != "" {
		t.Errorf("expected no review token without email, got %q", req.ReviewToken)
	}
}

func TestNormalizeKeepsCallerToken(t *testing.T) {
	req := validRequest()
	req.ReviewToken = "caller-supplied"
	req.Normalize(time.Now())

	if req.ReviewToken != "caller-supplied" {
		t.Errorf("expected caller token preserved, got %q", req.ReviewToken)
	}
}

func TestValidateMissingFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*BookingRequest)
	}{
		{"missing fullName", func(r *BookingRequest) { r.FullName = "" }},
		{"missing phone", func(r *BookingRequest) { r.Phone = "" }},
		{"missing serviceType", func(r *BookingRequest) { r.ServiceType = "" }},
		{"whitespace fullName", func(r *BookingRequest) { r.FullName = "   " }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			req.Normalize(time.Now())

			err := req.Validate()
			if !errors.Is(err, ErrMissingRequiredFields) {
				t.Fatalf("expected ErrMissingRequiredFields, got %v", err)
			}
		})
	}
}

func TestValidateErrorMessage(t *testing.T) {
	want := "Missing required fields: fullName, phone, and serviceType are required"
	if ErrMissingRequiredFields.Error() != want {
		t.Fatalf("expected %q, got %q", want, ErrMissingRequiredFields.Error())
	}
}

func TestLeadValidateEnums(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Lead)
	}{
		{"bad status", func(l *Lead) { l.Status = "pending" }},
		{"bad priority", func(l *Lead) { l.Priority = "urgent" }},
		{"bad source", func(l *Lead) { l.Source = "facebook" }},
		{"bad email", func(l *Lead) { l.Email = "not-an-email" }},
		{"empty message", func(l *Lead) { l.Message = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			req.Normalize(time.Now())
			lead := req.lead(time.Now())
			tc.mutate(lead)

			err := lead.validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !IsValidationError(err) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
		})
	}
}

func TestEnumHelpers(t *testing.T) {
	if !IsValidStatus(StatusCancelled) || IsValidStatus("archived") {
		t.Error("IsValidStatus mismatch")
	}
	if !IsValidPriority(PriorityHigh) || IsValidPriority("") {
		t.Error("IsValidPriority mismatch")
	}
	if !IsValidSource(SourceReferral) || IsValidSource("email") {
		t.Error("IsValidSource mismatch")
	}
}
