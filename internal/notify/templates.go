package notify

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/perfectpest/pestcontrol-platform/internal/leads"
	"github.com/perfectpest/pestcontrol-platform/internal/settings"
)

var (
	istOnce sync.Once
	istZone *time.Location
)

// kolkata returns the business timezone used for timestamps in emails.
func kolkata() *time.Location {
	istOnce.Do(func() {
		loc, err := time.LoadLocation("Asia/Kolkata")
		if err != nil {
			loc = time.FixedZone("IST", 5*3600+30*60)
		}
		istZone = loc
	})
	return istZone
}

const tdStyle = `style="padding: 8px; border-bottom: 1px solid #e5e7eb;"`

func row(label, value string) string {
	if value == "" {
		return ""
	}
	return fmt.Sprintf(`<tr><td %s><strong>%s:</strong></td><td %s>%s</td></tr>`, tdStyle, label, tdStyle, value)
}

// adminAlertEmail renders the "new booking" notification for staff.
func adminAlertEmail(lead *leads.Lead, to string) EmailMessage {
	submitted := lead.SubmittedAt.In(kolkata()).Format("02 Jan 2006, 3:04 PM MST")

	propertySize := ""
	if lead.PropertySize > 0 {
		propertySize = fmt.Sprintf("%.0f sq ft", lead.PropertySize)
	}

	schedule := lead.ServiceDate
	if lead.ServiceTime != "" {
		schedule = fmt.Sprintf("%s at %s", lead.ServiceDate, lead.ServiceTime)
	}

	text := fmt.Sprintf(`New service booking received!

Name: %s
Phone: %s
Email: %s
Service: %s
Property Type: %s
Property Size: %s
Address: %s
Preferred Date/Time: %s
Message: %s

Lead ID: %s
Submitted: %s
`, lead.FullName, lead.Phone, lead.Email, lead.ServiceType, lead.PropertyType,
		propertySize, lead.Address, schedule, lead.Message, lead.ID, submitted)

	html := fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 600px;">
<h2 style="color: #16a34a;">New Service Booking</h2>
<table style="border-collapse: collapse; margin: 20px 0;">
%s%s%s%s%s%s%s%s%s
</table>
<p style="color: #6b7280; font-size: 12px;">Lead ID: %s · Submitted: %s</p>
</div>`,
		row("Name", lead.FullName),
		row("Phone", fmt.Sprintf(`<a href="tel:%s">%s</a>`, lead.Phone, lead.Phone)),
		row("Email", lead.Email),
		row("Service", lead.ServiceType),
		row("Property Type", lead.PropertyType),
		row("Property Size", propertySize),
		row("Address", lead.Address),
		row("Preferred Date/Time", schedule),
		row("Message", lead.Message),
		lead.ID, submitted)

	return EmailMessage{
		To:      to,
		Subject: fmt.Sprintf("New Service Booking: %s - %s", lead.ServiceType, lead.FullName),
		Text:    text,
		HTML:    html,
	}
}

// customerConfirmationEmail renders the booking confirmation for the
// submitter. contact may be nil when no contact record has been configured.
func customerConfirmationEmail(lead *leads.Lead, contact *settings.ContactInfo, fromName string) EmailMessage {
	if fromName == "" {
		fromName = "Perfect Pest Control"
	}

	schedule := lead.ServiceDate
	if lead.ServiceTime != "" {
		schedule = fmt.Sprintf("%s at %s", lead.ServiceDate, lead.ServiceTime)
	}

	var channels []string
	var channelRows string
	if contact != nil {
		if contact.Phone != "" {
			channels = append(channels, fmt.Sprintf("Call us: %s", contact.Phone))
			channelRows += row("Phone", fmt.Sprintf(`<a href="tel:%s">%s</a>`, contact.Phone, contact.Phone))
		}
		if contact.WhatsAppNumber != "" {
			channels = append(channels, fmt.Sprintf("WhatsApp: %s", contact.WhatsAppNumber))
			channelRows += row("WhatsApp", contact.WhatsAppNumber)
		}
		if contact.Email != "" {
			channels = append(channels, fmt.Sprintf("Email: %s", contact.Email))
			channelRows += row("Email", contact.Email)
		}
	}
	channelText := ""
	if len(channels) > 0 {
		channelText = "\nNeed to reach us sooner?\n" + strings.Join(channels, "\n") + "\n"
	}

	text := fmt.Sprintf(`Hi %s,

Thank you for booking with %s! We've received your request and our team
will contact you soon to confirm the visit.

Your booking:
Service: %s
Preferred Date/Time: %s
Address: %s

What happens next:
1. Our team reviews your request.
2. We call you on %s to confirm the schedule.
3. A certified technician visits your property.
%s
— %s
`, lead.FullName, fromName, lead.ServiceType, schedule, lead.Address, lead.Phone, channelText, fromName)

	html := fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 600px;">
<h2 style="color: #16a34a;">Booking Confirmed</h2>
<p>Hi <strong>%s</strong>, thank you for booking with %s! We've received your
request and our team will contact you soon to confirm the visit.</p>
<table style="border-collapse: collapse; margin: 20px 0;">
%s%s%s
</table>
<p style="background: #f0fdf4; padding: 12px; border-radius: 8px; border-left: 4px solid #16a34a;">
<strong>What happens next:</strong> our team reviews your request, calls you
on %s to confirm the schedule, and a certified technician visits your property.
</p>
<table style="border-collapse: collapse; margin: 20px 0;">
%s
</table>
<p style="color: #6b7280; font-size: 12px; margin-top: 20px;">— %s</p>
</div>`,
		lead.FullName, fromName,
		row("Service", lead.ServiceType),
		row("Preferred Date/Time", schedule),
		row("Address", lead.Address),
		lead.Phone,
		channelRows,
		fromName)

	return EmailMessage{
		To:      lead.Email,
		ToName:  lead.FullName,
		Subject: "Service Booking Confirmed - Perfect Pest Control",
		Text:    text,
		HTML:    html,
	}
}
