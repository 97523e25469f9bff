package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// WelcomeMessageEmailData holds data for the welcome email.
type WelcomeMessageEmailData struct {
	Email string
	Name  string
}

// InvitationEmailData holds data for the direct-invitation email.
type InvitationEmailData struct {
	Email     string
	EventName string
	OrgName   string
}

// InvitationApprovedEmailData holds data for the request-approved email.
type InvitationApprovedEmailData struct {
	Email     string
	EventName string
}

// AttendanceConfirmationEmailData holds data for RSVP and ticket confirmations.
type AttendanceConfirmationEmailData struct {
	Email      string
	EventName  string
	Waitlisted bool
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendWelcomeMessage(ctx context.Context, data *WelcomeMessageEmailData) error
	SendInvitation(ctx context.Context, data *InvitationEmailData) error
	SendInvitationApproved(ctx context.Context, data *InvitationApprovedEmailData) error
	SendAttendanceConfirmation(ctx context.Context, data *AttendanceConfirmationEmailData) error
}
