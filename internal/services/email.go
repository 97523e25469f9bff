package services

import (
	"context"
	"fmt"
	"log"

	"eventadmissions/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendWelcomeMessage sends a welcome email using the "welcome" template and the given data.
func (s *emailService) SendWelcomeMessage(ctx context.Context, data *domain.WelcomeMessageEmailData) error {
	if data == nil {
		return fmt.Errorf("welcome message data is nil")
	}
	return s.send("welcome", data.Email, data)
}

// SendInvitation sends the direct-invitation email using the "invitation" template.
func (s *emailService) SendInvitation(ctx context.Context, data *domain.InvitationEmailData) error {
	if data == nil {
		return fmt.Errorf("invitation data is nil")
	}
	return s.send("invitation", data.Email, data)
}

// SendInvitationApproved notifies a requester that their application was approved.
func (s *emailService) SendInvitationApproved(ctx context.Context, data *domain.InvitationApprovedEmailData) error {
	if data == nil {
		return fmt.Errorf("invitation approved data is nil")
	}
	return s.send("invitation_approved", data.Email, data)
}

// SendAttendanceConfirmation confirms a committed RSVP or ticket.
func (s *emailService) SendAttendanceConfirmation(ctx context.Context, data *domain.AttendanceConfirmationEmailData) error {
	if data == nil {
		return fmt.Errorf("attendance confirmation data is nil")
	}
	name := "attendance_confirmation"
	if data.Waitlisted {
		name = "waitlist_confirmation"
	}
	return s.send(name, data.Email, data)
}

func (s *emailService) send(templateName, to string, data any) error {
	subject, htmlBody, textBody, err := s.renderer.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", templateName, err)
	}
	if err := s.mailer.Send(to, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send %s email: %w", templateName, err)
	}
	log.Printf("[EMAIL] %s email sent to %s", templateName, to)
	return nil
}
