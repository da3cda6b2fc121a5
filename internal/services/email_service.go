package services

import (
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/cribInquiries/LuxePropertyAnalysis/internal/config"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/utils"
)

type EmailService interface {
	SendWelcomeEmail(toEmail, firstName string) error
	SendPasswordResetEmail(toEmail, resetToken string) error
	SendAnalysisSharedEmail(toEmail, senderName, analysisName, shareURL string) error
}

type emailService struct {
	cfg    *config.Config
	client *sendgrid.Client
}

// NewEmailService returns a no-op service when no API key is configured;
// email then degrades silently instead of failing requests.
func NewEmailService(cfg *config.Config) EmailService {
	svc := &emailService{cfg: cfg}
	if cfg.SendGridAPIKey != "" {
		svc.client = sendgrid.NewSendClient(cfg.SendGridAPIKey)
	}
	return svc
}

func (s *emailService) SendWelcomeEmail(toEmail, firstName string) error {
	subject := "Welcome to Luxe Property Analysis"
	plain := fmt.Sprintf("Hi %s, welcome aboard. Your account is ready.", firstName)
	html := fmt.Sprintf(transactionalEmailHTML,
		"Welcome",
		fmt.Sprintf("<p>Hi %s,</p><p>Your account is ready. Create your first property analysis to get started.</p>", firstName),
		time.Now().Year())
	return s.send(toEmail, subject, plain, html)
}

func (s *emailService) SendPasswordResetEmail(toEmail, resetToken string) error {
	subject, plain, html := s.passwordResetContent(resetToken)
	return s.send(toEmail, subject, plain, html)
}

// passwordResetContent derives the link lifetime from the configured reset
// token expiry so the copy never disagrees with token validation.
func (s *emailService) passwordResetContent(resetToken string) (subject, plain, html string) {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.cfg.AppURL, resetToken)
	expiresIn := int(s.cfg.ResetTokenExpiry.Minutes())
	subject = "Luxe Property Analysis - Password Reset"
	plain = fmt.Sprintf("Reset your password: %s (link expires in %d minutes)", resetURL, expiresIn)
	html = fmt.Sprintf(transactionalEmailHTML,
		"Password Reset",
		fmt.Sprintf(`<p>We received a request to reset your password.</p><a class="button" href="%s">Reset Password</a><p>This link expires in %d minutes. If you did not request this, ignore this email.</p>`, resetURL, expiresIn),
		time.Now().Year())
	return subject, plain, html
}

func (s *emailService) SendAnalysisSharedEmail(toEmail, senderName, analysisName, shareURL string) error {
	subject := fmt.Sprintf("%s shared a property analysis with you", senderName)
	plain := fmt.Sprintf("%s shared %q with you: %s", senderName, analysisName, shareURL)
	html := fmt.Sprintf(transactionalEmailHTML,
		"Analysis Shared",
		fmt.Sprintf(`<p>%s shared the analysis <strong>%s</strong> with you.</p><a class="button" href="%s">View Analysis</a>`, senderName, analysisName, shareURL),
		time.Now().Year())
	return s.send(toEmail, subject, plain, html)
}

func (s *emailService) send(toEmail, subject, plain, html string) error {
	if s.client == nil {
		utils.Logger.Warnf("email disabled, dropping %q to %s", subject, toEmail)
		return nil
	}

	from := mail.NewEmail("Luxe Property Analysis", s.cfg.SendGridFrom)
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, subject, to, plain, html)

	if s.cfg.SendGridSandbox {
		ms := mail.NewMailSettings()
		ms.SetSandboxMode(mail.NewSetting(true))
		message.MailSettings = ms
	}

	_, err := s.client.Send(message)
	if err != nil {
		utils.Logger.WithError(err).Errorf("Failed to send email to %s via SendGrid", toEmail)
		return fmt.Errorf("%w: failed to send email via sendgrid: %v", utils.ErrExternalServiceFailure, err)
	}
	return nil
}
