package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/dashboardhq/auth-service/internal/config"
	"github.com/dashboardhq/auth-service/internal/utils"
)

// OTPKind distinguishes the flow that asked for the code; it only
// changes the email copy, never the verification semantics.
type OTPKind string

const (
	OTPKindSignup OTPKind = "signup"
	OTPKindLogin  OTPKind = "login"
	OTPKindResend OTPKind = "resend"
)

// MailerService is the delivery boundary. One attempt per call, no
// queueing: callers retry by re-running the whole issuance operation,
// which mints a fresh code anyway.
type MailerService interface {
	SendOTPEmail(ctx context.Context, toEmail, name, code string, kind OTPKind) error
	SendWelcomeEmail(ctx context.Context, toEmail, name string) error
}

type mailerService struct {
	cfg            *config.Config
	sendgridClient *sendgrid.Client
}

func NewMailerService(cfg *config.Config) MailerService {
	return &mailerService{
		cfg:            cfg,
		sendgridClient: sendgrid.NewSendClient(cfg.SendGridAPIKey),
	}
}

func (m *mailerService) SendOTPEmail(ctx context.Context, toEmail, name, code string, kind OTPKind) error {
	var title, intro string
	switch kind {
	case OTPKindSignup:
		title = "Verify your email"
		intro = "Use the following code to finish creating your Dashboard account. This code will expire in 5 minutes."
	case OTPKindLogin:
		title = "Your login code"
		intro = "Use the following code to sign in to Dashboard. This code will expire in 5 minutes."
	default:
		title = "Your verification code"
		intro = "Here is the fresh code you asked for. This code will expire in 5 minutes."
	}

	from := mail.NewEmail(m.cfg.OrganizationName, m.cfg.SendGridFromEmail)
	to := mail.NewEmail(name, toEmail)
	subject := m.cfg.OrganizationName + " - Otp Verification"
	plainTextContent := fmt.Sprintf("Your verification code is %s", code)
	htmlContent := fmt.Sprintf(otpEmailHTML, title, intro, code, time.Now().Year())
	message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)

	m.applySandbox(message)

	_, sendErr := m.sendgridClient.Send(message)
	if sendErr != nil {
		utils.Logger.WithError(sendErr).Errorf("Failed to send %s OTP email to %s via SendGrid", kind, toEmail)
		return fmt.Errorf("%w: failed to send email via sendgrid: %v", utils.ErrExternalServiceFailure, sendErr)
	}
	return nil
}

func (m *mailerService) SendWelcomeEmail(ctx context.Context, toEmail, name string) error {
	from := mail.NewEmail(m.cfg.OrganizationName, m.cfg.SendGridFromEmail)
	to := mail.NewEmail(name, toEmail)
	subject := "Welcome to " + m.cfg.OrganizationName
	plainTextContent := fmt.Sprintf("Hi %s, thank you for signing up with us!", name)
	htmlContent := fmt.Sprintf(welcomeEmailHTML, name, toEmail, time.Now().Year())
	message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)

	m.applySandbox(message)

	_, sendErr := m.sendgridClient.Send(message)
	if sendErr != nil {
		utils.Logger.WithError(sendErr).Errorf("Failed to send welcome email to %s via SendGrid", toEmail)
		return fmt.Errorf("%w: failed to send email via sendgrid: %v", utils.ErrExternalServiceFailure, sendErr)
	}
	return nil
}

func (m *mailerService) applySandbox(message *mail.SGMailV3) {
	if m.cfg.SendGridSandboxMode {
		ms := mail.NewMailSettings()
		ms.SetSandboxMode(mail.NewSetting(true))
		message.MailSettings = ms
	}
}
