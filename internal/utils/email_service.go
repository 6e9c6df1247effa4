package utils

import (
	"fmt"
	"net/smtp"

	"CASHTRACKR_BACK-END/internal/config"
)

// EmailService handles email sending operations over SMTP
type EmailService struct {
	config *config.EmailConfig
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{config: cfg}
}

// SendAccountConfirmation sends the account confirmation token to a new user
func (e *EmailService) SendAccountConfirmation(name, email, token string) error {
	subject := "CashTrackr - Confirm your account"
	body := fmt.Sprintf(`Hello %s,

Your CashTrackr account is almost ready.

Enter the following code on the confirmation page: %s

If you didn't create this account, please ignore this email.

Best regards,
CashTrackr Team
`, name, token)

	return e.sendEmail(email, subject, body)
}

// SendPasswordResetToken sends a password-reset token to an existing user
func (e *EmailService) SendPasswordResetToken(name, email, token string) error {
	subject := "CashTrackr - Reset your password"
	body := fmt.Sprintf(`Hello %s,

You requested to reset your CashTrackr password.

Enter the following code on the reset page: %s

If you didn't request this, please ignore this email.

Best regards,
CashTrackr Team
`, name, token)

	return e.sendEmail(email, subject, body)
}

// sendEmail sends an email using SMTP
func (e *EmailService) sendEmail(to, subject, body string) error {
	// Check if credentials are set
	if e.config.SMTPUsername == "" || e.config.SMTPPassword == "" {
		return fmt.Errorf("email credentials not configured")
	}

	auth := smtp.PlainAuth("", e.config.SMTPUsername, e.config.SMTPPassword, e.config.SMTPHost)

	fromEmail := e.config.FromEmail
	if fromEmail == "" {
		fromEmail = e.config.SMTPUsername
	}

	message := []byte(fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"\r\n"+
			"%s\r\n",
		e.config.FromName, fromEmail, to, subject, body))

	addr := e.config.SMTPHost + ":" + e.config.SMTPPort
	if err := smtp.SendMail(addr, auth, fromEmail, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}
