package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"talentbridge-backend/config"
)

// EmailService handles sending emails via SMTP
type EmailService struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
}

// ScreeningInviteData holds the data for screening invitation emails
type ScreeningInviteData struct {
	CandidateName  string
	CandidateEmail string
	JobTitle       string
	ScheduledAt    string
	DurationMins   int
}

// NewEmailService creates a new email service with SMTP configuration
func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: cfg.SMTPUsername, // SMTP relays use the login email as from address
	}
}

// screeningInviteTemplate is the HTML template for screening invitation emails
const screeningInviteTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Screening Interview Invitation</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0066cc; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .field { margin-bottom: 15px; }
        .label { font-weight: bold; color: #555; }
        .value { margin-top: 5px; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Screening Interview Invitation</h1>
        </div>
        <div class="content">
            <p>Hi {{.CandidateName}},</p>
            <p>You have been invited to a screening interview for the following position:</p>
            <div class="field">
                <div class="label">Position:</div>
                <div class="value">{{.JobTitle}}</div>
            </div>
            {{if .ScheduledAt}}
            <div class="field">
                <div class="label">Scheduled At:</div>
                <div class="value">{{.ScheduledAt}}</div>
            </div>
            {{end}}
            <div class="field">
                <div class="label">Expected Duration:</div>
                <div class="value">{{.DurationMins}} minutes</div>
            </div>
            <p>Our recruitment team will follow up with the interview details shortly.</p>
        </div>
        <div class="footer">
            <p>This email was sent by the TalentBridge recruitment team.</p>
        </div>
    </div>
</body>
</html>`

// SendScreeningInvite sends a screening invitation email to the candidate
func (s *EmailService) SendScreeningInvite(data ScreeningInviteData) error {
	tmpl, err := template.New("screening_invite").Parse(screeningInviteTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse email template: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	subject := fmt.Sprintf("Screening Interview Invitation: %s", data.JobTitle)

	// Construct MIME message
	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		s.fromEmail,
		data.CandidateEmail,
		subject,
		body.String(),
	))

	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	err = smtp.SendMail(addr, auth, s.fromEmail, []string{data.CandidateEmail}, msg)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// IsConfigured checks if the email service has valid SMTP configuration
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}
