package email

import (
	"crypto/tls"
	"fmt"
	"html"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// EmailService sends customer notifications
type EmailService interface {
	SendEnrollmentConfirmation(toEmail, toName string, summary EnrollmentSummary) error
	SendCancellationDecision(toEmail, toName string, decision CancellationDecision) error
	SendPAQOutcome(toEmail, toName string, outcome PAQOutcome) error
}

// SMTPConfig holds configuration for SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool // implicit TLS, normally port 465
	BaseURL   string
}

// EnrollmentSummary is the content of an enrollment confirmation
type EnrollmentSummary struct {
	EnrollmentID   int64
	TermName       string
	Classes        []string
	TotalCents     int64
	CreditCents    int64
	AmountDueCents int64
	Status         string
}

// CancellationDecision is the content of a cancellation review email
type CancellationDecision struct {
	ClassName   string
	SessionDate string
	Approved    bool
	CreditCents int64
	Notes       string
}

// PAQOutcome is the content of a PAQ review email
type PAQOutcome struct {
	Approved  bool
	ExpiresOn string
	Notes     string
}

// EmailServiceImpl implements EmailService
type EmailServiceImpl struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewEmailService creates a new EmailService
func NewEmailService(config SMTPConfig, logger zerolog.Logger) EmailService {
	return &EmailServiceImpl{
		config: config,
		logger: logger,
	}
}

// FormatCents renders cents as dollars, e.g. 1250 -> "$12.50"
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

func (s *EmailServiceImpl) configured() bool {
	return s.config.Username != "" && s.config.Password != "" && s.config.Host != ""
}

// SendEnrollmentConfirmation implements EmailService
func (s *EmailServiceImpl) SendEnrollmentConfirmation(toEmail, toName string, summary EnrollmentSummary) error {
	if !s.configured() {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Int64("enrollmentId", summary.EnrollmentID).
			Msg("SMTP credentials not configured - enrollment confirmation not sent")
		return nil
	}
	subject := fmt.Sprintf("Your SHARE enrollment for %s", summary.TermName)
	return s.sendHTMLEmail(toEmail, subject, RenderEnrollmentConfirmation(toName, summary))
}

// SendCancellationDecision implements EmailService
func (s *EmailServiceImpl) SendCancellationDecision(toEmail, toName string, decision CancellationDecision) error {
	if !s.configured() {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Bool("approved", decision.Approved).
			Msg("SMTP credentials not configured - cancellation decision not sent")
		return nil
	}
	subject := "Your SHARE cancellation request"
	return s.sendHTMLEmail(toEmail, subject, RenderCancellationDecision(toName, decision))
}

// SendPAQOutcome implements EmailService
func (s *EmailServiceImpl) SendPAQOutcome(toEmail, toName string, outcome PAQOutcome) error {
	if !s.configured() {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Bool("approved", outcome.Approved).
			Msg("SMTP credentials not configured - PAQ outcome not sent")
		return nil
	}
	subject := "Your SHARE health questionnaire"
	return s.sendHTMLEmail(toEmail, subject, RenderPAQOutcome(toName, outcome))
}

func wrap(toName, inner string) string {
	return fmt.Sprintf(`<html>
<body>
	<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
		<p>Hello %s,</p>
		%s
		<p>Kind regards,<br>The SHARE team</p>
	</div>
</body>
</html>`, html.EscapeString(toName), inner)
}

// RenderEnrollmentConfirmation builds the confirmation body
func RenderEnrollmentConfirmation(toName string, summary EnrollmentSummary) string {
	var items strings.Builder
	for _, c := range summary.Classes {
		items.WriteString("<li>" + html.EscapeString(c) + "</li>")
	}

	next := "Your place is confirmed."
	if summary.AmountDueCents > 0 && summary.Status != "ACTIVE" {
		next = "Your place is held until payment of " + FormatCents(summary.AmountDueCents) + " is received."
	}

	return wrap(toName, fmt.Sprintf(`<p>Thank you for enrolling in %s (reference #%d).</p>
		<ul>%s</ul>
		<p>Total: %s<br>Credit applied: %s<br>Amount due: %s</p>
		<p>%s</p>`,
		html.EscapeString(summary.TermName), summary.EnrollmentID, items.String(),
		FormatCents(summary.TotalCents), FormatCents(summary.CreditCents), FormatCents(summary.AmountDueCents), next))
}

// RenderCancellationDecision builds the cancellation review body
func RenderCancellationDecision(toName string, d CancellationDecision) string {
	what := fmt.Sprintf("%s on %s", html.EscapeString(d.ClassName), html.EscapeString(d.SessionDate))
	var inner string
	if d.Approved {
		inner = fmt.Sprintf("<p>Your cancellation of %s has been approved.</p>", what)
		if d.CreditCents > 0 {
			inner += fmt.Sprintf("<p>%s has been added to your account credit.</p>", FormatCents(d.CreditCents))
		}
	} else {
		inner = fmt.Sprintf("<p>Your cancellation of %s could not be approved and your booking remains in place.</p>", what)
	}
	if d.Notes != "" {
		inner += "<p>" + html.EscapeString(d.Notes) + "</p>"
	}
	return wrap(toName, inner)
}

// RenderPAQOutcome builds the PAQ review body
func RenderPAQOutcome(toName string, o PAQOutcome) string {
	var inner string
	if o.Approved {
		inner = fmt.Sprintf("<p>Your pre-activity questionnaire has been approved and is valid until %s. You can now enroll in classes.</p>",
			html.EscapeString(o.ExpiresOn))
	} else {
		inner = "<p>Your pre-activity questionnaire could not be approved. Please contact us or submit a new questionnaire.</p>"
	}
	if o.Notes != "" {
		inner += "<p>" + html.EscapeString(o.Notes) + "</p>"
	}
	return wrap(toName, inner)
}

// sendHTMLEmail sends an HTML email
func (s *EmailServiceImpl) sendHTMLEmail(toEmail, subject, htmlBody string) error {
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)

	headers := []string{
		"From: " + fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail),
		"To: " + toEmail,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=UTF-8",
	}
	message := strings.Join(headers, "\r\n") + "\r\n\r\n" + htmlBody

	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	if !s.config.UseTLS {
		if err := smtp.SendMail(serverAddress, auth, s.config.FromEmail, []string{toEmail}, []byte(message)); err != nil {
			s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to send email")
			return fmt.Errorf("failed to send email: %w", err)
		}
		return nil
	}

	conn, err := tls.Dial("tcp", serverAddress, &tls.Config{ServerName: s.config.Host})
	if err != nil {
		s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to connect to SMTP server")
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to create SMTP client")
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Quit()

	if err = client.Auth(auth); err != nil {
		s.logger.Error().Err(err).Msg("SMTP authentication failed")
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}
	if err = client.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err = client.Rcpt(toEmail); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err = w.Write([]byte(message)); err != nil {
		return fmt.Errorf("failed to write email message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}
	return nil
}
