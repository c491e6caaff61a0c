package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
)

// Mailer dispatches transactional email. Implementations must return an error
// when delivery fails; callers surface it, never swallow it.
type Mailer interface {
	SendPasswordReset(ctx context.Context, recipient, username, resetLink string) error
}

type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	FromName string
}

// SMTPMailer sends mail over SMTP with PLAIN auth. When no credentials are
// configured it runs in dev mode and only logs the message.
type SMTPMailer struct {
	config  Config
	devMode bool
	logger  *slog.Logger
}

func NewSMTPMailer(config Config, logger *slog.Logger) *SMTPMailer {
	return &SMTPMailer{
		config:  config,
		devMode: config.Username == "" || config.Password == "",
		logger:  logger,
	}
}

var resetTemplate = template.Must(template.New("reset").Parse(`<html>
<body style="font-family: Arial, sans-serif;">
  <h2>Password reset requested</h2>
  <p>Hi {{.Username}},</p>
  <p>We received a request to reset the password for your QuizMania account.
  Click the link below to choose a new password. The link is valid for 5 minutes.</p>
  <p><a href="{{.ResetLink}}">Reset your password</a></p>
  <p>If you did not request this, you can ignore this email.</p>
</body>
</html>`))

func (m *SMTPMailer) SendPasswordReset(ctx context.Context, recipient, username, resetLink string) error {
	var body bytes.Buffer
	err := resetTemplate.Execute(&body, struct {
		Username  string
		ResetLink string
	}{Username: username, ResetLink: resetLink})
	if err != nil {
		return fmt.Errorf("failed to render reset email: %w", err)
	}

	return m.send(ctx, recipient, "Reset your QuizMania password", body.String())
}

func (m *SMTPMailer) send(ctx context.Context, recipient, subject, htmlBody string) error {
	if m.devMode {
		m.logger.Info("dev mode: skipping email dispatch", "to", recipient, "subject", subject)
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%s", m.config.Host, m.config.Port)
	auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", m.config.FromName, m.config.From)
	fmt.Fprintf(&msg, "To: %s\r\n", recipient)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n")
	msg.WriteString(htmlBody)
	msg.WriteString("\r\n")

	if err := smtp.SendMail(addr, auth, m.config.From, []string{recipient}, msg.Bytes()); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", recipient, err)
	}
	return nil
}
