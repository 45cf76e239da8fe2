package notification

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/returnhub/backend/internal/domain/returns"
	"github.com/returnhub/backend/internal/infrastructure/config"
)

// statusCopy is the customer-facing wording for one workflow status.
type statusCopy struct {
	Headline string
	Message  string
}

// statusCopyTable maps each status to the wording used in update emails.
// Statuses missing here fall back to a generic line.
var statusCopyTable = map[returns.Status]statusCopy{
	returns.StatusApproved: {
		Headline: "Your return has been approved",
		Message:  "Please ship the items back to us. Keep your shipping receipt until the return is settled.",
	},
	returns.StatusRejected: {
		Headline: "Your return could not be accepted",
		Message:  "After review we are unable to accept this return. See the note below for details.",
	},
	returns.StatusReceived: {
		Headline: "We have received your items",
		Message:  "Your returned items arrived at our warehouse and are queued for inspection.",
	},
	returns.StatusInspecting: {
		Headline: "Your items are being inspected",
		Message:  "Our team is checking the condition of the returned items. We will update you shortly.",
	},
	returns.StatusRefundIssued: {
		Headline: "Your refund has been issued",
		Message:  "The refund has been issued to your original payment method. It may take a few business days to appear.",
	},
	returns.StatusCompleted: {
		Headline: "Your return is complete",
		Message:  "This return has been fully settled. Thank you for your patience.",
	},
	returns.StatusCancelled: {
		Headline: "Your return has been cancelled",
		Message:  "This return has been cancelled and no further action is needed.",
	},
}

func copyFor(status returns.Status) statusCopy {
	if c, ok := statusCopyTable[status]; ok {
		return c
	}
	return statusCopy{
		Headline: "Your return has been updated",
		Message:  fmt.Sprintf("The status of your return is now %s.", status),
	}
}

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<html>
<body style="font-family: sans-serif; color: #333;">
  <h2>We received your return request</h2>
  <p>Your return has been registered under number <strong>{{.Number}}</strong>.</p>
  {{if .OrderReference}}<p>Order reference: {{.OrderReference}}</p>{{end}}
  <p>Use this number to track the progress of your return at any time.
     Our team will review the request and get back to you.</p>
  <p>{{.FromName}}</p>
</body>
</html>`))

var statusUpdateTmpl = template.Must(template.New("status_update").Parse(`<html>
<body style="font-family: sans-serif; color: #333;">
  <h2>{{.Headline}}</h2>
  <p>Return <strong>{{.Number}}</strong> is now <strong>{{.Status}}</strong>.</p>
  <p>{{.Message}}</p>
  {{if .Note}}<blockquote style="border-left: 3px solid #ccc; padding-left: 8px; color: #555;">{{.Note}}</blockquote>{{end}}
  <p>{{.FromName}}</p>
</body>
</html>`))

var adminNoticeTmpl = template.Must(template.New("admin_notice").Parse(`<html>
<body style="font-family: sans-serif; color: #333;">
  <h2>Return {{.Number}} is now {{.Status}}</h2>
  <p>Internal ID: {{.ReturnID}}</p>
  <p>Open the admin console to review the return.</p>
</body>
</html>`))

// SMTPMailer delivers return lifecycle emails through an SMTP relay.
// Each send dials a fresh connection; volume is low enough that keeping
// the connection open is not worth the reconnect handling.
type SMTPMailer struct {
	cfg    config.SMTPConfig
	logger *zap.Logger
}

// NewSMTPMailer creates a mailer backed by the configured SMTP relay
func NewSMTPMailer(cfg config.SMTPConfig, logger *zap.Logger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, logger: logger}
}

var _ returns.Notifier = (*SMTPMailer)(nil)

// SendConfirmation emails the customer that their return was registered
func (m *SMTPMailer) SendConfirmation(ctx context.Context, email, displayNumber, orderReference string) error {
	body, err := render(confirmationTmpl, map[string]any{
		"Number":         displayNumber,
		"OrderReference": orderReference,
		"FromName":       m.cfg.FromName,
	})
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Return %s received", displayNumber)
	return m.send(ctx, email, subject, body)
}

// SendStatusUpdate emails the customer about a status change
func (m *SMTPMailer) SendStatusUpdate(ctx context.Context, email, displayNumber string, status returns.Status, note string) error {
	c := copyFor(status)
	body, err := render(statusUpdateTmpl, map[string]any{
		"Headline": c.Headline,
		"Message":  c.Message,
		"Number":   displayNumber,
		"Status":   status.String(),
		"Note":     note,
		"FromName": m.cfg.FromName,
	})
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Return %s: %s", displayNumber, c.Headline)
	return m.send(ctx, email, subject, body)
}

// SendAdminNotice emails the configured admin address about a status change.
// Without an admin address the notice is silently skipped.
func (m *SMTPMailer) SendAdminNotice(ctx context.Context, displayNumber string, status returns.Status, returnID uuid.UUID) error {
	if m.cfg.AdminEmail == "" {
		return nil
	}
	body, err := render(adminNoticeTmpl, map[string]any{
		"Number":   displayNumber,
		"Status":   status.String(),
		"ReturnID": returnID.String(),
	})
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("[returns] %s moved to %s", displayNumber, status)
	return m.send(ctx, m.cfg.AdminEmail, subject, body)
}

// send delivers one message, honoring context cancellation. gomail has no
// context support, so the dial-and-send runs in a goroutine and the caller's
// deadline decides who wins.
func (m *SMTPMailer) send(ctx context.Context, to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.cfg.FromAddress, m.cfg.FromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)

	done := make(chan error, 1)
	go func() {
		done <- dialer.DialAndSend(msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			m.logger.Warn("email delivery failed",
				zap.String("to", to),
				zap.String("subject", subject),
				zap.Error(err))
			return fmt.Errorf("send email: %w", err)
		}
		m.logger.Debug("email delivered",
			zap.String("to", to),
			zap.String("subject", subject))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render email template: %w", err)
	}
	return buf.String(), nil
}
