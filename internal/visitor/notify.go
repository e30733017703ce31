package visitor

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"visitor-reception/internal/email"
	"visitor-reception/internal/storage"
)

//go:embed templates/*.tmpl
var emailTemplates embed.FS

var approvalTmpl = template.Must(template.ParseFS(emailTemplates, "templates/approval_email.html.tmpl"))

const approvalSubject = "Visitor approval request: %s"

type approvalEmail struct {
	FullName      string
	ContactNumber string
	Department    string
	Host          string
	InTime        string
	ApprovalURL   string
}

// Sender delivers a rendered message. Satisfied by email.Client.
type Sender interface {
	Send(msg *email.Message) error
}

// Notifier sends the approval email to HR and, when known, the host.
// Delivery is advisory: per-recipient failures are logged, never propagated.
type Notifier struct {
	client  Sender
	hrEmail string

	logger *slog.Logger
}

func NewNotifier(client Sender, hrEmail string) *Notifier {
	return &Notifier{
		client:  client,
		hrEmail: hrEmail,
		logger:  slog.With("component", "notifier"),
	}
}

// SendApproval delivers the approval request email individually to each
// recipient so one bad address does not block the other. Returns the number
// of recipients that were delivered to.
func (n *Notifier) SendApproval(record *storage.Visitor, approvalURL string) int {
	var recipients []string
	if n.hrEmail != "" {
		recipients = append(recipients, n.hrEmail)
	}
	if record.HostEmail != nil && *record.HostEmail != "" {
		recipients = append(recipients, *record.HostEmail)
	}
	if len(recipients) == 0 {
		n.logger.Warn("No approval recipients configured", "id", record.ID)
		return 0
	}

	body, err := renderApprovalEmail(record, approvalURL)
	if err != nil {
		n.logger.Error("Failed to render approval email", "id", record.ID, "error", err)
		return 0
	}

	subject := fmt.Sprintf(approvalSubject, record.FullName)

	sent := 0
	for _, rcpt := range recipients {
		msg := &email.Message{
			To:      []string{rcpt},
			Subject: subject,
			HTML:    body,
		}
		if err := n.client.Send(msg); err != nil {
			n.logger.Error("Failed to send approval email", "id", record.ID, "to", rcpt, "error", err)
			continue
		}
		n.logger.Info("Approval email sent", "id", record.ID, "to", rcpt)
		sent++
	}
	return sent
}

func renderApprovalEmail(record *storage.Visitor, approvalURL string) (string, error) {
	data := approvalEmail{
		FullName:      record.FullName,
		ContactNumber: record.ContactNumber,
		Department:    record.DepartmentVisiting,
		Host:          record.PersonToVisit,
		InTime:        record.InTime.Format(time.RFC1123),
		ApprovalURL:   approvalURL,
	}

	var buf bytes.Buffer
	if err := approvalTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
