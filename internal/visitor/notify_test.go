package visitor

import (
	"errors"
	"strings"
	"testing"
	"time"

	"visitor-reception/internal/email"
	"visitor-reception/internal/storage"
)

// fakeSender records delivered messages and can refuse one recipient.
type fakeSender struct {
	sent    []*email.Message
	failFor string
}

func (f *fakeSender) Send(msg *email.Message) error {
	if f.failFor != "" && len(msg.To) == 1 && msg.To[0] == f.failFor {
		return errors.New("recipient refused")
	}
	f.sent = append(f.sent, msg)
	return nil
}

func approvalRecord(hostEmail string) *storage.Visitor {
	v := &storage.Visitor{
		ID:                 7,
		FullName:           "Jane Doe",
		ContactNumber:      "5551234567",
		DepartmentVisiting: "Engineering",
		PersonToVisit:      "John Smith",
		InTime:             time.Now().UTC(),
	}
	if hostEmail != "" {
		v.HostEmail = &hostEmail
	}
	return v
}

func TestSendApproval_HROnly(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotifier(sender, "hr@example.com")

	url := "http://localhost:8080/visitors/7/approve"
	sent := n.SendApproval(approvalRecord(""), url)
	if sent != 1 {
		t.Fatalf("expected 1 delivery, got %d", sent)
	}

	msg := sender.sent[0]
	if len(msg.To) != 1 || msg.To[0] != "hr@example.com" {
		t.Errorf("unexpected recipients: %v", msg.To)
	}
	if !strings.Contains(msg.Subject, "Jane Doe") {
		t.Errorf("expected visitor name in subject, got %q", msg.Subject)
	}
	if !strings.Contains(msg.HTML, url) {
		t.Error("expected approval link in email body")
	}
}

func TestSendApproval_HostGetsCopy(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotifier(sender, "hr@example.com")

	sent := n.SendApproval(approvalRecord("host@example.com"), "http://localhost:8080/visitors/7/approve")
	if sent != 2 {
		t.Fatalf("expected 2 deliveries, got %d", sent)
	}
	if sender.sent[0].To[0] != "hr@example.com" || sender.sent[1].To[0] != "host@example.com" {
		t.Errorf("unexpected delivery order: %v, %v", sender.sent[0].To, sender.sent[1].To)
	}
}

func TestSendApproval_OneBadAddressDoesNotBlockTheOther(t *testing.T) {
	sender := &fakeSender{failFor: "hr@example.com"}
	n := NewNotifier(sender, "hr@example.com")

	sent := n.SendApproval(approvalRecord("host@example.com"), "http://localhost:8080/visitors/7/approve")
	if sent != 1 {
		t.Fatalf("expected 1 delivery, got %d", sent)
	}
	if sender.sent[0].To[0] != "host@example.com" {
		t.Errorf("expected host delivery to survive, got %v", sender.sent[0].To)
	}
}

func TestSendApproval_NoRecipients(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotifier(sender, "")

	sent := n.SendApproval(approvalRecord(""), "http://localhost:8080/visitors/7/approve")
	if sent != 0 {
		t.Errorf("expected 0 deliveries, got %d", sent)
	}
	if len(sender.sent) != 0 {
		t.Errorf("expected no messages, got %d", len(sender.sent))
	}
}
