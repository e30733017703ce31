package visitor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"visitor-reception/internal/badge"
	"visitor-reception/internal/broadcast"
	"visitor-reception/internal/storage"
)

// Broadcast event kinds.
const (
	EventRelease          = "release"
	EventSecurityCheckout = "security-checkout"
)

// Registration is the typed request for a new visitor record. All fields
// except HostEmail and PhotoPath are required.
type Registration struct {
	FullName           string
	ContactNumber      string
	DepartmentVisiting string
	PersonToVisit      string

	// Optional address of the host, receives a copy of the approval email.
	HostEmail string

	// Path of the already stored photo file, if one was captured.
	PhotoPath string
}

// Manager orchestrates the visitor lifecycle: registration, badge and
// notification dispatch, approval, release and security confirmation.
// Durability of the record is the only hard guarantee; badge generation and
// email are advisory side channels.
type Manager struct {
	store       storage.Provider
	badges      *badge.Generator
	notifier    *Notifier
	broadcaster *broadcast.Broadcaster

	// Externally visible base URL used for approval links.
	baseURL string

	logger *slog.Logger
}

func NewManager(store storage.Provider, badges *badge.Generator, notifier *Notifier, broadcaster *broadcast.Broadcaster, baseURL string) *Manager {
	return &Manager{
		store:       store,
		badges:      badges,
		notifier:    notifier,
		broadcaster: broadcaster,
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		logger:      slog.With("component", "visitor"),
	}
}

// ApprovalURL returns the externally reachable approval link for a visitor.
func (m *Manager) ApprovalURL(id int64) string {
	return fmt.Sprintf("%s/visitors/%d/approve", m.baseURL, id)
}

// Register validates and persists a new visitor record, then kicks off badge
// generation and the approval notification in the background. It returns the
// new id as soon as the record is durably stored; side channel failures are
// logged and never surfaced to the caller.
func (m *Manager) Register(ctx context.Context, reg Registration) (int64, error) {
	var err error
	if reg.FullName, err = required("full_name", reg.FullName); err != nil {
		return 0, err
	}
	if reg.ContactNumber, err = required("contact_number", reg.ContactNumber); err != nil {
		return 0, err
	}
	if err = digitsOnly("contact_number", reg.ContactNumber); err != nil {
		return 0, err
	}
	if reg.DepartmentVisiting, err = required("department_visiting", reg.DepartmentVisiting); err != nil {
		return 0, err
	}
	if reg.PersonToVisit, err = required("person_to_visit", reg.PersonToVisit); err != nil {
		return 0, err
	}
	reg.HostEmail = strings.TrimSpace(reg.HostEmail)
	if reg.HostEmail != "" {
		if err = validEmail("host_email", reg.HostEmail); err != nil {
			return 0, err
		}
	}

	record := &storage.Visitor{
		FullName:           reg.FullName,
		ContactNumber:      reg.ContactNumber,
		DepartmentVisiting: reg.DepartmentVisiting,
		PersonToVisit:      reg.PersonToVisit,
		InTime:             time.Now().UTC(),
	}
	if reg.HostEmail != "" {
		record.HostEmail = &reg.HostEmail
	}
	if reg.PhotoPath != "" {
		record.PhotoPath = &reg.PhotoPath
	}

	id, err := m.store.CreateVisitor(ctx, record)
	if err != nil {
		return 0, fmt.Errorf("failed to register visitor: %w", err)
	}

	m.logger.Info("Visitor registered", "id", id, "full_name", record.FullName, "host", record.PersonToVisit)

	// Fire-and-forget side channels. Deliberately detached from the request
	// context: the response does not wait for either.
	go m.generateBadge(id)
	go m.sendApproval(record)

	return id, nil
}

func (m *Manager) generateBadge(id int64) {
	path, err := m.badges.Generate(id, m.ApprovalURL(id))
	if err != nil {
		m.logger.Error("Badge generation failed", "id", id, "error", err)
		return
	}
	if err := m.store.SetQRCodePath(context.Background(), id, path); err != nil {
		m.logger.Error("Failed to record badge path", "id", id, "error", err)
	}
}

func (m *Manager) sendApproval(record *storage.Visitor) {
	if m.notifier == nil {
		m.logger.Debug("Notifier not configured, skipping approval email", "id", record.ID)
		return
	}

	sent := m.notifier.SendApproval(record, m.ApprovalURL(record.ID))
	if sent == 0 {
		return
	}
	if err := m.store.SetEmailSent(context.Background(), record.ID, true); err != nil {
		m.logger.Error("Failed to record email status", "id", record.ID, "error", err)
	}
}

// Approve sets the approved flag. Idempotent: approving an already approved
// visitor is a no-op. Returns the current record snapshot for display.
func (m *Manager) Approve(ctx context.Context, id int64) (*storage.Visitor, error) {
	if err := m.store.SetApproved(ctx, id); err != nil {
		return nil, err
	}
	record, err := m.store.GetVisitor(ctx, id)
	if err != nil {
		return nil, err
	}
	m.logger.Info("Visitor approved", "id", id)
	return record, nil
}

// Release records the visitor's departure time and signals the broadcaster.
// The timestamp is set unconditionally; a repeated call overwrites it.
func (m *Manager) Release(ctx context.Context, id int64) error {
	if err := m.store.SetOutTime(ctx, id, time.Now().UTC()); err != nil {
		return err
	}
	m.logger.Info("Visitor released", "id", id)
	m.broadcaster.Publish(broadcast.Event{Kind: EventRelease, VisitorID: id, At: time.Now().UTC()})
	return nil
}

// ConfirmSecurity records the security staff checkout confirmation and
// signals the broadcaster. Same unconditional behavior as Release.
func (m *Manager) ConfirmSecurity(ctx context.Context, id int64) error {
	if err := m.store.SetSecurityConfirmed(ctx, id, time.Now().UTC()); err != nil {
		return err
	}
	m.logger.Info("Security checkout confirmed", "id", id)
	m.broadcaster.Publish(broadcast.Event{Kind: EventSecurityCheckout, VisitorID: id, At: time.Now().UTC()})
	return nil
}

// List returns visitors matching the filter, most recent first.
func (m *Manager) List(ctx context.Context, filter storage.Filter) ([]storage.Visitor, error) {
	return m.store.ListVisitors(ctx, filter)
}

// Stats returns the aggregate counts in a single read.
func (m *Manager) Stats(ctx context.Context) (*storage.VisitorStats, error) {
	return m.store.VisitorStats(ctx)
}
