package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"visitor-reception/internal/config"
)

func testProvider(t *testing.T) *SQLiteProvider {
	t.Helper()

	cfg := &config.Storage{SQLite: &config.SQLiteStorage{Path: ":memory:"}}
	provider, err := NewSQLiteProvider(cfg)
	if err != nil {
		t.Fatalf("NewSQLiteProvider failed: %v", err)
	}
	t.Cleanup(func() { provider.Close() })
	return provider
}

func testVisitor(name string) *Visitor {
	return &Visitor{
		FullName:           name,
		ContactNumber:      "5551234567",
		DepartmentVisiting: "Engineering",
		PersonToVisit:      "John Smith",
		InTime:             time.Now().UTC(),
	}
}

func TestCreateVisitor_AssignsIncreasingIDs(t *testing.T) {
	p := testProvider(t)
	ctx := context.Background()

	var prev int64
	for _, name := range []string{"Jane Doe", "Bob Roe", "Alice Poe"} {
		id, err := p.CreateVisitor(ctx, testVisitor(name))
		if err != nil {
			t.Fatalf("CreateVisitor failed: %v", err)
		}
		if id <= prev {
			t.Errorf("expected strictly increasing ids, got %d after %d", id, prev)
		}
		prev = id
	}
}

func TestCreateVisitor_RejectsNonDigitContact(t *testing.T) {
	p := testProvider(t)

	v := testVisitor("Jane Doe")
	v.ContactNumber = "555-1234"
	if _, err := p.CreateVisitor(context.Background(), v); err == nil {
		t.Fatal("expected constraint error for non-digit contact number")
	}
}

func TestGetVisitor_UnknownID(t *testing.T) {
	p := testProvider(t)

	if _, err := p.GetVisitor(context.Background(), 999); !errors.Is(err, ErrNoVisitor) {
		t.Fatalf("expected ErrNoVisitor, got %v", err)
	}
}

func TestUpdates_UnknownID(t *testing.T) {
	p := testProvider(t)
	ctx := context.Background()
	now := time.Now().UTC()

	if err := p.SetApproved(ctx, 999); !errors.Is(err, ErrNoVisitor) {
		t.Errorf("SetApproved: expected ErrNoVisitor, got %v", err)
	}
	if err := p.SetOutTime(ctx, 999, now); !errors.Is(err, ErrNoVisitor) {
		t.Errorf("SetOutTime: expected ErrNoVisitor, got %v", err)
	}
	if err := p.SetSecurityConfirmed(ctx, 999, now); !errors.Is(err, ErrNoVisitor) {
		t.Errorf("SetSecurityConfirmed: expected ErrNoVisitor, got %v", err)
	}
}

func TestListVisitors_Filters(t *testing.T) {
	p := testProvider(t)
	ctx := context.Background()

	id1, err := p.CreateVisitor(ctx, testVisitor("Active Visitor"))
	if err != nil {
		t.Fatalf("CreateVisitor failed: %v", err)
	}
	id2, err := p.CreateVisitor(ctx, testVisitor("Released Visitor"))
	if err != nil {
		t.Fatalf("CreateVisitor failed: %v", err)
	}

	now := time.Now().UTC()
	if err := p.SetOutTime(ctx, id2, now); err != nil {
		t.Fatalf("SetOutTime failed: %v", err)
	}

	active, err := p.ListVisitors(ctx, FilterActive)
	if err != nil {
		t.Fatalf("ListVisitors(active) failed: %v", err)
	}
	if len(active) != 1 || active[0].ID != id1 {
		t.Errorf("expected only visitor %d active, got %+v", id1, active)
	}

	pending, err := p.ListVisitors(ctx, FilterSecurityPending)
	if err != nil {
		t.Fatalf("ListVisitors(security-pending) failed: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != id2 {
		t.Errorf("expected only visitor %d security-pending, got %+v", id2, pending)
	}

	if err := p.SetSecurityConfirmed(ctx, id2, now); err != nil {
		t.Fatalf("SetSecurityConfirmed failed: %v", err)
	}

	released, err := p.ListVisitors(ctx, FilterReleased)
	if err != nil {
		t.Fatalf("ListVisitors(released) failed: %v", err)
	}
	if len(released) != 1 || released[0].ID != id2 {
		t.Errorf("expected only visitor %d released, got %+v", id2, released)
	}

	if _, err := p.ListVisitors(ctx, Filter("bogus")); err == nil {
		t.Error("expected error for unknown filter")
	}
}

func TestListVisitors_OrderedByInTimeDesc(t *testing.T) {
	p := testProvider(t)
	ctx := context.Background()

	older := testVisitor("Older")
	older.InTime = time.Now().UTC().Add(-time.Hour)
	if _, err := p.CreateVisitor(ctx, older); err != nil {
		t.Fatalf("CreateVisitor failed: %v", err)
	}
	newer := testVisitor("Newer")
	if _, err := p.CreateVisitor(ctx, newer); err != nil {
		t.Fatalf("CreateVisitor failed: %v", err)
	}

	all, err := p.ListVisitors(ctx, FilterAll)
	if err != nil {
		t.Fatalf("ListVisitors failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 visitors, got %d", len(all))
	}
	if all[0].FullName != "Newer" {
		t.Errorf("expected most recent visitor first, got %q", all[0].FullName)
	}
}

func TestVisitorStats(t *testing.T) {
	p := testProvider(t)
	ctx := context.Background()

	stats, err := p.VisitorStats(ctx)
	if err != nil {
		t.Fatalf("VisitorStats failed: %v", err)
	}
	if stats.Total != 0 || stats.Active != 0 || stats.Secured != 0 || stats.SecurityPending != 0 {
		t.Errorf("expected zero stats on empty store, got %+v", stats)
	}

	id1, _ := p.CreateVisitor(ctx, testVisitor("One"))
	id2, _ := p.CreateVisitor(ctx, testVisitor("Two"))
	if _, err := p.CreateVisitor(ctx, testVisitor("Three")); err != nil {
		t.Fatalf("CreateVisitor failed: %v", err)
	}

	now := time.Now().UTC()
	p.SetOutTime(ctx, id1, now)
	p.SetOutTime(ctx, id2, now)
	p.SetSecurityConfirmed(ctx, id2, now)

	stats, err = p.VisitorStats(ctx)
	if err != nil {
		t.Fatalf("VisitorStats failed: %v", err)
	}
	if stats.Total != 3 || stats.Active != 1 || stats.Secured != 1 || stats.SecurityPending != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.Total != stats.Active+stats.Secured+stats.SecurityPending {
		t.Errorf("stats do not add up: %+v", stats)
	}
}

func TestPurgeVisitors_ResetsSequence(t *testing.T) {
	p := testProvider(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := p.CreateVisitor(ctx, testVisitor("Visitor")); err != nil {
			t.Fatalf("CreateVisitor failed: %v", err)
		}
	}

	n, err := p.PurgeVisitors(ctx)
	if err != nil {
		t.Fatalf("PurgeVisitors failed: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 purged records, got %d", n)
	}

	id, err := p.CreateVisitor(ctx, testVisitor("Fresh"))
	if err != nil {
		t.Fatalf("CreateVisitor failed: %v", err)
	}
	if id != 1 {
		t.Errorf("expected id sequence reset to 1, got %d", id)
	}
}

func TestVisitorStatus(t *testing.T) {
	now := time.Now().UTC()

	v := &Visitor{}
	if got := v.Status(); got != StatusActive {
		t.Errorf("expected %q, got %q", StatusActive, got)
	}

	v.OutTime = &now
	if got := v.Status(); got != StatusSecurityPending {
		t.Errorf("expected %q, got %q", StatusSecurityPending, got)
	}

	v.SecurityConfirmed = true
	if got := v.Status(); got != StatusReleased {
		t.Errorf("expected %q, got %q", StatusReleased, got)
	}
}
