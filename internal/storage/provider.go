package storage

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"visitor-reception/internal/config"
)

// ErrNoVisitor is returned when an operation references an id with no record.
var ErrNoVisitor = errors.New("visitor not found")

type Provider interface {
	Close() error

	// Visitor lifecycle
	CreateVisitor(ctx context.Context, visitor *Visitor) (int64, error)
	GetVisitor(ctx context.Context, id int64) (*Visitor, error)
	ListVisitors(ctx context.Context, filter Filter) ([]Visitor, error)
	ListVisitorsBetween(ctx context.Context, from, to time.Time) ([]Visitor, error)
	SetApproved(ctx context.Context, id int64) error
	SetOutTime(ctx context.Context, id int64, out time.Time) error
	SetSecurityConfirmed(ctx context.Context, id int64, out time.Time) error
	SetQRCodePath(ctx context.Context, id int64, path string) error
	SetEmailSent(ctx context.Context, id int64, sent bool) error
	VisitorStats(ctx context.Context) (*VisitorStats, error)

	// Out-of-band maintenance. Deletes every record and resets the id
	// sequence. Not reachable from any HTTP endpoint.
	PurgeVisitors(ctx context.Context) (int64, error)
}

func NewProvider(config *config.Storage) Provider {
	switch {
	case config.SQLite != nil:
		provider, err := NewSQLiteProvider(config)
		if err != nil {
			slog.Error("Failed to initialize sqlite storage", "error", err)
			return nil
		}
		return provider

	default:
		slog.Error("Unsupported storage configuration", "config", config)
	}

	return nil
}
