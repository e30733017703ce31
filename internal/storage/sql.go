package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"visitor-reception/internal/config"
)

//go:embed schema.sql
var schemaSQL string

type SQLProvider struct {
	db *sqlx.DB

	config *config.Storage

	logger *slog.Logger
}

func NewSQLProvider(config *config.Storage, driverName string, dataSource string) (*SQLProvider, error) {
	db, err := sqlx.Open(driverName, dataSource)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// An in-memory sqlite database exists per connection; keep the pool at
	// one so every query sees the same database.
	if dataSource == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	logger := slog.With("component", "storage")

	p := &SQLProvider{
		db:     db,
		config: config,
		logger: logger,
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return p, nil
}

func (p *SQLProvider) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

func (p *SQLProvider) CreateVisitor(ctx context.Context, visitor *Visitor) (int64, error) {
	res, err := p.db.NamedExecContext(ctx, `
		INSERT INTO visitors (
			full_name, contact_number, department_visiting, person_to_visit,
			host_email, in_time, photo_path
		) VALUES (
			:full_name, :contact_number, :department_visiting, :person_to_visit,
			:host_email, :in_time, :photo_path
		)`, visitor)
	if err != nil {
		return 0, fmt.Errorf("failed to insert visitor: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted id: %w", err)
	}
	visitor.ID = id
	return id, nil
}

func (p *SQLProvider) GetVisitor(ctx context.Context, id int64) (*Visitor, error) {
	var visitor Visitor
	err := p.db.GetContext(ctx, &visitor, `SELECT * FROM visitors WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoVisitor
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get visitor %d: %w", id, err)
	}
	return &visitor, nil
}

func (p *SQLProvider) ListVisitors(ctx context.Context, filter Filter) ([]Visitor, error) {
	query := `SELECT * FROM visitors`
	switch filter {
	case FilterActive:
		query += ` WHERE out_time IS NULL`
	case FilterReleased:
		query += ` WHERE out_time IS NOT NULL AND security_confirmed = 1`
	case FilterSecurityPending:
		query += ` WHERE out_time IS NOT NULL AND security_confirmed = 0`
	case FilterAll:
	default:
		return nil, fmt.Errorf("unknown visitor filter %q", filter)
	}
	query += ` ORDER BY in_time DESC`

	visitors := []Visitor{}
	if err := p.db.SelectContext(ctx, &visitors, query); err != nil {
		return nil, fmt.Errorf("failed to list visitors: %w", err)
	}
	return visitors, nil
}

func (p *SQLProvider) ListVisitorsBetween(ctx context.Context, from, to time.Time) ([]Visitor, error) {
	visitors := []Visitor{}
	err := p.db.SelectContext(ctx, &visitors,
		`SELECT * FROM visitors WHERE in_time >= ? AND in_time < ? ORDER BY in_time DESC`,
		from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list visitors between %s and %s: %w", from, to, err)
	}
	return visitors, nil
}

// update runs an UPDATE statement and maps a zero row count to ErrNoVisitor.
func (p *SQLProvider) update(ctx context.Context, id int64, query string, args ...any) error {
	res, err := p.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update visitor %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNoVisitor
	}
	return nil
}

func (p *SQLProvider) SetApproved(ctx context.Context, id int64) error {
	return p.update(ctx, id, `UPDATE visitors SET approved = 1 WHERE id = ?`, id)
}

func (p *SQLProvider) SetOutTime(ctx context.Context, id int64, out time.Time) error {
	return p.update(ctx, id, `UPDATE visitors SET out_time = ? WHERE id = ?`, out, id)
}

func (p *SQLProvider) SetSecurityConfirmed(ctx context.Context, id int64, out time.Time) error {
	return p.update(ctx, id,
		`UPDATE visitors SET security_confirmed = 1, security_out_time = ? WHERE id = ?`, out, id)
}

func (p *SQLProvider) SetQRCodePath(ctx context.Context, id int64, path string) error {
	return p.update(ctx, id, `UPDATE visitors SET qr_code_path = ? WHERE id = ?`, path, id)
}

func (p *SQLProvider) SetEmailSent(ctx context.Context, id int64, sent bool) error {
	return p.update(ctx, id, `UPDATE visitors SET email_sent = ? WHERE id = ?`, sent, id)
}

func (p *SQLProvider) VisitorStats(ctx context.Context) (*VisitorStats, error) {
	var stats VisitorStats
	err := p.db.GetContext(ctx, &stats, `
		SELECT
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN out_time IS NULL THEN 1 ELSE 0 END), 0) AS active,
			COALESCE(SUM(CASE WHEN out_time IS NOT NULL AND security_confirmed = 1 THEN 1 ELSE 0 END), 0) AS secured,
			COALESCE(SUM(CASE WHEN out_time IS NOT NULL AND security_confirmed = 0 THEN 1 ELSE 0 END), 0) AS security_pending
		FROM visitors`)
	if err != nil {
		return nil, fmt.Errorf("failed to compute visitor stats: %w", err)
	}
	return &stats, nil
}

func (p *SQLProvider) PurgeVisitors(ctx context.Context) (int64, error) {
	res, err := p.db.ExecContext(ctx, `DELETE FROM visitors`)
	if err != nil {
		return 0, fmt.Errorf("failed to purge visitors: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	// Reset the autoincrement sequence so the next visitor gets id 1 again.
	if _, err := p.db.ExecContext(ctx, `DELETE FROM sqlite_sequence WHERE name = 'visitors'`); err != nil {
		p.logger.Warn("Failed to reset visitor id sequence", "error", err)
	}

	return n, nil
}
