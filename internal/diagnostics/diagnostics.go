package diagnostics

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/bencare/bencare/pkg/logging"
)

// Database is the subset of pgxpool.Pool the checker needs; pgxmock
// satisfies it in tests.
type Database interface {
	Ping(ctx context.Context) error
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const checkTimeout = 5 * time.Second

// Report is the outcome of a connectivity probe.
type Report struct {
	Connected bool  `json:"connected"`
	UserCount int64 `json:"user_count"`
}

// Checker probes database connectivity for health endpoints and the
// dbcheck console script.
type Checker struct {
	db     Database
	logger *logging.Logger
}

// NewChecker creates a connectivity checker.
func NewChecker(db Database, logger *logging.Logger) *Checker {
	if db == nil {
		panic("diagnostics: database required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Checker{db: db, logger: logger}
}

// CheckConnection pings the database and runs one bounded query. Failures
// are reported as a disconnected state, never as an error to the caller.
func (c *Checker) CheckConnection(ctx context.Context) *Report {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	if err := c.db.Ping(ctx); err != nil {
		c.logger.Error("database ping failed", "error", err)
		return &Report{Connected: false}
	}

	report := &Report{Connected: true}
	if err := c.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&report.UserCount); err != nil {
		c.logger.Error("database probe query failed", "error", err)
		report.Connected = false
	}
	return report
}

// ListTables returns the public tables, alphabetically. The dbcheck script
// prints them so a broken migration is visible at a glance.
func (c *Checker) ListTables(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	rows, err := c.db.Query(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
		ORDER BY table_name
	`)
	if err != nil {
		return nil, fmt.Errorf("diagnostics: list tables failed: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("diagnostics: scan table name failed: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("diagnostics: list tables failed: %w", err)
	}
	return tables, nil
}
