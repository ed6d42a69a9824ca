// Package counterstore is the counter collaborator described by spec.md
// §5 and §9 ("Counter state"): a small key/value store of monotonically
// increasing integers, one per counter scope. The core compiler never
// writes to it — only Peek (snapshot reads during macro resolution) and
// Commit (applied once per successful print) are exposed, and Commit is
// never called by render.
//
// Grounded on mattcburns-shoal-provision/internal/provisioner/store/store.go:
// same pragma-laden SQLite DSN (busy_timeout, WAL, foreign_keys,
// synchronous=NORMAL), same ErrNotFound-style sentinel-free Peek (scope
// with no rows yet simply reads as zero), same ping-on-Open shape.
package counterstore

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const defaultBusyTimeout = 5 * time.Second

// ScopeKind names one of the six counter scopes spec.md §9 enumerates.
type ScopeKind string

const (
	ScopeGlobal         ScopeKind = "global"
	ScopeDaily          ScopeKind = "daily"
	ScopePrinter        ScopeKind = "printer"
	ScopePrinterDaily   ScopeKind = "printer_daily"
	ScopeTemplate       ScopeKind = "template"
	ScopeTemplateDaily  ScopeKind = "template_daily"
)

// Scope identifies one independently incrementing counter. Date must be
// set (as "YYYY-MM-DD" in the configured timezone) for the two "daily"
// scope kinds and is ignored otherwise.
type Scope struct {
	Kind         ScopeKind
	PrinterID    string
	TemplateName string
	Date         string
}

// Key returns the storage row key for this scope.
func (s Scope) Key() string {
	switch s.Kind {
	case ScopeGlobal:
		return "global"
	case ScopeDaily:
		return "daily|" + s.Date
	case ScopePrinter:
		return "printer|" + s.PrinterID
	case ScopePrinterDaily:
		return "printer|" + s.PrinterID + "|" + s.Date
	case ScopeTemplate:
		return "template|" + s.TemplateName
	case ScopeTemplateDaily:
		return "template|" + s.TemplateName + "|" + s.Date
	default:
		return "unknown|" + string(s.Kind)
	}
}

// Store is the counter collaborator contract.
type Store interface {
	// Peek returns the current value of scope without incrementing it. A
	// scope that has never been committed reads as zero.
	Peek(ctx context.Context, scope Scope) (int64, error)
	// Commit atomically increments scope and returns the new value. Only
	// the print path calls this, and only after a successful submission.
	Commit(ctx context.Context, scope Scope) (int64, error)
	Close() error
}

// SQLiteStore is the reference Store backed by modernc.org/sqlite (a
// pure-Go driver, avoiding a cgo sqlite3 dependency — consistent with the
// rest of this module, which never uses cgo).
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (or creates) a SQLite counters database at path.
func Open(ctx context.Context, path string) (*SQLiteStore, error) {
	dsn := fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)",
		path, int(defaultBusyTimeout.Milliseconds()),
	)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open counters db: %w", err)
	}
	db.SetConnMaxLifetime(0)
	db.SetMaxIdleConns(2)
	db.SetMaxOpenConns(4)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping counters db: %w", err)
	}
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS counters (
			scope TEXT PRIMARY KEY,
			value INTEGER NOT NULL
		)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate counters db: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Peek(ctx context.Context, scope Scope) (int64, error) {
	var value int64
	err := s.db.QueryRowContext(ctx, `SELECT value FROM counters WHERE scope = ?`, scope.Key()).Scan(&value)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("peek counter %q: %w", scope.Key(), err)
	}
	return value, nil
}

func (s *SQLiteStore) Commit(ctx context.Context, scope Scope) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var value int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO counters (scope, value) VALUES (?, 1)
		ON CONFLICT(scope) DO UPDATE SET value = value + 1
		RETURNING value`, scope.Key()).Scan(&value)
	if err != nil {
		return 0, fmt.Errorf("commit counter %q: %w", scope.Key(), err)
	}
	return value, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }
