// Package sqlite provides an embedded SQLite client on database/sql using the pure Go modernc driver
package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	// registers the "sqlite" driver
	_ "modernc.org/sqlite"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite
const DriverName = "sqlite"

// Config configures the sqlite handle
type Config struct {
	DSN    string // file path, file: URI or :memory:
	SlowMs int
}

// Lite is a sqlite client with optional slow query threshold
type Lite struct {
	DB     *sql.DB
	SlowMs int
}

var openDB = sql.Open

// pragmas applied once after open
var pragmas = []string{
	"PRAGMA foreign_keys = ON",
	"PRAGMA busy_timeout = 5000",
}

// Open opens and pings a sqlite database
// a single connection is kept so :memory: databases survive between queries
func Open(ctx context.Context, cfg Config) (*Lite, error) {
	dsn := DSN(cfg.DSN)
	db, err := openDB(DriverName, dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	stmts := pragmas
	if !strings.Contains(dsn, ":memory:") {
		stmts = append(stmts[:len(stmts):len(stmts)], "PRAGMA journal_mode = WAL")
	}
	for _, p := range stmts {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return &Lite{DB: db, SlowMs: cfg.SlowMs}, nil
}

// DSN fills in the in-memory default
func DSN(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ":memory:"
	}
	return s
}

// Slow reports whether elapsed crosses the configured threshold
func (l *Lite) Slow(elapsed time.Duration) bool {
	return l != nil && l.SlowMs >= 0 && elapsed >= time.Duration(l.SlowMs)*time.Millisecond
}

// Close closes the database
func (l *Lite) Close() error {
	if l == nil || l.DB == nil {
		return nil
	}
	return l.DB.Close()
}
