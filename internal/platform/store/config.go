package store

import "time"

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG     PGConfig
	SQLite SQLiteConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// boot ping loop, zero picks the defaults (20 attempts, 3s per ping)
	ConnectRetries int
	PingTimeout    time.Duration
}

// SQLiteConfig configures the embedded sqlite database
type SQLiteConfig struct {
	Enabled     bool
	DSN         string // empty means :memory:
	LogSQL      bool
	SlowQueryMs int
}
