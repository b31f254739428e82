package module

import (
	"chimera/internal/platform/config"
	"chimera/internal/platform/store"
)

// History drivers
const (
	DriverNone   = "none"
	DriverSQLite = "sqlite"
	DriverPG     = "pg"
)

// Options selects the history backend
type Options struct {
	Driver   string // none, sqlite or pg
	DSN      string // sqlite path or postgres url
	MaxConns int
	SlowMs   int
	LogSQL   bool
}

// FromConfig reads HISTORY_* values from process config/env
// the pg driver panics without an absolute HISTORY_DSN url
func FromConfig(cfg config.Conf) Options {
	hc := cfg.Prefix("HISTORY_")
	o := Options{
		Driver:   hc.MayEnum("DRIVER", DriverNone, DriverNone, DriverSQLite, DriverPG),
		MaxConns: hc.MayInt("MAX_CONNS", 4),
		SlowMs:   hc.MayInt("SLOW_MS", 500),
		LogSQL:   hc.MayBool("LOG_SQL", false),
	}
	switch o.Driver {
	case DriverPG:
		o.DSN = hc.MustURL("DSN").String()
	case DriverSQLite:
		o.DSN = hc.MayString("DSN", "")
	}
	return o
}

// Enabled reports whether a history backend was selected
func (o Options) Enabled() bool { return o.Driver == DriverSQLite || o.Driver == DriverPG }

// StoreConfig returns the store backends the selected driver needs
func (o Options) StoreConfig(appName string) store.Config {
	cfg := store.Config{AppName: appName}
	switch o.Driver {
	case DriverSQLite:
		cfg.SQLite = store.SQLiteConfig{
			Enabled:     true,
			DSN:         o.DSN,
			LogSQL:      o.LogSQL,
			SlowQueryMs: o.SlowMs,
		}
	case DriverPG:
		cfg.PG = store.PGConfig{
			Enabled:     true,
			URL:         o.DSN,
			MaxConns:    int32(max(o.MaxConns, 1)),
			LogSQL:      o.LogSQL,
			SlowQueryMs: o.SlowMs,
		}
	}
	return cfg
}
