package modkit

import (
	"chimera/internal/modkit/repokit"
	"chimera/internal/platform/config"
)

// Deps is what every module constructor receives
// a store seam is nil when HISTORY_DRIVER did not open it
type Deps struct {
	Cfg  config.Conf
	PG   repokit.TxRunner
	Lite repokit.TxRunner // embedded sqlite, ? placeholders
}

