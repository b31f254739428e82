package module

import (
	"time"

	"chimera/internal/platform/config"
)

// Options controls analysis limits and the remote collaborators
type Options struct {
	MaxChars        int
	CalibrationFile string // empty means built-in defaults
	ExternalTimeout time.Duration

	// remote detector
	DetectorURL string
	DetectorKey string
	DetectorRPS float64

	// web search, optional
	SearchURL string
	SearchKey string
}

// FromConfig reads ANALYSIS_*, DETECTOR_* and SEARCH_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	ac := cfg.Prefix("ANALYSIS_")
	dc := cfg.Prefix("DETECTOR_")
	sc := cfg.Prefix("SEARCH_")
	return Options{
		MaxChars:        ac.MayInt("MAX_CHARS", 50000),
		CalibrationFile: ac.MayString("CALIBRATION_FILE", ""),
		ExternalTimeout: ac.MayDuration("EXTERNAL_TIMEOUT", 15*time.Second),
		DetectorURL:     dc.MayString("URL", ""),
		DetectorKey:     dc.MayString("API_KEY", ""),
		DetectorRPS:     dc.MayFloat64("RPS", 2),
		SearchURL:       sc.MayString("URL", ""),
		SearchKey:       sc.MayString("API_KEY", ""),
	}
}
