package domain

import (
	"context"

	"chimera/internal/core/calibration"
	"chimera/internal/core/signal"
)

// ExternalDetector is a remote plagiarism and AI detection collaborator
// it returns signal.ErrNotConfigured when no endpoint or key is available
type ExternalDetector interface {
	Detect(ctx context.Context, text, apiKey string) (signal.External, error)
}

// WebSearcher is an optional second plagiarism source
type WebSearcher interface {
	Search(ctx context.Context, text string) (signal.Plagiarism, error)
}

// Recorder persists finished analyses
type Recorder interface {
	Record(ctx context.Context, rec Record) error
}

// ServicePort defines the service contract for analysis
type ServicePort interface {
	Analyze(ctx context.Context, in AnalyzeInput) (Report, error)
	Calibration() calibration.Params
}
