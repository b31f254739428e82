// Package domain holds DTOs for analysis http and service contracts
package domain

import (
	"time"

	"chimera/internal/core/aggregate"
)

// AnalyzeInput is the input for one analysis
type AnalyzeInput struct {
	Text   string `json:"text" example:"나는 지난 여름 할머니 댁에서 처음으로 김치를 담갔다."`
	APIKey string `json:"api_key,omitempty" validate:"omitempty,max=512"`
}

// Report is one finished analysis
type Report struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	CharCount int       `json:"char_count"`
	aggregate.Result
}

// Record is the score-only summary handed to a Recorder
// the submitted text itself is never kept, only its hash
type Record struct {
	ID                   string
	CreatedAt            time.Time
	TextHash             string
	CharCount            int
	PlagiarismRate       int
	AIProbability        float64
	AuthenticityScore    float64
	ManipulationDetected bool
	Message              string
	Degraded             []string
}
