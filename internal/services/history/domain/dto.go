// Package domain holds DTOs for history http and service contracts
package domain

import "time"

// Entry is one recorded analysis, scores only
type Entry struct {
	ID                   string    `json:"id" example:"7f1c2e8a-3b4d-4e5f-9a0b-1c2d3e4f5a6b"`
	CreatedAt            time.Time `json:"created_at"`
	TextHash             string    `json:"text_hash" example:"9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08"`
	CharCount            int       `json:"char_count" example:"1200"`
	PlagiarismRate       int       `json:"plagiarism_rate" example:"12"`
	AIProbability        float64   `json:"ai_probability" example:"0.3"`
	AuthenticityScore    float64   `json:"authenticity_score" example:"0.85"`
	ManipulationDetected bool      `json:"manipulation_detected"`
	Message              string    `json:"message"`
	Degraded             []string  `json:"degraded,omitempty"`
}

// RecentInput filters the recent list
type RecentInput struct {
	Limit    int    `json:"limit,omitempty" validate:"omitempty,min=1,max=200" example:"20"`
	TextHash string `json:"text_hash,omitempty" validate:"omitempty,sha256"`
}
