// Package service contains history workflows
package service

import (
	"context"
	"strings"

	"chimera/internal/modkit/repokit"
	perr "chimera/internal/platform/errors"
	"chimera/internal/services/history/domain"
	"chimera/internal/services/history/repo"
)

// Service defines the service contract for history
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New creates a new history service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("history.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("history.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: repokit.MustBind(binder, db), binder: binder, db: db}
}

// EnsureSchema creates the history table when missing
func (s *Svc) EnsureSchema(ctx context.Context) error {
	return repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		return s.binder.Bind(q).EnsureSchema(ctx)
	})
}

// Record stores one entry
func (s *Svc) Record(ctx context.Context, e domain.Entry) error {
	if strings.TrimSpace(e.ID) == "" {
		return perr.WithField(perr.New(perr.ErrorCodeValidation, "id is required"), "id")
	}
	return s.Repo.Insert(ctx, repo.Row{
		ID:                   e.ID,
		CreatedAt:            e.CreatedAt,
		TextHash:             e.TextHash,
		CharCount:            e.CharCount,
		PlagiarismRate:       e.PlagiarismRate,
		AIProbability:        e.AIProbability,
		AuthenticityScore:    e.AuthenticityScore,
		ManipulationDetected: e.ManipulationDetected,
		Message:              e.Message,
		Degraded:             e.Degraded,
	})
}

// Get returns one entry by id
func (s *Svc) Get(ctx context.Context, id string) (domain.Entry, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Entry{}, perr.WithField(perr.New(perr.ErrorCodeValidation, "id is required"), "id")
	}
	r, err := s.Repo.ByID(ctx, id)
	if err != nil {
		return domain.Entry{}, err
	}
	return toEntry(r), nil
}

// Recent lists the newest entries, optionally for one text hash
func (s *Svc) Recent(ctx context.Context, in domain.RecentInput) ([]domain.Entry, error) {
	rows, err := s.Repo.Recent(ctx, strings.ToLower(in.TextHash), in.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Entry, 0, len(rows))
	for _, r := range rows {
		out = append(out, toEntry(r))
	}
	return out, nil
}

func toEntry(r repo.Row) domain.Entry {
	return domain.Entry{
		ID:                   r.ID,
		CreatedAt:            r.CreatedAt,
		TextHash:             r.TextHash,
		CharCount:            r.CharCount,
		PlagiarismRate:       r.PlagiarismRate,
		AIProbability:        r.AIProbability,
		AuthenticityScore:    r.AuthenticityScore,
		ManipulationDetected: r.ManipulationDetected,
		Message:              r.Message,
		Degraded:             r.Degraded,
	}
}
