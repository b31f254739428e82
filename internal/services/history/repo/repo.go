// Package repo provides postgres and sqlite access for analysis history
package repo

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"chimera/internal/modkit/repokit"
	perr "chimera/internal/platform/errors"
	"chimera/internal/platform/store"
)

// Repo defines the repository contract for history
type Repo interface {
	EnsureSchema(ctx context.Context) error
	Insert(ctx context.Context, row Row) error
	ByID(ctx context.Context, id string) (Row, error)
	Recent(ctx context.Context, textHash string, limit int) ([]Row, error)
}

// Row is one history row
type Row struct {
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

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	// SQLite implements the Repo interface using the embedded database
	SQLite struct{}

	// queries holds the database query methods
	queries struct {
		q      repokit.Queryer
		schema string
	}
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// NewSQLite creates a new sqlite repository binder
func NewSQLite() repokit.Binder[Repo] { return SQLite{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q, schema: schemaPG} }

// Bind binds a sqlite queryer, queries are written with $n and rebound to ?
func (SQLite) Bind(q repokit.Queryer) Repo {
	return &queries{q: repokit.Positional(q), schema: schemaSQLite}
}

// created_at is unix milliseconds in both dialects so every query is shared
// the advisory lock serializes replicas racing on first boot
const schemaPG = `
select pg_advisory_xact_lock(hashtext('analysis_history'));
create table if not exists analysis_history (
	id text primary key,
	created_at bigint not null,
	text_hash text not null,
	char_count integer not null,
	plagiarism_rate integer not null,
	ai_probability double precision not null,
	authenticity_score double precision not null,
	manipulation_detected boolean not null,
	message text not null,
	degraded text not null default ''
);
create index if not exists analysis_history_created_idx on analysis_history (created_at desc);
create index if not exists analysis_history_hash_idx on analysis_history (text_hash);
`

const schemaSQLite = `
create table if not exists analysis_history (
	id text primary key,
	created_at integer not null,
	text_hash text not null,
	char_count integer not null,
	plagiarism_rate integer not null,
	ai_probability real not null,
	authenticity_score real not null,
	manipulation_detected integer not null,
	message text not null,
	degraded text not null default ''
);
create index if not exists analysis_history_created_idx on analysis_history (created_at desc);
create index if not exists analysis_history_hash_idx on analysis_history (text_hash);
`

const columns = `id, created_at, text_hash, char_count, plagiarism_rate, ai_probability,
authenticity_score, manipulation_detected, message, degraded`

func (r *queries) EnsureSchema(ctx context.Context) error {
	for _, stmt := range strings.Split(r.schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := r.q.Exec(ctx, stmt); err != nil {
			return perr.FromDB(err, "history schema")
		}
	}
	return nil
}

func (r *queries) Insert(ctx context.Context, row Row) error {
	sql := `insert into analysis_history (` + columns + `)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	err := store.ExecOne(ctx, r.q, sql,
		row.ID,
		row.CreatedAt.UnixMilli(),
		row.TextHash,
		row.CharCount,
		row.PlagiarismRate,
		row.AIProbability,
		row.AuthenticityScore,
		row.ManipulationDetected,
		row.Message,
		strings.Join(row.Degraded, ","),
	)
	if err != nil {
		return perr.FromDB(err, "history insert")
	}
	return nil
}

func (r *queries) ByID(ctx context.Context, id string) (Row, error) {
	sql := `select ` + columns + ` from analysis_history where id = $1`
	out, err := store.One(ctx, r.q, scanRow, sql, id)
	if isNoRows(err) {
		return Row{}, perr.NotFoundf("history entry %s not found", id)
	}
	if err != nil {
		return Row{}, perr.FromDB(err, "history by id")
	}
	return out, nil
}

func (r *queries) Recent(ctx context.Context, textHash string, limit int) ([]Row, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	sql := `select ` + columns + ` from analysis_history
where ($1 = '' or text_hash = $1)
order by created_at desc, id
limit $2`
	out, err := store.Many(ctx, r.q, scanRow, sql, textHash, limit)
	if err != nil {
		return nil, perr.FromDB(err, "history recent")
	}
	return out, nil
}

func scanRow(s store.Row) (Row, error) {
	var (
		rr       Row
		millis   int64
		degraded string
	)
	if err := s.Scan(
		&rr.ID,
		&millis,
		&rr.TextHash,
		&rr.CharCount,
		&rr.PlagiarismRate,
		&rr.AIProbability,
		&rr.AuthenticityScore,
		&rr.ManipulationDetected,
		&rr.Message,
		&degraded,
	); err != nil {
		return Row{}, err
	}
	rr.CreatedAt = time.UnixMilli(millis).UTC()
	if degraded != "" {
		rr.Degraded = strings.Split(degraded, ",")
	}
	return rr, nil
}

func isNoRows(err error) bool {
	return errors.Is(err, perr.ErrNotFound) || errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows)
}
