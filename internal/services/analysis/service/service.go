// Package service contains the analysis workflow
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"chimera/internal/core/aggregate"
	"chimera/internal/core/authenticity"
	"chimera/internal/core/calibration"
	"chimera/internal/core/lexicon"
	"chimera/internal/core/ngram"
	"chimera/internal/core/normalize"
	"chimera/internal/core/signal"
	"chimera/internal/core/style"
	perr "chimera/internal/platform/errors"
	"chimera/internal/platform/logger"
	"chimera/internal/services/analysis/domain"
)

// Degraded component names reported in signals.degraded
const (
	ComponentNGram        = "ngram"
	ComponentStyle        = "style"
	ComponentAuthenticity = "authenticity"
	ComponentExternal     = "external_detector"
	ComponentWebSearch    = "web_search"
)

const (
	defaultMaxChars        = 50000
	defaultExternalTimeout = 15 * time.Second
)

// Service defines the service contract for analysis
type Service interface{ domain.ServicePort }

// Options configures one Svc
type Options struct {
	MaxChars        int
	ExternalTimeout time.Duration
	Params          calibration.Params
}

// Collaborators are the optional outside parties, nil means absent
type Collaborators struct {
	Detector domain.ExternalDetector
	Search   domain.WebSearcher
	Recorder domain.Recorder
}

type (
	ngramAnalyzer interface{ Analyze(string) ngram.Result }
	styleAnalyzer interface{ Analyze(string) style.Result }
	scorer        interface{ Score(string) authenticity.Result }
)

// Svc implements the Service interface
type Svc struct {
	opts Options

	norm  *normalize.Normalizer
	ngram ngramAnalyzer
	style styleAnalyzer
	auth  scorer
	agg   *aggregate.Aggregator

	neutral authenticity.Result

	detector domain.ExternalDetector
	search   domain.WebSearcher
	rec      domain.Recorder

	now   func() time.Time
	newID func() string
}

// New creates a new analysis service
func New(lex *lexicon.Lexicon, opts Options, c Collaborators) *Svc {
	if lex == nil {
		panic("analysis.Service requires a non nil Lexicon")
	}
	if opts.MaxChars <= 0 {
		opts.MaxChars = defaultMaxChars
	}
	if opts.ExternalTimeout <= 0 {
		opts.ExternalTimeout = defaultExternalTimeout
	}
	auth := authenticity.New(opts.Params.Authenticity, lex)
	return &Svc{
		opts:     opts,
		norm:     normalize.New(),
		ngram:    ngram.New(opts.Params.NGram),
		style:    style.New(opts.Params.Style, lex),
		auth:     auth,
		agg:      aggregate.New(opts.Params),
		neutral:  auth.Neutral(),
		detector: c.Detector,
		search:   c.Search,
		rec:      c.Recorder,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Calibration returns the parameters this service scores with
func (s *Svc) Calibration() calibration.Params { return s.opts.Params }

// Analyze runs the full pipeline over one submission
// only input validation and aggregation failures surface as errors
func (s *Svc) Analyze(ctx context.Context, in domain.AnalyzeInput) (domain.Report, error) {
	if err := s.validate(in.Text); err != nil {
		return domain.Report{}, err
	}

	id := s.newID()
	ctx = logger.WithAnalysis(ctx, id)
	text := s.norm.Prepare(in.Text)

	var (
		ng  ngram.Result
		st  style.Result
		au  authenticity.Result
		ext signal.External
		web signal.Plagiarism

		mu       sync.Mutex
		degraded []string
	)
	note := func(component string) {
		mu.Lock()
		degraded = append(degraded, component)
		mu.Unlock()
	}

	var g errgroup.Group
	g.Go(s.guard(ctx, ComponentNGram, note,
		func() { ng = s.ngram.Analyze(text.Clean) },
		func() { ng = ngram.Failed() }))
	g.Go(s.guard(ctx, ComponentStyle, note,
		func() { st = s.style.Analyze(text.Clean) },
		func() { st = style.Result{} }))
	g.Go(s.guard(ctx, ComponentAuthenticity, note,
		func() { au = s.auth.Score(text.Clean) },
		func() { au = s.neutral }))
	g.Go(s.guard(ctx, ComponentExternal, note,
		func() { ext = s.external(ctx, text.Clean, in.APIKey, note) },
		func() { ext = signal.External{} }))
	g.Go(s.guard(ctx, ComponentWebSearch, note,
		func() { web = s.webSearch(ctx, text.Clean, note) },
		func() { web = signal.Plagiarism{} }))
	_ = g.Wait() // every task recovers and returns nil

	sort.Strings(degraded)

	res, err := s.agg.Aggregate(aggregate.Input{
		Text:         text,
		NGram:        ng,
		Style:        st,
		Authenticity: au,
		External:     ext,
		Web:          web,
		Degraded:     degraded,
	})
	if err != nil {
		return domain.Report{}, perr.Wrap(err, perr.ErrorCodeUnknown, "analysis failed")
	}

	rep := domain.Report{
		ID:        id,
		CreatedAt: s.now().UTC(),
		CharCount: utf8.RuneCountInString(in.Text),
		Result:    res,
	}
	s.record(ctx, rep, text.Clean)
	return rep, nil
}

func (s *Svc) validate(text string) error {
	if strings.TrimSpace(text) == "" {
		return perr.WithField(perr.New(perr.ErrorCodeValidation, "분석할 텍스트를 입력해주세요."), "text")
	}
	if n := utf8.RuneCountInString(text); n > s.opts.MaxChars {
		return perr.WithField(
			perr.Newf(perr.ErrorCodeValidation, "텍스트는 %d자 이하로 입력해주세요. (현재 %d자)", s.opts.MaxChars, n),
			"text",
		)
	}
	return nil
}

// guard runs fn and swaps in fallback when it panics
func (s *Svc) guard(ctx context.Context, component string, note func(string), fn, fallback func()) func() error {
	return func() error {
		defer func() {
			if r := recover(); r != nil {
				logger.C(ctx).Error().
					Str("component", component).
					Interface("panic", r).
					Msg("analysis component failed, using default")
				fallback()
				note(component)
			}
		}()
		fn()
		return nil
	}
}

func (s *Svc) external(ctx context.Context, clean, apiKey string, note func(string)) signal.External {
	if s.detector == nil {
		return signal.External{}
	}
	cctx, cancel := context.WithTimeout(ctx, s.opts.ExternalTimeout)
	defer cancel()

	out, err := s.detector.Detect(cctx, clean, apiKey)
	if err == nil {
		err = out.Validate()
	}
	if err != nil {
		s.fallback(ctx, ComponentExternal, err, note)
		return signal.External{}
	}
	return out
}

func (s *Svc) webSearch(ctx context.Context, clean string, note func(string)) signal.Plagiarism {
	if s.search == nil {
		return signal.Plagiarism{}
	}
	cctx, cancel := context.WithTimeout(ctx, s.opts.ExternalTimeout)
	defer cancel()

	out, err := s.search.Search(cctx, clean)
	if err == nil {
		err = out.Validate()
	}
	if err != nil {
		s.fallback(ctx, ComponentWebSearch, err, note)
		return signal.Plagiarism{}
	}
	return out
}

// fallback logs a collaborator failure
// an unconfigured collaborator is expected and stays quiet
func (s *Svc) fallback(ctx context.Context, component string, err error, note func(string)) {
	if errors.Is(err, signal.ErrNotConfigured) {
		logger.C(ctx).Debug().Str("component", component).Msg("collaborator not configured")
		return
	}
	logger.C(ctx).Warn().Err(err).Str("component", component).Msg("collaborator failed, using zero signal")
	note(component)
}

func (s *Svc) record(ctx context.Context, rep domain.Report, clean string) {
	if s.rec == nil {
		return
	}
	sum := sha256.Sum256([]byte(clean))
	err := s.rec.Record(ctx, domain.Record{
		ID:                   rep.ID,
		CreatedAt:            rep.CreatedAt,
		TextHash:             hex.EncodeToString(sum[:]),
		CharCount:            rep.CharCount,
		PlagiarismRate:       rep.PlagiarismRate,
		AIProbability:        rep.AIProbability,
		AuthenticityScore:    rep.AuthenticityScore,
		ManipulationDetected: rep.ManipulationDetected,
		Message:              rep.Message,
		Degraded:             rep.Signals.Degraded,
	})
	if err != nil {
		logger.C(ctx).Warn().Err(err).Msg("history record failed")
	}
}
