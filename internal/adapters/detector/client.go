// Package detector is the HTTP client for remote plagiarism/AI detection and web-search services.
// Both speak JSON over POST with bearer auth and are treated as unreliable: callers fall back
// to zero-valued signals on any error returned here
package detector

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"chimera/internal/core/signal"
	perr "chimera/internal/platform/errors"
	"chimera/internal/platform/logger"
)

const (
	defaultTimeout = 15 * time.Second
	defaultUA      = "chimera-detector"
	defaultRPS     = 2.0
	maxBody        = 4 << 20
)

// Options configures the Client
type Options struct {
	// URL is the full endpoint the text is posted to
	// Empty means not configured and every call returns signal.ErrNotConfigured
	URL       string
	APIKey    string
	UserAgent string
	Timeout   time.Duration

	// RPS caps outgoing requests per second, zero means default
	RPS float64
}

// Client is a minimal JSON client with a shared rate limiter
type Client struct {
	http    *http.Client
	opts    Options
	limiter *rate.Limiter
	log     logger.Logger
	now     func() time.Time
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	o.URL = strings.TrimSpace(o.URL)
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.RPS <= 0 {
		o.RPS = defaultRPS
	}
	return &Client{
		http:    &http.Client{Timeout: o.Timeout},
		opts:    o,
		limiter: rate.NewLimiter(rate.Limit(o.RPS), 1),
		log:     *logger.Named("detector"),
		now:     time.Now,
	}
}

// Configured reports whether the client has an endpoint
func (c *Client) Configured() bool { return c.opts.URL != "" }

type request struct {
	Text string `json:"text"`
}

type wireSpan struct {
	Text       string   `json:"text"`
	Source     string   `json:"source"`
	Similarity *float64 `json:"similarity"`
}

type wirePlagiarism struct {
	Rate    *float64   `json:"rate"`
	Matches []wireSpan `json:"matches"`
	Sources []string   `json:"sources"`
}

type wireAI struct {
	Probability *float64 `json:"probability"`
	Reasoning   string   `json:"reasoning"`
}

type wireDetect struct {
	Plagiarism *wirePlagiarism `json:"plagiarism"`
	AI         *wireAI         `json:"ai"`
}

// Detect posts text to the detector and returns both signals
// apiKey overrides the configured key when non-empty
func (c *Client) Detect(ctx context.Context, text, apiKey string) (signal.External, error) {
	key := strings.TrimSpace(apiKey)
	if key == "" {
		key = c.opts.APIKey
	}
	if !c.Configured() || key == "" {
		return signal.External{}, signal.ErrNotConfigured
	}

	var w wireDetect
	if err := c.post(ctx, key, text, &w); err != nil {
		return signal.External{}, err
	}
	if w.Plagiarism == nil || w.AI == nil {
		return signal.External{}, perr.New(perr.ErrorCodeUnavailable, "detector payload missing plagiarism or ai")
	}
	plag, err := w.Plagiarism.toSignal()
	if err != nil {
		return signal.External{}, err
	}
	if w.AI.Probability == nil {
		return signal.External{}, perr.New(perr.ErrorCodeUnavailable, "detector payload missing ai probability")
	}
	ai := signal.AI{Probability: *w.AI.Probability, Reasoning: strings.TrimSpace(w.AI.Reasoning)}
	if err := ai.Validate(); err != nil {
		return signal.External{}, malformed(err)
	}
	return signal.External{Plagiarism: plag, AI: ai}, nil
}

// Search posts text to the web-search endpoint and returns its plagiarism signal
// a search endpoint without a key is allowed
func (c *Client) Search(ctx context.Context, text string) (signal.Plagiarism, error) {
	if !c.Configured() {
		return signal.Plagiarism{}, signal.ErrNotConfigured
	}
	var w wirePlagiarism
	if err := c.post(ctx, c.opts.APIKey, text, &w); err != nil {
		return signal.Plagiarism{}, err
	}
	return w.toSignal()
}

func (w wirePlagiarism) toSignal() (signal.Plagiarism, error) {
	if w.Rate == nil {
		return signal.Plagiarism{}, perr.New(perr.ErrorCodeUnavailable, "detector payload missing plagiarism rate")
	}
	out := signal.Plagiarism{Rate: *w.Rate}
	for _, m := range w.Matches {
		if strings.TrimSpace(m.Text) == "" {
			continue
		}
		span := signal.MatchSpan{Text: m.Text, Source: strings.TrimSpace(m.Source)}
		if m.Similarity != nil {
			span.Similarity = *m.Similarity
		}
		out.Matches = append(out.Matches, span)
	}
	for _, s := range w.Sources {
		if s = strings.TrimSpace(s); s != "" {
			out.Sources = append(out.Sources, s)
		}
	}
	if err := out.Validate(); err != nil {
		return signal.Plagiarism{}, malformed(err)
	}
	return out, nil
}

// malformed marks values outside [0,1], a 0-100 scale is not rescaled
func malformed(err error) error {
	return perr.Wrapf(err, perr.ErrorCodeUnavailable, "detector malformed payload")
}

// post waits on the limiter, sends one request and decodes a 2xx JSON body into out
func (c *Client) post(ctx context.Context, key, text string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "detector rate limiter")
	}

	body, err := json.Marshal(request{Text: text})
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "detector encode request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.URL, bytes.NewReader(body))
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "detector new request failed")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.opts.UserAgent)
	if key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}

	start := c.now()
	resp, err := c.http.Do(req)
	lat := c.now().Sub(start)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "detector do failed")
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug().
		Str("url", c.opts.URL).
		Int("status", resp.StatusCode).
		Dur("latency", lat).
		Msg("detector http response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// read a small tail for diagnostics then return
		tail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		code := perr.ErrorCodeUnavailable
		if resp.StatusCode == http.StatusTooManyRequests {
			code = perr.ErrorCodeTooManyRequests
		}
		return perr.Newf(code, "detector unexpected status %d body %s", resp.StatusCode, strings.TrimSpace(string(tail)))
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(out); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "detector malformed payload")
	}
	return nil
}
