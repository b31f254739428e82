// Package config reads namespaced settings from the environment
package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"chimera/internal/platform/logger"
)

// Conf is a view over environment variables sharing a prefix, e.g. "CHIMERA_API_"
type Conf struct{ prefix string }

// New returns the unprefixed root view
func New() Conf { return Conf{} }

// Prefix narrows the view, prefixes compose left to right
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) key(k string) string { return c.prefix + k }

// lookup returns the trimmed value and whether it is non-empty
func (c Conf) lookup(k string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(c.key(k)))
	return v, v != ""
}

// may parses key with parse, an unparsable value is logged and def wins
func may[T any](c Conf, key string, def T, kind string, parse func(string) (T, error)) T {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().
			Str("key", c.key(key)).
			Str("value", s).
			Interface("default", def).
			Msgf("invalid %s, using default", kind)
		return def
	}
	return v
}

// MustString panics when key is unset or blank
func (c Conf) MustString(key string) string {
	v, ok := c.lookup(key)
	if !ok {
		logger.Get().Panic().Str("key", c.key(key)).Msg("missing required env")
	}
	return v
}

// MustURL panics unless key holds an absolute URL
func (c Conf) MustURL(key string) *url.URL {
	s := c.MustString(key)
	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() {
		logger.Get().Panic().Str("key", c.key(key)).Str("value", s).Msg("invalid absolute URL")
	}
	return u
}

// MayString returns def when key is unset or blank
func (c Conf) MayString(key, def string) string {
	if v, ok := c.lookup(key); ok {
		return v
	}
	return def
}

func (c Conf) MayInt(key string, def int) int {
	return may(c, key, def, "int", strconv.Atoi)
}

func (c Conf) MayFloat64(key string, def float64) float64 {
	return may(c, key, def, "float64", func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
}

func (c Conf) MayBool(key string, def bool) bool {
	return may(c, key, def, "bool", strconv.ParseBool)
}

func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, "duration", time.ParseDuration)
}

// MayCSV splits a comma list, dropping blank items
// def is returned when nothing survives
func (c Conf) MayCSV(key string, def []string) []string {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	var out []string
	for p := range strings.SplitSeq(s, ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns the allowed spelling matching the value, ignoring case
// an empty def with an unset key yields "", anything else unknown panics
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.MayString(key, def)
	if v == "" {
		return v
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return a
		}
	}
	logger.Get().Panic().Str("key", c.key(key)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}
