// Package raw reads bootstrap settings before the logger exists
// it must not import the logger
package raw

import (
	"os"
	"strconv"
	"strings"
)

// Conf is a prefixed view over the environment, e.g. "LOG_"
type Conf struct{ prefix string }

func New() Conf { return Conf{} }

func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) value(key string) string {
	return strings.TrimSpace(os.Getenv(c.prefix + key))
}

// Get returns the trimmed value or def when blank
func (c Conf) Get(key, def string) string {
	if v := c.value(key); v != "" {
		return v
	}
	return def
}

// GetBool treats 1, true, yes and on as true, anything else set as false
func (c Conf) GetBool(key string, def bool) bool {
	switch v := strings.ToLower(c.value(key)); v {
	case "":
		return def
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// GetInt returns def unless the value is a plain non-negative integer
func (c Conf) GetInt(key string, def int) int {
	v := c.value(key)
	if v == "" || strings.ContainsAny(v, "+-") {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
