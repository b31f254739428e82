// Package strings checks the names and route prefixes modules are built with
package strings

import (
	"path"
	std "strings"
)

// MustString panics with "<what> is required" when s is blank
func MustString(s, what string) string {
	if std.TrimSpace(s) == "" {
		panic(what + " is required")
	}
	return s
}

// MustPrefix cleans a route prefix to one leading slash and no trailing slash
// "history/", " /history " and "//history//" all give "/history"
// the root itself is not a module prefix and panics
func MustPrefix(s string) string {
	p := path.Clean("/" + std.TrimSpace(s))
	if p == "/" {
		panic("route prefix is required")
	}
	return p
}
