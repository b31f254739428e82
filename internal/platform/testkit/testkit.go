// Package testkit holds the assertions and seam helpers shared by package tests
package testkit

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// seams serialises tests that rewrite package-level variables
var seams sync.Mutex

// Swap replaces *target for the rest of the test
func Swap[T any](tb testing.TB, target *T, repl T) {
	tb.Helper()
	prev := *target
	*target = repl
	tb.Cleanup(func() { *target = prev })
}

// Serial holds the seam lock until the test ends
func Serial(tb testing.TB) {
	tb.Helper()
	seams.Lock()
	tb.Cleanup(seams.Unlock)
}

func recovered(fn func()) (r any) {
	defer func() { r = recover() }()
	fn()
	return nil
}

// MustPanic fails unless fn panics
func MustPanic(tb testing.TB, fn func()) {
	tb.Helper()
	if recovered(fn) == nil {
		tb.Fatal("expected panic, got none")
	}
}

// MustNotPanic fails when fn panics
func MustNotPanic(tb testing.TB, fn func()) {
	tb.Helper()
	if r := recovered(fn); r != nil {
		tb.Fatalf("unexpected panic: %v", r)
	}
}

// MustContain fails on the first needle missing from haystack
// long haystacks are dumped to a temp file instead of the test log
func MustContain(tb testing.TB, haystack string, needles ...string) {
	tb.Helper()
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			continue
		}
		if len(haystack) <= 512 {
			tb.Fatalf("missing %q in:\n%s", n, haystack)
		}
		dump := filepath.Join(tb.TempDir(), "haystack.txt")
		_ = os.WriteFile(dump, []byte(haystack), 0o600)
		tb.Fatalf("missing %q, full output in %s", n, dump)
	}
}
