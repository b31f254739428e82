// Package version reports the build version of the chimera binaries
package version

import "runtime/debug"

// set with -ldflags "-X chimera/internal/core/version.version=v0.1.0 -X ...commit=abcd"
var (
	service = "chimera"
	version = "dev"
	commit  = ""
	date    = ""
)

// BuildInfo is served by /meta/version
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Dirty   bool   `json:"dirty,omitempty"`
}

// readBuild is swapped in tests
var readBuild = debug.ReadBuildInfo

// Info prefers ldflags values and falls back to the vcs stamp go build embeds
func Info() BuildInfo {
	bi := BuildInfo{Service: service, Version: version, Commit: commit, Date: date}
	if info, ok := readBuild(); ok {
		for _, s := range info.Settings {
			switch {
			case s.Key == "vcs.revision" && bi.Commit == "":
				bi.Commit = s.Value
			case s.Key == "vcs.time" && bi.Date == "":
				bi.Date = s.Value
			case s.Key == "vcs.modified":
				bi.Dirty = s.Value == "true"
			}
		}
	}
	if bi.Commit == "" {
		bi.Commit = "none"
	}
	if bi.Date == "" {
		bi.Date = "unknown"
	}
	return bi
}

// Short is the one line form printed by the cli
func Short() string {
	bi := Info()
	rev := bi.Commit
	if len(rev) > 12 {
		rev = rev[:12]
	}
	if bi.Dirty {
		rev += "+dirty"
	}
	return bi.Service + " " + bi.Version + " (" + rev + ")"
}
