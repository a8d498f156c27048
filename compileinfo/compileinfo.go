// Package compileinfo reports how the running binary was built, for the
// provenance line every tool prints at startup.
package compileinfo

import (
	"fmt"
	"os"
	"runtime/debug"
)

type CompileInfo struct {
	Package    string
	GoVersion  string
	Commit     string
	CommitTime string
	Modified   bool
}

func (c CompileInfo) String() string {
	dirty := ""
	if c.Modified {
		dirty = " (working tree was dirty)"
	}

	return fmt.Sprintf("%s built with %s from commit %s at %s%s", c.Package, c.GoVersion, c.Commit, c.CommitTime, dirty)
}

// Short renders just the commit, for the report's software line.
func (c CompileInfo) Short() string {
	if c.Commit == "" {
		return "unknown"
	}
	commit := c.Commit
	if len(commit) > 12 {
		commit = commit[:12]
	}
	if c.Modified {
		return commit + "-dirty"
	}
	return commit
}

func Get() CompileInfo {
	out := CompileInfo{}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}

	out.GoVersion = info.GoVersion
	out.Package = info.Path
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.CommitTime = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}

	return out
}

func PrintToStdErr() {
	fmt.Fprintf(os.Stderr, "%s\n", Get())
}
