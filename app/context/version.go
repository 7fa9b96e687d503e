package context

import (
	"fmt"
	"runtime/debug"
)

// VersionInfo contains the application version metadata embedded by the Go
// toolchain at build time.
type VersionInfo struct {
	Semantic string
	Commit   string
	Dirty    bool
}

// GetVersion returns the application version metadata.
func GetVersion() (*VersionInfo, error) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return nil, fmt.Errorf("failed reading build information")
	}

	v := &VersionInfo{Semantic: info.Main.Version}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			v.Commit = setting.Value
		case "vcs.modified":
			v.Dirty = setting.Value == "true"
		}
	}

	return v, nil
}

// String returns the human-readable version string.
func (v *VersionInfo) String() string {
	out := v.Semantic
	if out == "" || out == "(devel)" {
		out = "devel"
	}
	if v.Commit != "" {
		commit := v.Commit
		if len(commit) > 8 {
			commit = commit[:8]
		}
		out = fmt.Sprintf("%s (%s)", out, commit)
	}
	if v.Dirty {
		out += " dirty"
	}

	return out
}
