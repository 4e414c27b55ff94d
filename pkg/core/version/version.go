// ============================================================================
// mdwloc - Localization Compiler and Runtime
// ============================================================================
//
// Package:     version
// Description: Central version management for the compiler and runtime
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Version constants for all mdwloc components
const (
	// Tool version
	Tool = "1.0.0"

	// Component versions
	Compiler = "1.0.0"
	Runtime  = "1.0.0"

	// FormatVersion is the definition document format understood by the parser
	FormatVersion = "v1"
)

// Set at build time via -ldflags "-X ..."
var (
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "compiler":
		return Compiler
	case "runtime":
		return Runtime
	default:
		return Tool
	}
}

// Info describes the running binary
type Info struct {
	Version   string `json:"version"`
	Compiler  string `json:"compiler"`
	Runtime   string `json:"runtime"`
	Format    string `json:"format"`
	GitCommit string `json:"git_commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the version information of the running binary. The commit
// falls back to the VCS revision recorded by the Go toolchain.
func Get() Info {
	commit := GitCommit
	if commit == "unknown" {
		if info, ok := debug.ReadBuildInfo(); ok {
			for _, setting := range info.Settings {
				if setting.Key == "vcs.revision" && len(setting.Value) >= 7 {
					commit = setting.Value[:7]
				}
			}
		}
	}

	return Info{
		Version:   Tool,
		Compiler:  Compiler,
		Runtime:   Runtime,
		Format:    FormatVersion,
		GitCommit: commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}
