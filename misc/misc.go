// Package misc provides program identity helpers shared by all commands.
package misc

import (
	"runtime/debug"
)

var (
	appName = "bbld"
	version = "dev"
	gitHash = "unknown"
)

// GetAppName returns short program name used for logs, temporary files and reports.
func GetAppName() string {
	return appName
}

// GetVersion returns program version. When built from a module-aware
// checkout the value recorded by the Go toolchain wins over the default.
func GetVersion() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return version
}

// GetGitHash returns VCS revision recorded at build time.
func GetGitHash() string {
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				if len(s.Value) > 12 {
					return s.Value[:12]
				}
				return s.Value
			}
		}
	}
	return gitHash
}
