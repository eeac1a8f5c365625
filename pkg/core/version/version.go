// ============================================================================
// tabwerk - Robot Framework Testdaten-Werkzeug
// ============================================================================
//
// Package:     version
// Description: Central version management for the tools and their parts
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants of tabwerk and its components
const (
	// Platform version
	Platform = "0.1.0"

	// Component versions
	Parser = "0.1.0"
	Dumper = "0.1.0"
	Index  = "0.1.0"
	Viewer = "0.1.0"
)

// Set by the linker
var (
	GitCommit = "development"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "parser":
		return Parser
	case "dumper":
		return Dumper
	case "index":
		return Index
	case "viewer":
		return Viewer
	default:
		return Platform
	}
}

// Info describes the running binary
type Info struct {
	Version   string
	GitCommit string
	BuildDate string
	GoVersion string
	Platform  string
}

// Get returns the build information
func Get() Info {
	return Info{
		Version:   Platform,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String renders the information in the layout of "tabwerk version"
func (i Info) String() string {
	return fmt.Sprintf("tabwerk v%s\n  Git Commit: %s\n  Build Date: %s\n  Go Version: %s\n  OS/Arch:    %s\n",
		i.Version, i.GitCommit, i.BuildDate, i.GoVersion, i.Platform)
}
