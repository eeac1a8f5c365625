package version

import (
	"regexp"
	"runtime"
	"strings"
	"testing"
)

// semverRegex validates semantic versioning format
var semverRegex = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

func TestVersionConstants(t *testing.T) {
	tests := []struct {
		name    string
		version string
	}{
		{"Platform", Platform},
		{"Parser", Parser},
		{"Dumper", Dumper},
		{"Index", Index},
		{"Viewer", Viewer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !semverRegex.MatchString(tt.version) {
				t.Errorf("%s version %q does not match semver format (x.y.z)", tt.name, tt.version)
			}
		})
	}
}

func TestComponentVersion(t *testing.T) {
	tests := []struct {
		name      string
		component string
		expected  string
	}{
		{"parser", "parser", Parser},
		{"dumper", "dumper", Dumper},
		{"index", "index", Index},
		{"viewer", "viewer", Viewer},
		{"unknown component", "unknown", Platform},
		{"empty component", "", Platform},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := ComponentVersion(tt.component); result != tt.expected {
				t.Errorf("ComponentVersion(%q) = %q, want %q", tt.component, result, tt.expected)
			}
		})
	}
}

func TestGet(t *testing.T) {
	info := Get()
	if info.Version != Platform {
		t.Errorf("Version = %q, want %q", info.Version, Platform)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %q", info.GoVersion)
	}

	s := info.String()
	for _, want := range []string{"tabwerk v" + Platform, "Git Commit: " + GitCommit, runtime.GOOS + "/" + runtime.GOARCH} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}
