// ============================================================================
// tabwerk - Robot Framework Testdaten-Werkzeug
// ============================================================================
//
// Package:     sectionviewer
// Description: Message types for async operations in the section viewer
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package sectionviewer

import (
	"github.com/msto63/tabwerk/internal/index"
)

// fileLoadedMsg is sent when the file was read and sectioned
type fileLoadedMsg struct {
	format  string
	lines   []string
	entries []index.Entry
	err     error
}
