// ============================================================================
// tabwerk - Robot Framework Testdaten-Werkzeug
// ============================================================================
//
// Package:     recognizer
// Description: Context recognizer contract and the recognizer set
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

// Package recognizer turns the per-line token stream into typed structural
// spans (contexts). Every recognizer is specialised for one construct,
// keeps no state between calls and reports a non-match as an empty result.
package recognizer

import (
	"sort"

	"github.com/msto63/tabwerk/internal/robot/token"
)

// Recognizer scans lines for one structural construct
type Recognizer interface {
	// Name identifies the recognizer in logs and CLI output
	Name() string

	// Recognize returns the ordered, non-overlapping contexts found in
	// lines[iv.Start:iv.End]
	Recognize(lines []*token.Line, iv token.Interval) []*Context
}

// lineFunc recognizes contexts within a single line
type lineFunc func(line *token.Line) []*Context

// eachLine applies fn to every line of the interval
func eachLine(lines []*token.Line, iv token.Interval, fn lineFunc) []*Context {
	iv = iv.Clamp(len(lines))
	var out []*Context
	for i := iv.Start; i < iv.End; i++ {
		out = append(out, fn(lines[i])...)
	}
	return out
}

// Set runs a fixed collection of recognizers over a file of one format
type Set struct {
	format      token.Format
	recognizers []Recognizer
}

// NewSet creates the standard recognizer collection for a file format
func NewSet(format token.Format) *Set {
	rs := []Recognizer{
		NewSettingsTableHeaderRecognizer(),
		NewVariablesTableHeaderRecognizer(),
		NewTestCasesTableHeaderRecognizer(),
		NewKeywordsTableHeaderRecognizer(),
		NewUserTableHeaderRecognizer(),
	}
	rs = append(rs, SettingDeclarationRecognizers(format)...)
	rs = append(rs, ElementSettingRecognizers(format)...)
	rs = append(rs,
		NewScalarVariableRecognizer(),
		NewListVariableRecognizer(),
		NewDictionaryVariableRecognizer(),
		NewEnvironmentVariableRecognizer(),
	)
	if format == token.FormatTsv {
		rs = append(rs, NewTsvSeparatorRecognizer())
	} else {
		rs = append(rs,
			NewTabOrDoubleSpaceSeparatorRecognizer(),
			NewPipeSeparatorRecognizer(),
		)
	}
	rs = append(rs,
		NewHashCommentRecognizer(format),
		NewCommentKeywordRecognizer(format),
		NewForLoopHeaderRecognizer(format),
		NewContinuationRecognizer(format),
		NewQuotedSentenceRecognizer(),
		NewEmptyCellRecognizer(format),
		NewEscapedRecognizer(format),
	)

	return &Set{format: format, recognizers: rs}
}

// Format returns the file format the set was built for
func (s *Set) Format() token.Format {
	return s.format
}

// Recognizers returns the recognizers of the set
func (s *Set) Recognizers() []Recognizer {
	out := make([]Recognizer, len(s.recognizers))
	copy(out, s.recognizers)
	return out
}

// RecognizeLine runs every recognizer on one line. The result is ordered
// by start column. A line without any structural context is covered by
// a single undeclared context.
func (s *Set) RecognizeLine(line *token.Line) []*Context {
	lines := []*token.Line{line}
	iv := token.All(lines)

	var out []*Context
	structural := false
	for _, r := range s.recognizers {
		for _, c := range r.Recognize(lines, iv) {
			if !c.Type.IsLayout() {
				structural = true
			}
			out = append(out, c)
		}
	}

	if !structural && len(line.Tokens) > 0 && !line.IsBlank() {
		out = append(out, newContext(ContextUndeclared, line, 0, len(line.Tokens)))
	}

	sortContexts(out)
	return out
}

// Recognize runs every recognizer over the interval and returns the
// contexts grouped per line index
func (s *Set) Recognize(lines []*token.Line, iv token.Interval) [][]*Context {
	iv = iv.Clamp(len(lines))
	out := make([][]*Context, len(lines))
	for i := iv.Start; i < iv.End; i++ {
		out[i] = s.RecognizeLine(lines[i])
	}
	return out
}

// sortContexts orders contexts by line, start token and length (longest
// first)
func sortContexts(cs []*Context) {
	sort.SliceStable(cs, func(i, j int) bool {
		a, b := cs[i], cs[j]
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.From != b.From {
			return a.From < b.From
		}
		return a.To > b.To
	})
}

// Find returns the first context of the given type, or nil
func Find(cs []*Context, t ContextType) *Context {
	for _, c := range cs {
		if c.Type == t {
			return c
		}
	}
	return nil
}

// StartingAt returns the contexts whose first token has the given index
func StartingAt(cs []*Context, from int) []*Context {
	var out []*Context
	for _, c := range cs {
		if c.From == from {
			out = append(out, c)
		}
	}
	return out
}
