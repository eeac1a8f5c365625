// ============================================================================
// tabwerk - Robot Framework Testdaten-Werkzeug
// ============================================================================
//
// Package:     dumper
// Description: Serializes a document model back into test data text
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

// Package dumper turns a model.File back into lines of text. Unchanged
// parts of a parsed file are copied from the source lines; changed or new
// elements are rendered again with separators that fit the line they end
// up on.
package dumper

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/msto63/tabwerk/internal/robot/model"
	"github.com/msto63/tabwerk/internal/robot/section"
	"github.com/msto63/tabwerk/internal/robot/token"
	"github.com/msto63/tabwerk/pkg/core/logging"
)

// EmptyCell is the placeholder written for an empty value that would
// otherwise vanish
const EmptyCell = `\`

// DefaultSeparator is used when neither the source nor the options name
// a separator
const DefaultSeparator = "\t"

// Options configures the dumper
type Options struct {
	// PreferredSeparator is used for new cells when the line offers no
	// separator to reuse
	PreferredSeparator string

	// LineEnding overrides the line terminator of the file for new lines
	LineEnding string

	// Placeholder replaces EmptyCell
	Placeholder string

	// Normalize sorts all settings by category and ignores the source
	// separators of changed lines
	Normalize bool

	// WrapAfter starts a continuation line after that many cells of new
	// content; 0 disables wrapping
	WrapAfter int

	Logger *logging.Logger
}

// Engine dumps files of one format
type Engine struct {
	format token.Format
	opts   Options
	logger *logging.Logger
}

func newEngine(format token.Format, opts Options) *Engine {
	if opts.Placeholder == "" {
		opts.Placeholder = EmptyCell
	}
	return &Engine{
		format: format,
		opts:   opts,
		logger: logging.OrDiscard(opts.Logger).With("component", "dumper", "format", format.String()),
	}
}

// NewTxt creates the dumper for .robot and .txt files
func NewTxt(opts Options) *Engine {
	return newEngine(token.FormatTxt, opts)
}

// NewTsv creates the dumper for .tsv files
func NewTsv(opts Options) *Engine {
	return newEngine(token.FormatTsv, opts)
}

// ForFile picks the dumper by file extension
func ForFile(name string, opts Options) *Engine {
	if token.FormatForFile(name) == token.FormatTsv {
		return NewTsv(opts)
	}
	return NewTxt(opts)
}

// Format returns the file format the engine writes
func (e *Engine) Format() token.Format {
	return e.format
}

// Lines is the dumped file, one model line per output line
type Lines []*model.Line

// String concatenates the lines with their terminators
func (ls Lines) String() string {
	var sb strings.Builder
	for _, l := range ls {
		sb.WriteString(l.Raw())
	}
	return sb.String()
}

// Dump renders f. The error is a *RepositionError when the settings
// sub-lists no longer match the settings, or a *section.ContractError
// when the source lines cannot be sectioned.
func (e *Engine) Dump(f *model.File) (Lines, error) {
	runID := uuid.NewString()
	e.logger.Debug("dump started", "file", f.Name, "run_id", runID)

	sections, _, err := section.BuildLines(f.Source, f.Format)
	if err != nil {
		return nil, errors.Wrapf(err, "dump %s", f.Name)
	}

	settings, err := orderSettings(f.Settings, e.opts.Normalize)
	if err != nil {
		e.logger.Warn("dump failed", "file", f.Name, "run_id", runID, "error", err)
		return nil, errors.WithStack(err)
	}

	d := &dump{
		e:      e,
		f:      f,
		out:    &output{eol: e.lineEnding(f)},
		curSrc: -1,
	}
	for _, s := range plan(f, sections, settings) {
		d.slot(s)
	}
	d.newLineBoundary()
	d.out.finish()

	e.logger.Debug("dump finished", "file", f.Name, "run_id", runID, "lines", len(d.out.lines))
	return d.out.lines, nil
}

// DumpString renders f as text
func (e *Engine) DumpString(f *model.File) (string, error) {
	lines, err := e.Dump(f)
	if err != nil {
		return "", err
	}
	return lines.String(), nil
}

func (e *Engine) lineEnding(f *model.File) string {
	switch {
	case e.opts.LineEnding != "":
		return e.opts.LineEnding
	case f.EOL != "":
		return f.EOL
	default:
		return "\n"
	}
}
