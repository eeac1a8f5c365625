// ============================================================================
// tabwerk - Robot Framework Testdaten-Werkzeug
// ============================================================================
//
// Package:     parser
// Description: Builds the document model from lexed and recognized lines
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

// Package parser reads a test data file into a model.File. Every source
// line is kept as a model line; table elements point at the tokens of
// those lines, so a file that is dumped without changes comes out byte
// for byte as it went in.
package parser

import (
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/msto63/tabwerk/internal/robot/lexer"
	"github.com/msto63/tabwerk/internal/robot/model"
	"github.com/msto63/tabwerk/internal/robot/recognizer"
	"github.com/msto63/tabwerk/internal/robot/section"
	"github.com/msto63/tabwerk/internal/robot/token"
	"github.com/msto63/tabwerk/pkg/core/logging"
)

// Options configures parser behavior
type Options struct {
	Logger *logging.Logger
}

// Parser turns source text into a model.File
type Parser struct {
	logger *logging.Logger
}

// New creates a parser
func New(opts Options) *Parser {
	return &Parser{
		logger: logging.OrDiscard(opts.Logger).With("component", "parser"),
	}
}

// Analysis is the intermediate result of a parse: the lexed lines, the
// contexts recognized per line index and the section tree
type Analysis struct {
	Name     string
	Format   token.Format
	Lines    []*token.Line
	Contexts [][]*recognizer.Context
	Sections []*section.Section
}

// Analyze lexes src and builds its section tree without creating the
// document model
func (p *Parser) Analyze(name, src string) (*Analysis, error) {
	format := token.FormatForFile(name)
	lines := lexer.Tokenize(src)

	sections, contexts, err := section.BuildLines(lines, format)
	if err != nil {
		return nil, fmt.Errorf("failed to build sections of %s: %w", name, err)
	}

	return &Analysis{
		Name:     name,
		Format:   format,
		Lines:    lines,
		Contexts: contexts,
		Sections: sections,
	}, nil
}

// Parse reads src into a document model. The format follows the
// extension of name.
func (p *Parser) Parse(name, src string) (*model.File, error) {
	runID := uuid.NewString()
	p.logger.Debug("parse started", "file", name, "run_id", runID, "bytes", len(src))

	a, err := p.Analyze(name, src)
	if err != nil {
		p.logger.Warn("parse failed", "file", name, "run_id", runID, "error", err)
		return nil, err
	}

	f := model.NewFile(name)
	f.Source = a.Lines

	rows := make([]*lineInfo, len(a.Lines))
	for i, line := range a.Lines {
		rows[i] = buildLine(line, section.Analyze(line, a.Format, a.Contexts[i]))
		f.Lines = append(f.Lines, rows[i].line)
	}
	if len(a.Lines) > 0 && a.Lines[0].EOL.Text != "" {
		f.EOL = a.Lines[0].EOL.Text
	}

	fill(f, a.Sections, rows)
	freeze(f)

	p.logger.Debug("parse finished",
		"file", name,
		"run_id", runID,
		"lines", len(f.Lines),
		"sections", len(a.Sections),
		"settings", len(f.Settings.Elements),
		"variables", len(f.Variables.Elements),
		"test_cases", len(f.TestCases.Blocks),
		"keywords", len(f.Keywords.Blocks),
	)
	return f, nil
}

// ParseFile reads and parses the file at path
func (p *Parser) ParseFile(path string) (*model.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return p.Parse(path, string(data))
}

// Parse reads src with a default parser
func Parse(name, src string) (*model.File, error) {
	return New(Options{}).Parse(name, src)
}

// ParseFile reads the file at path with a default parser
func ParseFile(path string) (*model.File, error) {
	return New(Options{}).ParseFile(path)
}

func freeze(f *model.File) {
	for _, h := range f.Headers() {
		h.Freeze()
	}
	for _, h := range f.UserTables {
		h.Freeze()
	}
	for _, e := range f.Settings.Elements {
		e.Freeze()
	}
	for _, e := range f.Variables.Elements {
		e.Freeze()
	}
	for _, bt := range []*model.BlockTable{f.TestCases, f.Keywords} {
		for _, b := range bt.Blocks {
			b.Freeze()
		}
	}
}
