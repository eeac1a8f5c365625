// ============================================================================
// tabwerk - Robot Framework Testdaten-Werkzeug
// ============================================================================
//
// Package:     section
// Description: Structural section tree of a test data file
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

// Package section assembles recognized contexts into a tree of position
// bounded sections: tables at the top, declarations and rows below. The
// tree partitions the file; it is derived data and rebuilt for every parse
// or dump.
package section

import (
	"fmt"
	"strings"

	"github.com/msto63/tabwerk/internal/robot/token"
)

// Type identifies a section
type Type int

const (
	TypeTrash Type = iota
	TypeUserTable
	TypeSettings
	TypeSetting
	TypeVariables
	TypeVariable
	TypeTestCases
	TypeTestCase
	TypeTestCaseSetting
	TypeTestCaseRow
	TypeKeywords
	TypeKeyword
	TypeKeywordSetting
	TypeKeywordRow
)

var typeNames = map[Type]string{
	TypeTrash:           "TRASH",
	TypeUserTable:       "USER_TABLE",
	TypeSettings:        "SETTINGS",
	TypeSetting:         "SETTING",
	TypeVariables:       "VARIABLES",
	TypeVariable:        "VARIABLE",
	TypeTestCases:       "TEST_CASES",
	TypeTestCase:        "TEST_CASE",
	TypeTestCaseSetting: "TEST_CASE_SETTING",
	TypeTestCaseRow:     "TEST_CASE_ROW",
	TypeKeywords:        "KEYWORDS",
	TypeKeyword:         "KEYWORD",
	TypeKeywordSetting:  "KEYWORD_SETTING",
	TypeKeywordRow:      "KEYWORD_ROW",
}

// String returns a string representation of the section type
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsTable reports whether the type is a top level table section
func (t Type) IsTable() bool {
	switch t {
	case TypeUserTable, TypeSettings, TypeVariables, TypeTestCases, TypeKeywords:
		return true
	}
	return false
}

// allowedChildren is the subtype table. Types without an entry are leaves.
var allowedChildren = map[Type][]Type{
	TypeSettings:  {TypeSetting},
	TypeVariables: {TypeVariable},
	TypeTestCases: {TypeTestCase},
	TypeTestCase:  {TypeTestCaseSetting, TypeTestCaseRow},
	TypeKeywords:  {TypeKeyword},
	TypeKeyword:   {TypeKeywordSetting, TypeKeywordRow},
}

// Allows reports whether child may be nested directly below parent
func Allows(parent, child Type) bool {
	for _, t := range allowedChildren[parent] {
		if t == child {
			return true
		}
	}
	return false
}

// ContractError reports a child type the subtype table does not allow.
// It signals a broken builder, not malformed input.
type ContractError struct {
	Parent Type
	Child  Type
}

// Error implements error
func (e *ContractError) Error() string {
	return fmt.Sprintf("section %s cannot contain %s", e.Parent, e.Child)
}

// Section is a node of the structural tree
type Section struct {
	Type     Type
	Start    token.Position
	End      token.Position // directly behind the last covered byte
	Children []*Section
}

// New creates a section that starts and ends at start
func New(t Type, start token.Position) *Section {
	return &Section{Type: t, Start: start, End: start}
}

// AddChild appends c. A child type that is not allowed below the section
// returns a *ContractError and leaves the section unchanged.
func (s *Section) AddChild(c *Section) error {
	if !Allows(s.Type, c.Type) {
		return &ContractError{Parent: s.Type, Child: c.Type}
	}
	s.Children = append(s.Children, c)
	return nil
}

// Extend moves the end of the section to end when it lies behind it. An
// empty last line moves the end to that line without adding bytes.
func (s *Section) Extend(end token.Position) {
	if c := end.Compare(s.End); c > 0 || (c == 0 && end.Line > s.End.Line) {
		s.End = end
	}
}

// Lines returns the 0-based line index range covered by the section
func (s *Section) Lines() token.Interval {
	if !s.Start.IsSet() || !s.End.IsSet() {
		return token.Interval{}
	}
	return token.Interval{Start: s.Start.Line - 1, End: s.End.Line}
}

// IsEmpty reports whether the section covers no bytes
func (s *Section) IsEmpty() bool {
	return s.Start.Offset == s.End.Offset
}

// Walk calls fn for s and all descendants in depth first order
func (s *Section) Walk(fn func(s *Section, depth int)) {
	s.walk(fn, 0)
}

func (s *Section) walk(fn func(s *Section, depth int), depth int) {
	fn(s, depth)
	for _, c := range s.Children {
		c.walk(fn, depth+1)
	}
}

// String renders the subtree, one section per line
func (s *Section) String() string {
	var sb strings.Builder
	s.Walk(func(n *Section, depth int) {
		fmt.Fprintf(&sb, "%s%s %s-%s\n", strings.Repeat("  ", depth), n.Type, n.Start, n.End)
	})
	return sb.String()
}
