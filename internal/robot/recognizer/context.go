// ============================================================================
// tabwerk - Robot Framework Testdaten-Werkzeug
// ============================================================================
//
// Package:     recognizer
// Description: Recognized structural spans of a single line
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package recognizer

import (
	"strings"

	"github.com/msto63/tabwerk/internal/robot/token"
)

// ContextType identifies the construct a context was recognized as
type ContextType int

const (
	ContextUndeclared ContextType = iota

	// Table headers
	ContextSettingsTableHeader
	ContextSettingsTableHeaderIncorrect
	ContextVariablesTableHeader
	ContextVariablesTableHeaderIncorrect
	ContextTestCasesTableHeader
	ContextTestCasesTableHeaderIncorrect
	ContextKeywordsTableHeader
	ContextKeywordsTableHeaderIncorrect
	ContextUserTableHeader

	// Settings table declarations
	ContextSettingLibrary
	ContextSettingResource
	ContextSettingVariables
	ContextSettingDocumentation
	ContextSettingMetadata
	ContextSettingSuiteSetup
	ContextSettingSuiteTeardown
	ContextSettingForceTags
	ContextSettingDefaultTags
	ContextSettingTestSetup
	ContextSettingTestTeardown
	ContextSettingTestTemplate
	ContextSettingTestTimeout
	ContextSettingWithName

	// Test case and keyword settings
	ContextElementDocumentation
	ContextElementTags
	ContextElementSetup
	ContextElementTeardown
	ContextElementTemplate
	ContextElementTimeout
	ContextElementArguments
	ContextElementReturn

	// Variables
	ContextScalarVariable
	ContextListVariable
	ContextDictionaryVariable
	ContextEnvironmentVariable

	// Layout
	ContextPipeSeparator
	ContextTabOrDoubleSpaceSeparator
	ContextTsvSeparator
	ContextPrettyAlign

	// Comments
	ContextDeclaredComment
	ContextCommentKeyword

	// Cell level constructs
	ContextForLoopHeader
	ContextContinuation
	ContextQuotedSentence
	ContextEmptyCell
	ContextEscapedCharacter
	ContextEscapedHexValue
)

var contextNames = map[ContextType]string{
	ContextUndeclared:                    "UNDECLARED",
	ContextSettingsTableHeader:           "SETTINGS_TABLE_HEADER",
	ContextSettingsTableHeaderIncorrect:  "SETTINGS_TABLE_HEADER_INCORRECT",
	ContextVariablesTableHeader:          "VARIABLES_TABLE_HEADER",
	ContextVariablesTableHeaderIncorrect: "VARIABLES_TABLE_HEADER_INCORRECT",
	ContextTestCasesTableHeader:          "TEST_CASES_TABLE_HEADER",
	ContextTestCasesTableHeaderIncorrect: "TEST_CASES_TABLE_HEADER_INCORRECT",
	ContextKeywordsTableHeader:           "KEYWORDS_TABLE_HEADER",
	ContextKeywordsTableHeaderIncorrect:  "KEYWORDS_TABLE_HEADER_INCORRECT",
	ContextUserTableHeader:               "USER_TABLE_HEADER",
	ContextSettingLibrary:                "SETTING_LIBRARY",
	ContextSettingResource:               "SETTING_RESOURCE",
	ContextSettingVariables:              "SETTING_VARIABLES",
	ContextSettingDocumentation:          "SETTING_DOCUMENTATION",
	ContextSettingMetadata:               "SETTING_METADATA",
	ContextSettingSuiteSetup:             "SETTING_SUITE_SETUP",
	ContextSettingSuiteTeardown:          "SETTING_SUITE_TEARDOWN",
	ContextSettingForceTags:              "SETTING_FORCE_TAGS",
	ContextSettingDefaultTags:            "SETTING_DEFAULT_TAGS",
	ContextSettingTestSetup:              "SETTING_TEST_SETUP",
	ContextSettingTestTeardown:           "SETTING_TEST_TEARDOWN",
	ContextSettingTestTemplate:           "SETTING_TEST_TEMPLATE",
	ContextSettingTestTimeout:            "SETTING_TEST_TIMEOUT",
	ContextSettingWithName:               "SETTING_WITH_NAME",
	ContextElementDocumentation:          "ELEMENT_DOCUMENTATION",
	ContextElementTags:                   "ELEMENT_TAGS",
	ContextElementSetup:                  "ELEMENT_SETUP",
	ContextElementTeardown:               "ELEMENT_TEARDOWN",
	ContextElementTemplate:               "ELEMENT_TEMPLATE",
	ContextElementTimeout:                "ELEMENT_TIMEOUT",
	ContextElementArguments:              "ELEMENT_ARGUMENTS",
	ContextElementReturn:                 "ELEMENT_RETURN",
	ContextScalarVariable:                "SCALAR_VARIABLE",
	ContextListVariable:                  "LIST_VARIABLE",
	ContextDictionaryVariable:            "DICTIONARY_VARIABLE",
	ContextEnvironmentVariable:           "ENVIRONMENT_VARIABLE",
	ContextPipeSeparator:                 "PIPE_SEPARATOR",
	ContextTabOrDoubleSpaceSeparator:     "TAB_OR_DOUBLE_SPACE_SEPARATOR",
	ContextTsvSeparator:                  "TSV_SEPARATOR",
	ContextPrettyAlign:                   "PRETTY_ALIGN",
	ContextDeclaredComment:               "DECLARED_COMMENT",
	ContextCommentKeyword:                "COMMENT_KEYWORD",
	ContextForLoopHeader:                 "FOR_LOOP_HEADER",
	ContextContinuation:                  "CONTINUATION",
	ContextQuotedSentence:                "QUOTED_SENTENCE",
	ContextEmptyCell:                     "EMPTY_CELL",
	ContextEscapedCharacter:              "ESCAPED_CHARACTER",
	ContextEscapedHexValue:               "ESCAPED_HEX_VALUE",
}

// String returns a string representation of the context type
func (t ContextType) String() string {
	if name, ok := contextNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsTableHeader reports whether the type is a correct header of one of the
// four known tables
func (t ContextType) IsTableHeader() bool {
	switch t {
	case ContextSettingsTableHeader, ContextVariablesTableHeader,
		ContextTestCasesTableHeader, ContextKeywordsTableHeader:
		return true
	}
	return false
}

// IsIncorrectTableHeader reports whether the type is a malformed header
func (t ContextType) IsIncorrectTableHeader() bool {
	switch t {
	case ContextSettingsTableHeaderIncorrect, ContextVariablesTableHeaderIncorrect,
		ContextTestCasesTableHeaderIncorrect, ContextKeywordsTableHeaderIncorrect:
		return true
	}
	return false
}

// IsSettingDeclaration reports whether the type declares a settings table
// entry
func (t ContextType) IsSettingDeclaration() bool {
	return t >= ContextSettingLibrary && t <= ContextSettingTestTimeout
}

// IsElementSetting reports whether the type is a bracketed test case or
// keyword setting
func (t ContextType) IsElementSetting() bool {
	return t >= ContextElementDocumentation && t <= ContextElementReturn
}

// IsVariable reports whether the type is a variable reference
func (t ContextType) IsVariable() bool {
	return t >= ContextScalarVariable && t <= ContextEnvironmentVariable
}

// IsLayout reports whether the type only describes whitespace layout
func (t ContextType) IsLayout() bool {
	return t >= ContextPipeSeparator && t <= ContextPrettyAlign
}

// IsComment reports whether the type starts a comment
func (t ContextType) IsComment() bool {
	return t == ContextDeclaredComment || t == ContextCommentKeyword
}

// Context is a recognized, typed span of tokens on one line
type Context struct {
	Type   ContextType
	Line   int // 1-based line number
	From   int // index of the first token within the line
	To     int // index behind the last token within the line
	Tokens []token.Token
}

// newContext builds a context over line.Tokens[from:to]
func newContext(t ContextType, line *token.Line, from, to int) *Context {
	toks := make([]token.Token, to-from)
	copy(toks, line.Tokens[from:to])
	return &Context{
		Type:   t,
		Line:   line.Number,
		From:   from,
		To:     to,
		Tokens: toks,
	}
}

// Start returns the position of the first token
func (c *Context) Start() token.Position {
	if len(c.Tokens) == 0 {
		return token.Unset
	}
	return c.Tokens[0].Pos
}

// End returns the position directly behind the last token
func (c *Context) End() token.Position {
	if len(c.Tokens) == 0 {
		return token.Unset
	}
	return c.Tokens[len(c.Tokens)-1].End()
}

// Text returns the raw text covered by the context
func (c *Context) Text() string {
	var sb strings.Builder
	for _, t := range c.Tokens {
		sb.WriteString(t.Text)
	}
	return sb.String()
}

// Kinds returns the token kinds of the context in order
func (c *Context) Kinds() []token.Kind {
	kinds := make([]token.Kind, len(c.Tokens))
	for i, t := range c.Tokens {
		kinds[i] = t.Kind
	}
	return kinds
}
