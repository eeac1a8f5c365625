package model

import (
	"github.com/msto63/tabwerk/internal/robot/token"
)

// ElementKind identifies a table element
type ElementKind int

const (
	KindUnknown ElementKind = iota

	// Settings table
	KindLibrary
	KindResource
	KindVariablesImport
	KindDocumentation
	KindMetadata
	KindSuiteSetup
	KindSuiteTeardown
	KindForceTags
	KindDefaultTags
	KindTestSetup
	KindTestTeardown
	KindTestTemplate
	KindTestTimeout
	KindUnknownSetting

	// Variables table
	KindScalarVariable
	KindListVariable
	KindDictionaryVariable
	KindUnknownVariable

	// Test case and keyword bodies
	KindBodyDocumentation
	KindBodyTags
	KindBodySetup
	KindBodyTeardown
	KindBodyTemplate
	KindBodyTimeout
	KindBodyArguments
	KindBodyReturn
	KindRow
)

var kindNames = map[ElementKind]string{
	KindUnknown:            "UNKNOWN",
	KindLibrary:            "LIBRARY",
	KindResource:           "RESOURCE",
	KindVariablesImport:    "VARIABLES_IMPORT",
	KindDocumentation:      "DOCUMENTATION",
	KindMetadata:           "METADATA",
	KindSuiteSetup:         "SUITE_SETUP",
	KindSuiteTeardown:      "SUITE_TEARDOWN",
	KindForceTags:          "FORCE_TAGS",
	KindDefaultTags:        "DEFAULT_TAGS",
	KindTestSetup:          "TEST_SETUP",
	KindTestTeardown:       "TEST_TEARDOWN",
	KindTestTemplate:       "TEST_TEMPLATE",
	KindTestTimeout:        "TEST_TIMEOUT",
	KindUnknownSetting:     "UNKNOWN_SETTING",
	KindScalarVariable:     "SCALAR_VARIABLE",
	KindListVariable:       "LIST_VARIABLE",
	KindDictionaryVariable: "DICTIONARY_VARIABLE",
	KindUnknownVariable:    "UNKNOWN_VARIABLE",
	KindBodyDocumentation:  "BODY_DOCUMENTATION",
	KindBodyTags:           "BODY_TAGS",
	KindBodySetup:          "BODY_SETUP",
	KindBodyTeardown:       "BODY_TEARDOWN",
	KindBodyTemplate:       "BODY_TEMPLATE",
	KindBodyTimeout:        "BODY_TIMEOUT",
	KindBodyArguments:      "BODY_ARGUMENTS",
	KindBodyReturn:         "BODY_RETURN",
	KindRow:                "ROW",
}

// String returns a string representation of the element kind
func (k ElementKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsImport reports whether the kind imports a library, resource or
// variable file
func (k ElementKind) IsImport() bool {
	return k == KindLibrary || k == KindResource || k == KindVariablesImport
}

// IsSetting reports whether the kind belongs to the settings table
func (k ElementKind) IsSetting() bool {
	return k >= KindLibrary && k <= KindUnknownSetting
}

// IsVariable reports whether the kind belongs to the variables table
func (k ElementKind) IsVariable() bool {
	return k >= KindScalarVariable && k <= KindUnknownVariable
}

// IsBodySetting reports whether the kind is a bracketed test case or
// keyword setting
func (k ElementKind) IsBodySetting() bool {
	return k >= KindBodyDocumentation && k <= KindBodyReturn
}

// Element is a settings or variables table entry, or one row of a test
// case or keyword body
type Element struct {
	Kind        ElementKind
	Declaration *Token
	Arguments   []*Token
	Comment     []*Token

	// Span is the range of source line indices the element was read from.
	// It includes trailing blank and comment lines. Start is -1 for
	// elements created in memory.
	Span token.Interval

	chain []*Token
}

// NewElement creates an element that was not read from a file
func NewElement(kind ElementKind, declaration string, args ...string) *Element {
	typ := TypeDeclaration
	if kind == KindRow {
		typ = TypeAction
	}
	e := &Element{
		Kind:        kind,
		Declaration: NewToken(typ, declaration),
		Span:        token.Interval{Start: -1, End: -1},
	}
	for _, a := range args {
		e.AddArgument(a)
	}
	return e
}

// ElementTokens returns declaration, arguments and comment in order
func (e *Element) ElementTokens() []*Token {
	var out []*Token
	if e.Declaration != nil {
		out = append(out, e.Declaration)
	}
	out = append(out, e.Arguments...)
	return append(out, e.Comment...)
}

// AddArgument appends a new argument token
func (e *Element) AddArgument(text string) *Token {
	t := NewToken(TypeArgument, text)
	e.Arguments = append(e.Arguments, t)
	return t
}

// AddComment appends a new comment token
func (e *Element) AddComment(text string) *Token {
	t := NewToken(TypeComment, text)
	e.Comment = append(e.Comment, t)
	return t
}

// IsNew reports whether the element was created in memory
func (e *Element) IsNew() bool {
	return e.Span.Start < 0
}

// Freeze records the current token chain as the parsed state
func (e *Element) Freeze() {
	e.chain = e.ElementTokens()
}

// IsDirty reports whether the element differs from its parsed state
func (e *Element) IsDirty() bool {
	return chainChanged(e.chain, e.ElementTokens())
}

// Block is a test case or a user keyword: a name and the rows of its
// body
type Block struct {
	Name *Token
	Body []*Element

	// Comment holds the comments of the name line and of the comment
	// lines before the first row
	Comment []*Token
	Span    token.Interval

	head  []*Token
	chain []*Element
}

// NewBlock creates a block that was not read from a file
func NewBlock(name string) *Block {
	return &Block{
		Name: NewToken(TypeName, name),
		Span: token.Interval{Start: -1, End: -1},
	}
}

// AddRow appends a new keyword call row
func (b *Block) AddRow(action string, args ...string) *Element {
	e := NewElement(KindRow, action, args...)
	b.Body = append(b.Body, e)
	return e
}

// AddSetting appends a new bracketed setting
func (b *Block) AddSetting(kind ElementKind, declaration string, args ...string) *Element {
	e := NewElement(kind, declaration, args...)
	b.Body = append(b.Body, e)
	return e
}

// Settings returns the bracketed settings of the body
func (b *Block) Settings() []*Element {
	var out []*Element
	for _, e := range b.Body {
		if e.Kind.IsBodySetting() {
			out = append(out, e)
		}
	}
	return out
}

// Rows returns the keyword call rows of the body
func (b *Block) Rows() []*Element {
	var out []*Element
	for _, e := range b.Body {
		if e.Kind == KindRow {
			out = append(out, e)
		}
	}
	return out
}

// IsNew reports whether the block was created in memory
func (b *Block) IsNew() bool {
	return b.Span.Start < 0
}

// HeadTokens returns the name and the head comments
func (b *Block) HeadTokens() []*Token {
	var out []*Token
	if b.Name != nil {
		out = append(out, b.Name)
	}
	return append(out, b.Comment...)
}

// IsHeadDirty reports whether name or head comments changed
func (b *Block) IsHeadDirty() bool {
	return b.Name == nil || chainChanged(b.head, b.HeadTokens())
}

// Freeze records the current body as the parsed state
func (b *Block) Freeze() {
	b.head = b.HeadTokens()
	b.chain = append([]*Element(nil), b.Body...)
	for _, e := range b.Body {
		e.Freeze()
	}
}

// IsDirty reports whether the name, the row list or any row changed
func (b *Block) IsDirty() bool {
	if b.IsHeadDirty() || len(b.chain) != len(b.Body) {
		return true
	}
	for i, e := range b.Body {
		if b.chain[i] != e || e.IsDirty() {
			return true
		}
	}
	return false
}

func chainChanged(before, now []*Token) bool {
	if len(before) != len(now) {
		return true
	}
	for i, t := range now {
		if before[i] != t || t.dirty {
			return true
		}
	}
	return false
}
