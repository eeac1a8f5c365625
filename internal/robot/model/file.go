package model

import (
	"sort"
	"strings"

	"github.com/msto63/tabwerk/internal/robot/token"
)

// TableKind identifies the table a header opens
type TableKind int

const (
	TableNone TableKind = iota
	TableSettings
	TableVariables
	TableTestCases
	TableKeywords
	TableUser
)

// String returns a string representation of the table kind
func (k TableKind) String() string {
	switch k {
	case TableSettings:
		return "Settings"
	case TableVariables:
		return "Variables"
	case TableTestCases:
		return "Test Cases"
	case TableKeywords:
		return "Keywords"
	case TableUser:
		return "User"
	default:
		return "None"
	}
}

// TableHeader is a "*** Name ***" line with optional column names and a
// comment
type TableHeader struct {
	Table       TableKind
	Declaration *Token
	Columns     []*Token
	Comment     []*Token

	// Span covers the header line and the lines up to the first element
	Span token.Interval

	chain []*Token
}

// NewTableHeader creates a header with the canonical spelling
func NewTableHeader(kind TableKind) *TableHeader {
	return &TableHeader{
		Table:       kind,
		Declaration: NewToken(TypeHeader, "*** "+kind.String()+" ***"),
		Span:        token.Interval{Start: -1, End: -1},
	}
}

// ElementTokens returns declaration, columns and comment in order
func (h *TableHeader) ElementTokens() []*Token {
	var out []*Token
	if h.Declaration != nil {
		out = append(out, h.Declaration)
	}
	out = append(out, h.Columns...)
	return append(out, h.Comment...)
}

// Freeze records the current token chain as the parsed state
func (h *TableHeader) Freeze() {
	h.chain = h.ElementTokens()
}

// IsDirty reports whether the header differs from its parsed state
func (h *TableHeader) IsDirty() bool {
	return chainChanged(h.chain, h.ElementTokens())
}

// IsNew reports whether the header was created in memory
func (h *TableHeader) IsNew() bool {
	return h.Span.Start < 0
}

// SettingTable holds the settings of a file. Elements is the complete
// list; Imports and Metadata keep the order of their own entries.
type SettingTable struct {
	Headers  []*TableHeader
	Elements []*Element
	Imports  []*Element
	Metadata []*Element
}

// Add appends e to the table and to its sub-list
func (t *SettingTable) Add(e *Element) {
	t.Elements = append(t.Elements, e)
	switch {
	case e.Kind.IsImport():
		t.Imports = append(t.Imports, e)
	case e.Kind == KindMetadata:
		t.Metadata = append(t.Metadata, e)
	}
}

// InsertImport places e at index i of the import order
func (t *SettingTable) InsertImport(i int, e *Element) {
	if i < 0 || i > len(t.Imports) {
		i = len(t.Imports)
	}
	t.Elements = append(t.Elements, e)
	t.Imports = append(t.Imports, nil)
	copy(t.Imports[i+1:], t.Imports[i:])
	t.Imports[i] = e
}

// Remove deletes e from the table and its sub-list
func (t *SettingTable) Remove(e *Element) {
	t.Elements = without(t.Elements, e)
	t.Imports = without(t.Imports, e)
	t.Metadata = without(t.Metadata, e)
}

// ByKind returns the settings of one kind in table order
func (t *SettingTable) ByKind(k ElementKind) []*Element {
	var out []*Element
	for _, e := range t.Elements {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}

// VariableTable holds the variables of a file
type VariableTable struct {
	Headers  []*TableHeader
	Elements []*Element
}

// BlockTable holds the test cases or keywords of a file
type BlockTable struct {
	Headers []*TableHeader
	Blocks  []*Block
}

// Find returns the block with the given name, compared
// case-insensitively
func (t *BlockTable) Find(name string) *Block {
	for _, b := range t.Blocks {
		if strings.EqualFold(b.Name.Text(), name) {
			return b
		}
	}
	return nil
}

// File is a parsed test data file
type File struct {
	Name   string
	Format token.Format

	// Lines are the source lines, Source the lexed tokens they were
	// built from
	Lines  []*Line
	Source []*token.Line

	// EOL is the line terminator used for new lines
	EOL string

	Settings   *SettingTable
	Variables  *VariableTable
	TestCases  *BlockTable
	Keywords   *BlockTable
	UserTables []*TableHeader
}

// NewFile creates an empty file; the format follows the file name
func NewFile(name string) *File {
	return &File{
		Name:      name,
		Format:    token.FormatForFile(name),
		EOL:       "\n",
		Settings:  &SettingTable{},
		Variables: &VariableTable{},
		TestCases: &BlockTable{},
		Keywords:  &BlockTable{},
	}
}

// Headers returns the headers of the four known tables in file order;
// headers created in memory come last
func (f *File) Headers() []*TableHeader {
	var out []*TableHeader
	out = append(out, f.Settings.Headers...)
	out = append(out, f.Variables.Headers...)
	out = append(out, f.TestCases.Headers...)
	out = append(out, f.Keywords.Headers...)
	sortHeaders(out)
	return out
}

// HeadersOf returns the headers of one table kind
func (f *File) HeadersOf(k TableKind) []*TableHeader {
	switch k {
	case TableSettings:
		return f.Settings.Headers
	case TableVariables:
		return f.Variables.Headers
	case TableTestCases:
		return f.TestCases.Headers
	case TableKeywords:
		return f.Keywords.Headers
	case TableUser:
		return f.UserTables
	}
	return nil
}

// AddHeader registers h with its table
func (f *File) AddHeader(h *TableHeader) {
	switch h.Table {
	case TableSettings:
		f.Settings.Headers = append(f.Settings.Headers, h)
	case TableVariables:
		f.Variables.Headers = append(f.Variables.Headers, h)
	case TableTestCases:
		f.TestCases.Headers = append(f.TestCases.Headers, h)
	case TableKeywords:
		f.Keywords.Headers = append(f.Keywords.Headers, h)
	case TableUser:
		f.UserTables = append(f.UserTables, h)
	}
}

// Touch marks every content token of every element dirty
func (f *File) Touch() {
	touch := func(ts []*Token) {
		for _, t := range ts {
			t.Touch()
		}
	}
	for _, h := range f.Headers() {
		touch(h.ElementTokens())
	}
	for _, e := range f.Settings.Elements {
		touch(e.ElementTokens())
	}
	for _, e := range f.Variables.Elements {
		touch(e.ElementTokens())
	}
	for _, bt := range []*BlockTable{f.TestCases, f.Keywords} {
		for _, b := range bt.Blocks {
			touch(b.HeadTokens())
			for _, e := range b.Body {
				touch(e.ElementTokens())
			}
		}
	}
}

func sortHeaders(hs []*TableHeader) {
	sort.SliceStable(hs, func(i, j int) bool {
		a, b := hs[i], hs[j]
		switch {
		case a.IsNew():
			return false
		case b.IsNew():
			return true
		}
		return a.Span.Start < b.Span.Start
	})
}

func without(es []*Element, e *Element) []*Element {
	out := es[:0]
	for _, x := range es {
		if x != e {
			out = append(out, x)
		}
	}
	return out
}
