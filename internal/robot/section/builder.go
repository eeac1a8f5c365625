package section

import (
	"github.com/pkg/errors"

	"github.com/msto63/tabwerk/internal/robot/recognizer"
	"github.com/msto63/tabwerk/internal/robot/token"
)

// Builder assembles the section tree of one file format
type Builder struct {
	format token.Format
}

// NewBuilder creates a builder for files of the given format
func NewBuilder(format token.Format) *Builder {
	return &Builder{format: format}
}

// blockTypes are the section types used inside a test case or keyword table
type blockTypes struct {
	block, setting, row Type
}

var tableBlocks = map[Type]blockTypes{
	TypeTestCases: {TypeTestCase, TypeTestCaseSetting, TypeTestCaseRow},
	TypeKeywords:  {TypeKeyword, TypeKeywordSetting, TypeKeywordRow},
}

// buildState is the current section path while walking the lines
type buildState struct {
	roots []*Section
	table *Section
	elem  *Section
	sub   *Section
}

func (st *buildState) openTable(t Type, start token.Position) {
	st.table = New(t, start)
	st.roots = append(st.roots, st.table)
	st.elem, st.sub = nil, nil
}

func (st *buildState) openElem(t Type, start token.Position) error {
	s := New(t, start)
	if err := st.table.AddChild(s); err != nil {
		return err
	}
	st.elem, st.sub = s, nil
	return nil
}

func (st *buildState) openSub(t Type, start token.Position) error {
	s := New(t, start)
	if err := st.elem.AddChild(s); err != nil {
		return err
	}
	st.sub = s
	return nil
}

func (st *buildState) extend(end token.Position) {
	for _, s := range []*Section{st.table, st.elem, st.sub} {
		if s != nil {
			s.Extend(end)
		}
	}
}

// Build walks the lines in order and returns the top level sections.
// contexts holds the recognized contexts per line index. Lines before
// the first table header form a trash section unless they are empty.
func (b *Builder) Build(lines []*token.Line, contexts [][]*recognizer.Context) ([]*Section, error) {
	st := &buildState{}

	for i, line := range lines {
		var cs []*recognizer.Context
		if i < len(contexts) {
			cs = contexts[i]
		}
		row := Analyze(line, b.format, cs)
		start, end := LineStart(line), LineEnd(line)

		if err := b.step(st, row, start); err != nil {
			return nil, errors.Wrapf(err, "line %d", line.Number)
		}
		st.extend(end)
	}

	roots := st.roots
	if len(roots) > 0 && roots[0].Type == TypeTrash && roots[0].IsEmpty() {
		roots = roots[1:]
	}
	return roots, nil
}

// step updates the section path for one line
func (b *Builder) step(st *buildState, row *Row, start token.Position) error {
	if h := row.Header(); h != nil {
		st.openTable(tableType(h.Type), start)
		return nil
	}
	if st.table == nil {
		st.openTable(TypeTrash, start)
		return nil
	}
	if row.IsBlank() {
		return nil
	}
	if row.IsContinuation() {
		// a continuation right below a block name starts its first row
		if bt, ok := tableBlocks[st.table.Type]; ok && st.elem != nil && st.sub == nil {
			return st.openSub(bt.row, start)
		}
		return nil
	}

	switch st.table.Type {
	case TypeSettings:
		if row.CommentOnly() {
			return nil
		}
		// every other row is a setting of its own, indented ones too; a
		// row that is not really first has no declaration and parses as an
		// unknown setting
		return st.openElem(TypeSetting, start)

	case TypeVariables:
		// commented out variable slots still open a variable
		return st.openElem(TypeVariable, start)

	case TypeTestCases, TypeKeywords:
		if row.CommentOnly() {
			return nil
		}
		bt := tableBlocks[st.table.Type]
		first, _ := row.First()
		if row.ReallyFirst(first.From) {
			if err := st.openElem(bt.block, start); err != nil {
				return err
			}
			if len(row.Cells) > 1 && !row.StartsComment(row.Cells[1]) {
				return st.openSub(b.childType(row, row.Cells[1], bt), start)
			}
			return nil
		}
		if st.elem == nil {
			return nil
		}
		return st.openSub(b.childType(row, first, bt), start)
	}
	return nil
}

func (b *Builder) childType(row *Row, cell recognizer.Segment, bt blockTypes) Type {
	if row.ElementSetting(cell) != nil {
		return bt.setting
	}
	return bt.row
}

func tableType(t recognizer.ContextType) Type {
	switch t {
	case recognizer.ContextSettingsTableHeader, recognizer.ContextSettingsTableHeaderIncorrect:
		return TypeSettings
	case recognizer.ContextVariablesTableHeader, recognizer.ContextVariablesTableHeaderIncorrect:
		return TypeVariables
	case recognizer.ContextTestCasesTableHeader, recognizer.ContextTestCasesTableHeaderIncorrect:
		return TypeTestCases
	case recognizer.ContextKeywordsTableHeader, recognizer.ContextKeywordsTableHeaderIncorrect:
		return TypeKeywords
	}
	return TypeUserTable
}

// BuildLines runs the recognizer set of the format over lines and builds
// their sections. The contexts are returned per line index.
func BuildLines(lines []*token.Line, format token.Format) ([]*Section, [][]*recognizer.Context, error) {
	contexts := recognizer.NewSet(format).Recognize(lines, token.All(lines))
	sections, err := NewBuilder(format).Build(lines, contexts)
	if err != nil {
		return nil, nil, err
	}
	return sections, contexts, nil
}

// LineStart returns the position of the first byte of a line
func LineStart(line *token.Line) token.Position {
	return token.Position{Line: line.Number, Column: 0, Offset: line.Offset}
}

// LineEnd returns the position directly behind the line terminator
func LineEnd(line *token.Line) token.Position {
	n := len(line.Text()) + len(line.EOL.Text)
	return token.Position{Line: line.Number, Column: n, Offset: line.Offset + n}
}
