package parser

import (
	"github.com/msto63/tabwerk/internal/robot/model"
	"github.com/msto63/tabwerk/internal/robot/recognizer"
	"github.com/msto63/tabwerk/internal/robot/section"
	"github.com/msto63/tabwerk/internal/robot/token"
)

var settingKinds = map[recognizer.ContextType]model.ElementKind{
	recognizer.ContextSettingLibrary:       model.KindLibrary,
	recognizer.ContextSettingResource:      model.KindResource,
	recognizer.ContextSettingVariables:     model.KindVariablesImport,
	recognizer.ContextSettingDocumentation: model.KindDocumentation,
	recognizer.ContextSettingMetadata:      model.KindMetadata,
	recognizer.ContextSettingSuiteSetup:    model.KindSuiteSetup,
	recognizer.ContextSettingSuiteTeardown: model.KindSuiteTeardown,
	recognizer.ContextSettingForceTags:     model.KindForceTags,
	recognizer.ContextSettingDefaultTags:   model.KindDefaultTags,
	recognizer.ContextSettingTestSetup:     model.KindTestSetup,
	recognizer.ContextSettingTestTeardown:  model.KindTestTeardown,
	recognizer.ContextSettingTestTemplate:  model.KindTestTemplate,
	recognizer.ContextSettingTestTimeout:   model.KindTestTimeout,
}

var bodySettingKinds = map[recognizer.ContextType]model.ElementKind{
	recognizer.ContextElementDocumentation: model.KindBodyDocumentation,
	recognizer.ContextElementTags:          model.KindBodyTags,
	recognizer.ContextElementSetup:         model.KindBodySetup,
	recognizer.ContextElementTeardown:      model.KindBodyTeardown,
	recognizer.ContextElementTemplate:      model.KindBodyTemplate,
	recognizer.ContextElementTimeout:       model.KindBodyTimeout,
	recognizer.ContextElementArguments:     model.KindBodyArguments,
	recognizer.ContextElementReturn:        model.KindBodyReturn,
}

var variableKinds = map[recognizer.ContextType]model.ElementKind{
	recognizer.ContextScalarVariable:     model.KindScalarVariable,
	recognizer.ContextListVariable:       model.KindListVariable,
	recognizer.ContextDictionaryVariable: model.KindDictionaryVariable,
}

var tableKinds = map[section.Type]model.TableKind{
	section.TypeUserTable: model.TableUser,
	section.TypeSettings:  model.TableSettings,
	section.TypeVariables: model.TableVariables,
	section.TypeTestCases: model.TableTestCases,
	section.TypeKeywords:  model.TableKeywords,
}

// fill creates the tables and elements of f from the section tree
func fill(f *model.File, roots []*section.Section, rows []*lineInfo) {
	for _, s := range roots {
		kind, ok := tableKinds[s.Type]
		if !ok {
			continue
		}
		f.AddHeader(tableHeader(kind, s, rows))

		for _, c := range s.Children {
			switch s.Type {
			case section.TypeSettings:
				f.Settings.Add(setting(c, rows))
			case section.TypeVariables:
				f.Variables.Elements = append(f.Variables.Elements, variable(c, rows))
			case section.TypeTestCases:
				f.TestCases.Blocks = append(f.TestCases.Blocks, block(c, rows))
			case section.TypeKeywords:
				f.Keywords.Blocks = append(f.Keywords.Blocks, block(c, rows))
			}
		}
	}
}

// tableHeader reads the header line of a table section. The header
// span ends at the first element of the table.
func tableHeader(kind model.TableKind, s *section.Section, rows []*lineInfo) *model.TableHeader {
	iv := s.Lines()
	if kind != model.TableUser && len(s.Children) > 0 {
		iv.End = s.Children[0].Lines().Start
	}

	h := &model.TableHeader{Table: kind, Span: iv}
	li := rows[iv.Start]
	if len(li.content) > 0 {
		h.Declaration = typed(li.content[0], model.TypeHeader)
		for _, t := range li.content[1:] {
			h.Columns = append(h.Columns, typed(t, model.TypeHeaderColumn))
		}
	}
	h.Comment = li.comment
	if kind != model.TableUser {
		for _, extra := range rows[iv.Start+1 : iv.End] {
			h.Comment = append(h.Comment, extra.comment...)
		}
	}
	return h
}

// collect gathers the data and comment tokens of the lines in iv,
// skipping the first skip data tokens of the first line
func collect(iv token.Interval, rows []*lineInfo, skip int) (content, comment []*model.Token) {
	for i := iv.Start; i < iv.End; i++ {
		li := rows[i]
		ts := li.content
		if i == iv.Start && skip > 0 {
			if skip > len(ts) {
				skip = len(ts)
			}
			ts = ts[skip:]
		}
		content = append(content, ts...)
		comment = append(comment, li.comment...)
	}
	return content, comment
}

// element splits the tokens into declaration and arguments
func element(kind model.ElementKind, declType model.TokenType, iv token.Interval, content, comment []*model.Token) *model.Element {
	e := &model.Element{Kind: kind, Comment: comment, Span: iv}
	if len(content) > 0 {
		e.Declaration = typed(content[0], declType)
		for _, t := range content[1:] {
			e.Arguments = append(e.Arguments, typed(t, model.TypeArgument))
		}
	}
	return e
}

func setting(s *section.Section, rows []*lineInfo) *model.Element {
	iv := s.Lines()
	kind := model.KindUnknownSetting
	if d := rows[iv.Start].row.Declaration(); d != nil {
		kind = settingKinds[d.Type]
	}
	content, comment := collect(iv, rows, 0)
	return element(kind, model.TypeDeclaration, iv, content, comment)
}

func variable(s *section.Section, rows []*lineInfo) *model.Element {
	iv := s.Lines()
	row := rows[iv.Start].row
	content, comment := collect(iv, rows, 0)

	kind := model.KindUnknownVariable
	if row.CommentOnly() {
		// a commented out slot keeps everything as arguments
		e := &model.Element{Kind: kind, Comment: comment, Span: iv}
		for _, t := range content {
			e.Arguments = append(e.Arguments, typed(t, model.TypeArgument))
		}
		return e
	}
	if first, ok := row.First(); ok {
		for _, c := range recognizer.StartingAt(row.Contexts, first.From) {
			if k, ok := variableKinds[c.Type]; ok {
				kind = k
				break
			}
		}
	}
	return element(kind, model.TypeDeclaration, iv, content, comment)
}

func block(s *section.Section, rows []*lineInfo) *model.Block {
	iv := s.Lines()
	b := &model.Block{Span: iv}

	name := rows[iv.Start]
	if len(name.content) > 0 {
		b.Name = typed(name.content[0], model.TypeName)
	}

	headEnd := iv.End
	if len(s.Children) > 0 {
		headEnd = s.Children[0].Lines().Start
	}
	_, b.Comment = collect(token.Interval{Start: iv.Start, End: headEnd}, rows, 0)

	for _, c := range s.Children {
		civ := c.Lines()
		skip := 0
		if civ.Start == iv.Start {
			skip = 1
		}
		content, comment := collect(civ, rows, skip)

		switch c.Type {
		case section.TypeTestCaseSetting, section.TypeKeywordSetting:
			kind := model.KindUnknown
			if len(content) > 0 {
				kind = bodySettingKind(rows[civ.Start].row, content[0])
			}
			b.Body = append(b.Body, element(kind, model.TypeDeclaration, civ, content, comment))
		default:
			b.Body = append(b.Body, element(model.KindRow, model.TypeAction, civ, content, comment))
		}
	}
	return b
}

// bodySettingKind finds the bracketed setting context that fills the cell
// of the first token
func bodySettingKind(row *section.Row, first *model.Token) model.ElementKind {
	for _, cell := range row.Cells {
		if c := row.ElementSetting(cell); c != nil && c.Text() == first.Raw() {
			if k, ok := bodySettingKinds[c.Type]; ok {
				return k
			}
		}
	}
	return model.KindUnknown
}

func typed(t *model.Token, typ model.TokenType) *model.Token {
	t.Type = typ
	return t
}
