package parser

import (
	"strings"

	"github.com/msto63/tabwerk/internal/robot/model"
	"github.com/msto63/tabwerk/internal/robot/recognizer"
	"github.com/msto63/tabwerk/internal/robot/section"
	"github.com/msto63/tabwerk/internal/robot/token"
)

// lineInfo is a model line together with its data and comment tokens
type lineInfo struct {
	row     *section.Row
	line    *model.Line
	content []*model.Token // cells that carry data, in order
	comment []*model.Token
}

// item is one run of a source line before it becomes a model token
type item struct {
	typ model.TokenType
	raw string
}

// buildLine turns the segments of a source line into a model line
func buildLine(src *token.Line, row *section.Row) *lineInfo {
	items := lineItems(src, row)
	if row.Dialect == token.DialectPipe {
		items = mergePipes(items)
	}
	if row.Dialect != token.DialectSpace {
		items = fillEmptyCells(items)
	}

	info := &lineInfo{row: row, line: model.NewLine(src.Number, src.Offset)}
	for _, it := range items {
		t := model.SourceToken(it.typ, it.raw, token.Unset)
		info.line.Append(t)
		switch {
		case it.typ == model.TypeComment:
			info.comment = append(info.comment, t)
		case !it.typ.IsLayout():
			info.content = append(info.content, t)
		}
	}
	info.line.SetEOL(model.SourceToken(model.TypeEndOfLine, src.EOL.Text, token.Unset))
	return info
}

func lineItems(src *token.Line, row *section.Row) []item {
	text := func(from, to int) string {
		var sb strings.Builder
		for _, t := range src.Tokens[from:to] {
			sb.WriteString(t.Text)
		}
		return sb.String()
	}

	fuseFrom, fuseTo := -1, -1
	if h := row.Header(); h != nil {
		fuseFrom, fuseTo = h.From, h.To
	}
	commentFrom := -1
	if c := recognizer.Find(row.Contexts, recognizer.ContextDeclaredComment); c != nil {
		commentFrom = c.From
	}
	cont, hasCont := row.Continuation()

	segs := row.Segments
	items := make([]item, 0, len(segs))
	for i := 0; i < len(segs); i++ {
		s := segs[i]
		switch s.Kind {
		case recognizer.SegmentSeparator:
			typ := model.TypeSeparatorSpace
			if row.Dialect == token.DialectPipe {
				typ = model.TypeSeparatorPipe
			}
			items = append(items, item{typ, text(s.From, s.To)})

		case recognizer.SegmentPrettyAlign:
			items = append(items, item{model.TypePrettyAlign, text(s.From, s.To)})

		default:
			if fuseFrom >= 0 && s.From < fuseTo && s.To > fuseFrom {
				// a header spelled across separators stays one token
				to := s.To
				for i+1 < len(segs) && segs[i+1].From < fuseTo {
					i++
					to = segs[i].To
				}
				items = append(items, item{model.TypeHeader, text(s.From, to)})
				continue
			}

			typ := model.TypeText
			switch {
			case commentFrom >= 0 && s.From >= commentFrom:
				typ = model.TypeComment
			case hasCont && s.From == cont.From:
				typ = model.TypeContinuation
			}
			items = append(items, item{typ, text(s.From, s.To)})
		}
	}
	return items
}

// mergePipes joins every pipe separator with the whitespace around it
func mergePipes(items []item) []item {
	out := make([]item, 0, len(items))
	for i := 0; i < len(items); i++ {
		it := items[i]
		if it.typ != model.TypeSeparatorPipe {
			out = append(out, it)
			continue
		}
		if n := len(out); n > 0 && out[n-1].typ == model.TypePrettyAlign {
			it.raw = out[n-1].raw + it.raw
			out = out[:n-1]
		}
		if i+1 < len(items) && items[i+1].typ == model.TypePrettyAlign {
			it.raw += items[i+1].raw
			i++
		}
		out = append(out, it)
	}
	return out
}

// fillEmptyCells puts an empty token between two separators that follow
// each other between the first and the last cell of a line
func fillEmptyCells(items []item) []item {
	first, last := -1, -1
	for i, it := range items {
		if !it.typ.IsSeparator() && it.typ != model.TypePrettyAlign {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return items
	}

	out := make([]item, 0, len(items))
	prev := model.TypeText
	for i, it := range items {
		out = append(out, it)
		if !it.typ.IsSeparator() {
			if it.typ != model.TypePrettyAlign {
				prev = it.typ
			}
			continue
		}
		if i > first && i+1 < last && items[i+1].typ.IsSeparator() {
			typ := model.TypeText
			if prev == model.TypeComment {
				typ = model.TypeComment
			}
			out = append(out, item{typ: typ})
		}
	}
	return out
}
