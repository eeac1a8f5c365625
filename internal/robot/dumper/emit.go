package dumper

import (
	"strings"

	"github.com/msto63/tabwerk/internal/robot/model"
	"github.com/msto63/tabwerk/internal/robot/token"
)

// dump is the state of one Dump call
type dump struct {
	e   *Engine
	f   *model.File
	out *output

	table model.TableKind

	cur     *model.Line  // open output line
	curSrc  int          // source line index of cur, -1 for new lines
	cells   int          // data cells on cur
	prev    *model.Token // last token written to cur
	indent []*model.Token
}

// unit is a run of tokens that starts a row of its own
type unit struct {
	tokens []*model.Token
	span   token.Interval
	body   bool // a test case or keyword row, indented
}

func (d *dump) slot(s *slot) {
	if s.verb {
		d.copyLines(s.region)
		return
	}
	d.table = s.table
	d.indent = nil

	if h := s.header; h != nil {
		if !h.IsNew() && !h.IsDirty() {
			d.copyLines(h.Span)
		} else {
			d.emit(unit{tokens: h.ElementTokens(), span: h.Span})
		}
	}
	for _, e := range s.elements {
		if !e.IsNew() && !e.IsDirty() {
			d.copyLines(e.Span)
			continue
		}
		d.emit(unit{tokens: e.ElementTokens(), span: e.Span})
	}
	for _, b := range s.blocks {
		d.block(b)
	}
}

func (d *dump) block(b *model.Block) {
	d.indent = nil
	if !b.IsNew() && !b.IsDirty() {
		d.copyLines(b.Span)
		return
	}

	head := b.Span
	if !b.IsNew() {
		for _, e := range b.Body {
			if !e.IsNew() && e.Span.Start >= b.Span.Start && e.Span.Start < head.End {
				head.End = e.Span.Start
			}
		}
	}
	d.emit(unit{tokens: b.HeadTokens(), span: head})

	for _, e := range b.Body {
		if !e.IsNew() && !e.IsDirty() && e.Span.Start != b.Span.Start {
			d.copyLines(e.Span)
			d.indent = d.prefix(e.Span.Start)
			continue
		}
		d.emit(unit{tokens: e.ElementTokens(), span: e.Span, body: true})
	}
}

// copyLines copies source lines verbatim
func (d *dump) copyLines(iv token.Interval) {
	d.newLineBoundary()
	iv = iv.Clamp(len(d.f.Lines))
	for i := iv.Start; i < iv.End; i++ {
		d.out.copyLine(d.f.Lines[i])
	}
}

// newLineBoundary closes the open line with the trailing layout and the
// terminator of its source line
func (d *dump) newLineBoundary() {
	if d.cur != nil {
		if d.curSrc >= 0 {
			src := d.f.Lines[d.curSrc]
			for _, t := range trailing(src) {
				d.cur.Append(t.Clone())
			}
			d.cur.SetEOL(src.EOL.Clone())
		} else {
			d.cur.SetEOL(d.out.eolToken())
		}
		d.cur, d.curSrc, d.prev, d.cells = nil, -1, nil, 0
	}
}

// emit writes a unit that could not be copied. Tokens read from the file
// stay on their source line with the layout around them; new tokens
// follow the token before them. Comments run to the end of their line
// and are written when the line is left.
func (d *dump) emit(u unit) {
	if len(u.tokens) == 0 {
		return
	}

	var data, fresh []*model.Token
	comments := make(map[int][]*model.Token)
	used := make(map[int]bool)
	anchor := -1
	for _, t := range u.tokens {
		src := d.sourceLine(t)
		if src >= 0 {
			used[src] = true
			if anchor < 0 || src < anchor {
				anchor = src
			}
		}
		switch {
		case t.Type != model.TypeComment:
			data = append(data, t)
		case src >= 0:
			comments[src] = append(comments[src], t)
		default:
			fresh = append(fresh, t)
		}
	}

	e := &emission{unit: u, comments: comments, used: used, last: u.span.Start - 1}
	for i, t := range data {
		src := d.sourceLine(t)
		if i == 0 && src < 0 && anchor >= 0 {
			// a replaced first token takes the place of the original
			src = anchor
		}

		switch {
		case src >= 0 && d.cur != nil && src == d.curSrc:
			d.writeNext(t)
			if src > e.last {
				e.last = src
			}

		case src >= 0:
			d.leave(e)
			d.between(e, src)
			d.openSource(u, src)
			d.write(t, nil)
			e.last = src

		case d.cur == nil || i == 0:
			d.leave(e)
			d.newLineBoundary()
			d.openNew(u)
			d.write(t, nil)

		default:
			if w := d.e.opts.WrapAfter; w > 0 && d.cells >= w {
				d.leave(e)
				d.newLineBoundary()
				d.openContinuation(u)
				d.write(t, nil)
				continue
			}
			d.write(t, []*model.Token{d.pickSeparator(false)})
		}
	}

	d.leave(e)
	for _, t := range fresh {
		if d.cur == nil {
			d.newLineBoundary()
			d.openNew(u)
			d.write(t, nil)
			continue
		}
		d.write(t, []*model.Token{d.pickSeparator(false)})
	}
	if u.span.Start >= 0 && e.last+1 < u.span.End {
		d.between(e, u.span.End)
	}
}

// emission tracks the source lines of a unit being written
type emission struct {
	unit     unit
	comments map[int][]*model.Token // source comments by line index
	used     map[int]bool           // lines holding tokens of the unit
	last     int                    // last source line written
}

// writeNext appends a token of the current source line
func (d *dump) writeNext(t *model.Token) {
	sep := d.sourceSeparator(t)
	if sep == nil {
		sep = []*model.Token{d.pickSeparator(false)}
	}
	d.write(t, sep)
}

// leave writes the comments of the open source line
func (d *dump) leave(e *emission) {
	if d.cur == nil || d.curSrc < 0 {
		return
	}
	for _, c := range e.comments[d.curSrc] {
		d.writeNext(c)
	}
	delete(e.comments, d.curSrc)
}

// between writes the lines of the unit after the last written line and
// before line to: comment lines of the unit and blank lines. Lines that
// only held removed tokens are dropped.
func (d *dump) between(e *emission, to int) {
	d.newLineBoundary()
	if e.unit.span.Start < 0 {
		return
	}
	for i := e.last + 1; i < to && i < e.unit.span.End && i < len(d.f.Lines); i++ {
		if i < e.unit.span.Start {
			continue
		}
		switch {
		case len(e.comments[i]) > 0:
			d.openSource(e.unit, i)
			for j, c := range e.comments[i] {
				if j == 0 {
					d.write(c, nil)
					continue
				}
				d.writeNext(c)
			}
			delete(e.comments, i)
			d.newLineBoundary()
		case !e.used[i] && d.f.Lines[i].IsBlank():
			d.out.copyLine(d.f.Lines[i])
		}
		e.last = i
	}
}

// openSource starts an output line with the leading layout of a source
// line. The layout is taken before the line is opened so a replaced end
// of file line does not hide the dialect of the line before it.
func (d *dump) openSource(u unit, src int) {
	pre := d.prefix(src)
	if u.body && len(pre) == 0 {
		pre = d.indentation()
	}
	d.start(src, pre)
	if u.body && len(pre) > 0 {
		d.indent = pre
	}
}

// openNew starts a line for a new row
func (d *dump) openNew(u unit) {
	var pre []*model.Token
	switch {
	case u.body:
		pre = d.indentation()
	case d.lastLinePipe() && d.e.format != token.FormatTsv:
		pre = []*model.Token{separator("| ", token.DialectPipe)}
	}
	d.start(-1, pre)
}

// openContinuation starts a "..." line below the open row. It takes the
// pipe style of the line it continues. Outside a body a space line starts
// with the marker in the first column.
func (d *dump) openContinuation(u unit) {
	pipe := d.lastLinePipe() && d.e.format != token.FormatTsv
	var pre []*model.Token
	switch {
	case pipe && u.body:
		pre = []*model.Token{separator("| ", token.DialectPipe), separator("| ", token.DialectPipe)}
	case pipe:
		pre = []*model.Token{separator("| ", token.DialectPipe)}
	case u.body:
		pre = d.indentation()
	}
	d.start(-1, pre)
	d.cur.Append(model.SourceToken(model.TypeContinuation, "...", token.Unset))
	d.cur.Append(d.pickSeparator(pipe))
}

// start opens an output line holding copies of the leading layout
func (d *dump) start(src int, pre []*model.Token) {
	d.cur = d.out.open()
	d.curSrc = src
	for _, t := range pre {
		d.cur.Append(t.Clone())
	}
}

// indentation returns the leading layout for a new body row
func (d *dump) indentation() []*model.Token {
	if len(d.indent) > 0 {
		return d.indent
	}
	if d.e.format != token.FormatTsv && d.lastLinePipe() {
		return []*model.Token{
			separator("| ", token.DialectPipe),
			separator("| ", token.DialectPipe),
		}
	}
	sep := d.e.opts.PreferredSeparator
	if !isSpaceSeparator(sep) || d.e.format == token.FormatTsv {
		sep = DefaultSeparator
	}
	return []*model.Token{separator(sep, token.DialectSpace)}
}

// write appends the layout tokens and the rendered token to the open line
func (d *dump) write(t *model.Token, layout []*model.Token) {
	for _, l := range layout {
		d.cur.Append(l.Clone())
	}
	text := d.render(t, d.dialect())
	d.cur.Append(model.SourceToken(t.Type, text, token.Unset))
	d.prev = t
	if !t.Type.IsLayout() {
		d.cells++
	}
}

// render returns the file text of a token
func (d *dump) render(t *model.Token, dialect token.Dialect) string {
	if !t.IsDirty() || t.Raw() != t.Text() {
		return t.Raw()
	}
	text := Escape(t.Text(), dialect, t.Type)
	if t.Type == model.TypeComment && text != "" && !strings.HasPrefix(text, "#") &&
		(d.prev == nil || d.prev.Type != model.TypeComment) {
		text = "# " + text
	}
	if text == "" && !AllowsEmpty(d.table, t.Type) {
		return d.e.opts.Placeholder
	}
	return text
}

// sourceSeparator returns the source layout in front of t when the token
// before it in the source is the token written last
func (d *dump) sourceSeparator(t *model.Token) []*model.Token {
	if d.prev == nil || !t.Position().IsSet() {
		return nil
	}
	src := d.f.Lines[d.curSrc]
	at := src.IndexOf(t)
	if at < 0 {
		return nil
	}
	j := at - 1
	for j >= 0 && src.Elements[j].Type.IsLayout() {
		j--
	}
	if j < 0 || src.Elements[j] != d.prev {
		return nil
	}
	return src.Elements[j+1 : at]
}

// sourceLine returns the index of the source line holding t, or -1
func (d *dump) sourceLine(t *model.Token) int {
	p := t.Position()
	if !p.IsSet() || p.Line < 1 || p.Line > len(d.f.Lines) {
		return -1
	}
	if d.f.Lines[p.Line-1].IndexOf(t) < 0 {
		return -1
	}
	return p.Line - 1
}

// prefix returns the layout in front of the first data cell of a line
func (d *dump) prefix(i int) []*model.Token {
	if i < 0 || i >= len(d.f.Lines) {
		return nil
	}
	var out []*model.Token
	for _, t := range d.f.Lines[i].Elements {
		if !t.Type.IsLayout() {
			break
		}
		out = append(out, t)
	}
	return out
}

// trailing returns the layout behind the last data cell of a line
func trailing(l *model.Line) []*model.Token {
	last := -1
	for i, t := range l.Elements {
		if !t.Type.IsLayout() {
			last = i
		}
	}
	if last < 0 {
		return nil
	}
	return l.Elements[last+1:]
}

func (d *dump) dialect() token.Dialect {
	if d.e.format == token.FormatTsv {
		return token.DialectTsv
	}
	if d.cur != nil {
		return d.cur.Dialect()
	}
	return token.DialectSpace
}

// lastLinePipe reports whether the line a new line follows is a pipe
// line. An empty end of file line is replaced by the next line and does
// not count.
func (d *dump) lastLinePipe() bool {
	if d.cur != nil {
		return d.cur.Dialect() == token.DialectPipe
	}
	n := len(d.out.lines)
	if n > 0 {
		if last := d.out.lines[n-1]; last.IsEOF() && len(last.Elements) == 0 {
			n--
		}
	}
	return n > 0 && d.out.lines[n-1].Dialect() == token.DialectPipe
}
