package dumper

import (
	"fmt"
	"strings"

	"github.com/msto63/tabwerk/internal/robot/model"
	"github.com/msto63/tabwerk/internal/robot/token"
)

// emptyDenied lists the roles that must not be written as an empty cell
var emptyDenied = map[model.TableKind]map[model.TokenType]bool{
	model.TableSettings: {
		model.TypeDeclaration: true,
		model.TypeArgument:    true,
	},
	model.TableVariables: {
		model.TypeDeclaration: true,
		model.TypeArgument:    true,
	},
	model.TableTestCases: {
		model.TypeName:        true,
		model.TypeDeclaration: true,
		model.TypeAction:      true,
		model.TypeArgument:    true,
	},
	model.TableKeywords: {
		model.TypeName:        true,
		model.TypeDeclaration: true,
		model.TypeAction:      true,
		model.TypeArgument:    true,
	},
}

// AllowsEmpty reports whether a token of the role may be written as an
// empty cell in the table
func AllowsEmpty(table model.TableKind, role model.TokenType) bool {
	return !emptyDenied[table][role]
}

// Escape returns the file text of a value. Spaces that would be lost or
// read as a separator, tabulators, line breaks, a leading hash outside
// comments and pipes on pipe lines are escaped; backslashes already in
// the value are kept.
func Escape(text string, d token.Dialect, role model.TokenType) string {
	switch {
	case text == "":
		return ""
	case role == model.TypeHeader:
		return text
	case strings.Trim(text, " ") == "":
		if len(text) == 1 {
			return "${SPACE}"
		}
		return fmt.Sprintf("${SPACE * %d}", len(text))
	}

	lead := len(text) - len(strings.TrimLeft(text, " "))
	trail := len(text) - len(strings.TrimRight(text, " "))

	var sb strings.Builder
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '\t':
			sb.WriteString(`\t`)
		case c == '\n':
			sb.WriteString(`\n`)
		case c == '\r':
			sb.WriteString(`\r`)
		case role == model.TypeComment:
			sb.WriteByte(c)
		case c == ' ' && (i < lead || i >= len(text)-trail || text[i-1] == ' '):
			sb.WriteString(`\ `)
		case c == '|' && d == token.DialectPipe && (i == 0 || text[i-1] != '\\'):
			sb.WriteString(`\|`)
		case c == '#' && i == 0:
			sb.WriteString(`\#`)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// pickSeparator chooses the separator in front of a new cell: a forced
// pipe next to a continuation marker, the last separator of the line,
// the preferred separator, the default. The choice is then made to fit
// the dialect of the line.
func (d *dump) pickSeparator(forcedPipe bool) *model.Token {
	dialect := d.dialect()
	if forcedPipe {
		return separator(" | ", token.DialectPipe)
	}

	var sep string
	if !d.e.opts.Normalize && d.cur != nil {
		sep = lastSeparator(d.cur)
	}
	if sep == "" {
		sep = d.e.opts.PreferredSeparator
	}
	if sep == "" {
		sep = DefaultSeparator
	}
	return separator(conform(sep, dialect), dialect)
}

// conform makes sep valid for the dialect: tsv lines separate with one
// tabulator, pipe lines need a pipe, space lines must not contain one
func conform(sep string, d token.Dialect) string {
	switch d {
	case token.DialectTsv:
		return "\t"
	case token.DialectPipe:
		if isPipeSeparator(sep) {
			return sep
		}
		return " | "
	default:
		if isSpaceSeparator(sep) {
			return sep
		}
		return DefaultSeparator
	}
}

// lastSeparator returns the raw text of the last separator on the line
func lastSeparator(l *model.Line) string {
	for i := len(l.Elements) - 1; i >= 0; i-- {
		if l.Elements[i].IsSeparator() {
			return l.Elements[i].Raw()
		}
	}
	return ""
}

// isPipeSeparator reports whether sep can separate two cells of a pipe
// line
func isPipeSeparator(sep string) bool {
	return len(sep) >= 3 && strings.TrimSpace(sep) == "|" && isBlank(sep[0]) && isBlank(sep[len(sep)-1])
}

// isSpaceSeparator reports whether sep is a tabulator or at least two
// spaces and nothing else
func isSpaceSeparator(sep string) bool {
	if sep == "" || strings.Trim(sep, " \t") != "" {
		return false
	}
	return strings.Contains(sep, "\t") || strings.Contains(sep, "  ")
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}

func separator(raw string, d token.Dialect) *model.Token {
	typ := model.TypeSeparatorSpace
	if d == token.DialectPipe {
		typ = model.TypeSeparatorPipe
	}
	return model.SourceToken(typ, raw, token.Unset)
}
