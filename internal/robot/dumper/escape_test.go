package dumper

import (
	"testing"

	"github.com/msto63/tabwerk/internal/robot/model"
	"github.com/msto63/tabwerk/internal/robot/token"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		dialect token.Dialect
		role    model.TokenType
		want    string
	}{
		{"empty", "", token.DialectSpace, model.TypeArgument, ""},
		{"plain", "plain", token.DialectSpace, model.TypeArgument, "plain"},
		{"single space", " ", token.DialectSpace, model.TypeArgument, "${SPACE}"},
		{"only spaces", "   ", token.DialectSpace, model.TypeArgument, "${SPACE * 3}"},
		{"inner double space", "a  b", token.DialectSpace, model.TypeArgument, `a \ b`},
		{"leading space", " a", token.DialectSpace, model.TypeArgument, `\ a`},
		{"trailing spaces", "a  ", token.DialectSpace, model.TypeArgument, `a\ \ `},
		{"control characters", "a\tb\nc\r", token.DialectSpace, model.TypeArgument, `a\tb\nc\r`},
		{"leading hash", "#x", token.DialectSpace, model.TypeAction, `\#x`},
		{"inner hash", "a#x", token.DialectSpace, model.TypeArgument, "a#x"},
		{"pipe on pipe line", "a|b", token.DialectPipe, model.TypeArgument, `a\|b`},
		{"pipe on space line", "a|b", token.DialectSpace, model.TypeArgument, "a|b"},
		{"backslash kept", `C:\temp`, token.DialectSpace, model.TypeArgument, `C:\temp`},
		{"comment spacing kept", "# a  b", token.DialectSpace, model.TypeComment, "# a  b"},
		{"header raw", "*** Settings ***", token.DialectSpace, model.TypeHeader, "*** Settings ***"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Escape(tt.text, tt.dialect, tt.role); got != tt.want {
				t.Errorf("Escape(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestAllowsEmpty(t *testing.T) {
	tests := []struct {
		table model.TableKind
		role  model.TokenType
		want  bool
	}{
		{model.TableSettings, model.TypeArgument, false},
		{model.TableVariables, model.TypeDeclaration, false},
		{model.TableTestCases, model.TypeAction, false},
		{model.TableKeywords, model.TypeName, false},
		{model.TableKeywords, model.TypeComment, true},
		{model.TableUser, model.TypeArgument, true},
	}
	for _, tt := range tests {
		if got := AllowsEmpty(tt.table, tt.role); got != tt.want {
			t.Errorf("AllowsEmpty(%v, %v) = %v, want %v", tt.table, tt.role, got, tt.want)
		}
	}
}

func TestConform(t *testing.T) {
	tests := []struct {
		sep     string
		dialect token.Dialect
		want    string
	}{
		{"    ", token.DialectSpace, "    "},
		{" ", token.DialectSpace, DefaultSeparator},
		{" | ", token.DialectSpace, DefaultSeparator},
		{"    ", token.DialectPipe, " | "},
		{"  |  ", token.DialectPipe, "  |  "},
		{"    ", token.DialectTsv, "\t"},
	}
	for _, tt := range tests {
		if got := conform(tt.sep, tt.dialect); got != tt.want {
			t.Errorf("conform(%q, %v) = %q, want %q", tt.sep, tt.dialect, got, tt.want)
		}
	}
}

func TestEscape_KeepsEscapedPipe(t *testing.T) {
	if got := Escape(`a\|b`, token.DialectPipe, model.TypeArgument); got != `a\|b` {
		t.Errorf("Escape() = %q, want %q", got, `a\|b`)
	}
}
