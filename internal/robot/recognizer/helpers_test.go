package recognizer

import (
	"testing"

	"github.com/msto63/tabwerk/internal/robot/lexer"
	"github.com/msto63/tabwerk/internal/robot/token"
)

func recognize(r Recognizer, input string) []*Context {
	lines := lexer.Tokenize(input)
	return r.Recognize(lines, token.All(lines))
}

func texts(cs []*Context) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Text())
	}
	return out
}

func types(cs []*Context) []ContextType {
	out := make([]ContextType, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Type)
	}
	return out
}

func byName(t *testing.T, rs []Recognizer, name string) Recognizer {
	t.Helper()
	for _, r := range rs {
		if r.Name() == name {
			return r
		}
	}
	t.Fatalf("no recognizer named %q", name)
	return nil
}
