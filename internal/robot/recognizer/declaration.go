package recognizer

import (
	"strings"

	"github.com/msto63/tabwerk/internal/robot/token"
)

// expectation is one step of an expected token sequence
type expectation struct {
	kind     token.Kind
	word     string // expected text for token.Word, compared case-insensitively
	exact    bool   // compare word case-sensitively
	optional bool
}

func (e expectation) matches(t token.Token) bool {
	if t.Kind != e.kind {
		return false
	}
	if e.kind != token.Word || e.word == "" {
		return true
	}
	if e.exact {
		return t.Text == e.word
	}
	return strings.EqualFold(t.Text, e.word)
}

// declarationGrammar is the immutable configuration of a declaration
// recognizer: one context type and the sequences that spell it
type declarationGrammar struct {
	name      string
	ctx       ContextType
	sequences [][]expectation
}

// DeclarationRecognizer finds setting declarations such as "Library",
// "Suite Setup:" or "[Documentation]". A declaration starts at a cell
// start and must end exactly at a cell end.
type DeclarationRecognizer struct {
	format  token.Format
	grammar declarationGrammar
}

// Name implements Recognizer
func (r *DeclarationRecognizer) Name() string {
	return r.grammar.name
}

// ContextType returns the type produced by the recognizer
func (r *DeclarationRecognizer) ContextType() ContextType {
	return r.grammar.ctx
}

// Recognize implements Recognizer
func (r *DeclarationRecognizer) Recognize(lines []*token.Line, iv token.Interval) []*Context {
	return eachLine(lines, iv, r.recognizeLine)
}

func (r *DeclarationRecognizer) recognizeLine(line *token.Line) []*Context {
	d := line.Dialect(r.format)
	starts := cellStarts(line, d)
	ends := cellEnds(line, d)

	var best []*Context
	for _, seq := range r.grammar.sequences {
		for _, c := range r.scan(line, seq, starts, ends) {
			best = mergeLongest(best, c)
		}
	}
	return best
}

// scan runs one expected sequence over the line. A mandatory mismatch
// resets the match and retries the offending token; an optional mismatch
// skips the expectation and keeps the token.
func (r *DeclarationRecognizer) scan(line *token.Line, seq []expectation, starts map[int]int, ends map[int]bool) []*Context {
	var out []*Context
	toks := line.Tokens

	idx, from := 0, 0
	complete := func(end int) {
		if ends[end] {
			out = append(out, newContext(r.grammar.ctx, line, from, end))
		}
		idx = 0
	}

	i := 0
	for i < len(toks) {
		if idx == 0 {
			if _, ok := starts[i]; !ok {
				i++
				continue
			}
			from = i
		}

		e := seq[idx]
		switch {
		case e.matches(toks[i]):
			idx++
			i++
		case e.optional:
			idx++
		case idx > 0:
			idx = 0
			continue
		default:
			i++
			continue
		}

		if idx == len(seq) {
			complete(i)
		}
	}

	if idx > 0 && allOptional(seq[idx:]) {
		complete(len(toks))
	}
	return out
}

func allOptional(seq []expectation) bool {
	for _, e := range seq {
		if !e.optional {
			return false
		}
	}
	return true
}

// mergeLongest adds c to cs unless it overlaps a longer context
func mergeLongest(cs []*Context, c *Context) []*Context {
	for i, o := range cs {
		if c.From < o.To && o.From < c.To {
			if c.To-c.From > o.To-o.From {
				cs[i] = c
			}
			return cs
		}
	}
	cs = append(cs, c)
	sortContexts(cs)
	return cs
}

// words spells a declaration made of space separated words with an
// optional trailing colon
func words(ws ...string) []expectation {
	var seq []expectation
	for i, w := range ws {
		if i > 0 {
			seq = append(seq, expectation{kind: token.SingleSpace})
		}
		seq = append(seq, expectation{kind: token.Word, word: w})
	}
	return append(seq, expectation{kind: token.Colon, optional: true})
}

// exactWords spells a case-sensitive marker without colon
func exactWords(ws ...string) []expectation {
	var seq []expectation
	for i, w := range ws {
		if i > 0 {
			seq = append(seq, expectation{kind: token.SingleSpace})
		}
		seq = append(seq, expectation{kind: token.Word, word: w, exact: true})
	}
	return seq
}

// bracketed spells a test case or keyword setting like "[Setup]"
func bracketed(w string) []expectation {
	return []expectation{
		{kind: token.LeftSquare},
		{kind: token.Word, word: w},
		{kind: token.RightSquare},
	}
}

func declaration(format token.Format, name string, ctx ContextType, seqs ...[]expectation) *DeclarationRecognizer {
	return &DeclarationRecognizer{
		format: format,
		grammar: declarationGrammar{
			name:      name,
			ctx:       ctx,
			sequences: seqs,
		},
	}
}

// SettingDeclarationRecognizers returns one recognizer per settings table
// declaration, including the "WITH NAME" library alias marker
func SettingDeclarationRecognizers(format token.Format) []Recognizer {
	return []Recognizer{
		declaration(format, "setting-library", ContextSettingLibrary, words("Library")),
		declaration(format, "setting-resource", ContextSettingResource, words("Resource")),
		declaration(format, "setting-variables", ContextSettingVariables, words("Variables")),
		declaration(format, "setting-documentation", ContextSettingDocumentation, words("Documentation")),
		declaration(format, "setting-metadata", ContextSettingMetadata, words("Metadata")),
		declaration(format, "setting-suite-setup", ContextSettingSuiteSetup,
			words("Suite", "Setup"), words("Suite", "Precondition")),
		declaration(format, "setting-suite-teardown", ContextSettingSuiteTeardown,
			words("Suite", "Teardown"), words("Suite", "Postcondition")),
		declaration(format, "setting-force-tags", ContextSettingForceTags, words("Force", "Tags")),
		declaration(format, "setting-default-tags", ContextSettingDefaultTags, words("Default", "Tags")),
		declaration(format, "setting-test-setup", ContextSettingTestSetup,
			words("Test", "Setup"), words("Test", "Precondition")),
		declaration(format, "setting-test-teardown", ContextSettingTestTeardown,
			words("Test", "Teardown"), words("Test", "Postcondition")),
		declaration(format, "setting-test-template", ContextSettingTestTemplate, words("Test", "Template")),
		declaration(format, "setting-test-timeout", ContextSettingTestTimeout, words("Test", "Timeout")),
		declaration(format, "setting-with-name", ContextSettingWithName, exactWords("WITH", "NAME")),
	}
}

// ElementSettingRecognizers returns the recognizers for bracketed test
// case and keyword settings
func ElementSettingRecognizers(format token.Format) []Recognizer {
	return []Recognizer{
		declaration(format, "element-documentation", ContextElementDocumentation, bracketed("Documentation")),
		declaration(format, "element-tags", ContextElementTags, bracketed("Tags")),
		declaration(format, "element-setup", ContextElementSetup, bracketed("Setup"), bracketed("Precondition")),
		declaration(format, "element-teardown", ContextElementTeardown, bracketed("Teardown"), bracketed("Postcondition")),
		declaration(format, "element-template", ContextElementTemplate, bracketed("Template")),
		declaration(format, "element-timeout", ContextElementTimeout, bracketed("Timeout")),
		declaration(format, "element-arguments", ContextElementArguments, bracketed("Arguments")),
		declaration(format, "element-return", ContextElementReturn, bracketed("Return")),
	}
}
