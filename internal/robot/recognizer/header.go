package recognizer

import (
	"strings"

	"github.com/msto63/tabwerk/internal/robot/token"
)

// headerState is the progress of one header candidate
type headerState int

const (
	hIdle      headerState = iota // waiting for leading asterisks
	hLead                         // leading asterisks seen
	hLeadSpace                    // asterisks and one space
	hLeadWide                     // asterisks and a double space or tabulator
	hName                         // part of a multi word name seen
	hNameSpace                    // partial name and one space
	hNameWide                     // partial name and a wide space
	hDone                         // complete name seen
	hDoneSpace                    // complete name and one space
	hDoneWide                     // complete name and a wide space
	hTrail                        // trailing asterisks seen
	headerStateCount
)

// headerSymbol is the classified input token
type headerSymbol int

const (
	symAsterisks headerSymbol = iota
	symSpace
	symWideSpace
	symNamePart // continues the name, name still incomplete
	symNameEnd  // completes the name
	symRepeat   // starts the name again after it was completed
	symOther
	symEnd // virtual end of line
	headerSymbolCount
)

// headerAction tells the matcher what to do after a transition
type headerAction int

const (
	actShift  headerAction = iota // consume the token into the candidate
	actSkip                       // no candidate, ignore the token
	actReset                      // drop the candidate, retry the token from hIdle
	actEmit                       // emit the candidate, retry the token from hIdle
	actReopen                     // emit the candidate, open a new one at the token
)

type headerTransition struct {
	next   headerState
	action headerAction
}

// headerTable is the complete transition table. Missing entries default
// to a reset, so every state/symbol pair is defined.
var headerTable = func() [headerStateCount][headerSymbolCount]headerTransition {
	var t [headerStateCount][headerSymbolCount]headerTransition
	for s := range t {
		for y := range t[s] {
			t[s][y] = headerTransition{hIdle, actReset}
		}
	}

	for y := range t[hIdle] {
		t[hIdle][y] = headerTransition{hIdle, actSkip}
	}
	t[hIdle][symAsterisks] = headerTransition{hLead, actShift}

	t[hLead][symSpace] = headerTransition{hLeadSpace, actShift}
	t[hLead][symWideSpace] = headerTransition{hLeadWide, actShift}
	t[hLead][symNamePart] = headerTransition{hName, actShift}
	t[hLead][symNameEnd] = headerTransition{hDone, actShift}

	for _, s := range []headerState{hLeadSpace, hLeadWide, hNameSpace, hNameWide} {
		t[s][symNamePart] = headerTransition{hName, actShift}
		t[s][symNameEnd] = headerTransition{hDone, actShift}
	}

	t[hName][symSpace] = headerTransition{hNameSpace, actShift}
	t[hName][symWideSpace] = headerTransition{hNameWide, actShift}

	// everything behind a complete name is optional
	for _, s := range []headerState{hDone, hDoneSpace, hDoneWide, hTrail} {
		for y := range t[s] {
			t[s][y] = headerTransition{hIdle, actEmit}
		}
	}
	t[hDone][symSpace] = headerTransition{hDoneSpace, actShift}
	t[hDone][symWideSpace] = headerTransition{hDoneWide, actShift}
	t[hDone][symAsterisks] = headerTransition{hTrail, actShift}
	t[hDoneSpace][symAsterisks] = headerTransition{hTrail, actShift}
	t[hDoneSpace][symRepeat] = headerTransition{hIdle, actReopen}
	t[hDoneWide][symAsterisks] = headerTransition{hTrail, actShift}
	t[hDoneWide][symRepeat] = headerTransition{hIdle, actReopen}

	// free form names keep growing word by word
	for _, s := range []headerState{hDoneSpace, hDoneWide} {
		t[s][symNamePart] = headerTransition{hName, actShift}
		t[s][symNameEnd] = headerTransition{hDone, actShift}
	}

	return t
}()

// headerGrammar is the immutable configuration of a header recognizer
type headerGrammar struct {
	name      string
	correct   ContextType
	incorrect ContextType
	names     [][]string // allowed table names, nil accepts any words
	reserved  [][]string // names rejected when names is nil
}

var (
	settingsNames  = [][]string{{"settings"}, {"setting"}, {"metadata"}}
	variablesNames = [][]string{{"variables"}, {"variable"}}
	testCasesNames = [][]string{{"test", "cases"}, {"test", "case"}}
	keywordsNames  = [][]string{{"keywords"}, {"keyword"}, {"user", "keywords"}, {"user", "keyword"}}
)

// HeaderRecognizer finds table headers like "*** Settings ***"
type HeaderRecognizer struct {
	grammar headerGrammar
}

// NewSettingsTableHeaderRecognizer recognizes "*** Settings ***"
func NewSettingsTableHeaderRecognizer() *HeaderRecognizer {
	return &HeaderRecognizer{grammar: headerGrammar{
		name:      "settings-table-header",
		correct:   ContextSettingsTableHeader,
		incorrect: ContextSettingsTableHeaderIncorrect,
		names:     settingsNames,
	}}
}

// NewVariablesTableHeaderRecognizer recognizes "*** Variables ***"
func NewVariablesTableHeaderRecognizer() *HeaderRecognizer {
	return &HeaderRecognizer{grammar: headerGrammar{
		name:      "variables-table-header",
		correct:   ContextVariablesTableHeader,
		incorrect: ContextVariablesTableHeaderIncorrect,
		names:     variablesNames,
	}}
}

// NewTestCasesTableHeaderRecognizer recognizes "*** Test Cases ***"
func NewTestCasesTableHeaderRecognizer() *HeaderRecognizer {
	return &HeaderRecognizer{grammar: headerGrammar{
		name:      "test-cases-table-header",
		correct:   ContextTestCasesTableHeader,
		incorrect: ContextTestCasesTableHeaderIncorrect,
		names:     testCasesNames,
	}}
}

// NewKeywordsTableHeaderRecognizer recognizes "*** Keywords ***" and the
// "User Keyword(s)" spellings
func NewKeywordsTableHeaderRecognizer() *HeaderRecognizer {
	return &HeaderRecognizer{grammar: headerGrammar{
		name:      "keywords-table-header",
		correct:   ContextKeywordsTableHeader,
		incorrect: ContextKeywordsTableHeaderIncorrect,
		names:     keywordsNames,
	}}
}

// NewUserTableHeaderRecognizer recognizes headers of tables that are not
// one of the four known tables, e.g. "*** Comments ***"
func NewUserTableHeaderRecognizer() *HeaderRecognizer {
	var reserved [][]string
	for _, group := range [][][]string{settingsNames, variablesNames, testCasesNames, keywordsNames} {
		reserved = append(reserved, group...)
	}
	return &HeaderRecognizer{grammar: headerGrammar{
		name:      "user-table-header",
		correct:   ContextUserTableHeader,
		incorrect: ContextUserTableHeader,
		reserved:  reserved,
	}}
}

// Name implements Recognizer
func (r *HeaderRecognizer) Name() string {
	return r.grammar.name
}

// Recognize implements Recognizer
func (r *HeaderRecognizer) Recognize(lines []*token.Line, iv token.Interval) []*Context {
	return eachLine(lines, iv, r.recognizeLine)
}

// headerCandidate is the in-progress match
type headerCandidate struct {
	state     headerState
	from      int
	last      int // index behind the last significant token
	words     []string
	lead      bool // started with asterisks
	wide      bool // a wide space is pending
	incorrect bool
}

func (r *HeaderRecognizer) recognizeLine(line *token.Line) []*Context {
	var out []*Context
	c := &headerCandidate{state: hIdle}

	emit := func() {
		if c.last > c.from && r.accept(c.words) {
			t := r.grammar.correct
			if c.incorrect || !c.lead {
				t = r.grammar.incorrect
			}
			out = append(out, newContext(t, line, c.from, c.last))
		}
		*c = headerCandidate{state: hIdle}
	}

	toks := line.Tokens
	for i := 0; i <= len(toks); i++ {
		sym := symEnd
		if i < len(toks) {
			sym = r.classify(c, toks[i])
		}

		tr := headerTable[c.state][sym]
		switch tr.action {
		case actSkip:
			continue
		case actShift:
			if c.state == hIdle {
				*c = headerCandidate{from: i, lead: true}
			}
			r.shift(c, tr.next, toks[i], i)
		case actReset:
			*c = headerCandidate{state: hIdle}
			if sym == symAsterisks {
				i--
			}
		case actEmit:
			emit()
			if sym == symAsterisks {
				i--
			}
		case actReopen:
			emit()
			*c = headerCandidate{from: i}
			next := hName
			if r.complete([]string{strings.ToLower(toks[i].Text)}) {
				next = hDone
			}
			r.shift(c, next, toks[i], i)
		}
	}
	return out
}

// shift consumes tok into the candidate
func (r *HeaderRecognizer) shift(c *headerCandidate, next headerState, tok token.Token, i int) {
	switch tok.Kind {
	case token.SingleSpace:
	case token.DoubleSpace, token.Tab:
		c.wide = true
	default:
		if tok.Kind == token.Word {
			c.words = append(c.words, strings.ToLower(tok.Text))
		}
		if c.wide {
			c.incorrect = true
			c.wide = false
		}
		c.last = i + 1
	}
	c.state = next
}

// classify maps a token onto the symbol alphabet of the transition table
func (r *HeaderRecognizer) classify(c *headerCandidate, tok token.Token) headerSymbol {
	switch tok.Kind {
	case token.SingleAsterisk, token.ManyAsterisks:
		return symAsterisks
	case token.SingleSpace:
		return symSpace
	case token.DoubleSpace, token.Tab:
		return symWideSpace
	case token.Word:
	default:
		return symOther
	}

	word := strings.ToLower(tok.Text)
	switch c.state {
	case hLead, hLeadSpace, hLeadWide, hNameSpace, hNameWide:
		return r.classifyName(append(append([]string(nil), c.words...), word))
	case hDoneSpace, hDoneWide:
		if r.grammar.names == nil {
			return symNameEnd
		}
		if r.prefix([]string{word}) {
			return symRepeat
		}
	}
	return symOther
}

func (r *HeaderRecognizer) classifyName(words []string) headerSymbol {
	if r.complete(words) {
		return symNameEnd
	}
	if r.prefix(words) {
		return symNamePart
	}
	return symOther
}

// complete reports whether words form one of the allowed names
func (r *HeaderRecognizer) complete(words []string) bool {
	if r.grammar.names == nil {
		return true
	}
	for _, n := range r.grammar.names {
		if equalWords(n, words) {
			return true
		}
	}
	return false
}

// prefix reports whether words start one of the allowed names
func (r *HeaderRecognizer) prefix(words []string) bool {
	if r.grammar.names == nil {
		return true
	}
	for _, n := range r.grammar.names {
		if len(words) <= len(n) && equalWords(n[:len(words)], words) {
			return true
		}
	}
	return false
}

// accept filters the final name through the reserved list
func (r *HeaderRecognizer) accept(words []string) bool {
	if len(words) == 0 {
		return false
	}
	for _, n := range r.grammar.reserved {
		if equalWords(n, words) {
			return false
		}
	}
	return true
}

func equalWords(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
