package recognizer

import (
	"github.com/msto63/tabwerk/internal/robot/token"
)

// variableState is the state of the variable scanner
type variableState int

const (
	vIdle      variableState = iota // outside any variable
	vSigilSeen                      // sigil read, "{" expected
	vInBody                         // inside "{...}"
	variableStateCount
)

// variableSymbol classifies one token for the variable scanner
type variableSymbol int

const (
	vsSigil variableSymbol = iota
	vsOpen
	vsClose
	vsOther
	variableSymbolCount
)

// variableTable maps state and symbol to the next state. The pending
// stack and the escape flag are handled by the scanner around it.
var variableTable = [variableStateCount][variableSymbolCount]variableState{
	vIdle:      {vsSigil: vSigilSeen, vsOpen: vIdle, vsClose: vIdle, vsOther: vIdle},
	vSigilSeen: {vsSigil: vSigilSeen, vsOpen: vInBody, vsClose: vIdle, vsOther: vIdle},
	vInBody:    {vsSigil: vSigilSeen, vsOpen: vInBody, vsClose: vInBody, vsOther: vInBody},
}

// VariableRecognizer finds variable references of one sigil kind, e.g.
// "${name}", "@{list}[0]" or "&{dict}[key]"
type VariableRecognizer struct {
	name  string
	sigil token.Kind
	ctx   ContextType
}

// NewScalarVariableRecognizer recognizes "${...}"
func NewScalarVariableRecognizer() *VariableRecognizer {
	return &VariableRecognizer{name: "scalar-variable", sigil: token.Dollar, ctx: ContextScalarVariable}
}

// NewListVariableRecognizer recognizes "@{...}"
func NewListVariableRecognizer() *VariableRecognizer {
	return &VariableRecognizer{name: "list-variable", sigil: token.At, ctx: ContextListVariable}
}

// NewDictionaryVariableRecognizer recognizes "&{...}"
func NewDictionaryVariableRecognizer() *VariableRecognizer {
	return &VariableRecognizer{name: "dictionary-variable", sigil: token.Ampersand, ctx: ContextDictionaryVariable}
}

// NewEnvironmentVariableRecognizer recognizes "%{...}"
func NewEnvironmentVariableRecognizer() *VariableRecognizer {
	return &VariableRecognizer{name: "environment-variable", sigil: token.Percent, ctx: ContextEnvironmentVariable}
}

// Name implements Recognizer
func (r *VariableRecognizer) Name() string {
	return r.name
}

// Recognize implements Recognizer
func (r *VariableRecognizer) Recognize(lines []*token.Line, iv token.Interval) []*Context {
	return eachLine(lines, iv, r.recognizeLine)
}

// variableFrame is one open variable on the pending stack
type variableFrame struct {
	from   int        // index of the sigil
	depth  int        // unbalanced "{" inside the body
	nested []*Context // closed variables inside this one
}

func (r *VariableRecognizer) recognizeLine(line *token.Line) []*Context {
	toks := line.Tokens

	var (
		out     []*Context
		stack   []*variableFrame
		state   = vIdle
		sigilAt = -1
		escaped bool
	)

	resume := func() variableState {
		if len(stack) > 0 {
			return vInBody
		}
		return vIdle
	}

	for i := 0; i < len(toks); i++ {
		tok := toks[i]

		if escaped {
			escaped = false
			if state == vSigilSeen {
				state = resume()
			}
			continue
		}
		if tok.Kind == token.Backslash {
			escaped = true
			continue
		}

		sym := r.classify(tok)
		next := variableTable[state][sym]

		switch {
		case sym == vsSigil:
			sigilAt = i

		case state == vSigilSeen && sym == vsOpen:
			stack = append(stack, &variableFrame{from: sigilAt})

		case state == vSigilSeen:
			next = resume()

		case state == vInBody && sym == vsOpen:
			stack[len(stack)-1].depth++

		case state == vInBody && sym == vsClose:
			top := stack[len(stack)-1]
			if top.depth > 0 {
				top.depth--
				break
			}
			stack = stack[:len(stack)-1]
			end := r.itemAccessEnd(toks, i+1)
			ctx := newContext(r.ctx, line, top.from, end)
			i = end - 1
			if len(stack) == 0 {
				out = append(out, ctx)
			} else {
				parent := stack[len(stack)-1]
				parent.nested = append(parent.nested, ctx)
			}
			next = resume()
		}
		state = next
	}

	// unclosed variables give up their closed inner variables
	for _, f := range stack {
		out = append(out, f.nested...)
	}
	sortContexts(out)
	return out
}

func (r *VariableRecognizer) classify(tok token.Token) variableSymbol {
	switch tok.Kind {
	case r.sigil:
		return vsSigil
	case token.LeftCurly:
		return vsOpen
	case token.RightCurly:
		return vsClose
	default:
		return vsOther
	}
}

// itemAccessEnd extends a closed variable over directly following
// "[...]" item access parts and returns the index behind them
func (r *VariableRecognizer) itemAccessEnd(toks []token.Token, i int) int {
	end := i
	for end < len(toks) && toks[end].Kind == token.LeftSquare {
		j := end + 1
		for j < len(toks) && toks[j].Kind != token.RightSquare && !toks[j].Kind.IsWhitespace() {
			j++
		}
		if j >= len(toks) || toks[j].Kind != token.RightSquare || j == end+1 {
			break
		}
		end = j + 1
	}
	return end
}
