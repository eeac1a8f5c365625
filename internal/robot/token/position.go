package token

import "fmt"

// Position locates a token in the source file
type Position struct {
	Line   int // 1-based line number
	Column int // 0-based column in bytes
	Offset int // 0-based byte offset in the file
}

// Unset marks synthetic tokens that have no source location
var Unset = Position{Line: -1, Column: -1, Offset: -1}

// IsSet reports whether the position points into a source file
func (p Position) IsSet() bool {
	return p.Line >= 0 && p.Column >= 0 && p.Offset >= 0
}

// Compare orders two positions by offset. Unset positions sort first.
func (p Position) Compare(o Position) int {
	switch {
	case !p.IsSet() && !o.IsSet():
		return 0
	case !p.IsSet():
		return -1
	case !o.IsSet():
		return 1
	case p.Offset < o.Offset:
		return -1
	case p.Offset > o.Offset:
		return 1
	default:
		return 0
	}
}

// String returns a string representation of the position
func (p Position) String() string {
	if !p.IsSet() {
		return "unset"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
