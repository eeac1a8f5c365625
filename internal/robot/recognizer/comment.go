package recognizer

import (
	"strings"

	"github.com/msto63/tabwerk/internal/robot/token"
)

// commentStart finds where a comment opens on a line
type commentStart func(line *token.Line, cell Segment) bool

// CommentRecognizer finds comments. A comment opens at a cell start and
// runs to the end of the line.
type CommentRecognizer struct {
	name   string
	format token.Format
	ctx    ContextType
	opens  commentStart
}

// NewHashCommentRecognizer recognizes "# ..." comments. An escaped hash
// ("\#") never opens a comment.
func NewHashCommentRecognizer(format token.Format) *CommentRecognizer {
	return &CommentRecognizer{
		name:   "hash-comment",
		format: format,
		ctx:    ContextDeclaredComment,
		opens: func(line *token.Line, cell Segment) bool {
			return line.Tokens[cell.From].Kind == token.Hash
		},
	}
}

// NewCommentKeywordRecognizer recognizes the "Comment" keyword, which
// turns the rest of the row into a comment
func NewCommentKeywordRecognizer(format token.Format) *CommentRecognizer {
	return &CommentRecognizer{
		name:   "comment-keyword",
		format: format,
		ctx:    ContextCommentKeyword,
		opens: func(line *token.Line, cell Segment) bool {
			if cell.To-cell.From != 1 {
				return false
			}
			t := line.Tokens[cell.From]
			return t.Kind == token.Word && strings.EqualFold(t.Text, "comment")
		},
	}
}

// Name implements Recognizer
func (r *CommentRecognizer) Name() string {
	return r.name
}

// Recognize implements Recognizer
func (r *CommentRecognizer) Recognize(lines []*token.Line, iv token.Interval) []*Context {
	return eachLine(lines, iv, r.recognizeLine)
}

func (r *CommentRecognizer) recognizeLine(line *token.Line) []*Context {
	for _, cell := range Cells(line, line.Dialect(r.format)) {
		if r.opens(line, cell) {
			return []*Context{newContext(r.ctx, line, cell.From, len(line.Tokens))}
		}
	}
	return nil
}
