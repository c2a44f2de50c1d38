package parser

import "fmt"

// Position is a location in the dump text.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

// SyntaxError reports a statement the parser could not read.
// Pos is where the offending statement (or unterminated token) starts.
type SyntaxError struct {
	Pos     Position
	Message string
}

func (e *SyntaxError) Error() string {
	if !e.Pos.IsValid() {
		return "syntax error: " + e.Message
	}
	return fmt.Sprintf("syntax error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Common error messages
const (
	ErrUnterminatedString  = "unterminated quoted literal"
	ErrUnterminatedComment = "unterminated block comment"
	ErrNoColumnDefinitions = "could not read column definitions of table %q"
	ErrUnexpectedStatement = "expected %s statement, got %T"
)
