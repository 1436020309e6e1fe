package hindic

import "fmt"

// CompileError is the common interface of every diagnostic the pipeline
// can produce: lexical, syntactic, or semantic.
type CompileError interface {
	error
	Location() Position
}

// diagnostic is the shared implementation behind every CompileError
// variant: a position and a formatted message.
type diagnostic struct {
	Pos     Position
	Message string
}

func (d diagnostic) Error() string {
	return fmt.Sprintf("Line %d, Column %d: Error: %s", d.Pos.Line, d.Pos.Column, d.Message)
}

func (d diagnostic) Location() Position {
	return d.Pos
}

// LexError reports a malformed token (an unterminated string, an
// unrecognized byte).
type LexError struct{ diagnostic }

func newLexError(pos Position, message string) *LexError {
	return &LexError{diagnostic{Pos: pos, Message: message}}
}

// SyntaxError reports a grammar violation found by the Parser.
type SyntaxError struct{ diagnostic }

func newSyntaxError(pos Position, format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{diagnostic{Pos: pos, Message: fmt.Sprintf(format, args...)}}
}

// SemanticError reports a violated typing or scoping rule found by the
// Analyzer.
type SemanticError struct{ diagnostic }

func newSemanticError(pos Position, format string, args ...interface{}) *SemanticError {
	return &SemanticError{diagnostic{Pos: pos, Message: fmt.Sprintf(format, args...)}}
}
