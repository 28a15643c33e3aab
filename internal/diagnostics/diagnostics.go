package diagnostics

import (
	"fmt"

	"github.com/slate-lang/slate/internal/token"
)

// Code identifies a diagnostic family and number, e.g. "L002".
type Code string

const (
	ErrL001 Code = "L001" // unexpected character
	ErrL002 Code = "L002" // unterminated string
	ErrL003 Code = "L003" // invalid UTF-8

	ErrP001 Code = "P001" // unexpected token
	ErrP002 Code = "P002" // expected token
	ErrP003 Code = "P003" // no prefix parse rule
	ErrP004 Code = "P004" // non-trailing default parameter
	ErrP005 Code = "P005" // expression-form if missing else

	ErrT001 Code = "T001" // unknown type name in an annotation
	ErrT002 Code = "T002" // undefined name
	ErrT003 Code = "T003" // constructor mismatch
	ErrT004 Code = "T004" // occurs check
	ErrT005 Code = "T005" // arity mismatch
	ErrT006 Code = "T006" // assignment to immutable binding
	ErrT007 Code = "T007" // break/continue outside loop
	ErrT008 Code = "T008" // return outside function

	ErrR001 Code = "R001" // division by zero
	ErrR002 Code = "R002" // not callable
	ErrR003 Code = "R003" // runtime arity mismatch
	ErrR004 Code = "R004" // input failure

	ErrI001 Code = "I001" // invariant violation
)

// kindOf maps a code to its user-visible error kind.
func kindOf(code Code) string {
	switch code[0] {
	case 'L':
		return "LexError"
	case 'P':
		return "ParseError"
	case 'T':
		return "TypeError"
	case 'R':
		return "RuntimeError"
	default:
		return "InternalError"
	}
}

// DiagnosticError is the structured error every pipeline stage produces.
type DiagnosticError struct {
	Code    Code
	Kind    string
	Message string
	Line    int
	Column  int
	File    string
}

func (e *DiagnosticError) Error() string {
	return fmt.Sprintf("%s: %s at %d:%d", e.Kind, e.Message, e.Line, e.Column)
}

// NewError builds a diagnostic anchored at the given token's position.
func NewError(code Code, tok token.Token, format string, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{
		Code:    code,
		Kind:    kindOf(code),
		Message: fmt.Sprintf(format, args...),
		Line:    tok.Line,
		Column:  tok.Column,
	}
}

// NewErrorAt builds a diagnostic at an explicit position.
func NewErrorAt(code Code, pos token.Position, format string, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{
		Code:    code,
		Kind:    kindOf(code),
		Message: fmt.Sprintf(format, args...),
		Line:    pos.Line,
		Column:  pos.Column,
	}
}

// IsInternal reports whether the diagnostic is an invariant violation that
// should abort the process rather than the current input.
func (e *DiagnosticError) IsInternal() bool { return e.Kind == "InternalError" }
