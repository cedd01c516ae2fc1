package diag

import (
	"errors"
	"fmt"

	"whilelang/pkg/color"
)

type Kind int

const (
	Unknown Kind = iota

	// parse time
	MalformedStatement
	MissingTerminator
	UnbalancedParentheses
	MissingEscapeMarker
	NestedMethodDefinition
	MethodMissingReturn
	ReturnArityMismatch
	DuplicateMethod

	// run time
	UndefinedVariable
	UndefinedMethod
	ArgumentCountMismatch
	RecursionLimit
	StepLimit
)

var kindNames = map[Kind]string{
	MalformedStatement:     "Malformed statement",
	MissingTerminator:      "Missing terminator",
	UnbalancedParentheses:  "Unbalanced parentheses",
	MissingEscapeMarker:    "Missing escape marker",
	NestedMethodDefinition: "Nested method definition",
	MethodMissingReturn:    "Method missing return",
	ReturnArityMismatch:    "Return arity mismatch",
	DuplicateMethod:        "Duplicate method",
	UndefinedVariable:      "Undefined variable",
	UndefinedMethod:        "Undefined method",
	ArgumentCountMismatch:  "Argument count mismatch",
	RecursionLimit:         "Recursion limit exceeded",
	StepLimit:              "Step limit exceeded",
}

// String returns the human readable name of the kind
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}

	return fmt.Sprintf("UNKNOWN(%d)", int(k))
}

// IsRuntime reports whether the kind can only be raised while executing
func (k Kind) IsRuntime() bool {
	return k >= UndefinedVariable
}

// Error is a diagnostic raised by the parser or the interpreter.
// Line is the 1-based normalized source line, 0 when unknown.
type Error struct {
	Kind Kind
	Line int
	Name string // offending identifier, if any
	Msg  string
}

// New creates a new diagnostic
func New(kind Kind, line int, name, msg string) *Error {
	return &Error{Kind: kind, Line: line, Name: name, Msg: msg}
}

// Newf creates a new diagnostic with a formatted message
func Newf(kind Kind, line int, format string, args ...any) *Error {
	return &Error{Kind: kind, Line: line, Msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	msg := color.RedText(e.Kind.String())
	if e.Name != "" {
		msg += " `" + color.BlueText(e.Name) + "`"
	}
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Line > 0 {
		msg += " at " + color.YellowText(fmt.Sprintf("Line: %d", e.Line))
	}

	return msg
}

// Is matches any *Error of the same kind, so sentinels work with errors.Is
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Kind == e.Kind && (t.Line == 0 || t.Line == e.Line) && (t.Name == "" || t.Name == e.Name)
}

var (
	ErrMalformedStatement     = &Error{Kind: MalformedStatement}
	ErrMissingTerminator      = &Error{Kind: MissingTerminator}
	ErrUnbalancedParentheses  = &Error{Kind: UnbalancedParentheses}
	ErrMissingEscapeMarker    = &Error{Kind: MissingEscapeMarker}
	ErrNestedMethodDefinition = &Error{Kind: NestedMethodDefinition}
	ErrMethodMissingReturn    = &Error{Kind: MethodMissingReturn}
	ErrReturnArityMismatch    = &Error{Kind: ReturnArityMismatch}
	ErrDuplicateMethod        = &Error{Kind: DuplicateMethod}
	ErrUndefinedVariable      = &Error{Kind: UndefinedVariable}
	ErrUndefinedMethod        = &Error{Kind: UndefinedMethod}
	ErrArgumentCountMismatch  = &Error{Kind: ArgumentCountMismatch}
	ErrRecursionLimit         = &Error{Kind: RecursionLimit}
	ErrStepLimit              = &Error{Kind: StepLimit}
)

// KindOf extracts the diagnostic kind from err, Unknown if err is not a diagnostic
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return Unknown
}
