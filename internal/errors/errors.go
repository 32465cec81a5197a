// Package errors defines maiden's closed error taxonomy and formats errors
// with source context the way a compiler diagnostic is expected to read.
package errors

import (
	"fmt"
	"strings"
)

// Kind is the closed set of error kinds a parse or a run can fail with.
// Every kind carries a source line (0 when truly unknown).
type Kind int

const (
	UnparsedText Kind = iota
	MissingVariable
	MissingFunction
	WrongArgCount
	UnbalancedExpression
	BadBooleanResolve
	BadCommandSequence
	ParseNumberError
	BadIs
	BadPut
	NoEndOfIf
	ElseWithNoIf
	MultipleElse
	NoEndFunction
	NoEndLoop
	ContinueOutsideLoop
	BreakOutsideLoop
	Unimplemented
	StackOverflow
	InstructionLimit
	UndefinedPronoun
	Infinity
	Incomplete
	BadString
	IoError
)

var kindNames = map[Kind]string{
	UnparsedText:         "UnparsedText",
	MissingVariable:      "MissingVariable",
	MissingFunction:      "MissingFunction",
	WrongArgCount:        "WrongArgCount",
	UnbalancedExpression: "UnbalancedExpression",
	BadBooleanResolve:    "BadBooleanResolve",
	BadCommandSequence:   "BadCommandSequence",
	ParseNumberError:     "ParseNumberError",
	BadIs:                "BadIs",
	BadPut:               "BadPut",
	NoEndOfIf:            "NoEndOfIf",
	ElseWithNoIf:         "ElseWithNoIf",
	MultipleElse:         "MultipleElse",
	NoEndFunction:        "NoEndFunction",
	NoEndLoop:            "NoEndLoop",
	ContinueOutsideLoop:  "ContinueOutsideLoop",
	BreakOutsideLoop:     "BreakOutsideLoop",
	Unimplemented:        "Unimplemented",
	StackOverflow:        "StackOverflow",
	InstructionLimit:     "InstructionLimit",
	UndefinedPronoun:     "UndefinedPronoun",
	Infinity:             "Infinity",
	Incomplete:           "Incomplete",
	BadString:            "BadString",
	IoError:              "IoError",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UnknownError"
}

// Error is a single parse-time or run-time failure. Line is 1-based and is
// 0 only when a line genuinely cannot be attributed (e.g. an empty program).
// Message carries auxiliary detail (an offending token sequence, a variable
// name, the two operands of a divide-by-zero) already folded in.
type Error struct {
	Kind    Kind
	Line    int
	Message string
	Source  string // full source text, for Format's source-line context
}

// New builds an Error with a pre-rendered message.
func New(kind Kind, line int, message string) *Error {
	return &Error{Kind: kind, Line: line, Message: message}
}

// Newf builds an Error with a printf-style message.
func Newf(kind Kind, line int, format string, args ...any) *Error {
	return New(kind, line, fmt.Sprintf(format, args...))
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Format()
}

// WithSource attaches the source text so Format can print the offending
// line with it. Returns e for chaining.
func (e *Error) WithSource(source string) *Error {
	e.Source = source
	return e
}

// Format renders "<Kind> at line <N>: <message>" plus, when source is
// available, the offending line. Mirrors the teacher's CompilerError.Format:
// a header line followed by the numbered source line.
func (e *Error) Format() string {
	var sb strings.Builder

	if e.Line > 0 {
		fmt.Fprintf(&sb, "%s at line %d: %s", e.Kind, e.Line, e.Message)
	} else {
		fmt.Fprintf(&sb, "%s: %s", e.Kind, e.Message)
	}

	if e.Source != "" && e.Line > 0 {
		if line := sourceLine(e.Source, e.Line); line != "" {
			fmt.Fprintf(&sb, "\n%4d | %s", e.Line, line)
		}
	}

	return sb.String()
}

func sourceLine(source string, lineNum int) string {
	lines := strings.Split(source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}
