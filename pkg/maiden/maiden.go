// Package maiden is the embeddable Core API (spec.md section 6):
// Parse, Run, and PrintProgram over a Rockstar program, independent of
// any CLI or transport.
package maiden

import (
	"io"

	"maiden/internal/ast"
	"maiden/internal/interp"
	"maiden/internal/parser"
)

// Program is a parsed Rockstar program, ready to Run or print.
type Program = ast.Program

// RunResult reports whether a run completed successfully.
type RunResult = interp.RunResult

// Parse lexes and parses source into a Program. The returned error, when
// non-nil, is always a *maiden/internal/errors.Error carrying a Kind and
// source line.
func Parse(source string) (*Program, error) {
	return parser.Parse(source)
}

// Run executes program's top-level block against stdin/stdout.
func Run(program *Program, stdin io.Reader, stdout io.Writer) RunResult {
	return interp.Run(program, stdin, stdout)
}

// PrintProgram renders program as Rockstar-like text (see ast.Print). The
// output is a readable dump: it does not reproduce the original text, and
// programs with operators or pronouns do not parse back to an equivalent
// AST.
func PrintProgram(program *Program) string {
	return ast.Print(program)
}
