// Package parser consumes maiden's token stream and produces an
// *ast.Program (spec.md section 4.2). It works a source line at a time: a
// stack of open block-builders tracks nested if/else, while/until, and
// function bodies, sealing each one when a blank line closes it; a block
// still open at EOF is a parse error.
package parser

import (
	"maiden/internal/ast"
	"maiden/internal/errors"
	"maiden/internal/lexer"
)

// Parse lexes and parses source into a Program.
func Parse(source string) (*ast.Program, error) {
	tokens, lexErr := lexer.Lex(source)
	if lexErr != nil {
		if le, ok := lexErr.(*lexer.LexError); ok {
			return nil, errors.New(errs.UnparsedText, le.Line, le.Snippet).WithSource(source)
		}
		return nil, errors.New(errs.UnparsedText, 0, lexErr.Error()).WithSource(source)
	}

	p := newParser(tokens, source)
	prog, err := p.parseProgram()
	if err != nil {
		if e, ok := err.(*errors.Error); ok {
			e.WithSource(source)
		}
		return nil, err
	}
	return prog, nil
}

// errs avoids stuttering "errors.Kind" at every call site below.
var errs = struct {
	UnparsedText,
	MissingVariable,
	MissingFunction,
	WrongArgCount,
	UnbalancedExpression,
	BadBooleanResolve,
	BadCommandSequence,
	ParseNumberError,
	BadIs,
	BadPut,
	NoEndOfIf,
	ElseWithNoIf,
	MultipleElse,
	NoEndFunction,
	NoEndLoop,
	ContinueOutsideLoop,
	BreakOutsideLoop,
	UndefinedPronoun errors.Kind
}{
	UnparsedText:         errors.UnparsedText,
	MissingVariable:      errors.MissingVariable,
	MissingFunction:      errors.MissingFunction,
	WrongArgCount:        errors.WrongArgCount,
	UnbalancedExpression: errors.UnbalancedExpression,
	BadBooleanResolve:    errors.BadBooleanResolve,
	BadCommandSequence:   errors.BadCommandSequence,
	ParseNumberError:     errors.ParseNumberError,
	BadIs:                errors.BadIs,
	BadPut:               errors.BadPut,
	NoEndOfIf:            errors.NoEndOfIf,
	ElseWithNoIf:         errors.ElseWithNoIf,
	MultipleElse:         errors.MultipleElse,
	NoEndFunction:        errors.NoEndFunction,
	NoEndLoop:            errors.NoEndLoop,
	ContinueOutsideLoop:  errors.ContinueOutsideLoop,
	BreakOutsideLoop:     errors.BreakOutsideLoop,
	UndefinedPronoun:     errors.UndefinedPronoun,
}

// blockKind distinguishes the open block-builders on the parser's stack.
type blockKind int

const (
	blockIf blockKind = iota
	blockWhile
	blockUntil
	blockFunction
)

// openBlock accumulates command lines for a not-yet-closed if/while/
// until/function. For an if, inElse tracks whether we are still collecting
// the "then" branch or have switched to "otherwise" after an Else line.
type openBlock struct {
	kind      blockKind
	line      int
	cond      ast.Expression // If/While/Until
	then      []ast.CommandLine
	otherwise []ast.CommandLine
	inElse    bool
	sawElse   bool

	funcName   string // Function
	funcParams []string
}

// parser walks a flat token stream grouped into per-line slices.
type parser struct {
	lines  []lineTokens
	pos    int
	source string

	stack []*openBlock
	top   []ast.CommandLine

	functions map[string]*ast.Function

	lastMentioned string
	haveMentioned bool
}

type lineTokens struct {
	line   int
	tokens []lexer.Token
}

func newParser(tokens []lexer.Token, source string) *parser {
	return &parser{
		lines:     groupLines(tokens),
		source:    source,
		functions: make(map[string]*ast.Function),
	}
}

// groupLines splits a flat NEWLINE/EOF-terminated token stream back into
// one entry per source line (an empty Tokens slice for a blank line).
func groupLines(tokens []lexer.Token) []lineTokens {
	var lines []lineTokens
	var current []lexer.Token
	lineNo := 1

	for _, tok := range tokens {
		switch tok.Type {
		case lexer.NEWLINE:
			lines = append(lines, lineTokens{line: lineNo, tokens: current})
			current = nil
			lineNo++
		case lexer.EOF:
			// trailing EOF never starts a new line entry
		default:
			current = append(current, tok)
		}
	}
	return lines
}

func (p *parser) parseProgram() (*ast.Program, error) {
	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		p.pos++

		if len(line.tokens) == 0 {
			if err := p.closeInnermost(line.line); err != nil {
				return nil, err
			}
			continue
		}

		if err := p.parseLine(line); err != nil {
			return nil, err
		}
	}

	if len(p.stack) > 0 {
		return nil, p.unclosedError()
	}

	return &ast.Program{
		Top:       &ast.Block{Lines: p.top},
		Functions: p.functions,
	}, nil
}

func (p *parser) unclosedError() *errors.Error {
	b := p.stack[len(p.stack)-1]
	switch b.kind {
	case blockIf:
		return errors.New(errs.NoEndOfIf, b.line, "unterminated if statement")
	case blockWhile, blockUntil:
		return errors.New(errs.NoEndLoop, b.line, "unterminated loop")
	default:
		return errors.New(errs.NoEndFunction, b.line, "unterminated function declaration")
	}
}

// append adds a finished CommandLine to whichever scope is currently open:
// the innermost block-builder's active branch, or the top-level program.
func (p *parser) append(cl ast.CommandLine) {
	if len(p.stack) == 0 {
		p.top = append(p.top, cl)
		return
	}
	top := p.stack[len(p.stack)-1]
	if top.kind == blockIf && top.inElse {
		top.otherwise = append(top.otherwise, cl)
	} else {
		top.then = append(top.then, cl)
	}
}

// closeInnermost seals the innermost open block into its parent scope.
func (p *parser) closeInnermost(atLine int) error {
	if len(p.stack) == 0 {
		return nil
	}
	b := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]

	var cl ast.CommandLine
	switch b.kind {
	case blockIf:
		ifNode := &ast.If{Cond: b.cond, Then: &ast.Block{Lines: b.then}}
		if b.sawElse {
			ifNode.Otherwise = &ast.Block{Lines: b.otherwise}
		}
		cl = ast.CommandLine{Command: ifNode, Line: b.line}
	case blockWhile:
		cl = ast.CommandLine{Command: &ast.While{Cond: b.cond, Body: &ast.Block{Lines: b.then}}, Line: b.line}
	case blockUntil:
		cl = ast.CommandLine{Command: &ast.Until{Cond: b.cond, Body: &ast.Block{Lines: b.then}}, Line: b.line}
	case blockFunction:
		fn := &ast.Function{Name: b.funcName, Params: b.funcParams, Body: &ast.Block{Lines: b.then}}
		if _, exists := p.functions[b.funcName]; exists {
			return errors.New(errs.BadCommandSequence, b.line, "duplicate function '"+b.funcName+"'").WithSource(p.source)
		}
		p.functions[b.funcName] = fn
		cl = ast.CommandLine{
			Command: &ast.FunctionDeclaration{Name: b.funcName, Params: b.funcParams, Body: fn.Body},
			Line:    b.line,
		}
	}

	p.append(cl)
	return nil
}

// insideLoop reports whether a Break/Continue parsed right now is
// lexically inside a While/Until, not crossing an intervening function
// boundary (spec.md section 4.3: loops do not cross function calls).
func (p *parser) insideLoop() bool {
	for i := len(p.stack) - 1; i >= 0; i-- {
		switch p.stack[i].kind {
		case blockWhile, blockUntil:
			return true
		case blockFunction:
			return false
		}
	}
	return false
}

func (p *parser) markMentioned(name string) {
	p.lastMentioned = name
	p.haveMentioned = true
}

func (p *parser) resolvePronoun(line int) (string, error) {
	if !p.haveMentioned {
		return "", errors.New(errs.UndefinedPronoun, line, "pronoun used before any variable was mentioned")
	}
	return p.lastMentioned, nil
}
