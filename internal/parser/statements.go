package parser

import (
	"strings"

	"maiden/internal/ast"
	"maiden/internal/errors"
	"maiden/internal/lexer"
)

// parseLine dispatches a non-blank line to the matching statement form
// (spec.md section 4.2's command table) and either appends the finished
// statement to the current scope or pushes a new open block.
func (p *parser) parseLine(line lineTokens) error {
	toks := line.tokens
	first := toks[0]

	switch first.Type {
	case lexer.IF:
		cond, err := p.exprCursor(toks[1:]).fullExpr()
		if err != nil {
			return err
		}
		p.stack = append(p.stack, &openBlock{kind: blockIf, line: line.line, cond: cond})
		return nil

	case lexer.ELSE:
		return p.parseElse(line.line)

	case lexer.WHILE:
		cond, err := p.exprCursor(toks[1:]).fullExpr()
		if err != nil {
			return err
		}
		p.stack = append(p.stack, &openBlock{kind: blockWhile, line: line.line, cond: cond})
		return nil

	case lexer.UNTIL:
		cond, err := p.exprCursor(toks[1:]).fullExpr()
		if err != nil {
			return err
		}
		p.stack = append(p.stack, &openBlock{kind: blockUntil, line: line.line, cond: cond})
		return nil

	case lexer.PUT:
		return p.parsePut(line)

	case lexer.LET:
		return p.parseLet(line)

	case lexer.BUILD:
		return p.parseBuild(line)

	case lexer.KNOCK:
		return p.parseKnock(line)

	case lexer.SAY:
		val, err := p.exprCursor(toks[1:]).fullExpr()
		if err != nil {
			return err
		}
		p.append(ast.CommandLine{Command: &ast.Say{Value: val}, Line: line.line})
		return nil

	case lexer.LISTEN:
		if len(toks) == 1 {
			p.append(ast.CommandLine{Command: &ast.Listen{}, Line: line.line})
			return nil
		}
		target, err := p.parseAssignmentTarget(toks[1:], line.line)
		if err != nil {
			return err
		}
		p.append(ast.CommandLine{Command: &ast.Listen{Target: target}, Line: line.line})
		return nil

	case lexer.RETURN:
		val, err := p.exprCursor(toks[1:]).fullExpr()
		if err != nil {
			return err
		}
		p.append(ast.CommandLine{Command: &ast.Return{Value: val}, Line: line.line})
		return nil

	case lexer.BREAK:
		if !p.insideLoop() {
			return errors.New(errs.BreakOutsideLoop, line.line, "break used outside a loop")
		}
		p.append(ast.CommandLine{Command: &ast.Break{}, Line: line.line})
		return nil

	case lexer.CONTINUE:
		if !p.insideLoop() {
			return errors.New(errs.ContinueOutsideLoop, line.line, "continue used outside a loop")
		}
		p.append(ast.CommandLine{Command: &ast.Continue{}, Line: line.line})
		return nil

	case lexer.VARIABLE:
		return p.parseVariableLeadLine(line)

	case lexer.PRONOUN:
		return p.parsePronounLeadLine(line)

	default:
		return errors.New(errs.BadCommandSequence, line.line, "unrecognized statement: "+first.String())
	}
}

// exprCursor builds a cursor bound to this line's remaining tokens.
func (p *parser) exprCursor(toks []lexer.Token) *cursor {
	return &cursor{toks: toks, p: p}
}

// fullExpr parses a complete expression and requires every token on the
// line to be consumed.
func (c *cursor) fullExpr() (ast.Expression, error) {
	expr, err := c.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if !c.atEnd() {
		return nil, errors.New(errs.UnbalancedExpression, c.cur().Line, "unexpected trailing token: "+c.cur().String())
	}
	return expr, nil
}

func (p *parser) parseElse(lineNo int) error {
	if len(p.stack) == 0 {
		return errors.New(errs.ElseWithNoIf, lineNo, "else with no matching if")
	}
	top := p.stack[len(p.stack)-1]
	if top.kind != blockIf {
		return errors.New(errs.ElseWithNoIf, lineNo, "else with no matching if")
	}
	if top.sawElse {
		return errors.New(errs.MultipleElse, lineNo, "if already has an else")
	}
	top.inElse = true
	top.sawElse = true
	return nil
}

// parsePut handles "Put EXPR into TARGET".
func (p *parser) parsePut(line lineTokens) error {
	toks := line.tokens[1:]
	intoIdx := -1
	for i, t := range toks {
		if t.Type == lexer.INTO {
			intoIdx = i
			break
		}
	}
	if intoIdx < 0 {
		return errors.New(errs.BadPut, line.line, "put without a matching into")
	}

	value, err := p.exprCursor(toks[:intoIdx]).fullExpr()
	if err != nil {
		return err
	}
	target, err := p.parseAssignmentTarget(toks[intoIdx+1:], line.line)
	if err != nil {
		return err
	}
	p.append(ast.CommandLine{Command: &ast.Assignment{Target: target, Value: value}, Line: line.line})
	return nil
}

// parseLet handles "Let TARGET be EXPR".
func (p *parser) parseLet(line lineTokens) error {
	toks := line.tokens[1:]
	beIdx := -1
	for i, t := range toks {
		if t.Type == lexer.BE {
			beIdx = i
			break
		}
	}
	if beIdx < 0 {
		return errors.New(errs.BadPut, line.line, "let without a matching be")
	}

	target, err := p.parseAssignmentTarget(toks[:beIdx], line.line)
	if err != nil {
		return err
	}
	value, err := p.exprCursor(toks[beIdx+1:]).fullExpr()
	if err != nil {
		return err
	}
	p.append(ast.CommandLine{Command: &ast.Assignment{Target: target, Value: value}, Line: line.line})
	return nil
}

// parseAssignmentTarget resolves a variable/pronoun token span naming an
// assignment destination.
func (p *parser) parseAssignmentTarget(toks []lexer.Token, lineNo int) (ast.Expression, error) {
	c := p.exprCursor(toks)
	if c.atEnd() {
		return nil, errors.New(errs.BadPut, lineNo, "missing assignment target")
	}
	tok := c.advance()
	if !c.atEnd() {
		return nil, errors.New(errs.BadPut, lineNo, "assignment target must be a single variable")
	}
	switch tok.Type {
	case lexer.VARIABLE:
		p.markMentioned(tok.Literal)
		return &ast.VariableRef{Name: tok.Literal}, nil
	case lexer.PRONOUN:
		resolved, err := p.resolvePronoun(lineNo)
		if err != nil {
			return nil, err
		}
		return &ast.Pronoun{Resolved: resolved}, nil
	default:
		return nil, errors.New(errs.BadPut, lineNo, "assignment target must be a variable")
	}
}

// parseBuild handles "Build VAR up[, up...]".
func (p *parser) parseBuild(line lineTokens) error {
	toks := line.tokens[1:]
	upIdx := -1
	for i, t := range toks {
		if t.Type == lexer.UP {
			upIdx = i
			break
		}
	}
	if upIdx < 0 {
		return errors.New(errs.BadCommandSequence, line.line, "build without up")
	}
	target, err := p.parseAssignmentTarget(toks[:upIdx], line.line)
	if err != nil {
		return err
	}
	count := countRepeats(toks[upIdx:], lexer.UP)
	p.append(ast.CommandLine{Command: &ast.Increment{Target: target, Count: count}, Line: line.line})
	return nil
}

// parseKnock handles "Knock VAR down[, down...]".
func (p *parser) parseKnock(line lineTokens) error {
	toks := line.tokens[1:]
	downIdx := -1
	for i, t := range toks {
		if t.Type == lexer.DOWN {
			downIdx = i
			break
		}
	}
	if downIdx < 0 {
		return errors.New(errs.BadCommandSequence, line.line, "knock without down")
	}
	target, err := p.parseAssignmentTarget(toks[:downIdx], line.line)
	if err != nil {
		return err
	}
	count := countRepeats(toks[downIdx:], lexer.DOWN)
	p.append(ast.CommandLine{Command: &ast.Decrement{Target: target, Count: count}, Line: line.line})
	return nil
}

// countRepeats counts how many times tt appears in a comma-separated run
// starting at toks[0] (toks[0] itself must already be tt).
func countRepeats(toks []lexer.Token, tt lexer.TokenType) int {
	count := 0
	expectToken := true
	for _, t := range toks {
		if expectToken {
			if t.Type != tt {
				break
			}
			count++
			expectToken = false
		} else {
			if t.Type != lexer.COMMA {
				break
			}
			expectToken = true
		}
	}
	return count
}

// parseVariableLeadLine handles every statement form that begins with a
// bare variable reference: poetic/plain assignment ("X is ..."), function
// declaration ("X takes ..."), and a call used as a statement
// ("X taking ...").
func (p *parser) parseVariableLeadLine(line lineTokens) error {
	toks := line.tokens
	name := toks[0].Literal

	if len(toks) >= 2 && toks[1].Type == lexer.IS {
		// The lexer already collapsed a poetic-mode remainder into a single
		// literal token (tokens[2]); a plain comparison/expression
		// assignment ("X is Y is Z" never happens — Is is a statement-level
		// assignment trigger here, not an expression operator) still goes
		// through the full expression parser over the remainder.
		p.markMentioned(name)
		value, err := p.exprCursor(toks[2:]).fullExpr()
		if err != nil {
			return err
		}
		p.append(ast.CommandLine{
			Command: &ast.Assignment{Target: &ast.VariableRef{Name: name}, Value: value},
			Line:    line.line,
		})
		return nil
	}

	if len(toks) >= 2 && toks[1].Type == lexer.TAKES {
		return p.parseFunctionDeclaration(line, name)
	}

	if len(toks) >= 2 && toks[1].Type == lexer.TAKING {
		p.markMentioned(name)
		args, err := p.exprCursor(toks[2:]).parseArgList()
		if err != nil {
			return err
		}
		p.append(ast.CommandLine{Command: &ast.CallStatement{Name: name, Args: args}, Line: line.line})
		return nil
	}

	return errors.New(errs.BadCommandSequence, line.line, "unrecognized statement")
}

// parsePronounLeadLine handles the poetic/plain assignment form when the
// subject is a pronoun ("It is 5") rather than a named variable.
func (p *parser) parsePronounLeadLine(line lineTokens) error {
	toks := line.tokens
	if len(toks) < 2 || toks[1].Type != lexer.IS {
		return errors.New(errs.BadCommandSequence, line.line, "unrecognized statement")
	}
	resolved, err := p.resolvePronoun(line.line)
	if err != nil {
		return err
	}
	value, err := p.exprCursor(toks[2:]).fullExpr()
	if err != nil {
		return err
	}
	p.append(ast.CommandLine{
		Command: &ast.Assignment{Target: &ast.Pronoun{Resolved: resolved}, Value: value},
		Line:    line.line,
	})
	return nil
}

func (p *parser) parseFunctionDeclaration(line lineTokens, name string) error {
	toks := line.tokens[2:]
	var params []string
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		switch t.Type {
		case lexer.VARIABLE:
			params = append(params, t.Literal)
		case lexer.COMMA, lexer.AND:
			// separators between parameter names
		default:
			return errors.New(errs.BadCommandSequence, line.line, "invalid parameter list for "+name)
		}
	}
	if len(params) == 0 {
		return errors.New(errs.BadCommandSequence, line.line, "function "+name+" declared with no parameters")
	}
	p.stack = append(p.stack, &openBlock{
		kind:       blockFunction,
		line:       line.line,
		funcName:   strings.ToLower(name),
		funcParams: params,
	})
	return nil
}
