package parser

import (
	"maiden/internal/ast"
	"maiden/internal/errors"
	"maiden/internal/lexer"
)

// precedence levels, low to high, per spec.md section 4.2's operator
// table: Or/Nor, And, Is/Ain't, the ordering comparisons, Add/Subtract,
// Times/Divide, then unary Not and Call bind tighter than any of these.
const (
	precLowest = iota
	precOr
	precAnd
	precIs
	precCompare
	precAdd
	precMul
)

func infixPrecedence(t lexer.TokenType) int {
	switch t {
	case lexer.OR, lexer.NOR:
		return precOr
	case lexer.AND:
		return precAnd
	case lexer.IS, lexer.AINT:
		return precIs
	case lexer.GT, lexer.GTE, lexer.LT, lexer.LTE:
		return precCompare
	case lexer.ADD, lexer.SUBTRACT:
		return precAdd
	case lexer.TIMES, lexer.DIVIDE:
		return precMul
	default:
		return precLowest
	}
}

var compareOps = map[lexer.TokenType]ast.BinaryOperator{
	lexer.GT:  ast.OpGreaterThan,
	lexer.GTE: ast.OpGreaterThanOrEqual,
	lexer.LT:  ast.OpLessThan,
	lexer.LTE: ast.OpLessThanOrEqual,
}

var simpleInfixOps = map[lexer.TokenType]ast.BinaryOperator{
	lexer.AINT:     ast.OpAint,
	lexer.ADD:      ast.OpAdd,
	lexer.SUBTRACT: ast.OpSubtract,
	lexer.TIMES:    ast.OpTimes,
	lexer.DIVIDE:   ast.OpDivide,
	lexer.AND:      ast.OpAnd,
	lexer.OR:       ast.OpOr,
	lexer.NOR:      ast.OpNor,
}

// cursor walks one line's tokens for expression parsing.
type cursor struct {
	toks []lexer.Token
	pos  int
	p    *parser
}

func (c *cursor) cur() lexer.Token {
	if c.pos >= len(c.toks) {
		return lexer.Token{Type: lexer.EOF}
	}
	return c.toks[c.pos]
}

func (c *cursor) peek(n int) lexer.Token {
	if c.pos+n >= len(c.toks) {
		return lexer.Token{Type: lexer.EOF}
	}
	return c.toks[c.pos+n]
}

func (c *cursor) advance() lexer.Token {
	t := c.cur()
	c.pos++
	return t
}

func (c *cursor) atEnd() bool { return c.pos >= len(c.toks) }

// parseExpression implements precedence climbing: it parses one prefix
// term, then repeatedly folds in infix operators whose precedence is
// strictly greater than minPrec.
func (c *cursor) parseExpression(minPrec int) (ast.Expression, error) {
	left, err := c.parsePrefix()
	if err != nil {
		return nil, err
	}

	for {
		op := c.cur().Type
		prec := infixPrecedence(op)
		if prec == precLowest || prec <= minPrec {
			break
		}

		if op == lexer.IS {
			c.advance()
			if cmp, ok := compareOps[c.cur().Type]; ok {
				c.advance()
				right, err := c.parseExpression(precCompare)
				if err != nil {
					return nil, err
				}
				left = &ast.BinaryOp{Op: cmp, Left: left, Right: right}
				continue
			}
			right, err := c.parseExpression(precIs)
			if err != nil {
				return nil, err
			}
			left = &ast.BinaryOp{Op: ast.OpIs, Left: left, Right: right}
			continue
		}

		binOp, ok := simpleInfixOps[op]
		if !ok {
			// bare comparison token with no preceding Is — "X greater than Y"
			if cmp, ok := compareOps[op]; ok {
				binOp = cmp
			} else {
				break
			}
		}
		c.advance()
		right, err := c.parseExpression(prec)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Op: binOp, Left: left, Right: right}
	}

	return left, nil
}

func (c *cursor) parsePrefix() (ast.Expression, error) {
	tok := c.cur()

	switch tok.Type {
	case lexer.STRING:
		c.advance()
		return &ast.StringLiteral{Value: tok.Literal}, nil

	case lexer.NUMBER:
		c.advance()
		return &ast.NumberLiteral{Value: tok.Number}, nil

	case lexer.WORDS:
		c.advance()
		n, err := lexer.PoeticNumberValue(tok.Literal)
		if err != nil {
			return nil, errors.New(errs.ParseNumberError, tok.Line, "invalid poetic number: "+tok.Literal)
		}
		return &ast.NumberLiteral{Value: n}, nil

	case lexer.TRUE:
		c.advance()
		return &ast.BooleanLiteral{Value: true}, nil

	case lexer.FALSE:
		c.advance()
		return &ast.BooleanLiteral{Value: false}, nil

	case lexer.NULLTOK:
		c.advance()
		return &ast.NullLiteral{}, nil

	case lexer.MYSTERIOUS:
		c.advance()
		return &ast.MysteriousLiteral{}, nil

	case lexer.NOT:
		c.advance()
		right, err := c.parseExpression(precMul)
		if err != nil {
			return nil, err
		}
		return &ast.Not{Right: right}, nil

	case lexer.VARIABLE:
		c.advance()
		name := tok.Literal
		c.p.markMentioned(name)
		if c.cur().Type == lexer.TAKING {
			c.advance()
			args, err := c.parseArgList()
			if err != nil {
				return nil, err
			}
			return &ast.Call{Name: name, Args: args}, nil
		}
		return &ast.VariableRef{Name: name}, nil

	case lexer.PRONOUN:
		c.advance()
		resolved, err := c.p.resolvePronoun(tok.Line)
		if err != nil {
			return nil, err
		}
		return &ast.Pronoun{Resolved: resolved}, nil

	default:
		return nil, errors.New(errs.UnbalancedExpression, tok.Line, "unexpected token in expression: "+tok.String())
	}
}

// parseArgList parses a comma/and-separated argument list for a function
// call. Each argument is parsed at precAnd so that a trailing "and" before
// the last argument is left for the list separator, never swallowed into
// the argument expression itself.
func (c *cursor) parseArgList() ([]ast.Expression, error) {
	var args []ast.Expression

	first, err := c.parseExpression(precAnd)
	if err != nil {
		return nil, err
	}
	args = append(args, first)

	for c.cur().Type == lexer.COMMA || c.cur().Type == lexer.AND {
		c.advance()
		arg, err := c.parseExpression(precAnd)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	return args, nil
}
