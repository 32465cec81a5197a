package ast

import "strings"

// Print renders a Program as Rockstar-like text (spec.md section 6's
// print_program). Blocks, Put/Say/Give back lines and literals use
// Rockstar keywords, but expressions use each node's String form:
// operators print as "(x + y)" and pronouns as "(pronoun x)", which Parse
// reads as comments, and an Increment/Decrement count prints as a number
// that Parse ignores. The output therefore does not in general re-parse
// to an equivalent Program, and it does not match the original source.
func Print(p *Program) string {
	var sb strings.Builder
	for name, fn := range p.Functions {
		printFunction(&sb, name, fn)
		sb.WriteByte('\n')
	}
	printBlock(&sb, p.Top, 0)
	return sb.String()
}

func printFunction(sb *strings.Builder, name string, fn *Function) {
	sb.WriteString(name)
	sb.WriteString(" takes ")
	sb.WriteString(joinStrings(fn.Params))
	sb.WriteByte('\n')
	printBlock(sb, fn.Body, 0)
	sb.WriteByte('\n')
}

func printBlock(sb *strings.Builder, b *Block, depth int) {
	for _, cl := range b.Lines {
		printStatement(sb, cl.Command, depth)
	}
}

func printStatement(sb *strings.Builder, s Statement, depth int) {
	indent := strings.Repeat("    ", depth)

	switch stmt := s.(type) {
	case *If:
		sb.WriteString(indent + "If " + stmt.Cond.String() + "\n")
		printBlock(sb, stmt.Then, depth+1)
		if stmt.Otherwise != nil {
			sb.WriteString(indent + "Else\n")
			printBlock(sb, stmt.Otherwise, depth+1)
		}
		sb.WriteString(indent + "\n")
	case *While:
		sb.WriteString(indent + "While " + stmt.Cond.String() + "\n")
		printBlock(sb, stmt.Body, depth+1)
		sb.WriteString(indent + "\n")
	case *Until:
		sb.WriteString(indent + "Until " + stmt.Cond.String() + "\n")
		printBlock(sb, stmt.Body, depth+1)
		sb.WriteString(indent + "\n")
	case *FunctionDeclaration:
		// function bodies are printed at the top of Print, not inline
	default:
		sb.WriteString(indent + s.String() + "\n")
	}
}
