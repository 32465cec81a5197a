package parser

import (
	"testing"

	"maiden/internal/ast"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", src, err)
	}
	return prog
}

func TestParsePutIntoAssignment(t *testing.T) {
	prog := mustParse(t, "Put 5 into X\n")
	if len(prog.Top.Lines) != 1 {
		t.Fatalf("got %d top-level lines, want 1", len(prog.Top.Lines))
	}
	assign, ok := prog.Top.Lines[0].Command.(*ast.Assignment)
	if !ok {
		t.Fatalf("command = %T, want *ast.Assignment", prog.Top.Lines[0].Command)
	}
	if ref, ok := assign.Target.(*ast.VariableRef); !ok || ref.Name != "x" {
		t.Errorf("target = %+v, want VariableRef(x)", assign.Target)
	}
	if num, ok := assign.Value.(*ast.NumberLiteral); !ok || num.Value != 5 {
		t.Errorf("value = %+v, want NumberLiteral(5)", assign.Value)
	}
}

func TestParsePoeticAssignment(t *testing.T) {
	prog := mustParse(t, "My dreams were ice cold\n")
	assign := prog.Top.Lines[0].Command.(*ast.Assignment)
	num, ok := assign.Value.(*ast.NumberLiteral)
	if !ok {
		t.Fatalf("value = %T, want *ast.NumberLiteral", assign.Value)
	}
	if num.Value != 34 {
		t.Errorf("poetic value = %v, want 34", num.Value)
	}
}

func TestParseIfElse(t *testing.T) {
	src := "Put 5 into X\nIf X is greater than 3\nSay \"big\"\nElse\nSay \"small\"\n\n"
	prog := mustParse(t, src)
	if len(prog.Top.Lines) != 2 {
		t.Fatalf("got %d top-level lines, want 2", len(prog.Top.Lines))
	}
	ifStmt, ok := prog.Top.Lines[1].Command.(*ast.If)
	if !ok {
		t.Fatalf("command = %T, want *ast.If", prog.Top.Lines[1].Command)
	}
	cond, ok := ifStmt.Cond.(*ast.BinaryOp)
	if !ok || cond.Op != ast.OpGreaterThan {
		t.Fatalf("cond = %+v, want BinaryOp(OpGreaterThan)", ifStmt.Cond)
	}
	if len(ifStmt.Then.Lines) != 1 {
		t.Errorf("then branch has %d lines, want 1", len(ifStmt.Then.Lines))
	}
	if ifStmt.Otherwise == nil || len(ifStmt.Otherwise.Lines) != 1 {
		t.Errorf("otherwise branch missing or wrong length: %+v", ifStmt.Otherwise)
	}
}

func TestParseElseWithNoIf(t *testing.T) {
	_, err := Parse("Say \"hi\"\nElse\n")
	if err == nil {
		t.Fatal("expected ElseWithNoIf error, got nil")
	}
}

func TestParseMultipleElse(t *testing.T) {
	src := "If true\nSay \"a\"\nElse\nSay \"b\"\nElse\nSay \"c\"\n\n"
	_, err := Parse(src)
	if err == nil {
		t.Fatal("expected MultipleElse error, got nil")
	}
}

func TestParseWhileLoop(t *testing.T) {
	src := "Put 0 into X\nWhile X is less than 3\nBuild X up\n\n"
	prog := mustParse(t, src)
	while, ok := prog.Top.Lines[1].Command.(*ast.While)
	if !ok {
		t.Fatalf("command = %T, want *ast.While", prog.Top.Lines[1].Command)
	}
	if len(while.Body.Lines) != 1 {
		t.Errorf("body has %d lines, want 1", len(while.Body.Lines))
	}
}

func TestParseFunctionDeclarationAndCall(t *testing.T) {
	src := "Factorial takes N\nGive back N\n\nPut Factorial taking 5 into Result\n"
	prog := mustParse(t, src)
	fn, ok := prog.Functions["factorial"]
	if !ok {
		t.Fatalf("function 'factorial' not found, have: %v", prog.Functions)
	}
	if len(fn.Params) != 1 || fn.Params[0] != "n" {
		t.Errorf("params = %v, want [n]", fn.Params)
	}

	// Top.Lines[0] is the FunctionDeclaration line itself.
	assign, ok := prog.Top.Lines[1].Command.(*ast.Assignment)
	if !ok {
		t.Fatalf("command = %T, want *ast.Assignment", prog.Top.Lines[1].Command)
	}
	call, ok := assign.Value.(*ast.Call)
	if !ok || call.Name != "factorial" || len(call.Args) != 1 {
		t.Fatalf("value = %+v, want Call(factorial, [5])", assign.Value)
	}
}

func TestParseBreakOutsideLoop(t *testing.T) {
	_, err := Parse("Break it down\n")
	if err == nil {
		t.Fatal("expected BreakOutsideLoop error, got nil")
	}
}

func TestParseNoEndOfIf(t *testing.T) {
	_, err := Parse("If true\nSay \"hi\"")
	if err == nil {
		t.Fatal("expected NoEndOfIf error for an if left open at EOF, got nil")
	}
}

func TestParsePronoun(t *testing.T) {
	src := "Put 1 into X\nBuild it up\n"
	prog := mustParse(t, src)
	inc, ok := prog.Top.Lines[1].Command.(*ast.Increment)
	if !ok {
		t.Fatalf("command = %T, want *ast.Increment", prog.Top.Lines[1].Command)
	}
	pr, ok := inc.Target.(*ast.Pronoun)
	if !ok || pr.Resolved != "x" {
		t.Errorf("target = %+v, want Pronoun(x)", inc.Target)
	}
}

func TestParseUndefinedPronoun(t *testing.T) {
	_, err := Parse("Say it\n")
	if err == nil {
		t.Fatal("expected UndefinedPronoun error, got nil")
	}
}
