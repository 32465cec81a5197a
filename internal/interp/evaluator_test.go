package interp

import (
	"strings"
	"testing"

	"maiden/internal/parser"
)

func runSource(t *testing.T, src string) (string, RunResult) {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", src, err)
	}
	var out strings.Builder
	result := Run(prog, strings.NewReader(""), &out)
	return out.String(), result
}

func TestRunSayLiteral(t *testing.T) {
	out, result := runSource(t, `Say "hello"`+"\n")
	if !result.Ok() {
		t.Fatalf("run error: %v", result.Err)
	}
	if out != "hello\n" {
		t.Errorf("output = %q, want %q", out, "hello\n")
	}
}

func TestRunArithmeticAndSay(t *testing.T) {
	out, result := runSource(t, "Put 2 into X\nPut 3 into Y\nPut X plus Y into Z\nShout Z\n")
	if !result.Ok() {
		t.Fatalf("run error: %v", result.Err)
	}
	if out != "5\n" {
		t.Errorf("output = %q, want %q", out, "5\n")
	}
}

func TestRunIfElse(t *testing.T) {
	src := "Put 5 into X\nIf X is greater than 3\nSay \"big\"\nElse\nSay \"small\"\n\n"
	out, result := runSource(t, src)
	if !result.Ok() {
		t.Fatalf("run error: %v", result.Err)
	}
	if out != "big\n" {
		t.Errorf("output = %q, want %q", out, "big\n")
	}
}

func TestRunWhileLoop(t *testing.T) {
	src := "Put 0 into X\nWhile X is less than 3\nBuild X up\nShout X\n\n"
	out, result := runSource(t, src)
	if !result.Ok() {
		t.Fatalf("run error: %v", result.Err)
	}
	if out != "1\n2\n3\n" {
		t.Errorf("output = %q, want %q", out, "1\n2\n3\n")
	}
}

func TestRunBreak(t *testing.T) {
	src := "Put 0 into X\nWhile true\nBuild X up\nIf X is 3\nBreak it down\n\n\nShout X\n"
	out, result := runSource(t, src)
	if !result.Ok() {
		t.Fatalf("run error: %v", result.Err)
	}
	if out != "3\n" {
		t.Errorf("output = %q, want %q", out, "3\n")
	}
}

func TestRunFunctionRecursion(t *testing.T) {
	src := "Factorial takes N\nIf N is less than 2\nGive back 1\n\nGive back N times Factorial taking N minus 1\n\nShout Factorial taking 5\n"
	out, result := runSource(t, src)
	if !result.Ok() {
		t.Fatalf("run error: %v", result.Err)
	}
	if out != "120\n" {
		t.Errorf("output = %q, want %q", out, "120\n")
	}
}

func TestRunDivideByZero(t *testing.T) {
	_, result := runSource(t, "Put 1 into X\nPut 0 into Y\nPut X over Y into Z\n")
	if result.Ok() {
		t.Fatal("expected Infinity error, got success")
	}
}

func TestRunMissingVariable(t *testing.T) {
	_, result := runSource(t, "Shout X\n")
	if result.Ok() {
		t.Fatal("expected MissingVariable error, got success")
	}
}
