package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"maiden/internal/errors"
	"maiden/pkg/maiden"
)

var (
	evalExpr string
	dumpAST  bool
	trace    bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Rockstar program",
	Long: `Execute a Rockstar program from a .rock file or an inline expression.

Examples:
  # Run a script file
  maiden run song.rock

  # Evaluate inline source
  maiden run -e "Shout \"Hello, World!\""

  # Run with the parsed AST dumped first (for debugging)
  maiden run --dump-ast song.rock`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline source instead of reading from a file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST before running it (for debugging)")
	runCmd.Flags().BoolVar(&trace, "trace", false, "print a trace-mode notice to stderr before running (for debugging)")
}

func runScript(_ *cobra.Command, args []string) error {
	var input string
	var filename string

	if evalExpr != "" {
		input = evalExpr
		filename = "<eval>"
	} else if len(args) == 1 {
		filename = args[0]
		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filename, err)
		}
		input = string(content)
	} else {
		return fmt.Errorf("either provide a file path or use -e flag for inline source")
	}

	program, err := maiden.Parse(input)
	if err != nil {
		reportRunError(err, input)
		return fmt.Errorf("parsing failed")
	}

	if dumpAST {
		fmt.Println("AST:")
		fmt.Println(maiden.PrintProgram(program))
		fmt.Println()
	}

	if trace {
		fmt.Fprintf(os.Stderr, "[Trace mode enabled - executing %s]\n", filename)
	}

	result := maiden.Run(program, os.Stdin, os.Stdout)
	if !result.Ok() {
		reportRunError(result.Err, input)
		return fmt.Errorf("execution failed")
	}

	return nil
}

// reportRunError prints a parse- or run-time failure and exits, attaching
// the offending source line when the error is one of maiden's own.
func reportRunError(err error, source string) {
	if e, ok := err.(*errors.Error); ok {
		exitWithError("%s", e.WithSource(source).Format())
		return
	}
	exitWithError("%s", err.Error())
}
