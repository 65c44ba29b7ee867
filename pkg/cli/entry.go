package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/amalgam-lang/amalgam/internal/config"
	"github.com/amalgam-lang/amalgam/internal/engine"
	"github.com/amalgam-lang/amalgam/internal/evaluator"
)

// Version can be set at build time using: -ldflags "-X github.com/amalgam-lang/amalgam/pkg/cli.Version=1.2.3"
var Version = "dev"

const usage = `Usage: amalgam [options] [file]

Options:
  -e, --expr <expr>   evaluate <expr> and print the result
  -v, --version       print the version
  -h, --help          show this help

With no file and no expression, starts an interactive session when stdin
is a terminal, otherwise reads a program from stdin.`

// isSourceFile checks if a file has a recognized source extension
func isSourceFile(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// Run is the command-line entry point. It returns the process exit code.
func Run(args []string) int {
	var expr string
	var file string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-h", "--help":
			fmt.Println(usage)
			return 0
		case "-v", "--version":
			fmt.Printf("amalgam %s\n", Version)
			return 0
		case "-e", "--expr":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "Error: %s requires an argument\n", arg)
				return 2
			}
			i++
			expr = args[i]
		default:
			if strings.HasPrefix(arg, "-") {
				fmt.Fprintf(os.Stderr, "Error: unknown option %s\n%s\n", arg, usage)
				return 2
			}
			if file != "" {
				fmt.Fprintf(os.Stderr, "Error: only one file may be given\n")
				return 2
			}
			file = arg
		}
	}

	if expr != "" && file != "" {
		fmt.Fprintf(os.Stderr, "Error: cannot combine a file with --expr\n")
		return 2
	}

	eng := engine.New(os.Stdout)

	switch {
	case expr != "":
		return runAndReport(func() (evaluator.Amalgam, error) {
			return eng.ParseAndRun(expr, "expr")
		}, true)
	case file != "":
		if !isSourceFile(file) {
			fmt.Fprintf(os.Stderr, "Warning: %s does not look like a source file\n", file)
		}
		return runAndReport(func() (evaluator.Amalgam, error) {
			return eng.RunFile(file)
		}, false)
	case isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()):
		return repl(eng)
	default:
		src, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			return 1
		}
		return runAndReport(func() (evaluator.Amalgam, error) {
			return eng.ParseAndRun(string(src), "stdin")
		}, false)
	}
}

// runAndReport executes one program, printing diagnostics to stderr. When
// echo is set the resulting value is printed to stdout, which is what
// --expr users expect.
func runAndReport(run func() (evaluator.Amalgam, error), echo bool) int {
	result, err := run()
	if err != nil {
		fmt.Fprint(os.Stderr, err.Error())
		return 1
	}
	if echo && result != nil {
		fmt.Println(result)
	}
	return 0
}
