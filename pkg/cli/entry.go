package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/slate-lang/slate/internal/config"
	"github.com/slate-lang/slate/internal/tracing"
)

const usageText = `Slate: an incremental interpreter

Usage:
  slate            Start the REPL.
  slate <file.sl>  Execute a source file.
  slate --help     Print this help.
`

func usage(w io.Writer) {
	fmt.Fprint(w, usageText)
}

// Run dispatches the command line. Exit codes: 0 success, 1 pipeline or
// internal error, 2 bad usage.
func Run(args []string) int {
	switch {
	case len(args) == 0:
		return RunREPL()
	case args[0] == "--help" || args[0] == "-h":
		usage(os.Stdout)
		return 0
	case strings.HasPrefix(args[0], "-"):
		fmt.Fprintf(os.Stderr, "slate: unknown flag %q\n", args[0])
		usage(os.Stderr)
		return 2
	case len(args) > 1:
		fmt.Fprintln(os.Stderr, "slate: expected at most one file argument")
		usage(os.Stderr)
		return 2
	default:
		return RunFile(args[0])
	}
}

// RunFile executes one source file through the full pipeline.
func RunFile(path string) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "slate: %v\n", err)
		return 1
	}

	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		fmt.Fprintln(os.Stderr, "slate: bad config:", cfgErr)
	}
	tracer := tracing.New(os.Stderr, cfg.Trace)
	reader := &stdinReader{scanner: bufio.NewScanner(os.Stdin), out: os.Stdout, prompts: true}

	runner := NewRunner(cfg, tracer, os.Stdout, reader)
	result := runner.RunEval(string(source), path)
	if !result.OK {
		fmt.Fprintln(os.Stderr, result.Message)
		return 1
	}
	return 0
}
