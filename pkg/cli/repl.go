package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"

	"github.com/slate-lang/slate/internal/config"
	"github.com/slate-lang/slate/internal/evaluator"
	"github.com/slate-lang/slate/internal/tracing"
)

// linerReader adapts the line editor to the prompt/line interface shared by
// the REPL reader and the `input` builtin.
type linerReader struct {
	ln *liner.State
}

func (r *linerReader) ReadLine(prompt string) (string, error) {
	line, err := r.ln.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", errInputAborted
	}
	return line, err
}

// stdinReader serves non-interactive sessions: prompts are written to the
// output so file-mode `input` still shows them, lines come from a scanner.
type stdinReader struct {
	scanner *bufio.Scanner
	out     io.Writer
	prompts bool
}

func (r *stdinReader) ReadLine(prompt string) (string, error) {
	if r.prompts && prompt != "" {
		fmt.Fprint(r.out, prompt)
	}
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.scanner.Text(), nil
}

// RunREPL starts the interactive loop: read one balanced input block, run
// it incrementally, persist state only on success.
func RunREPL() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "slate: bad config:", err)
	}
	tracer := tracing.New(os.Stderr, cfg.Trace)

	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())

	var reader evaluator.LineReader
	if interactive {
		ln := liner.NewLiner()
		ln.SetCtrlCAborts(true)
		defer ln.Close()

		histPath := cfg.HistoryPath()
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
		reader = &linerReader{ln: ln}
	} else {
		reader = &stdinReader{scanner: bufio.NewScanner(os.Stdin)}
	}

	runner := NewRunner(cfg, tracer, os.Stdout, reader)
	tracer.Tracef("repl session started")

	prompt, contPrompt := cfg.Prompt, cfg.ContinuationPrompt
	if !interactive {
		prompt, contPrompt = "", ""
	}

	for {
		input, err := readInputBlock(reader.ReadLine, prompt, contPrompt)
		if errors.Is(err, errInputAborted) {
			fmt.Fprintln(os.Stdout)
			continue
		}
		if err != nil {
			if interactive {
				fmt.Fprintln(os.Stdout)
			}
			return 0
		}
		if strings.TrimSpace(input) == "" {
			continue
		}

		if ln, ok := reader.(*linerReader); ok {
			ln.ln.AppendHistory(input)
		}

		result := runner.RunEvalIncremental(input, "<repl>")
		if !result.OK {
			fmt.Fprintln(os.Stderr, result.Message)
			if diag := runner.LastError(); diag != nil && diag.IsInternal() {
				return 1
			}
			continue
		}
		if obj, ok := result.Value.(evaluator.Object); ok && obj != nil && obj.Type() != evaluator.UNIT_OBJ {
			fmt.Fprintln(os.Stdout, obj.Inspect())
		}
	}
}
