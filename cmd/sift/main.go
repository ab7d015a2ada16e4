// sift triages captured type-checker output: it strips terminal colors,
// extracts diagnostics, classifies them and reports where to start fixing.
//
// Usage:
//
//	npx svelte-check > check.log; sift analyze check.log
//	sift analyze --format markdown -o report.md run1.log run2.log
//	svelte-check 2>&1 | sift analyze -
//	sift classify "Object is possibly 'null'."
//	sift categories
//	sift history
//
// Output formats: terminal (default on a TTY), llm (default when piped),
// json, yaml, markdown, text, sarif.
//
// Exit codes: 0 success, 1 --fail-on threshold reached, 2 usage, config or
// I/O error.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// app carries the process streams so commands can be exercised in tests.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	now    func() time.Time
}

// exitError ends the run with a specific exit code. err, if set, is printed.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr, now: time.Now}
	root := a.newRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintf(stderr, "sift: %v\n", ee.err)
		}
		return ee.code
	}
	fmt.Fprintf(stderr, "sift: %v\n", err)
	return 2
}

// isTTYWriter reports whether w is a terminal.
func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// termWidth returns the terminal width of w, defaulting to 80.
func termWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
			return tw
		}
	}
	return 80
}
