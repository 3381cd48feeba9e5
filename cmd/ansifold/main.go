// ansifold wraps, justifies and column-composes text for fixed-width
// terminals, keeping ANSI styling intact across line breaks.
//
// Usage:
//
//	ansifold --width 60 README.txt
//	git log --color | ansifold --hanging-indent "    "
//	ansifold columns --padding-middle " | " left.txt right.txt
//	ansifold paint --bold --fg red "some text" | ansifold -w 10
//
// Configuration is layered: built-in defaults, terminal detection, a config
// file, ANSIFOLD_* environment variables, NO_COLOR and finally flags. Run
// "ansifold config --sources" to see where each value came from.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command line and returns the exit code: 0 on success, 2
// for usage errors and 1 for everything else.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return 0
	}
	fmt.Fprintf(stderr, "ansifold: %v\n", err)

	var usage *usageError
	if errors.As(err, &usage) {
		return 2
	}
	return 1
}

// usageError marks a bad command line.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}
