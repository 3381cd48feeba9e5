package magetasks

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"testing"
)

const missingTool = "ansifold-no-such-linter"

func TestIsCommandNotFound(t *testing.T) {
	missing := exec.Command(missingTool).Run()

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil", err: nil, expected: false},
		{name: "lookup failure", err: missing, expected: true},
		{name: "wrapped lookup failure", err: fmt.Errorf("staticcheck: %w", missing), expected: true},
		{name: "message only, as sh reports it", err: errors.New(`failed to run "staticcheck ./...": exec: "staticcheck": executable file not found in $PATH`), expected: true},
		{name: "linter reported problems", err: errors.New(`running "go vet ./..." failed with exit code 1`), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCommandNotFound(tt.err); got != tt.expected {
				t.Errorf("IsCommandNotFound(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestOptional_MissingLinter(t *testing.T) {
	buf := capture(t)

	err := optional("Staticcheck", "honnef.co/go/tools/cmd/staticcheck@latest", missingTool, "./...")
	if !IsCommandNotFound(err) {
		t.Fatalf("optional() error = %v, want a command-not-found error", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Staticcheck failed") {
		t.Errorf("output should report the failure, got: %s", out)
	}
	if !strings.Contains(out, "Staticcheck not found") || !strings.Contains(out, "honnef.co/go/tools/cmd/staticcheck@latest") {
		t.Errorf("output should give the install hint, got: %s", out)
	}
}

func TestCheck_MissingCommand(t *testing.T) {
	capture(t)

	err := check("Go Vet", missingTool, "./...")
	if err == nil {
		t.Fatal("check() succeeded for a missing command")
	}
	if !strings.HasPrefix(err.Error(), "go vet: ") {
		t.Errorf("check() error = %q, want it prefixed with the task name", err)
	}
}
