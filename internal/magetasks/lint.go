package magetasks

import (
	"errors"
	"fmt"
	"strings"

	"github.com/magefile/mage/sh"
)

var golangciDisabled = "--disable=exhaustruct,varnamelen,ireturn,wrapcheck,nlreturn,gochecknoglobals,mnd,depguard,tagalign"

// LintAll runs every linter. Linters that are not installed are skipped.
func LintAll() error {
	var errs []error
	for _, lint := range []func() error{LintFormat, LintVet, LintStaticcheck, LintGolangci} {
		if err := lint(); err != nil && !IsCommandNotFound(err) {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	PrintSuccess("All linters passed")
	return nil
}

// LintFormat fails when any file is not gofmt-clean.
func LintFormat() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return err
	}
	if files := unformatted(out); len(files) > 0 {
		PrintError("Not gofmt-clean: " + strings.Join(files, " "))
		return fmt.Errorf("%d files need gofmt", len(files))
	}
	PrintSuccess("Format")
	return nil
}

// unformatted lists the files in gofmt -l output, ignoring the read-only
// reference directories.
func unformatted(out string) []string {
	var files []string
	for _, f := range strings.Fields(out) {
		if strings.HasPrefix(f, "_") {
			continue
		}
		files = append(files, f)
	}
	return files
}

// LintVet runs go vet.
func LintVet() error {
	return check("Go Vet", "go", "vet", "./...")
}

// LintStaticcheck runs staticcheck.
func LintStaticcheck() error {
	return optional("Staticcheck", "honnef.co/go/tools/cmd/staticcheck@latest", "staticcheck", "./...")
}

// LintGolangci runs golangci-lint.
func LintGolangci() error {
	return optional("Golangci-lint", "github.com/golangci/golangci-lint/cmd/golangci-lint@latest",
		"golangci-lint", "run", golangciDisabled, "--timeout=5m", "./...")
}

// LintGolangciFix runs golangci-lint with auto-fixes.
func LintGolangciFix() error {
	return optional("Golangci-lint Fix", "github.com/golangci/golangci-lint/cmd/golangci-lint@latest",
		"golangci-lint", "run", "--fix", golangciDisabled, "--timeout=5m", "./...")
}

func check(name, cmd string, args ...string) error {
	if err := sh.RunV(cmd, args...); err != nil {
		PrintError(name + " failed")
		return fmt.Errorf("%s: %w", strings.ToLower(name), err)
	}
	PrintSuccess(name)
	return nil
}

func optional(name, install, cmd string, args ...string) error {
	err := check(name, cmd, args...)
	if IsCommandNotFound(err) {
		PrintWarning(fmt.Sprintf("%s not found (install: go install %s)", name, install))
	}
	return err
}
