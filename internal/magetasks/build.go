package magetasks

import (
	"fmt"
	"strings"
	"time"

	"github.com/magefile/mage/sh"
)

// BuildAll builds the ansifold binary with version information stamped in.
func BuildAll() error {
	PrintH2Header("Build")

	flags := Ldflags(gitVersion(), gitCommit(), time.Now().UTC())
	if err := sh.RunV("go", "build", "-ldflags", flags, "-o", BinPath, MainPackage); err != nil {
		PrintError("Build failed")
		return err
	}

	PrintSuccess("Built: " + BinPath)
	return nil
}

// Install installs ansifold into GOBIN.
func Install() error {
	PrintH2Header("Install")

	flags := Ldflags(gitVersion(), gitCommit(), time.Now().UTC())
	if err := sh.RunV("go", "install", "-ldflags", flags, MainPackage); err != nil {
		PrintError("Install failed")
		return err
	}

	PrintSuccess("Installed ansifold")
	return nil
}

// Clean removes build artifacts.
func Clean() error {
	PrintH2Header("Clean")

	for _, path := range []string{"./bin", CoverProfile} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	if err := sh.Run("go", "clean", "-testcache"); err != nil {
		PrintWarning(fmt.Sprintf("go clean: %v", err))
	}

	PrintSuccess("Cleaned build artifacts")
	return nil
}

// Ldflags returns the linker flags that set the version variables.
func Ldflags(version, commit string, built time.Time) string {
	pkg := ModulePath + "/internal/version"
	return strings.Join([]string{
		"-s", "-w",
		fmt.Sprintf("-X '%s.Version=%s'", pkg, version),
		fmt.Sprintf("-X '%s.CommitHash=%s'", pkg, commit),
		fmt.Sprintf("-X '%s.BuildDate=%s'", pkg, built.Format(time.RFC3339)),
	}, " ")
}

func gitVersion() string {
	out, err := sh.Output("git", "describe", "--tags", "--always", "--dirty", "--match=v*")
	if err != nil || out == "" {
		return "dev"
	}
	return out
}

func gitCommit() string {
	out, err := sh.Output("git", "rev-parse", "--short", "HEAD")
	if err != nil || out == "" {
		return "unknown"
	}
	return out
}
