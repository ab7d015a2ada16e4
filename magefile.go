//go:build mage

package main

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	modulePath = "github.com/dkoosis/sift"
	binPath    = "bin/sift"
)

// Default target - build the binary
var Default = Build

var (
	header  = color.New(color.FgCyan, color.Bold).PrintlnFunc()
	success = color.New(color.FgGreen).PrintlnFunc()
	warning = color.New(color.FgYellow).PrintlnFunc()
)

// Build builds the sift binary with version metadata.
func Build() error {
	header("Build")
	if err := sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binPath, "./cmd/sift"); err != nil {
		return err
	}
	success("Built: " + binPath)
	return nil
}

// Install installs sift into GOBIN.
func Install() error {
	header("Install")
	return sh.RunV("go", "install", "-ldflags", ldflags(), "./cmd/sift")
}

// Clean removes build artifacts
func Clean() error {
	header("Clean")
	if err := sh.Rm("bin"); err != nil {
		return err
	}
	return sh.Rm("coverage.out")
}

// QA runs formatting, vet, lint and the race-enabled test suite.
func QA() {
	mg.SerialDeps(Lint.Format, Lint.Vet, Lint.Golangci, Test.Race, Build)
	success("QA complete!")
}

func ldflags() string {
	version := gitOutput("dev", "describe", "--tags", "--always", "--dirty", "--match=v*")
	commit := gitOutput("unknown", "rev-parse", "--short", "HEAD")
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf("-s -w -X '%[1]s/internal/version.Version=%[2]s' -X '%[1]s/internal/version.CommitHash=%[3]s' -X '%[1]s/internal/version.BuildDate=%[4]s'",
		modulePath, version, commit, date)
}

func gitOutput(fallback string, args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil || out == "" {
		return fallback
	}
	return strings.TrimSpace(out)
}

// Lint namespace for linting commands
type Lint mg.Namespace

// Format fails when gofmt would change a file.
func (Lint) Format() error {
	header("gofmt")
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return err
	}
	if out != "" {
		return fmt.Errorf("files need gofmt:\n%s", out)
	}
	return nil
}

// Vet runs go vet
func (Lint) Vet() error {
	header("go vet")
	return sh.RunV("go", "vet", "./...")
}

// Golangci runs golangci-lint when installed.
func (Lint) Golangci() error {
	header("golangci-lint")
	err := sh.RunV("golangci-lint", "run", "--timeout=5m", "./...")
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		warning("golangci-lint not found (install: go install github.com/golangci/golangci-lint/cmd/golangci-lint@latest)")
		return nil
	}
	return err
}

// Test namespace for testing commands
type Test mg.Namespace

// All runs all tests
func (Test) All() error {
	header("Tests")
	return sh.RunV("go", "test", "./...")
}

// Race runs tests with race detector
func (Test) Race() error {
	header("Tests (race)")
	return sh.RunV("go", "test", "-race", "./...")
}

// Coverage runs tests with coverage
func (Test) Coverage() error {
	header("Test Coverage")
	if err := sh.RunV("go", "test", "-coverprofile=coverage.out", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-func=coverage.out")
}
