//go:build mage

// Package main contains Mage build targets for graphidx developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "graphidx"
	cmdPkg  = "./cmd/graphidx"
	sample  = "testdata/project"
)

// Default target when mage runs without arguments.
var Default = Build

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil {
		version = "dev"
	}
	out := filepath.Join(binDir, binName)
	ldflags := "-X github.com/custodia-labs/graphidx/internal/adapters/driving/cli.version=" + version
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Lint runs go vet over every package.
func Lint() error {
	return sh.RunV("go", "vet", "./...")
}

// Check runs Lint and Test.
func Check() {
	mg.SerialDeps(Lint, Test)
}

// Init writes a starter configuration and input directory for a sample project.
func Init() error {
	mg.Deps(Build)
	if err := os.MkdirAll(sample, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", sample, err)
	}
	return sh.RunV(filepath.Join(binDir, binName), "init", "--root", sample)
}

// Clean removes build output.
func Clean() error {
	return sh.Rm(binDir)
}
