//go:build mage

// Package main contains Mage build targets for paper-scout developer tooling.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

const (
	binDir   = "bin"
	binName  = "paper-scout"
	cmdPkg   = "./cmd/paper-scout"
	cacheDir = "cache"
)

// Init creates the working directories the pipeline expects.
func Init() error {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", cacheDir, err)
	}
	fmt.Println("  ", cacheDir)
	fmt.Println("Project directories initialized.")
	return nil
}

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	cmd := exec.Command("go", "build", "-o", out, cmdPkg)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the full test suite.
func Test() error {
	cmd := exec.Command("go", "test", "./...")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Check builds the binary and runs the tests.
func Check() {
	mg.Deps(Build, Test)
}

// Clean removes build artifacts and the result cache.
func Clean() error {
	for _, dir := range []string{binDir, cacheDir} {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("removing %s: %w", dir, err)
		}
	}
	fmt.Println("Cleaned.")
	return nil
}
