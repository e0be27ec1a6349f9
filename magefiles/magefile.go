//go:build mage

// Package main contains Mage build targets for docbatch.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "docbatch"
	modPath = "github.com/ginjaninja78/docbatch"
)

// Default target when mage is run without arguments.
var Default = Build

// Build compiles the CLI binary into bin/ with version information.
func Build() error {
	mg.Deps(Vet)

	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}

	version := os.Getenv("DOCBATCH_VERSION")
	if version == "" {
		version = "dev"
	}
	ldflags := fmt.Sprintf("-X '%s/cmd.Version=%s' -X '%s/cmd.BuildDate=%s'",
		modPath, version, modPath, time.Now().Format("2006-01-02"))

	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, "."); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs all unit tests with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Vet runs go vet over the module.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Tidy syncs go.mod and go.sum with the imports.
func Tidy() error {
	return sh.RunV("go", "mod", "tidy")
}

// Clean removes build output.
func Clean() error {
	return sh.Rm(binDir)
}
