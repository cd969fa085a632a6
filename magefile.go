//go:build mage

package main

import (
	"fmt"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Default target - build the binary
var Default = Build

const versionPkg = "github.com/sairamkotha/XCLogParser/internal/version"

// Build builds the xclogparser binary with version metadata.
func Build() error {
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil {
		version = "dev"
	}
	commit, err := sh.Output("git", "rev-parse", "--short", "HEAD")
	if err != nil {
		commit = "unknown"
	}
	ldflags := fmt.Sprintf("-X %s.Version=%s -X %s.CommitHash=%s -X %s.BuildDate=%s",
		versionPkg, version, versionPkg, commit, versionPkg, time.Now().UTC().Format("2006-01-02"))
	return sh.RunV("go", "build", "-ldflags", ldflags, "-o", "bin/xclogparser", "./cmd/xclogparser")
}

// Test runs the test suite with race detection.
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// QA runs format, vet and lint checks before a full build.
func QA() error {
	fmt.Println("🔍 Running QA checks...")

	if err := sh.RunV("go", "fmt", "./..."); err != nil {
		return fmt.Errorf("format check failed: %w", err)
	}
	if err := sh.RunV("go", "vet", "./..."); err != nil {
		return fmt.Errorf("vet failed: %w", err)
	}
	if err := sh.RunV("golangci-lint", "run", "--timeout=5m", "./..."); err != nil {
		fmt.Println("⚠️  Golangci-lint failed (install: go install github.com/golangci/golangci-lint/cmd/golangci-lint@latest)")
	}

	mg.Deps(Build, Test)
	fmt.Println("✅ QA complete!")
	return nil
}

// Clean removes build artifacts.
func Clean() error {
	return sh.Rm("bin")
}
