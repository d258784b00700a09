//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binary = "vocadrill"

// Default target when running plain "mage".
var Default = Build

// Build compiles the vocadrill binary into the repository root. VERSION, when
// set, is stamped into the binary.
func Build() error {
	args := []string{"build", "-o", binary}
	if v := os.Getenv("VERSION"); v != "" {
		args = append(args, "-ldflags", "-X codeberg.org/snonux/vocadrill/internal.Version="+v)
	}
	return sh.RunV("go", append(args, "./cmd/vocadrill")...)
}

// Test runs all unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Install copies the binary to ~/go/bin.
func Install() error {
	mg.Deps(Build)

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	dst := filepath.Join(home, "go", "bin", binary)
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	fmt.Println("Installing to", dst)
	return sh.Copy(dst, binary)
}

// Convert stores a JSON or text word list in the SQLite database given by
// the VOCADRILL_DB environment variable, e.g.
// VOCADRILL_DB=words.db mage convert levels/levelH.json
func Convert(in string) error {
	mg.Deps(Build)
	db := os.Getenv("VOCADRILL_DB")
	if db == "" {
		return fmt.Errorf("VOCADRILL_DB is not set")
	}
	return sh.RunV("./"+binary, "convert", in, db)
}

// Clean removes build output.
func Clean() error {
	return sh.Rm(binary)
}
