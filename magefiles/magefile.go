// Package main contains Mage build targets for physlab developer tooling.
package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// projectDirs lists the working directories the course tools expect.
var projectDirs = []string{
	"runs",
	"archive",
	"plots",
}

// sampleConfig is written to physlab.yaml by Init when none exists.
const sampleConfig = `bands:
  targets: ["0 0 0", "0 0.75 0"]
  labels: ["Gamma"]
plot:
  width: 6
  height: 4
  dpi: 150
store:
  dir: archive
  pattern: "*.out"
`

// Init creates the working directories and a starter physlab.yaml.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	if _, err := os.Stat("physlab.yaml"); os.IsNotExist(err) {
		if err := os.WriteFile("physlab.yaml", []byte(sampleConfig), 0o644); err != nil {
			return fmt.Errorf("writing physlab.yaml: %w", err)
		}
		fmt.Println("   physlab.yaml")
	}
	fmt.Println("Project directories initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "physlab"
	cmdPkg  = "./cmd/physlab"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Check builds the binary and runs the tests.
func Check() {
	mg.SerialDeps(Build, Test)
}

// Ingest builds the binary and archives every output file under runs/.
func Ingest() error {
	mg.Deps(Build, Init)
	return sh.RunV(filepath.Join(binDir, binName), "store", "ingest", "runs")
}

// Stats prints Go line counts per package and the parser fixtures under
// testdata/.
func Stats() error {
	counts, err := countGoLines(".")
	if err != nil {
		return err
	}
	fixtures, err := listFixtures(".")
	if err != nil {
		return err
	}

	pkgs := make([]string, 0, len(counts))
	for pkg := range counts {
		pkgs = append(pkgs, pkg)
	}
	sort.Strings(pkgs)

	var prod, test int
	fmt.Printf("%-20s  %6s  %6s\n", "Package", "Code", "Tests")
	for _, pkg := range pkgs {
		c := counts[pkg]
		fmt.Printf("%-20s  %6d  %6d\n", pkg, c.prod, c.test)
		prod += c.prod
		test += c.test
	}
	fmt.Printf("%-20s  %6d  %6d\n", "total", prod, test)

	fmt.Printf("\nFixtures (%d):\n", len(fixtures))
	for _, f := range fixtures {
		fmt.Println("  ", f)
	}
	return nil
}

// lineCount holds non-blank Go lines of one package directory.
type lineCount struct {
	prod, test int
}

// skipDir reports whether a directory is outside the module's own code.
func skipDir(name string) bool {
	return name != "." && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") || name == binDir)
}

// countGoLines counts non-blank lines of Go files under root, keyed by
// package directory.
func countGoLines(root string) (map[string]lineCount, error) {
	counts := make(map[string]lineCount)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		n := 0
		for _, line := range strings.Split(string(data), "\n") {
			if strings.TrimSpace(line) != "" {
				n++
			}
		}
		pkg, err := filepath.Rel(root, filepath.Dir(path))
		if err != nil {
			return err
		}
		c := counts[filepath.ToSlash(pkg)]
		if strings.HasSuffix(path, "_test.go") {
			c.test += n
		} else {
			c.prod += n
		}
		counts[filepath.ToSlash(pkg)] = c
		return nil
	})
	return counts, err
}

// listFixtures returns the files kept in testdata/ directories under root.
func listFixtures(root string) ([]string, error) {
	var fixtures []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Base(filepath.Dir(path)) == "testdata" {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			fixtures = append(fixtures, filepath.ToSlash(rel))
		}
		return nil
	})
	return fixtures, err
}
