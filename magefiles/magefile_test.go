package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func TestCountGoLines(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"internal/extract/bands.go":      "package extract\n\nfunc A() {}\n",
		"internal/extract/bands_test.go": "package extract\n\n\nfunc TestA() {}\n   \n",
		"cmd/physlab/main.go":            "package main\r\nfunc main() {}\r\n",
		"_examples/teach/x.go":           "package x\n",
		"bin/gen.go":                     "package gen\n",
		"README.md":                      "not go\n",
	})

	counts, err := countGoLines(root)
	require.NoError(t, err)

	assert.Equal(t, map[string]lineCount{
		"internal/extract": {prod: 2, test: 2},
		"cmd/physlab":      {prod: 2},
	}, counts)
}

func TestListFixtures(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"internal/extract/testdata/diamond.out": "k = 0 0 0\n",
		"internal/pendulum/testdata/short.toml": "dt = 0.05\n",
		"internal/extract/bands.go":             "package extract\n",
		"_examples/x/testdata/ignored.out":      "",
	})

	fixtures, err := listFixtures(root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"internal/extract/testdata/diamond.out",
		"internal/pendulum/testdata/short.toml",
	}, fixtures)
}
