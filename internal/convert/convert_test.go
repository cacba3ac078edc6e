// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"plain", []byte("k = 0 0 0\n"), "k = 0 0 0\n"},
		{"invalid utf-8 replaced", []byte("E = \xff1.5\n"), "E = �1.5\n"},
		{"utf-8 bom stripped", []byte("\xef\xbb\xbfEtot = -1.0"), "Etot = -1.0"},
		{"utf-16le bom", []byte{0xff, 0xfe, 'o', 0, 'k', 0}, "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(strings.NewReader(string(tt.in)))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.out")
	require.NoError(t, os.WriteFile(path, []byte("total energy = -1.5 Ry\n"), 0o644))

	text, err := ReadText(path)
	require.NoError(t, err)
	assert.Equal(t, "total energy = -1.5 Ry\n", text)

	_, err = ReadText(filepath.Join(dir, "missing.out"))
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestPaths(t *testing.T) {
	assert.Equal(t, filepath.Join("runs", "si", "etot_vs_n.png"), SiblingPath(filepath.Join("runs", "si", "scf.out"), "etot_vs_n.png"))
	assert.Equal(t, "scf", BaseID(filepath.Join("runs", "scf.out")))
	assert.Equal(t, "scf.2", BaseID("scf.2.log"))
}

func TestReadTextCompressed(t *testing.T) {
	const content = "     total energy              =     -22.84050076 Ry\n"
	dir := t.TempDir()

	tests := []struct {
		name  string
		write func(w io.Writer) io.WriteCloser
	}{
		{"scf.out.gz", func(w io.Writer) io.WriteCloser { return gzip.NewWriter(w) }},
		{"scf.out.zst", func(w io.Writer) io.WriteCloser {
			enc, err := zstd.NewWriter(w)
			require.NoError(t, err)
			return enc
		}},
		{"scf.out.lz4", func(w io.Writer) io.WriteCloser { return lz4.NewWriter(w) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			zw := tt.write(&buf)
			_, err := zw.Write([]byte(content))
			require.NoError(t, err)
			require.NoError(t, zw.Close())

			path := filepath.Join(dir, tt.name)
			require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

			text, err := ReadText(path)
			require.NoError(t, err)
			assert.Equal(t, content, text)
			assert.Equal(t, "scf", BaseID(path))
		})
	}
}

func TestReadTextCorruptGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.out.gz")
	require.NoError(t, os.WriteFile(path, []byte("not gzip"), 0o644))

	_, err := ReadText(path)
	assert.ErrorContains(t, err, "gzip")
}
