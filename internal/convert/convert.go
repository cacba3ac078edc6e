// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns raw output files into text for the parsers.
// Decoding is lenient: invalid UTF-8 is replaced with U+FFFD rather than
// rejected, and a UTF-16 byte order mark switches the decoder. Files
// ending in .gz, .zst or .lz4 are decompressed on the fly.
package convert

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrFileNotFound is returned by ReadText when the input does not exist.
var ErrFileNotFound = errors.New("input file not found")

// Decode reads all of r and returns it as valid UTF-8.
func Decode(r io.Reader) (string, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	data, err := io.ReadAll(transform.NewReader(r, dec))
	if err != nil {
		return "", fmt.Errorf("decoding text: %w", err)
	}
	return string(data), nil
}

// ReadText opens path and decodes its contents. A missing file is
// reported as ErrFileNotFound.
func ReadText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r, err := decompress(f, path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	defer r.Close()

	text, err := Decode(r)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return text, nil
}

// decompress wraps r in a decompressor chosen by the extension of path.
func decompress(r io.Reader, path string) (io.ReadCloser, error) {
	switch filepath.Ext(path) {
	case ".gz":
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("opening gzip stream: %w", err)
		}
		return zr, nil
	case ".zst":
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("opening zstd stream: %w", err)
		}
		return zr.IOReadCloser(), nil
	case ".lz4":
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return io.NopCloser(r), nil
	}
}

// compressedExts are stripped before the file extension in BaseID.
var compressedExts = []string{".gz", ".zst", ".lz4"}

// SiblingPath returns name placed in the same directory as path.
func SiblingPath(path, name string) string {
	return filepath.Join(filepath.Dir(path), name)
}

// BaseID returns the file name of path without directory or extension.
// A compression suffix is removed first, so "scf.out.gz" gives "scf".
func BaseID(path string) string {
	base := filepath.Base(path)
	for _, ext := range compressedExts {
		base = strings.TrimSuffix(base, ext)
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}
