// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pdiddy/physlab/pkg/types"
)

// FindBlockForK returns the first block whose k-point matches target within
// TightTolerance on every axis, falling back to LooseTolerance. The second
// result is false when neither pass finds a block.
func FindBlockForK(blocks []types.BandBlock, target types.KPoint) (types.BandBlock, bool) {
	for _, tol := range []float64{types.TightTolerance, types.LooseTolerance} {
		for _, b := range blocks {
			if b.K.Within(target, tol) {
				return b, true
			}
		}
	}
	return types.BandBlock{}, false
}

// ParseKPoint reads a k-point written as three numbers separated by
// whitespace or commas, optionally wrapped in parentheses: "0 0.75 0",
// "(0, 0.75, 0)".
func ParseKPoint(s string) (types.KPoint, error) {
	trimmed := strings.Trim(strings.TrimSpace(s), "()[]")
	fields := strings.FieldsFunc(trimmed, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) != 3 {
		return types.KPoint{}, fmt.Errorf("k-point %q: want 3 components, got %d", s, len(fields))
	}
	var k types.KPoint
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return types.KPoint{}, fmt.Errorf("k-point %q: component %d: %w", s, i+1, err)
		}
		k[i] = v
	}
	return k, nil
}
