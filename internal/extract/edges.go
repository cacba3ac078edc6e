// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strconv"

	"github.com/pdiddy/physlab/pkg/types"
)

var edgesRe = regexp.MustCompile(`highest occupied, lowest unoccupied level \(ev\):\s*([0-9.\-]+)\s*([0-9.\-]+)`)

// ExtractBandEdges finds the globally reported highest occupied and lowest
// unoccupied levels. It returns false when the line is absent, which is
// normal for metals, or when its values do not convert.
func ExtractBandEdges(text string) (types.BandEdges, bool) {
	m := edgesRe.FindStringSubmatch(text)
	if m == nil {
		return types.BandEdges{}, false
	}
	vbm, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return types.BandEdges{}, false
	}
	cbm, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return types.BandEdges{}, false
	}
	return types.BandEdges{VBM: vbm, CBM: cbm}, true
}
