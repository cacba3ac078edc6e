// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/physlab/pkg/types"
)

// headerRe matches a k-point header such as
//
//	k = 0.0000 0.0000 0.0000 (   893 PWs)   bands (ev):
//
// capturing the three coordinates. Anything after them is ignored.
// Coordinates may be fused by a sign, as in "k =-0.2500 0.2500-0.2500".
var headerRe = regexp.MustCompile(`^\s*k\s*=\s*([-+]?` + num + `)` + nextCoord + nextCoord)

const (
	num = `(?:\d+\.?\d*|\.\d+)`

	// nextCoord is a coordinate preceded by whitespace or directly by its
	// sign. The capture keeps the leading whitespace.
	nextCoord = `(\s+[-+]?` + num + `|[-+]` + num + `)`
)

// parseHeader returns the k-point of a header line. Lines whose captured
// coordinates do not convert are not headers.
func parseHeader(line string) (types.KPoint, bool) {
	m := headerRe.FindStringSubmatch(line)
	if m == nil {
		return types.KPoint{}, false
	}
	var k types.KPoint
	for i := range k {
		v, err := strconv.ParseFloat(strings.TrimSpace(m[i+1]), 64)
		if err != nil {
			return types.KPoint{}, false
		}
		k[i] = v
	}
	return k, true
}

// ParseBandBlocks scans text for k-point headers and collects the band
// energies printed beneath each one. A block runs over every following
// line that is blank or carries a numeric token, and ends at the first
// line that is neither. A line claimed by another record type (the next
// header, the band-edge report, a total-energy line) also ends it. Blocks
// are returned in header order; text without headers yields nil.
func ParseBandBlocks(text string) []types.BandBlock {
	lines := splitLines(text)

	var blocks []types.BandBlock
	i := 0
	for i < len(lines) {
		k, ok := parseHeader(lines[i])
		if !ok {
			i++
			continue
		}

		energies := []float64{}
		j := i + 1
		for ; j < len(lines); j++ {
			line := lines[j]
			if closesBlock(line) {
				break
			}
			if isBlank(line) {
				continue
			}
			if !hasNumeric(line) {
				break
			}
			energies = append(energies, ParseFloats(NumericTokens(line))...)
		}

		blocks = append(blocks, types.BandBlock{K: k, Energies: energies})
		i = j
	}
	return blocks
}

// closesBlock reports whether line belongs to another record type and so
// cannot be part of a band block.
func closesBlock(line string) bool {
	if headerRe.MatchString(line) || edgesRe.MatchString(line) {
		return true
	}
	_, ok := energyOnLine(line)
	return ok
}
