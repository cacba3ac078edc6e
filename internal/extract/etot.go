// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/pdiddy/physlab/pkg/types"
)

var (
	// etotRe recognises, in priority order: a bare iteration marker, a
	// "total energy = <float>" assignment (optionally flagged with the
	// convergence marker "!"), and an "Etot = <float>" assignment.
	etotRe = regexp.MustCompile(`(?i)(?P<iter>\biter(?:ation)?\s*=?\s*(?P<i>\d+))|(?P<bang>!\s*)?total energy\s*=?\s*(?P<val>[-+]?\d+\.\d+)|\bEtot\b\s*=?\s*(?P<et>[-+]?\d+\.\d+)`)

	// iterRe finds an explicit iteration number anywhere on a line.
	iterRe = regexp.MustCompile(`(?i)\b(iter(?:ation)?|n)\s*[:=]?\s*(\d+)`)

	valIdx = etotRe.SubexpIndex("val")
	etIdx  = etotRe.SubexpIndex("et")
)

// energyOnLine returns the first total-energy value on line. Matches that
// only carry an iteration marker are passed over.
func energyOnLine(line string) (float64, bool) {
	for _, m := range etotRe.FindAllStringSubmatch(line, -1) {
		raw := m[valIdx]
		if raw == "" {
			raw = m[etIdx]
		}
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		return v, true
	}
	return 0, false
}

// iterationOnLine returns an explicit iteration number from line.
func iterationOnLine(line string) (int, bool) {
	m := iterRe.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseEtotLines collects (iteration, total energy) pairs from text. Lines
// without an energy are ignored. An explicit iteration number on the line
// is used as the key and resets the running counter; otherwise the counter
// advances by one. The result is sorted by iteration, keeping input order
// among equal keys, and is empty when no energy lines exist.
func ParseEtotLines(text string) []types.EnergyPoint {
	var (
		points []types.EnergyPoint
		seq    int
	)
	for _, line := range splitLines(text) {
		energy, ok := energyOnLine(line)
		if !ok {
			continue
		}

		n, explicit := iterationOnLine(line)
		if explicit {
			seq = n
		} else {
			seq++
			n = seq
		}
		points = append(points, types.EnergyPoint{Iteration: n, Energy: energy})
	}

	sort.SliceStable(points, func(a, b int) bool {
		return points[a].Iteration < points[b].Iteration
	})
	return points
}
