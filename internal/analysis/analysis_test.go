// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/physlab/pkg/types"
)

func TestSummarizeSCF(t *testing.T) {
	points := []types.EnergyPoint{
		{Iteration: 1, Energy: -22.83855155},
		{Iteration: 2, Energy: -22.84005342},
		{Iteration: 3, Energy: -22.84049103},
		{Iteration: 4, Energy: -22.84049150},
	}

	s, ok := SummarizeSCF(points, 1e-5)
	require.True(t, ok)
	assert.Equal(t, 4, s.Iterations)
	assert.Equal(t, -22.83855155, s.First)
	assert.Equal(t, -22.84049150, s.Final)
	assert.Equal(t, -22.84049150, s.Min)
	assert.InDelta(t, -4.7e-7, s.LastDelta, 1e-12)
	assert.True(t, s.Converged)

	s, ok = SummarizeSCF(points[:2], 0)
	require.True(t, ok)
	assert.False(t, s.Converged, "ΔE of 1.5e-3 is above the default threshold")
}

func TestSummarizeSCFEdgeCases(t *testing.T) {
	_, ok := SummarizeSCF(nil, 0)
	assert.False(t, ok)

	s, ok := SummarizeSCF([]types.EnergyPoint{{Iteration: 1, Energy: -1}}, 0)
	require.True(t, ok)
	assert.True(t, math.IsNaN(s.LastDelta))
	assert.False(t, s.Converged)
}

func TestColumns(t *testing.T) {
	points := []types.EnergyPoint{{Iteration: 3, Energy: -1.5}, {Iteration: 7, Energy: -2.5}}
	assert.Equal(t, []float64{3, 7}, Iterations(points))
	assert.Equal(t, []float64{-1.5, -2.5}, Energies(points))
}

func TestSummarizeBands(t *testing.T) {
	block := types.BandBlock{Energies: []float64{-5.6039, 6.2514, 6.2514, 6.2514, 8.7721, 8.7721, 8.7721, 9.5399}}

	s, ok := SummarizeBands(block)
	require.True(t, ok)
	assert.Equal(t, 8, s.Count)
	assert.Equal(t, -5.6039, s.Min)
	assert.Equal(t, 9.5399, s.Max)
	assert.InDelta(t, 6.1258125, s.Mean, 1e-9)

	_, ok = SummarizeBands(types.BandBlock{})
	assert.False(t, ok)
}

func TestOccupiedBands(t *testing.T) {
	block := types.BandBlock{Energies: []float64{-5.6039, 6.2514, 6.2514, 6.2514, 8.7721}}
	edges := types.BandEdges{VBM: 6.2514, CBM: 7.9452}
	assert.Equal(t, 4, OccupiedBands(block, edges))
}
