// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/physlab/pkg/types"
)

func TestFindBlockForK(t *testing.T) {
	gamma := types.BandBlock{K: types.KPoint{0, 0, 0}, Energies: []float64{-5.123456, -3.0, 1.5, 2.75}}

	t.Run("exact match", func(t *testing.T) {
		got, ok := FindBlockForK([]types.BandBlock{gamma}, types.KPoint{0, 0, 0})
		require.True(t, ok)
		assert.Equal(t, gamma, got)
	})

	t.Run("unrelated k-point is not found", func(t *testing.T) {
		got, ok := FindBlockForK([]types.BandBlock{gamma}, types.KPoint{0, 0.75, 0})
		assert.False(t, ok)
		assert.Equal(t, types.BandBlock{}, got)
	})

	t.Run("empty input", func(t *testing.T) {
		_, ok := FindBlockForK(nil, types.KPoint{0, 0, 0})
		assert.False(t, ok)
	})

	t.Run("tight match beats earlier loose match", func(t *testing.T) {
		blocks := []types.BandBlock{
			{K: types.KPoint{0, 0.7504, 0}, Energies: []float64{1}},
			{K: types.KPoint{0, 0.75, 0}, Energies: []float64{2}},
		}
		got, ok := FindBlockForK(blocks, types.KPoint{0, 0.75, 0})
		require.True(t, ok)
		assert.Equal(t, []float64{2}, got.Energies)
	})

	t.Run("loose match when no tight match", func(t *testing.T) {
		blocks := []types.BandBlock{
			{K: types.KPoint{0.5, 0.5, 0.5}, Energies: []float64{1}},
			{K: types.KPoint{0, 0.7504, 0}, Energies: []float64{2}},
			{K: types.KPoint{0, 0.7497, 0}, Energies: []float64{3}},
		}
		got, ok := FindBlockForK(blocks, types.KPoint{0, 0.75, 0})
		require.True(t, ok)
		assert.Equal(t, []float64{2}, got.Energies, "first loose match in header order")
	})

	t.Run("each axis checked independently", func(t *testing.T) {
		blocks := []types.BandBlock{{K: types.KPoint{0.0005, 0.0005, 0.002}}}
		_, ok := FindBlockForK(blocks, types.KPoint{0, 0, 0})
		assert.False(t, ok)
	})
}

func TestParseKPoint(t *testing.T) {
	tests := []struct {
		in      string
		want    types.KPoint
		wantErr bool
	}{
		{in: "0 0.75 0", want: types.KPoint{0, 0.75, 0}},
		{in: "(0, 0.75, 0)", want: types.KPoint{0, 0.75, 0}},
		{in: " -0.5,0.5 ,0.5 ", want: types.KPoint{-0.5, 0.5, 0.5}},
		{in: "0 0", wantErr: true},
		{in: "0 x 0", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKPoint(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
