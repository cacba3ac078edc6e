// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/physlab/pkg/types"
)

func TestExtractBandEdges(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   types.BandEdges
		wantOK bool
	}{
		{
			name:   "reported edges",
			text:   "     highest occupied, lowest unoccupied level (ev):    5.123456    7.654321\n",
			want:   types.BandEdges{VBM: 5.123456, CBM: 7.654321},
			wantOK: true,
		},
		{
			name:   "negative edges inside longer text",
			text:   "k = 0 0 0\n -1.0\n\n highest occupied, lowest unoccupied level (ev):   -0.5000   1.2500\n! total energy = -1.0 Ry\n",
			want:   types.BandEdges{VBM: -0.5, CBM: 1.25},
			wantOK: true,
		},
		{
			name: "metal without edges",
			text: "     the Fermi energy is    13.4021 ev\n",
		},
		{
			name: "only highest occupied level",
			text: "     highest occupied level (ev):     6.2514\n",
		},
		{
			name: "unconvertible values",
			text: "highest occupied, lowest unoccupied level (ev): 1.2.3 4\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractBandEdges(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBandEdgesGap(t *testing.T) {
	e := types.BandEdges{VBM: 5.123456, CBM: 7.654321}
	assert.InDelta(t, 2.530865, e.Gap(), 1e-12)
}
