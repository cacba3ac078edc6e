// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/physlab/pkg/types"
)

// ErrRunNotFound is returned by Load for an unknown run ID.
var ErrRunNotFound = errors.New("run not found")

// ListOptions filters archived runs.
type ListOptions struct {
	// K restricts the list to runs with a band block at this k-point
	// (loose tolerance).
	K *types.KPoint

	// EdgesOnly restricts the list to runs that reported band edges.
	EdgesOnly bool
}

// List returns archived runs sorted by ID.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]types.Run, error) {
	var (
		qb   strings.Builder
		args []any
	)

	qb.WriteString(
		`SELECT r.id, r.path, r.file_mod_time, r.k_points, r.iterations,
			r.final_energy, r.vbm, r.cbm
		FROM runs r
		WHERE 1=1`)

	if opts.EdgesOnly {
		qb.WriteString(` AND r.vbm IS NOT NULL AND r.cbm IS NOT NULL`)
	}

	if opts.K != nil {
		qb.WriteString(` AND EXISTS (SELECT 1 FROM band_blocks b WHERE b.run_id = r.id
			AND abs(b.kx - ?) < ? AND abs(b.ky - ?) < ? AND abs(b.kz - ?) < ?)`)
		for _, c := range opts.K {
			args = append(args, c, types.LooseTolerance)
		}
	}

	qb.WriteString(` ORDER BY r.id`)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []types.Run
	for rows.Next() {
		var (
			r           types.Run
			modTime     string
			finalEnergy sql.NullFloat64
			vbm, cbm    sql.NullFloat64
		)
		if err := rows.Scan(&r.ID, &r.Path, &modTime, &r.KPoints, &r.Iterations,
			&finalEnergy, &vbm, &cbm); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		r.ModTime, _ = time.Parse(time.RFC3339Nano, modTime)
		if finalEnergy.Valid {
			r.FinalEnergy = finalEnergy.Float64
		}
		if vbm.Valid && cbm.Valid {
			r.Edges = &types.BandEdges{VBM: vbm.Float64, CBM: cbm.Float64}
		}
		runs = append(runs, r)
	}

	return runs, rows.Err()
}

// Load rebuilds the extraction result archived for runID.
func (s *Store) Load(ctx context.Context, runID string) (*types.ExtractionResult, error) {
	var (
		path     string
		vbm, cbm sql.NullFloat64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT path, vbm, cbm FROM runs WHERE id = ?`, runID,
	).Scan(&path, &vbm, &cbm)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, fmt.Errorf("looking up run: %w", err)
	}

	result := &types.ExtractionResult{Source: path}
	if vbm.Valid && cbm.Valid {
		result.Edges = &types.BandEdges{VBM: vbm.Float64, CBM: cbm.Float64}
	}

	if result.Bands, err = s.loadBands(ctx, runID); err != nil {
		return nil, err
	}
	if result.Energies, err = s.loadEnergies(ctx, runID); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Store) loadBands(ctx context.Context, runID string) ([]types.BandBlock, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT kx, ky, kz, energies FROM band_blocks WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying band blocks: %w", err)
	}
	defer rows.Close()

	var blocks []types.BandBlock
	for rows.Next() {
		var (
			b            types.BandBlock
			energiesJSON string
		)
		if err := rows.Scan(&b.K[0], &b.K[1], &b.K[2], &energiesJSON); err != nil {
			return nil, fmt.Errorf("scanning band block: %w", err)
		}
		if err := json.Unmarshal([]byte(energiesJSON), &b.Energies); err != nil {
			return nil, fmt.Errorf("decoding band energies: %w", err)
		}
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

func (s *Store) loadEnergies(ctx context.Context, runID string) ([]types.EnergyPoint, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT iteration, energy FROM scf_energies WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying energies: %w", err)
	}
	defer rows.Close()

	points := []types.EnergyPoint{}
	for rows.Next() {
		var p types.EnergyPoint
		if err := rows.Scan(&p.Iteration, &p.Energy); err != nil {
			return nil, fmt.Errorf("scanning energy: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}
