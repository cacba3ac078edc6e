// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store archives extraction results from many output files in a
// SQLite database so runs can be listed and exported together.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/physlab/internal/convert"
	"github.com/pdiddy/physlab/internal/extract"
	"github.com/pdiddy/physlab/pkg/types"
)

const (
	dbFile         = "physlab.db"
	defaultDir     = "archive"
	defaultPattern = "*.out"
)

// Store manages the run archive database.
type Store struct {
	db      *sql.DB
	dir     string
	pattern string
}

// NewStore opens or creates the archive at cfg.Dir/physlab.db and creates
// the schema if it does not exist.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = defaultDir
	}
	pattern := cfg.Pattern
	if pattern == "" {
		pattern = defaultPattern
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dir: dir, pattern: pattern}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			path TEXT NOT NULL,
			file_mod_time TEXT NOT NULL,
			k_points INTEGER NOT NULL,
			iterations INTEGER NOT NULL,
			final_energy REAL,
			vbm REAL,
			cbm REAL
		)`,
		`CREATE TABLE IF NOT EXISTS band_blocks (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			kx REAL NOT NULL,
			ky REAL NOT NULL,
			kz REAL NOT NULL,
			energies TEXT NOT NULL,
			PRIMARY KEY (run_id, position)
		)`,
		`CREATE TABLE IF NOT EXISTS scf_energies (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			iteration INTEGER NOT NULL,
			energy REAL NOT NULL,
			PRIMARY KEY (run_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_band_blocks_k ON band_blocks(kx, ky, kz)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// IngestSummary holds counts from an archive run.
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of files processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Ingest extracts every file in dir matching the store pattern and
// archives the results. Files whose modification time matches the archived
// one are skipped; changed files replace their previous records. Progress
// is written to w. On any change, export.yaml is rewritten.
func (s *Store) Ingest(ctx context.Context, dir string, w io.Writer) (IngestSummary, error) {
	paths, err := filepath.Glob(filepath.Join(dir, s.pattern))
	if err != nil {
		return IngestSummary{}, fmt.Errorf("matching %s in %s: %w", s.pattern, dir, err)
	}
	sort.Strings(paths)

	var summary IngestSummary

	for _, path := range paths {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		runID := convert.BaseID(path)

		info, err := os.Stat(path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", runID, err)
			summary.Failed++
			continue
		}
		if info.IsDir() {
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM runs WHERE id = ?`, runID,
		).Scan(&storedModTime)

		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", runID)
			summary.Skipped++
			continue
		}

		isUpdate := err == nil

		result, err := extract.ExtractFile(path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", runID, err)
			summary.Failed++
			continue
		}

		if err := s.ingestRun(ctx, runID, path, modTime, &result); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", runID, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s (%d k-points, %d iterations)\n", runID, len(result.Bands), len(result.Energies))
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexing %s (%d k-points, %d iterations)\n", runID, len(result.Bands), len(result.Energies))
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)

	if summary.Indexed > 0 || summary.Updated > 0 {
		if _, err := s.ExportYAML(ctx); err != nil {
			fmt.Fprintf(w, "warning: export.yaml write failed: %v\n", err)
		}
	}

	return summary, nil
}

func (s *Store) ingestRun(ctx context.Context, runID, path, modTime string, result *types.ExtractionResult) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Child rows go with the run.
	if _, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, runID); err != nil {
		return fmt.Errorf("deleting old run: %w", err)
	}

	var finalEnergy, vbm, cbm sql.NullFloat64
	if n := len(result.Energies); n > 0 {
		finalEnergy = sql.NullFloat64{Float64: result.Energies[n-1].Energy, Valid: true}
	}
	if result.Edges != nil {
		vbm = sql.NullFloat64{Float64: result.Edges.VBM, Valid: true}
		cbm = sql.NullFloat64{Float64: result.Edges.CBM, Valid: true}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, path, file_mod_time, k_points, iterations, final_energy, vbm, cbm)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, path, modTime, len(result.Bands), len(result.Energies), finalEnergy, vbm, cbm,
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	bandStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO band_blocks (run_id, position, kx, ky, kz, energies) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing band insert: %w", err)
	}
	defer bandStmt.Close()

	for i, b := range result.Bands {
		energies := b.Energies
		if energies == nil {
			energies = []float64{}
		}
		energiesJSON, err := json.Marshal(energies)
		if err != nil {
			return fmt.Errorf("encoding band energies: %w", err)
		}
		if _, err := bandStmt.ExecContext(ctx, runID, i, b.K[0], b.K[1], b.K[2], string(energiesJSON)); err != nil {
			return fmt.Errorf("inserting band block %d: %w", i, err)
		}
	}

	scfStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO scf_energies (run_id, position, iteration, energy) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing energy insert: %w", err)
	}
	defer scfStmt.Close()

	for i, p := range result.Energies {
		if _, err := scfStmt.ExecContext(ctx, runID, i, p.Iteration, p.Energy); err != nil {
			return fmt.Errorf("inserting energy %d: %w", i, err)
		}
	}

	return tx.Commit()
}
