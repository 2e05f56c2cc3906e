// linkedinsolvers - interactive solvers for grid logic puzzles.
// Copyright (C) 2025 the LinkedInSolvers authors.
//
// This program is free software; you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation; either version 2 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.

package dbprep

import (
	"testing"

	"github.com/aidenzhou8/LinkedInSolvers/puzzle"
)

// every sample board must construct and solve, since they're the
// first thing a new user opens
func TestSampleBoards(t *testing.T) {
	seen := make(map[string]bool)
	for _, sb := range sampleBoards {
		if seen[sb.name] {
			t.Errorf("Duplicate sample name %q", sb.name)
		}
		seen[sb.name] = true
		inst, err := puzzle.New(sb.summary)
		if err != nil {
			t.Errorf("Sample %q doesn't construct: %v", sb.name, err)
			continue
		}
		if _, err := inst.Solve(); err != nil {
			t.Errorf("Sample %q doesn't solve: %v", sb.name, err)
		}
	}
	kinds := make(map[string]bool)
	for _, sb := range sampleBoards {
		kinds[sb.summary.Kind] = true
	}
	for _, kind := range []string{puzzle.QueensKindName, puzzle.TangoKindName, puzzle.ZipKindName} {
		if !kinds[kind] {
			t.Errorf("No sample of kind %q", kind)
		}
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := migrations.ReadDir("migrations")
	if err != nil {
		t.Fatalf("Couldn't read embedded migrations: %v", err)
	}
	if len(entries)%2 != 0 || len(entries) == 0 {
		t.Errorf("Expected matched up/down pairs, found %d files", len(entries))
	}
}

// Schema and data round trips need a live database; they're
// exercised through the storage package's tests and the
// prepare-storage command.
func TestRoundTrip(t *testing.T) {
	if _, err := SchemaVersion(); err != nil {
		t.Skipf("no database available: %v", err)
	}
	if err := ReinitializeAll(); err != nil {
		t.Fatalf("Failed to reinitialize: %v", err)
	}
	version, err := SchemaVersion()
	if err != nil {
		t.Fatalf("Failed to read version: %v", err)
	}
	if version == 0 {
		t.Errorf("Schema still at version 0 after reinitialize")
	}
	if err := RemoveData(); err != nil {
		t.Fatalf("Failed to remove data: %v", err)
	}
	if err := EnsureData(); err != nil {
		t.Fatalf("Failed to restore data: %v", err)
	}
}
