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
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aidenzhou8/LinkedInSolvers/puzzle"
)

/*

entries

*/

type dataFunction func(pgx.Tx) error

var (
	upFunctions = []dataFunction{
		insertSamples,
	}
	downFunctions = []dataFunction{
		deleteSamples,
	}
)

// DataUp: load the sample boards into the database.  You should do
// this after you get the schema up!
func DataUp() error {
	return applyFunctions(upFunctions)
}

// DataDown: remove the sample boards from the database.  You
// should do this before you tear the schema down!
func DataDown() error {
	return applyFunctions(downFunctions)
}

// apply dataFunctions to the database.  Each is applied in a
// separate transaction, so later ones can rely on the effect of
// earlier ones having been committed.
func applyFunctions(fns []dataFunction) error {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		url = "postgres://localhost/linkedinsolvers?sslmode=disable"
	}

	// open the database, defer the close
	ctx := context.Background()
	conn, err := pgx.Connect(ctx, url)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	// helper that runs each function inside a transaction, and
	// ensures that any problems are rolled back.
	runFunc := func(fn dataFunction) error {
		tx, err := conn.Begin(ctx)
		if err != nil {
			return err
		}
		defer func() {
			if e := recover(); e != nil {
				tx.Rollback(ctx)
				panic(e)
			}
		}()
		if err := fn(tx); err != nil {
			tx.Rollback(ctx)
			return err
		}
		return tx.Commit(ctx)
	}

	// run the functions
	for _, fn := range fns {
		if err := runFunc(fn); err != nil {
			return fmt.Errorf("%v failed: %v", fn, err)
		}
	}
	return nil
}

/*

sample boards

*/

type sampleBoard struct {
	name    string
	summary *puzzle.Summary
}

// One solvable sample of each kind, so a fresh install has
// something to open.
var sampleBoards = []sampleBoard{
	{
		name: "sample-queens",
		summary: &puzzle.Summary{
			Kind:       puzzle.QueensKindName,
			SideLength: 4,
			Regions: []int{
				1, 1, 2, 2,
				1, 2, 2, 2,
				3, 3, 4, 2,
				3, 4, 4, 4,
			},
		},
	},
	{
		name: "sample-tango",
		summary: &puzzle.Summary{
			Kind:       puzzle.TangoKindName,
			SideLength: 6,
			Cells: []int{
				1, 0, 0, 0, 0, 0,
				0, 0, 0, 2, 0, 0,
				0, 0, 0, 0, 0, 0,
				0, 0, 1, 0, 0, 0,
				0, 0, 0, 0, 0, 0,
				0, 0, 0, 0, 0, 2,
			},
			Constraints: []puzzle.Constraint{
				{A: 1, B: 2, Relation: puzzle.EqualRelation},
				{A: 20, B: 26, Relation: puzzle.OppositeRelation},
			},
		},
	},
	{
		name: "sample-zip",
		summary: &puzzle.Summary{
			Kind:       puzzle.ZipKindName,
			SideLength: 3,
			Labels: []int{
				1, 0, 0,
				0, 0, 0,
				0, 0, 2,
			},
			Walls: []puzzle.Wall{{A: 0, B: 3}},
		},
	},
}

// insertSamples writes the sample boards, replacing any prior
// versions of them.
func insertSamples(tx pgx.Tx) error {
	ctx := context.Background()
	for _, sb := range sampleBoards {
		// validate before storing, so a bad sample is caught here
		// rather than on first open
		if _, err := puzzle.New(sb.summary); err != nil {
			return fmt.Errorf("Sample board %q is broken: %v", sb.name, err)
		}
		bytes, err := json.Marshal(sb.summary)
		if err != nil {
			return fmt.Errorf("Couldn't marshal sample board %q: %v", sb.name, err)
		}
		_, err = tx.Exec(ctx,
			"INSERT INTO boards (name, kind, summary, created) "+
				"VALUES ($1, $2, $3, $4) "+
				"ON CONFLICT (name) DO UPDATE SET kind = $2, summary = $3",
			sb.name, sb.summary.Kind, string(bytes), time.Now())
		if err != nil {
			return fmt.Errorf("Couldn't insert sample board %q: %v", sb.name, err)
		}
	}
	return nil
}

// deleteSamples removes the sample boards.
func deleteSamples(tx pgx.Tx) error {
	ctx := context.Background()
	for _, sb := range sampleBoards {
		if _, err := tx.Exec(ctx, "DELETE FROM boards WHERE name = $1", sb.name); err != nil {
			return fmt.Errorf("Couldn't delete sample board %q: %v", sb.name, err)
		}
	}
	return nil
}
