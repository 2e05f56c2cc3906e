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

package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/jackc/pgx/v5"

	"github.com/aidenzhou8/LinkedInSolvers/puzzle"
)

/*

the board catalog

*/

// A BoardEntry represents the stored form of a named board.  It is
// JSON serializable so it can go into the cache as well as the
// database.
type BoardEntry struct {
	Name    string // unique, user-facing name for this board
	Kind    string
	Summary *puzzle.Summary
}

// LoadBoardEntry first checks the cache, then the database, to find
// the named board.  If it loads from the database, it caches the
// result.  Returns nil if there is no such stored board.
func LoadBoardEntry(name string) *BoardEntry {
	be := &BoardEntry{Name: name}
	if be.cacheLoad() {
		return be
	}
	// cache miss, load from database and save to cache
	if !be.databaseLoad() {
		return nil
	}
	be.cacheInsert()
	return be
}

// ListBoardNames returns the names and kinds of every stored board,
// ordered by name.  This always goes to the database; the list is
// small and changes rarely.
func ListBoardNames() (names, kinds []string) {
	body := func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx(), "SELECT name, kind FROM boards ORDER BY name")
		if err != nil {
			return fmt.Errorf("Failure listing boards: %v", err)
		}
		defer rows.Close()
		for rows.Next() {
			var name, kind string
			if err := rows.Scan(&name, &kind); err != nil {
				return fmt.Errorf("Failure scanning board row: %v", err)
			}
			names = append(names, name)
			kinds = append(kinds, kind)
		}
		return rows.Err()
	}
	pgExecute(body)
	return
}

// SaveBoardEntry stores a board in the database and the cache,
// replacing any prior board with the same name.
func (be *BoardEntry) SaveBoardEntry() {
	bytes, e := json.Marshal(be.Summary)
	if e != nil {
		panic(fmt.Errorf("Failed to marshal board %q: %v", be.Name, e))
	}
	body := func(tx pgx.Tx) (err error) {
		_, err = tx.Exec(ctx(),
			"INSERT INTO boards (name, kind, summary, created) "+
				"VALUES ($1, $2, $3, $4) "+
				"ON CONFLICT (name) DO UPDATE SET kind = $2, summary = $3",
			be.Name, be.Kind, string(bytes), time.Now())
		if err != nil {
			err = fmt.Errorf("Database error saving board %q: %v", be.Name, err)
		}
		return
	}
	pgExecute(body)
	be.cacheInsert()
}

// key: compute the cache key for a board entry.
func (be *BoardEntry) key() string {
	return rdEnv + ":Board:" + be.Name
}

// cacheLoad: load an already cached board entry.  Returns whether
// the entry was found in the cache.
func (be *BoardEntry) cacheLoad() bool {
	var bytes []byte
	body := func(tx redis.Conn) (err error) {
		bytes, err = redis.Bytes(tx.Do("GET", be.key()))
		if err == redis.ErrNil {
			return nil
		}
		if err != nil {
			err = fmt.Errorf("Cache failure loading board %q: %v", be.Name, err)
		}
		return
	}
	rdExecute(body)
	if len(bytes) == 0 {
		return false
	}
	var sbe *BoardEntry
	err := json.Unmarshal(bytes, &sbe)
	if err != nil {
		panic(fmt.Errorf("Failed to unmarshal board %q: %v", be.Name, err))
	}
	if sbe.Name != be.Name {
		panic(fmt.Errorf("Cached board (name: %q) found for board %q!", sbe.Name, be.Name))
	}
	*be = *sbe
	return true
}

// databaseLoad: load a board entry from the database.  Returns
// whether a board with the given name was found.
func (be *BoardEntry) databaseLoad() (found bool) {
	body := func(tx pgx.Tx) error {
		var summary string
		row := tx.QueryRow(ctx(),
			"SELECT kind, summary FROM boards WHERE name = $1", be.Name)
		if err := row.Scan(&be.Kind, &summary); err != nil {
			if err == pgx.ErrNoRows {
				return nil
			}
			return fmt.Errorf("Failure looking up board %q: %v", be.Name, err)
		}
		if err := json.Unmarshal([]byte(summary), &be.Summary); err != nil {
			return fmt.Errorf("Failure decoding stored board %q: %v", be.Name, err)
		}
		found = true
		return nil
	}
	pgExecute(body)
	return
}

// cacheInsert: insert a board entry into the cache.  Replaces any
// existing entry with the same name.
func (be *BoardEntry) cacheInsert() {
	bytes, e := json.Marshal(be)
	if e != nil {
		panic(fmt.Errorf("Failed to marshal board %q: %v", be.Name, e))
	}
	body := func(tx redis.Conn) (err error) {
		_, err = tx.Do("SET", be.key(), bytes)
		if err != nil {
			err = fmt.Errorf("Cache failure saving board %q: %v", be.Name, err)
		}
		return
	}
	rdExecute(body)
}

/*

the solution cache

*/

// Signature computes the stable cache key of a board: the hash of
// its canonical summary JSON.  Two structurally identical boards
// share a signature, so they share a cached answer.
func Signature(summary *puzzle.Summary) string {
	bytes, err := json.Marshal(summary)
	if err != nil {
		panic(fmt.Errorf("Failed to marshal summary for signature: %v", err))
	}
	sum := sha256.Sum256(bytes)
	return hex.EncodeToString(sum[:])
}

// A cachedSolve is the stored outcome of a solve: either the
// solution, or the fact that there isn't one.
type cachedSolve struct {
	Solved   bool
	Solution *puzzle.Solution
}

// SolveThroughCache answers a solve from the cache when the same
// board has been solved before, and runs (then caches) the solver
// otherwise.  A no-solution outcome is cached too; the structural
// errors New can produce are not, since they're cheap to rediscover.
func SolveThroughCache(summary *puzzle.Summary) (*puzzle.Solution, error) {
	key := rdEnv + ":Solution:" + Signature(summary)

	var bytes []byte
	body := func(tx redis.Conn) (err error) {
		bytes, err = redis.Bytes(tx.Do("GET", key))
		if err == redis.ErrNil {
			return nil
		}
		if err != nil {
			err = fmt.Errorf("Cache failure loading solution %q: %v", key, err)
		}
		return
	}
	rdExecute(body)
	if len(bytes) > 0 {
		var cs cachedSolve
		if err := json.Unmarshal(bytes, &cs); err != nil {
			panic(fmt.Errorf("Failed to unmarshal cached solution %q: %v", key, err))
		}
		if !cs.Solved {
			return nil, puzzle.NoSolution(summary.Kind)
		}
		return cs.Solution, nil
	}

	inst, err := puzzle.New(summary)
	if err != nil {
		return nil, err
	}
	sol, err := inst.Solve()
	if err != nil && !puzzle.IsNoSolution(err) {
		return nil, err
	}
	cs := cachedSolve{Solved: err == nil, Solution: sol}
	cbytes, e := json.Marshal(cs)
	if e != nil {
		panic(fmt.Errorf("Failed to marshal solution for %q: %v", key, e))
	}
	store := func(tx redis.Conn) (serr error) {
		_, serr = tx.Do("SET", key, cbytes)
		if serr != nil {
			serr = fmt.Errorf("Cache failure saving solution %q: %v", key, serr)
		}
		return
	}
	rdExecute(store)
	return sol, err
}
