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
	"encoding/json"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/aidenzhou8/LinkedInSolvers/puzzle"
)

// A Session tracks the user's current step in the editing of his
// current board.  Behind the scenes, we persist all the prior steps
// the user has taken in this session, so he can go back (undo)
// prior edits even after a disconnect.
type Session struct {
	// these elements are persisted as part of the session
	SID     string // session ID
	Kind    string // kind of board being edited
	Step    int    // current step
	Created string // RFC3339 time when the session was created
	Saved   string // RFC3339 time when the session was last saved

	// the builder is persisted in the steps, serialized as summary JSON
	Builder *puzzle.Builder `redis:"-"` // edit state at the current step
}

/*

session manipulation

*/

// StartBoard: begin editing a fresh board of the given kind,
// clearing any existing editing steps.  If the given kind is empty,
// try the session's current kind; if that's unknown too, fall back
// to queens.
func (session *Session) StartBoard(kind string, sidelen int) {
	// change to the given kind, making sure it's valid
	if kind == "" {
		kind = session.Kind
	}
	if _, ok := puzzle.LookupKindByName(kind); !ok {
		kind = puzzle.QueensKindName
	}
	b, e := puzzle.NewBuilder(kind, sidelen)
	if e != nil {
		log.Printf("Failed to create %q builder: %v", kind, e)
		panic(e)
	}
	session.Kind = kind
	session.Builder = b

	// update the cache
	session.Saved = time.Now().Format(time.RFC3339)
	session.Step = 1
	bytes := session.marshalStep()
	body := func(tx redis.Conn) (err error) {
		tx.Send("HMSET", redis.Args{}.Add(session.key()).AddFlat(session)...)
		tx.Send("DEL", session.stepsKey())
		_, err = tx.Do("RPUSH", session.stepsKey(), bytes)
		if err != nil {
			log.Printf("Redis error on save of session %q after reset: %v", session.SID, err)
		}
		return
	}
	rdExecute(body)
	log.Printf("Reset session %v to start editing a %q board.", session.SID, session.Kind)
}

// StartFromSummary: begin editing a copy of a stored board,
// clearing any existing editing steps.
func (session *Session) StartFromSummary(summary *puzzle.Summary) {
	b, e := puzzle.NewBuilderFromSummary(summary)
	if e != nil {
		log.Printf("Failed to resume builder for session %q: %v", session.SID, e)
		panic(e)
	}
	session.Kind = summary.Kind
	session.Builder = b

	// update the cache
	session.Saved = time.Now().Format(time.RFC3339)
	session.Step = 1
	bytes := session.marshalStep()
	body := func(tx redis.Conn) (err error) {
		tx.Send("HMSET", redis.Args{}.Add(session.key()).AddFlat(session)...)
		tx.Send("DEL", session.stepsKey())
		_, err = tx.Do("RPUSH", session.stepsKey(), bytes)
		if err != nil {
			log.Printf("Redis error on save of session %q after load: %v", session.SID, err)
		}
		return
	}
	rdExecute(body)
	log.Printf("Reset session %v to edit a loaded %q board.", session.SID, session.Kind)
}

// AddStep: add a new current step with the builder's current state.
// Call this after every applied edit, so the persisted step list
// mirrors the builder's undo history.
func (session *Session) AddStep() {
	// update the cache
	session.Saved = time.Now().Format(time.RFC3339)
	session.Step++
	bytes := session.marshalStep()
	body := func(tx redis.Conn) (err error) {
		tx.Send("HMSET", redis.Args{}.Add(session.key()).AddFlat(session)...)
		_, err = tx.Do("RPUSH", session.stepsKey(), bytes)
		if err != nil {
			log.Printf("Redis error on save of %s:%q step %d: %v",
				session.SID, session.Kind, session.Step, err)
		}
		return
	}
	rdExecute(body)
	log.Printf("Added session %v:%v step %d.", session.SID, session.Kind, session.Step)
}

// RemoveStep: remove the last step and restore the prior step's
// edit state.
func (session *Session) RemoveStep() {
	if session.Step <= 1 {
		// nothing to do
		return
	}

	// load the prior step from the cache
	var bytes []byte
	session.Saved = time.Now().Format(time.RFC3339)
	session.Step--
	session.Builder = nil // free the current step's builder
	body := func(tx redis.Conn) (err error) {
		tx.Send("HMSET", redis.Args{}.Add(session.key()).AddFlat(session)...)
		tx.Send("LTRIM", session.stepsKey(), 0, -2)
		bytes, err = redis.Bytes(tx.Do("LINDEX", session.stepsKey(), -1))
		if err != nil {
			log.Printf("Error on remove to %s:%q step %d: %v",
				session.SID, session.Kind, session.Step, err)
		}
		return
	}
	rdExecute(body)
	session.unmarshalStep(bytes)
	log.Printf("Reverted session %v:%v to step %d.", session.SID, session.Kind, session.Step)
}

// RemoveAllSteps: drop every edit and restore the session's first
// step.
func (session *Session) RemoveAllSteps() {
	if session.Step <= 1 {
		// nothing to do
		return
	}

	var bytes []byte
	session.Saved = time.Now().Format(time.RFC3339)
	session.Step = 1
	session.Builder = nil
	body := func(tx redis.Conn) (err error) {
		tx.Send("HMSET", redis.Args{}.Add(session.key()).AddFlat(session)...)
		tx.Send("LTRIM", session.stepsKey(), 0, 0)
		bytes, err = redis.Bytes(tx.Do("LINDEX", session.stepsKey(), 0))
		if err != nil {
			log.Printf("Error on reset of %s:%q: %v", session.SID, session.Kind, err)
		}
		return
	}
	rdExecute(body)
	session.unmarshalStep(bytes)
	log.Printf("Reset session %v:%v to step 1.", session.SID, session.Kind)
}

// Lookup: lookup a session for an ID
func (session *Session) Lookup() (found bool) {
	body := func(tx redis.Conn) error {
		vals, err := redis.Values(tx.Do("HGETALL", session.key()))
		if len(vals) > 0 {
			if err := redis.ScanStruct(vals, session); err != nil {
				log.Printf("Redis error on parse of saved session %q: %v", session.SID, err)
				return err
			}
			found = true
			return nil
		}
		if err != nil {
			log.Printf("Redis error on GET of session %q: %v", session.SID, err)
			return err
		}
		log.Printf("No redis saved state for session %q", session.SID)
		return nil
	}
	rdExecute(body)
	return
}

// LoadStep: load the current edit state from the saved step
func (session *Session) LoadStep() {
	var bytes []byte
	body := func(tx redis.Conn) (err error) {
		bytes, err = redis.Bytes(tx.Do("LINDEX", session.stepsKey(), -1))
		if err != nil {
			log.Printf("Error on load of %s:%q step %d: %v",
				session.SID, session.Kind, session.Step, err)
		}
		return
	}
	rdExecute(body)
	session.unmarshalStep(bytes)
}

/*

serialization of edit state into and out of the cache

*/

// marshalStep - get JSON for the current step
func (session *Session) marshalStep() []byte {
	summary := session.Builder.Summary()
	bytes, err := json.Marshal(summary)
	if err != nil {
		log.Printf("Failed to marshal summary of %s:%q step %d as JSON: %v",
			session.SID, session.Kind, session.Step, err)
		panic(err)
	}
	return bytes
}

// unmarshalStep - get the builder for the saved step
func (session *Session) unmarshalStep(bytes []byte) {
	var summary *puzzle.Summary
	err := json.Unmarshal(bytes, &summary)
	if err != nil {
		log.Printf("Failed to unmarshal saved JSON of %s:%q step %d: %v",
			session.SID, session.Kind, session.Step, err)
		panic(err)
	}
	session.Builder, err = puzzle.NewBuilderFromSummary(summary)
	if err != nil {
		log.Printf("Failed to rebuild edit state for %s:%q step %d: %v",
			session.SID, session.Kind, session.Step, err)
		panic(err)
	}
	session.Kind = summary.Kind
}

/*

session key generation

*/

// key - returns the session key
func (session *Session) key() string {
	return rdEnv + ":SID:" + session.SID
}

// stepsKey - returns the key for the session's step array
func (session *Session) stepsKey() string {
	return session.key() + ":Steps"
}
