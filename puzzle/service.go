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

package puzzle

import (
	"encoding/json"
	"fmt"
	"net/http"
)

/*

Instance creation

*/

// NewHandler is a POST handler that reads a JSON-encoded Summary
// from the request body and calls New on it.  The validated
// instance's summary is sent as a 200 response and the instance
// itself is returned to the golang caller.  A structural problem in
// the posted summary is sent as a 400 response carrying the Error,
// which is also returned to the caller.
//
// If we can't decode the posted Summary, we send a 400 response and
// return the error to the caller.
func NewHandler(w http.ResponseWriter, r *http.Request) (Instance, error) {
	dec := json.NewDecoder(r.Body)
	var summary Summary
	e := dec.Decode(&summary)
	if e != nil {
		return nil, writeError(requestDecodingError, ErrorData{e.Error()}, w, r)
	}
	inst, e := New(&summary)
	if e != nil {
		err, ok := e.(Error)
		if !ok {
			return nil, writeError(errorFormatError, ErrorData{"NewHandler", e.Error()}, w, r)
		}
		err.Message = err.Error()
		return nil, writeJSON(err, http.StatusBadRequest, w, r)
	}
	return inst, writeJSON(inst.Summary(), http.StatusOK, w, r)
}

/*

Instance downloads

*/

// SummaryHandler responds with the instance's summary.  If we can't
// encode the response to the client successfully, we give both the
// client and the golang caller an Error response.
func SummaryHandler(inst Instance, w http.ResponseWriter, r *http.Request) error {
	if inst == nil {
		return writeError(noInstanceError, ErrorData{r.URL.Path, "No puzzle"}, w, r)
	}
	return writeJSON(inst.Summary(), http.StatusOK, w, r)
}

/*

Solving

*/

// A SolveResponse reports the outcome of a solve.  An unsolvable
// instance is a normal outcome, so it travels in a 200 response with
// Solved false rather than as an error status.
type SolveResponse struct {
	Solved   bool      `json:"solved"`
	Solution *Solution `json:"solution,omitempty"`
}

// SolveHandler runs the instance's solver and responds with a
// SolveResponse.  Only a non-search failure (which the solvers don't
// produce today) or an encoding problem is an error response.
func SolveHandler(inst Instance, w http.ResponseWriter, r *http.Request) error {
	if inst == nil {
		return writeError(noInstanceError, ErrorData{r.URL.Path, "No puzzle"}, w, r)
	}
	sol, e := inst.Solve()
	if e != nil {
		if IsNoSolution(e) {
			return writeJSON(SolveResponse{Solved: false}, http.StatusOK, w, r)
		}
		err, ok := e.(Error)
		if !ok {
			return writeError(errorFormatError, ErrorData{"SolveHandler", e.Error()}, w, r)
		}
		err.Message = err.Error()
		return writeJSON(err, http.StatusBadRequest, w, r)
	}
	return writeJSON(SolveResponse{Solved: true, Solution: sol}, http.StatusOK, w, r)
}

// SolveSummaryHandler is the one-shot POST handler: it reads a
// JSON-encoded Summary, validates it, solves it, and responds with
// the SolveResponse.  Structural problems with the summary come back
// as a 400 carrying the Error.
func SolveSummaryHandler(w http.ResponseWriter, r *http.Request) error {
	dec := json.NewDecoder(r.Body)
	var summary Summary
	e := dec.Decode(&summary)
	if e != nil {
		return writeError(requestDecodingError, ErrorData{e.Error()}, w, r)
	}
	inst, e := New(&summary)
	if e != nil {
		err, ok := e.(Error)
		if !ok {
			return writeError(errorFormatError, ErrorData{"SolveSummaryHandler", e.Error()}, w, r)
		}
		err.Message = err.Error()
		return writeJSON(err, http.StatusBadRequest, w, r)
	}
	return SolveHandler(inst, w, r)
}

/*

Utilities

*/

type handlerError int

const (
	requestDecodingError handlerError = iota
	responseEncodingError
	noInstanceError
	errorFormatError
)

// writeError sends back a server error of the given type, sort of
// like http.Error, but it sends the JSON form of an appropriate
// Error.
func writeError(et handlerError, ed ErrorData,
	w http.ResponseWriter, r *http.Request) error {
	var err Error
	var status int
	switch et {
	case requestDecodingError:
		status = http.StatusBadRequest
		err = Error{
			Scope:     RequestScope,
			Structure: AttributeStructure,
			Attribute: DecodeAttribute,
			Condition: GeneralCondition,
			Values:    ed,
		}
	case responseEncodingError:
		status = http.StatusInternalServerError
		err = Error{
			Scope:     InternalScope,
			Structure: AttributeStructure,
			Attribute: EncodeAttribute,
			Condition: GeneralCondition,
			Values:    ed,
		}
	case noInstanceError:
		status = http.StatusNotFound
		err = Error{
			Scope:     RequestScope,
			Structure: AttributeValueStructure,
			Attribute: URLAttribute,
			Condition: GeneralCondition,
			Values:    ed,
		}
	default:
		status = http.StatusInternalServerError
		err = Error{
			Scope:     InternalScope,
			Structure: AttributeStructure,
			Attribute: LocationAttribute,
			Condition: GeneralCondition,
			Values:    ed,
		}
	}
	err.Message = err.Error()
	return writeJSON(err, status, w, r)
}

// writeJSON is called by handlers to encode and send the client
// response.  It returns an appropriate error status for the handler
// to return to its caller:
//
// 1. If writeJSON encounters an encoding error sending the response,
// it creates an Error describing the failure, encodes that Error as
// a 500-series response to the client, and returns it.
//
// 2. If no encoding error occurs but the handler is sending an Error
// object to the client, writeJSON returns that same Error.
//
// 3. Otherwise writeJSON returns nil.
func writeJSON(obj interface{}, status int, w http.ResponseWriter, r *http.Request) error {
	err, isErr := obj.(Error)
	bytes, e := json.Marshal(obj)
	if e != nil {
		if isErr && err.Scope == InternalScope && err.Attribute == EncodeAttribute {
			// We just failed to encode an encoding error.  This
			// should never happen; if it did, the JSON encoder is
			// probably dead, so pseudo-encode the error by hand as a
			// quoted string.
			status = http.StatusInternalServerError
			bytes = []byte(fmt.Sprintf("%q", err.Error()))
		} else {
			return writeError(responseEncodingError, ErrorData{e.Error()}, w, r)
		}
	}
	hs := w.Header()
	hs.Add("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bytes)
	if isErr {
		return err
	}
	return nil
}
