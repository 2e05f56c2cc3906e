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
	"fmt"
)

/*

Errors

*/

// An Error describes a problem with an instance or a requested
// operation.  It can produce an error message in English, but its
// main function is to support structured error handling by clients:
// it tells the client "this thing failed to meet this condition",
// and provides supplemental details about the thing and the
// condition.
//
// The two interesting families are structural problems found before
// any search begins (bad region counts, out-of-range constraints,
// broken label sequences) and the no-solution outcome of an
// exhausted search.  The latter is an expected result, and callers
// should test for it with IsNoSolution rather than treating it as
// an exceptional failure.
type Error struct {
	Scope     ErrorScope     `json:"scope"`
	Structure ErrorStructure `json:"structure,omitempty"`
	Condition ErrorCondition `json:"condition,omitempty"`
	Attribute ErrorAttribute `json:"attribute,omitempty"`
	Values    ErrorData      `json:"values,omitempty"`
	Message   string         `json:"message,omitempty"` // custom message
}

// An ErrorScope explains what type of thing the error is referring
// to.  In the case of client errors, this is either a
// client-supplied argument or some aspect of the resulting
// instance.  In the case of internal logic errors, this is where in
// the code the failure occurred.
type ErrorScope int

// Constants for the various error scopes.
const (
	UnknownScope ErrorScope = iota
	RequestScope
	ArgumentScope
	InstanceScope
	SearchScope
	InternalScope
	MaxScope
)

// The ErrorStructure denotes whether the problem is in the overall
// Scope, an Attribute of the Scope, or the value of an Attribute of
// the Scope.
type ErrorStructure int

// Constants for the various structure codes.
const (
	UnknownStructure ErrorStructure = iota
	ScopeStructure
	AttributeStructure
	AttributeValueStructure
	MaxStructure
)

// The ErrorCondition is the predicate that the
// scope/attribute/value failed to satisfy.  There are a bunch of
// known, named predicates and then a "general" (arbitrary English
// string) predicate for runtime errors.
type ErrorCondition int

// Constants for the various error conditions.
const (
	UnknownCondition ErrorCondition = iota
	GeneralCondition
	TooLargeCondition
	TooSmallCondition
	EmptyArgumentCondition
	UnknownKindCondition
	WrongSizeCondition
	RegionCountCondition
	UnassignedCellCondition
	OddSideLengthCondition
	BadSymbolCondition
	NotAdjacentCondition
	DuplicateConstraintCondition
	UnknownRelationCondition
	LabelSequenceCondition
	MissingStartCondition
	NoSolutionCondition
	WrongKindCondition
	MaxCondition
)

// An ErrorAttribute names the attribute that has a problem.
type ErrorAttribute int

// Constants for the various attribute codes.
const (
	UnknownAttribute ErrorAttribute = iota
	DecodeAttribute
	EncodeAttribute
	URLAttribute
	LocationAttribute
	KindAttribute
	SideLengthAttribute
	RegionAttribute
	CellAttribute
	ConstraintAttribute
	LabelAttribute
	WallAttribute
	IndexAttribute
	ValueAttribute
	MaxAttribute
)

// The ErrorData provides details about the thing that failed to
// meet the predicate (such as the value of an attribute) as well as
// the predicate itself (such as minimum required values).
//
// Every item in the slice of ErrorData is required to be
// JSON-serializable, so it can be returned to web clients.
type ErrorData []interface{}

// Return an error string from an Error.  If the Error has a
// pre-canned message, this will use it, otherwise it will produce
// an appropriate (English, non-localized) message.
func (e Error) Error() string {
	es := e.Message
	if len(es) > 0 {
		return es
	}
	values := e.Values
	nextVal := func() interface{} {
		if len(values) == 0 {
			return "<unknown>"
		}
		val := values[0]
		values = values[1:]
		return val
	}
	switch e.Scope {
	case RequestScope:
		es = "Invalid request: "
	case ArgumentScope:
		es = "Invalid argument: "
	case InstanceScope:
		es = "Invalid instance: "
	case SearchScope:
		es = "Search result: "
	case InternalScope:
		es = "Internal logic error: "
	default:
		es = "Unknown error: "
	}
	if e.Structure == AttributeStructure || e.Structure == AttributeValueStructure {
		switch e.Attribute {
		case DecodeAttribute:
			es += "JSON Decode error"
		case EncodeAttribute:
			es += "JSON Encode error"
		case URLAttribute:
			es += "Resource path"
		case LocationAttribute:
			es += fmt.Sprintf("In puzzle.%v", nextVal())
		case KindAttribute:
			es += "Kind"
		case SideLengthAttribute:
			es += "Side length"
		case RegionAttribute:
			es += "Region"
		case CellAttribute:
			es += "Cell"
		case ConstraintAttribute:
			es += "Constraint"
		case LabelAttribute:
			es += "Label"
		case WallAttribute:
			es += "Wall"
		case IndexAttribute:
			es += "Index"
		case ValueAttribute:
			es += "Value"
		default:
			es += "<Unknown attribute>"
		}
		if e.Structure == AttributeValueStructure {
			es += " (" + fmt.Sprint(nextVal()) + ")"
		}
		es += ": "
	}
	switch e.Condition {
	case GeneralCondition:
		es += fmt.Sprint(nextVal())
	case TooLargeCondition:
		es += fmt.Sprintf("Must be at most %v", nextVal())
	case TooSmallCondition:
		es += fmt.Sprintf("Must be at least %v", nextVal())
	case EmptyArgumentCondition:
		es += "Required value was missing"
	case UnknownKindCondition:
		es += "Not a known puzzle kind"
	case WrongSizeCondition:
		es += fmt.Sprintf("Doesn't match specified side length (%v)", nextVal())
	case RegionCountCondition:
		es += fmt.Sprintf("Region count must equal side length (%v)", nextVal())
	case UnassignedCellCondition:
		es += "Every cell must be assigned"
	case OddSideLengthCondition:
		es += "Side length must be even"
	case BadSymbolCondition:
		es += fmt.Sprintf("Must be empty, sun, or moon, not %v", nextVal())
	case NotAdjacentCondition:
		es += "Cells are not adjacent"
	case DuplicateConstraintCondition:
		es += "Edge already has a constraint"
	case UnknownRelationCondition:
		es += fmt.Sprintf("Must be %q or %q", EqualRelation, OppositeRelation)
	case LabelSequenceCondition:
		es += "Labels must be the consecutive integers 1..K, each used once"
	case MissingStartCondition:
		es += "No cell is labeled 1"
	case NoSolutionCondition:
		es += "No solution exists"
	case WrongKindCondition:
		es += fmt.Sprintf("Operation does not apply to %v puzzles", nextVal())
	default:
		es += fmt.Sprintf("Supplemental data is %v", values)
	}
	return es
}

// IsNoSolution reports whether an error is the no-solution outcome
// of an exhausted search (as opposed to a structural problem with
// the instance or the request).
func IsNoSolution(err error) bool {
	e, ok := err.(Error)
	return ok && e.Condition == NoSolutionCondition
}

// NoSolution constructs the no-solution outcome for a kind, for
// callers (like a solution cache) that need to reproduce the
// solvers' own result.
func NoSolution(kind string) error {
	return noSolutionError(kind)
}

// noSolutionError constructs the no-solution outcome for a kind.
func noSolutionError(kind string) Error {
	return Error{
		Scope:     SearchScope,
		Structure: ScopeStructure,
		Condition: NoSolutionCondition,
		Values:    ErrorData{kind},
	}
}

// rangeError returns an Error that describes an out-of-range
// argument.
func rangeError(attr ErrorAttribute, val int, min int, max int) Error {
	err := Error{
		Scope:     ArgumentScope,
		Structure: AttributeValueStructure,
		Attribute: attr,
		Condition: TooLargeCondition,
		Values:    ErrorData{val, max},
	}
	if val < min {
		err.Condition = TooSmallCondition
		err.Values[1] = min
	}
	return err
}

// instanceError returns an Error describing a structural problem
// found while constructing an instance.
func instanceError(attr ErrorAttribute, cond ErrorCondition, vals ...interface{}) Error {
	return Error{
		Scope:     InstanceScope,
		Structure: AttributeValueStructure,
		Attribute: attr,
		Condition: cond,
		Values:    ErrorData(vals),
	}
}
