// Copyright 2025 the LinkedInSolvers authors.  All rights reserved.

// Package puzzle provides models and solvers for three grid-based
// logic puzzles: Queens (one queen per row, column, and region, no
// two queens touching), Tango (a balanced sun/moon grid with equal
// and opposite constraints between neighboring cells), and Zip (a
// Hamiltonian path over the grid that visits numbered checkpoints
// in order without crossing barrier walls).
//
// In this package, boards are square grids of side length N whose
// cells are designated by flat indices that start at 0 and increase
// left-to-right, top-to-bottom (English reading order), so the cell
// at row r and column c has index r*N + c.
//
// Instances are immutable once constructed: a solver never modifies
// its instance, and solving the same instance twice produces the
// same Solution, because every solver searches in a fixed order.
// An instance that cannot be satisfied is a normal outcome, reported
// through an Error that IsNoSolution recognizes; callers should
// treat it as a result, not a failure of the program.
package puzzle

import (
	"fmt"
)

// Instance is the interface to constructed puzzle instances.  The
// concrete types behind it are Queens, Tango, and Zip; all of them
// are built through validating constructors, so an Instance in hand
// has already passed its structural checks.
type Instance interface {
	Kind() string
	Summary() *Summary
	Solve() (*Solution, error)
	String() string
}

// A Summary is the transportable description of an instance.  Only
// the fields relevant to the summary's Kind are populated; the rest
// stay empty so the JSON-encoded form remains small.  All cell
// references are flat row-major indices.
type Summary struct {
	Kind        string       `json:"kind"`
	SideLength  int          `json:"sidelen"`
	Regions     []int        `json:"regions,omitempty"`     // queens: region id per cell
	Cells       []int        `json:"cells,omitempty"`       // tango: 0 empty, 1 sun, 2 moon
	Constraints []Constraint `json:"constraints,omitempty"` // tango
	Labels      []int        `json:"labels,omitempty"`      // zip: 0 unlabeled, else 1..K
	Walls       []Wall       `json:"walls,omitempty"`       // zip
}

// A Constraint declares a relation between two adjacent cells in a
// Tango instance.  Constraints are canonicalized so that A < B; the
// relation is "=" (same symbol) or "x" (different symbols).
type Constraint struct {
	A        int    `json:"a"`
	B        int    `json:"b"`
	Relation string `json:"relation"`
}

// Relation strings for Tango constraints.
const (
	EqualRelation    = "="
	OppositeRelation = "x"
)

// A Wall blocks direct movement between two adjacent cells in a Zip
// instance.  Walls are canonicalized so that A < B.
type Wall struct {
	A int `json:"a"`
	B int `json:"b"`
}

// A Solution is the output of a successful solve.  Like Summary, it
// populates only the fields of its Kind: Columns maps each row to
// the column of its queen, Cells holds a full sun/moon assignment,
// and Path lists every cell in visit order.
type Solution struct {
	Kind    string `json:"kind"`
	Columns []int  `json:"columns,omitempty"`
	Cells   []int  `json:"cells,omitempty"`
	Path    []int  `json:"path,omitempty"`
}

// Tango cell symbols.  The zero value is an empty cell so that a
// freshly allocated grid is all-empty.
const (
	Empty = 0
	Sun   = 1
	Moon  = 2
)

// maxSideLength bounds board sizes for all kinds.  Solves are
// expected to finish in milliseconds on boards of ten or so cells
// per side; this leaves headroom without letting a pathological
// request run forever.
const maxSideLength = 25

/*

Puzzle kinds

*/

// A KindDescriptor is used to register a puzzle kind: it gives the
// kind some names and a code (all of which must be unique among
// those registered) and provides a constructor for instances of
// that kind from a Summary.  The order of the names doesn't matter.
// The code allows for more compact instance storage, and is not
// expected to be used by humans.
type KindDescriptor struct {
	Names []string
	Code  byte
	New   func(*Summary) (Instance, error)
}

// The registry of known kinds.  We use a linear list because we're
// not expecting a lot of kinds, so a linear lookup seems fine.
// Registration is expected to be done at initialization time.
var knownKinds []*KindDescriptor

// Kind name constants for the built-in puzzles.
const (
	QueensKindName = "queens"
	TangoKindName  = "tango"
	ZipKindName    = "zip"
)

// LookupKindByName is how people look up kinds.  There's a boolean
// return value to tell you if we found a descriptor for the name,
// similar to a map lookup.
func LookupKindByName(name string) (*KindDescriptor, bool) {
	for _, kd := range knownKinds {
		for _, n := range kd.Names {
			if n == name {
				return kd, true
			}
		}
	}
	return nil, false
}

// LookupKindByCode is how the programs look up kinds.  There's a
// boolean return value to tell you if we found a descriptor for the
// code, similar to a map lookup.
func LookupKindByCode(code int) (*KindDescriptor, bool) {
	for _, kd := range knownKinds {
		if int(kd.Code) == code {
			return kd, true
		}
	}
	return nil, false
}

// RegisterKind is how you tell the module about new puzzle kinds.
// The built-in kinds register themselves during initialization.
func RegisterKind(kd *KindDescriptor) error {
	if kd == nil {
		return fmt.Errorf("can't register a nil kind")
	}
	if len(kd.Names) == 0 || len(kd.Names[0]) == 0 {
		return fmt.Errorf("can't register a kind with no name")
	}
	if rd, ok := LookupKindByCode(int(kd.Code)); ok {
		return fmt.Errorf("kind %q is already using code %d", rd.Names[0], kd.Code)
	}
	for _, kn := range kd.Names {
		if rd, ok := LookupKindByName(kn); ok {
			return fmt.Errorf("kind %q is already using name %q", rd.Names[0], kn)
		}
	}
	knownKinds = append(knownKinds, kd)
	return nil
}

func init() {
	for _, kd := range []*KindDescriptor{
		{Names: []string{QueensKindName}, Code: 1, New: newQueensInstance},
		{Names: []string{TangoKindName}, Code: 2, New: newTangoInstance},
		{Names: []string{ZipKindName}, Code: 3, New: newZipInstance},
	} {
		if err := RegisterKind(kd); err != nil {
			panic(err)
		}
	}
}

// New either returns an Instance built from the given Summary or an
// error (if the summary's kind is unknown or its contents don't
// satisfy the kind's structural invariants).
//
// When an error is returned from this function, it will always
// contain an Error value, even if the New implementation of the
// particular kind is misbehaved and doesn't.
func New(summary *Summary) (Instance, error) {
	if summary == nil {
		return nil, Error{
			Scope:     ArgumentScope,
			Structure: ScopeStructure,
			Condition: EmptyArgumentCondition,
		}
	}
	kd, ok := LookupKindByName(summary.Kind)
	if !ok {
		return nil, Error{
			Scope:     ArgumentScope,
			Structure: AttributeValueStructure,
			Attribute: KindAttribute,
			Condition: UnknownKindCondition,
			Values:    ErrorData{summary.Kind},
		}
	}
	inst, e := kd.New(summary)
	if e != nil {
		if err, ok := e.(Error); !ok {
			err = Error{
				Scope:     InstanceScope,
				Structure: ScopeStructure,
				Condition: GeneralCondition,
				Values:    ErrorData{e.Error()},
			}
			e = err
		}
		return nil, e
	}
	return inst, nil
}

/*

Summary helpers

*/

// Clone returns a deep copy of a summary, so edits to the copy
// don't affect the original.
func (s *Summary) Clone() *Summary {
	if s == nil {
		return nil
	}
	c := &Summary{Kind: s.Kind, SideLength: s.SideLength}
	c.Regions = append([]int(nil), s.Regions...)
	c.Cells = append([]int(nil), s.Cells...)
	c.Constraints = append([]Constraint(nil), s.Constraints...)
	c.Labels = append([]int(nil), s.Labels...)
	c.Walls = append([]Wall(nil), s.Walls...)
	return c
}

// adjacent reports whether two flat indices name 4-adjacent cells
// on a board with the given side length.
func adjacent(sidelen, a, b int) bool {
	if a > b {
		a, b = b, a
	}
	if a < 0 || b >= sidelen*sidelen {
		return false
	}
	switch b - a {
	case 1:
		return b%sidelen != 0 // same row
	case sidelen:
		return true // same column
	}
	return false
}
