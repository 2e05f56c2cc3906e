package puzzle

/*

Tango puzzle: fill an even-sided grid with suns and moons so that
every row and every column holds equally many of each, no three
consecutive cells in a row or column match, and every declared
constraint between adjacent cells holds ("=" means same symbol, "x"
means different symbols).  Some cells may be pre-filled; those are
fixed.

*/

// A Tango instance holds the side length, the pre-filled symbols,
// and the constraints.  Constraints are stored as two flat edge
// arrays (the relation on the edge to the right of each cell, and
// on the edge below it) so the solver's adjacency checks are simple
// array lookups.
type Tango struct {
	sidelen int
	half    int
	cells   []int // pre-fills, row-major: Empty, Sun, or Moon
	right   []int // relation on edge (i, i+1); 0 means none
	down    []int // relation on edge (i, i+sidelen); 0 means none
}

// internal relation codes for the edge arrays
const (
	noRelation = iota
	equalRelation
	oppositeRelation
)

// DefaultTangoSideLength is the size of the boards the original
// game uses.
const DefaultTangoSideLength = 6

// NewTango creates a Tango instance from a side length, a symbol
// for every cell (Empty for unfilled), and a set of constraints.
// The side length must be positive and even; constraints must name
// distinct adjacent cells, one relation per edge.  Pre-fills that
// already break a rule are not a structural error: they surface as
// a no-solution result when Solve runs its opening checks.
func NewTango(sidelen int, cells []int, constraints []Constraint) (*Tango, error) {
	if sidelen < 2 {
		return nil, rangeError(SideLengthAttribute, sidelen, 2, maxSideLength)
	}
	if sidelen > maxSideLength {
		return nil, rangeError(SideLengthAttribute, sidelen, 2, maxSideLength)
	}
	if sidelen%2 != 0 {
		return nil, instanceError(SideLengthAttribute, OddSideLengthCondition, sidelen)
	}
	if len(cells) != sidelen*sidelen {
		return nil, instanceError(CellAttribute, WrongSizeCondition, len(cells), sidelen)
	}
	t := &Tango{
		sidelen: sidelen,
		half:    sidelen / 2,
		cells:   make([]int, len(cells)),
		right:   make([]int, len(cells)),
		down:    make([]int, len(cells)),
	}
	for i, v := range cells {
		if v != Empty && v != Sun && v != Moon {
			return nil, instanceError(CellAttribute, BadSymbolCondition, i, v)
		}
		t.cells[i] = v
	}
	for _, c := range constraints {
		a, b := c.A, c.B
		if a > b {
			a, b = b, a
		}
		if !adjacent(sidelen, a, b) {
			return nil, instanceError(ConstraintAttribute, NotAdjacentCondition, c)
		}
		var rel int
		switch c.Relation {
		case EqualRelation:
			rel = equalRelation
		case OppositeRelation:
			rel = oppositeRelation
		default:
			return nil, instanceError(ConstraintAttribute, UnknownRelationCondition, c.Relation)
		}
		if b-a == 1 {
			if t.right[a] != noRelation {
				return nil, instanceError(ConstraintAttribute, DuplicateConstraintCondition, c)
			}
			t.right[a] = rel
		} else {
			if t.down[a] != noRelation {
				return nil, instanceError(ConstraintAttribute, DuplicateConstraintCondition, c)
			}
			t.down[a] = rel
		}
	}
	return t, nil
}

// newTangoInstance is the registered constructor for the tango
// kind.
func newTangoInstance(s *Summary) (Instance, error) {
	return NewTango(s.SideLength, s.Cells, s.Constraints)
}

// Kind returns the kind name of the instance.
func (t *Tango) Kind() string {
	return TangoKindName
}

// SideLength returns the side length of the board.
func (t *Tango) SideLength() int {
	return t.sidelen
}

// Summary returns a Summary describing the instance.  The returned
// value doesn't share storage with the instance.
func (t *Tango) Summary() *Summary {
	s := &Summary{
		Kind:       TangoKindName,
		SideLength: t.sidelen,
		Cells:      append([]int(nil), t.cells...),
	}
	relName := map[int]string{equalRelation: EqualRelation, oppositeRelation: OppositeRelation}
	for i := range t.cells {
		if r := t.right[i]; r != noRelation {
			s.Constraints = append(s.Constraints, Constraint{A: i, B: i + 1, Relation: relName[r]})
		}
		if r := t.down[i]; r != noRelation {
			s.Constraints = append(s.Constraints, Constraint{A: i, B: i + t.sidelen, Relation: relName[r]})
		}
	}
	return s
}

/*

solving

*/

// lineOK checks the balance and run-length rules on one row or
// column of a working grid.  The line is given by its first cell
// and the stride between consecutive cells (1 for a row, sidelen
// for a column).  Partially filled lines pass as long as neither
// symbol exceeds half the line and no three consecutive filled
// cells match.
func (t *Tango) lineOK(grid []int, first, stride int) bool {
	suns, moons := 0, 0
	for i := 0; i < t.sidelen; i++ {
		switch grid[first+i*stride] {
		case Sun:
			suns++
		case Moon:
			moons++
		}
	}
	if suns > t.half || moons > t.half {
		return false
	}
	for i := 0; i+2 < t.sidelen; i++ {
		a := grid[first+i*stride]
		if a == Empty {
			continue
		}
		if a == grid[first+(i+1)*stride] && a == grid[first+(i+2)*stride] {
			return false
		}
	}
	return true
}

// edgeOK checks one constrained edge; edges with an unassigned
// endpoint pass (they're rechecked when the endpoint is filled).
func edgeOK(rel, a, b int) bool {
	if rel == noRelation || a == Empty || b == Empty {
		return true
	}
	if rel == equalRelation {
		return a == b
	}
	return a != b
}

// constraintsOK checks the constrained edges incident to one cell.
func (t *Tango) constraintsOK(grid []int, idx int) bool {
	n := t.sidelen
	r, c := idx/n, idx%n
	if c+1 < n && !edgeOK(t.right[idx], grid[idx], grid[idx+1]) {
		return false
	}
	if c > 0 && !edgeOK(t.right[idx-1], grid[idx-1], grid[idx]) {
		return false
	}
	if r+1 < n && !edgeOK(t.down[idx], grid[idx], grid[idx+n]) {
		return false
	}
	if r > 0 && !edgeOK(t.down[idx-n], grid[idx-n], grid[idx]) {
		return false
	}
	return true
}

// admissible runs the pruning checks for a just-filled cell.
func (t *Tango) admissible(grid []int, idx int) bool {
	n := t.sidelen
	return t.lineOK(grid, (idx/n)*n, 1) &&
		t.lineOK(grid, idx%n, n) &&
		t.constraintsOK(grid, idx)
}

// startOK verifies that the pre-filled cells don't already break a
// rule, so an impossible instance fails before any search rather
// than after a pointless one.
func (t *Tango) startOK(grid []int) bool {
	n := t.sidelen
	for i := 0; i < n; i++ {
		if !t.lineOK(grid, i*n, 1) || !t.lineOK(grid, i, n) {
			return false
		}
	}
	for i := range grid {
		if !t.constraintsOK(grid, i) {
			return false
		}
	}
	return true
}

// A tangoFrame records one guessed cell and the symbol currently
// placed in it, so the search can resume with the other symbol on
// backtrack.
type tangoFrame struct {
	cell int
	sym  int
}

// Solve searches for a full assignment using depth-first
// backtracking over the free cells in row-major order, trying Sun
// before Moon.  Each placement is pruned immediately if it
// overfills a line, creates three in a row, or breaks a constraint
// whose endpoints are both assigned.  The search order is fixed, so
// the first solution found is the same on every call.
//
// Returns the full cell assignment, or a no-solution Error once the
// search space is exhausted (including the case where the pre-fills
// are contradictory from the start).
func (t *Tango) Solve() (*Solution, error) {
	grid := append([]int(nil), t.cells...)
	if !t.startOK(grid) {
		return nil, noSolutionError(TangoKindName)
	}
	var free []int
	for i, v := range grid {
		if v == Empty {
			free = append(free, i)
		}
	}

	frames := make([]tangoFrame, 0, len(free))
	try := Sun
	for len(frames) < len(free) {
		cell := free[len(frames)]
		placed := false
		for sym := try; sym <= Moon; sym++ {
			grid[cell] = sym
			if t.admissible(grid, cell) {
				frames = append(frames, tangoFrame{cell, sym})
				placed = true
				break
			}
			grid[cell] = Empty
		}
		if placed {
			try = Sun
			continue
		}
		// both symbols failed here; rewind to the previous guess
		// and advance it
		if len(frames) == 0 {
			return nil, noSolutionError(TangoKindName)
		}
		top := frames[len(frames)-1]
		frames = frames[:len(frames)-1]
		grid[top.cell] = Empty
		try = top.sym + 1
	}

	// the ≤ half pruning leaves exact balance to verify on full
	// lines, which matters when the instance arrived mostly filled
	if !t.balanced(grid) {
		return nil, noSolutionError(TangoKindName)
	}
	return &Solution{Kind: TangoKindName, Cells: grid}, nil
}

// balanced checks that every row and column of a full grid holds
// exactly half suns.
func (t *Tango) balanced(grid []int) bool {
	n := t.sidelen
	for i := 0; i < n; i++ {
		rsuns, csuns := 0, 0
		for j := 0; j < n; j++ {
			if grid[i*n+j] == Sun {
				rsuns++
			}
			if grid[j*n+i] == Sun {
				csuns++
			}
		}
		if rsuns != t.half || csuns != t.half {
			return false
		}
	}
	return true
}
