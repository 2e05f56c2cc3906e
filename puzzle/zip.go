package puzzle

/*

Zip puzzle: draw a single path through every cell of the grid,
moving only between 4-adjacent cells, never crossing a barrier
wall, and passing through the numbered checkpoints in increasing
order.  The path starts at the cell labeled 1.

*/

// A Zip instance holds the side length, the checkpoint labels, and
// the barrier walls.  Walls are stored as two flat edge arrays (a
// wall on the edge to the right of each cell, and on the edge below
// it) so the solver's neighbor checks are simple array lookups.
type Zip struct {
	sidelen  int
	labels   []int  // 0 for unlabeled cells, else 1..maxLabel
	right    []bool // wall on edge (i, i+1)
	down     []bool // wall on edge (i, i+sidelen)
	start    int    // index of the cell labeled 1
	maxLabel int
}

// NewZip creates a Zip instance from a side length, a label for
// every cell (0 for unlabeled), and a set of walls.  The positive
// labels must be exactly the integers 1..K, each used once, with
// K at least 1: the cell labeled 1 is the fixed, deterministic
// start of the path.  Walls must join adjacent in-range cells.
func NewZip(sidelen int, labels []int, walls []Wall) (*Zip, error) {
	if sidelen < 1 {
		return nil, rangeError(SideLengthAttribute, sidelen, 1, maxSideLength)
	}
	if sidelen > maxSideLength {
		return nil, rangeError(SideLengthAttribute, sidelen, 1, maxSideLength)
	}
	if len(labels) != sidelen*sidelen {
		return nil, instanceError(LabelAttribute, WrongSizeCondition, len(labels), sidelen)
	}
	z := &Zip{
		sidelen: sidelen,
		labels:  append([]int(nil), labels...),
		right:   make([]bool, len(labels)),
		down:    make([]bool, len(labels)),
		start:   -1,
	}
	seen := make(map[int]int)
	for i, v := range labels {
		if v == 0 {
			continue
		}
		if v < 0 {
			return nil, instanceError(LabelAttribute, LabelSequenceCondition, i, v)
		}
		if prev, dup := seen[v]; dup {
			return nil, instanceError(LabelAttribute, LabelSequenceCondition, prev, i)
		}
		seen[v] = i
		if v > z.maxLabel {
			z.maxLabel = v
		}
		if v == 1 {
			z.start = i
		}
	}
	if z.start < 0 {
		return nil, instanceError(LabelAttribute, MissingStartCondition)
	}
	// contiguity: K distinct labels with max K means 1..K exactly
	if len(seen) != z.maxLabel {
		return nil, instanceError(LabelAttribute, LabelSequenceCondition, len(seen), z.maxLabel)
	}
	for _, w := range walls {
		a, b := w.A, w.B
		if a > b {
			a, b = b, a
		}
		if !adjacent(sidelen, a, b) {
			return nil, instanceError(WallAttribute, NotAdjacentCondition, w)
		}
		if b-a == 1 {
			z.right[a] = true
		} else {
			z.down[a] = true
		}
	}
	return z, nil
}

// newZipInstance is the registered constructor for the zip kind.
func newZipInstance(s *Summary) (Instance, error) {
	return NewZip(s.SideLength, s.Labels, s.Walls)
}

// Kind returns the kind name of the instance.
func (z *Zip) Kind() string {
	return ZipKindName
}

// SideLength returns the side length of the board.
func (z *Zip) SideLength() int {
	return z.sidelen
}

// Summary returns a Summary describing the instance.  The returned
// value doesn't share storage with the instance.
func (z *Zip) Summary() *Summary {
	s := &Summary{
		Kind:       ZipKindName,
		SideLength: z.sidelen,
		Labels:     append([]int(nil), z.labels...),
	}
	for i := range z.labels {
		if z.right[i] {
			s.Walls = append(s.Walls, Wall{A: i, B: i + 1})
		}
		if z.down[i] {
			s.Walls = append(s.Walls, Wall{A: i, B: i + z.sidelen})
		}
	}
	return s
}

/*

solving

*/

// neighbor directions, tried in this fixed order: up, down, left,
// right.
var zipDirs = [4]struct{ dr, dc int }{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// step returns the neighbor of a cell in the given direction, or
// ok=false when the move leaves the board or crosses a wall.
func (z *Zip) step(idx, dir int) (int, bool) {
	n := z.sidelen
	r, c := idx/n, idx%n
	nr, nc := r+zipDirs[dir].dr, c+zipDirs[dir].dc
	if nr < 0 || nr >= n || nc < 0 || nc >= n {
		return 0, false
	}
	switch dir {
	case 0: // up crosses the edge below the destination
		if z.down[nr*n+nc] {
			return 0, false
		}
	case 1: // down crosses the edge below the source
		if z.down[idx] {
			return 0, false
		}
	case 2: // left crosses the edge right of the destination
		if z.right[nr*n+nc] {
			return 0, false
		}
	case 3: // right crosses the edge right of the source
		if z.right[idx] {
			return 0, false
		}
	}
	return nr*n + nc, true
}

// A zipFrame records one cell on the path: the cell itself, the
// next direction to try out of it, and the label expected next once
// this cell's own label (if any) has been consumed.
type zipFrame struct {
	cell     int
	next     int
	expected int
}

// Solve searches for a covering path using depth-first backtracking
// from the cell labeled 1.  A labeled cell can only be entered when
// its label is the next one expected, so checkpoints are consumed
// strictly in order at the moment the path reaches them.  Barriers
// are honored by the neighbor stepping; coverage failures (for
// example, a region walled off from the rest of the board) are
// discovered by exhausting the search, not short-circuited.  The
// direction order is fixed, so the first path found is the same on
// every call.
//
// Returns the path as the flat indices of every cell in visit
// order, or a no-solution Error once the search space is exhausted.
func (z *Zip) Solve() (*Solution, error) {
	total := z.sidelen * z.sidelen
	visited := make([]bool, total)
	visited[z.start] = true
	frames := make([]zipFrame, 1, total)
	frames[0] = zipFrame{cell: z.start, expected: 2}

	for {
		if len(frames) == total {
			top := frames[len(frames)-1]
			if top.expected-1 == z.maxLabel {
				path := make([]int, total)
				for i := range frames {
					path[i] = frames[i].cell
				}
				return &Solution{Kind: ZipKindName, Path: path}, nil
			}
			// full coverage that somehow skipped a label can't be
			// extended, so fall through to backtrack
		}
		top := &frames[len(frames)-1]
		advanced := false
		for top.next < len(zipDirs) {
			dir := top.next
			top.next++
			nb, ok := z.step(top.cell, dir)
			if !ok || visited[nb] {
				continue
			}
			expected := top.expected
			if lbl := z.labels[nb]; lbl != 0 {
				if lbl != expected {
					continue
				}
				expected++
			}
			visited[nb] = true
			frames = append(frames, zipFrame{cell: nb, expected: expected})
			advanced = true
			break
		}
		if advanced {
			continue
		}
		// every direction out of this cell is spent; give it back
		visited[top.cell] = false
		frames = frames[:len(frames)-1]
		if len(frames) == 0 {
			return nil, noSolutionError(ZipKindName)
		}
	}
}
