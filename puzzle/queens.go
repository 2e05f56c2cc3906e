package puzzle

/*

Queens puzzle: place one queen in every row of an N×N board so that
no two queens share a column or a region and no two queens touch,
even diagonally.  The board is partitioned into exactly N regions;
each region gets exactly one queen.

*/

// A Queens instance holds the side length and the region partition
// of the board.  Region ids in the summary can be any integers; the
// instance renumbers them densely so the solver can track used
// regions in a flat array.
type Queens struct {
	sidelen int
	regions []int // dense region index per cell, row-major
	rcount  int
}

// NewQueens creates a Queens instance from a side length and a
// region id for every cell.  The partition must cover every cell
// and contain exactly sidelen distinct regions; anything else is a
// structural error detected here, before any search.
func NewQueens(sidelen int, regions []int) (*Queens, error) {
	if sidelen < 0 {
		return nil, rangeError(SideLengthAttribute, sidelen, 0, maxSideLength)
	}
	if sidelen > maxSideLength {
		return nil, rangeError(SideLengthAttribute, sidelen, 0, maxSideLength)
	}
	if len(regions) != sidelen*sidelen {
		return nil, instanceError(RegionAttribute, WrongSizeCondition, len(regions), sidelen)
	}
	// renumber the region ids densely, in order of first appearance
	dense := make([]int, len(regions))
	seen := make(map[int]int)
	for i, id := range regions {
		di, ok := seen[id]
		if !ok {
			di = len(seen)
			seen[id] = di
		}
		dense[i] = di
	}
	if len(seen) != sidelen {
		return nil, instanceError(RegionAttribute, RegionCountCondition, len(seen), sidelen)
	}
	return &Queens{sidelen: sidelen, regions: dense, rcount: len(seen)}, nil
}

// newQueensInstance is the registered constructor for the queens
// kind.
func newQueensInstance(s *Summary) (Instance, error) {
	return NewQueens(s.SideLength, s.Regions)
}

// Kind returns the kind name of the instance.
func (q *Queens) Kind() string {
	return QueensKindName
}

// SideLength returns the side length of the board.
func (q *Queens) SideLength() int {
	return q.sidelen
}

// Summary returns a Summary describing the instance.  The returned
// value doesn't share storage with the instance.
func (q *Queens) Summary() *Summary {
	return &Summary{
		Kind:       QueensKindName,
		SideLength: q.sidelen,
		Regions:    append([]int(nil), q.regions...),
	}
}

// A queensFrame records one placed queen: the column chosen for its
// row.  The frame stack is the partial solution; the row of each
// frame is its position in the stack.
type queensFrame struct {
	col int
}

// Solve searches for a queen placement using depth-first
// backtracking over rows, trying columns in ascending order.  A
// candidate column is rejected if it repeats a used column, falls
// in a used region, or touches the previous row's queen (with one
// queen per row and all columns distinct, only the immediately
// preceding row can be within touching distance).  The search order
// is fixed, so the first solution found is the same on every call.
//
// Returns the row-to-column mapping, or a no-solution Error once
// the search space is exhausted.
func (q *Queens) Solve() (*Solution, error) {
	n := q.sidelen
	usedCol := make([]bool, n)
	usedRegion := make([]bool, q.rcount)
	frames := make([]queensFrame, 0, n)

	next := 0 // first candidate column for the current row
	for len(frames) < n {
		row, col := len(frames), next
		for ; col < n; col++ {
			if usedCol[col] {
				continue
			}
			if usedRegion[q.regions[row*n+col]] {
				continue
			}
			if row > 0 {
				if prev := frames[row-1].col; col >= prev-1 && col <= prev+1 {
					continue
				}
			}
			break
		}
		if col < n {
			// place a queen and descend to the next row
			usedCol[col] = true
			usedRegion[q.regions[row*n+col]] = true
			frames = append(frames, queensFrame{col})
			next = 0
			continue
		}
		// no column works for this row; rewind to the previous row
		// and advance its column
		if len(frames) == 0 {
			return nil, noSolutionError(QueensKindName)
		}
		top := frames[len(frames)-1]
		frames = frames[:len(frames)-1]
		usedCol[top.col] = false
		usedRegion[q.regions[len(frames)*n+top.col]] = false
		next = top.col + 1
	}

	cols := make([]int, n)
	for i := range frames {
		cols[i] = frames[i].col
	}
	return &Solution{Kind: QueensKindName, Columns: cols}, nil
}
