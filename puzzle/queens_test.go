package puzzle

import (
	"reflect"
	"testing"
)

/*

Test Values

*/

var (
	// a 4x4 partition whose first discovered placement is one queen
	// per region
	queensSimpleRegions = []int{
		1, 1, 2, 2,
		1, 2, 2, 2,
		3, 3, 4, 2,
		3, 4, 4, 4,
	}
	queensSimpleColumns = []int{1, 3, 0, 2}

	// column stripes: region constraints add nothing beyond the
	// column constraint
	queensStripeRegions = []int{
		1, 2, 3, 4,
		1, 2, 3, 4,
		1, 2, 3, 4,
		1, 2, 3, 4,
	}

	// on a 2x2 board every two-queen placement touches
	queensTinyRegions = []int{
		1, 1,
		2, 2,
	}

	// only three distinct regions on a side-4 board
	queensShortRegions = []int{
		1, 1, 2, 2,
		1, 1, 2, 2,
		3, 3, 2, 2,
		3, 3, 2, 2,
	}
)

func TestQueensSimple(t *testing.T) {
	q, e := NewQueens(4, queensSimpleRegions)
	if e != nil {
		t.Fatalf("Failed to create instance: %v", e)
	}
	sol, e := q.Solve()
	if e != nil {
		t.Fatalf("Failed to solve: %v", e)
	}
	if !reflect.DeepEqual(sol.Columns, queensSimpleColumns) {
		t.Errorf("Wrong columns: got %v, expected %v", sol.Columns, queensSimpleColumns)
	}
	if sol.Kind != QueensKindName {
		t.Errorf("Wrong solution kind: %q", sol.Kind)
	}
}

func TestQueensStripes(t *testing.T) {
	q, e := NewQueens(4, queensStripeRegions)
	if e != nil {
		t.Fatalf("Failed to create instance: %v", e)
	}
	sol, e := q.Solve()
	if e != nil {
		t.Fatalf("Failed to solve: %v", e)
	}
	// with regions echoing columns, the answer is the first
	// non-touching column permutation
	if !reflect.DeepEqual(sol.Columns, queensSimpleColumns) {
		t.Errorf("Wrong columns: got %v, expected %v", sol.Columns, queensSimpleColumns)
	}
}

func TestQueensPlacementRules(t *testing.T) {
	q, e := NewQueens(4, queensSimpleRegions)
	if e != nil {
		t.Fatalf("Failed to create instance: %v", e)
	}
	sol, e := q.Solve()
	if e != nil {
		t.Fatalf("Failed to solve: %v", e)
	}
	usedCol := make(map[int]bool)
	usedRegion := make(map[int]bool)
	for row, col := range sol.Columns {
		if col < 0 || col >= 4 {
			t.Fatalf("Row %d: column %d out of range", row, col)
		}
		if usedCol[col] {
			t.Errorf("Row %d: column %d reused", row, col)
		}
		usedCol[col] = true
		region := queensSimpleRegions[row*4+col]
		if usedRegion[region] {
			t.Errorf("Row %d: region %d reused", row, region)
		}
		usedRegion[region] = true
		if row > 0 {
			if prev := sol.Columns[row-1]; col >= prev-1 && col <= prev+1 {
				t.Errorf("Rows %d and %d: queens touch (%d, %d)", row-1, row, prev, col)
			}
		}
	}
}

func TestQueensNoSolution(t *testing.T) {
	q, e := NewQueens(2, queensTinyRegions)
	if e != nil {
		t.Fatalf("Failed to create instance: %v", e)
	}
	sol, e := q.Solve()
	if e == nil {
		t.Fatalf("Solved an unsolvable board: %v", sol.Columns)
	}
	if !IsNoSolution(e) {
		t.Errorf("Wrong error for unsolvable board: %v", e)
	}
}

func TestQueensRegionCount(t *testing.T) {
	_, e := NewQueens(4, queensShortRegions)
	if e == nil {
		t.Fatalf("Accepted a partition with too few regions")
	}
	err, ok := e.(Error)
	if !ok {
		t.Fatalf("Non-Error error: %v", e)
	}
	if err.Condition != RegionCountCondition {
		t.Errorf("Wrong condition: %v", err)
	}
}

func TestQueensBadShape(t *testing.T) {
	if _, e := NewQueens(4, queensTinyRegions); e == nil {
		t.Errorf("Accepted a partition of the wrong size")
	}
	if _, e := NewQueens(-1, nil); e == nil {
		t.Errorf("Accepted a negative side length")
	}
	if _, e := NewQueens(maxSideLength+1, nil); e == nil {
		t.Errorf("Accepted an oversized side length")
	}
}

func TestQueensEmpty(t *testing.T) {
	q, e := NewQueens(0, []int{})
	if e != nil {
		t.Fatalf("Failed to create empty instance: %v", e)
	}
	sol, e := q.Solve()
	if e != nil {
		t.Fatalf("Failed to solve empty instance: %v", e)
	}
	if len(sol.Columns) != 0 {
		t.Errorf("Non-empty columns for empty board: %v", sol.Columns)
	}
}

func TestQueensDeterministic(t *testing.T) {
	q, e := NewQueens(4, queensSimpleRegions)
	if e != nil {
		t.Fatalf("Failed to create instance: %v", e)
	}
	first, e := q.Solve()
	if e != nil {
		t.Fatalf("Failed first solve: %v", e)
	}
	second, e := q.Solve()
	if e != nil {
		t.Fatalf("Failed second solve: %v", e)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Solves disagree: %v vs %v", first, second)
	}
}

func TestQueensSummaryRoundTrip(t *testing.T) {
	q, e := NewQueens(4, queensSimpleRegions)
	if e != nil {
		t.Fatalf("Failed to create instance: %v", e)
	}
	inst, e := New(q.Summary())
	if e != nil {
		t.Fatalf("Failed to rebuild from summary: %v", e)
	}
	sol, e := inst.Solve()
	if e != nil {
		t.Fatalf("Failed to solve rebuilt instance: %v", e)
	}
	if !reflect.DeepEqual(sol.Columns, queensSimpleColumns) {
		t.Errorf("Rebuilt instance solved differently: %v", sol.Columns)
	}
}
