package puzzle

import (
	"reflect"
	"testing"
)

func TestBuilderQueens(t *testing.T) {
	b, e := NewBuilder(QueensKindName, 4)
	if e != nil {
		t.Fatalf("Failed to create builder: %v", e)
	}
	for i, region := range queensSimpleRegions {
		if e := b.PaintRegion(i, region); e != nil {
			t.Fatalf("Failed to paint cell %d: %v", i, e)
		}
	}
	inst, e := b.Instance()
	if e != nil {
		t.Fatalf("Failed to finish the build: %v", e)
	}
	sol, e := inst.Solve()
	if e != nil {
		t.Fatalf("Failed to solve built instance: %v", e)
	}
	if !reflect.DeepEqual(sol.Columns, queensSimpleColumns) {
		t.Errorf("Built instance solved differently: %v", sol.Columns)
	}
}

func TestBuilderIncompleteQueens(t *testing.T) {
	b, e := NewBuilder(QueensKindName, 4)
	if e != nil {
		t.Fatalf("Failed to create builder: %v", e)
	}
	// an unpainted board has a single region (id 0), not four
	_, e = b.Instance()
	if e == nil {
		t.Fatalf("Finished an unpainted build")
	}
	if err, ok := e.(Error); !ok || err.Condition != RegionCountCondition {
		t.Errorf("Wrong error for unpainted build: %v", e)
	}
}

func TestBuilderUndoReset(t *testing.T) {
	b, e := NewBuilder(TangoKindName, 4)
	if e != nil {
		t.Fatalf("Failed to create builder: %v", e)
	}
	if b.Undo() {
		t.Errorf("Undo succeeded on a fresh builder")
	}
	if _, e := b.CycleCell(0); e != nil {
		t.Fatalf("Failed to cycle: %v", e)
	}
	if _, e := b.CycleCell(0); e != nil {
		t.Fatalf("Failed to cycle: %v", e)
	}
	if got := b.Summary().Cells[0]; got != Moon {
		t.Errorf("Two cycles gave %d, expected moon", got)
	}
	if b.Steps() != 2 {
		t.Errorf("Wrong step count: %d", b.Steps())
	}
	if !b.Undo() {
		t.Fatalf("Undo failed with steps pending")
	}
	if got := b.Summary().Cells[0]; got != Sun {
		t.Errorf("Undo gave %d, expected sun", got)
	}
	b.Reset()
	if got := b.Summary().Cells[0]; got != Empty {
		t.Errorf("Reset gave %d, expected empty", got)
	}
	if b.Steps() != 0 {
		t.Errorf("Reset left %d steps", b.Steps())
	}
}

func TestBuilderConstraintCycle(t *testing.T) {
	b, e := NewBuilder(TangoKindName, 0)
	if e != nil {
		t.Fatalf("Failed to create builder: %v", e)
	}
	if b.SideLength() != DefaultTangoSideLength {
		t.Fatalf("Wrong default side length: %d", b.SideLength())
	}
	rel, e := b.ToggleConstraint(0, 1)
	if e != nil || rel != EqualRelation {
		t.Fatalf("First toggle gave %q, %v", rel, e)
	}
	rel, e = b.ToggleConstraint(1, 0)
	if e != nil || rel != OppositeRelation {
		t.Fatalf("Second toggle gave %q, %v", rel, e)
	}
	rel, e = b.ToggleConstraint(0, 1)
	if e != nil || rel != "" {
		t.Fatalf("Third toggle gave %q, %v", rel, e)
	}
	if cs := b.Summary().Constraints; len(cs) != 0 {
		t.Errorf("Cleared constraint still present: %v", cs)
	}
	if _, e := b.ToggleConstraint(0, 7); e == nil {
		t.Errorf("Accepted a non-adjacent constraint")
	}
}

func TestBuilderLabels(t *testing.T) {
	b, e := NewBuilder(ZipKindName, 3)
	if e != nil {
		t.Fatalf("Failed to create builder: %v", e)
	}
	if n, e := b.PlaceLabel(0); e != nil || n != 1 {
		t.Fatalf("First label gave %d, %v", n, e)
	}
	if n, e := b.PlaceLabel(4); e != nil || n != 2 {
		t.Fatalf("Second label gave %d, %v", n, e)
	}
	if n, e := b.PlaceLabel(8); e != nil || n != 3 {
		t.Fatalf("Third label gave %d, %v", n, e)
	}
	if e := b.ClearLabel(8); e != nil {
		t.Fatalf("Failed to clear: %v", e)
	}
	// after clearing the highest label, numbering resumes past the
	// largest remaining
	if n, e := b.PlaceLabel(6); e != nil || n != 3 {
		t.Fatalf("Replacement label gave %d, %v", n, e)
	}
	on, e := b.ToggleWall(0, 3)
	if e != nil || !on {
		t.Fatalf("Wall toggle gave %v, %v", on, e)
	}
	on, e = b.ToggleWall(3, 0)
	if e != nil || on {
		t.Fatalf("Second wall toggle gave %v, %v", on, e)
	}
	inst, e := b.Instance()
	if e != nil {
		t.Fatalf("Failed to finish the build: %v", e)
	}
	if _, e := inst.Solve(); e != nil && !IsNoSolution(e) {
		t.Errorf("Unexpected solve error: %v", e)
	}
}

func TestBuilderKindGuards(t *testing.T) {
	b, e := NewBuilder(QueensKindName, 4)
	if e != nil {
		t.Fatalf("Failed to create builder: %v", e)
	}
	if _, e := b.CycleCell(0); e == nil {
		t.Errorf("Cycled a cell on a queens board")
	}
	if _, e := b.PlaceLabel(0); e == nil {
		t.Errorf("Labeled a cell on a queens board")
	}
	if e := b.PaintRegion(99, 1); e == nil {
		t.Errorf("Painted an out-of-range cell")
	}
	if _, e := NewBuilder("chess", 8); e == nil {
		t.Errorf("Created a builder for an unknown kind")
	}
	if _, e := NewBuilder(QueensKindName, 0); e == nil {
		t.Errorf("Created a zero-size queens builder")
	}
}

func TestBuilderFromSummary(t *testing.T) {
	b, e := NewBuilder(ZipKindName, 2)
	if e != nil {
		t.Fatalf("Failed to create builder: %v", e)
	}
	if _, e := b.PlaceLabel(0); e != nil {
		t.Fatalf("Failed to place label: %v", e)
	}
	resumed, e := NewBuilderFromSummary(b.Summary())
	if e != nil {
		t.Fatalf("Failed to resume from summary: %v", e)
	}
	if n, e := resumed.PlaceLabel(3); e != nil || n != 2 {
		t.Fatalf("Resumed label gave %d, %v", n, e)
	}
	if _, e := NewBuilderFromSummary(nil); e == nil {
		t.Errorf("Resumed from a nil summary")
	}
}
