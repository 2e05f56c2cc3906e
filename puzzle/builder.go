package puzzle

/*

Instance construction

A Builder accumulates the edits a user makes while setting up a
puzzle — painting region cells, cycling suns and moons, toggling
edge constraints and walls, dropping checkpoint numbers — and keeps
a snapshot history so each edit can be undone.  Finishing the build
runs the kind's validating constructor, so structural problems are
caught before a solve is ever attempted.

*/

// A Builder is a mutable Summary plus an undo history.  Builders
// are not safe for concurrent use; each editing session owns its
// own.
type Builder struct {
	summary   *Summary
	steps     []*Summary // snapshots taken before each applied edit
	nextLabel int
}

// NewBuilder creates an empty builder for the named kind and side
// length.  Tango builders accept 0 as "the usual size".
func NewBuilder(kind string, sidelen int) (*Builder, error) {
	if _, ok := LookupKindByName(kind); !ok {
		return nil, Error{
			Scope:     ArgumentScope,
			Structure: AttributeValueStructure,
			Attribute: KindAttribute,
			Condition: UnknownKindCondition,
			Values:    ErrorData{kind},
		}
	}
	if kind == TangoKindName && sidelen == 0 {
		sidelen = DefaultTangoSideLength
	}
	if sidelen < 1 || sidelen > maxSideLength {
		return nil, rangeError(SideLengthAttribute, sidelen, 1, maxSideLength)
	}
	s := &Summary{Kind: kind, SideLength: sidelen}
	switch kind {
	case QueensKindName:
		s.Regions = make([]int, sidelen*sidelen)
	case TangoKindName:
		s.Cells = make([]int, sidelen*sidelen)
	case ZipKindName:
		s.Labels = make([]int, sidelen*sidelen)
	}
	return &Builder{summary: s, nextLabel: 1}, nil
}

// NewBuilderFromSummary resumes editing a previously saved summary.
// The summary is cloned, so the caller's copy stays untouched.
func NewBuilderFromSummary(s *Summary) (*Builder, error) {
	if s == nil {
		return nil, Error{
			Scope:     ArgumentScope,
			Structure: ScopeStructure,
			Condition: EmptyArgumentCondition,
		}
	}
	if _, ok := LookupKindByName(s.Kind); !ok {
		return nil, Error{
			Scope:     ArgumentScope,
			Structure: AttributeValueStructure,
			Attribute: KindAttribute,
			Condition: UnknownKindCondition,
			Values:    ErrorData{s.Kind},
		}
	}
	b := &Builder{summary: s.Clone(), nextLabel: 1}
	for _, v := range b.summary.Labels {
		if v >= b.nextLabel {
			b.nextLabel = v + 1
		}
	}
	return b, nil
}

// Kind returns the kind being built.
func (b *Builder) Kind() string {
	return b.summary.Kind
}

// SideLength returns the side length of the board being built.
func (b *Builder) SideLength() int {
	return b.summary.SideLength
}

// Summary returns a snapshot of the current edit state.  The
// returned value doesn't share storage with the builder.
func (b *Builder) Summary() *Summary {
	return b.summary.Clone()
}

// Steps returns the number of undoable edits applied so far.
func (b *Builder) Steps() int {
	return len(b.steps)
}

// Undo reverts the most recent edit, reporting whether there was
// one to revert.
func (b *Builder) Undo() bool {
	if len(b.steps) == 0 {
		return false
	}
	b.summary = b.steps[len(b.steps)-1]
	b.steps[len(b.steps)-1] = nil // release storage before pop
	b.steps = b.steps[:len(b.steps)-1]
	b.recountLabels()
	return true
}

// Reset discards every edit, returning the builder to an empty
// board.
func (b *Builder) Reset() {
	if len(b.steps) > 0 {
		b.summary = b.steps[0]
		b.steps = nil
	}
	b.recountLabels()
}

// Instance runs the kind's validating constructor over the current
// edit state, failing fast on structural problems (for example a
// queens board whose region count doesn't match its side).
func (b *Builder) Instance() (Instance, error) {
	return New(b.summary)
}

/*

edits

*/

// snapshot records the pre-edit state for undo.
func (b *Builder) snapshot() {
	b.steps = append(b.steps, b.summary.Clone())
}

// checkKind guards an edit that only applies to one kind.
func (b *Builder) checkKind(kind string) error {
	if b.summary.Kind != kind {
		return Error{
			Scope:     ArgumentScope,
			Structure: ScopeStructure,
			Condition: WrongKindCondition,
			Values:    ErrorData{b.summary.Kind},
		}
	}
	return nil
}

// checkCell guards a cell index.
func (b *Builder) checkCell(idx int) error {
	if max := b.summary.SideLength*b.summary.SideLength - 1; idx < 0 || idx > max {
		return rangeError(IndexAttribute, idx, 0, max)
	}
	return nil
}

// PaintRegion assigns a region id to a cell of a queens board, the
// builder analogue of dragging a brush over the grid.  Region ids
// start at 1; painting with 0 clears the cell back to unassigned.
func (b *Builder) PaintRegion(idx, region int) error {
	if err := b.checkKind(QueensKindName); err != nil {
		return err
	}
	if err := b.checkCell(idx); err != nil {
		return err
	}
	if region < 0 {
		return rangeError(RegionAttribute, region, 0, b.summary.SideLength)
	}
	b.snapshot()
	b.summary.Regions[idx] = region
	return nil
}

// SetCell fixes a tango cell to a symbol (or Empty to clear it).
func (b *Builder) SetCell(idx, sym int) error {
	if err := b.checkKind(TangoKindName); err != nil {
		return err
	}
	if err := b.checkCell(idx); err != nil {
		return err
	}
	if sym != Empty && sym != Sun && sym != Moon {
		return instanceError(CellAttribute, BadSymbolCondition, idx, sym)
	}
	b.snapshot()
	b.summary.Cells[idx] = sym
	return nil
}

// CycleCell steps a tango cell through empty → sun → moon → empty,
// the same gesture as clicking a square in the original game.
func (b *Builder) CycleCell(idx int) (int, error) {
	if err := b.checkKind(TangoKindName); err != nil {
		return Empty, err
	}
	if err := b.checkCell(idx); err != nil {
		return Empty, err
	}
	b.snapshot()
	next := (b.summary.Cells[idx] + 1) % 3
	b.summary.Cells[idx] = next
	return next, nil
}

// ToggleConstraint steps the relation on a tango edge through
// none → "=" → "x" → none.  Returns the new relation ("" for
// none).
func (b *Builder) ToggleConstraint(a, c int) (string, error) {
	if err := b.checkKind(TangoKindName); err != nil {
		return "", err
	}
	if a > c {
		a, c = c, a
	}
	if !adjacent(b.summary.SideLength, a, c) {
		return "", instanceError(ConstraintAttribute, NotAdjacentCondition, a, c)
	}
	b.snapshot()
	cur := ""
	at := -1
	for i, cst := range b.summary.Constraints {
		if cst.A == a && cst.B == c {
			cur, at = cst.Relation, i
			break
		}
	}
	var next string
	switch cur {
	case "":
		next = EqualRelation
	case EqualRelation:
		next = OppositeRelation
	default:
		next = ""
	}
	switch {
	case at < 0:
		b.summary.Constraints = append(b.summary.Constraints, Constraint{A: a, B: c, Relation: next})
	case next == "":
		b.summary.Constraints = append(b.summary.Constraints[:at], b.summary.Constraints[at+1:]...)
	default:
		b.summary.Constraints[at].Relation = next
	}
	return next, nil
}

// PlaceLabel drops the next checkpoint number on a zip cell and
// returns it, matching the original's click-to-number flow.
func (b *Builder) PlaceLabel(idx int) (int, error) {
	if err := b.checkKind(ZipKindName); err != nil {
		return 0, err
	}
	if err := b.checkCell(idx); err != nil {
		return 0, err
	}
	b.snapshot()
	b.summary.Labels[idx] = b.nextLabel
	b.nextLabel++
	return b.summary.Labels[idx], nil
}

// ClearLabel removes the checkpoint number from a zip cell; the
// next number to place becomes one past the largest remaining.
func (b *Builder) ClearLabel(idx int) error {
	if err := b.checkKind(ZipKindName); err != nil {
		return err
	}
	if err := b.checkCell(idx); err != nil {
		return err
	}
	b.snapshot()
	b.summary.Labels[idx] = 0
	b.recountLabels()
	return nil
}

// ToggleWall flips the barrier on a zip edge.
func (b *Builder) ToggleWall(a, c int) (bool, error) {
	if err := b.checkKind(ZipKindName); err != nil {
		return false, err
	}
	if a > c {
		a, c = c, a
	}
	if !adjacent(b.summary.SideLength, a, c) {
		return false, instanceError(WallAttribute, NotAdjacentCondition, a, c)
	}
	b.snapshot()
	for i, w := range b.summary.Walls {
		if w.A == a && w.B == c {
			b.summary.Walls = append(b.summary.Walls[:i], b.summary.Walls[i+1:]...)
			return false, nil
		}
	}
	b.summary.Walls = append(b.summary.Walls, Wall{A: a, B: c})
	return true, nil
}

// recountLabels recomputes the next checkpoint number after an
// edit that may have removed labels.
func (b *Builder) recountLabels() {
	b.nextLabel = 1
	for _, v := range b.summary.Labels {
		if v >= b.nextLabel {
			b.nextLabel = v + 1
		}
	}
}
