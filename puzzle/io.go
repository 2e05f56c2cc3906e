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
	"strings"
)

/*

Print forms of puzzle cells

*/

var (
	regionStrings = []string{
		"A", "B", "C", "D", "E", "F", "G", "H", "I", "J",
		"K", "L", "M", "N", "O", "P", "Q", "R", "S", "T",
		"U", "V", "W", "X", "Y",
	}
	symbolStrings  = []string{".", "S", "M"}
	nonValueString = "?"
)

// rstr maps a dense region index to a letter.
func rstr(i int) string {
	if i >= 0 && i < len(regionStrings) {
		return regionStrings[i]
	}
	return nonValueString
}

// sstr maps a tango symbol to its letter (S for sun, M for moon, a
// dot for empty).
func sstr(i int) string {
	if i >= 0 && i < len(symbolStrings) {
		return symbolStrings[i]
	}
	return nonValueString
}

/*

Pretty-printed boards in strings, for debugging and the command
line.

*/

// grid pretty-prints a board from a per-cell string function: a
// column-number header, then each row prefixed by its letter.
func grid(sidelen int, cell func(idx int) string) string {
	var sb strings.Builder
	sb.WriteString("  ")
	for c := 0; c < sidelen; c++ {
		fmt.Fprintf(&sb, "%2d ", c)
	}
	sb.WriteString("\n")
	for r, rowhdr := 0, 'a'; r < sidelen; r, rowhdr = r+1, rowhdr+1 {
		sb.WriteRune(rowhdr)
		for c := 0; c < sidelen; c++ {
			fmt.Fprintf(&sb, " %2s", cell(r*sidelen+c))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// String gives a pretty-printed view of the region partition.
func (q *Queens) String() string {
	if q == nil {
		return ""
	}
	return grid(q.sidelen, func(i int) string { return rstr(q.regions[i]) })
}

// SolutionString overlays a solved placement on the region
// partition: each queen shows as a star next to its region letter.
func (q *Queens) SolutionString(sol *Solution) string {
	if q == nil || sol == nil {
		return ""
	}
	n := q.sidelen
	queened := make([]bool, n*n)
	for r, c := range sol.Columns {
		if r < n && c >= 0 && c < n {
			queened[r*n+c] = true
		}
	}
	return grid(n, func(i int) string {
		if queened[i] {
			return rstr(q.regions[i]) + "*"
		}
		return rstr(q.regions[i])
	})
}

// String gives a pretty-printed view of the pre-fills and
// constraints.  Constraints print below the grid, one per line,
// because squeezing them between the cells makes small boards
// unreadable.
func (t *Tango) String() string {
	if t == nil {
		return ""
	}
	result := grid(t.sidelen, func(i int) string { return sstr(t.cells[i]) })
	relName := map[int]string{equalRelation: EqualRelation, oppositeRelation: OppositeRelation}
	for i := range t.cells {
		if r := t.right[i]; r != noRelation {
			result += fmt.Sprintf("  %s between %s and %s\n",
				relName[r], cellName(t.sidelen, i), cellName(t.sidelen, i+1))
		}
		if r := t.down[i]; r != noRelation {
			result += fmt.Sprintf("  %s between %s and %s\n",
				relName[r], cellName(t.sidelen, i), cellName(t.sidelen, i+t.sidelen))
		}
	}
	return result
}

// SolutionString pretty-prints a full sun/moon assignment.
func (t *Tango) SolutionString(sol *Solution) string {
	if t == nil || sol == nil || len(sol.Cells) != t.sidelen*t.sidelen {
		return ""
	}
	return grid(t.sidelen, func(i int) string { return sstr(sol.Cells[i]) })
}

// String gives a pretty-printed view of the checkpoint labels.
// Walls print below the grid, one per line.
func (z *Zip) String() string {
	if z == nil {
		return ""
	}
	result := grid(z.sidelen, func(i int) string {
		if z.labels[i] == 0 {
			return "."
		}
		return fmt.Sprintf("%d", z.labels[i])
	})
	for i := range z.labels {
		if z.right[i] {
			result += fmt.Sprintf("  wall between %s and %s\n",
				cellName(z.sidelen, i), cellName(z.sidelen, i+1))
		}
		if z.down[i] {
			result += fmt.Sprintf("  wall between %s and %s\n",
				cellName(z.sidelen, i), cellName(z.sidelen, i+z.sidelen))
		}
	}
	return result
}

// SolutionString pretty-prints a solved path as the visit order of
// each cell, counting from 1.
func (z *Zip) SolutionString(sol *Solution) string {
	if z == nil || sol == nil {
		return ""
	}
	n := z.sidelen
	order := make([]int, n*n)
	for i, idx := range sol.Path {
		if idx >= 0 && idx < n*n {
			order[idx] = i + 1
		}
	}
	return grid(n, func(i int) string {
		if order[i] == 0 {
			return "."
		}
		return fmt.Sprintf("%d", order[i])
	})
}

// PathFrames renders a solved path one step at a time: frame k shows
// the first k+1 cells of the path, so playing the frames in order
// animates the path being drawn.  Used by the command-line shell.
func (z *Zip) PathFrames(sol *Solution) []string {
	if z == nil || sol == nil {
		return nil
	}
	n := z.sidelen
	order := make([]int, n*n)
	frames := make([]string, 0, len(sol.Path))
	for i, idx := range sol.Path {
		if idx < 0 || idx >= n*n {
			continue
		}
		order[idx] = i + 1
		frames = append(frames, grid(n, func(i int) string {
			if order[i] == 0 {
				return "."
			}
			return fmt.Sprintf("%d", order[i])
		}))
	}
	return frames
}

// cellName names a flat index the way the grid printer labels it, as
// a row letter and column number.
func cellName(sidelen, idx int) string {
	return fmt.Sprintf("%c%d", 'a'+idx/sidelen, idx%sidelen)
}

// String pretty-prints a summary without validating it, so a board
// still being edited can be shown even when it wouldn't construct
// yet.  Constraints and walls print below the grid.
func (s *Summary) String() string {
	if s == nil || s.SideLength < 1 {
		return ""
	}
	n := s.SideLength
	cell := func(i int) string { return "." }
	switch {
	case s.Kind == QueensKindName && len(s.Regions) == n*n:
		// raw region ids here, since an unfinished partition may not
		// renumber densely
		cell = func(i int) string {
			if s.Regions[i] == 0 {
				return "."
			}
			return fmt.Sprintf("%d", s.Regions[i])
		}
	case s.Kind == TangoKindName && len(s.Cells) == n*n:
		cell = func(i int) string { return sstr(s.Cells[i]) }
	case s.Kind == ZipKindName && len(s.Labels) == n*n:
		cell = func(i int) string {
			if s.Labels[i] == 0 {
				return "."
			}
			return fmt.Sprintf("%d", s.Labels[i])
		}
	}
	result := grid(n, cell)
	for _, c := range s.Constraints {
		result += fmt.Sprintf("  %s between %s and %s\n",
			c.Relation, cellName(n, c.A), cellName(n, c.B))
	}
	for _, w := range s.Walls {
		result += fmt.Sprintf("  wall between %s and %s\n",
			cellName(n, w.A), cellName(n, w.B))
	}
	return result
}
