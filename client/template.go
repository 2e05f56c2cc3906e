package client

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/aidenzhou8/LinkedInSolvers/puzzle"
)

/*

solver pages

*/

// A templateSolverPage contains the values to fill the solver
// page template.
type templateSolverPage struct {
	SessionID, Kind   string
	Title, TopHead    string
	CssFile, JsFile   string
	Board             templateBoard
	ApplicationFooter string
}

// templateBoard is the structure expected by the board grid
// section of the solver page template.
type templateBoard [][]templateBoardCell

// A templateBoardCell contains the cell's index, display value, and
// CSS styling classes as expected by the board grid section of the
// solver page template.
type templateBoardCell struct {
	Index                   int
	Value                   template.HTML
	Shade, HBorder, VBorder string
}

// SolverPage executes the solver page template over the passed
// session and board state, and returns the solver page content as a
// string.  If there is an error, what's returned is the error page
// content as a string.
func SolverPage(sessionID string, summary *puzzle.Summary) string {
	var tb templateBoard
	var err error
	switch summary.Kind {
	case puzzle.QueensKindName:
		tb, err = queensTemplateBoard(summary)
	case puzzle.TangoKindName:
		tb, err = tangoTemplateBoard(summary)
	case puzzle.ZipKindName:
		tb, err = zipTemplateBoard(summary)
	default:
		err = fmt.Errorf("Can't generate a grid for kind %q", summary.Kind)
	}
	if err != nil {
		return errorPage(err)
	}

	tsp := templateSolverPage{
		SessionID:         sessionID,
		Kind:              summary.Kind,
		Title:             fmt.Sprintf("%s: %s", brandName, summary.Kind),
		TopHead:           fmt.Sprintf("%s board", summary.Kind),
		CssFile:           "/solver.css",
		JsFile:            "/solver.js",
		Board:             tb,
		ApplicationFooter: applicationFooter(),
	}

	tmpl, err := loadPageTemplate("solver")
	if err != nil {
		return errorPage(fmt.Errorf("Couldn't load the %q template: %v", "solver", err))
	}
	buf := new(bytes.Buffer)
	err = tmpl.Execute(buf, tsp)
	if err != nil {
		return errorPage(err)
	}
	return buf.String()
}

// checkShape verifies that a per-cell slice fills the summary's
// square.
func checkShape(summary *puzzle.Summary, cells []int) (int, error) {
	slen := summary.SideLength
	if len(cells) != slen*slen {
		return 0, fmt.Errorf("Board has %d cells for side length %d", len(cells), slen)
	}
	return slen, nil
}

// queensTemplateBoard shades each cell by its region, so the
// stylesheet can color the partition.
func queensTemplateBoard(summary *puzzle.Summary) (templateBoard, error) {
	slen, err := checkShape(summary, summary.Regions)
	if err != nil {
		return nil, err
	}
	// renumber the regions densely so the shade classes are stable
	// however the regions are numbered
	dense := make(map[int]int)
	rows := make(templateBoard, slen)
	for i := 0; i < slen; i++ {
		rows[i] = make([]templateBoardCell, slen)
		for j := 0; j < slen; j++ {
			index := i*slen + j
			id, ok := dense[summary.Regions[index]]
			if !ok {
				id = len(dense)
				dense[summary.Regions[index]] = id
			}
			rows[i][j] = templateBoardCell{
				Index: index,
				Value: template.HTML("&nbsp;"),
				Shade: fmt.Sprintf("region-%d", id%10),
			}
		}
	}
	return rows, nil
}

// tangoTemplateBoard shows the pre-filled symbols and marks the
// constrained edges on the borders between cells.
func tangoTemplateBoard(summary *puzzle.Summary) (templateBoard, error) {
	slen, err := checkShape(summary, summary.Cells)
	if err != nil {
		return nil, err
	}
	right := make(map[int]string)
	down := make(map[int]string)
	for _, c := range summary.Constraints {
		a, b := c.A, c.B
		if a > b {
			a, b = b, a
		}
		if b-a == 1 {
			right[a] = c.Relation
		} else {
			down[a] = c.Relation
		}
	}
	class := map[string]string{
		puzzle.EqualRelation:    "same",
		puzzle.OppositeRelation: "differ",
	}
	rows := make(templateBoard, slen)
	for i := 0; i < slen; i++ {
		rows[i] = make([]templateBoardCell, slen)
		for j := 0; j < slen; j++ {
			index := i*slen + j
			value := template.HTML("&nbsp;")
			switch summary.Cells[index] {
			case puzzle.Sun:
				value = template.HTML("&#9728;")
			case puzzle.Moon:
				value = template.HTML("&#9790;")
			}
			rows[i][j] = templateBoardCell{
				Index:   index,
				Value:   value,
				VBorder: class[right[index]],
				HBorder: class[down[index]],
			}
		}
	}
	return rows, nil
}

// zipTemplateBoard shows the checkpoint numbers and draws the
// barrier walls on the borders between cells.
func zipTemplateBoard(summary *puzzle.Summary) (templateBoard, error) {
	slen, err := checkShape(summary, summary.Labels)
	if err != nil {
		return nil, err
	}
	right := make(map[int]bool)
	down := make(map[int]bool)
	for _, w := range summary.Walls {
		a, b := w.A, w.B
		if a > b {
			a, b = b, a
		}
		if b-a == 1 {
			right[a] = true
		} else {
			down[a] = true
		}
	}
	border := map[bool]string{true: "wall"}
	rows := make(templateBoard, slen)
	for i := 0; i < slen; i++ {
		rows[i] = make([]templateBoardCell, slen)
		for j := 0; j < slen; j++ {
			index := i*slen + j
			value := template.HTML("&nbsp;")
			if lbl := summary.Labels[index]; lbl > 0 {
				value = template.HTML(fmt.Sprint(lbl))
			}
			rows[i][j] = templateBoardCell{
				Index:   index,
				Value:   value,
				VBorder: border[right[index]],
				HBorder: border[down[index]],
			}
		}
	}
	return rows, nil
}

/*

error pages

*/

// A templateErrorPage contains the values to fill the error page
// template.
type templateErrorPage struct {
	Title, TopHead, Message string
	ApplicationFooter       string
}

// return error page content
func errorPage(e error) string {
	tep := templateErrorPage{
		Title:             fmt.Sprintf("%s: Error", brandName),
		TopHead:           "Error Page",
		Message:           e.Error(),
		ApplicationFooter: applicationFooter(),
	}

	tmpl, err := loadPageTemplate("error")
	if err != nil {
		return fmt.Sprintf("Couldn't load the %q template: %v", "error", err)
	}

	buf := new(bytes.Buffer)
	err = tmpl.Execute(buf, tep)
	if err != nil {
		return fmt.Sprintf("A templating error has occurred: %v", err)
	}
	return buf.String()
}

/*

home page

*/

// A templateHomePage contains the values to fill the home page
// template.
type templateHomePage struct {
	SessionID         string
	Title, TopHead    string
	Kinds             []string
	BoardNames        []string
	ApplicationFooter string
}

// HomePage executes the home page template over the passed session,
// the editable kinds, and the stored board names, and returns the
// home page content as a string.  If there is an error, what's
// returned is the error page content as a string.
func HomePage(sessionID string, kinds, boardNames []string) string {
	thp := templateHomePage{
		SessionID:         sessionID,
		Title:             fmt.Sprintf("%s: Home", brandName),
		TopHead:           brandName,
		Kinds:             kinds,
		BoardNames:        boardNames,
		ApplicationFooter: applicationFooter(),
	}

	tmpl, err := loadPageTemplate("home")
	if err != nil {
		return errorPage(fmt.Errorf("Couldn't load the %q template: %v", "home", err))
	}
	buf := new(bytes.Buffer)
	err = tmpl.Execute(buf, thp)
	if err != nil {
		return errorPage(err)
	}
	return buf.String()
}
