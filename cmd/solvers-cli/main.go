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

// Command-line client for the board builders and solvers.
package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/aidenzhou8/LinkedInSolvers/puzzle"
	"github.com/aidenzhou8/LinkedInSolvers/storage"
)

var log = logrus.New()

func main() {
	if cid, dbid, err := storage.Connect(); err != nil {
		log.Printf("Couldn't connect to storage: %v", err)
		shutdown(startupFailureShutdown)
	} else {
		log.Printf("Connected to cache at %q and database at %q.", cid, dbid)
	}

	// catch signals
	shutdownOnSignal()

	// serve
	err := listener(os.Stdout, os.Stdin)
	if err != nil {
		log.Printf("CLI failure: %v", err)
		shutdown(listenerFailureShutdown)
	}
	shutdown(unknownShutdown)
}

/*

CLI listener

*/

type request struct {
	inline  string
	command string
	args    []string
}

// listener reads lines and dispatches them to handlers
func listener(out io.Writer, in io.Reader) error {
	// if we are on a terminal, we do prompting
	// (see http://stackoverflow.com/questions/22744443/ for source)
	prompt := false
	if f, ok := out.(*os.File); ok {
		if stat, _ := f.Stat(); (stat.Mode() & os.ModeCharDevice) != 0 {
			prompt = true
		}
	}

	input := make([]byte, 4096)
	for {
		if prompt {
			fmt.Fprintf(out, "solvers> ")
		}
		n, err := in.Read(input)
		switch err {
		case nil:
			r := &request{inline: strings.Trim(string(input[:n]), " \t\r\n")}
			args := strings.Split(r.inline, " ")
			r.command = strings.ToLower(args[0])
			switch r.command {
			case "":
				continue
			case "quit":
				fallthrough
			case "exit":
				return nil
			}
			for _, arg := range args[1:] {
				if len(arg) > 0 {
					r.args = append(r.args, strings.ToLower(arg))
				}
			}
			dispatchCommand(out, r)
		case io.EOF:
			// ignore any input before the EOF
			if prompt {
				fmt.Fprintf(out, " (EOF)\n")
			}
			return nil
		default:
			if prompt {
				fmt.Fprintf(out, " (read error)\n")
			}
			return err
		}
	}
}

// command dispatching
type commandInfo struct {
	command     string
	argInfo     string
	description string
	handler     func(*storage.Session, io.Writer, *request)
}

// the command dispatch info is sorted for easy usage printing,
// and then hashed for rapid dispatching
var (
	dispatchInfo  []commandInfo
	dispatchTable map[string]*commandInfo
)

func init() {
	dispatchInfo = []commandInfo{
		{"animate", "", "play back a solved path step by step", animateHandler},
		{"cell", "square", "cycle a square empty/sun/moon", cellHandler},
		{"clear", "square", "remove a checkpoint label", clearHandler},
		{"edge", "square square", "cycle the constraint between neighbors", edgeHandler},
		{"label", "square", "place the next checkpoint label", labelHandler},
		{"load", "name", "load a stored board", loadHandler},
		{"new", "kind [side]", "start an empty board", newHandler},
		{"open", "kind [side]", "start an empty board", newHandler},
		{"region", "square id", "assign a square to a region", regionHandler},
		{"reset", "", "clear all edits on this board", resetHandler},
		{"save", "name", "store this board under a name", saveHandler},
		{"session", "[sessionID]", "get/set session info", summaryHandler},
		{"show", "", "show current board state", stateHandler},
		{"solve", "", "solve the current board", solveHandler},
		{"summary", "", "show current session summary", summaryHandler},
		{"undo", "", "go back one editing step", undoHandler},
		{"wall", "square square", "toggle the wall between neighbors", wallHandler},
	}
	dispatchTable = make(map[string]*commandInfo, len(dispatchInfo))
	for i := range dispatchInfo {
		dispatchTable[dispatchInfo[i].command] = &dispatchInfo[i]
	}
}

func dispatchCommand(w io.Writer, r *request) {
	defer func() {
		if err := recover(); err != nil {
			errorHandler(err, w, r)
		}
	}()

	session := sessionSelect(w, r)
	ci := dispatchTable[r.command]
	if ci == nil {
		usageHandler(fmt.Sprintf("%q is not a known command", r.command), w, r)
	} else {
		ci.handler(session, w, r)
	}
}

/*

request handlers

*/

// parseCell reads a square reference the way the board printers
// label them: a row letter then a 0-based column number, as in "a0"
// or "c3".  Returns the flat index.
func parseCell(session *storage.Session, arg string) (int, error) {
	sidelen := session.Builder.SideLength()
	if len(arg) < 2 {
		return 0, fmt.Errorf("square (%s) must be a row letter and column number", arg)
	}
	row := int(arg[0] - 'a')
	if row < 0 || row >= sidelen {
		return 0, fmt.Errorf("square (%s) row is out of range", arg)
	}
	col, err := strconv.Atoi(arg[1:])
	if err != nil {
		return 0, fmt.Errorf("square (%s) column is not a number", arg)
	}
	if col < 0 || col >= sidelen {
		return 0, fmt.Errorf("square (%s) column is out of range", arg)
	}
	return sidelen*row + col, nil
}

func newHandler(session *storage.Session, w io.Writer, r *request) {
	if len(r.args) < 1 {
		usageHandler(fmt.Sprintf("%s requires a board kind", r.command), w, r)
		return
	}
	kind := r.args[0]
	if _, ok := puzzle.LookupKindByName(kind); !ok {
		usageHandler(fmt.Sprintf("%s kind (%s) is not a known board kind", r.command, kind), w, r)
		return
	}
	sidelen := defaultSides[kind]
	if len(r.args) > 1 {
		n, err := strconv.Atoi(r.args[1])
		if err != nil {
			usageHandler(fmt.Sprintf("%s side length (%s) must be a number", r.command, r.args[1]), w, r)
			return
		}
		sidelen = n
	}
	session.StartBoard(kind, sidelen)
	stateHandler(session, w, r)
}

func loadHandler(session *storage.Session, w io.Writer, r *request) {
	if len(r.args) != 1 {
		usageHandler(fmt.Sprintf("%s requires a board name", r.command), w, r)
		return
	}
	be := storage.LoadBoardEntry(r.args[0])
	if be == nil {
		fmt.Fprintf(w, "No stored board named %q.\n", r.args[0])
		names, _ := storage.ListBoardNames()
		if len(names) > 0 {
			fmt.Fprintf(w, "Stored boards: %s\n", strings.Join(names, ", "))
		}
		return
	}
	session.StartFromSummary(be.Summary)
	fmt.Fprintf(w, "Loaded board %q.\n", be.Name)
	stateHandler(session, w, r)
}

func saveHandler(session *storage.Session, w io.Writer, r *request) {
	if len(r.args) != 1 {
		usageHandler(fmt.Sprintf("%s requires a board name", r.command), w, r)
		return
	}
	be := &storage.BoardEntry{
		Name:    r.args[0],
		Kind:    session.Kind,
		Summary: session.Builder.Summary(),
	}
	be.SaveBoardEntry()
	fmt.Fprintf(w, "Saved board %q.\n", be.Name)
}

func regionHandler(session *storage.Session, w io.Writer, r *request) {
	if len(r.args) != 2 {
		usageHandler(fmt.Sprintf("%s requires two arguments", r.command), w, r)
		return
	}
	idx, err := parseCell(session, r.args[0])
	if err != nil {
		usageHandler(fmt.Sprintf("%s %v", r.command, err), w, r)
		return
	}
	region, err := strconv.Atoi(r.args[1])
	if err != nil {
		usageHandler(fmt.Sprintf("%s region (%s) must be a number", r.command, r.args[1]), w, r)
		return
	}
	applyEdit(session, w, r, session.Builder.PaintRegion(idx, region))
}

func cellHandler(session *storage.Session, w io.Writer, r *request) {
	if len(r.args) != 1 {
		usageHandler(fmt.Sprintf("%s requires one argument", r.command), w, r)
		return
	}
	idx, err := parseCell(session, r.args[0])
	if err != nil {
		usageHandler(fmt.Sprintf("%s %v", r.command, err), w, r)
		return
	}
	_, e := session.Builder.CycleCell(idx)
	applyEdit(session, w, r, e)
}

func edgeHandler(session *storage.Session, w io.Writer, r *request) {
	a, b, ok := parseCellPair(session, w, r)
	if !ok {
		return
	}
	_, e := session.Builder.ToggleConstraint(a, b)
	applyEdit(session, w, r, e)
}

func labelHandler(session *storage.Session, w io.Writer, r *request) {
	if len(r.args) != 1 {
		usageHandler(fmt.Sprintf("%s requires one argument", r.command), w, r)
		return
	}
	idx, err := parseCell(session, r.args[0])
	if err != nil {
		usageHandler(fmt.Sprintf("%s %v", r.command, err), w, r)
		return
	}
	label, e := session.Builder.PlaceLabel(idx)
	if e == nil {
		fmt.Fprintf(w, "Placed label %d.\n", label)
	}
	applyEdit(session, w, r, e)
}

func clearHandler(session *storage.Session, w io.Writer, r *request) {
	if len(r.args) != 1 {
		usageHandler(fmt.Sprintf("%s requires one argument", r.command), w, r)
		return
	}
	idx, err := parseCell(session, r.args[0])
	if err != nil {
		usageHandler(fmt.Sprintf("%s %v", r.command, err), w, r)
		return
	}
	applyEdit(session, w, r, session.Builder.ClearLabel(idx))
}

func wallHandler(session *storage.Session, w io.Writer, r *request) {
	a, b, ok := parseCellPair(session, w, r)
	if !ok {
		return
	}
	_, e := session.Builder.ToggleWall(a, b)
	applyEdit(session, w, r, e)
}

// parseCellPair reads the two square references shared by the edge
// and wall commands.
func parseCellPair(session *storage.Session, w io.Writer, r *request) (a, b int, ok bool) {
	if len(r.args) != 2 {
		usageHandler(fmt.Sprintf("%s requires two arguments", r.command), w, r)
		return 0, 0, false
	}
	a, err := parseCell(session, r.args[0])
	if err != nil {
		usageHandler(fmt.Sprintf("%s %v", r.command, err), w, r)
		return 0, 0, false
	}
	b, err = parseCell(session, r.args[1])
	if err != nil {
		usageHandler(fmt.Sprintf("%s %v", r.command, err), w, r)
		return 0, 0, false
	}
	return a, b, true
}

// applyEdit persists a successful builder edit as a session step and
// shows the result; a failed edit just reports why.
func applyEdit(session *storage.Session, w io.Writer, r *request, e error) {
	if e != nil {
		fmt.Fprintf(w, "Edit failed: %v\n", e)
		return
	}
	session.AddStep()
	stateHandler(session, w, r)
}

func undoHandler(session *storage.Session, w io.Writer, r *request) {
	session.RemoveStep()
	stateHandler(session, w, r)
}

func resetHandler(session *storage.Session, w io.Writer, r *request) {
	session.RemoveAllSteps()
	stateHandler(session, w, r)
}

func stateHandler(session *storage.Session, w io.Writer, r *request) {
	fmt.Fprintf(w, "%s", session.Builder.Summary().String())
}

func solveHandler(session *storage.Session, w io.Writer, r *request) {
	sum := session.Builder.Summary()
	sol, e := storage.SolveThroughCache(sum)
	if e != nil {
		if puzzle.IsNoSolution(e) {
			fmt.Fprintf(w, "This board has no solution.\n")
		} else {
			fmt.Fprintf(w, "Solve failed: %v\n", e)
		}
		return
	}
	// the board solved, so it must construct
	inst, e := puzzle.New(sum)
	if e != nil {
		panic(e)
	}
	switch inst := inst.(type) {
	case *puzzle.Queens:
		fmt.Fprintf(w, "%s", inst.SolutionString(sol))
	case *puzzle.Tango:
		fmt.Fprintf(w, "%s", inst.SolutionString(sol))
	case *puzzle.Zip:
		fmt.Fprintf(w, "%s", inst.SolutionString(sol))
	}
}

func animateHandler(session *storage.Session, w io.Writer, r *request) {
	sum := session.Builder.Summary()
	if sum.Kind != puzzle.ZipKindName {
		usageHandler(fmt.Sprintf("%s only applies to %s boards", r.command, puzzle.ZipKindName), w, r)
		return
	}
	sol, e := storage.SolveThroughCache(sum)
	if e != nil {
		if puzzle.IsNoSolution(e) {
			fmt.Fprintf(w, "This board has no solution.\n")
		} else {
			fmt.Fprintf(w, "Solve failed: %v\n", e)
		}
		return
	}
	inst, e := puzzle.New(sum)
	if e != nil {
		panic(e)
	}
	for _, frame := range inst.(*puzzle.Zip).PathFrames(sol) {
		fmt.Fprintf(w, "%s\n", frame)
		time.Sleep(animationFrameDelay)
	}
}

const animationFrameDelay = 200 * time.Millisecond

func summaryHandler(session *storage.Session, w io.Writer, r *request) {
	fmt.Fprintf(w, "Session %q editing a %q board on step %d\n",
		session.SID, session.Kind, session.Step)
	sum := session.Builder.Summary()
	fmt.Fprintf(w, "Kind: %v; Side length: %v; ", sum.Kind, sum.SideLength)
	switch sum.Kind {
	case puzzle.QueensKindName:
		painted := 0
		for _, region := range sum.Regions {
			if region != 0 {
				painted++
			}
		}
		fmt.Fprintf(w, "Painted squares: %d; Unpainted squares: %d\n",
			painted, len(sum.Regions)-painted)
	case puzzle.TangoKindName:
		filled := 0
		for _, sym := range sum.Cells {
			if sym != puzzle.Empty {
				filled++
			}
		}
		fmt.Fprintf(w, "Pre-filled squares: %d; Constraints: %d\n",
			filled, len(sum.Constraints))
	case puzzle.ZipKindName:
		labeled := 0
		for _, label := range sum.Labels {
			if label != 0 {
				labeled++
			}
		}
		fmt.Fprintf(w, "Checkpoints: %d; Walls: %d\n", labeled, len(sum.Walls))
	}
}

func usageHandler(msg string, w io.Writer, r *request) {
	fmt.Fprintf(w, "Error: %s\nUsage:\n", msg)
	for _, ci := range dispatchInfo {
		fmt.Fprintf(w, "    %8s %-13s\t%s\n", ci.command, ci.argInfo, ci.description)
	}
	fmt.Fprintf(w, "  and 'quit' or EOF to exit.\n")
}

func errorHandler(err interface{}, w io.Writer, r *request) {
	fmt.Fprintf(w, "Panic executing %q: %v\n", r.inline, err)
	log.Printf("Error executing %q: %v", r.inline, err)
}

/*

session handling

*/

// cookie for the command line
var defaultCookie string

var (
	startTime    = time.Now() // instance start-up time
	defaultKind  = puzzle.QueensKindName
	defaultSides = map[string]int{
		puzzle.QueensKindName: 8,
		puzzle.TangoKindName:  puzzle.DefaultTangoSideLength,
		puzzle.ZipKindName:    6,
	}
)

// getCookie gets the session cookie, or sets a new one.  It
// returns the session ID associated with the cookie.
func getCookie(w io.Writer, r *request) string {
	// look to see if the user is specifying a cookie
	if r.command == "session" && len(r.args) > 0 {
		defaultCookie = r.args[0]
	}

	// look for an existing session cookie
	if len(defaultCookie) != 0 {
		return defaultCookie
	}

	// no session cookie: start a new session with a new ID
	// poor man's UUID for the session in local mode: time since startup.
	sid := strconv.FormatInt(int64(time.Now().Sub(startTime)), 36)
	log.Printf("No session cookie found, created new session ID %q", sid)
	defaultCookie = sid
	return sid
}

// sessionSelect: find or create the session for the current connection.
func sessionSelect(w io.Writer, r *request) *storage.Session {
	id := getCookie(w, r)
	session := &storage.Session{SID: id, Created: time.Now().Format(time.RFC3339)}
	// load session from storage if possible, otherwise just initialize it
	if session.Lookup() {
		log.Printf("Found session %v, kind %q, on step %d.", session.SID, session.Kind, session.Step)
		session.LoadStep()
	} else {
		session.StartBoard(defaultKind, defaultSides[defaultKind])
	}
	return session
}

/*

coordinate shutdown across goroutines and the listener

*/

type shutdownCause int

const (
	unknownShutdown = iota
	runtimeFailureShutdown
	startupFailureShutdown
	storageFailureShutdown
	caughtSignalShutdown
	listenerFailureShutdown
)

// for testing, allow alternate forms of shutdown
var alternateShutdown func(reason shutdownCause)

// shutdown: process exit with logging.
func shutdown(reason shutdownCause) {
	storage.Close()

	// for testing: run alternateShutdown instead, if defined
	if alternateShutdown != nil {
		alternateShutdown(reason)
		panic(reason) // shouldn't get here
	}

	// log reason for shutdown and exit
	switch reason {
	case unknownShutdown:
		log.Fatal("Exiting: normal shutdown.")
	case startupFailureShutdown:
		log.Fatal("Exiting: initialization failure.")
	case runtimeFailureShutdown:
		log.Fatal("Exiting: runtime failure.")
	case caughtSignalShutdown:
		log.Fatal("Exiting: caught signal.")
	case listenerFailureShutdown:
		log.Fatal("Exiting: listener failed.")
	case storageFailureShutdown:
		log.Fatal("Exiting: storage failure.")
	default:
		log.Fatal("Exiting: unknown cause.")
	}
}

// shutdownOnSignal: catch signals and exit.
func shutdownOnSignal() {
	// based on example in os.signal godoc
	c := make(chan os.Signal, 1)
	signal.Notify(c) // die on all signals

	go func() {
		s := <-c
		log.Printf("Received OS-level signal: %v", s)
		shutdown(caughtSignalShutdown)
	}()
}
