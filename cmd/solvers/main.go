package main

import (
	"encoding/json"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/aidenzhou8/LinkedInSolvers/client"
	"github.com/aidenzhou8/LinkedInSolvers/puzzle"
	"github.com/aidenzhou8/LinkedInSolvers/storage"
)

const cookieName = "solversID"
const cookiePath = "/"

// a solverSession is one browser's editing state: the board being
// built and the kind it belongs to.  The builder carries its own
// undo history.
type solverSession struct {
	sessionID string
	kind      string
	builder   *puzzle.Builder
}

var (
	log          = logrus.New()
	defaultKind  = puzzle.QueensKindName
	defaultSides = map[string]int{
		puzzle.QueensKindName: 8,
		puzzle.TangoKindName:  puzzle.DefaultTangoSideLength,
		puzzle.ZipKindName:    6,
	}
	startTime    = time.Now()
	sessions     = make(map[string]*solverSession)
	sessionMutex sync.RWMutex
)

// getCookie gets the session cookie, or sets a new one.  It
// returns the session ID associated with the cookie.
//
// Browser tabs that arrive over different protocols (as happens
// behind a Heroku-style router that forwards both HTTP and HTTPS to
// the same instance) must get different sessions, so the forwarded
// protocol is part of the session ID and a cookie minted under one
// protocol isn't honored under another.
func getCookie(w http.ResponseWriter, r *http.Request) string {
	proto := "httpx" // absent other indicators, protocol is unknown
	if fwd := r.Header.Get("X-Forwarded-Proto"); fwd != "" {
		proto = fwd
	}

	// check for an existing cookie whose value matches the protocol
	if sc, e := r.Cookie(cookieName); e == nil {
		if m, e := regexp.MatchString(proto+"-[0-9a-z]{3,}", sc.Value); e == nil && m {
			return sc.Value
		}
	}

	// no session cookie or not a valid session cookie,
	// start a new session with a new cookie
	sid := proto + "-" + strconv.FormatInt(int64(time.Now().Sub(startTime)), 36)
	sc := &http.Cookie{Name: cookieName, Value: sid, Path: cookiePath}
	http.SetCookie(w, sc)
	return sid
}

// since session selection can happen concurrently from
// simultaneous goroutines, it has to be interlocked
func sessionSelect(w http.ResponseWriter, r *http.Request) *solverSession {
	sessionID := getCookie(w, r)
	// look up the session for the cookie
	sessionMutex.RLock()
	session, ok := sessions[sessionID]
	sessionMutex.RUnlock()
	if ok && session != nil && session.builder != nil {
		return session
	}
	// initialize and save the new session
	session = &solverSession{sessionID: sessionID}
	session.reset(defaultKind)
	sessionMutex.Lock()
	sessions[sessionID] = session
	sessionMutex.Unlock()
	return session
}

// reset replaces the session's board with a fresh one of the given
// kind (or the default kind, if the given one is unknown).
func (session *solverSession) reset(kind string) {
	if _, ok := puzzle.LookupKindByName(kind); !ok {
		kind = defaultKind
	}
	b, e := puzzle.NewBuilder(kind, defaultSides[kind])
	if e != nil {
		log.Fatal(e)
	}
	session.kind = kind
	session.builder = b
	log.Printf("Initialized session %v with an empty %q board.", session.sessionID, kind)
}

// load replaces the session's board with a copy of a stored one.
func (session *solverSession) load(name string) error {
	be := storage.LoadBoardEntry(name)
	if be == nil {
		return puzzle.Error{
			Scope:     puzzle.RequestScope,
			Structure: puzzle.AttributeValueStructure,
			Attribute: puzzle.URLAttribute,
			Condition: puzzle.GeneralCondition,
			Values:    puzzle.ErrorData{name, "No such board"},
		}
	}
	b, e := puzzle.NewBuilderFromSummary(be.Summary)
	if e != nil {
		return e
	}
	session.kind = be.Kind
	session.builder = b
	log.Printf("Loaded board %q into session %v.", name, session.sessionID)
	return nil
}

/*

the edit API

*/

// an editRequest carries the arguments of every edit endpoint; each
// endpoint reads the fields it needs.
type editRequest struct {
	Index  int    `json:"index"`
	Region int    `json:"region"`
	A      int    `json:"a"`
	B      int    `json:"b"`
	Kind   string `json:"kind"`
}

// apiHandler dispatches the /api/ endpoints against the session's
// builder.  Edits respond with the updated summary; solve responds
// with the cached solve outcome.
func (session *solverSession) apiHandler(w http.ResponseWriter, r *http.Request) {
	op := strings.TrimPrefix(r.URL.Path, "/api/")

	if op == "summary" {
		writeJSON(w, http.StatusOK, session.builder.Summary())
		return
	}
	if op == "solve" {
		sol, e := storage.SolveThroughCache(session.builder.Summary())
		switch {
		case e == nil:
			writeJSON(w, http.StatusOK, puzzle.SolveResponse{Solved: true, Solution: sol})
		case puzzle.IsNoSolution(e):
			writeJSON(w, http.StatusOK, puzzle.SolveResponse{Solved: false})
		default:
			writeAPIError(w, e)
		}
		return
	}
	if op == "undo" {
		session.builder.Undo()
		writeJSON(w, http.StatusOK, session.builder.Summary())
		return
	}
	if op == "reset" {
		session.builder.Reset()
		writeJSON(w, http.StatusOK, session.builder.Summary())
		return
	}

	var req editRequest
	if e := json.NewDecoder(r.Body).Decode(&req); e != nil {
		writeAPIError(w, puzzle.Error{
			Scope:     puzzle.RequestScope,
			Structure: puzzle.AttributeStructure,
			Attribute: puzzle.DecodeAttribute,
			Condition: puzzle.GeneralCondition,
			Values:    puzzle.ErrorData{e.Error()},
		})
		return
	}
	var e error
	switch op {
	case "region":
		e = session.builder.PaintRegion(req.Index, req.Region)
	case "cell":
		_, e = session.builder.CycleCell(req.Index)
	case "edge":
		_, e = session.builder.ToggleConstraint(req.A, req.B)
	case "label":
		_, e = session.builder.PlaceLabel(req.Index)
	case "clear":
		e = session.builder.ClearLabel(req.Index)
	case "wall":
		_, e = session.builder.ToggleWall(req.A, req.B)
	default:
		http.NotFound(w, r)
		return
	}
	if e != nil {
		log.Printf("Edit %q failed for session %v: %v", op, session.sessionID, e)
		writeAPIError(w, e)
		return
	}
	writeJSON(w, http.StatusOK, session.builder.Summary())
}

func writeJSON(w http.ResponseWriter, status int, obj interface{}) {
	bytes, e := json.Marshal(obj)
	if e != nil {
		http.Error(w, e.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bytes)
}

func writeAPIError(w http.ResponseWriter, e error) {
	if err, ok := e.(puzzle.Error); ok {
		err.Message = err.Error()
		writeJSON(w, http.StatusBadRequest, err)
		return
	}
	http.Error(w, e.Error(), http.StatusInternalServerError)
}

/*

the pages

*/

func (session *solverSession) solverHandler(w http.ResponseWriter, r *http.Request) {
	body := client.SolverPage(session.sessionID, session.builder.Summary())
	hs := w.Header()
	hs.Add("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}

func (session *solverSession) homeHandler(w http.ResponseWriter, r *http.Request) {
	names, _ := storage.ListBoardNames()
	kinds := []string{puzzle.QueensKindName, puzzle.TangoKindName, puzzle.ZipKindName}
	body := client.HomePage(session.sessionID, kinds, names)
	hs := w.Header()
	hs.Add("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}

// serve recovers from the panics the storage layer uses for
// infrastructure failures, so one bad cache call doesn't kill the
// server.
func serve(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rc := recover(); rc != nil {
			log.Printf("Storage failure handling %s %s: %v", r.Method, r.URL.Path, rc)
			http.Error(w, "storage failure", http.StatusInternalServerError)
		}
	}()

	if client.StaticHandler(w, r) {
		return
	}
	log.Printf("Handling %s %s...", r.Method, r.URL.Path)
	session := sessionSelect(w, r)
	switch {
	case strings.HasPrefix(r.URL.Path, "/solver/load/"):
		if e := session.load(r.URL.Path[len("/solver/load/"):]); e != nil {
			writeAPIError(w, e)
			return
		}
	case strings.HasPrefix(r.URL.Path, "/solver/new/"):
		session.reset(r.URL.Path[len("/solver/new/"):])
	case strings.HasPrefix(r.URL.Path, "/api/"):
		session.apiHandler(w, r)
		return
	case strings.HasPrefix(r.URL.Path, "/solver/"):
		if kind := r.URL.Path[len("/solver/"):]; kind != "" && kind != session.kind {
			session.reset(kind)
		}
		session.solverHandler(w, r)
		return
	case r.URL.Path == "/":
		session.homeHandler(w, r)
		return
	}
	http.Redirect(w, r, "/solver/"+session.kind, http.StatusFound)
}

func main() {
	if cid, dbid, err := storage.Connect(); err != nil {
		log.Fatalf("Couldn't connect to storage: %v", err)
	} else {
		log.Printf("Connected to cache at %q and database at %q.", cid, dbid)
	}
	defer storage.Close()

	http.HandleFunc("/", serve)

	// Heroku environment port sensing
	port := os.Getenv("PORT")
	if port == "" {
		// running locally in dev mode
		port = "localhost:8080"
	} else {
		// running as a true server
		port = ":" + port
	}

	log.Printf("Listening on %s...", port)
	err := http.ListenAndServe(port, nil)
	if err != nil {
		log.Fatal("Listener failure: ", err)
	}
}
