package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aidenzhou8/LinkedInSolvers/puzzle"
)

func TestGetCookie(t *testing.T) {
	// no cookie: a new session ID is minted for the unknown protocol
	r := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	sid := getCookie(w, r)
	if !strings.HasPrefix(sid, "httpx-") {
		t.Errorf("Unexpected session ID %q", sid)
	}
	if len(w.Result().Cookies()) != 1 {
		t.Errorf("Expected one cookie, got %d", len(w.Result().Cookies()))
	}

	// forwarded protocol becomes part of the session ID
	r = httptest.NewRequest("GET", "/", nil)
	r.Header.Set("X-Forwarded-Proto", "https")
	sid = getCookie(httptest.NewRecorder(), r)
	if !strings.HasPrefix(sid, "https-") {
		t.Errorf("Unexpected session ID %q", sid)
	}

	// a cookie minted under one protocol isn't honored under another
	r = httptest.NewRequest("GET", "/", nil)
	r.Header.Set("X-Forwarded-Proto", "http")
	r.AddCookie(&http.Cookie{Name: cookieName, Value: sid})
	if reused := getCookie(httptest.NewRecorder(), r); reused == sid {
		t.Errorf("Session %q survived a protocol change", sid)
	}

	// a matching cookie is reused
	r = httptest.NewRequest("GET", "/", nil)
	r.Header.Set("X-Forwarded-Proto", "https")
	r.AddCookie(&http.Cookie{Name: cookieName, Value: sid})
	if reused := getCookie(httptest.NewRecorder(), r); reused != sid {
		t.Errorf("Session %q not reused, got %q", sid, reused)
	}
}

func TestSessionSelect(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("X-Forwarded-Proto", "https")
	w := httptest.NewRecorder()
	session := sessionSelect(w, r)
	if session == nil || session.builder == nil {
		t.Fatalf("Session select produced no working session")
	}
	if session.kind != defaultKind {
		t.Errorf("New session kind is %q, expected %q", session.kind, defaultKind)
	}

	// the same cookie must select the same session
	r2 := httptest.NewRequest("GET", "/", nil)
	r2.Header.Set("X-Forwarded-Proto", "https")
	r2.AddCookie(&http.Cookie{Name: cookieName, Value: session.sessionID})
	if again := sessionSelect(httptest.NewRecorder(), r2); again != session {
		t.Errorf("Cookie %q selected a different session", session.sessionID)
	}
}

// postEdit runs one API operation against a session and decodes the
// response as a summary when the status allows it.
func postEdit(t *testing.T, session *solverSession, op, body string) (int, *puzzle.Summary) {
	r := httptest.NewRequest("POST", "/api/"+op, strings.NewReader(body))
	w := httptest.NewRecorder()
	session.apiHandler(w, r)
	if w.Code != 200 {
		return w.Code, nil
	}
	var summary *puzzle.Summary
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatalf("Failed to decode %q response: %v", op, err)
	}
	return w.Code, summary
}

func TestAPIEdits(t *testing.T) {
	session := &solverSession{sessionID: "test-api"}
	session.reset(puzzle.QueensKindName)

	code, summary := postEdit(t, session, "region", `{"index":0,"region":3}`)
	if code != 200 {
		t.Fatalf("Region edit gave status %d", code)
	}
	if summary.Regions[0] != 3 {
		t.Errorf("Region edit gave region %d, expected 3", summary.Regions[0])
	}

	code, summary = postEdit(t, session, "undo", "")
	if code != 200 {
		t.Fatalf("Undo gave status %d", code)
	}
	if summary.Regions[0] != 0 {
		t.Errorf("Undo left region %d, expected 0", summary.Regions[0])
	}

	// a tango edit on a queens board is a client error
	if code, _ := postEdit(t, session, "cell", `{"index":0}`); code != 400 {
		t.Errorf("Wrong-kind edit gave status %d, expected 400", code)
	}

	// garbage bodies are client errors
	if code, _ := postEdit(t, session, "region", "not json"); code != 400 {
		t.Errorf("Garbage body gave status %d, expected 400", code)
	}

	// unknown endpoints are not found
	if code, _ := postEdit(t, session, "teleport", "{}"); code != 404 {
		t.Errorf("Unknown endpoint gave status %d, expected 404", code)
	}

	if code, summary := postEdit(t, session, "summary", ""); code != 200 {
		t.Errorf("Summary gave status %d", code)
	} else if summary.Kind != puzzle.QueensKindName {
		t.Errorf("Summary kind is %q", summary.Kind)
	}
}

func TestServeSolverPage(t *testing.T) {
	r := httptest.NewRequest("GET", "/solver/tango", nil)
	w := httptest.NewRecorder()
	serve(w, r)
	if w.Code != 200 {
		t.Fatalf("Solver page gave status %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "tango") {
		t.Errorf("Solver page doesn't mention its board kind")
	}
}

func TestServeRedirect(t *testing.T) {
	r := httptest.NewRequest("GET", "/nowhere", nil)
	w := httptest.NewRecorder()
	serve(w, r)
	if w.Code != 302 {
		t.Fatalf("Unknown path gave status %d, expected redirect", w.Code)
	}
	if loc := w.Header().Get("Location"); !strings.HasPrefix(loc, "/solver/") {
		t.Errorf("Unknown path redirected to %q", loc)
	}
}
