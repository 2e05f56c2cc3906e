package puzzle

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

func postSummary(t *testing.T, handler func(http.ResponseWriter, *http.Request) error, body string) (*httptest.ResponseRecorder, error) {
	req := httptest.NewRequest("POST", "/api/solve", strings.NewReader(body))
	w := httptest.NewRecorder()
	e := handler(w, req)
	return w, e
}

func TestSolveSummaryHandler(t *testing.T) {
	summary := Summary{Kind: QueensKindName, SideLength: 4, Regions: queensSimpleRegions}
	body, _ := json.Marshal(summary)
	w, e := postSummary(t, SolveSummaryHandler, string(body))
	if e != nil {
		t.Fatalf("Handler returned error: %v", e)
	}
	if w.Code != http.StatusOK {
		t.Fatalf("Wrong status: %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Wrong content type: %q", ct)
	}
	var resp SolveResponse
	if e := json.Unmarshal(w.Body.Bytes(), &resp); e != nil {
		t.Fatalf("Undecodable response: %v", e)
	}
	if !resp.Solved || resp.Solution == nil {
		t.Fatalf("Expected a solved response: %+v", resp)
	}
	if !reflect.DeepEqual(resp.Solution.Columns, queensSimpleColumns) {
		t.Errorf("Wrong columns: %v", resp.Solution.Columns)
	}
}

func TestSolveSummaryHandlerNoSolution(t *testing.T) {
	summary := Summary{Kind: QueensKindName, SideLength: 2, Regions: queensTinyRegions}
	body, _ := json.Marshal(summary)
	w, e := postSummary(t, SolveSummaryHandler, string(body))
	if e != nil {
		t.Fatalf("Handler returned error: %v", e)
	}
	if w.Code != http.StatusOK {
		t.Fatalf("Wrong status for unsolvable board: %d", w.Code)
	}
	var resp SolveResponse
	if e := json.Unmarshal(w.Body.Bytes(), &resp); e != nil {
		t.Fatalf("Undecodable response: %v", e)
	}
	if resp.Solved || resp.Solution != nil {
		t.Errorf("Unsolvable board reported solved: %+v", resp)
	}
}

func TestSolveSummaryHandlerBadInstance(t *testing.T) {
	summary := Summary{Kind: QueensKindName, SideLength: 4, Regions: queensShortRegions}
	body, _ := json.Marshal(summary)
	w, e := postSummary(t, SolveSummaryHandler, string(body))
	if e == nil {
		t.Fatalf("No error for a bad instance")
	}
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Wrong status: %d", w.Code)
	}
	var err Error
	if je := json.Unmarshal(w.Body.Bytes(), &err); je != nil {
		t.Fatalf("Undecodable error response: %v", je)
	}
	if err.Condition != RegionCountCondition {
		t.Errorf("Wrong condition in response: %+v", err)
	}
	if len(err.Message) == 0 {
		t.Errorf("Error response has no message")
	}
}

func TestSolveSummaryHandlerBadBody(t *testing.T) {
	w, e := postSummary(t, SolveSummaryHandler, "{not json")
	if e == nil {
		t.Fatalf("No error for an undecodable body")
	}
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Wrong status: %d", w.Code)
	}
}

func TestSolveSummaryHandlerUnknownKind(t *testing.T) {
	w, e := postSummary(t, SolveSummaryHandler, `{"kind":"chess","sidelen":8}`)
	if e == nil {
		t.Fatalf("No error for an unknown kind")
	}
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Wrong status: %d", w.Code)
	}
	var err Error
	if je := json.Unmarshal(w.Body.Bytes(), &err); je != nil {
		t.Fatalf("Undecodable error response: %v", je)
	}
	if err.Condition != UnknownKindCondition {
		t.Errorf("Wrong condition in response: %+v", err)
	}
}

func TestNewHandler(t *testing.T) {
	summary := Summary{Kind: ZipKindName, SideLength: 3, Labels: zipSimpleLabels}
	body, _ := json.Marshal(summary)
	req := httptest.NewRequest("POST", "/api/new", bytes.NewReader(body))
	w := httptest.NewRecorder()
	inst, e := NewHandler(w, req)
	if e != nil {
		t.Fatalf("Handler returned error: %v", e)
	}
	if inst == nil || inst.Kind() != ZipKindName {
		t.Fatalf("Wrong instance: %v", inst)
	}
	if w.Code != http.StatusOK {
		t.Fatalf("Wrong status: %d", w.Code)
	}
	var back Summary
	if e := json.Unmarshal(w.Body.Bytes(), &back); e != nil {
		t.Fatalf("Undecodable response: %v", e)
	}
	if !reflect.DeepEqual(back.Labels, zipSimpleLabels) {
		t.Errorf("Summary round trip changed labels: %v", back.Labels)
	}
}

func TestInstanceHandlers(t *testing.T) {
	inst, e := NewZip(3, zipSimpleLabels, nil)
	if e != nil {
		t.Fatalf("Failed to create instance: %v", e)
	}
	req := httptest.NewRequest("GET", "/api/summary", nil)
	w := httptest.NewRecorder()
	if e := SummaryHandler(inst, w, req); e != nil {
		t.Fatalf("Summary handler returned error: %v", e)
	}
	if w.Code != http.StatusOK {
		t.Errorf("Wrong summary status: %d", w.Code)
	}

	req = httptest.NewRequest("GET", "/api/solve", nil)
	w = httptest.NewRecorder()
	if e := SolveHandler(inst, w, req); e != nil {
		t.Fatalf("Solve handler returned error: %v", e)
	}
	var resp SolveResponse
	if e := json.Unmarshal(w.Body.Bytes(), &resp); e != nil {
		t.Fatalf("Undecodable response: %v", e)
	}
	if !resp.Solved || !reflect.DeepEqual(resp.Solution.Path, zipSimplePath) {
		t.Errorf("Wrong solve response: %+v", resp)
	}

	w = httptest.NewRecorder()
	if e := SolveHandler(nil, w, req); e == nil {
		t.Errorf("No error for a nil instance")
	} else if w.Code != http.StatusNotFound {
		t.Errorf("Wrong status for a nil instance: %d", w.Code)
	}
}
