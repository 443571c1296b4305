// Package graphtest serves canned Microsoft Graph responses for package tests.
package graphtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gebl/onenote-connector/internal/auth"
	"github.com/gebl/onenote-connector/internal/graph"
)

// Token is the bearer token every fake request must carry.
const Token = "graphtest-token"

// Server routes requests by path relative to /v1.0 and counts calls per path.
// Unregistered paths answer 404 with an OData itemNotFound error.
type Server struct {
	*httptest.Server

	mu     sync.Mutex
	routes map[string]http.HandlerFunc
	calls  map[string]int
	order  []string
}

func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{routes: map[string]http.HandlerFunc{}, calls: map[string]int{}}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/v1.0")

	s.mu.Lock()
	s.calls[path]++
	s.order = append(s.order, r.Method+" "+path)
	h, ok := s.routes[r.Method+" "+path]
	if !ok {
		h, ok = s.routes[path]
	}
	s.mu.Unlock()

	if r.Header.Get("Authorization") != "Bearer "+Token {
		WriteError(w, http.StatusUnauthorized, "InvalidAuthenticationToken", "missing or wrong token")
		return
	}
	if !ok {
		WriteError(w, http.StatusNotFound, "itemNotFound", "no route for "+path)
		return
	}
	h(w, r)
}

// Handle registers h for path, optionally prefixed with a method ("POST /x").
func (s *Server) Handle(pattern string, h http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[pattern] = h
}

// JSON registers a handler that answers with v encoded as JSON.
func (s *Server) JSON(pattern string, v any) {
	s.Handle(pattern, func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, v)
	})
}

// Collection registers a single-page collection response.
func (s *Server) Collection(path string, items ...map[string]any) {
	s.JSON(path, map[string]any{"value": items})
}

// Calls returns how often path was requested.
func (s *Server) Calls(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[path]
}

// Requests returns "METHOD path" for every request in arrival order.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.order...)
}

// BaseURL is the Graph root to hand to graph.WithBaseURL.
func (s *Server) BaseURL() string {
	return s.URL + "/v1.0"
}

// NewClient returns a graph.Client wired to the fake server.
func (s *Server) NewClient(t testing.TB) *graph.Client {
	t.Helper()
	c, err := graph.NewClient(auth.StaticTokenSource(Token),
		graph.WithBaseURL(s.BaseURL()),
		graph.WithHTTPClient(s.Server.Client()))
	require.NoError(t, err)
	return c
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, map[string]any{
		"error": map[string]any{"code": code, "message": message},
	})
}

// Notebook, Section, SectionGroup and Page build Graph JSON entities.
func Notebook(id, name string) map[string]any {
	return map[string]any{"id": id, "displayName": name}
}

func SectionGroup(id, name string) map[string]any {
	return map[string]any{"id": id, "displayName": name}
}

func Section(id, name, webURL string) map[string]any {
	m := map[string]any{"id": id, "displayName": name}
	if webURL != "" {
		m["links"] = map[string]any{"oneNoteWebUrl": map[string]any{"href": webURL}}
	}
	return m
}

func Page(id, title string) map[string]any {
	return map[string]any{"id": id, "title": title}
}
