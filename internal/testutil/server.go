package testutil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// Route is a canned response served by APIServer.
type Route struct {
	Status int
	Body   []byte
	// Block, when non-nil, is received from before the response is written.
	Block <-chan struct{}
}

// APIServer is an httptest server that answers GET requests by path and
// records every request it sees.
type APIServer struct {
	*httptest.Server

	mu       sync.Mutex
	routes   map[string]Route
	requests []*http.Request
}

// NewAPIServer starts a server rooted at /3/movie. Unknown paths get a 404.
func NewAPIServer(t testing.TB) *APIServer {
	t.Helper()
	s := &APIServer{routes: make(map[string]Route)}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// BaseURL is the movie collection root to hand to a URL builder.
func (s *APIServer) BaseURL() string {
	return s.URL + "/3/movie"
}

// Handle registers a response for a path relative to BaseURL, e.g. "popular".
func (s *APIServer) Handle(path string, route Route) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if route.Status == 0 {
		route.Status = http.StatusOK
	}
	s.routes["/3/movie/"+strings.TrimPrefix(path, "/")] = route
}

// Requests returns a copy of the requests received so far.
func (s *APIServer) Requests() []*http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*http.Request, len(s.requests))
	copy(out, s.requests)
	return out
}

func (s *APIServer) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests = append(s.requests, r.Clone(r.Context()))
	route, ok := s.routes[r.URL.Path]
	s.mu.Unlock()
	if !ok {
		http.Error(w, `{"status_code":34,"status_message":"The resource you requested could not be found."}`, http.StatusNotFound)
		return
	}
	if route.Block != nil {
		select {
		case <-route.Block:
		case <-r.Context().Done():
			return
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(route.Status)
	_, _ = w.Write(route.Body)
}
