package reqctx

import (
	"context"
	"maps"
	"math"
	"net"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"
)

// State is the mutable state of one request. It is safe for concurrent use.
type State struct {
	start time.Time
	now   func() time.Time

	mu     sync.RWMutex
	values map[string]any
}

// New returns a State that started at start.
func New(start time.Time) *State {
	return &State{start: start, now: time.Now, values: make(map[string]any)}
}

func (s *State) Start() time.Time {
	return s.start
}

func (s *State) Elapsed() time.Duration {
	return s.now().Sub(s.start)
}

// LoadTime returns the seconds elapsed since start, rounded to 4 decimals.
func (s *State) LoadTime() float64 {
	return math.Round(s.Elapsed().Seconds()*1e4) / 1e4
}

// Get returns the value stored under key and whether it was present.
func (s *State) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *State) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

func (s *State) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

// Keys returns the stored keys in sorted order.
func (s *State) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.values))
}

type stateKey struct{}

func WithState(ctx context.Context, s *State) context.Context {
	return context.WithValue(ctx, stateKey{}, s)
}

// FromContext returns the request state. Without one, a fresh State
// starting now is returned so callers never deal with nil.
func FromContext(ctx context.Context) *State {
	if s, ok := ctx.Value(stateKey{}).(*State); ok && s != nil {
		return s
	}
	return New(time.Now())
}

// Middleware attaches a new State to every request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithState(r.Context(), New(time.Now()))))
	})
}

// RootLink returns scheme://host for r, without port or path.
func RootLink(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}

	host := r.Host
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	if host == "" {
		host = "localhost"
	}
	return scheme + "://" + host
}
