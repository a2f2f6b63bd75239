// Package components keeps the list of spider components and their
// versions, and derives the core hash shown in diagnostics.
package components

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"strings"
	"sync"
)

// DefaultHashLength is the length of CoreHash when none is requested.
const DefaultHashLength = 8

// Component is a registered part of the application.
type Component struct {
	Name    string
	Version string
}

// Registry is an ordered, append-only list of components.
type Registry struct {
	mu    sync.RWMutex
	items []Component
}

func New(items ...Component) *Registry {
	r := &Registry{}
	for _, c := range items {
		r.Register(c.Name, c.Version)
	}
	return r
}

// Register adds name at version. Registering a name twice replaces its
// version in place.
func (r *Registry) Register(name, version string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := slices.IndexFunc(r.items, func(c Component) bool { return c.Name == name }); i >= 0 {
		r.items[i].Version = version
		return
	}
	r.items = append(r.items, Component{Name: name, Version: version})
}

// Components returns a copy in registration order.
func (r *Registry) Components() []Component {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.items)
}

// Version returns the version registered under name.
func (r *Registry) Version(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.items {
		if c.Name == name {
			return c.Version, true
		}
	}
	return "", false
}

// CoreHash returns the first n hex characters of the SHA-256 of all
// versions concatenated in registration order. Non-positive n selects
// DefaultHashLength; n is capped at 64.
func (r *Registry) CoreHash(n int) string {
	if n <= 0 {
		n = DefaultHashLength
	}

	r.mu.RLock()
	var b strings.Builder
	for _, c := range r.items {
		b.WriteString(c.Version)
	}
	r.mu.RUnlock()

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])[:min(n, sha256.Size*2)]
}
