package resolver

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

const (
	// DefaultIndexFile is the file served for directories and extension-less paths.
	DefaultIndexFile = "index.lua"
)

// Resource is the outcome of resolving one request path.
type Resource struct {
	// Path is the absolute filesystem path inside the public root.
	Path string
	// Ext is the lowercase extension of Path without the dot.
	Ext string
	// IsDynamic is true when Ext is the script extension.
	IsDynamic bool
	// IsIndexFallback is true when the index file was substituted.
	IsIndexFallback bool
}

// Resolver maps request paths to Resources under a public root.
// It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	root       string
	indexFile  string
	dynamicExt string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithIndexFile sets the index file name used for directory fallback.
// The script extension follows it unless WithDynamicExt is also given.
func WithIndexFile(name string) Option {
	return func(r *Resolver) {
		name = strings.TrimSpace(name)
		if name == "" || strings.ContainsAny(name, `/\`) {
			return
		}
		r.indexFile = name
	}
}

// WithDynamicExt sets the extension treated as a dynamic script.
func WithDynamicExt(ext string) Option {
	return func(r *Resolver) {
		if ext = normalizeExt(ext); ext != "" {
			r.dynamicExt = ext
		}
	}
}

// New returns a Resolver rooted at publicRoot. The root is made absolute
// and cleaned once here.
func New(publicRoot string, opts ...Option) (*Resolver, error) {
	if strings.TrimSpace(publicRoot) == "" {
		return nil, ErrEmptyRoot
	}
	abs, err := filepath.Abs(publicRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPath, err)
	}

	r := &Resolver{
		root:      filepath.Clean(abs),
		indexFile: DefaultIndexFile,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.dynamicExt == "" {
		r.dynamicExt = normalizeExt(filepath.Ext(r.indexFile))
	}
	return r, nil
}

// Root returns the absolute public root.
func (r *Resolver) Root() string { return r.root }

// IndexFile returns the index file name.
func (r *Resolver) IndexFile() string { return r.indexFile }

// DynamicExt returns the script extension without the dot.
func (r *Resolver) DynamicExt() string { return r.dynamicExt }

// Resolve maps requestPath (path plus optional query and fragment) to a
// Resource. Every error wraps ErrNotFound.
func (r *Resolver) Resolve(requestPath string) (Resource, error) {
	clean, err := requestPathOnly(requestPath)
	if err != nil {
		return Resource{}, err
	}
	if hasTraversal(clean) {
		return Resource{}, errors.Join(ErrNotFound, ErrTraversal)
	}

	// A trailing slash names a directory even when a file has that name.
	dirOnly := strings.HasSuffix(clean, "/")
	rel := path.Clean("/" + clean)
	full := filepath.Join(r.root, filepath.FromSlash(rel))
	if !r.contains(full) {
		return Resource{}, errors.Join(ErrNotFound, ErrOutsideRoot)
	}

	ext := normalizeExt(filepath.Ext(full))
	fallback := false
	if dirOnly || ext == "" || isDir(full) {
		full = filepath.Join(full, r.indexFile)
		ext = normalizeExt(filepath.Ext(full))
		fallback = true
	}

	return Resource{
		Path:            full,
		Ext:             ext,
		IsDynamic:       ext != "" && ext == r.dynamicExt,
		IsIndexFallback: fallback,
	}, nil
}

// Rel returns p relative to the root with forward slashes, for logging.
func (r *Resolver) Rel(p string) string {
	rel, err := filepath.Rel(r.root, p)
	if err != nil {
		return p
	}
	return "/" + filepath.ToSlash(rel)
}

// contains reports whether p is the root or a descendant of it.
func (r *Resolver) contains(p string) bool {
	if p == r.root {
		return true
	}
	return strings.HasPrefix(p, r.root+string(filepath.Separator))
}

// requestPathOnly drops query and fragment and percent-decodes the path.
func requestPathOnly(requestPath string) (string, error) {
	if i := strings.IndexAny(requestPath, "?#"); i >= 0 {
		requestPath = requestPath[:i]
	}
	if strings.Contains(requestPath, "\x00") {
		return "", errors.Join(ErrNotFound, ErrInvalidPath)
	}
	decoded, err := url.PathUnescape(requestPath)
	if err != nil {
		return "", errors.Join(ErrNotFound, ErrInvalidPath, err)
	}
	if strings.Contains(decoded, "\x00") {
		return "", errors.Join(ErrNotFound, ErrInvalidPath)
	}
	return decoded, nil
}

// hasTraversal reports whether any segment of p is "..", splitting on both
// slash styles.
func hasTraversal(p string) bool {
	for seg := range strings.FieldsFuncSeq(p, func(c rune) bool { return c == '/' || c == '\\' }) {
		if seg == ".." {
			return true
		}
	}
	return false
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

func isDir(p string) bool {
	fi, err := os.Stat(p)
	return err == nil && fi.IsDir()
}
