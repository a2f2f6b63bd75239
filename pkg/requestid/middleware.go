package requestid

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

// Header is the default header carrying the request ID.
const Header = "X-Request-ID"

const maxIDLength = 128

var validID = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

type config struct {
	header   string
	generate func() string
	trust    bool
}

// Option configures the middleware.
type Option func(*config)

// WithHeader reads and writes the ID under a different header name.
func WithHeader(name string) Option {
	return func(c *config) {
		if name != "" {
			c.header = http.CanonicalHeaderKey(name)
		}
	}
}

// WithGenerator replaces the UUIDv4 generator.
func WithGenerator(fn func() string) Option {
	return func(c *config) {
		if fn != nil {
			c.generate = fn
		}
	}
}

// WithTrustIncoming controls whether a well-formed incoming ID is reused.
// It is on by default.
func WithTrustIncoming(trust bool) Option {
	return func(c *config) { c.trust = trust }
}

// New returns middleware that assigns every request an ID, stores it in the
// request context and echoes it in the response header.
func New(opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{
		header:   Header,
		generate: func() string { return uuid.New().String() },
		trust:    true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(cfg.header)
			if !cfg.trust || !IsValid(id) {
				id = cfg.generate()
			}
			w.Header().Set(cfg.header, id)
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), id)))
		})
	}
}

// Middleware is New with default options.
func Middleware(next http.Handler) http.Handler {
	return New()(next)
}

// IsValid reports whether id is an acceptable incoming request ID.
func IsValid(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}
	return validID.MatchString(id)
}
