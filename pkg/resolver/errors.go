package resolver

import "errors"

var (
	// ErrNotFound is wrapped by every resolution failure.
	ErrNotFound = errors.New("resolver: resource not found")

	// ErrTraversal is returned when the request path contains parent directory segments.
	ErrTraversal = errors.New("resolver: path traversal attempt")

	// ErrOutsideRoot is returned when the joined path escapes the public root.
	ErrOutsideRoot = errors.New("resolver: path escapes public root")

	// ErrInvalidPath is returned for paths that cannot be decoded.
	ErrInvalidPath = errors.New("resolver: invalid request path")

	// ErrEmptyRoot is returned by New when no public root is given.
	ErrEmptyRoot = errors.New("resolver: public root is empty")
)
