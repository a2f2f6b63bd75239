package dispatcher

import "errors"

var (
	ErrNotAccessible = errors.New("resource is not a readable regular file")
	ErrNoRunner      = errors.New("no script runner configured")
	ErrStreamFailed  = errors.New("failed to stream resource")
)
