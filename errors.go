package spider

import "errors"

// ErrInvalidConfig is returned by New when a configured directory or cookie
// setting cannot be used.
var ErrInvalidConfig = errors.New("invalid spider configuration")
