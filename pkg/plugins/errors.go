package plugins

import "errors"

var (
	ErrInvalidPlugin  = errors.New("invalid plugin identifier")
	ErrPluginNotFound = errors.New("plugin not found")
)
