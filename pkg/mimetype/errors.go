package mimetype

import "errors"

var (
	ErrEmptyDefinition  = errors.New("mimetype: definition is empty")
	ErrParseDefinition  = errors.New("mimetype: failed to parse definition")
	ErrMissingDefault   = errors.New("mimetype: definition has no default entry")
)
