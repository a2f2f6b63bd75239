package script

import "errors"

var (
	ErrScriptFailed  = errors.New("script failed")
	ErrCompileFailed = errors.New("script compilation failed")
	ErrScriptMissing = errors.New("script file not found")
)
