package db

import "errors"

var (
	ErrNotConfigured            = errors.New("database not configured")
	ErrUnsupportedDriver        = errors.New("unsupported database driver")
	ErrFailedToOpenDBConnection = errors.New("failed to open db connection")
	ErrHealthcheckFailed        = errors.New("healthcheck failed, connection is not available")
	ErrEmptyData                = errors.New("data cannot be empty")
	ErrEmptyCondition           = errors.New("condition cannot be empty")
	ErrEmptyIdentifier          = errors.New("identifier cannot be empty")
	ErrQueryFailed              = errors.New("query failed")
)
