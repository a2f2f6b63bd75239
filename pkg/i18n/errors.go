package i18n

import "errors"

var (
	ErrInvalidLanguage      = errors.New("invalid language code")
	ErrDirectoryNotFound    = errors.New("translations directory not found")
	ErrFailedToReadDir      = errors.New("failed to read translations directory")
	ErrFailedToReadFile     = errors.New("failed to read translation file")
	ErrFailedToParseJSON    = errors.New("failed to parse JSON content")
	ErrUnsupportedExtension = errors.New("unsupported translation file extension")
)
