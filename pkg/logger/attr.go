package logger

import (
	"log/slog"
	"time"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Path records a request path or filesystem path under the key "path".
func Path(p string) slog.Attr {
	return slog.String("path", p)
}

// File records a resolved filesystem path under the key "file".
func File(p string) slog.Attr {
	return slog.String("file", p)
}

// Status records an HTTP status code under the key "status".
func Status(code int) slog.Attr {
	return slog.Int("status", code)
}

// ContentType records a MIME type under the key "content_type".
func ContentType(ct string) slog.Attr {
	return slog.String("content_type", ct)
}

// Lang records a language code under the key "lang".
func Lang(code string) slog.Attr {
	return slog.String("lang", code)
}

// Security flags a record as security relevant.
func Security() slog.Attr {
	return slog.Bool("security", true)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
