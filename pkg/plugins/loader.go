package plugins

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/yeoblyv/spider/pkg/logger"
)

// DefaultExt is the extension appended to plugin paths.
const DefaultExt = ".lua"

// Loader locates plugin files.
type Loader struct {
	dir    string
	ext    string
	logger *slog.Logger
}

type Option func(*Loader)

func WithLogger(l *slog.Logger) Option {
	return func(ld *Loader) {
		if l != nil {
			ld.logger = l
		}
	}
}

// WithExt overrides the plugin file extension.
func WithExt(ext string) Option {
	return func(ld *Loader) {
		if ext = strings.TrimPrefix(ext, "."); ext != "" {
			ld.ext = "." + ext
		}
	}
}

// New returns a Loader rooted at dir.
func New(dir string, opts ...Option) *Loader {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	ld := &Loader{dir: filepath.Clean(dir), ext: DefaultExt, logger: logger.Discard()}
	for _, opt := range opts {
		opt(ld)
	}
	return ld
}

func (ld *Loader) Dir() string {
	return ld.dir
}

// Path returns the file for identifier. It fails with ErrInvalidPlugin for
// unsafe identifiers and ErrPluginNotFound when the file does not exist.
func (ld *Loader) Path(ctx context.Context, identifier string) (string, error) {
	segments, err := Segments(identifier)
	if err != nil {
		ld.logger.WarnContext(ctx, "invalid plugin name",
			slog.String("plugin", identifier),
			logger.Security(),
			logger.Error(err),
		)
		return "", err
	}

	file := filepath.Join(append([]string{ld.dir}, segments...)...) + ld.ext
	if !strings.HasPrefix(file, ld.dir+string(filepath.Separator)) {
		err := fmt.Errorf("%w: %q escapes plugins directory", ErrInvalidPlugin, identifier)
		ld.logger.WarnContext(ctx, "invalid plugin name",
			slog.String("plugin", identifier),
			logger.Security(),
			logger.Error(err),
		)
		return "", err
	}

	fi, err := os.Stat(file)
	if err != nil || !fi.Mode().IsRegular() {
		ld.logger.ErrorContext(ctx, "plugin file not found",
			slog.String("plugin", identifier),
			logger.File(file),
		)
		return "", errors.Join(ErrPluginNotFound, fmt.Errorf("%s", identifier))
	}
	return file, nil
}

// Segments splits identifier into path segments. Backslash and dot both
// act as namespace separators.
func Segments(identifier string) ([]string, error) {
	switch {
	case identifier == "":
		return nil, fmt.Errorf("%w: empty", ErrInvalidPlugin)
	case strings.Contains(identifier, ".."):
		return nil, fmt.Errorf("%w: %q contains '..'", ErrInvalidPlugin, identifier)
	case strings.ContainsAny(identifier, "/\x00"):
		return nil, fmt.Errorf("%w: %q contains a path separator", ErrInvalidPlugin, identifier)
	case strings.HasPrefix(identifier, `\`):
		return nil, fmt.Errorf("%w: %q starts with a backslash", ErrInvalidPlugin, identifier)
	}

	segments := strings.FieldsFunc(identifier, func(r rune) bool { return r == '\\' || r == '.' })
	if len(segments) != strings.Count(identifier, `\`)+strings.Count(identifier, ".")+1 {
		return nil, fmt.Errorf("%w: %q has an empty segment", ErrInvalidPlugin, identifier)
	}
	for _, s := range segments {
		if strings.ContainsAny(s, ": \t") {
			return nil, fmt.Errorf("%w: %q has an invalid segment", ErrInvalidPlugin, identifier)
		}
	}
	return segments, nil
}
