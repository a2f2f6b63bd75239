package i18n

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yeoblyv/spider/pkg/cache"
	"github.com/yeoblyv/spider/pkg/logger"
)

// Version identifies the translation layer in the component registry.
const Version = "1.0.0"

// Store loads translation tables from a directory.
type Store struct {
	dir    string
	logger *slog.Logger
	cache  *cache.FileCache[map[string]string]
}

// StoreOption configures a Store.
type StoreOption func(*storeConfig)

type storeConfig struct {
	logger    *slog.Logger
	cacheSize int
}

// WithStoreLogger sets the logger for configuration and parse diagnostics.
func WithStoreLogger(l *slog.Logger) StoreOption {
	return func(c *storeConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithCacheSize bounds the number of parsed files kept in memory.
func WithCacheSize(n int) StoreOption {
	return func(c *storeConfig) {
		if n > 0 {
			c.cacheSize = n
		}
	}
}

// NewStore returns a Store reading from dir. The directory is not required
// to exist yet.
func NewStore(dir string, opts ...StoreOption) *Store {
	cfg := &storeConfig{
		logger:    logger.Discard(),
		cacheSize: cache.DefaultCapacity,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return &Store{
		dir:    dir,
		logger: cfg.logger,
		cache:  cache.NewFileCache[map[string]string](cfg.cacheSize),
	}
}

// Dir returns the absolute translations directory.
func (s *Store) Dir() string {
	return s.dir
}

// Languages scans the directory for .json and .lang files and returns the
// sorted, deduplicated codes. A missing directory yields an empty list.
func (s *Store) Languages(ctx context.Context) []string {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.WarnContext(ctx, "translations directory missing",
				logger.Path(s.dir),
				logger.Error(ErrDirectoryNotFound),
			)
		} else {
			s.logger.ErrorContext(ctx, "translations directory unreadable",
				logger.Path(s.dir),
				logger.Error(errors.Join(ErrFailedToReadDir, err)),
			)
		}
		return []string{}
	}

	codes := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := strings.TrimPrefix(filepath.Ext(name), ".")
		if !slices.Contains(discoverable, ext) {
			continue
		}
		code := strings.TrimSuffix(name, "."+ext)
		if code == "" {
			continue
		}
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return slices.Compact(codes)
}

// Has reports whether code is one of Languages.
func (s *Store) Has(ctx context.Context, code string) bool {
	return slices.Contains(s.Languages(ctx), code)
}

// Load returns a fresh table for code. The table is never nil: a code with
// no file or a file that does not parse loads as empty. An error is
// returned only for invalid codes and unreadable files.
func (s *Store) Load(ctx context.Context, code string) (*Table, error) {
	valid, ok := NormalizeCode(code)
	if !ok {
		err := errors.Join(ErrInvalidLanguage, errors.New(code))
		s.logger.WarnContext(ctx, "refusing to load translations",
			logger.Lang(code),
			logger.Security(),
			logger.Error(err),
		)
		return NewTable(code, nil), err
	}

	path, fi, ext := s.locate(valid)
	if path == "" {
		s.logger.DebugContext(ctx, "no translation file", logger.Lang(valid))
		return NewTable(valid, nil), nil
	}

	entries, err := s.cache.Load(path, fi, func() (map[string]string, error) {
		return s.parseFile(ctx, path, ext)
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load translations",
			logger.Lang(valid),
			logger.File(path),
			logger.Error(err),
		)
		return NewTable(valid, nil), err
	}
	return NewTable(valid, entries), nil
}

// locate returns the first existing regular file for code in load order.
func (s *Store) locate(code string) (string, os.FileInfo, string) {
	for _, ext := range loadOrder {
		path := filepath.Join(s.dir, code+"."+ext)
		fi, err := os.Stat(path)
		if err == nil && fi.Mode().IsRegular() {
			return path, fi, ext
		}
	}
	return "", nil, ""
}

// parseFile reads and parses path. Parse failures are logged and produce an
// empty table, which is cached like any other result.
func (s *Store) parseFile(ctx context.Context, path, ext string) (map[string]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}

	parser, err := ParserFor(ext)
	if err != nil {
		return nil, err
	}

	entries, err := parser.Parse(content)
	if err != nil {
		s.logger.WarnContext(ctx, "malformed translation file",
			logger.File(path),
			logger.Error(err),
		)
		return map[string]string{}, nil
	}
	return entries, nil
}
