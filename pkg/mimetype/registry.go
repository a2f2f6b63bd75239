package mimetype

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/h2non/filetype"
	"gopkg.in/yaml.v3"

	"github.com/yeoblyv/spider/pkg/logger"
)

// Default is the content type for extensions missing from the table.
const Default = "application/octet-stream"

// defaultKey names the fallback entry inside the definition.
const defaultKey = "default"

//go:embed mimetypes.yaml
var builtin []byte

// definition is the on-disk shape of mimetypes.yaml.
type definition struct {
	Version string            `yaml:"version"`
	Types   map[string]string `yaml:"types"`
}

// Registry resolves extensions to content types.
type Registry struct {
	source []byte
	logger *slog.Logger

	once     sync.Once
	version  string
	table    map[string]string
	fallback string
}

// Option configures a Registry.
type Option func(*Registry)

// WithDefinition replaces the embedded table with the given YAML document.
func WithDefinition(data []byte) Option {
	return func(r *Registry) {
		r.source = data
	}
}

// WithLogger sets the logger used for configuration diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// New returns a registry backed by the embedded table. Parsing is deferred
// until the first lookup.
func New(opts ...Option) *Registry {
	r := &Registry{
		source: builtin,
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var std = New()

// Lookup resolves ext using the process-wide registry.
func Lookup(ext string) string {
	return std.Lookup(ext)
}

// Lookup returns the content type for ext, or the default entry when ext is
// empty or unknown.
func (r *Registry) Lookup(ext string) string {
	r.load()
	if ct, ok := r.table[Normalize(ext)]; ok && ct != "" {
		return ct
	}
	return r.fallback
}

// Has reports whether ext has its own entry in the table.
func (r *Registry) Has(ext string) bool {
	r.load()
	key := Normalize(ext)
	if key == "" || key == defaultKey {
		return false
	}
	_, ok := r.table[key]
	return ok
}

// Version returns the version string of the loaded definition.
func (r *Registry) Version() string {
	r.load()
	return r.version
}

// Len returns the number of extensions in the table, excluding the default.
func (r *Registry) Len() int {
	r.load()
	n := len(r.table)
	if _, ok := r.table[defaultKey]; ok {
		n--
	}
	return n
}

// Sniff detects a content type from the first bytes of a file.
func (r *Registry) Sniff(head []byte) (string, bool) {
	if len(head) == 0 {
		return "", false
	}
	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown || kind.MIME.Value == "" {
		return "", false
	}
	return kind.MIME.Value, true
}

// Normalize lowercases ext and strips surrounding space and a leading dot.
func Normalize(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

func (r *Registry) load() {
	r.once.Do(func() {
		table, version, err := parse(r.source)
		if err != nil {
			// An unusable table degrades to the default type for everything.
			r.logger.Warn("mime table unavailable, using default content type",
				logger.Component("mimetype"), logger.Error(err))
		}
		r.table = table
		r.version = version
		r.fallback = Default
		if ct := table[defaultKey]; ct != "" {
			r.fallback = ct
		} else if err == nil {
			r.logger.Warn("mime table has no default entry",
				logger.Component("mimetype"), logger.Error(ErrMissingDefault))
		}
	})
}

func parse(data []byte) (map[string]string, string, error) {
	table := make(map[string]string)
	if len(data) == 0 {
		return table, "", ErrEmptyDefinition
	}

	var def definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return table, "", errors.Join(ErrParseDefinition, err)
	}
	if len(def.Types) == 0 {
		return table, def.Version, fmt.Errorf("%w: no types", ErrEmptyDefinition)
	}

	for ext, ct := range def.Types {
		key := Normalize(ext)
		if key == "" {
			continue
		}
		table[key] = strings.TrimSpace(ct)
	}
	return table, def.Version, nil
}
