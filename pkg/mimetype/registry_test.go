package mimetype_test

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeoblyv/spider/pkg/logger"
	"github.com/yeoblyv/spider/pkg/mimetype"
)

func TestRegistry_Lookup(t *testing.T) {
	t.Parallel()
	reg := mimetype.New()

	tests := []struct {
		ext  string
		want string
	}{
		{"css", "text/css"},
		{"html", "text/html"},
		{"js", "application/javascript"},
		{"png", "image/png"},
		{"woff2", "font/woff2"},
		{"7z", "application/x-7z-compressed"},
		{".css", "text/css"},
		{"CSS", "text/css"},
		{" Png ", "image/png"},
		{"", mimetype.Default},
		{"unknown", mimetype.Default},
		{"exe", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			assert.Equal(t, tt.want, reg.Lookup(tt.ext))
		})
	}
}

func TestRegistry_Has(t *testing.T) {
	t.Parallel()
	reg := mimetype.New()

	assert.True(t, reg.Has("svg"))
	assert.True(t, reg.Has(".SVG"))
	assert.False(t, reg.Has("nope"))
	assert.False(t, reg.Has(""))
	assert.False(t, reg.Has("default"))
}

func TestRegistry_Metadata(t *testing.T) {
	t.Parallel()
	reg := mimetype.New()

	assert.Equal(t, "1.0.0", reg.Version())
	assert.Greater(t, reg.Len(), 50)
}

func TestRegistry_CustomDefinition(t *testing.T) {
	t.Parallel()

	reg := mimetype.New(mimetype.WithDefinition([]byte(`
version: "test"
types:
  TXT: text/plain
  .md: text/markdown
  default: application/x-unknown
`)))

	assert.Equal(t, "text/plain", reg.Lookup("txt"))
	assert.Equal(t, "text/markdown", reg.Lookup("md"))
	assert.Equal(t, "application/x-unknown", reg.Lookup("css"))
	assert.Equal(t, 2, reg.Len())
}

func TestRegistry_BrokenDefinition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"malformed", []byte("types: [unterminated")},
		{"no types", []byte(`version: "1"`)},
		{"no default", []byte("types:\n  css: text/css\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			reg := mimetype.New(
				mimetype.WithDefinition(tt.data),
				mimetype.WithLogger(logger.New(logger.WithOutput(buf))),
			)

			assert.Equal(t, mimetype.Default, reg.Lookup("unknown"))
			assert.Contains(t, buf.String(), "WARN")
		})
	}
}

func TestRegistry_ConcurrentFirstUse(t *testing.T) {
	t.Parallel()
	reg := mimetype.New()

	var wg sync.WaitGroup
	results := make([]string, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = reg.Lookup("css")
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		require.Equal(t, "text/css", got)
	}
}

func TestRegistry_Sniff(t *testing.T) {
	t.Parallel()
	reg := mimetype.New()

	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}
	ct, ok := reg.Sniff(png)
	assert.True(t, ok)
	assert.Equal(t, "image/png", ct)

	_, ok = reg.Sniff([]byte("plain text body"))
	assert.False(t, ok)

	_, ok = reg.Sniff(nil)
	assert.False(t, ok)
}

func TestLookup_PackageLevel(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "application/pdf", mimetype.Lookup("pdf"))
}
