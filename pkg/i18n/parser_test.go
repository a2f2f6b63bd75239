package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeoblyv/spider/pkg/i18n"
)

func TestParseJSON(t *testing.T) {
	t.Parallel()

	t.Run("flattens nested objects", func(t *testing.T) {
		t.Parallel()
		got, err := i18n.ParseJSON([]byte(`{
			"title": "Spider",
			"nav": {"home": "Home", "menu": {"open": "Open"}},
			"count": 3,
			"enabled": true,
			"none": null,
			"list": ["a", "b"]
		}`))
		require.NoError(t, err)
		assert.Equal(t, map[string]string{
			"title":         "Spider",
			"nav.home":      "Home",
			"nav.menu.open": "Open",
			"count":         "3",
			"enabled":       "true",
			"none":          "",
			"list":          `["a", "b"]`,
		}, got)
	})

	t.Run("malformed", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.ParseJSON([]byte(`{"title": `))
		assert.ErrorIs(t, err, i18n.ErrFailedToParseJSON)
	})

	t.Run("non object root", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.ParseJSON([]byte(`["a"]`))
		assert.ErrorIs(t, err, i18n.ErrFailedToParseJSON)
	})
}

func TestParseLang(t *testing.T) {
	t.Parallel()

	got, err := i18n.ParseLang([]byte("greeting = Hello\r\nformula=a=b\nno separator here\n  spaced  =  value  \n=empty key\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"greeting": "Hello",
		"formula":  "a=b",
		"spaced":   "value",
		"":         "empty key",
	}, got)
}

func TestParseSPL(t *testing.T) {
	t.Parallel()

	got, err := i18n.ParseSPL([]byte("anything=here"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParserFor(t *testing.T) {
	t.Parallel()

	for _, ext := range []string{"json", ".json", "LANG", "spl"} {
		p, err := i18n.ParserFor(ext)
		require.NoError(t, err, ext)
		assert.NotNil(t, p)
	}

	_, err := i18n.ParserFor("yaml")
	assert.ErrorIs(t, err, i18n.ErrUnsupportedExtension)
}
