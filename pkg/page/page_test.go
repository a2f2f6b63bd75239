package page_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeoblyv/spider/pkg/i18n"
	"github.com/yeoblyv/spider/pkg/page"
)

type fixedSource map[string]string

func (f fixedSource) Load(_ context.Context, code string) (*i18n.Table, error) {
	return i18n.NewTable(code, f), nil
}

func TestNotFound_Escapes(t *testing.T) {
	t.Parallel()

	html, err := page.Render(context.Background(), page.NotFound(page.NotFoundParams{
		Lang:    "en",
		Title:   "<b>Gone</b>",
		Message: `"quoted" & more`,
	}))
	require.NoError(t, err)
	assert.Contains(t, html, `<html lang="en">`)
	assert.Contains(t, html, "<h1>&lt;b&gt;Gone&lt;/b&gt;</h1>")
	assert.Contains(t, html, "&#34;quoted&#34; &amp; more")
	assert.Contains(t, html, `<title>&lt;b&gt;Gone&lt;/b&gt;</title>`)
}

func TestNotFoundHandler(t *testing.T) {
	t.Parallel()

	t.Run("english fallback", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		page.NotFoundHandler(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, rec.Body.String(), "<title>Not Found</title>")
		assert.Contains(t, rec.Body.String(), `lang="en"`)
	})

	t.Run("translated", func(t *testing.T) {
		t.Parallel()
		loader := i18n.NewLoader(fixedSource{
			page.KeyNotFoundTitle:   "Introuvable",
			page.KeyNotFoundMessage: "Cette page n'existe pas.",
		})
		_, err := loader.Switch(context.Background(), "fr")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/missing", nil)
		req = req.WithContext(i18n.WithLoader(req.Context(), loader))

		rec := httptest.NewRecorder()
		page.NotFoundHandler(nil).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "<h1>Introuvable</h1>")
		assert.Contains(t, rec.Body.String(), "Cette page n&#39;existe pas.")
		assert.Contains(t, rec.Body.String(), `lang="fr"`)
	})

	t.Run("custom component", func(t *testing.T) {
		t.Parallel()
		var got page.NotFoundParams
		h := page.NotFoundHandler(func(p page.NotFoundParams) templ.Component {
			got = p
			return page.NotFound(p)
		})

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, page.NotFoundParams{
			Lang:    "en",
			Title:   "Not Found",
			Message: "The requested resource could not be found.",
		}, got)
	})
}
