// Package page renders the pages spider produces itself, currently the
// not-found page. Components live in .templ files; run `templ generate`
// after editing them.
package page

import (
	"context"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"github.com/yeoblyv/spider/pkg/i18n"
)

// Translation keys read by NotFoundHandler.
const (
	KeyNotFoundTitle   = "page.not_found.title"
	KeyNotFoundMessage = "page.not_found.message"
)

const (
	defaultNotFoundTitle   = "Not Found"
	defaultNotFoundMessage = "The requested resource could not be found."
)

// NotFoundParams is the data of a not-found page.
type NotFoundParams struct {
	Lang    string
	Title   string
	Message string
}

// NotFoundHandler writes a 404 rendered by render in the request language,
// falling back to English text for missing keys. A nil render uses
// NotFound.
func NotFoundHandler(render func(NotFoundParams) templ.Component) http.Handler {
	if render == nil {
		render = NotFound
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tbl := i18n.TableFromContext(ctx)

		lang := tbl.Lang()
		if lang == "" {
			lang = i18n.GetLocale(ctx)
		}
		c := render(NotFoundParams{
			Lang:    lang,
			Title:   lookup(tbl, KeyNotFoundTitle, defaultNotFoundTitle),
			Message: lookup(tbl, KeyNotFoundMessage, defaultNotFoundMessage),
		})
		templ.Handler(c, templ.WithStatus(http.StatusNotFound)).ServeHTTP(w, r)
	})
}

func lookup(tbl *i18n.Table, key, fallback string) string {
	if v, ok := tbl.Get(key); ok && v != "" {
		return v
	}
	return fallback
}

// Render renders c to a string.
func Render(ctx context.Context, c templ.Component) (string, error) {
	var sb strings.Builder
	if err := c.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
