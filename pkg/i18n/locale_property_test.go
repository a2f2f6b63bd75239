//go:build property

package i18n_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/yeoblyv/spider/pkg/i18n"
)

func TestLocaleResolverProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(7)
	parameters.MinSuccessfulTests = 300

	properties := gopter.NewProperties(parameters)

	available := staticLangs{"en", "fr", "pt-BR"}
	res := i18n.NewLocaleResolver(available, nil, i18n.WithDefaultLanguage("en"))

	candidate := gen.OneConstOf("", "en", "fr", "de", "pt-BR", "../en", `..\fr`, "en/../fr", " fr ", "xx-invalid-tag-value")

	properties.Property("selected language is available or the default", prop.ForAll(
		func(query, stored string) bool {
			rec := httptest.NewRecorder()
			sel := res.Select(rec, request(query, stored))
			return sel.Lang == "en" || slices.Contains(available, sel.Lang)
		},
		candidate, candidate,
	))

	properties.Property("a valid override always wins", prop.ForAll(
		func(query, stored string) bool {
			sel := res.Select(httptest.NewRecorder(), request(query, stored))
			return sel.Lang == query && sel.Source == i18n.SourceQuery
		},
		gen.OneConstOf("en", "fr", "pt-BR"), candidate,
	))

	properties.Property("a written preference always names the selected language", prop.ForAll(
		func(query, stored string) bool {
			rec := httptest.NewRecorder()
			sel := res.Select(rec, request(query, stored))
			c, ok := langCookie(rec)
			if !ok {
				return !sel.Persisted
			}
			return sel.Persisted && c.Value == sel.Lang
		},
		candidate, candidate,
	))

	properties.TestingRun(t)
}

func request(query, stored string) *http.Request {
	target := "/"
	if query != "" {
		target += "?lang=" + url.QueryEscape(query)
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if stored != "" {
		req.AddCookie(&http.Cookie{Name: "lang", Value: url.QueryEscape(stored)})
	}
	return req
}
