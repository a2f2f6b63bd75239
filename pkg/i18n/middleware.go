package i18n

import (
	"net/http"
)

// Middleware resolves the request language once, loads its table and
// stores both in the request context.
func Middleware(resolver *LocaleResolver, source TableLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := resolver.Resolve(w, r)

			ctx := SetLocale(r.Context(), lang)
			loader := NewLoader(source)
			// Load failures still leave an empty table; they are logged by the store.
			_, _ = loader.Switch(ctx, lang)

			next.ServeHTTP(w, r.WithContext(WithLoader(ctx, loader)))
		})
	}
}
