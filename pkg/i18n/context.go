package i18n

import (
	"context"
	"log/slog"
)

type (
	localeContextKey struct{}
	loaderContextKey struct{}
)

// SetLocale stores the request language in ctx.
func SetLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeContextKey{}, locale)
}

// GetLocale returns the request language, or DefaultLanguage when unset.
func GetLocale(ctx context.Context) string {
	locale, _ := ctx.Value(localeContextKey{}).(string)
	if locale == "" {
		return DefaultLanguage
	}
	return locale
}

// WithLoader stores the request's Loader in ctx.
func WithLoader(ctx context.Context, l *Loader) context.Context {
	return context.WithValue(ctx, loaderContextKey{}, l)
}

// LoaderFromContext returns the request's Loader, if any.
func LoaderFromContext(ctx context.Context) (*Loader, bool) {
	l, ok := ctx.Value(loaderContextKey{}).(*Loader)
	return l, ok && l != nil
}

// TableFromContext returns the active table of the request. Without a
// Loader it returns an empty table so lookups report absence.
func TableFromContext(ctx context.Context) *Table {
	if l, ok := LoaderFromContext(ctx); ok {
		return l.Table()
	}
	return NewTable("", nil)
}

// LoggerExtractor adds the request language to log records.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if locale, ok := ctx.Value(localeContextKey{}).(string); ok && locale != "" {
			return slog.String("lang", locale), true
		}
		return slog.Attr{}, false
	}
}
