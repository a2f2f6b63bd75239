package i18n

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"

	"github.com/yeoblyv/spider/pkg/cookie"
	"github.com/yeoblyv/spider/pkg/logger"
)

const (
	// DefaultLanguage is used when no default is configured.
	DefaultLanguage = "en"
	// DefaultParamName is the query parameter and cookie name carrying the language.
	DefaultParamName = "lang"
	// DefaultPreferenceMaxAge keeps the preference cookie for ten years.
	DefaultPreferenceMaxAge = 10 * 365 * 24 * 60 * 60
)

// Source tells which rule selected the language.
type Source string

const (
	SourceQuery   Source = "query"
	SourceCookie  Source = "cookie"
	SourceDefault Source = "default"
)

// Selection is the result of a resolution.
type Selection struct {
	Lang      string
	Source    Source
	Persisted bool
}

// LanguageLister reports the languages that have translation data.
type LanguageLister interface {
	Languages(ctx context.Context) []string
}

// LocaleResolver selects the language of a request and persists the choice
// in a cookie.
type LocaleResolver struct {
	langs       LanguageLister
	cookies     *cookie.Manager
	defaultLang string
	queryParam  string
	cookieName  string
	maxAge      int
	logger      *slog.Logger
}

// LocaleOption configures a LocaleResolver.
type LocaleOption func(*LocaleResolver)

func WithDefaultLanguage(code string) LocaleOption {
	return func(l *LocaleResolver) {
		if c, ok := NormalizeCode(code); ok {
			l.defaultLang = c
		}
	}
}

func WithQueryParamName(name string) LocaleOption {
	return func(l *LocaleResolver) {
		if name != "" {
			l.queryParam = name
		}
	}
}

func WithCookieName(name string) LocaleOption {
	return func(l *LocaleResolver) {
		if name != "" {
			l.cookieName = name
		}
	}
}

// WithPreferenceMaxAge sets the cookie lifetime in seconds.
func WithPreferenceMaxAge(seconds int) LocaleOption {
	return func(l *LocaleResolver) {
		if seconds > 0 {
			l.maxAge = seconds
		}
	}
}

func WithLogger(log *slog.Logger) LocaleOption {
	return func(l *LocaleResolver) {
		if log != nil {
			l.logger = log
		}
	}
}

// NewLocaleResolver returns a resolver validating against langs. A nil
// cookie manager gets a plain, unsigned one.
func NewLocaleResolver(langs LanguageLister, cookies *cookie.Manager, opts ...LocaleOption) *LocaleResolver {
	if cookies == nil {
		cookies, _ = cookie.New()
	}
	l := &LocaleResolver{
		langs:       langs,
		cookies:     cookies,
		defaultLang: DefaultLanguage,
		queryParam:  DefaultParamName,
		cookieName:  DefaultParamName,
		maxAge:      DefaultPreferenceMaxAge,
		logger:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// DefaultLang returns the configured default language.
func (l *LocaleResolver) DefaultLang() string {
	return l.defaultLang
}

// Resolve returns the language code for r, writing the preference cookie
// to w when needed.
func (l *LocaleResolver) Resolve(w http.ResponseWriter, r *http.Request) string {
	return l.Select(w, r).Lang
}

// Select is Resolve with the deciding rule reported.
//
// Available languages are listed afresh on every call.
func (l *LocaleResolver) Select(w http.ResponseWriter, r *http.Request) Selection {
	ctx := r.Context()
	available := l.langs.Languages(ctx)
	stored, hasStored := l.storedPreference(r)

	if raw := r.URL.Query().Get(l.queryParam); raw != "" {
		if code, ok := l.candidate(ctx, raw, available, SourceQuery); ok {
			sel := Selection{Lang: code, Source: SourceQuery}
			if !hasStored || stored != code {
				sel.Persisted = l.persist(ctx, w, code)
			}
			return sel
		}
	}

	if hasStored {
		if code, ok := l.candidate(ctx, stored, available, SourceCookie); ok {
			return Selection{Lang: code, Source: SourceCookie}
		}
	}

	sel := Selection{Lang: l.defaultLang, Source: SourceDefault}
	if !hasStored || stored != l.defaultLang {
		sel.Persisted = l.persist(ctx, w, l.defaultLang)
	}
	return sel
}

// candidate validates raw and checks it against available.
func (l *LocaleResolver) candidate(ctx context.Context, raw string, available []string, src Source) (string, bool) {
	code, ok := NormalizeCode(raw)
	if !ok {
		l.logger.WarnContext(ctx, "rejected malformed language code",
			slog.String("source", string(src)),
			logger.Security(),
			logger.Error(ErrInvalidLanguage),
		)
		return "", false
	}
	if !slices.Contains(available, code) {
		l.logger.DebugContext(ctx, "language not available",
			slog.String("source", string(src)),
			logger.Lang(code),
		)
		return "", false
	}
	return code, true
}

func (l *LocaleResolver) storedPreference(r *http.Request) (string, bool) {
	v, err := l.cookies.Value(r, l.cookieName)
	if err != nil {
		if !errors.Is(err, cookie.ErrCookieNotFound) {
			l.logger.WarnContext(r.Context(), "ignoring language cookie",
				logger.Security(),
				logger.Error(err),
			)
		}
		return "", false
	}
	return v, v != ""
}

func (l *LocaleResolver) persist(ctx context.Context, w http.ResponseWriter, code string) bool {
	if err := l.cookies.SetValue(w, l.cookieName, code,
		cookie.WithMaxAge(l.maxAge),
		cookie.WithPath("/"),
	); err != nil {
		l.logger.ErrorContext(ctx, "failed to persist language preference",
			logger.Lang(code),
			logger.Error(err),
		)
		return false
	}
	return true
}
