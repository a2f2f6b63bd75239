package spider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/yeoblyv/spider/pkg/clientip"
	"github.com/yeoblyv/spider/pkg/components"
	"github.com/yeoblyv/spider/pkg/config"
	"github.com/yeoblyv/spider/pkg/cookie"
	"github.com/yeoblyv/spider/pkg/db"
	"github.com/yeoblyv/spider/pkg/dispatcher"
	"github.com/yeoblyv/spider/pkg/httpserver"
	"github.com/yeoblyv/spider/pkg/i18n"
	"github.com/yeoblyv/spider/pkg/logger"
	"github.com/yeoblyv/spider/pkg/mimetype"
	"github.com/yeoblyv/spider/pkg/page"
	"github.com/yeoblyv/spider/pkg/plugins"
	"github.com/yeoblyv/spider/pkg/reqctx"
	"github.com/yeoblyv/spider/pkg/requestid"
	"github.com/yeoblyv/spider/pkg/resolver"
	"github.com/yeoblyv/spider/pkg/script"
)

// Version is the front controller release.
const Version = "1.0.0"

// App holds every collaborator needed to serve requests. It replaces
// process-wide state: each App is independent and safe for concurrent use.
type App struct {
	cfg        config.Config
	logger     *slog.Logger
	mime       *mimetype.Registry
	resolver   *resolver.Resolver
	store      *i18n.Store
	locale     *i18n.LocaleResolver
	cookies    *cookie.Manager
	plugins    *plugins.Loader
	components *components.Registry
	engine     *script.Engine
	db         *db.DB
	ownsDB     bool
	clientIP   *clientip.Resolver
	dispatcher *dispatcher.Dispatcher
}

type options struct {
	logger        *slog.Logger
	db            *db.DB
	mimeData      []byte
	ipHeaders     []string
	ipHeadersSet  bool
	notFound      http.Handler
	notFoundPage  func(page.NotFoundParams) templ.Component
	skipDBConnect bool
}

// Option configures New.
type Option func(*options)

// WithLogger sets the application logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithDB uses an already opened database instead of opening cfg.DB.
// The caller keeps ownership and must close it.
func WithDB(conn *db.DB) Option {
	return func(o *options) { o.db = conn }
}

// WithoutDB ignores cfg.DB even when a DSN is configured.
func WithoutDB() Option {
	return func(o *options) { o.skipDBConnect = true }
}

// WithMimeDefinition replaces the embedded content-type table.
func WithMimeDefinition(data []byte) Option {
	return func(o *options) { o.mimeData = data }
}

// WithClientIPHeaders sets the proxy headers trusted for the client address.
func WithClientIPHeaders(headers ...string) Option {
	return func(o *options) {
		o.ipHeaders = headers
		o.ipHeadersSet = true
	}
}

// WithNotFoundHandler replaces the translated not-found page.
func WithNotFoundHandler(h http.Handler) Option {
	return func(o *options) { o.notFound = h }
}

// WithNotFoundPage keeps the translated not-found handler but renders it
// with the given component.
func WithNotFoundPage(render func(page.NotFoundParams) templ.Component) Option {
	return func(o *options) { o.notFoundPage = render }
}

// New wires the application from cfg. A database is opened only when
// cfg.DB has a DSN and no WithDB or WithoutDB option is given.
func New(ctx context.Context, cfg config.Config, opts ...Option) (*App, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	log := o.logger
	if log == nil {
		log = NewLogger(cfg)
	}

	a := &App{cfg: cfg, logger: log}

	var mimeOpts = []mimetype.Option{mimetype.WithLogger(log)}
	if o.mimeData != nil {
		mimeOpts = append(mimeOpts, mimetype.WithDefinition(o.mimeData))
	}
	a.mime = mimetype.New(mimeOpts...)

	res, err := resolver.New(cfg.PublicDir(),
		resolver.WithIndexFile(cfg.Public.IndexFile),
		resolver.WithDynamicExt(cfg.Public.DynamicExt),
	)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	a.resolver = res

	cookies, err := cookie.NewFromConfig(cfg.Cookie)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	a.cookies = cookies

	a.store = i18n.NewStore(cfg.TranslationsDir(),
		i18n.WithStoreLogger(log),
		i18n.WithCacheSize(cfg.Locale.CacheSize),
	)
	a.locale = i18n.NewLocaleResolver(a.store, cookies,
		i18n.WithDefaultLanguage(cfg.Locale.Default),
		i18n.WithQueryParamName(cfg.Locale.QueryParam),
		i18n.WithCookieName(cfg.Locale.CookieName),
		i18n.WithPreferenceMaxAge(cfg.Locale.CookieMaxAge),
		i18n.WithLogger(log),
	)

	a.plugins = plugins.New(cfg.PluginsDir(), plugins.WithLogger(log))

	switch {
	case o.db != nil:
		a.db = o.db
	case cfg.DB.Enabled() && !o.skipDBConnect:
		conn, err := db.Open(ctx, cfg.DB, db.WithLogger(log))
		if err != nil {
			return nil, err
		}
		a.db = conn
		a.ownsDB = true
	}

	a.components = components.New(
		components.Component{Name: "spider", Version: Version},
		components.Component{Name: "mimetypes", Version: a.mime.Version()},
		components.Component{Name: "dispatcher", Version: dispatcher.Version},
		components.Component{Name: "i18n", Version: i18n.Version},
		components.Component{Name: "script", Version: script.Version},
	)
	if a.db != nil {
		a.components.Register("db", db.Version)
	}

	engineOpts := []script.Option{
		script.WithLogger(log),
		script.WithPlugins(a.plugins),
		script.WithComponents(a.components),
		script.WithVersion(Version),
	}
	if a.db != nil {
		engineOpts = append(engineOpts, script.WithDB(a.db))
	}
	a.engine = script.New(engineOpts...)

	if o.ipHeadersSet {
		a.clientIP = clientip.New(clientip.WithHeaders(o.ipHeaders...))
	} else {
		a.clientIP = clientip.New()
	}

	notFound := o.notFound
	if notFound == nil {
		notFound = page.NotFoundHandler(o.notFoundPage)
	}
	a.dispatcher = dispatcher.New(a.resolver, a.mime,
		dispatcher.WithLogger(log),
		dispatcher.WithScriptRunner(a.engine),
		dispatcher.WithNotFoundHandler(notFound),
		dispatcher.WithSniffing(cfg.Public.Sniff),
	)

	log.InfoContext(ctx, "spider initialized",
		slog.String("public", a.resolver.Root()),
		slog.String("translations", a.store.Dir()),
		slog.String("plugins", a.plugins.Dir()),
		slog.Bool("db", a.db != nil),
		slog.String("core_hash", a.components.CoreHash(components.DefaultHashLength)),
	)
	return a, nil
}

// Handler returns the HTTP entry point: request id, client address,
// request state, access log and language resolution in front of the
// dispatcher, plus /healthz and /readyz probes.
func (a *App) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer,
		requestid.Middleware,
		a.clientIP.Middleware,
		reqctx.Middleware,
		a.accessLog,
	)

	r.Get("/healthz", httpserver.LivenessHandler())
	r.Get("/readyz", httpserver.ReadinessHandler(a.logger, a.readinessChecks()...))

	r.Group(func(r chi.Router) {
		r.Use(i18n.Middleware(a.locale, a.store))
		r.Handle("/*", a.dispatcher)
	})
	return r
}

func (a *App) readinessChecks() []httpserver.Check {
	checks := []httpserver.Check{{
		Name: "public",
		Fn: func(context.Context) error {
			info, err := os.Stat(a.resolver.Root())
			if err != nil {
				return err
			}
			if !info.IsDir() {
				return fmt.Errorf("%s is not a directory", a.resolver.Root())
			}
			return nil
		},
	}}
	if a.db != nil {
		checks = append(checks, httpserver.Check{Name: "db", Fn: db.Healthcheck(a.db)})
	}
	return checks
}

func (a *App) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		a.logger.LogAttrs(r.Context(), level, "request",
			slog.String("method", r.Method),
			logger.Path(r.URL.RequestURI()),
			logger.Status(status),
			slog.Int("bytes", ww.BytesWritten()),
			logger.Duration(time.Since(start)),
		)
	})
}

// Close releases the database opened by New.
func (a *App) Close() error {
	if a.db == nil || !a.ownsDB {
		return nil
	}
	if err := a.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

func (a *App) Config() config.Config { return a.cfg }
func (a *App) Logger() *slog.Logger { return a.logger }
func (a *App) MimeTypes() *mimetype.Registry { return a.mime }
func (a *App) Resolver() *resolver.Resolver { return a.resolver }
func (a *App) Translations() *i18n.Store { return a.store }
func (a *App) Locale() *i18n.LocaleResolver { return a.locale }
func (a *App) Components() *components.Registry { return a.components }
func (a *App) Dispatcher() *dispatcher.Dispatcher { return a.dispatcher }
func (a *App) DB() *db.DB { return a.db }
