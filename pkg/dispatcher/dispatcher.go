package dispatcher

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/yeoblyv/spider/pkg/logger"
	"github.com/yeoblyv/spider/pkg/mimetype"
	"github.com/yeoblyv/spider/pkg/resolver"
	"github.com/yeoblyv/spider/pkg/script"
)

// Version identifies the dispatcher in the component registry.
const Version = "1.0.0"

// DynamicContentType is sent for scripts unless they set their own.
const DynamicContentType = "text/html; charset=utf-8"

// sniffLen is the number of bytes read for content sniffing.
const sniffLen = 262

// Outcome is the observable result of one dispatch.
type Outcome struct {
	Status      int
	ContentType string
	// Index is true when a dynamic resource was executed.
	Index bool
}

// Dispatcher serves files under the resolver's public root.
type Dispatcher struct {
	resolver *resolver.Resolver
	registry *mimetype.Registry
	runner   script.Runner
	notFound http.Handler
	sniff    bool
	logger   *slog.Logger
}

type Option func(*Dispatcher)

func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithScriptRunner sets the runner for dynamic resources.
func WithScriptRunner(r script.Runner) Option {
	return func(d *Dispatcher) {
		d.runner = r
	}
}

// WithNotFoundHandler renders the body of 404 responses in ServeHTTP.
func WithNotFoundHandler(h http.Handler) Option {
	return func(d *Dispatcher) {
		d.notFound = h
	}
}

// WithSniffing enables magic-byte detection for extensions the registry
// does not know.
func WithSniffing(enabled bool) Option {
	return func(d *Dispatcher) {
		d.sniff = enabled
	}
}

func New(res *resolver.Resolver, reg *mimetype.Registry, opts ...Option) *Dispatcher {
	if reg == nil {
		reg = mimetype.New()
	}
	d := &Dispatcher{
		resolver: res,
		registry: reg,
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ServeHTTP dispatches r. A 404 outcome with nothing sent yet gets its
// status written here and its body from the not-found handler, if one is
// set. A script that answered 404 itself keeps its own response.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(r.Context(), w, d.logger)
	out := d.Dispatch(rw, r)
	if out.Status != http.StatusNotFound || rw.HeadersSent() {
		return
	}
	if d.notFound != nil {
		d.notFound.ServeHTTP(rw, r)
		return
	}
	rw.WriteHeader(http.StatusNotFound)
}

// Dispatch serves the resource for r.URL and reports the outcome.
func (d *Dispatcher) Dispatch(w http.ResponseWriter, r *http.Request) Outcome {
	ctx := r.Context()
	reqPath := r.URL.EscapedPath()

	res, err := d.resolver.Resolve(reqPath)
	if err != nil {
		if errors.Is(err, resolver.ErrTraversal) || errors.Is(err, resolver.ErrOutsideRoot) {
			d.logger.WarnContext(ctx, "path traversal attempt",
				logger.Path(reqPath),
				logger.Security(),
				logger.Error(err),
			)
		} else {
			d.logger.DebugContext(ctx, "resource not resolved",
				logger.Path(reqPath),
				logger.Error(err),
			)
		}
		return Outcome{Status: http.StatusNotFound}
	}

	file, err := openRegular(res.Path)
	if err != nil {
		d.logger.DebugContext(ctx, "resource not found",
			logger.Path(reqPath),
			logger.File(d.resolver.Rel(res.Path)),
			logger.Error(err),
		)
		return Outcome{Status: http.StatusNotFound}
	}
	defer file.Close()

	rw := NewResponseWriter(ctx, w, d.logger)
	contentType := d.contentType(res, file)
	rw.SetHeader("Content-Type", contentType)

	if res.IsDynamic {
		return d.runScript(rw, r, res, contentType)
	}

	if _, err := io.Copy(rw, file); err != nil {
		d.logger.ErrorContext(ctx, "failed to stream resource",
			logger.File(d.resolver.Rel(res.Path)),
			logger.Error(errors.Join(ErrStreamFailed, err)),
		)
		return d.fail(rw, contentType, false)
	}
	rw.Commit()
	return Outcome{Status: rw.Status(), ContentType: contentType}
}

func (d *Dispatcher) runScript(rw *ResponseWriter, r *http.Request, res resolver.Resource, contentType string) Outcome {
	ctx := r.Context()
	if d.runner == nil {
		d.logger.ErrorContext(ctx, "cannot run dynamic resource",
			logger.File(d.resolver.Rel(res.Path)),
			logger.Error(ErrNoRunner),
		)
		return d.fail(rw, contentType, true)
	}

	if err := d.runner.Run(ctx, rw, r, res.Path); err != nil {
		d.logger.ErrorContext(ctx, "script failed",
			logger.File(d.resolver.Rel(res.Path)),
			logger.Error(err),
		)
		return d.fail(rw, contentType, true)
	}

	rw.Commit()
	if ct := rw.Header().Get("Content-Type"); ct != "" {
		contentType = ct
	}
	return Outcome{Status: rw.Status(), ContentType: contentType, Index: true}
}

// fail writes a 500 status if the header is still unsent.
func (d *Dispatcher) fail(rw *ResponseWriter, contentType string, index bool) Outcome {
	if !rw.HeadersSent() {
		rw.WriteHeader(http.StatusInternalServerError)
	}
	return Outcome{Status: http.StatusInternalServerError, ContentType: contentType, Index: index}
}

func (d *Dispatcher) contentType(res resolver.Resource, file io.ReadSeeker) string {
	if res.IsDynamic {
		return DynamicContentType
	}
	ct := d.registry.Lookup(res.Ext)
	if !d.sniff || d.registry.Has(res.Ext) {
		return ct
	}

	head := make([]byte, sniffLen)
	n, _ := io.ReadFull(file, head)
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return ct
	}
	if sniffed, ok := d.registry.Sniff(head[:n]); ok {
		return sniffed
	}
	return ct
}

// openRegular opens p if it is a regular file.
func openRegular(p string) (*os.File, error) {
	fi, err := os.Stat(p)
	if err != nil {
		return nil, errors.Join(ErrNotAccessible, err)
	}
	if !fi.Mode().IsRegular() {
		return nil, ErrNotAccessible
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, errors.Join(ErrNotAccessible, err)
	}
	return f, nil
}
