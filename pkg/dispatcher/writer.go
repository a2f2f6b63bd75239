package dispatcher

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/yeoblyv/spider/pkg/logger"
)

// ResponseWriter tracks whether the header has been sent and refuses header
// changes afterwards. The status is held back until the first body write or
// an explicit WriteHeader.
type ResponseWriter struct {
	http.ResponseWriter

	ctx     context.Context
	logger  *slog.Logger
	status  int
	sent    bool
	written int64
}

// NewResponseWriter wraps w. Wrapping a *ResponseWriter returns it as is.
func NewResponseWriter(ctx context.Context, w http.ResponseWriter, log *slog.Logger) *ResponseWriter {
	if rw, ok := w.(*ResponseWriter); ok {
		return rw
	}
	if log == nil {
		log = logger.Discard()
	}
	return &ResponseWriter{ResponseWriter: w, ctx: ctx, logger: log, status: http.StatusOK}
}

func (w *ResponseWriter) HeadersSent() bool {
	return w.sent
}

// Status returns the sent status, or the pending one.
func (w *ResponseWriter) Status() int {
	return w.status
}

// Written returns the number of body bytes written.
func (w *ResponseWriter) Written() int64 {
	return w.written
}

// SetHeader sets a header unless the header was already sent, in which
// case the change is logged and dropped.
func (w *ResponseWriter) SetHeader(name, value string) bool {
	if w.sent {
		w.conflict("header", slog.String("header", name))
		return false
	}
	w.Header().Set(name, value)
	return true
}

// SetStatus records the status to send with the header.
func (w *ResponseWriter) SetStatus(code int) bool {
	if w.sent {
		w.conflict("status", logger.Status(code))
		return false
	}
	w.status = code
	return true
}

func (w *ResponseWriter) WriteHeader(code int) {
	if w.sent {
		w.conflict("status", logger.Status(code))
		return
	}
	w.sent = true
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *ResponseWriter) Write(b []byte) (int, error) {
	if !w.sent {
		w.WriteHeader(w.status)
	}
	n, err := w.ResponseWriter.Write(b)
	w.written += int64(n)
	return n, err
}

// Commit sends the pending status if nothing has been sent yet.
func (w *ResponseWriter) Commit() {
	if !w.sent {
		w.WriteHeader(w.status)
	}
}

func (w *ResponseWriter) Flush() {
	w.Commit()
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func (w *ResponseWriter) conflict(what string, attrs ...any) {
	args := append([]any{slog.String("attempt", what)}, attrs...)
	w.logger.WarnContext(w.ctx, "headers already sent", args...)
}
