// Package requestid tags every request with a correlation ID.
//
// The middleware reuses a well-formed incoming X-Request-ID header (letters,
// digits, '-' and '_', at most 128 characters) or generates a UUIDv4 with
// github.com/google/uuid. The ID is stored in the request context and echoed
// in the response.
//
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//
// FromContext returns the ID for handlers and scripts; LoggerExtractor adds
// it to every log record written with the request context.
package requestid
