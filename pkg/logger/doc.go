// Package logger builds the structured slog loggers used across spider.
//
// A single factory, New, returns a *slog.Logger configured with functional
// options: output format (text or json), minimum level, static attributes
// and ContextExtractor callbacks. Extractors run on every record, so values
// that live in the request context (request id, active language) end up in
// the log line without threading them through every call site.
//
//	log := logger.New(
//		logger.WithEnvironment("development", "spider"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "dispatched", logger.Path("/"), logger.Status(200))
//
// Components that accept a logger fall back to Discard when none is given.
package logger
