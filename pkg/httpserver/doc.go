// Package httpserver runs the HTTP listener in front of the dispatcher.
//
// Server wraps http.Server with graceful shutdown and slog logging. Run
// binds the listener, invokes start hooks, then blocks until the context is
// cancelled, SIGINT or SIGTERM arrives, or Shutdown is called. Shutdown is
// bounded by the configured timeout and runs stop hooks exactly once.
//
// Construction uses functional options (WithAddr, WithReadTimeout,
// WithShutdownTimeout, WithLogger and friends) or NewFromConfig with a
// Config parsed from HTTP_* environment variables.
//
// LivenessHandler and ReadinessHandler back the /healthz and /readyz probes;
// readiness runs named Check functions such as a database ping.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, app.Handler()); err != nil {
//		return err
//	}
//
// Run wraps listen failures with ErrStart and Shutdown wraps failures with
// ErrShutdown.
package httpserver
