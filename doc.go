// Package spider is a front controller for a directory of static files and
// Lua scripts.
//
// An App resolves each request path under the public directory, serves
// static files with a content type from the extension table, runs scripts
// through the Lua runtime, and selects the visitor's language from the query
// string, a preference cookie or the default.
//
//	var cfg config.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
//	app, err := spider.New(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer app.Close()
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(app.Logger()))
//	return srv.Run(ctx, app.Handler())
//
// Handler mounts /healthz and /readyz ahead of the dispatcher; every other
// path is served from the public directory.
package spider
