// Package clientip determines the address of the client behind a request.
//
// A Resolver checks a configurable list of proxy headers (CF-Connecting-IP,
// X-Forwarded-For and X-Real-IP by default) before falling back to the
// connection's remote address. Values are validated with net.ParseIP and
// returned in canonical form; X-Forwarded-For yields its first valid entry.
//
// Only trust proxy headers set by infrastructure you control. Deployments
// exposed directly to clients should use New(WithHeaders()) so that only the
// remote address is considered.
//
//	res := clientip.New(clientip.WithHeaders("X-Real-IP"))
//	r.Use(res.Middleware)
//
//	ip := clientip.FromContext(r.Context())
//
// LoggerExtractor adds the address to log records as client_ip.
package clientip
