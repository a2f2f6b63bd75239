// Package reqctx carries per-request state: the time the request started
// and a small key/value bag shared between the handler chain and scripts.
//
//	r.Use(reqctx.Middleware)
//
//	st := reqctx.FromContext(r.Context())
//	st.Set("title", "Home")
//	v, ok := st.Get("title")
//	secs := st.LoadTime() // seconds, rounded to 4 decimals
package reqctx
