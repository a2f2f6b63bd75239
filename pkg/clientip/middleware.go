package clientip

import "net/http"

// Middleware stores the client address, resolved with the default headers,
// in the request context.
func Middleware(next http.Handler) http.Handler {
	return New().Middleware(next)
}

// Middleware stores the client address resolved by res in the request context.
func (res *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), res.IP(r))))
	})
}
