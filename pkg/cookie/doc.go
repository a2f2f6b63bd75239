// Package cookie manages the client-side values spider persists between
// requests, most notably the language preference.
//
// A Manager carries default cookie attributes (path, domain, max age, secure,
// http-only, same-site) and, optionally, one or more secrets. Without secrets
// SetValue and Value read and write plain cookies. With secrets they sign the
// value with HMAC-SHA256 and reject tampered cookies; the first secret signs,
// every secret verifies, which allows rotation.
//
//	man, err := cookie.New(cookie.WithMaxAge(10 * 365 * 24 * 3600))
//	_ = man.SetValue(w, "lang", "fr")
//	code, err := man.Value(r, "lang")
//
// Config carries the same settings as environment variables for
// github.com/caarlos0/env.
package cookie
