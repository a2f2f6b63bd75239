// Package resolver turns request URIs into files inside a public root.
//
// Resolution strips the query string and fragment, rejects any path that
// tries to climb out of the root, and applies the directory index fallback:
// a directory or an extension-less path resolves to the index file inside it.
// The returned Resource reports whether the target is a dynamic script
// (its extension matches the configured script extension).
//
//	res, err := resolver.New("/srv/public")
//	r, err := res.Resolve("/docs/?page=2")
//	// r.Path == "/srv/public/docs/index.lua", r.IsIndexFallback == true
//
// Errors wrap ErrNotFound so callers can treat every failure as a missing
// resource; ErrTraversal additionally marks security relevant requests.
package resolver
