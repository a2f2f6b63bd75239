// Package i18n selects the active language of a request and loads its
// translation table.
//
// # Translation files
//
// A Store reads one file per language from a single directory. The base
// name is the language code and the extension picks the format:
//
//	vocabulary/
//	  en.json   {"nav": {"home": "Home"}}       -> nav.home = Home
//	  fr.lang   nav.home = Accueil
//	  de.spl    reserved, always loads empty
//
// Languages lists the codes backed by a .json or .lang file. Load looks for
// <code>.json, then <code>.lang, then <code>.spl and parses the first file
// that exists with the parser for its extension. A file that fails to parse
// loads as an empty table; content is never reinterpreted as another
// format. A code without any file also loads as an empty table.
//
// Parsed files are cached and revalidated against their modification time
// and size, so edits show up on the next load without a restart.
//
// # Tables
//
// Load returns a *Table the caller owns. Set changes only that copy:
//
//	tbl, _ := store.Load(ctx, "en")
//	tbl.Set("greeting", "hi")
//	v, ok := tbl.Get("greeting") // "hi", true
//	_, ok = tbl.Get("missing")   // "", false
//
// # Choosing a language
//
// LocaleResolver picks the language of a request in fixed order: the "lang"
// query parameter, then the "lang" cookie, then the configured default.
// Only codes returned by Store.Languages are accepted. An accepted query
// override and the default are written back to the cookie; a valid cookie
// is left alone.
//
// Middleware runs the resolver once per request and stores the code and a
// Loader holding the loaded table in the request context:
//
//	r.Use(i18n.Middleware(resolver, store))
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		lang := i18n.GetLocale(r.Context())
//		title, _ := i18n.TableFromContext(r.Context()).Get("page.title")
//	}
package i18n
