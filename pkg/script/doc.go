// Package script runs dynamic resources written in Lua.
//
// Each Run gets a fresh virtual machine; nothing a script does survives the
// request. Compiled chunks are cached per file and revalidated against the
// file's modification time and size.
//
// Scripts see the following globals:
//
//	echo(...)                    write the arguments to the response body
//	print(...)                   same, tab separated and newline terminated
//	header(name, value)          set a response header; false once output started
//	status(code)                 set the response status; false once output started
//	redirect(url [, code])       Location header plus 302 (or code)
//	request                      id, ip, method, path, uri, host, query_string, query,
//	                             param(name), header(name)
//	t(key [, fallback])          translation of key, fallback or nil when absent
//	lang()                       active language code
//	set_translation(key, value)  override a translation for this request
//	load_language(code)          replace the active translation table
//	values.get(key)              request-scoped value, nil when absent
//	values.set(key, value)       store a request-scoped value; nil deletes
//	spider.version()             application version
//	spider.core_hash([n])        first n characters of the core hash
//	spider.load_time()           seconds since the request started
//	spider.root_link()           scheme://host of the request
//	spider.random_string([n [, charset]])
//	import(identifier)           run a plugin once and return its result
//	db.query/exec/insert/update/delete   only when a database is configured
//
// Only the base, package, table, string, math and coroutine libraries are
// opened.
package script
