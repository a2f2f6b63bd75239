// Package plugins maps namespaced plugin identifiers to script files under
// a restricted plugins directory.
//
// Both `Vendor\Name` and `vendor.name` resolve to <dir>/Vendor/Name.lua and
// <dir>/vendor/name.lua respectively. Identifiers containing "..", "/", a
// leading backslash or an empty segment are rejected before any filesystem
// access.
package plugins
