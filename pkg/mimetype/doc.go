// Package mimetype maps file extensions to content types.
//
// The table is defined in mimetypes.yaml, embedded in the binary and parsed
// on first use. After that it is immutable and safe for concurrent readers.
// Extensions are matched case-insensitively, with or without a leading dot.
// Anything missing from the table resolves to the table's "default" entry
// (application/octet-stream).
//
//	reg := mimetype.New()
//	reg.Lookup("css")  // "text/css"
//	reg.Lookup(".PNG") // "image/png"
//	reg.Lookup("")     // "application/octet-stream"
package mimetype
