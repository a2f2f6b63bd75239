// Package dispatcher serves the resource a request path resolves to.
//
// Dispatch resolves the path under the public root, checks that the target
// is a readable regular file, sets the Content-Type and then either runs the
// file as a script or streams its bytes verbatim. The result is an Outcome;
// no error leaves Dispatch.
//
//	status   when
//	404      resolution failed, traversal attempt, missing or unreadable file
//	200      file streamed, or script finished without setting a status
//	xxx      status set by the script
//	500      streaming failed or the script raised an error
//
// On 404 nothing is written; ServeHTTP writes the status and hands the body
// to the optional not-found handler. A 500 status is only written while the
// header is still unsent.
//
// Script output defaults to text/html; charset=utf-8 and may be changed by
// the script until its first body write. Header changes after that point
// are dropped and logged.
package dispatcher
