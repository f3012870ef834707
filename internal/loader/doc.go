// Package loader fetches the menu and today's specials from the cafe backend.
//
// Both requests are issued concurrently and the load settles only after both
// have completed. Every failure, whether a non-success status, a transport
// error, or a malformed body, is folded into Result.Err; Load never panics and
// never returns a Go error to its caller.
package loader
