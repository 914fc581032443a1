// Package logging wraps zerolog behind a small structured-logging interface
// shared by the worker, the dispatcher and the HTTP server. It also owns the
// process-wide zerolog configuration selected with --log-level.
package logging
