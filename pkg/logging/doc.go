// Package logging wraps log/slog with service-wide defaults: structured
// output to stderr (JSON by default, text for local development), a module
// and version attribute on every record, and automatic request_id injection
// for any log call made with a request-scoped context.
//
// Set the default logger once in main:
//
//	logging.SetDefaultStructuredLogger("birthdayd", version, "info", "json")
//
// Then use slog as normal; records emitted inside a request carry its
// correlation token without the call sites knowing about it:
//
//	slog.InfoContext(ctx, "birthday stored", "username", u)
package logging
