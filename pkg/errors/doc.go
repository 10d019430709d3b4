// Package errors provides structured error types shared across the service.
//
// Every failure that can cross the HTTP boundary carries an ErrorCode so the
// endpoint layer can map it to a status without inspecting error strings.
// The Message field is always safe to return to clients; the Cause is for
// logs only.
package errors
