// Package server implements a reusable HTTP server with the request
// middleware pipeline used by the birthday API.
//
// # Architecture
//
// Route handlers are mounted behind an ordered stack of stages, outermost
// first:
//
//   - Request-id: assigns a random 64-bit decimal token when the caller did
//     not supply one via X-Request-Id, echoes it on the response, and scopes
//     it to the request's logging context
//   - Logging: request start/completion records with status and latency
//   - Metrics: Prometheus counter, histogram, and in-flight gauge per request
//   - Rate limiting: process-wide token bucket (golang.org/x/time/rate)
//   - Timeout: aborts inner stages after the configured bound and answers
//     with a structured 504
//   - Panic recovery: converts panics to 500s without killing the process
//
// System endpoints (/health, /metrics) bypass the pipeline and are also
// served on a separate listener so the operational surface does not have to
// be exposed with the API port.
//
// # Usage
//
//	s := server.New(
//	    server.WithName("birthdayd"),
//	    server.WithVersion(version),
//	    server.WithHandler(routes),
//	)
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//	if err := s.Run(ctx); err != nil {
//	    // fatal startup or serve error
//	}
//
// Run blocks until the context is cancelled; on cancellation both listeners
// stop accepting connections and in-flight requests drain within the
// shutdown bound.
package server
