package server

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/birthdaysvc/birthdayd/pkg/logging"
	"github.com/birthdaysvc/birthdayd/pkg/serializers"
)

// RequestIDHeader carries the per-request correlation token on requests and
// responses.
const RequestIDHeader = "X-Request-Id"

// withMiddleware wraps a route handler with the full pipeline. Order is
// outermost first: the request id must exist before anything logs, the
// metrics stages must observe the status the timeout stage decides on, and
// panic recovery sits inside metrics so recovered panics are counted as 500s.
func (s *Server) withMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	return s.requestIDMiddleware(
		s.loggingMiddleware(
			s.metricsMiddleware(
				s.rateLimitMiddleware(
					s.timeoutMiddleware(
						s.panicRecoveryMiddleware(handler),
					),
				),
			),
		),
	)
}

// Middleware implementations

// requestIDMiddleware assigns or propagates the request correlation token.
// A caller-supplied header value is passed through unchanged; otherwise a
// random 64-bit value in decimal form is generated. The token is set on the
// response header and injected into the logging context for the lifetime of
// this request only.
func (s *Server) requestIDMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = strconv.FormatUint(rand.Uint64(), 10)
		}

		w.Header().Set(RequestIDHeader, requestID)

		ctx := logging.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// loggingMiddleware logs request start and completion. Every record emitted
// in between carries the request id through the logging context.
func (s *Server) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		start := time.Now()

		rw := newResponseWriter(w)

		slog.DebugContext(ctx, "request started",
			"method", r.Method,
			"path", r.URL.Path,
		)

		next.ServeHTTP(rw, r)

		slog.InfoContext(ctx, "request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.Status(),
			"duration", time.Since(start).String(),
		)
	}
}

// rateLimitMiddleware implements rate limiting
func (s *Server) rateLimitMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.rateLimiter.Allow() {
			rateLimitRejects.Inc()
			w.Header().Set("Retry-After", "1")
			serializers.RespondError(w, http.StatusTooManyRequests, "Rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	}
}

// panicRecoveryMiddleware recovers from panics
func (s *Server) panicRecoveryMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				panicRecoveries.Inc()
				var errMsg string
				switch v := err.(type) {
				case error:
					errMsg = v.Error()
				default:
					errMsg = fmt.Sprintf("%v", v)
				}
				slog.ErrorContext(r.Context(), "panic recovered",
					"error", errMsg,
					"path", r.URL.Path,
					"method", r.Method,
				)
				serializers.RespondError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	}
}

// timeoutMiddleware aborts the inner stages once the configured bound
// elapses and answers with a structured timeout response. The inner handler
// writes into a buffer so a late completion cannot corrupt the response the
// client already received.
func (s *Server) timeoutMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), s.config.RequestTimeout)
		defer cancel()
		r = r.WithContext(ctx)

		tw := &timeoutWriter{header: make(http.Header)}
		done := make(chan struct{})

		go func() {
			defer close(done)
			next.ServeHTTP(tw, r)
		}()

		select {
		case <-done:
			tw.flushTo(w)
		case <-ctx.Done():
			tw.markTimedOut()
			slog.WarnContext(r.Context(), "request timed out",
				"method", r.Method,
				"path", r.URL.Path,
				"timeout", s.config.RequestTimeout.String(),
			)
			serializers.RespondError(w, http.StatusGatewayTimeout, "Request timed out")
		}
	}
}

// timeoutWriter buffers a handler's response so it can be replayed whole on
// completion or discarded after a timeout.
type timeoutWriter struct {
	mu       sync.Mutex
	header   http.Header
	buf      bytes.Buffer
	status   int
	timedOut bool
}

func (tw *timeoutWriter) Header() http.Header {
	return tw.header
}

func (tw *timeoutWriter) WriteHeader(statusCode int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timedOut || tw.status != 0 {
		return
	}
	tw.status = statusCode
}

func (tw *timeoutWriter) Write(b []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	if tw.status == 0 {
		tw.status = http.StatusOK
	}
	return tw.buf.Write(b)
}

func (tw *timeoutWriter) markTimedOut() {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	tw.timedOut = true
}

func (tw *timeoutWriter) flushTo(w http.ResponseWriter) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	for k, vals := range tw.header {
		for _, v := range vals {
			w.Header().Add(k, v)
		}
	}
	if tw.status == 0 {
		tw.status = http.StatusOK
	}
	w.WriteHeader(tw.status)
	_, _ = w.Write(tw.buf.Bytes())
}
