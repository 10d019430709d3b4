// Package defaults centralizes configuration constants so server and CLI
// defaults cannot drift apart.
package defaults

import "time"

// Server listen defaults.
const (
	// Port is the default API listen port.
	Port = 8080

	// HealthPort is the default port for the operational endpoints
	// (/health, /metrics). Set to 0 to disable the separate listener.
	HealthPort = 8081
)

// Server timeouts.
const (
	// RequestTimeout bounds the handling of a single request. Inner stages
	// that run past it are abandoned and the client receives a timeout
	// response.
	RequestTimeout = 10 * time.Second

	// ServerReadTimeout is the maximum duration for reading a request.
	ServerReadTimeout = 10 * time.Second

	// ServerWriteTimeout is the maximum duration before timing out a
	// response write. Kept above RequestTimeout so the timeout stage, not
	// the socket, decides the outcome.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the keep-alive idle bound.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout bounds graceful shutdown draining.
	ServerShutdownTimeout = 30 * time.Second
)
