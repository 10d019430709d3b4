package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v3"

	"github.com/birthdaysvc/birthdayd/pkg/defaults"
	"github.com/birthdaysvc/birthdayd/pkg/hello"
	"github.com/birthdaysvc/birthdayd/pkg/logging"
	"github.com/birthdaysvc/birthdayd/pkg/server"
	"github.com/birthdaysvc/birthdayd/pkg/store"
)

const (
	name           = "birthdayd"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// New builds the root command. The service is self-contained by default:
// without --redis it keeps records in process memory, so it can run without
// any external dependencies.
func New() *cli.Command {
	return &cli.Command{
		Name:    name,
		Usage:   "Birthday greeting HTTP service",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Description: `Stores a date of birth per user and serves a message about the next
occurrence of that birthday:

  PUT /hello/{username}   {"dateOfBirth": "YYYY-MM-DD"}
  GET /hello/{username}

Operational endpoints (/health, /metrics) are served on both the API port
and, by default, a separate health port.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to an optional YAML configuration file",
			},
			&cli.StringFlag{
				Name:  "address",
				Usage: "Interface to bind (empty binds all)",
			},
			&cli.IntFlag{
				Name:  "port",
				Value: defaults.Port,
				Usage: "API listen port",
			},
			&cli.IntFlag{
				Name:  "health-port",
				Value: defaults.HealthPort,
				Usage: "Health/metrics listen port (0 disables the separate listener)",
			},
			&cli.StringFlag{
				Name:  "redis",
				Usage: "Redis address (host:port); empty runs with the in-memory store",
			},
			&cli.StringFlag{
				Name:  "namespace",
				Value: store.DefaultNamespace,
				Usage: "Key namespace for birthday records",
			},
			&cli.DurationFlag{
				Name:  "request-timeout",
				Value: defaults.RequestTimeout,
				Usage: "Per-request processing bound",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: "info",
				Usage: "Log level (debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Value: logging.FormatJSON,
				Usage: "Log output format (json, text)",
			},
		},
		Action: run,
	}
}

// Execute runs the root command with signal-driven cancellation. Called by
// main; SIGINT/SIGTERM cancel the context, which drains the server.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return New().Run(ctx, os.Args)
}

func run(ctx context.Context, cmd *cli.Command) error {
	opts, err := buildOptions(cmd)
	if err != nil {
		return err
	}

	logging.SetDefaultStructuredLogger(name, version, opts.logLevel, opts.logFormat)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	st, err := buildStore(ctx, opts)
	if err != nil {
		return err
	}

	cfg := server.NewConfig()
	cfg.Name = name
	cfg.Version = version
	cfg.Address = opts.address
	cfg.Port = opts.port
	cfg.HealthPort = opts.healthPort
	cfg.RequestTimeout = opts.requestTimeout

	s := server.New(
		server.WithConfig(cfg),
		server.WithHandler(hello.NewHandler(st).Routes()),
	)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}
	return nil
}

// buildStore connects the configured persistence backend. Failure to reach
// a configured Redis is fatal at startup, not deferred to the first request.
func buildStore(ctx context.Context, opts *serveOptions) (hello.Store, error) {
	if opts.redisAddr == "" {
		slog.Info("no store configured, using in-memory records")
		return store.NewMemory(), nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: opts.redisAddr})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis at %s: %w", opts.redisAddr, err)
	}

	slog.Info("connected to redis", "address", opts.redisAddr, "namespace", opts.namespace)
	return store.NewRedis(rdb, store.WithNamespace(opts.namespace)), nil
}
