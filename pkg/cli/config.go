package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// serveOptions is the resolved runtime configuration, immutable once built.
type serveOptions struct {
	address        string
	port           int
	healthPort     int
	redisAddr      string
	namespace      string
	requestTimeout time.Duration
	logLevel       string
	logFormat      string
}

// fileConfig mirrors the optional YAML configuration file. Every field is
// optional; zero values defer to flag defaults.
type fileConfig struct {
	Address    string `yaml:"address"`
	Port       int    `yaml:"port"`
	HealthPort *int   `yaml:"healthPort"`
	Redis      string `yaml:"redis"`
	Namespace  string `yaml:"namespace"`
	// RequestTimeout is a Go duration string, e.g. "10s".
	RequestTimeout string `yaml:"requestTimeout"`
	LogLevel       string `yaml:"logLevel"`
	LogFormat      string `yaml:"logFormat"`
}

// buildOptions resolves configuration with explicit flags taking precedence
// over the config file, and the config file over flag defaults.
func buildOptions(cmd *cli.Command) (*serveOptions, error) {
	opts := &serveOptions{
		address:        cmd.String("address"),
		port:           int(cmd.Int("port")),
		healthPort:     int(cmd.Int("health-port")),
		redisAddr:      cmd.String("redis"),
		namespace:      cmd.String("namespace"),
		requestTimeout: cmd.Duration("request-timeout"),
		logLevel:       cmd.String("log-level"),
		logFormat:      cmd.String("log-format"),
	}

	path := cmd.String("config")
	if path == "" {
		return opts, nil
	}

	fc, err := loadFileConfig(path)
	if err != nil {
		return nil, err
	}

	if fc.Address != "" && !cmd.IsSet("address") {
		opts.address = fc.Address
	}
	if fc.Port != 0 && !cmd.IsSet("port") {
		opts.port = fc.Port
	}
	if fc.HealthPort != nil && !cmd.IsSet("health-port") {
		opts.healthPort = *fc.HealthPort
	}
	if fc.Redis != "" && !cmd.IsSet("redis") {
		opts.redisAddr = fc.Redis
	}
	if fc.Namespace != "" && !cmd.IsSet("namespace") {
		opts.namespace = fc.Namespace
	}
	if fc.RequestTimeout != "" && !cmd.IsSet("request-timeout") {
		d, err := time.ParseDuration(fc.RequestTimeout)
		if err != nil {
			return nil, fmt.Errorf("parsing requestTimeout %q: %w", fc.RequestTimeout, err)
		}
		opts.requestTimeout = d
	}
	if fc.LogLevel != "" && !cmd.IsSet("log-level") {
		opts.logLevel = fc.LogLevel
	}
	if fc.LogFormat != "" && !cmd.IsSet("log-format") {
		opts.logFormat = fc.LogFormat
	}

	return opts, nil
}

func loadFileConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return &fc, nil
}
