package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// App identifies one of the status services built from this repo.
type App struct {
	Name        string
	Title       string
	EnvPrefix   string
	DefaultPort int
}

var (
	// GraphWorkflow is the graph based agentic workflow service.
	GraphWorkflow = App{
		Name:        "graph-workflow",
		Title:       "Graph based agentic workflows",
		EnvPrefix:   "GRAPH_WORKFLOW_",
		DefaultPort: 8001,
	}

	// SampleApp is the sample application service.
	SampleApp = App{
		Name:        "sample-app",
		Title:       "Sample FastAPI application",
		EnvPrefix:   "SAMPLE_APP_",
		DefaultPort: 8000,
	}
)

// Config holds service configuration from environment.
type Config struct {
	App App

	Host     string
	Port     int
	LogLevel string

	RedisURL    string
	PostgresURL string

	CheckTimeout    time.Duration
	ShutdownTimeout time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load reads configuration for app from environment variables prefixed
// with app.EnvPrefix.
func Load(app App) (*Config, error) {
	env := &envReader{prefix: app.EnvPrefix}

	cfg := &Config{
		App:             app,
		Host:            env.str("HOST", ""),
		Port:            env.int("PORT", app.DefaultPort),
		LogLevel:        strings.ToLower(env.str("LOG_LEVEL", "info")),
		RedisURL:        env.str("REDIS_URL", ""),
		PostgresURL:     env.str("POSTGRES_URL", ""),
		CheckTimeout:    env.duration("CHECK_TIMEOUT", 2*time.Second),
		ShutdownTimeout: env.duration("SHUTDOWN_TIMEOUT", 5*time.Second),
		ReadTimeout:     env.duration("READ_TIMEOUT", 10*time.Second),
		WriteTimeout:    env.duration("WRITE_TIMEOUT", 10*time.Second),
		IdleTimeout:     env.duration("IDLE_TIMEOUT", 60*time.Second),
	}

	if err := errors.Join(env.errs...); err != nil {
		return nil, fmt.Errorf("load %s config: %w", app.Name, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load %s config: %w", app.Name, err)
	}
	return cfg, nil
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	for name, d := range map[string]time.Duration{
		"check timeout":    c.CheckTimeout,
		"shutdown timeout": c.ShutdownTimeout,
		"read timeout":     c.ReadTimeout,
		"write timeout":    c.WriteTimeout,
		"idle timeout":     c.IdleTimeout,
	} {
		if d <= 0 {
			return errors.New(name + " must be > 0")
		}
	}
	return nil
}

// envReader reads prefixed variables and collects parse errors.
type envReader struct {
	prefix string
	errs   []error
}

func (e *envReader) str(key, defaultValue string) string {
	if v := strings.TrimSpace(os.Getenv(e.prefix + key)); v != "" {
		return v
	}
	return defaultValue
}

func (e *envReader) int(key string, defaultValue int) int {
	v := e.str(key, "")
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s%s=%q: not an integer", e.prefix, key, v))
		return defaultValue
	}
	return n
}

func (e *envReader) duration(key string, defaultValue time.Duration) time.Duration {
	v := e.str(key, "")
	if v == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s%s=%q: not a duration", e.prefix, key, v))
		return defaultValue
	}
	return d
}
