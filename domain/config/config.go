// Package config provides the client configuration model and its builder.
package config

import (
	"os"
	"strconv"
	"time"
)

const (
	// DefaultEndpoint is the notices endpoint used when no override is
	// supplied.
	DefaultEndpoint = "https://api.honeybadger.io/v1/notices"

	// DefaultTimeout bounds each delivery attempt.
	DefaultTimeout = 5 * time.Second

	// DefaultPoolSize is the idle connection pool size for the HTTPS
	// client.
	DefaultPoolSize = 4
)

// Environment variables consulted when resolving defaults.
const (
	EnvRoot        = "HONEYBADGER_ROOT"
	EnvEnvironment = "ENV"
	EnvHostname    = "HOSTNAME"
	EnvEndpoint    = "HONEYBADGER_ENDPOINT"
	EnvTimeout     = "HONEYBADGER_TIMEOUT"
)

// Config carries the user-defined client configuration. It is immutable
// once built; construct it with a Builder.
type Config struct {
	// APIKey authenticates against the Honeybadger project.
	APIKey string
	// Root is the project root reported with each notice.
	Root string
	// Env is the environment name reported with each notice.
	Env string
	// Hostname is the host name reported with each notice.
	Hostname string
	// Endpoint is the URL notices are posted to.
	Endpoint string
	// Timeout bounds each delivery attempt.
	Timeout time.Duration
	// PoolSize sizes the idle connection pool of the HTTPS client.
	PoolSize int
}

// Builder accumulates explicit overrides on top of environment-derived
// values. Precedence, highest first: explicit override, environment
// variable, computed default, zero value.
type Builder struct {
	apiKey   string
	root     *string
	env      *string
	hostname *string
	endpoint *string
	timeout  *time.Duration
	poolSize *int
}

// NewBuilder seeds a builder for the given API key from the process
// environment: HONEYBADGER_ROOT, ENV, HOSTNAME, HONEYBADGER_ENDPOINT and
// HONEYBADGER_TIMEOUT (whole seconds; malformed values are ignored).
func NewBuilder(apiKey string) *Builder {
	b := &Builder{apiKey: apiKey}
	if v, ok := os.LookupEnv(EnvRoot); ok {
		b.root = &v
	}
	if v, ok := os.LookupEnv(EnvEnvironment); ok {
		b.env = &v
	}
	if v, ok := os.LookupEnv(EnvHostname); ok {
		b.hostname = &v
	}
	if v, ok := os.LookupEnv(EnvEndpoint); ok {
		b.endpoint = &v
	}
	if v, ok := os.LookupEnv(EnvTimeout); ok {
		if secs, err := strconv.ParseUint(v, 10, 32); err == nil {
			d := time.Duration(secs) * time.Second
			b.timeout = &d
		}
	}
	return b
}

// WithRoot overrides the project root reported with each notice.
func (b *Builder) WithRoot(root string) *Builder {
	b.root = &root
	return b
}

// WithEnv overrides the environment name reported with each notice.
func (b *Builder) WithEnv(env string) *Builder {
	b.env = &env
	return b
}

// WithHostname overrides the host name reported with each notice.
func (b *Builder) WithHostname(hostname string) *Builder {
	b.hostname = &hostname
	return b
}

// WithEndpoint overrides the URL notices are posted to.
func (b *Builder) WithEndpoint(endpoint string) *Builder {
	b.endpoint = &endpoint
	return b
}

// WithTimeout overrides the delivery timeout.
func (b *Builder) WithTimeout(timeout time.Duration) *Builder {
	b.timeout = &timeout
	return b
}

// WithPoolSize overrides the idle connection pool size of the HTTPS
// client.
func (b *Builder) WithPoolSize(size int) *Builder {
	b.poolSize = &size
	return b
}

// Build resolves the final configuration. Fields without an explicit or
// environment-derived value fall back to computed defaults: the working
// directory for the root, the OS-reported host name, the public notices
// endpoint, and a five second timeout.
func (b *Builder) Build() *Config {
	timeout := DefaultTimeout
	if b.timeout != nil {
		timeout = *b.timeout
	}
	poolSize := DefaultPoolSize
	if b.poolSize != nil {
		poolSize = *b.poolSize
	}
	return &Config{
		APIKey:   b.apiKey,
		Root:     resolve(b.root, workingDir, ""),
		Env:      resolve(b.env, nil, ""),
		Hostname: resolve(b.hostname, osHostname, ""),
		Endpoint: resolve(b.endpoint, nil, DefaultEndpoint),
		Timeout:  timeout,
		PoolSize: poolSize,
	}
}

// resolve applies the layered precedence for one string setting: an
// explicit (or environment-seeded) value wins, then a computed default,
// then the fallback.
func resolve(explicit *string, compute func() (string, bool), fallback string) string {
	if explicit != nil {
		return *explicit
	}
	if compute != nil {
		if v, ok := compute(); ok {
			return v
		}
	}
	return fallback
}

func workingDir() (string, bool) {
	dir, err := os.Getwd()
	return dir, err == nil
}

func osHostname() (string, bool) {
	name, err := os.Hostname()
	return name, err == nil
}
