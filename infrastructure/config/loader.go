package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	domainconfig "github.com/fussybeaver/honeybadger-go/domain/config"
)

// File is the on-disk representation of client configuration. Zero-valued
// fields defer to the environment-derived and computed defaults of the
// configuration builder.
type File struct {
	// APIKey authenticates against the Honeybadger project.
	APIKey string `json:"api_key" yaml:"api_key"`
	// Root is the project root reported with each notice.
	Root string `json:"root,omitempty" yaml:"root,omitempty"`
	// Env is the environment name reported with each notice.
	Env string `json:"env,omitempty" yaml:"env,omitempty"`
	// Hostname is the host name reported with each notice.
	Hostname string `json:"hostname,omitempty" yaml:"hostname,omitempty"`
	// Endpoint is the URL notices are posted to.
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	// Timeout is the delivery timeout in whole seconds.
	Timeout uint64 `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	// PoolSize sizes the idle connection pool of the HTTPS client.
	PoolSize int `json:"pool_size,omitempty" yaml:"pool_size,omitempty"`
}

// Builder converts the file into a configuration builder, applying every
// non-zero field as an explicit override.
func (f *File) Builder() *domainconfig.Builder {
	b := domainconfig.NewBuilder(f.APIKey)
	if f.Root != "" {
		b.WithRoot(f.Root)
	}
	if f.Env != "" {
		b.WithEnv(f.Env)
	}
	if f.Hostname != "" {
		b.WithHostname(f.Hostname)
	}
	if f.Endpoint != "" {
		b.WithEndpoint(f.Endpoint)
	}
	if f.Timeout != 0 {
		b.WithTimeout(time.Duration(f.Timeout) * time.Second)
	}
	if f.PoolSize != 0 {
		b.WithPoolSize(f.PoolSize)
	}
	return b
}

// Loader loads client configuration from files.
type Loader struct {
	// ExpandEnv enables environment variable expansion.
	ExpandEnv bool
	// StrictEnv fails if referenced env vars are missing.
	StrictEnv bool
}

// NewLoader creates a new configuration loader with default settings.
func NewLoader() *Loader {
	return &Loader{
		ExpandEnv: true,
		StrictEnv: false,
	}
}

// LoaderOption configures the loader.
type LoaderOption func(*Loader)

// WithEnvExpansion enables or disables environment variable expansion.
func WithEnvExpansion(enabled bool) LoaderOption {
	return func(l *Loader) {
		l.ExpandEnv = enabled
	}
}

// WithStrictEnv enables strict environment variable checking.
func WithStrictEnv(enabled bool) LoaderOption {
	return func(l *Loader) {
		l.StrictEnv = enabled
	}
}

// NewLoaderWithOptions creates a loader with the specified options.
func NewLoaderWithOptions(opts ...LoaderOption) *Loader {
	l := NewLoader()
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Format represents a configuration file format.
type Format string

const (
	// FormatYAML is the YAML format.
	FormatYAML Format = "yaml"
	// FormatJSON is the JSON format.
	FormatJSON Format = "json"
)

// LoadFile loads configuration from a file path. The format is derived
// from the file extension (.yml, .yaml or .json).
func (l *Loader) LoadFile(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domainconfig.ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to access config file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domainconfig.ErrInvalidFormat, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	var format Format
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		format = FormatYAML
	case ".json":
		format = FormatJSON
	default:
		return nil, fmt.Errorf("%w: %s", domainconfig.ErrUnsupportedFormat, ext)
	}

	return l.Load(f, format)
}

// Load loads configuration from a reader.
func (l *Loader) Load(r io.Reader, format Format) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if l.ExpandEnv {
		expanded, err := l.expand(string(data))
		if err != nil {
			return nil, err
		}
		data = []byte(expanded)
	}

	var file File
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("%w: %v", domainconfig.ErrInvalidFormat, err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("%w: %v", domainconfig.ErrInvalidFormat, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", domainconfig.ErrUnsupportedFormat, format)
	}

	return &file, nil
}

func (l *Loader) expand(content string) (string, error) {
	if l.StrictEnv {
		return ExpandEnvStrict(content)
	}
	return ExpandEnv(content), nil
}
