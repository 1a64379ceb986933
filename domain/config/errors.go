package config

import "errors"

// Domain errors for configuration operations.
var (
	// ErrConfigNotFound indicates the configuration file was not found.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrInvalidFormat indicates the configuration content is invalid.
	ErrInvalidFormat = errors.New("invalid configuration format")

	// ErrUnsupportedFormat indicates the file format is not supported.
	ErrUnsupportedFormat = errors.New("unsupported configuration format")

	// ErrMissingEnvVar indicates a required environment variable is not
	// set.
	ErrMissingEnvVar = errors.New("required environment variable not set")

	// ErrMissingAPIKey indicates the configuration carries no API key.
	ErrMissingAPIKey = errors.New("API key is not configured")
)
