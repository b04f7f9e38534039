package config

import "errors"

// Common errors returned by the config package.
var (
	// ErrNoTarget is returned when no target file is specified.
	ErrNoTarget = errors.New("no target file specified")

	// ErrRelativeTarget is returned when the target path is not absolute.
	ErrRelativeTarget = errors.New("target must be an absolute path")

	// ErrInvalidInterval is returned when the poll interval is <= 0.
	ErrInvalidInterval = errors.New("invalid poll interval: must be > 0")

	// ErrInvalidStrategy is returned when the fingerprint strategy is not recognized.
	ErrInvalidStrategy = errors.New("invalid fingerprint strategy: must be metadata or content")

	// ErrInvalidLogLevel is returned when log level is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level: must be debug, info, warn, or error")

	// ErrInvalidLogFormat is returned when log format is not recognized.
	ErrInvalidLogFormat = errors.New("invalid log format: must be text or json")

	// ErrConfigNotFound is returned when config file is not found.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrInvalidYAML is returned when config file has invalid YAML syntax.
	ErrInvalidYAML = errors.New("invalid YAML syntax in config file")
)
