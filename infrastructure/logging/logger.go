// Package logging provides structured delivery diagnostics for the
// honeybadger client using bolt.
//
// The client logs at debug level only; a host application that wants
// delivery diagnostics lowers the level with SetLevel or installs its
// own configuration through Init before constructing a client.
package logging

import (
	"os"
	"sync"

	"github.com/felixgeelhaar/bolt/v3"
)

var (
	defaultLogger *bolt.Logger
	once          sync.Once
)

// Config configures the client logger.
type Config struct {
	// Level is the minimum log level (trace, debug, info, warn, error).
	Level string

	// Format selects the handler: "json" or "console".
	Format string

	// Output is the destination. Diagnostics go to stderr so they never
	// interleave with the host application's stdout.
	Output *os.File
}

// DefaultConfig returns the configuration used when the host process
// never calls Init: human-readable output on stderr, debug suppressed.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "console",
		Output: os.Stderr,
	}
}

// ProductionConfig returns a machine-readable variant of DefaultConfig.
func ProductionConfig() Config {
	return Config{
		Level:  "info",
		Format: "json",
		Output: os.Stderr,
	}
}

var levelNames = map[string]bolt.Level{
	"trace": bolt.TRACE,
	"debug": bolt.DEBUG,
	"info":  bolt.INFO,
	"warn":  bolt.WARN,
	"error": bolt.ERROR,
}

// parseLevel maps a level name to bolt.Level; unknown names mean info.
func parseLevel(s string) bolt.Level {
	if level, ok := levelNames[s]; ok {
		return level
	}
	return bolt.INFO
}

// Init installs the logger configuration. Only the first call takes
// effect; later calls, including the implicit one from Get, are no-ops.
func Init(config Config) {
	once.Do(func() {
		output := config.Output
		if output == nil {
			output = os.Stderr
		}

		var handler bolt.Handler
		if config.Format == "json" {
			handler = bolt.NewJSONHandler(output)
		} else {
			handler = bolt.NewConsoleHandler(output)
		}

		defaultLogger = bolt.New(handler).SetLevel(parseLevel(config.Level))
	})
}

// Get returns the client logger, installing DefaultConfig if the host
// never called Init.
func Get() *bolt.Logger {
	if defaultLogger == nil {
		Init(DefaultConfig())
	}
	return defaultLogger
}

// SetLevel changes the level of the client logger. SetLevel("debug")
// turns delivery diagnostics on.
func SetLevel(level string) {
	Get().SetLevel(parseLevel(level))
}

// LogEvent wraps a bolt.Event so Field constructors can be chained
// onto it.
type LogEvent struct {
	event *bolt.Event
}

// Add applies a field and returns the wrapper for chaining.
func (l *LogEvent) Add(f Field) *LogEvent {
	l.event = f(l.event)
	return l
}

// Msg emits the event with a message.
func (l *LogEvent) Msg(msg string) {
	l.event.Msg(msg)
}

// Send emits the event without a message.
func (l *LogEvent) Send() {
	l.event.Send()
}

// Debug starts a debug-level event. Delivery attempts and their
// classified outcomes log at this level.
func Debug() *LogEvent {
	return &LogEvent{event: Get().Debug()}
}

// Info starts an info-level event.
func Info() *LogEvent {
	return &LogEvent{event: Get().Info()}
}

// Warn starts a warn-level event.
func Warn() *LogEvent {
	return &LogEvent{event: Get().Warn()}
}

// Error starts an error-level event.
func Error() *LogEvent {
	return &LogEvent{event: Get().Error()}
}
