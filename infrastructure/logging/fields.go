package logging

import (
	"time"

	"github.com/felixgeelhaar/bolt/v3"
)

// Field is a function that applies structured data to a log event.
type Field func(*bolt.Event) *bolt.Event

// Common field constructors for delivery logging.

// DeliveryID adds the correlation id of one delivery attempt.
func DeliveryID(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("delivery_id", id)
	}
}

// Endpoint adds the notices endpoint URL.
func Endpoint(url string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("endpoint", url)
	}
}

// Status adds the response status code.
func Status(code int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("status", code)
	}
}

// ErrorClass adds the class of the reported error.
func ErrorClass(class string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("error_class", class)
	}
}

// PayloadBytes adds the serialized notice size.
func PayloadBytes(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("payload_bytes", n)
	}
}

// Timeout adds the delivery timeout in seconds.
func Timeout(d time.Duration) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("timeout_s", int64(d/time.Second))
	}
}

// Duration adds a duration field in milliseconds.
func Duration(d time.Duration) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("duration_ms", d.Milliseconds())
	}
}

// Environment adds the configured environment name.
func Environment(env string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("environment", env)
	}
}

// ErrorField adds an error field.
func ErrorField(err error) Field {
	return func(e *bolt.Event) *bolt.Event {
		if err == nil {
			return e
		}
		return e.Err(err)
	}
}
