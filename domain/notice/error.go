// Package notice provides the domain model for Honeybadger notices: the
// normalized error record, backtrace frames, and the full wire document
// posted to the notices endpoint.
package notice

import (
	"errors"
	"fmt"
	"strings"
)

// Error is the normalized record of one reported error and its transitive
// cause chain.
type Error struct {
	// Class identifies the error, typically its display string.
	Class string `json:"class"`
	// Message is the detailed rendering of the error, if one exists.
	Message *string `json:"message"`
	// Causes holds the underlying errors, outermost first. A nil slice
	// means the source error carries no cause chain at all.
	Causes []Error `json:"causes"`
	// Backtrace holds the resolved stack frames, innermost first. It is
	// only populated when the source error can supply program counters.
	Backtrace []Frame `json:"backtrace,omitempty"`
}

// aggregate is the capability of errors that wrap several independent
// sub-errors, such as the result of errors.Join.
type aggregate interface {
	Unwrap() []error
}

// Normalize converts an arbitrary Go error into an Error record. It never
// fails: missing capabilities (no cause chain, no captured stack) degrade
// to nil fields. Three source shapes are recognized, checked in order:
// an aggregate of sub-errors, a chain of single causes, and an opaque
// error exposing only its display string.
func Normalize(err error) Error {
	if err == nil {
		return Error{}
	}

	source := err
	if st, ok := err.(*stackError); ok {
		source = st.err
	}

	var record Error
	switch {
	case isAggregate(source):
		record = normalizeAggregate(source)
	case errors.Unwrap(source) != nil:
		record = normalizeChain(source)
	default:
		record = normalizeOpaque(source)
	}

	if tracer, ok := err.(StackTracer); ok {
		record.Backtrace = resolveFrames(tracer.StackTrace())
	}
	return record
}

func isAggregate(err error) bool {
	agg, ok := err.(aggregate)
	return ok && len(agg.Unwrap()) > 0
}

// normalizeAggregate maps an error wrapping a list of independent
// sub-errors: one cause record per sub-error, none of which carries a
// further chain.
func normalizeAggregate(err error) Error {
	subs := err.(aggregate).Unwrap()
	causes := make([]Error, 0, len(subs))
	for _, sub := range subs {
		causes = append(causes, Error{
			Class:   sub.Error(),
			Message: strptr(fmt.Sprintf("%+v", sub)),
		})
	}
	return Error{
		Class:   err.Error(),
		Message: strptr(fmt.Sprintf("%+v", err)),
		Causes:  causes,
	}
}

// normalizeChain maps an error with a linear chain of causes. The cause
// list contains one record per chain link, the reported error itself
// included, and each link additionally nests its own remaining chain as a
// one-element cause list.
func normalizeChain(err error) Error {
	var causes []Error
	for link := err; link != nil; link = errors.Unwrap(link) {
		causes = append(causes, linkRecord(link))
	}
	return Error{
		Class:   err.Error(),
		Message: strptr(renderChain(err)),
		Causes:  causes,
	}
}

func linkRecord(link error) Error {
	record := Error{Class: link.Error()}
	if next := errors.Unwrap(link); next != nil {
		record.Causes = []Error{linkRecord(next)}
	}
	return record
}

// renderChain produces the multi-line display of a cause chain, one line
// per link.
func renderChain(err error) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Error: %s\n", err.Error())
	for link := errors.Unwrap(err); link != nil; link = errors.Unwrap(link) {
		fmt.Fprintf(&b, "Caused by: %s\n", link.Error())
	}
	return b.String()
}

// normalizeOpaque maps an error exposing nothing beyond its display
// string. The message is always populated on this path.
func normalizeOpaque(err error) Error {
	return Error{
		Class:   err.Error(),
		Message: strptr(fmt.Sprintf("%+v", err)),
	}
}

func strptr(s string) *string {
	return &s
}
