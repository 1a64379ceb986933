package notice

import (
	"runtime"
	"strconv"
)

// Frame describes one resolved stack frame in the backtrace format the
// Honeybadger API expects.
type Frame struct {
	// Number is the line number within File.
	Number string `json:"number"`
	// File is the source file path.
	File string `json:"file"`
	// Method is the fully qualified function name.
	Method string `json:"method"`
}

// StackTracer is the capability of errors that carry the raw program
// counters of the stack at the point they were created.
type StackTracer interface {
	StackTrace() []uintptr
}

// maxStackDepth bounds how many callers are captured by WithStack.
const maxStackDepth = 64

// stackError pairs an error with captured program counters. It stays
// transparent to normalization: the wrapped error decides the record
// shape, the counters only contribute the backtrace.
type stackError struct {
	err error
	pcs []uintptr
}

func (e *stackError) Error() string { return e.err.Error() }

func (e *stackError) Unwrap() error { return e.err }

func (e *stackError) StackTrace() []uintptr { return e.pcs }

// WithStack returns err annotated with the program counters of the calling
// goroutine, so the resulting notice carries a backtrace. A nil err yields
// nil.
func WithStack(err error) error {
	if err == nil {
		return nil
	}
	pcs := make([]uintptr, maxStackDepth)
	n := runtime.Callers(2, pcs)
	return &stackError{err: err, pcs: pcs[:n]}
}

// resolveFrames resolves program counters into frames, innermost first.
// When inlining expands one counter into several symbol entries, the
// outermost entry wins; counters that resolve to no symbol are skipped.
func resolveFrames(pcs []uintptr) []Frame {
	var frames []Frame
	for _, pc := range pcs {
		iter := runtime.CallersFrames([]uintptr{pc})
		var outer runtime.Frame
		var found bool
		for {
			f, more := iter.Next()
			if f.Function != "" {
				outer = f
				found = true
			}
			if !more {
				break
			}
		}
		if !found {
			continue
		}
		frames = append(frames, Frame{
			Number: strconv.Itoa(outer.Line),
			File:   outer.File,
			Method: outer.Function,
		})
	}
	return frames
}
