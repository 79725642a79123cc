// Package errors provides error wrapping with slog annotations and source
// locations so that failures carry their context all the way to the log line.
//
// It re-exports the stdlib helpers so call sites only need one import.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
)

// maxStackDepth bounds the number of frames captured per error.
const maxStackDepth = 16

// annotatedError is an error with slog attributes and the call stack of its
// construction site.
type annotatedError struct {
	msg   string
	cause error
	attrs []slog.Attr
	stack []uintptr
}

// New returns an error with the given message and captures the caller.
func New(msg string) error {
	return &annotatedError{
		msg:   msg,
		cause: nil,
		attrs: nil,
		stack: callers(),
	}
}

// NewSentinel creates an error meant to be declared at package level and
// matched with [Is].
func NewSentinel(msg string) error {
	return &annotatedError{
		msg:   msg,
		cause: nil,
		attrs: nil,
		stack: callers(),
	}
}

// Wrap annotates err with a message and optional slog attributes. A nil err is
// tolerated and results in an error with only the message.
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	return &annotatedError{
		msg:   msg,
		cause: err,
		attrs: attrs,
		stack: callers(),
	}
}

// DecoratePanic converts a recovered panic value into an annotated error
// pointing at the panic site.
func DecoratePanic(recovered any) error {
	if recovered == nil {
		return nil
	}
	return &annotatedError{
		msg:   fmt.Sprintf("panic: %v", recovered),
		cause: nil,
		attrs: nil,
		stack: callers(),
	}
}

func (e *annotatedError) Error() string {
	if e.cause == nil || e.cause.Error() == "" {
		return e.msg
	}
	return e.msg + ": " + e.cause.Error()
}

func (e *annotatedError) Unwrap() error {
	return e.cause
}

// callers captures the stack excluding runtime internals and this package.
func callers() []uintptr {
	pcs := make([]uintptr, maxStackDepth)
	// Skip runtime.Callers and the constructor in this package.
	n := runtime.Callers(2, pcs)
	return pcs[:n]
}

// source returns the first interesting frame, skipping this package and the
// runtime panic machinery.
func (e *annotatedError) source() (string, int) {
	frames := runtime.CallersFrames(e.stack)
	for {
		frame, more := frames.Next()
		interesting := !strings.HasSuffix(frame.File, "annotatederror.go") &&
			!strings.HasPrefix(frame.Function, "runtime.")
		if interesting {
			return frame.File, frame.Line
		}
		if !more {
			return frame.File, frame.Line
		}
	}
}

// SlogError converts err into a [slog.Attr] carrying the message, the
// annotations collected from the whole error chain, and the source location
// where the innermost annotated error was created.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.Attr{Key: "error", Value: slog.StringValue("<nil>")}
	}

	var (
		annotations []slog.Attr
		deepest     *annotatedError
	)
	collectAnnotations(err, &annotations, &deepest)

	attrs := []slog.Attr{slog.String("message", err.Error())}
	if deepest != nil {
		file, line := deepest.source()
		attrs = append(attrs, slog.String("source", fmt.Sprintf("%s:%d", file, line)))
	}
	if len(annotations) > 0 {
		annotationArgs := make([]any, 0, len(annotations))
		for _, a := range annotations {
			annotationArgs = append(annotationArgs, a)
		}
		attrs = append(attrs, slog.Group("annotations", annotationArgs...))
	}

	args := make([]any, 0, len(attrs))
	for _, a := range attrs {
		args = append(args, a)
	}
	return slog.Group("error", args...)
}

// collectAnnotations walks the error tree gathering attrs and remembering the
// deepest annotated error for source attribution.
func collectAnnotations(err error, annotations *[]slog.Attr, deepest **annotatedError) {
	if err == nil {
		return
	}

	var annotated *annotatedError
	if errors.As(err, &annotated) {
		// errors.As finds the shallowest one; record it and keep walking so a
		// deeper one can replace it.
		*deepest = annotated
		*annotations = append(*annotations, annotated.attrs...)
		collectAnnotations(annotated.cause, annotations, deepest)
		return
	}

	switch unwrapped := err.(type) {
	case interface{ Unwrap() error }:
		collectAnnotations(unwrapped.Unwrap(), annotations, deepest)
	case interface{ Unwrap() []error }:
		for _, e := range unwrapped.Unwrap() {
			collectAnnotations(e, annotations, deepest)
		}
	}
}

// Stdlib re-exports.

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Unwrap returns the result of calling the Unwrap method on err.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// Join wraps the given errors into a single error.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
