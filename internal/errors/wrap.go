package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// StackFrame is a single frame in a captured stack trace.
type StackFrame struct {
	Function string
	File     string
	Line     int
}

func (f StackFrame) String() string {
	return fmt.Sprintf("%s\n\t%s:%d", f.Function, f.File, f.Line)
}

// ContextError wraps an error with an operation message and the stack where
// it was wrapped.
type ContextError struct {
	Message string
	Cause   error
	Stack   []StackFrame
}

func (e *ContextError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ContextError) Unwrap() error {
	return e.Cause
}

// StackTrace renders the captured frames, one per entry.
func (e *ContextError) StackTrace() string {
	var sb strings.Builder
	for _, frame := range e.Stack {
		sb.WriteString(frame.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// WithContext wraps err with a message describing what was being attempted
// and records the caller's stack for --debug output.
func WithContext(err error, message string) error {
	if err == nil {
		return nil
	}
	return &ContextError{Message: message, Cause: err, Stack: captureStack(2)}
}

func captureStack(skip int) []StackFrame {
	const maxDepth = 32
	var pcs [maxDepth]uintptr
	n := runtime.Callers(skip+1, pcs[:])

	frames := runtime.CallersFrames(pcs[:n])
	stack := make([]StackFrame, 0, n)
	for {
		frame, more := frames.Next()
		if !strings.HasPrefix(frame.Function, "runtime.") &&
			!strings.HasPrefix(frame.Function, "testing.") {
			stack = append(stack, StackFrame{
				Function: frame.Function,
				File:     frame.File,
				Line:     frame.Line,
			})
		}
		if !more {
			break
		}
	}
	return stack
}

// GetStack extracts the stack trace from an error if available.
func GetStack(err error) []StackFrame {
	var contextErr *ContextError
	if errors.As(err, &contextErr) {
		return contextErr.Stack
	}
	return nil
}

// FormatDebugError renders err with its chain and stack, for --debug output.
func FormatDebugError(err error) string {
	if err == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("Error: ")
	sb.WriteString(err.Error())
	sb.WriteString("\nCategory: ")
	sb.WriteString(Classify(err).String())

	if chain := Chain(err); len(chain) > 1 {
		sb.WriteString("\nChain:")
		for i, msg := range chain {
			sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, msg))
		}
	}
	if stack := GetStack(err); len(stack) > 0 {
		sb.WriteString("\nStack:\n")
		for _, frame := range stack {
			sb.WriteString("  ")
			sb.WriteString(frame.String())
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Chain returns the messages of every error in the chain, outermost first.
func Chain(err error) []string {
	var chain []string
	for err != nil {
		chain = append(chain, err.Error())
		err = errors.Unwrap(err)
	}
	return chain
}
