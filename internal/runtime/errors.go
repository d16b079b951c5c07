package runtime

import (
	"errors"
	"fmt"
	"strings"
	"syscall"

	wferrors "github.com/manav03panchal/workflowr/internal/errors"
	"github.com/manav03panchal/workflowr/internal/output"
)

// ErrDiskFull marks writes that failed for lack of space.
var ErrDiskFull = errors.New("disk full: unable to write to database")

const diskFullSuggestion = "Free up disk space and try again. Running timers are kept until the command exits."

// Exit codes returned by the CLI.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// DiskFullError represents a disk full condition with additional context.
type DiskFullError struct {
	Op      string
	wrapped error
}

func (e *DiskFullError) Error() string {
	return fmt.Sprintf("disk full during %s: %v", e.Op, e.wrapped)
}

func (e *DiskFullError) Unwrap() error {
	return ErrDiskFull
}

// IsDiskFullError reports whether err means the disk is out of space. It
// checks ENOSPC and the messages storage engines use for it.
func IsDiskFullError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDiskFull) {
		return true
	}

	var errno syscall.Errno
	if errors.As(err, &errno) && errno == syscall.ENOSPC {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range []string{"no space left on device", "disk full", "enospc", "database or disk is full"} {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

// WrapDiskFullError tags err as a DiskFullError when it is one. Other errors
// are returned unchanged.
func WrapDiskFullError(err error, op string) error {
	if err == nil || !IsDiskFullError(err) {
		return err
	}
	return &DiskFullError{Op: op, wrapped: err}
}

// FormatError renders err for the terminal. Debug mode adds the wrap chain
// and captured stack.
func FormatError(err error, debug bool) string {
	if debug {
		return wferrors.FormatDebugError(err)
	}
	if IsDiskFullError(err) {
		return err.Error() + "\n\n" + diskFullSuggestion
	}
	msg := wferrors.FormatByCategory(err)
	if examples := wferrors.GetExamples(err); len(examples) > 0 {
		msg += "\n\nExamples:\n  " + strings.Join(examples, "\n  ")
	}
	return msg
}

// ErrorOutput is the JSON form of err.
func ErrorOutput(err error) output.ErrorResponse {
	suggestion := wferrors.GetSuggestion(err)
	if IsDiskFullError(err) {
		suggestion = diskFullSuggestion
	}
	resp := output.ErrorResponse{
		Error:      err.Error(),
		Category:   wferrors.Classify(err).String(),
		Suggestion: suggestion,
	}
	if se, ok := wferrors.AsSystemError(err); ok {
		resp.Op = se.Op
	}
	return resp
}

// ExitCode maps an error to the process exit status. Input problems exit
// with ExitUsage.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case wferrors.Classify(err) == wferrors.CategoryUser:
		return ExitUsage
	default:
		return ExitError
	}
}
