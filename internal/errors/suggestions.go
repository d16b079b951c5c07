package errors

import "errors"

// Suggestions maps common errors to helpful suggestions.
var Suggestions = map[error]string{
	ErrProjectNotFound: "Use 'workflowr project' to see available projects.",
	ErrTaskNotFound:    "Use 'workflowr task' to see tasks and their IDs.",
	ErrProjectRequired: "Pass the owning project with --project <id>.",
	ErrNameRequired:    "Provide a non-empty name.",
	ErrInvalidRate:     "Hourly rates must be zero or a positive number, e.g. --rate 85.50.",
	ErrInvalidEstimate: "Estimates are minutes and must not be negative, e.g. --estimate 120.",
	ErrInvalidStatus:   "Use one of: pending, in_progress, done.",
	ErrInvalidMinutes:  "Manual time must be a positive number of minutes.",
	ErrInvalidDuration: "Try formats like '45', '45m', '1h30m' or '1.5h'.",
	ErrInvalidDate:     "Try formats like '2026-01-31', 'today' or 'in 15 days'.",
	ErrDueBeforeIssue:  "Pick a due date on or after the issue date.",
	ErrInvoiceNumber:   "Pass --number or leave it out to generate one.",
	ErrNoBillableTime:  "Track time on the project's tasks before invoicing.",
	ErrTimerNotRunning: "Start the timer first with 'workflowr timer run <task>'.",
	ErrUnknownBackend:  "Set storage.backend to badger, sqlite or memory.",
	ErrConfirmRequired: "Re-run with --yes to confirm.",
	ErrInteractiveOnly: "Run it without --format json.",

	ErrLoadFailed:        "Stored data could not be read; the collection was started empty.",
	ErrDatabaseCorrupted: "Move the data directory aside or run 'workflowr reset --yes'.",
	ErrPermissionDenied:  "Check file permissions in your data directory (~/.local/share/workflowr/).",
}

// GetSuggestion returns a suggestion for an error, if available.
// It walks the error chain to find matching suggestions.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	// A UserError carrying its own suggestion wins over the generic one.
	if ue, ok := AsUserError(err); ok && ue.Suggestion != "" {
		return ue.Suggestion
	}

	for knownErr, suggestion := range Suggestions {
		if errors.Is(err, knownErr) {
			return suggestion
		}
	}

	return ""
}

// CommandExamples provides example commands for common errors.
var CommandExamples = map[error][]string{
	ErrProjectRequired: {
		"workflowr task create \"Design\" --project <project-id> --estimate 120",
	},
	ErrInvalidDuration: {
		"workflowr timer log <task-id> 45m",
		"workflowr timer log <task-id> 1h30m",
	},
	ErrInvalidDate: {
		"workflowr invoice <project-id> --issue today --due 'in 15 days'",
	},
}

// GetExamples returns example commands for an error.
func GetExamples(err error) []string {
	for knownErr, examples := range CommandExamples {
		if errors.Is(err, knownErr) {
			return examples
		}
	}
	return nil
}
