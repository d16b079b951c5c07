// Package validate checks form input before it reaches the stores.
// A failed check returns a *errors.UserError and nothing is mutated.
package validate

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/manav03panchal/workflowr/internal/errors"
	"github.com/manav03panchal/workflowr/internal/model"
)

const (
	// MaxNameLength is the maximum length for project and task names.
	MaxNameLength = 128
	// MaxClientLength is the maximum length for a client name.
	MaxClientLength = 128
	// MaxNoteLength is the maximum length for descriptions and invoice notes.
	MaxNoteLength = 4096
	// MaxRate caps hourly rates to catch typos such as a pasted phone number.
	MaxRate = 1_000_000
	// MaxMinutes caps estimates and manual entries at one year.
	MaxMinutes = 365 * 24 * 60
)

// Name validates a required project or task name.
func Name(field, name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.NewUserError(field+" name cannot be empty", "Provide a "+field+" name").
			Because(errors.ErrNameRequired)
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return errors.NewUserErrorWithField(field, name,
			field+" name too long",
			fmt.Sprintf("Names must be %d characters or fewer", MaxNameLength))
	}
	return nil
}

// Client validates an optional client name.
func Client(client string) error {
	if utf8.RuneCountInString(client) > MaxClientLength {
		return errors.NewUserError("Client name too long",
			fmt.Sprintf("Client names must be %d characters or fewer", MaxClientLength))
	}
	return nil
}

// Note validates a description or invoice note.
func Note(note string) error {
	if utf8.RuneCountInString(note) > MaxNoteLength {
		return errors.NewUserError("Note too long",
			fmt.Sprintf("Notes must be %d characters or fewer", MaxNoteLength))
	}
	return nil
}

// Rate validates an hourly rate: finite and within [0, MaxRate].
func Rate(rate float64) error {
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate < 0 || rate > MaxRate {
		return errors.NewUserErrorWithField("rate", fmt.Sprintf("%g", rate),
			"Invalid hourly rate",
			"Rates must be between 0 and 1000000").
			Because(errors.ErrInvalidRate)
	}
	return nil
}

// Estimate validates an estimate in minutes.
func Estimate(minutes int) error {
	if minutes < 0 || minutes > MaxMinutes {
		return errors.NewUserErrorWithField("estimate", fmt.Sprintf("%d", minutes),
			"Invalid time estimate",
			"Estimates are minutes between 0 and 525600").
			Because(errors.ErrInvalidEstimate)
	}
	return nil
}

// Minutes validates a manual time entry, which must be positive.
func Minutes(minutes int) error {
	if minutes <= 0 || minutes > MaxMinutes {
		return errors.NewUserErrorWithField("minutes", fmt.Sprintf("%d", minutes),
			"Invalid minutes",
			"Manual entries must be between 1 and 525600 minutes").
			Because(errors.ErrInvalidMinutes)
	}
	return nil
}

// Status validates a task status.
func Status(status model.TaskStatus) error {
	if !status.Valid() {
		return errors.NewUserErrorWithField("status", string(status),
			"Invalid task status", "").
			Because(errors.ErrInvalidStatus)
	}
	return nil
}

// NewProject validates input for a project about to be created.
// Name is required; other fields are optional.
func NewProject(in model.ProjectInput) error {
	if in.Name == nil {
		return Name("project", "")
	}
	return ProjectUpdate(in)
}

// ProjectUpdate validates the non-nil fields of a project update.
func ProjectUpdate(in model.ProjectInput) error {
	if in.Name != nil {
		if err := Name("project", *in.Name); err != nil {
			return err
		}
	}
	if in.ClientName != nil {
		if err := Client(*in.ClientName); err != nil {
			return err
		}
	}
	if in.Description != nil {
		if err := Note(*in.Description); err != nil {
			return err
		}
	}
	if in.Rate != nil {
		if err := Rate(*in.Rate); err != nil {
			return err
		}
	}
	return nil
}

// NewTask validates input for a task about to be created.
// Project and name are required.
func NewTask(in model.TaskInput) error {
	if in.ProjectID == nil || strings.TrimSpace(*in.ProjectID) == "" {
		return errors.NewUserError("Task needs a project", "Pass --project <id>").
			Because(errors.ErrProjectRequired)
	}
	if in.Name == nil {
		return Name("task", "")
	}
	return TaskUpdate(in)
}

// TaskUpdate validates the non-nil fields of a task update.
func TaskUpdate(in model.TaskInput) error {
	if in.ProjectID != nil && strings.TrimSpace(*in.ProjectID) == "" {
		return errors.NewUserError("Task needs a project", "Pass --project <id>").
			Because(errors.ErrProjectRequired)
	}
	if in.Name != nil {
		if err := Name("task", *in.Name); err != nil {
			return err
		}
	}
	if in.Description != nil {
		if err := Note(*in.Description); err != nil {
			return err
		}
	}
	if in.Status != nil {
		if err := Status(*in.Status); err != nil {
			return err
		}
	}
	if in.TimeEstimated != nil {
		if err := Estimate(*in.TimeEstimated); err != nil {
			return err
		}
	}
	return nil
}

// InvoiceNumber validates a user-supplied invoice number.
func InvoiceNumber(number string) error {
	if strings.TrimSpace(number) == "" {
		return errors.NewUserError("Invoice number cannot be empty", "").
			Because(errors.ErrInvoiceNumber)
	}
	if utf8.RuneCountInString(number) > 64 {
		return errors.NewUserErrorWithField("number", number,
			"Invoice number too long", "Invoice numbers must be 64 characters or fewer")
	}
	return nil
}

// InvoiceDates checks that due is not before issue, comparing calendar days.
func InvoiceDates(issue, due time.Time) error {
	iy, im, id := issue.Date()
	dy, dm, dd := due.Date()
	issueDay := time.Date(iy, im, id, 0, 0, 0, 0, time.UTC)
	dueDay := time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC)
	if dueDay.Before(issueDay) {
		return errors.NewUserErrorWithField("due", due.Format("2006-01-02"),
			"Due date is before the issue date", "").
			Because(errors.ErrDueBeforeIssue)
	}
	return nil
}
