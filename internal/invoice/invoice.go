// Package invoice turns a project's tracked time into invoice lines and
// renders them as a PDF document.
package invoice

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/manav03panchal/workflowr/internal/errors"
	"github.com/manav03panchal/workflowr/internal/metrics"
	"github.com/manav03panchal/workflowr/internal/model"
	"github.com/manav03panchal/workflowr/internal/validate"
)

// DefaultDueDays is the payment term used when none is configured.
const DefaultDueDays = 15

// Options controls the invoice metadata. Zero values take defaults.
type Options struct {
	Number    string
	IssueDate time.Time
	DueDate   time.Time
	DueDays   int
	Notes     string
}

// BuildLines returns one line per task with recorded time, billed at the
// project's rate, and the sum of the line amounts.
func BuildLines(project *model.Project, tasks []*model.Task) ([]model.InvoiceLine, float64) {
	lines := []model.InvoiceLine{}
	var total float64
	for _, t := range tasks {
		if t.ProjectID != project.ID || t.TimeSpent <= 0 {
			continue
		}
		amount := metrics.Value(t.TimeSpent, project.Rate)
		lines = append(lines, model.InvoiceLine{
			TaskID:      t.ID,
			Description: t.Name,
			Minutes:     t.TimeSpent,
			Rate:        project.Rate,
			Amount:      amount,
		})
		total += amount
	}
	return lines, total
}

// New builds an invoice for the project as of now.
func New(project *model.Project, tasks []*model.Task, opts Options, now time.Time) (*model.Invoice, error) {
	lines, total := BuildLines(project, tasks)
	if len(lines) == 0 {
		return nil, errors.NewUserError(
			fmt.Sprintf("Project %q has no tracked time to bill", project.Name),
			"Record time with 'workflowr timer log' first",
		).Because(errors.ErrNoBillableTime)
	}

	if opts.Number == "" {
		opts.Number = DefaultNumber(now, rand.IntN)
	}
	if opts.IssueDate.IsZero() {
		opts.IssueDate = now
	}
	if opts.DueDate.IsZero() {
		days := opts.DueDays
		if days <= 0 {
			days = DefaultDueDays
		}
		opts.DueDate = opts.IssueDate.AddDate(0, 0, days)
	}
	opts.Notes = validate.SanitizeNote(opts.Notes)

	if err := validate.InvoiceNumber(opts.Number); err != nil {
		return nil, err
	}
	if err := validate.InvoiceDates(opts.IssueDate, opts.DueDate); err != nil {
		return nil, err
	}

	return &model.Invoice{
		Number:     opts.Number,
		ProjectID:  project.ID,
		Project:    project.Name,
		ClientName: project.ClientName,
		IssueDate:  opts.IssueDate,
		DueDate:    opts.DueDate,
		Notes:      opts.Notes,
		Lines:      lines,
		Total:      total,
	}, nil
}

// DefaultNumber returns INV-<year>-<NNN> with a random three digit suffix.
// rnd(n) must return a value in [0, n).
func DefaultNumber(now time.Time, rnd func(n int) int) string {
	return fmt.Sprintf("INV-%d-%03d", now.Year(), rnd(1000))
}

// FileName is the suggested PDF file name for an invoice.
func FileName(project *model.Project, number string) string {
	return fmt.Sprintf("invoice_%s_%s.pdf", validate.SafeFilename(project.Name), validate.SafeFilename(number))
}
