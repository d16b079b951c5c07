package model

import "time"

// InvoiceLine is one billed task on an invoice.
type InvoiceLine struct {
	TaskID      string  `json:"taskId"`
	Description string  `json:"description"`
	Minutes     int     `json:"minutes"`
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
}

// Invoice is the billable summary of a project's tracked time.
type Invoice struct {
	Number     string        `json:"number"`
	ProjectID  string        `json:"projectId"`
	Project    string        `json:"project"`
	ClientName string        `json:"clientName"`
	IssueDate  time.Time     `json:"issueDate"`
	DueDate    time.Time     `json:"dueDate"`
	Notes      string        `json:"notes,omitempty"`
	Lines      []InvoiceLine `json:"lines"`
	Total      float64       `json:"total"`
}

// TotalMinutes returns the billed minutes across all lines.
func (inv *Invoice) TotalMinutes() int {
	var total int
	for _, l := range inv.Lines {
		total += l.Minutes
	}
	return total
}
