package model

import "time"

// Project is a billable unit of work for a client.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ClientName  string    `json:"clientName"`
	Rate        float64   `json:"rate"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// GetID returns the project identifier.
func (p *Project) GetID() string {
	return p.ID
}

// Clone returns a copy of the project that is safe to hand out.
func (p *Project) Clone() *Project {
	c := *p
	return &c
}

// ProjectInput holds the user-editable project fields.
// Nil pointers are left unchanged by updates.
type ProjectInput struct {
	Name        *string
	Description *string
	ClientName  *string
	Rate        *float64
}

// NewProject creates a project from its fields.
func NewProject(id, name, description, clientName string, rate float64, now time.Time) *Project {
	return &Project{
		ID:          id,
		Name:        name,
		Description: description,
		ClientName:  clientName,
		Rate:        rate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Apply copies the non-nil input fields onto the project.
func (p *Project) Apply(in ProjectInput) {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.ClientName != nil {
		p.ClientName = *in.ClientName
	}
	if in.Rate != nil {
		p.Rate = *in.Rate
	}
}
