package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/workflowr/internal/errors"
	"github.com/manav03panchal/workflowr/internal/model"
	"github.com/manav03panchal/workflowr/internal/output"
)

// findProject resolves a project by ID, ID prefix or case-insensitive name.
func findProject(ref string) (*model.Project, error) {
	projects := ctx.Session.Projects.List()
	p, err := resolve(ref, projects, func(p *model.Project) (string, string) { return p.ID, p.Name })
	if err != nil {
		return nil, errors.NewUserErrorWithField("project", ref, "Project "+err.Error(),
			"Run 'workflowr project' to see available projects").Because(errors.ErrProjectNotFound)
	}
	return p, nil
}

// findTask resolves a task by ID, ID prefix or case-insensitive name.
func findTask(ref string) (*model.Task, error) {
	tasks := ctx.Session.Tasks.List()
	t, err := resolve(ref, tasks, func(t *model.Task) (string, string) { return t.ID, t.Name })
	if err != nil {
		return nil, errors.NewUserErrorWithField("task", ref, "Task "+err.Error(),
			"Run 'workflowr task' to see available tasks").Because(errors.ErrTaskNotFound)
	}
	return t, nil
}

// resolve prefers an exact ID, then a unique name, then a unique ID prefix.
func resolve[T any](ref string, items []T, key func(T) (id, name string)) (T, error) {
	var zero T
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return zero, errors.New("reference is empty")
	}

	var byName, byPrefix []T
	for _, item := range items {
		id, name := key(item)
		if id == ref {
			return item, nil
		}
		if strings.EqualFold(name, ref) {
			byName = append(byName, item)
		}
		if strings.HasPrefix(id, ref) {
			byPrefix = append(byPrefix, item)
		}
	}

	switch {
	case len(byName) == 1:
		return byName[0], nil
	case len(byName) > 1:
		return zero, fmt.Errorf("name is ambiguous (%d matches), use the ID", len(byName))
	case len(byPrefix) == 1:
		return byPrefix[0], nil
	case len(byPrefix) > 1:
		return zero, errors.New("ID prefix is ambiguous")
	}
	return zero, errors.New("not found")
}

// requireCLI rejects interactive commands when output must stay machine readable.
func requireCLI(name string) error {
	if ctx.IsCLI() {
		return nil
	}
	return errors.NewUserError(name+" is interactive and has no JSON output",
		"Run it without --format json").Because(errors.ErrInteractiveOnly)
}

// shortID trims a uuid for table display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// changedString returns a pointer to the flag value when the flag was set.
func changedString(cmd *cobra.Command, name string, value string) *string {
	if cmd.Flags().Changed(name) {
		return &value
	}
	return nil
}

// changedFloat returns a pointer to the flag value when the flag was set.
func changedFloat(cmd *cobra.Command, name string, value float64) *float64 {
	if cmd.Flags().Changed(name) {
		return &value
	}
	return nil
}

// printMessage reports a mutation in the active format.
func printMessage(message, id string) error {
	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.MessageResponse{Status: "ok", Message: message, ID: id})
	}
	ctx.CLIFormatter().Success(message)
	return nil
}

// projectNames maps project IDs to names for display.
func projectNames() map[string]string {
	names := make(map[string]string)
	for _, p := range ctx.Session.Projects.List() {
		names[p.ID] = p.Name
	}
	return names
}
