package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/workflowr/internal/metrics"
	"github.com/manav03panchal/workflowr/internal/model"
	"github.com/manav03panchal/workflowr/internal/output"
)

// projectCmd represents the project command.
var projectCmd = &cobra.Command{
	Use:     "project [PROJECT]",
	Aliases: []string{"projects", "proj", "pj"},
	Short:   "Manage projects",
	Long: `List all projects, show one project, or manage projects.

Examples:
  workflowr project
  workflowr project Site
  workflowr project create "Site" --client ACME --rate 100
  workflowr project edit Site --rate 120
  workflowr project delete Site --cascade`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeProjects,
	RunE:              runProjectList,
}

// Project subcommand flags.
var (
	projectFlagClient      string
	projectFlagRate        float64
	projectFlagDescription string
	projectFlagName        string
	projectFlagCascade     bool
)

var projectCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a new project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectCreate,
}

var projectEditCmd = &cobra.Command{
	Use:               "edit PROJECT",
	Short:             "Edit a project",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeProjects,
	RunE:              runProjectEdit,
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete PROJECT",
	Short: "Delete a project",
	Long: `Delete a project. Its tasks and time logs are kept unless --cascade
is given; kept tasks show up as orphans.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeProjects,
	RunE:              runProjectDelete,
}

func init() {
	projectCreateCmd.Flags().StringVarP(&projectFlagClient, "client", "c", "", "Client name")
	projectCreateCmd.Flags().Float64VarP(&projectFlagRate, "rate", "r", 0, "Hourly rate")
	projectCreateCmd.Flags().StringVarP(&projectFlagDescription, "description", "d", "", "Description")

	projectEditCmd.Flags().StringVarP(&projectFlagName, "name", "n", "", "New name")
	projectEditCmd.Flags().StringVarP(&projectFlagClient, "client", "c", "", "New client name")
	projectEditCmd.Flags().Float64VarP(&projectFlagRate, "rate", "r", 0, "New hourly rate")
	projectEditCmd.Flags().StringVarP(&projectFlagDescription, "description", "d", "", "New description")

	projectDeleteCmd.Flags().BoolVar(&projectFlagCascade, "cascade", false, "Also delete the project's tasks and time logs")

	projectCmd.AddCommand(projectCreateCmd)
	projectCmd.AddCommand(projectEditCmd)
	projectCmd.AddCommand(projectDeleteCmd)
	rootCmd.AddCommand(projectCmd)
}

func runProjectList(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return showProject(args[0])
	}

	projects := ctx.Session.Projects.List()
	tasks := ctx.Session.Tasks.List()

	if ctx.IsJSON() {
		outputs := make([]output.ProjectOutput, len(projects))
		for i, p := range projects {
			outputs[i] = projectOutput(p, tasks)
		}
		return ctx.Formatter.JSON(outputs)
	}

	cli := ctx.CLIFormatter()
	if len(projects) == 0 {
		cli.Muted("No projects yet. Create one with 'workflowr project create NAME'.")
		return nil
	}

	rows := make([]output.TableRow, len(projects))
	for i, p := range projects {
		rows[i] = output.TableRow{Columns: []string{
			shortID(p.ID),
			cli.ProjectName(p.Name),
			p.ClientName,
			ctx.Formatter.Money(p.Rate) + "/h",
			fmt.Sprintf("%d", len(metrics.FilterByProject(tasks, p.ID))),
			output.FormatHours(metrics.ProjectTotalMinutes(p.ID, tasks)),
			cli.Amount(metrics.ProjectTotalValue(p, tasks)),
		}}
	}
	cli.PrintTable([]string{"ID", "NAME", "CLIENT", "RATE", "TASKS", "TIME", "VALUE"}, rows)

	if orphans := ctx.Session.Orphans(); len(orphans) > 0 {
		cli.Println("")
		cli.Warning(fmt.Sprintf("%d task(s) belong to deleted projects", len(orphans)))
	}
	return nil
}

func projectOutput(p *model.Project, tasks []*model.Task) output.ProjectOutput {
	return output.NewProjectOutput(p,
		metrics.ProjectTotalMinutes(p.ID, tasks),
		len(metrics.FilterByProject(tasks, p.ID)),
		metrics.ProjectTotalValue(p, tasks))
}

func showProject(ref string) error {
	project, err := findProject(ref)
	if err != nil {
		return err
	}
	tasks := ctx.Session.Tasks.ListByProject(project.ID)

	if ctx.IsJSON() {
		out := struct {
			output.ProjectOutput
			Tasks []output.TaskOutput `json:"tasks"`
		}{ProjectOutput: projectOutput(project, tasks)}
		out.Tasks = make([]output.TaskOutput, len(tasks))
		for i, t := range tasks {
			out.Tasks[i] = taskOutput(t)
		}
		return ctx.Formatter.JSON(out)
	}

	cli := ctx.CLIFormatter()
	cli.Title("Project: " + project.Name)
	cli.Field("ID", project.ID)
	if project.ClientName != "" {
		cli.Field("Client", project.ClientName)
	}
	if project.Description != "" {
		cli.Field("Description", project.Description)
	}
	cli.Field("Rate", ctx.Formatter.Money(project.Rate)+"/h")
	cli.Field("Total time", output.FormatHours(metrics.ProjectTotalMinutes(project.ID, tasks)))
	cli.Field("Total value", cli.Amount(metrics.ProjectTotalValue(project, tasks)))
	cli.Println("")

	if len(tasks) > 0 {
		printTaskTable(tasks, false)
	}
	return nil
}

func runProjectCreate(cmd *cobra.Command, args []string) error {
	in := model.ProjectInput{
		Name:        &args[0],
		ClientName:  changedString(cmd, "client", projectFlagClient),
		Description: changedString(cmd, "description", projectFlagDescription),
		Rate:        changedFloat(cmd, "rate", projectFlagRate),
	}
	id, err := ctx.Session.Projects.Add(in)
	if err != nil {
		return err
	}
	p, _ := ctx.Session.Projects.Get(id)

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(projectOutput(p, nil))
	}
	ctx.CLIFormatter().Success(fmt.Sprintf("Created project %s (%s)", p.Name, shortID(p.ID)))
	return nil
}

func runProjectEdit(cmd *cobra.Command, args []string) error {
	project, err := findProject(args[0])
	if err != nil {
		return err
	}
	in := model.ProjectInput{
		Name:        changedString(cmd, "name", projectFlagName),
		ClientName:  changedString(cmd, "client", projectFlagClient),
		Description: changedString(cmd, "description", projectFlagDescription),
		Rate:        changedFloat(cmd, "rate", projectFlagRate),
	}
	if err := ctx.Session.Projects.Update(project.ID, in); err != nil {
		return err
	}
	return printMessage("Updated project "+project.Name, project.ID)
}

func runProjectDelete(cmd *cobra.Command, args []string) error {
	project, err := findProject(args[0])
	if err != nil {
		return err
	}

	if projectFlagCascade {
		err = ctx.Session.DeleteProjectCascade(project.ID)
	} else {
		err = ctx.Session.Projects.Delete(project.ID)
	}
	if err != nil {
		return err
	}
	return printMessage("Deleted project "+project.Name, project.ID)
}
