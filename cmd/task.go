package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/workflowr/internal/errors"
	"github.com/manav03panchal/workflowr/internal/metrics"
	"github.com/manav03panchal/workflowr/internal/model"
	"github.com/manav03panchal/workflowr/internal/output"
	"github.com/manav03panchal/workflowr/internal/parser"
)

// taskCmd represents the task command.
var taskCmd = &cobra.Command{
	Use:     "task",
	Aliases: []string{"tasks", "tk"},
	Short:   "Manage tasks",
	Long: `List and manage the tasks of your projects.

Examples:
  workflowr task
  workflowr task --project Site --status done
  workflowr task create Design --project Site --estimate 2h
  workflowr task status Design in_progress
  workflowr task edit Design --estimate 90m`,
	Args: cobra.NoArgs,
	RunE: runTaskList,
}

// Task subcommand flags.
var (
	taskFlagProject     string
	taskFlagStatus      string
	taskFlagEstimate    string
	taskFlagDescription string
	taskFlagName        string
)

var taskCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a task in a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskCreate,
}

var taskEditCmd = &cobra.Command{
	Use:               "edit TASK",
	Short:             "Edit a task",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeTasks,
	RunE:              runTaskEdit,
}

var taskStatusCmd = &cobra.Command{
	Use:               "status TASK STATUS",
	Short:             "Move a task to pending, in_progress or done",
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: completeTaskStatus,
	RunE:              runTaskStatus,
}

var taskDeleteCmd = &cobra.Command{
	Use:               "delete TASK",
	Short:             "Delete a task and its time logs",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeTasks,
	RunE:              runTaskDelete,
}

func init() {
	taskCmd.Flags().StringVarP(&taskFlagProject, "project", "p", "", "Only tasks of this project")
	taskCmd.Flags().StringVarP(&taskFlagStatus, "status", "s", "", "Only tasks with this status")

	taskCreateCmd.Flags().StringVarP(&taskFlagProject, "project", "p", "", "Project (required)")
	taskCreateCmd.Flags().StringVarP(&taskFlagEstimate, "estimate", "e", "", "Estimate, e.g. 90, 45m, 1h30m")
	taskCreateCmd.Flags().StringVarP(&taskFlagDescription, "description", "d", "", "Description")
	taskCreateCmd.Flags().StringVarP(&taskFlagStatus, "status", "s", "", "Initial status (default pending)")
	_ = taskCreateCmd.MarkFlagRequired("project")
	_ = taskCreateCmd.RegisterFlagCompletionFunc("project", completeProjects)

	taskEditCmd.Flags().StringVarP(&taskFlagName, "name", "n", "", "New name")
	taskEditCmd.Flags().StringVarP(&taskFlagProject, "project", "p", "", "Move to another project")
	taskEditCmd.Flags().StringVarP(&taskFlagEstimate, "estimate", "e", "", "New estimate")
	taskEditCmd.Flags().StringVarP(&taskFlagDescription, "description", "d", "", "New description")
	taskEditCmd.Flags().StringVarP(&taskFlagStatus, "status", "s", "", "New status")

	taskCmd.AddCommand(taskCreateCmd)
	taskCmd.AddCommand(taskEditCmd)
	taskCmd.AddCommand(taskStatusCmd)
	taskCmd.AddCommand(taskDeleteCmd)
	rootCmd.AddCommand(taskCmd)
}

func runTaskList(cmd *cobra.Command, args []string) error {
	tasks := ctx.Session.Tasks.List()
	if taskFlagProject != "" {
		project, err := findProject(taskFlagProject)
		if err != nil {
			return err
		}
		tasks = ctx.Session.Tasks.ListByProject(project.ID)
	}
	if taskFlagStatus != "" {
		status, err := parseStatus(taskFlagStatus)
		if err != nil {
			return err
		}
		var filtered []*model.Task
		for _, t := range tasks {
			if t.Status == status {
				filtered = append(filtered, t)
			}
		}
		tasks = filtered
	}

	if ctx.IsJSON() {
		outputs := make([]output.TaskOutput, len(tasks))
		for i, t := range tasks {
			outputs[i] = taskOutput(t)
		}
		return ctx.Formatter.JSON(outputs)
	}

	if len(tasks) == 0 {
		ctx.CLIFormatter().Muted("No tasks found.")
		return nil
	}
	printTaskTable(tasks, taskFlagProject == "")
	return nil
}

func taskOutput(t *model.Task) output.TaskOutput {
	var eff *float64
	if e, ok := metrics.TaskEfficiency(t); ok {
		eff = &e
	}
	return output.NewTaskOutput(t, eff, ctx.Session.Timers.IsRunning(t.ID))
}

// printTaskTable prints tasks with their time against estimate.
func printTaskTable(tasks []*model.Task, withProject bool) {
	cli := ctx.CLIFormatter()
	names := projectNames()

	headers := []string{"ID", "TASK", "STATUS", "SPENT", "ESTIMATE", "PROGRESS", "EFFICIENCY"}
	if withProject {
		headers = append([]string{"PROJECT"}, headers...)
	}

	rows := make([]output.TableRow, len(tasks))
	for i, t := range tasks {
		estimate := "-"
		if t.TimeEstimated > 0 {
			estimate = output.FormatHours(t.TimeEstimated)
		}
		efficiency := "-"
		if e, ok := metrics.TaskEfficiency(t); ok {
			efficiency = output.FormatPercent(e)
		}
		cols := []string{
			shortID(t.ID),
			cli.TaskName(t.Name),
			cli.Status(t.Status),
			output.FormatHours(t.TimeSpent),
			estimate,
			output.ProgressBar(float64(metrics.TaskProgress(t)), 10),
			efficiency,
		}
		if withProject {
			name, ok := names[t.ProjectID]
			if !ok {
				name = "(deleted)"
			}
			cols = append([]string{cli.ProjectName(name)}, cols...)
		}
		rows[i] = output.TableRow{Columns: cols}
	}
	cli.PrintTable(headers, rows)
}

func parseStatus(s string) (model.TaskStatus, error) {
	status, err := model.ParseTaskStatus(s)
	if err != nil {
		return "", errors.NewUserErrorWithField("status", s, "Unknown status",
			"Use pending, in_progress or done").Because(errors.ErrInvalidStatus)
	}
	return status, nil
}

func parseEstimate(s string) (int, error) {
	if s == "0" {
		return 0, nil
	}
	return parser.ParseMinutes(s)
}

func runTaskCreate(cmd *cobra.Command, args []string) error {
	project, err := findProject(taskFlagProject)
	if err != nil {
		return err
	}
	in := model.TaskInput{
		ProjectID:   &project.ID,
		Name:        &args[0],
		Description: changedString(cmd, "description", taskFlagDescription),
	}
	if cmd.Flags().Changed("estimate") {
		est, err := parseEstimate(taskFlagEstimate)
		if err != nil {
			return err
		}
		in.TimeEstimated = &est
	}
	if cmd.Flags().Changed("status") {
		status, err := parseStatus(taskFlagStatus)
		if err != nil {
			return err
		}
		in.Status = &status
	}

	id, err := ctx.Session.AddTask(in)
	if err != nil {
		return err
	}
	t, _ := ctx.Session.Tasks.Get(id)
	if ctx.IsJSON() {
		return ctx.Formatter.JSON(taskOutput(t))
	}
	ctx.CLIFormatter().Success(fmt.Sprintf("Created task %s in %s (%s)", t.Name, project.Name, shortID(t.ID)))
	return nil
}

func runTaskEdit(cmd *cobra.Command, args []string) error {
	task, err := findTask(args[0])
	if err != nil {
		return err
	}
	in := model.TaskInput{
		Name:        changedString(cmd, "name", taskFlagName),
		Description: changedString(cmd, "description", taskFlagDescription),
	}
	if cmd.Flags().Changed("estimate") {
		est, err := parseEstimate(taskFlagEstimate)
		if err != nil {
			return err
		}
		in.TimeEstimated = &est
	}
	if cmd.Flags().Changed("status") {
		status, err := parseStatus(taskFlagStatus)
		if err != nil {
			return err
		}
		in.Status = &status
	}

	if cmd.Flags().Changed("project") {
		project, err := findProject(taskFlagProject)
		if err != nil {
			return err
		}
		in.ProjectID = &project.ID
		err = ctx.Session.MoveTask(task.ID, in)
		if err != nil {
			return err
		}
	} else if err := ctx.Session.Tasks.Update(task.ID, in); err != nil {
		return err
	}
	return printMessage("Updated task "+task.Name, task.ID)
}

func runTaskStatus(cmd *cobra.Command, args []string) error {
	task, err := findTask(args[0])
	if err != nil {
		return err
	}
	status, err := parseStatus(args[1])
	if err != nil {
		return err
	}
	if err := ctx.Session.Tasks.UpdateStatus(task.ID, status); err != nil {
		return err
	}
	return printMessage(fmt.Sprintf("Moved %s to %s", task.Name, status.Label()), task.ID)
}

func runTaskDelete(cmd *cobra.Command, args []string) error {
	task, err := findTask(args[0])
	if err != nil {
		return err
	}
	if err := ctx.Session.DeleteTaskCascade(task.ID); err != nil {
		return err
	}
	return printMessage("Deleted task "+task.Name, task.ID)
}
