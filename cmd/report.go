package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/workflowr/internal/metrics"
	"github.com/manav03panchal/workflowr/internal/model"
	"github.com/manav03panchal/workflowr/internal/output"
)

var reportFlagProject string

// reportCmd represents the report command.
var reportCmd = &cobra.Command{
	Use:     "report",
	Aliases: []string{"stats"},
	Short:   "Show time, value and efficiency analytics",
	Long: `Show tracked time, billable value, estimate accuracy and the last
seven days of activity, for every project or just one.

Examples:
  workflowr report
  workflowr report --project Site
  workflowr report --format json`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportFlagProject, "project", "p", "", "Limit the report to one project")
	_ = reportCmd.RegisterFlagCompletionFunc("project", completeProjects)
	rootCmd.AddCommand(reportCmd)
}

// reportOutput is the JSON shape of a report.
type reportOutput struct {
	Project           string                 `json:"project,omitempty"`
	TotalMinutes      int                    `json:"total_minutes"`
	TotalValue        float64                `json:"total_value"`
	AverageEfficiency *float64               `json:"average_efficiency,omitempty"`
	StatusCounts      map[string]int         `json:"status_counts"`
	Distribution      []metrics.ProjectShare `json:"distribution"`
	Weekly            []metrics.DayTotal     `json:"weekly"`
	Tasks             []output.TaskOutput    `json:"tasks"`
}

// runDashboard prints the overview shown by a bare `workflowr`.
func runDashboard(cmd *cobra.Command, args []string) error {
	projects := ctx.Session.Projects.List()
	tasks := ctx.Session.Tasks.List()
	summary := metrics.Dashboard(projects, tasks, ctx.Now())

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(summary)
	}

	cli := ctx.CLIFormatter()
	if summary.Projects == 0 {
		empty, err := ctx.Session.IsEmpty()
		if err != nil {
			return err
		}
		if empty {
			cli.Title("Welcome to Workflowr")
			cli.Muted("Nothing is stored yet. Start with 'workflowr project create NAME --rate 100'.")
			return nil
		}
		cli.Muted("No projects yet. Create one with 'workflowr project create NAME --rate 100'.")
		return nil
	}

	cli.Title("Workflowr")
	cli.Field("Projects", fmt.Sprintf("%d", summary.Projects))
	cli.Field("Tasks", fmt.Sprintf("%d (%d done)", summary.Tasks, summary.CompletedTasks))
	cli.Field("Tracked", output.FormatHours(summary.TotalMinutes))
	cli.Field("Value", cli.Amount(summary.TotalValue))
	cli.Println()
	printWeekly(cli, summary.Weekly)

	if running := ctx.Session.Timers.Running(); len(running) > 0 {
		cli.Println()
		cli.Warning(fmt.Sprintf("%d timer(s) running", len(running)))
	}
	return nil
}

func runReport(cmd *cobra.Command, args []string) error {
	projects := ctx.Session.Projects.List()
	tasks := ctx.Session.Tasks.List()

	var scope *model.Project
	if reportFlagProject != "" {
		p, err := findProject(reportFlagProject)
		if err != nil {
			return err
		}
		scope = p
		projects = []*model.Project{p}
		tasks = metrics.FilterByProject(tasks, p.ID)
	}

	report := reportOutput{
		TotalValue:   metrics.TotalValue(projects, tasks),
		StatusCounts: make(map[string]int),
		Distribution: metrics.ProjectDistribution(projects, tasks),
		Weekly:       metrics.WeeklyProductivity(tasks, ctx.Now()),
		Tasks:        make([]output.TaskOutput, len(tasks)),
	}
	if report.Distribution == nil {
		report.Distribution = []metrics.ProjectShare{}
	}
	if scope != nil {
		report.Project = scope.Name
	}
	for _, t := range tasks {
		report.TotalMinutes += t.TimeSpent
	}
	if avg, ok := metrics.AverageEfficiency(tasks); ok {
		report.AverageEfficiency = &avg
	}
	for status, n := range metrics.StatusCounts(tasks, "") {
		report.StatusCounts[string(status)] = n
	}
	for i, t := range tasks {
		report.Tasks[i] = taskOutput(t)
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(report)
	}

	cli := ctx.CLIFormatter()
	title := "Report"
	if scope != nil {
		title = "Report · " + scope.Name
	}
	cli.Title(title)
	cli.Field("Tracked", output.FormatHours(report.TotalMinutes))
	cli.Field("Value", cli.Amount(report.TotalValue))
	if report.AverageEfficiency != nil {
		cli.Field("Efficiency", output.FormatPercent(*report.AverageEfficiency))
	} else {
		cli.Field("Efficiency", "-")
	}
	for _, s := range model.Statuses {
		cli.Field(s.Label(), fmt.Sprintf("%d", report.StatusCounts[string(s)]))
	}

	if scope == nil && len(report.Distribution) > 0 {
		cli.Println()
		cli.Title("By project")
		rows := make([]output.TableRow, len(report.Distribution))
		for i, share := range report.Distribution {
			pct := float64(share.Minutes) / float64(report.TotalMinutes) * 100
			rows[i] = output.TableRow{Columns: []string{
				cli.ProjectName(share.Name),
				output.FormatHours(share.Minutes),
				cli.Amount(share.Value),
				output.ProgressBar(pct, 20) + " " + output.FormatPercent(pct),
			}}
		}
		cli.PrintTable([]string{"PROJECT", "TIME", "VALUE", "SHARE"}, rows)
	}

	cli.Println()
	printWeekly(cli, report.Weekly)

	if len(tasks) > 0 {
		cli.Println()
		cli.Title("Tasks")
		printTaskTable(tasks, scope == nil)
	}
	return nil
}

// printWeekly draws the last seven days as bars scaled to the busiest day.
func printWeekly(cli *output.CLIFormatter, days []metrics.DayTotal) {
	cli.Title("Last 7 days")
	var peak int
	for _, d := range days {
		if d.Minutes > peak {
			peak = d.Minutes
		}
	}
	for _, d := range days {
		var pct float64
		if peak > 0 {
			pct = float64(d.Minutes) / float64(peak) * 100
		}
		cli.Printf("  %s %s %s\n", d.Label, output.ProgressBar(pct, 20), output.FormatHours(d.Minutes))
	}
}
