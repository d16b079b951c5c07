package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/workflowr/internal/model"
	"github.com/manav03panchal/workflowr/internal/output"
	"github.com/manav03panchal/workflowr/internal/parser"
	"github.com/manav03panchal/workflowr/internal/tui"
)

// timerCmd groups the time tracking commands.
var timerCmd = &cobra.Command{
	Use:     "timer",
	Aliases: []string{"t"},
	Short:   "Track time on tasks",
	Long: `Run a live timer on a task, record time manually, or list recorded time.

Examples:
  workflowr timer run Design
  workflowr timer log Design 1h30m
  workflowr timer history Design`,
}

var timerRunCmd = &cobra.Command{
	Use:   "run TASK",
	Short: "Start a live timer on a task",
	Long: `Start a live timer on a task. The elapsed time is added to the task
when the timer is paused.

Keys:
  enter, p, q   pause, record the time and quit
  space         pause or resume
  esc           discard the running time and quit`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeTasks,
	RunE:              runTimerRun,
}

var timerLogCmd = &cobra.Command{
	Use:   "log TASK DURATION",
	Short: "Record time spent without a timer",
	Long: `Record time spent on a task without running a timer.

DURATION is a number of minutes or a value like 45m, 1h30m or 1.5h.`,
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: completeTasks,
	RunE:              runTimerLog,
}

var timerHistoryCmd = &cobra.Command{
	Use:               "history [TASK]",
	Aliases:           []string{"hist"},
	Short:             "List recorded time",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeTasks,
	RunE:              runTimerHistory,
}

func init() {
	timerCmd.AddCommand(timerRunCmd)
	timerCmd.AddCommand(timerLogCmd)
	timerCmd.AddCommand(timerHistoryCmd)
	rootCmd.AddCommand(timerCmd)
}

func runTimerRun(cmd *cobra.Command, args []string) error {
	if err := requireCLI("timer run"); err != nil {
		return err
	}
	task, err := findTask(args[0])
	if err != nil {
		return err
	}

	m, err := tui.RunTimer(tui.TimerConfig{
		Session:         ctx.Session,
		TaskID:          task.ID,
		RefreshInterval: ctx.Config.Board.RefreshInterval,
		UseColor:        ctx.Formatter.IsColorEnabled(),
	})
	if err != nil {
		return err
	}

	if m.Outcome() == tui.OutcomeCancelled {
		return printMessage("Timer cancelled, nothing recorded on "+task.Name, task.ID)
	}
	var minutes int
	for _, l := range m.Logs() {
		minutes += l.Duration
	}
	return printMessage(fmt.Sprintf("Recorded %s on %s", output.FormatHours(minutes), task.Name), task.ID)
}

func runTimerLog(cmd *cobra.Command, args []string) error {
	task, err := findTask(args[0])
	if err != nil {
		return err
	}
	minutes, err := parser.ParseMinutes(args[1])
	if err != nil {
		return err
	}

	log, err := ctx.Session.Timers.AddManualTime(task.ID, minutes)
	if err != nil {
		return err
	}
	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.NewTimeLogOutput(log))
	}
	updated, _ := ctx.Session.Tasks.Get(task.ID)
	ctx.CLIFormatter().Success(fmt.Sprintf("Recorded %s on %s (total %s)",
		output.FormatHours(minutes), task.Name, output.FormatHours(updated.TimeSpent)))
	return nil
}

func runTimerHistory(cmd *cobra.Command, args []string) error {
	var logs []*model.TimeLog
	if len(args) == 1 {
		task, err := findTask(args[0])
		if err != nil {
			return err
		}
		logs = ctx.Session.Timers.LogsForTask(task.ID)
	} else {
		logs = ctx.Session.Timers.History()
	}

	if ctx.IsJSON() {
		outputs := make([]output.TimeLogOutput, len(logs))
		for i, l := range logs {
			outputs[i] = output.NewTimeLogOutput(l)
		}
		return ctx.Formatter.JSON(outputs)
	}

	cli := ctx.CLIFormatter()
	if len(logs) == 0 {
		cli.Muted("No time recorded yet.")
		return nil
	}

	names := make(map[string]string)
	for _, t := range ctx.Session.Tasks.List() {
		names[t.ID] = t.Name
	}
	rows := make([]output.TableRow, len(logs))
	var total int
	for i, l := range logs {
		name, ok := names[l.TaskID]
		if !ok {
			name = "(deleted)"
		}
		end := "-"
		if l.EndTime != nil {
			end = output.FormatTime(*l.EndTime)
		}
		rows[i] = output.TableRow{Columns: []string{
			output.FormatTime(l.StartTime),
			end,
			cli.TaskName(name),
			output.FormatHours(l.Duration),
		}}
		total += l.Duration
	}
	cli.PrintTable([]string{"START", "END", "TASK", "DURATION"}, rows)
	cli.Println()
	cli.Field("Total", output.FormatHours(total))
	return nil
}
