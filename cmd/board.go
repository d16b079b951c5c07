package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/workflowr/internal/tui"
)

var boardFlagProject string

// boardCmd opens the interactive kanban board.
var boardCmd = &cobra.Command{
	Use:     "board",
	Aliases: []string{"kanban", "ui"},
	Short:   "Open the interactive task board",
	Long: `Open a kanban board with one column per task status.

Keys:
  ←/→, tab      switch column
  ↑/↓           select task
  h/l           move task to the previous/next status
  space         start or pause the timer of the selected task
  x             discard the running timer of the selected task
  r             reload
  q             pause every running timer and quit`,
	Args: cobra.NoArgs,
	RunE: runBoard,
}

func init() {
	boardCmd.Flags().StringVarP(&boardFlagProject, "project", "p", "", "Only show tasks of this project")
	_ = boardCmd.RegisterFlagCompletionFunc("project", completeProjects)
	rootCmd.AddCommand(boardCmd)
}

func runBoard(cmd *cobra.Command, args []string) error {
	if err := requireCLI("board"); err != nil {
		return err
	}
	cfg := tui.BoardConfig{
		Session:         ctx.Session,
		RefreshInterval: ctx.Config.Board.RefreshInterval,
		Now:             ctx.Now,
	}
	if boardFlagProject != "" {
		p, err := findProject(boardFlagProject)
		if err != nil {
			return err
		}
		cfg.ProjectID = p.ID
	}
	return tui.RunBoard(cfg)
}
