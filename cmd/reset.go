package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/workflowr/internal/errors"
)

var resetFlagYes bool

// resetCmd wipes every project, task and time log.
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all projects, tasks and time logs",
	Long: `Delete all projects, tasks and recorded time. Running timers are
discarded. This cannot be undone, so --yes is required.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&resetFlagYes, "yes", "y", false, "Confirm the reset")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	if !resetFlagYes {
		return errors.NewUserError("Reset deletes all data",
			"Run 'workflowr reset --yes' to confirm").Because(errors.ErrConfirmRequired)
	}
	if err := ctx.Session.ResetAll(); err != nil {
		return err
	}
	return printMessage("All data deleted", "")
}
