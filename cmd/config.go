package cmd

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/workflowr/internal/config"
	"github.com/manav03panchal/workflowr/internal/errors"
)

// configCmd represents the config command.
var configCmd = &cobra.Command{
	Use:     "config",
	Aliases: []string{"cfg", "settings"},
	Short:   "Show or change configuration",
	Long: `Show the effective configuration or change the config file.

Values come from defaults, the config file and WORKFLOWR_* environment
variables (storage.backend is WORKFLOWR_STORAGE_BACKEND).

Examples:
  workflowr config
  workflowr config set invoice.company "Acme Studio"
  workflowr config set invoice.due_days 30
  workflowr config init
  workflowr config path`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:               "set KEY VALUE",
	Short:             "Set a value in the config file",
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: completeConfigKeys,
	RunE:              runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the current configuration to the config file",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

// configFile is the file config commands read and write.
func configFile() string {
	if flagConfig != "" {
		return flagConfig
	}
	return config.DefaultConfigFile()
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	settings := ctx.Config.Settings()
	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]any{
			"file":     ctx.Config.File,
			"settings": settings,
		})
	}

	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cli := ctx.CLIFormatter()
	cli.Title("Configuration")
	for _, k := range keys {
		cli.Printf("  %-24s %v\n", k, settings[k])
	}
	cli.Println()
	if ctx.Config.File != "" {
		cli.Muted("File: " + ctx.Config.File)
	} else {
		cli.Muted("No config file, using defaults (" + configFile() + ")")
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	path := configFile()
	if err := config.Set(path, args[0], args[1]); err != nil {
		return errors.Wrap(err, "config set")
	}
	return printMessage("Set "+args[0]+" in "+path, "")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configFile()
	if err := ctx.Config.Save(path); err != nil {
		return err
	}
	return printMessage("Wrote "+path, "")
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]string{"path": configFile()})
	}
	ctx.Formatter.Println(configFile())
	return nil
}
