// Package cmd provides the CLI commands for Workflowr.
//
// Copyright (c) Manav Panchal
//
// Licensed under the SEGV License, Version 1.0
// See LICENSE file for full license text.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/workflowr/internal/output"
	"github.com/manav03panchal/workflowr/internal/runtime"
)

// Version information (set at build time via ldflags).
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global flags.
var (
	flagFormat string
	flagColor  string
	flagDebug  bool
	flagConfig string
)

// ctx is the shared runtime context.
var ctx *runtime.Context

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "workflowr",
	Short: "Projects, tasks, time tracking and invoices from the terminal",
	Long: `Workflowr tracks the time you spend on client projects and turns it
into invoices.

Examples:
  workflowr project create "Site" --client ACME --rate 100
  workflowr task create Design --project Site --estimate 2h
  workflowr timer run Design
  workflowr timer log Design 1h30m
  workflowr report
  workflowr invoice Site -o invoice.pdf`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for commands that never touch storage
		switch cmd.Name() {
		case "completion", "help", "version":
			return nil
		}

		format, err := output.ParseFormat(flagFormat)
		if err != nil {
			return err
		}
		colorMode, err := output.ParseColorMode(flagColor)
		if err != nil {
			return err
		}

		opts := runtime.DefaultOptions()
		opts.ConfigFile = flagConfig
		opts.Format = format
		opts.ColorMode = colorMode
		opts.Debug = flagDebug
		opts.Command = cmd.CommandPath()

		ctx, err = runtime.New(opts)
		if err != nil {
			return err
		}
		ctx.Formatter.Writer = cmd.OutOrStdout()
		ctx.Debugf("command started", "args", args)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeContext()
	},
	RunE: runDashboard,
}

func closeContext() error {
	if ctx == nil {
		return nil
	}
	err := ctx.Close()
	ctx = nil
	return err
}

// Execute runs the root command and prints any error. The returned error is
// the one that ended the command, for the exit code.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		err = runtime.WrapDiskFullError(err, "command")
		printError(err)
	}
	// PersistentPostRunE does not run when the command fails.
	_ = closeContext()
	return err
}

func printError(err error) {
	if ctx != nil && ctx.IsJSON() {
		_ = ctx.Formatter.JSON(runtime.ErrorOutput(err))
		return
	}
	debug := ctx != nil && ctx.Debug
	fmt.Fprintln(rootCmd.ErrOrStderr(), "Error: "+runtime.FormatError(err, debug))
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "cli",
		"Output format: cli, json, plain")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto",
		"Color output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false,
		"Enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "",
		"Config file (default $XDG_CONFIG_HOME/workflowr/workflowr.yml)")

	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("workflowr %s\n", Version)
		cmd.Printf("  commit: %s\n", Commit)
		cmd.Printf("  built: %s\n", BuildTime)
	},
}
