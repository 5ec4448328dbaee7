/*
Command heirloomd runs the time-locked will as an ABCI application.

	heirloomd init     write the app_state of a development chain
	heirloomd start    serve the ABCI socket and prometheus metrics
	heirloomd history  print the recorded will operations
	heirloomd version  print the application version

Every flag can also be set through the environment with the HEIRLOOM_
prefix, for example HEIRLOOM_BIND or HEIRLOOM_LOG_LEVEL.
*/
package main

import (
	"fmt"
	"os"

	"github.com/iov-one/heirloom"
	"github.com/spf13/cobra"
)

const (
	flagHome     = "home"
	flagBind     = "bind"
	flagMetrics  = "metrics"
	flagLogLevel = "log_level"
	flagDebug    = "debug"
	flagHistory  = "history"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "heirloomd",
		Short:         "Time-locked will ABCI application",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String(flagHome, defaultHome(), "directory to store files under")
	root.PersistentFlags().String(flagLogLevel, "info", "log level (debug, info, error, none)")
	root.PersistentFlags().Bool(flagDebug, false, "call stack returned on error")

	root.AddCommand(
		initCommand(),
		startCommand(),
		historyCommand(),
		versionCommand(),
	)
	return root
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the app version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), heirloom.Version())
		},
	}
}
