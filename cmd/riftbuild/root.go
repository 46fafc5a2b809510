package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	verbose    bool
	humanLogs  bool
	configPath string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "riftbuild",
		Short:         "riftbuild schedules and compiles a project dependency graph",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&flags.humanLogs, "human-logs", true, "render logs as human-readable console output instead of JSON")
	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "projects.yaml", "path to the project-graph YAML document")

	cmd.AddCommand(newCompileCmd(flags))
	cmd.AddCommand(newGraphCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
