package main

import (
	"fmt"
	"sort"

	"github.com/riftlang/riftbuild/internal/config"
	"github.com/spf13/cobra"
)

func newGraphCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "graph",
		Short: "print the parsed project dependency graph",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := config.ParseFile(root.configPath)
			if err != nil {
				return err
			}

			names := make([]string, 0, len(doc.Projects))
			deps := make(map[string][]string, len(doc.Projects))
			for _, p := range doc.Projects {
				names = append(names, p.Name)
				deps[p.Name] = p.DependsOn
			}
			sort.Strings(names)

			for _, name := range names {
				if len(deps[name]) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\n", name)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s -> %v\n", name, deps[name])
			}
			return nil
		},
	}
}
