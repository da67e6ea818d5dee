package main

import (
	"fmt"

	"github.com/evmtools/t8nkit/pkg/backend"
	"github.com/spf13/cobra"
)

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List the supported transition tool implementations",
	Run: func(cmd *cobra.Command, args []string) {
		for _, b := range backend.All() {
			sub := ""
			if b.Subcommand != "" {
				sub = " " + b.Subcommand
			}
			traces := "no traces"
			if b.Traces {
				traces = "traces"
			}
			fmt.Printf("%-16s %-11s %s%s (%s)\n", b.ID, b.Transport, b.Binary, sub, traces)
		}
	},
}

func init() {
	rootCmd.AddCommand(backendsCmd)
}
