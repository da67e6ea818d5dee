package main

import (
	"fmt"

	"github.com/evmtools/t8nkit"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of t8nkit",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("t8nkit version %s\n", t8nkit.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
