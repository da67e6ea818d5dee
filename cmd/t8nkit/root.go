package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "t8nkit",
	Short: "t8nkit drives external EVM state-transition tools",
	Long: `t8nkit invokes an external transition tool (geth's evm, evmone-t8n,
besu's evmtool, ...) with a pre-state allocation, a transaction set and a
block environment, and returns the validated post-state and result.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("backend", "", "Transition tool backend id (default from config, else geth-fs)")
	rootCmd.PersistentFlags().String("evm-bin", "", "Path to the transition tool binary (default: $PATH lookup)")
	rootCmd.PersistentFlags().String("config", "", "Path to a tools config file (YAML)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}
