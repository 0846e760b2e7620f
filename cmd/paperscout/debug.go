package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paperscout/internal/debugdump"
	"github.com/pdiddy/paperscout/pkg/types"
)

var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Analyze dumped debug pages",
	Long: `Debug summarizes the debug_*.html files written by "search --debug":
page size, link count, and rough counts of author- and abstract-bearing
tags. The counts suggest which selectors a venue's rules should use.`,
	RunE: runDebug,
}

func init() {
	debugCmd.Flags().String("out", "", "directory holding the debug files (default \"output\")")

	rootCmd.AddCommand(debugCmd)
}

func runDebug(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("out")
	if dir == "" {
		dir = viper.GetString("output_dir")
	}
	if dir == "" {
		dir = types.DefaultOutputDir
	}
	return debugdump.Analyze(dir, os.Stdout)
}
