package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paperscout/internal/registry"
)

var venuesCmd = &cobra.Command{
	Use:   "venues",
	Short: "List the configured venues",
	Long: `Venues prints the built-in venue registry grouped by category, with
each venue's ID, name, and the years its listing is known for. A
--venues-file overlay is applied before printing.`,
	RunE: runVenues,
}

func init() {
	venuesCmd.Flags().String("venues-file", "", "YAML file adding or overriding venue definitions")

	rootCmd.AddCommand(venuesCmd)
}

func runVenues(cmd *cobra.Command, args []string) error {
	reg := registry.Builtin()
	if path, _ := cmd.Flags().GetString("venues-file"); path != "" {
		if err := reg.LoadFile(path); err != nil {
			return err
		}
	}

	venues := reg.Venues()
	for _, cat := range reg.Categories() {
		fmt.Fprintf(os.Stdout, "%s\n", cat)
		for _, v := range venues {
			if v.Category != cat {
				continue
			}
			fmt.Fprintf(os.Stdout, "  %-8s %-60s %s\n", v.ID, v.Name, joinYears(v.Years))
		}
		fmt.Fprintln(os.Stdout)
	}

	var uncategorized []registry.Venue
	for _, v := range venues {
		if v.Category == "" {
			uncategorized = append(uncategorized, v)
		}
	}
	if len(uncategorized) > 0 {
		fmt.Fprintln(os.Stdout, "Other")
		for _, v := range uncategorized {
			fmt.Fprintf(os.Stdout, "  %-8s %-60s %s\n", v.ID, v.Name, joinYears(v.Years))
		}
	}

	fmt.Fprintf(os.Stdout, "%d venues. Quick picks: %s\n", len(venues), strings.Join([]string{"ai", "cv", "nlp", "all"}, ", "))
	return nil
}
