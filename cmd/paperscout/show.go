package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paperscout/internal/report"
)

var showCmd = &cobra.Command{
	Use:   "show <search-file>",
	Short: "Re-render a previously saved search",
	Long: `Show loads a YAML search file written by "search --save" and prints
its results without re-scraping anything.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().Bool("json", false, "print results as JSON instead of a table")

	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	sf, err := report.ReadSearchFile(args[0])
	if err != nil {
		return err
	}

	res := sf.Run()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return report.WriteJSON(os.Stdout, sf.Request, res, sf.Summary.Timestamp)
	}

	fmt.Fprintf(os.Stdout, "Saved search from %s: venues=%s years=%s keywords=%s\n\n",
		sf.Summary.Timestamp.Format("2006-01-02 15:04:05"),
		strings.Join(sf.Request.Venues, ","),
		joinYears(sf.Request.Years),
		strings.Join(sf.Request.Keywords, ","))
	report.FormatTable(res, os.Stdout)
	return nil
}
