package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paperscout/internal/registry"
	"github.com/pdiddy/paperscout/internal/report"
	"github.com/pdiddy/paperscout/internal/scout"
	"github.com/pdiddy/paperscout/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Scrape venues for accepted papers matching keywords",
	Long: `Search scrapes the accepted-papers listing of each selected venue and
year, keeps papers whose title or abstract contains any of the keywords, and
writes Markdown and JSON reports into the output directory.

Venues accept IDs (ICML, NeurIPS, ...) and quick picks: ai, cv, nlp, all.
Without --venues the command prompts interactively.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("venues", "", "venue IDs or quick picks, comma-separated (ai, cv, nlp, all)")
	searchCmd.Flags().String("years", "", "years, comma-separated (e.g. 2023,2024)")
	searchCmd.Flags().String("keywords", "", "keywords, comma-separated; empty matches everything")
	searchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 20s)")
	searchCmd.Flags().Duration("delay", 0, "delay between consecutive requests (default 800ms)")
	searchCmd.Flags().Int("concurrency", 0, "parallel detail-page fetches (default 1)")
	searchCmd.Flags().String("out", "", "output directory (default \"output\")")
	searchCmd.Flags().Bool("json", false, "print results as JSON instead of a table")
	searchCmd.Flags().String("save", "", "save the search and its results to a YAML file")
	searchCmd.Flags().String("venues-file", "", "YAML file adding or overriding venue definitions")
	searchCmd.Flags().Bool("debug", false, "dump fetched pages as debug_*.html into the output directory")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	reg := registry.Builtin()
	if path, _ := cmd.Flags().GetString("venues-file"); path != "" {
		if err := reg.LoadFile(path); err != nil {
			return err
		}
	}

	req, err := buildRequest(cmd, reg)
	if err != nil {
		return err
	}
	if len(req.Venues) == 0 {
		return fmt.Errorf("no venues selected")
	}
	if len(req.Years) == 0 {
		return fmt.Errorf("no years selected")
	}

	cfg := scrapeConfig(cmd)
	runner := scout.NewRunner(reg, cfg, os.Stdout)
	res := runner.Run(cmd.Context(), req, os.Stdout)

	now := time.Now()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		if err := report.WriteJSON(os.Stdout, req, res, now); err != nil {
			return err
		}
	} else {
		report.FormatTable(res, os.Stdout)
	}

	mdPath, jsonPath, err := report.Export(cfg.OutputDir, req, res, now)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Reports written: %s, %s\n", mdPath, jsonPath)

	if savePath, _ := cmd.Flags().GetString("save"); savePath != "" {
		if err := report.WriteSearchFile(savePath, req, cfg, res, now); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Search saved: %s\n", savePath)
	}

	if res.Failed == len(res.Results) && len(res.Results) > 0 {
		return fmt.Errorf("all %d sources failed", res.Failed)
	}
	return nil
}

// buildRequest assembles the search request from flags, falling back to
// the interactive prompt when no venues were given.
func buildRequest(cmd *cobra.Command, reg *registry.Registry) (scout.Request, error) {
	venuesFlag, _ := cmd.Flags().GetString("venues")
	if venuesFlag == "" {
		return promptRequest(cmd.InOrStdin(), cmd.OutOrStdout(), reg)
	}

	var req scout.Request
	seen := make(map[string]bool)
	for _, token := range splitList(venuesFlag) {
		ids, err := reg.Resolve(token)
		if err != nil {
			return req, err
		}
		for _, id := range ids {
			if !seen[id] {
				seen[id] = true
				req.Venues = append(req.Venues, id)
			}
		}
	}

	yearsFlag, _ := cmd.Flags().GetString("years")
	years, err := parseYears(yearsFlag)
	if err != nil {
		return req, err
	}
	req.Years = years

	keywordsFlag, _ := cmd.Flags().GetString("keywords")
	req.Keywords = splitList(keywordsFlag)
	return req, nil
}

// scrapeConfig merges flag values over viper config over defaults.
func scrapeConfig(cmd *cobra.Command) types.ScrapeConfig {
	cfg := types.ScrapeConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("timeout"),
			UserAgent: viper.GetString("user_agent"),
		},
		RequestDelay:      viper.GetDuration("request_delay"),
		DetailConcurrency: viper.GetInt("detail_concurrency"),
		OutputDir:         viper.GetString("output_dir"),
	}

	if timeout, _ := cmd.Flags().GetDuration("timeout"); timeout > 0 {
		cfg.Timeout = timeout
	}
	if delay, _ := cmd.Flags().GetDuration("delay"); delay > 0 {
		cfg.RequestDelay = delay
	}
	if conc, _ := cmd.Flags().GetInt("concurrency"); conc > 0 {
		cfg.DetailConcurrency = conc
	}
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		cfg.OutputDir = out
	}
	cfg.Debug, _ = cmd.Flags().GetBool("debug")

	if cfg.Timeout == 0 {
		cfg.Timeout = types.DefaultTimeout
	}
	if cfg.RequestDelay == 0 {
		cfg.RequestDelay = types.DefaultRequestDelay
	}
	if cfg.DetailConcurrency == 0 {
		cfg.DetailConcurrency = types.DefaultDetailConcurrency
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = types.DefaultOutputDir
	}
	return cfg
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseYears(s string) ([]int, error) {
	var years []int
	for _, part := range splitList(s) {
		y, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid year %q", part)
		}
		years = append(years, y)
	}
	return years, nil
}
