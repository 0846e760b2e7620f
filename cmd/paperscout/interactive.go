package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/paperscout/internal/registry"
	"github.com/pdiddy/paperscout/internal/scout"
)

// promptRequest runs the interactive selection: venues by number, ID,
// or quick pick; then years; then keywords; then a confirmation.
func promptRequest(in io.Reader, out io.Writer, reg *registry.Registry) (scout.Request, error) {
	r := bufio.NewReader(in)
	var req scout.Request

	venues := reg.Venues()
	printVenueMenu(out, reg)
	fmt.Fprint(out, "\nSelect venues (numbers, IDs, or ai/cv/nlp/all, comma-separated): ")
	line, err := readLine(r)
	if err != nil {
		return req, err
	}
	seen := make(map[string]bool)
	for _, token := range splitList(line) {
		ids, err := resolveToken(reg, venues, token)
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
	if len(req.Venues) == 0 {
		return req, fmt.Errorf("no venues selected")
	}

	fmt.Fprint(out, "Years (e.g. 2023,2024): ")
	line, err = readLine(r)
	if err != nil {
		return req, err
	}
	req.Years, err = parseYears(line)
	if err != nil {
		return req, err
	}
	if len(req.Years) == 0 {
		return req, fmt.Errorf("no years selected")
	}

	fmt.Fprint(out, "Keywords (comma-separated, empty matches everything): ")
	line, err = readLine(r)
	if err != nil && err != io.EOF {
		return req, err
	}
	req.Keywords = splitList(line)

	fmt.Fprintf(out, "\nSearching %s for %s", strings.Join(req.Venues, ", "), joinYears(req.Years))
	if len(req.Keywords) > 0 {
		fmt.Fprintf(out, " matching %s", strings.Join(req.Keywords, ", "))
	}
	fmt.Fprint(out, "\nProceed? [y/N]: ")
	line, err = readLine(r)
	if err != nil && err != io.EOF {
		return req, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	if answer != "y" && answer != "yes" {
		return req, fmt.Errorf("search cancelled")
	}
	return req, nil
}

// resolveToken accepts menu numbers on top of the registry's own
// tokens (IDs and quick picks).
func resolveToken(reg *registry.Registry, venues []registry.Venue, token string) ([]string, error) {
	var n int
	if _, err := fmt.Sscanf(strings.TrimSpace(token), "%d", &n); err == nil {
		if n < 1 || n > len(venues) {
			return nil, fmt.Errorf("venue number %d out of range", n)
		}
		return []string{strings.ToUpper(venues[n-1].ID)}, nil
	}
	return reg.Resolve(token)
}

func printVenueMenu(out io.Writer, reg *registry.Registry) {
	venues := reg.Venues()
	fmt.Fprintln(out, "Available venues:")
	for _, cat := range reg.Categories() {
		fmt.Fprintf(out, "\n  %s\n", cat)
		for i, v := range venues {
			if v.Category != cat {
				continue
			}
			fmt.Fprintf(out, "    %2d. %-8s %s\n", i+1, v.ID, v.Name)
		}
	}
	fmt.Fprintln(out, "\n  Quick picks: ai (ICML/NeurIPS/ICLR/AAAI/IJCAI), cv (CVPR/ICCV/ECCV), nlp (ACL/EMNLP/NAACL), all")
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	line = strings.TrimSpace(line)
	if err == io.EOF && line != "" {
		return line, nil
	}
	return line, err
}

func joinYears(years []int) string {
	var parts []string
	for _, y := range years {
		parts = append(parts, fmt.Sprintf("%d", y))
	}
	return strings.Join(parts, ", ")
}
