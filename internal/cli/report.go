package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/netdebug/wgflip/internal/domain"
)

type jsonFile struct {
	Path    string         `json:"path"`
	NewPath string         `json:"new_path"`
	Changed int            `json:"lines_changed"`
	Rules   map[string]int `json:"rules"`
	Written bool           `json:"written"`
	Renamed bool           `json:"renamed"`
}

func printJSONRun(w io.Writer, run domain.RunResult) error {
	files := make([]jsonFile, 0, len(run.Files))
	for _, f := range run.Files {
		files = append(files, jsonFile{
			Path:    f.Path,
			NewPath: f.NewPath,
			Changed: len(f.Changes),
			Rules:   f.RuleCounts(),
			Written: f.Written,
			Renamed: f.Renamed,
		})
	}

	payload := map[string]any{
		"mode":        run.Mode,
		"dry_run":     run.DryRun,
		"started_at":  run.StartedAt.UTC().Format(time.RFC3339),
		"ended_at":    run.EndedAt.UTC().Format(time.RFC3339),
		"files":       files,
		"files_total": len(run.Files),
		"changed":     run.ChangedFiles(),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func printDryRun(w io.Writer, run domain.RunResult) error {
	th := newTheme(w)

	for _, f := range run.Files {
		if f.NewPath != f.Path {
			fmt.Fprintln(w, th.Title.Render(fmt.Sprintf("rename %s -> %s", f.Path, f.NewPath)))
		}
		if len(f.Changes) == 0 {
			continue
		}

		text, err := unifiedDiff(f)
		if err != nil {
			return fmt.Errorf("diff %s: %w", f.Path, err)
		}
		for _, line := range strings.SplitAfter(text, "\n") {
			if line == "" {
				continue
			}
			fmt.Fprint(w, styleDiffLine(th, line))
		}
	}

	fmt.Fprintln(w, th.Faint.Render(fmt.Sprintf("%d of %d file(s) would change", run.ChangedFiles(), len(run.Files))))
	return nil
}

func unifiedDiff(f domain.FileResult) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        terminated(f.Before),
		B:        terminated(f.After),
		FromFile: f.Path,
		ToFile:   f.NewPath,
		Context:  3,
	})
}

// terminated gives every line a "\n" so a missing final newline does not
// glue two diff lines together.
func terminated(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		if !strings.HasSuffix(l, "\n") {
			l += "\n"
		}
		out[i] = l
	}
	return out
}

func styleDiffLine(th theme, line string) string {
	body := strings.TrimSuffix(line, "\n")
	switch {
	case strings.HasPrefix(body, "+++"), strings.HasPrefix(body, "---"):
		body = th.Title.Render(body)
	case strings.HasPrefix(body, "@@"):
		body = th.Hunk.Render(body)
	case strings.HasPrefix(body, "+"):
		body = th.Added.Render(body)
	case strings.HasPrefix(body, "-"):
		body = th.Removed.Render(body)
	}
	return body + "\n"
}

func printSummary(w io.Writer, run domain.RunResult) {
	th := newTheme(w)

	for _, f := range run.Files {
		target := f.Path
		if f.Renamed {
			target = f.Path + " -> " + f.NewPath
		}
		fmt.Fprintf(w, "%s  %s\n", th.Title.Render(target), th.Faint.Render(formatRuleCounts(f.RuleCounts())))
	}
	total := run.EndedAt.Sub(run.StartedAt)
	if run.StartedAt.IsZero() || run.EndedAt.IsZero() {
		total = 0
	}
	fmt.Fprintf(w, "%d file(s), %d changed in %s\n", len(run.Files), run.ChangedFiles(), total)
}

func formatRuleCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "(no changes)"
	}
	names := make([]string, 0, len(counts))
	for k := range counts {
		names = append(names, k)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, n := range names {
		parts = append(parts, fmt.Sprintf("%s=%d", n, counts[n]))
	}
	return strings.Join(parts, " ")
}
