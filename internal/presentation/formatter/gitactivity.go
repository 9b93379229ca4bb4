package formatter

import (
	"fmt"
	"io"

	"github.com/openclaw/dev-cockpit/internal/gitactivity"
	"github.com/openclaw/dev-cockpit/internal/util"
)

// WriteGitActivityText renders a git activity report. Projects without
// commits in range are elided from the text view; they remain in the JSON
// payload.
func WriteGitActivityText(w io.Writer, result *gitactivity.Result) error {
	fmt.Fprintf(w, "Git Activity (%s)\n", periodLabel(result.Days))
	fmt.Fprintln(w, rule(60))
	fmt.Fprintf(w, "Total: %d commits across %d projects, ~%s coding\n\n",
		result.Totals.Commits,
		result.Totals.ActiveProjects,
		util.FormatHours(result.Totals.EstimatedHours))

	subjectWidth := terminalWidth() - 16
	for _, proj := range result.Projects {
		if proj.Commits == 0 {
			continue
		}
		fmt.Fprintf(w, "  %s %4d commits  %3d days  ~%6s\n",
			pad(proj.Name, 30),
			proj.Commits,
			proj.ActiveDays,
			util.FormatHours(proj.EstimatedHours))

		recent := proj.RecentCommits
		if len(recent) > 3 {
			recent = recent[:3]
		}
		for _, commit := range recent {
			fmt.Fprintf(w, "    %s  %s\n", commit.Date, truncate(commit.Subject, subjectWidth))
		}
	}
	return nil
}
