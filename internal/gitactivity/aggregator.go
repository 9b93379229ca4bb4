// Package gitactivity estimates commit activity and coding time per
// project from git history.
package gitactivity

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/openclaw/dev-cockpit/internal/core/constants"
	"github.com/openclaw/dev-cockpit/internal/core/registry"
	"github.com/openclaw/dev-cockpit/internal/data/gitlog"
	"github.com/openclaw/dev-cockpit/internal/util"
)

// Params selects the window and an optional project.
type Params struct {
	Days    int    // 0 means all time
	Project string // "" means all enabled projects
}

// RecentCommit is a compact commit reference for display.
type RecentCommit struct {
	Date    string `json:"date"`
	Subject string `json:"subject"`
}

// ProjectActivity is the per-project result. Projects without history in
// range still appear with zero values.
type ProjectActivity struct {
	Name           string         `json:"name"`
	Path           string         `json:"path"`
	Commits        int            `json:"commits"`
	ActiveDays     int            `json:"activeDays"`
	EstimatedHours float64        `json:"estimatedHours"`
	RecentCommits  []RecentCommit `json:"recentCommits"`
	DailyBreakdown map[string]int `json:"dailyBreakdown"`
}

// Totals summarize the whole report.
type Totals struct {
	Commits        int     `json:"commits"`
	EstimatedHours float64 `json:"estimatedHours"`
	ActiveProjects int     `json:"activeProjects"`
}

// Result is the full git activity report, projects sorted by commit count
// descending.
type Result struct {
	GeneratedAt   string            `json:"generatedAt"`
	Days          int               `json:"days,omitempty"`
	ProjectFilter string            `json:"projectFilter,omitempty"`
	Totals        Totals            `json:"totals"`
	Projects      []ProjectActivity `json:"projects"`
}

// Aggregator walks enabled projects and derives activity from their
// commit history.
type Aggregator struct {
	lister gitlog.CommitLister
	now    func() time.Time
}

// New creates an Aggregator over the given commit source.
func New(lister gitlog.CommitLister) *Aggregator {
	return &Aggregator{lister: lister, now: time.Now}
}

// Aggregate reports activity for every enabled project matching params.
// Projects whose history cannot be read yield zero entries rather than
// failing the whole report.
func (a *Aggregator) Aggregate(ctx context.Context, params Params, reg *registry.Registry) *Result {
	result := &Result{
		GeneratedAt:   a.now().UTC().Format(time.RFC3339),
		Days:          params.Days,
		ProjectFilter: params.Project,
	}

	for _, name := range reg.Names() {
		entry := reg.Projects[name]
		if !entry.Enabled {
			continue
		}
		if params.Project != "" && name != params.Project {
			continue
		}

		commits, err := a.lister.ListCommits(ctx, entry.Path, params.Days)
		if err != nil {
			util.LogWarn(fmt.Sprintf("Cannot read git history for %s (%s): %v", name, entry.Path, err))
			commits = nil
		}
		result.Projects = append(result.Projects, analyze(name, entry.Path, commits))
	}

	sort.SliceStable(result.Projects, func(i, j int) bool {
		return result.Projects[i].Commits > result.Projects[j].Commits
	})

	for _, proj := range result.Projects {
		result.Totals.Commits += proj.Commits
		result.Totals.EstimatedHours += proj.EstimatedHours
		if proj.Commits > 0 {
			result.Totals.ActiveProjects++
		}
	}
	result.Totals.EstimatedHours = round2(result.Totals.EstimatedHours)
	return result
}

// analyze derives the activity entry for one project from its commits,
// given newest first.
func analyze(name, path string, commits []gitlog.Commit) ProjectActivity {
	activity := ProjectActivity{
		Name:           name,
		Path:           path,
		RecentCommits:  []RecentCommit{},
		DailyBreakdown: map[string]int{},
	}
	if len(commits) == 0 {
		return activity
	}

	activity.Commits = len(commits)
	timestamps := make([]int64, 0, len(commits))
	for _, commit := range commits {
		timestamps = append(timestamps, commit.Timestamp)
		activity.DailyBreakdown[commit.Date]++
	}
	activity.ActiveDays = len(activity.DailyBreakdown)
	activity.EstimatedHours = round2(EstimateHours(timestamps))

	limit := constants.RecentCommitLimit
	if limit > len(commits) {
		limit = len(commits)
	}
	for _, commit := range commits[:limit] {
		activity.RecentCommits = append(activity.RecentCommits, RecentCommit{
			Date:    commit.Date,
			Subject: commit.Subject,
		})
	}
	return activity
}

// EstimateHours clusters commit timestamps into work sessions: commits
// within the gap threshold of their predecessor share a session. Each
// session spans last minus first commit, floored at the minimum session
// length so an isolated commit still counts.
func EstimateHours(timestamps []int64) float64 {
	if len(timestamps) == 0 {
		return 0
	}
	sorted := make([]int64, len(timestamps))
	copy(sorted, timestamps)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var total float64
	start, end := sorted[0], sorted[0]
	for _, ts := range sorted[1:] {
		if ts-end <= constants.CommitSessionGapSeconds {
			end = ts
			continue
		}
		total += sessionSeconds(start, end)
		start, end = ts, ts
	}
	total += sessionSeconds(start, end)
	return total / 3600
}

func sessionSeconds(start, end int64) float64 {
	span := float64(end - start)
	return math.Max(span, float64(constants.MinCommitSessionSeconds))
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
