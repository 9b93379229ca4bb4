package gitactivity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclaw/dev-cockpit/internal/core/registry"
	"github.com/openclaw/dev-cockpit/internal/data/gitlog"
)

var testNow = time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)

// fakeLister serves synthetic commit lists per repository path.
type fakeLister struct {
	commits map[string][]gitlog.Commit
	errs    map[string]error
}

func (f *fakeLister) ListCommits(ctx context.Context, repoPath string, days int) ([]gitlog.Commit, error) {
	if err, ok := f.errs[repoPath]; ok {
		return nil, err
	}
	return f.commits[repoPath], nil
}

func newTestAggregator(lister gitlog.CommitLister) *Aggregator {
	agg := New(lister)
	agg.now = func() time.Time { return testNow }
	return agg
}

func commitAt(day string, clock string, subject string) gitlog.Commit {
	t, err := time.Parse(time.RFC3339, day+"T"+clock+":00Z")
	if err != nil {
		panic(err)
	}
	return gitlog.Commit{
		Hash:      subject,
		Timestamp: t.Unix(),
		Date:      day,
		Subject:   subject,
	}
}

func testRegistry() *registry.Registry {
	return &registry.Registry{
		Version: 1,
		Projects: map[string]*registry.Entry{
			"openclaw": {Path: "/dev/openclaw", Enabled: true},
			"dotfiles": {Path: "/dev/dotfiles", Enabled: true},
			"retired":  {Path: "/dev/retired", Enabled: false},
		},
	}
}

func TestEstimateHoursClustering(t *testing.T) {
	// 09:00 and 09:15 cluster (35 minutes to 09:50 breaks the chain);
	// 09:50 and 14:00 are isolated single-commit clusters.
	timestamps := []int64{
		commitAt("2026-02-09", "09:00", "a").Timestamp,
		commitAt("2026-02-09", "09:15", "b").Timestamp,
		commitAt("2026-02-09", "09:50", "c").Timestamp,
		commitAt("2026-02-09", "14:00", "d").Timestamp,
	}

	// 900s span + two 300s floors = 1500s.
	assert.InDelta(t, 1500.0/3600, EstimateHours(timestamps), 1e-9)
}

func TestEstimateHoursSingleCommitFloor(t *testing.T) {
	ts := []int64{commitAt("2026-02-09", "10:00", "a").Timestamp}
	assert.InDelta(t, 300.0/3600, EstimateHours(ts), 1e-9)
}

func TestEstimateHoursEmpty(t *testing.T) {
	assert.Zero(t, EstimateHours(nil))
}

func TestEstimateHoursUnsortedInput(t *testing.T) {
	sorted := []int64{
		commitAt("2026-02-09", "09:00", "a").Timestamp,
		commitAt("2026-02-09", "09:20", "b").Timestamp,
	}
	reversed := []int64{sorted[1], sorted[0]}
	assert.Equal(t, EstimateHours(sorted), EstimateHours(reversed))
}

func TestAggregateProjectActivity(t *testing.T) {
	lister := &fakeLister{commits: map[string][]gitlog.Commit{
		"/dev/openclaw": {
			commitAt("2026-02-09", "14:00", "newest"),
			commitAt("2026-02-09", "09:50", "mid"),
			commitAt("2026-02-09", "09:15", "older"),
			commitAt("2026-02-08", "09:00", "oldest"),
		},
	}}

	result := newTestAggregator(lister).Aggregate(context.Background(), Params{Days: 7}, testRegistry())

	require.Len(t, result.Projects, 2)
	proj := result.Projects[0] // sorted by commits desc
	assert.Equal(t, "openclaw", proj.Name)
	assert.Equal(t, 4, proj.Commits)
	assert.Equal(t, 2, proj.ActiveDays)
	assert.Equal(t, map[string]int{"2026-02-09": 3, "2026-02-08": 1}, proj.DailyBreakdown)
	require.Len(t, proj.RecentCommits, 4)
	assert.Equal(t, "newest", proj.RecentCommits[0].Subject)

	assert.Equal(t, 4, result.Totals.Commits)
	assert.Equal(t, 1, result.Totals.ActiveProjects)
}

func TestAggregateZeroEntryForQuietProject(t *testing.T) {
	lister := &fakeLister{}
	result := newTestAggregator(lister).Aggregate(context.Background(), Params{}, testRegistry())

	require.Len(t, result.Projects, 2)
	for _, proj := range result.Projects {
		assert.Zero(t, proj.Commits)
		assert.Zero(t, proj.ActiveDays)
		assert.Zero(t, proj.EstimatedHours)
		assert.Empty(t, proj.RecentCommits)
	}
	assert.Zero(t, result.Totals.ActiveProjects)
}

func TestAggregateListerErrorYieldsZeroEntry(t *testing.T) {
	lister := &fakeLister{errs: map[string]error{
		"/dev/openclaw": errors.New("boom"),
	}}
	result := newTestAggregator(lister).Aggregate(context.Background(), Params{}, testRegistry())

	require.Len(t, result.Projects, 2)
	for _, proj := range result.Projects {
		assert.Zero(t, proj.Commits)
	}
}

func TestAggregateSkipsDisabledProjects(t *testing.T) {
	lister := &fakeLister{commits: map[string][]gitlog.Commit{
		"/dev/retired": {commitAt("2026-02-09", "10:00", "ghost")},
	}}
	result := newTestAggregator(lister).Aggregate(context.Background(), Params{}, testRegistry())

	for _, proj := range result.Projects {
		assert.NotEqual(t, "retired", proj.Name)
	}
}

func TestAggregateProjectFilter(t *testing.T) {
	lister := &fakeLister{commits: map[string][]gitlog.Commit{
		"/dev/openclaw": {commitAt("2026-02-09", "10:00", "a")},
		"/dev/dotfiles": {commitAt("2026-02-09", "11:00", "b")},
	}}
	result := newTestAggregator(lister).Aggregate(context.Background(), Params{Project: "dotfiles"}, testRegistry())

	require.Len(t, result.Projects, 1)
	assert.Equal(t, "dotfiles", result.Projects[0].Name)
	assert.Equal(t, 1, result.Totals.Commits)
}

func TestAggregateRecentCommitsCapped(t *testing.T) {
	var commits []gitlog.Commit
	for _, clock := range []string{"15:00", "14:00", "13:00", "12:00", "11:00", "10:00", "09:00"} {
		commits = append(commits, commitAt("2026-02-09", clock, clock))
	}
	lister := &fakeLister{commits: map[string][]gitlog.Commit{"/dev/openclaw": commits}}

	result := newTestAggregator(lister).Aggregate(context.Background(), Params{Project: "openclaw"}, testRegistry())
	require.Len(t, result.Projects, 1)
	assert.Len(t, result.Projects[0].RecentCommits, 5)
	assert.Equal(t, "15:00", result.Projects[0].RecentCommits[0].Subject)
}
