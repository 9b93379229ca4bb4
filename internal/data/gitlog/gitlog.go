// Package gitlog shells out to git for commit history. The clustering and
// estimation logic lives in gitactivity; this package only produces
// commit tuples, so callers can be tested with synthetic lists.
package gitlog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/openclaw/dev-cockpit/internal/core/apierr"
	"github.com/openclaw/dev-cockpit/internal/core/constants"
	"github.com/openclaw/dev-cockpit/internal/util"
)

// Commit is one git log entry.
type Commit struct {
	Hash      string
	Timestamp int64  // Unix seconds, author date
	Date      string // ISO date (YYYY-MM-DD)
	Subject   string
}

// CommitLister yields commits for a repository path, newest first.
// days <= 0 means unbounded history.
type CommitLister interface {
	ListCommits(ctx context.Context, repoPath string, days int) ([]Commit, error)
}

// Runner is the exec-backed CommitLister. Every invocation is bounded by
// a wall-clock timeout and a maximum captured output size.
type Runner struct {
	timeout   time.Duration
	maxOutput int64
}

// NewRunner creates a Runner with the standard bounds.
func NewRunner() *Runner {
	return &Runner{timeout: constants.GitTimeout, maxOutput: constants.GitMaxOutput}
}

// ListCommits runs git log in repoPath. A path that is not a git
// repository yields an empty list; a missing git binary or a timeout is
// an Unavailable error.
func (r *Runner) ListCommits(ctx context.Context, repoPath string, days int) ([]Commit, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	args := []string{"log", "--format=%aI|%H|%s", "--all"}
	if days > 0 {
		args = append(args, fmt.Sprintf("--since=%d days ago", days))
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = repoPath
	var stdout cappedBuffer
	stdout.limit = r.maxOutput
	cmd.Stdout = &stdout

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return nil, apierr.Wrap(ctx.Err(), apierr.CodeUnavailable, "git log timed out in %s", repoPath)
	}
	if errors.Is(err, errOutputLimit) || errors.Is(stdout.err, errOutputLimit) {
		return nil, apierr.New(apierr.CodeUnavailable, "git log output exceeded %d bytes in %s", r.maxOutput, repoPath)
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// Not a repository, or git otherwise refused. Treat as no
			// history so callers can still enumerate every project.
			util.LogDebug(fmt.Sprintf("git log failed in %s: %v", repoPath, err))
			return nil, nil
		}
		return nil, apierr.Wrap(err, apierr.CodeUnavailable, "cannot invoke git in %s", repoPath)
	}

	return ParseLog(stdout.String()), nil
}

// ParseLog parses "--format=%aI|%H|%s" output. Malformed lines are
// dropped.
func ParseLog(output string) []Commit {
	var commits []Commit
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "|", 3)
		if len(parts) < 3 {
			continue
		}
		t, err := time.Parse(time.RFC3339, parts[0])
		if err != nil {
			continue
		}
		commits = append(commits, Commit{
			Hash:      parts[1],
			Timestamp: t.Unix(),
			Date:      t.Format("2006-01-02"),
			Subject:   parts[2],
		})
	}
	return commits
}

var errOutputLimit = errors.New("output limit exceeded")

// cappedBuffer stops accepting data past limit, failing the copy instead
// of buffering a pathological repository's log in memory.
type cappedBuffer struct {
	bytes.Buffer
	limit int64
	err   error
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	if int64(b.Len())+int64(len(p)) > b.limit {
		b.err = errOutputLimit
		return 0, errOutputLimit
	}
	return b.Buffer.Write(p)
}
