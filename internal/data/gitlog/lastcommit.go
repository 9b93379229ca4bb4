package gitlog

import (
	"context"
	"os/exec"
	"strings"
	"time"
)

// LastCommitDate returns the ISO date of the most recent commit in
// repoPath, or "" when there is none or the path is not a repository.
func (r *Runner) LastCommitDate(ctx context.Context, repoPath string) string {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "log", "-1", "--format=%aI")
	cmd.Dir = repoPath
	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	date := strings.TrimSpace(string(out))
	if len(date) < 10 {
		return ""
	}
	return date[:10]
}
