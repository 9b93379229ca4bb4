package constants

import "time"

const (
	// Idle gap threshold for session active-time estimation. Gaps between
	// consecutive messages larger than this are treated as idle.
	IdleThreshold        = 15 * time.Minute
	IdleThresholdSeconds = int64(15 * 60)

	// Commit clustering for coding-hour estimation. Consecutive commits
	// within the gap belong to the same work session.
	CommitSessionGap        = 30 * time.Minute
	CommitSessionGapSeconds = int64(30 * 60)

	// Minimum duration credited to a commit cluster, so a single isolated
	// commit still counts as some work.
	MinCommitSession        = 5 * time.Minute
	MinCommitSessionSeconds = int64(5 * 60)

	// Recent commits reported per project.
	RecentCommitLimit = 5

	// Bounds on external git invocations.
	GitTimeout   = 30 * time.Second
	GitMaxOutput = 10 * 1024 * 1024

	// Default directory depth for registry scans.
	ScanMaxDepth = 3
)
