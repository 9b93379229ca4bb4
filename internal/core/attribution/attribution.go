// Package attribution maps session working directories onto registered
// projects.
package attribution

import (
	"path/filepath"
	"strings"

	"github.com/openclaw/dev-cockpit/internal/core/registry"
)

// Unmatched is the sentinel project name for sessions whose cwd does not
// fall under any enabled project path.
const Unmatched = "_unmatched"

// Attribute returns the name of the most specific enabled project whose
// path is the cwd itself or a directory ancestor of it. A project path
// only matches at a path separator boundary, so /dev/openclaw never
// claims /dev/openclaw-backup.
//
// Ties on path length resolve to the lexicographically smallest project
// name, keeping repeated calls deterministic regardless of map order.
func Attribute(cwd string, reg *registry.Registry) string {
	if cwd == "" || reg == nil {
		return Unmatched
	}

	bestName := ""
	bestLen := -1
	for name, entry := range reg.Projects {
		if !entry.Enabled {
			continue
		}
		path := entry.Path
		if path == "" || !isAncestor(path, cwd) {
			continue
		}
		if len(path) > bestLen || (len(path) == bestLen && name < bestName) {
			bestName = name
			bestLen = len(path)
		}
	}

	if bestName == "" {
		return Unmatched
	}
	return bestName
}

// isAncestor reports whether dir equals cwd or is a directory prefix of it.
func isAncestor(dir, cwd string) bool {
	if cwd == dir {
		return true
	}
	return strings.HasPrefix(cwd, strings.TrimSuffix(dir, string(filepath.Separator))+string(filepath.Separator))
}
