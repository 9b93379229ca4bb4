package gateway

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/openclaw/dev-cockpit/internal/data/gitlog"
	"github.com/openclaw/dev-cockpit/internal/data/projscan"
	"github.com/openclaw/dev-cockpit/internal/util"
)

// scannerWithDepth builds a one-off scanner for a caller-chosen depth.
func (s *Server) scannerWithDepth(depth int) *projscan.Scanner {
	return projscan.NewScanner(gitlog.NewRunner(), depth)
}

// watchRegistry logs external rewrites of the registry file. Consistency
// comes from reading the file fresh on every request; this watch exists
// so operators can see concurrent writers in the log.
func (s *Server) watchRegistry(ctx context.Context) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		util.LogWarn(fmt.Sprintf("Cannot watch registry: %v", err))
		return
	}
	defer watcher.Close()

	// Watch the directory: the store replaces the file via rename, which
	// would drop a watch on the file itself.
	dir := filepath.Dir(s.store.Path())
	if err := watcher.Add(dir); err != nil {
		util.LogWarn(fmt.Sprintf("Cannot watch %s: %v", dir, err))
		return
	}

	target := filepath.Base(s.store.Path())
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) == target && event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				util.LogInfo(fmt.Sprintf("Registry %s updated (%s)", event.Name, event.Op))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			util.LogWarn(fmt.Sprintf("Registry watch error: %v", err))
		}
	}
}
