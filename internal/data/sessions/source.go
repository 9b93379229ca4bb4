package sessions

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/openclaw/dev-cockpit/internal/util"
)

// Source enumerates session logs under an agents directory. Layout is
// <agentsDir>/<agent>/sessions/<sessionId>.jsonl.
type Source struct {
	agentsDir   string
	concurrency int
}

// NewSource creates a Source for agentsDir.
func NewSource(agentsDir string, concurrency int) *Source {
	if concurrency <= 0 {
		concurrency = 4
	}
	return &Source{agentsDir: agentsDir, concurrency: concurrency}
}

// List parses every session log it can find. Unparsable files are skipped
// with a warning; a missing agents directory yields an empty slice.
func (s *Source) List() ([]*Session, error) {
	files, err := s.scan()
	if err != nil {
		return nil, err
	}

	results := make([]*Session, len(files))
	sem := make(chan struct{}, s.concurrency)
	var wg sync.WaitGroup
	for i, file := range files {
		wg.Add(1)
		go func(i int, file string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			session, err := ParseFile(file)
			if err != nil {
				util.LogWarn(fmt.Sprintf("Skipping session file %s: %v", file, err))
				return
			}
			results[i] = session
		}(i, file)
	}
	wg.Wait()

	sessions := make([]*Session, 0, len(results))
	for _, session := range results {
		if session != nil {
			sessions = append(sessions, session)
		}
	}
	return sessions, nil
}

// scan returns all session JSONL paths in deterministic order.
func (s *Source) scan() ([]string, error) {
	agents, err := os.ReadDir(s.agentsDir)
	if err != nil {
		if os.IsNotExist(err) {
			util.LogDebug(fmt.Sprintf("Agents directory %s does not exist", s.agentsDir))
			return nil, nil
		}
		return nil, err
	}

	var files []string
	for _, agent := range agents {
		if !agent.IsDir() {
			continue
		}
		sessionsDir := filepath.Join(s.agentsDir, agent.Name(), "sessions")
		entries, err := os.ReadDir(sessionsDir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".jsonl") {
				continue
			}
			files = append(files, filepath.Join(sessionsDir, entry.Name()))
		}
	}
	sort.Strings(files)
	util.LogDebug(fmt.Sprintf("Found %d session files under %s", len(files), s.agentsDir))
	return files, nil
}
