// Package projscan discovers git repositories under configured roots and
// builds the project registry, preserving user-set fields across rescans.
package projscan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bytedance/sonic"

	"github.com/openclaw/dev-cockpit/internal/core/constants"
	"github.com/openclaw/dev-cockpit/internal/core/registry"
	"github.com/openclaw/dev-cockpit/internal/util"
)

// languageMarkers maps a marker file to the project's primary language.
// tsconfig.json overrides package.json when both are present.
var languageMarkers = map[string]string{
	"tsconfig.json":    "typescript",
	"package.json":     "javascript",
	"pyproject.toml":   "python",
	"setup.py":         "python",
	"requirements.txt": "python",
	"go.mod":           "go",
	"Cargo.toml":       "rust",
	"Gemfile":          "ruby",
	"build.gradle":     "java",
	"pom.xml":          "java",
	"mix.exs":          "elixir",
	"pubspec.yaml":     "dart",
}

// frameworkMarkers maps a marker file to an auto-assigned tag.
var frameworkMarkers = map[string]string{
	"next.config.js":      "nextjs",
	"next.config.ts":      "nextjs",
	"nuxt.config.ts":      "nuxt",
	"angular.json":        "angular",
	"Dockerfile":          "docker",
	"docker-compose.yml":  "docker-compose",
	"docker-compose.yaml": "docker-compose",
	"terraform.tf":        "terraform",
}

// skipDirs are never descended into during discovery.
var skipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"__pycache__":  true,
	".venv":        true,
	"venv":         true,
	".tox":         true,
	"dist":         true,
	"build":        true,
	".next":        true,
	".cache":       true,
	"target":       true,
	".terraform":   true,
	".openclaw":    true,
}

// LastCommitDater supplies the most recent commit date for a repository.
type LastCommitDater interface {
	LastCommitDate(ctx context.Context, repoPath string) string
}

// Scanner builds registries from the filesystem.
type Scanner struct {
	git      LastCommitDater
	maxDepth int
	now      func() time.Time
}

// NewScanner creates a Scanner. git may be nil to skip last-commit lookup.
func NewScanner(git LastCommitDater, maxDepth int) *Scanner {
	if maxDepth <= 0 {
		maxDepth = constants.ScanMaxDepth
	}
	return &Scanner{git: git, maxDepth: maxDepth, now: time.Now}
}

// Scan walks roots for git repositories and merges the findings with the
// existing registry, keeping enabled/tags/discovered/description for
// projects already tracked at the same path.
func (s *Scanner) Scan(ctx context.Context, roots []string, existing *registry.Registry) *registry.Registry {
	if existing == nil {
		existing = registry.Empty()
	}

	projects := map[string]*registry.Entry{}
	for _, root := range roots {
		repos := s.findRepos(root)
		util.LogDebug(fmt.Sprintf("Found %d repositories under %s", len(repos), root))
		for _, repoPath := range repos {
			name := filepath.Base(repoPath)
			projects[name] = s.buildEntry(ctx, name, repoPath, existing.Projects[name])
		}
	}

	scanRoots := make([]string, len(roots))
	copy(scanRoots, roots)
	sort.Strings(scanRoots)

	return &registry.Registry{
		Version:   1,
		ScannedAt: s.now().UTC().Format(time.RFC3339),
		ScanRoots: scanRoots,
		Projects:  projects,
	}
}

func (s *Scanner) buildEntry(ctx context.Context, name, repoPath string, prev *registry.Entry) *registry.Entry {
	entry := &registry.Entry{
		Path:        repoPath,
		Enabled:     true,
		Tags:        detectTags(repoPath),
		Language:    detectLanguage(repoPath),
		Discovered:  s.now().UTC().Format("2006-01-02"),
		Description: packageDescription(repoPath),
	}
	if s.git != nil {
		entry.LastCommit = s.git.LastCommitDate(ctx, repoPath)
	}

	if prev != nil && prev.Path == repoPath {
		entry.Enabled = prev.Enabled
		if len(prev.Tags) > 0 {
			entry.Tags = prev.Tags
		}
		if prev.Discovered != "" {
			entry.Discovered = prev.Discovered
		}
		if prev.Description != "" {
			entry.Description = prev.Description
		}
	}
	return entry
}

// findRepos locates git repositories under root up to maxDepth levels,
// without descending into nested repositories.
func (s *Scanner) findRepos(root string) []string {
	var repos []string
	var walk func(current string, depth int)
	walk = func(current string, depth int) {
		if depth > s.maxDepth {
			return
		}
		if skipDirs[filepath.Base(current)] {
			return
		}
		if info, err := os.Stat(filepath.Join(current, ".git")); err == nil && (info.IsDir() || info.Mode().IsRegular()) {
			repos = append(repos, current)
			return
		}
		entries, err := os.ReadDir(current)
		if err != nil {
			return
		}
		for _, entry := range entries {
			if entry.IsDir() && !skipDirs[entry.Name()] {
				walk(filepath.Join(current, entry.Name()), depth+1)
			}
		}
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil
	}
	if info, err := os.Stat(abs); err != nil || !info.IsDir() {
		return nil
	}
	walk(abs, 0)
	sort.Strings(repos)
	return repos
}

func detectLanguage(repoPath string) string {
	detected := ""
	// Deterministic marker order so javascript does not shadow others
	// depending on map iteration.
	markers := make([]string, 0, len(languageMarkers))
	for marker := range languageMarkers {
		markers = append(markers, marker)
	}
	sort.Strings(markers)
	for _, marker := range markers {
		if fileExists(filepath.Join(repoPath, marker)) {
			detected = languageMarkers[marker]
		}
	}
	if fileExists(filepath.Join(repoPath, "tsconfig.json")) {
		detected = "typescript"
	}
	if detected == "" {
		if matches, _ := filepath.Glob(filepath.Join(repoPath, "*.tf")); len(matches) > 0 {
			detected = "terraform"
		}
	}
	if detected == "" {
		return "unknown"
	}
	return detected
}

func detectTags(repoPath string) []string {
	seen := map[string]bool{}
	for marker, tag := range frameworkMarkers {
		if fileExists(filepath.Join(repoPath, marker)) {
			seen[tag] = true
		}
	}
	if info, err := os.Stat(filepath.Join(repoPath, ".terraform")); err == nil && info.IsDir() {
		seen["terraform"] = true
	}
	if info, err := os.Stat(filepath.Join(repoPath, ".github")); err == nil && info.IsDir() {
		seen["github-actions"] = true
	}
	if fileExists(filepath.Join(repoPath, "SKILL.md")) {
		seen["openclaw-skill"] = true
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// packageDescription pulls a human description from package.json when one
// exists.
func packageDescription(repoPath string) string {
	data, err := os.ReadFile(filepath.Join(repoPath, "package.json"))
	if err != nil {
		return ""
	}
	var pkg struct {
		Description string `json:"description"`
	}
	if err := sonic.Unmarshal(data, &pkg); err != nil {
		return ""
	}
	return pkg.Description
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
