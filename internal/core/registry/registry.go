package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bytedance/sonic"

	"github.com/openclaw/dev-cockpit/internal/core/apierr"
	"github.com/openclaw/dev-cockpit/internal/util"
)

// Entry is one tracked repository in the project registry.
type Entry struct {
	Path        string   `json:"path"`
	Enabled     bool     `json:"enabled"`
	Tags        []string `json:"tags"`
	Language    string   `json:"language"`
	Discovered  string   `json:"discovered"`
	Description string   `json:"description"`
	LastCommit  string   `json:"lastCommit,omitempty"`
}

// Registry is the persisted project document. It is read fresh on every
// aggregation call and fully rewritten on updates.
type Registry struct {
	Version   int               `json:"version"`
	ScannedAt string            `json:"scannedAt"`
	ScanRoots []string          `json:"scanRoots"`
	Projects  map[string]*Entry `json:"projects"`
}

// Empty returns a registry with no projects, used when the registry file
// does not exist yet.
func Empty() *Registry {
	return &Registry{Version: 1, Projects: map[string]*Entry{}}
}

// Names returns project names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.Projects))
	for name := range r.Projects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Store reads and replaces the registry document on disk. It holds no
// in-memory state between calls; concurrent writers are last-write-wins.
type Store struct {
	path string
}

// NewStore creates a Store for the registry file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the registry file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the registry. A missing file is treated as an empty registry;
// unreadable or malformed content is an Unavailable error.
func (s *Store) Load() (*Registry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			util.LogDebug(fmt.Sprintf("Registry not found at %s, treating as empty", s.path))
			return Empty(), nil
		}
		return nil, apierr.Wrap(err, apierr.CodeUnavailable, "cannot read registry %s", s.path)
	}

	var reg Registry
	if err := sonic.Unmarshal(data, &reg); err != nil {
		return nil, apierr.Wrap(err, apierr.CodeUnavailable, "registry %s is not valid JSON", s.path)
	}
	if reg.Projects == nil {
		reg.Projects = map[string]*Entry{}
	}
	return &reg, nil
}

// Save rewrites the registry atomically (temp file + rename) as pretty
// JSON with a trailing newline.
func (s *Store) Save(reg *Registry) error {
	data, err := sonic.ConfigDefault.MarshalIndent(reg, "", "  ")
	if err != nil {
		return apierr.Wrap(err, apierr.CodeUnavailable, "cannot encode registry")
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return apierr.Wrap(err, apierr.CodeUnavailable, "cannot create registry directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, ".projects-*.json")
	if err != nil {
		return apierr.Wrap(err, apierr.CodeUnavailable, "cannot write registry %s", s.path)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apierr.Wrap(err, apierr.CodeUnavailable, "cannot write registry %s", s.path)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return apierr.Wrap(err, apierr.CodeUnavailable, "cannot write registry %s", s.path)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return apierr.Wrap(err, apierr.CodeUnavailable, "cannot replace registry %s", s.path)
	}
	return nil
}

// Toggle flips the enabled flag for name and persists the result. The
// read-modify-write is not locked across callers; the last writer wins.
func (s *Store) Toggle(name string, enabled bool) (*Registry, error) {
	if err := ValidateProjectName(name); err != nil {
		return nil, err
	}

	reg, err := s.Load()
	if err != nil {
		return nil, err
	}
	entry, ok := reg.Projects[name]
	if !ok {
		return nil, apierr.New(apierr.CodeNotFound, "project %q is not in the registry", name)
	}

	entry.Enabled = enabled
	if err := s.Save(reg); err != nil {
		return nil, err
	}
	util.LogInfo(fmt.Sprintf("Project %s enabled=%t", name, enabled))
	return reg, nil
}
