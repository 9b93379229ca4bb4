package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclaw/dev-cockpit/internal/core/apierr"
)

func writeRegistry(t *testing.T, store *Store) *Registry {
	t.Helper()
	reg := &Registry{
		Version:   1,
		ScannedAt: "2026-02-01T00:00:00Z",
		ScanRoots: []string{"/home/user/dev"},
		Projects: map[string]*Entry{
			"openclaw": {
				Path:       "/home/user/dev/openclaw",
				Enabled:    true,
				Tags:       []string{"docker"},
				Language:   "typescript",
				Discovered: "2025-11-01",
			},
		},
	}
	require.NoError(t, store.Save(reg))
	return reg
}

func TestLoadMissingFileIsEmptyRegistry(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "projects.json"))
	reg, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, reg.Projects)
	assert.Equal(t, 1, reg.Version)
}

func TestLoadCorruptFileIsUnavailable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := NewStore(path).Load()
	require.Error(t, err)
	assert.Equal(t, apierr.CodeUnavailable, apierr.CodeOf(err))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "projects.json"))
	saved := writeRegistry(t, store)

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)

	// Persisted as UTF-8 JSON with a trailing newline.
	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.True(t, len(data) > 0 && data[len(data)-1] == '\n')
}

func TestSaveCreatesParentDirectory(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "cockpit", "projects.json"))
	writeRegistry(t, store)

	_, err := os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestTogglePersistsImmediately(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "projects.json"))
	writeRegistry(t, store)

	reg, err := store.Toggle("openclaw", false)
	require.NoError(t, err)
	assert.False(t, reg.Projects["openclaw"].Enabled)

	reloaded, err := store.Load()
	require.NoError(t, err)
	assert.False(t, reloaded.Projects["openclaw"].Enabled)

	_, err = store.Toggle("openclaw", true)
	require.NoError(t, err)
	reloaded, err = store.Load()
	require.NoError(t, err)
	assert.True(t, reloaded.Projects["openclaw"].Enabled)
}

func TestToggleUnknownProjectLeavesFileUntouched(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "projects.json"))
	writeRegistry(t, store)
	before, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	_, err = store.Toggle("no-such-project", true)
	require.Error(t, err)
	assert.Equal(t, apierr.CodeNotFound, apierr.CodeOf(err))

	after, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestToggleInvalidNameRejected(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "projects.json"))
	writeRegistry(t, store)

	for _, name := range []string{"", "a/b", `a\b`, "../etc"} {
		_, err := store.Toggle(name, true)
		require.Error(t, err, "name %q", name)
		assert.Equal(t, apierr.CodeInvalidRequest, apierr.CodeOf(err))
	}
}

func TestToggleCorruptRegistryIsUnavailable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.json")
	require.NoError(t, os.WriteFile(path, []byte("]["), 0644))

	_, err := NewStore(path).Toggle("openclaw", true)
	require.Error(t, err)
	assert.Equal(t, apierr.CodeUnavailable, apierr.CodeOf(err))
}

func TestNamesSorted(t *testing.T) {
	reg := &Registry{Projects: map[string]*Entry{
		"zeta": {}, "alpha": {}, "mid": {},
	}}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, reg.Names())
}
