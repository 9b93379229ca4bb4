package attribution

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openclaw/dev-cockpit/internal/core/registry"
)

func regWith(entries map[string]*registry.Entry) *registry.Registry {
	return &registry.Registry{Version: 1, Projects: entries}
}

func TestAttribute(t *testing.T) {
	reg := regWith(map[string]*registry.Entry{
		"openclaw":    {Path: "/dev/openclaw", Enabled: true},
		"openclaw-ui": {Path: "/dev/openclaw/ui", Enabled: true},
		"dotfiles":    {Path: "/dev/dotfiles", Enabled: true},
		"retired":     {Path: "/dev/retired", Enabled: false},
	})

	tests := []struct {
		name     string
		cwd      string
		expected string
	}{
		{"exact match", "/dev/openclaw", "openclaw"},
		{"subdirectory", "/dev/dotfiles/zsh", "dotfiles"},
		{"longest prefix wins", "/dev/openclaw/ui/components", "openclaw-ui"},
		{"no separator boundary", "/dev/openclaw-backup", Unmatched},
		{"disabled project", "/dev/retired/src", Unmatched},
		{"unknown path", "/tmp/scratch", Unmatched},
		{"empty cwd", "", Unmatched},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Attribute(tt.cwd, reg))
		})
	}
}

func TestAttributeSharedStringPrefix(t *testing.T) {
	reg := regWith(map[string]*registry.Entry{
		"ab": {Path: "/a/b", Enabled: true},
	})

	// /a/b must not claim /a/bc, only true descendants.
	assert.Equal(t, Unmatched, Attribute("/a/bc", reg))
	assert.Equal(t, "ab", Attribute("/a/b/c", reg))
}

func TestAttributeNestedAncestors(t *testing.T) {
	reg := regWith(map[string]*registry.Entry{
		"outer": {Path: "/a", Enabled: true},
		"inner": {Path: "/a/b", Enabled: true},
	})

	assert.Equal(t, "inner", Attribute("/a/b/c", reg))
	assert.Equal(t, "outer", Attribute("/a/x", reg))
}

func TestAttributeDisabledDoesNotShadow(t *testing.T) {
	// A disabled specific project falls back to its enabled ancestor.
	reg := regWith(map[string]*registry.Entry{
		"outer": {Path: "/a", Enabled: true},
		"inner": {Path: "/a/b", Enabled: false},
	})

	assert.Equal(t, "outer", Attribute("/a/b/c", reg))
}

func TestAttributeDeterministicTie(t *testing.T) {
	// Two projects with equal-length paths matching the same cwd is
	// outside the uniqueness invariant, but the result must still be
	// stable across calls.
	reg := regWith(map[string]*registry.Entry{
		"zeta":  {Path: "/a/b", Enabled: true},
		"alpha": {Path: "/a/b", Enabled: true},
	})

	first := Attribute("/a/b/c", reg)
	assert.Equal(t, "alpha", first)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, Attribute("/a/b/c", reg))
	}
}

func TestAttributeNilRegistry(t *testing.T) {
	assert.Equal(t, Unmatched, Attribute("/dev/openclaw", nil))
}
