package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/openclaw/dev-cockpit/internal/core/registry"
)

// WriteProjectsText renders the registry as one line per project.
func WriteProjectsText(w io.Writer, reg *registry.Registry) error {
	fmt.Fprintf(w, "Projects: %d\n\n", len(reg.Projects))
	for _, name := range reg.Names() {
		entry := reg.Projects[name]
		status := "enabled"
		if !entry.Enabled {
			status = "disabled"
		}
		line := fmt.Sprintf("  %s %s [%s]", pad(name, 30), pad(entry.Language, 12), status)
		if len(entry.Tags) > 0 {
			line += "  tags: " + strings.Join(entry.Tags, ", ")
		}
		if entry.LastCommit != "" {
			line += "  last: " + entry.LastCommit
		}
		fmt.Fprintln(w, line)
	}
	return nil
}
