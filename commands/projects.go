package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/openclaw/dev-cockpit/internal/core/registry"
	"github.com/openclaw/dev-cockpit/internal/presentation/formatter"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List the project registry",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := registry.NewStore(cfg.Registry).Load()
		if err != nil {
			return err
		}
		if outputFormat == "json" {
			return formatter.WriteJSON(os.Stdout, reg, pretty)
		}
		return formatter.WriteProjectsText(os.Stdout, reg)
	},
}

func init() {
	rootCmd.AddCommand(projectsCmd)
}
