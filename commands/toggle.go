package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openclaw/dev-cockpit/internal/core/registry"
)

var (
	toggleOff bool

	toggleCmd = &cobra.Command{
		Use:   "toggle <project>",
		Short: "Enable or disable a project for aggregation",
		Args:  cobra.ExactArgs(1),
		RunE:  runToggle,
	}
)

func init() {
	toggleCmd.Flags().BoolVar(&toggleOff, "off", false, "Disable instead of enable")
	rootCmd.AddCommand(toggleCmd)
}

func runToggle(cmd *cobra.Command, args []string) error {
	name := args[0]
	enabled := !toggleOff

	if _, err := registry.NewStore(cfg.Registry).Toggle(name, enabled); err != nil {
		return err
	}

	state := "enabled"
	if !enabled {
		state = "disabled"
	}
	fmt.Printf("Project %s is now %s\n", name, state)
	return nil
}
