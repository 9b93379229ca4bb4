package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/openclaw/dev-cockpit/internal/core/apierr"
	"github.com/openclaw/dev-cockpit/internal/core/pricing"
	"github.com/openclaw/dev-cockpit/internal/core/registry"
	"github.com/openclaw/dev-cockpit/internal/data/sessions"
	"github.com/openclaw/dev-cockpit/internal/presentation/formatter"
	"github.com/openclaw/dev-cockpit/internal/usage"
)

var (
	usageDays    int
	usageProject string

	usageCmd = &cobra.Command{
		Use:   "usage",
		Short: "Aggregate session usage by project",
		RunE:  runUsage,
	}
)

func init() {
	usageCmd.Flags().IntVar(&usageDays, "days", 0, "Limit to last N days (0 = all time)")
	usageCmd.Flags().StringVar(&usageProject, "project", "", "Filter to a single project")
	rootCmd.AddCommand(usageCmd)
}

func runUsage(cmd *cobra.Command, args []string) error {
	if usageDays < 0 {
		return apierr.New(apierr.CodeInvalidRequest, "days must be non-negative")
	}
	if usageProject != "" {
		if err := registry.ValidateProjectName(usageProject); err != nil {
			return err
		}
	}

	reg, err := registry.NewStore(cfg.Registry).Load()
	if err != nil {
		return err
	}
	sess, err := sessions.NewSource(cfg.AgentsDir, 0).List()
	if err != nil {
		return apierr.Wrap(err, apierr.CodeUnavailable, "cannot enumerate sessions")
	}

	agg := usage.New(pricing.NewDefaultProvider())
	result := agg.Aggregate(cmd.Context(), usage.Params{Days: usageDays, Project: usageProject}, sess, reg)

	if outputFormat == "json" {
		return formatter.WriteJSON(os.Stdout, result, pretty)
	}
	return formatter.WriteUsageText(os.Stdout, result)
}
