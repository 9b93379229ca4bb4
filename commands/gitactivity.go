package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/openclaw/dev-cockpit/internal/core/apierr"
	"github.com/openclaw/dev-cockpit/internal/core/registry"
	"github.com/openclaw/dev-cockpit/internal/data/gitlog"
	"github.com/openclaw/dev-cockpit/internal/gitactivity"
	"github.com/openclaw/dev-cockpit/internal/presentation/formatter"
)

var (
	gitDays    int
	gitProject string

	gitActivityCmd = &cobra.Command{
		Use:   "git-activity",
		Short: "Estimate commit activity and coding time per project",
		RunE:  runGitActivity,
	}
)

func init() {
	gitActivityCmd.Flags().IntVar(&gitDays, "days", 0, "Limit to last N days (0 = all time)")
	gitActivityCmd.Flags().StringVar(&gitProject, "project", "", "Filter to a single project")
	rootCmd.AddCommand(gitActivityCmd)
}

func runGitActivity(cmd *cobra.Command, args []string) error {
	if gitDays < 0 {
		return apierr.New(apierr.CodeInvalidRequest, "days must be non-negative")
	}
	if gitProject != "" {
		if err := registry.ValidateProjectName(gitProject); err != nil {
			return err
		}
	}

	reg, err := registry.NewStore(cfg.Registry).Load()
	if err != nil {
		return err
	}

	agg := gitactivity.New(gitlog.NewRunner())
	result := agg.Aggregate(cmd.Context(), gitactivity.Params{Days: gitDays, Project: gitProject}, reg)

	if outputFormat == "json" {
		return formatter.WriteJSON(os.Stdout, result, pretty)
	}
	return formatter.WriteGitActivityText(os.Stdout, result)
}
