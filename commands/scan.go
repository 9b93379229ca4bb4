package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openclaw/dev-cockpit/internal/core/registry"
	"github.com/openclaw/dev-cockpit/internal/data/gitlog"
	"github.com/openclaw/dev-cockpit/internal/data/projscan"
	"github.com/openclaw/dev-cockpit/internal/presentation/formatter"
)

var (
	scanRoots    []string
	scanMaxDepth int
	scanWrite    bool

	scanCmd = &cobra.Command{
		Use:   "scan",
		Short: "Discover git repositories and rebuild the project registry",
		Long: `scan walks the configured roots for git repositories and rebuilds the
registry, preserving enabled state, tags, discovery dates, and
descriptions of projects that are already tracked.`,
		RunE: runScan,
	}
)

func init() {
	scanCmd.Flags().StringArrayVar(&scanRoots, "root", nil,
		"Root directory to scan (repeatable; default from config)")
	scanCmd.Flags().IntVar(&scanMaxDepth, "max-depth", 0,
		"Maximum directory depth (default 3)")
	scanCmd.Flags().BoolVar(&scanWrite, "write", false,
		"Persist the refreshed registry")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	roots := scanRoots
	if len(roots) == 0 {
		roots = cfg.ScanRoots
	}
	resolved := make([]string, 0, len(roots))
	for _, root := range roots {
		abs, err := registry.ValidateScanRoot(expandPath(root), cfg.ScanBase)
		if err != nil {
			return err
		}
		resolved = append(resolved, abs)
	}

	store := registry.NewStore(cfg.Registry)
	existing, err := store.Load()
	if err != nil {
		return err
	}

	scanner := projscan.NewScanner(gitlog.NewRunner(), scanMaxDepth)
	reg := scanner.Scan(cmd.Context(), resolved, existing)

	if scanWrite {
		if err := store.Save(reg); err != nil {
			return err
		}
		fmt.Printf("Wrote %d projects to %s\n", len(reg.Projects), store.Path())
		return nil
	}

	if outputFormat == "json" {
		return formatter.WriteJSON(os.Stdout, reg, pretty)
	}
	return formatter.WriteProjectsText(os.Stdout, reg)
}
