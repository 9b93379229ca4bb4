package commands

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openclaw/dev-cockpit/internal/config"
	"github.com/openclaw/dev-cockpit/internal/util"
)

var (
	// Configuration sources
	configPath   string
	registryPath string
	agentsDir    string

	// Output related
	outputFormat string
	pretty       bool
	debug        bool

	// Resolved at pre-run
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "dev-cockpit",
		Short: "Project usage and git activity aggregation for OpenClaw agents",
		Long: `dev-cockpit aggregates agent session usage and git activity per project.

Sessions are attributed to projects from the registry by longest-prefix
match on their working directory. The registry is built by scanning
configured roots for git repositories.

Examples:
  dev-cockpit usage --days 7                 # Last week's usage per project
  dev-cockpit usage --project openclaw       # Single project, all time
  dev-cockpit git-activity --days 30         # Coding time estimate per project
  dev-cockpit scan --root ~/dev --write      # Refresh the project registry
  dev-cockpit toggle old-experiment --off    # Exclude a project from aggregation
  dev-cockpit serve                          # Expose the operations over HTTP`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Config file path (default ~/.openclaw/cockpit/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&registryPath, "registry", "",
		"Project registry path (default ~/.openclaw/cockpit/projects.json)")
	rootCmd.PersistentFlags().StringVar(&agentsDir, "agents-dir", "",
		"Agents directory path (default ~/.openclaw/agents)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text",
		"Output format (text, json)")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false,
		"Pretty-print JSON output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug logging to stderr")
}

// setup resolves configuration and initializes logging before any
// subcommand runs. Flags override config file values.
func setup(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	loaded, err := config.Load(expandPath(path))
	if err != nil {
		return err
	}
	cfg = loaded

	if registryPath != "" {
		cfg.Registry = expandPath(registryPath)
	}
	if agentsDir != "" {
		cfg.AgentsDir = expandPath(agentsDir)
	}

	logLevel := "info"
	if debug {
		logLevel = "debug"
	}
	logFile := cfg.LogFile
	if logFile != "" {
		os.MkdirAll(filepath.Dir(logFile), 0755)
	}
	util.InitLogger(logLevel, logFile, debug)
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
