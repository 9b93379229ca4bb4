package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/openclaw/dev-cockpit/internal/gateway"
)

var (
	serveListen string

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Expose the cockpit operations over HTTP",
		RunE:  runServe,
	}
)

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "",
		"Listen address (default from config, 127.0.0.1:7438)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveListen != "" {
		cfg.Listen = serveListen
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return gateway.NewServer(cfg).ListenAndServe(ctx)
}
