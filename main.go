package main

import (
	"os"

	"github.com/openclaw/dev-cockpit/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
