package main

import (
	"fmt"
	"os"

	"freelance-tracker/internal/cli"
)

func main() {
	// Build the application against the configured data directory.
	// Configuration cascades: defaults, config file, environment,
	// then command line flags applied by the root command.
	app, err := cli.NewAppWithDefaultRepository()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	root := cli.NewRootCommand(app, app.Config())
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
