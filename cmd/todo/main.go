package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"todo-sync/internal/cli"
	"todo-sync/internal/config"
)

func main() {
	// Load configuration: defaults, config file, then environment
	loader := config.NewLoader()
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration (%s): %v\n", loader.FilePath(), err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Flags are applied on top of cfg before each command runs
	root := cli.NewRootCommand(cfg, cli.DefaultAppFactory)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", cli.NewErrorHandler().HandleSimple(err))
		stop()
		os.Exit(1)
	}
}
