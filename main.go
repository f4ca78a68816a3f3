package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cm/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err := cli.NewRootCmd(version).ExecuteContext(ctx)
	if err == nil {
		return
	}

	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		cancel()
		os.Exit(exitErr.Code)
	}
	fmt.Fprintf(os.Stderr, "cm: %v\n", err)
	cancel()
	os.Exit(1)
}
