/*
Copyright © 2025 Manifold Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/manifold-dev/manifold/pkg/logging"
	"github.com/manifold-dev/manifold/pkg/version"
)

const name = "manifold"

// Root builds the manifold command tree.
func Root() *cli.Command {
	info := version.Get()
	return &cli.Command{
		Name:                  name,
		Usage:                 "Convert declarative manifests into plain portable resources",
		Version:               info.Version,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "Enable debug logging",
				Sources: cli.EnvVars("MANIFOLD_DEBUG"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			// --debug wins over the LOG_LEVEL environment variable
			if cmd.Bool("debug") {
				logging.SetDefaultStructuredLoggerWithLevel(name, info.Version, "DEBUG")
			} else {
				logging.SetDefaultStructuredLogger(name, info.Version)
			}
			slog.Info("starting",
				"name", name,
				"version", info.Version,
				"commit", info.Commit,
				"date", info.Date,
			)
			return ctx, nil
		},
		Commands: []*cli.Command{
			convertCmd(),
			versionCmd(),
		},
	}
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down gracefully...")
		cancel()
	}()

	if err := Root().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
