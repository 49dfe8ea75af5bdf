package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/mirefeld/worldbuilder/internal"
	pkgconfig "github.com/mirefeld/worldbuilder/pkg/config"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API server with live catalog sync",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to config file",
				Sources: cli.EnvVars("WORLDBUILDER_CONFIG_FILE"),
			},
			&cli.IntFlag{
				Name:    "port",
				Usage:   "HTTP port (overrides config)",
				Sources: cli.EnvVars("WORLDBUILDER_HTTP_PORT"),
			},
			dirFlag(),
		},
		Action: runServe,
	}
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	dataDir := resolveDir(cmd.String("dir"))
	cfg := internal.NewDefaultConfig(dataDir)

	// An explicit config path must exist; otherwise a config.yaml inside
	// the data dir is picked up when present.
	if path := cmd.String("config"); path != "" {
		if err := pkgconfig.Load(path, cfg); err != nil {
			return fmt.Errorf("serve: %w", err)
		}
	} else if err := pkgconfig.LoadOptional(filepath.Join(dataDir, "config.yaml"), cfg); err != nil {
		return fmt.Errorf("serve: %w", err)
	}

	if port := int(cmd.Int("port")); port != 0 {
		cfg.App.HTTP.Port = port
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("serve: invalid config: %w", err)
	}

	return internal.Run(ctx, internal.WithConfig(cfg))
}
