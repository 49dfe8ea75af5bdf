package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/mirefeld/worldbuilder/internal/catalog"
	"github.com/mirefeld/worldbuilder/internal/mcpserver"
	"github.com/mirefeld/worldbuilder/internal/nodeservice"
	"github.com/mirefeld/worldbuilder/internal/store"
)

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:   "mcp",
		Usage:  "run the MCP server on stdin/stdout for LLM integration",
		Flags:  []cli.Flag{dirFlag()},
		Action: runMCP,
	}
}

func runMCP(_ context.Context, cmd *cli.Command) error {
	dataDir := resolveDir(cmd.String("dir"))
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("mcp: create data dir: %w", err)
	}

	st, err := store.NewFS(dataDir)
	if err != nil {
		return fmt.Errorf("mcp: open store: %w", err)
	}

	db, err := catalog.Open(filepath.Join(dataDir, catalogFile))
	if err != nil {
		return fmt.Errorf("mcp: open catalog: %w", err)
	}
	defer db.Close()

	// Stdout carries the MCP transport, so logs go to stderr.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	if err := catalog.Sync(db, st, logger); err != nil {
		return fmt.Errorf("mcp: sync catalog: %w", err)
	}

	svc := nodeservice.NewService(st, db)
	return mcpserver.New(st, svc).ServeStdio()
}
