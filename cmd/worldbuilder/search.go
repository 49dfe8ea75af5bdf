package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/mirefeld/worldbuilder/internal/catalog"
	"github.com/mirefeld/worldbuilder/internal/store"
)

// catalogFile is the SQLite catalog kept inside the data directory. The
// store only lists .txt files, so the catalog never shows up as a node.
const catalogFile = "index.db"

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "full-text search through node types and notes",
		ArgsUsage: "QUERY",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"l"},
				Usage:   "maximum number of results",
				Value:   20,
			},
			dirFlag(),
		},
		Action: runSearch,
	}
}

func runSearch(_ context.Context, cmd *cli.Command) error {
	query := cmd.Args().First()
	if query == "" {
		return fail("search: query is required")
	}

	dataDir := resolveDir(cmd.String("dir"))
	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		return fail("No data directory: " + dataDir)
	}

	st, err := store.NewFS(dataDir)
	if err != nil {
		return fmt.Errorf("search: open store: %w", err)
	}

	db, err := catalog.Open(filepath.Join(dataDir, catalogFile))
	if err != nil {
		return fmt.Errorf("search: open catalog: %w", err)
	}
	defer db.Close()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	if err := catalog.Sync(db, st, logger); err != nil {
		return fmt.Errorf("search: sync catalog: %w", err)
	}

	results, err := db.Search(query, int(cmd.Int("limit")))
	if err != nil {
		return fmt.Errorf("search: query catalog: %w", err)
	}
	if len(results) == 0 {
		fmt.Println("(no matches)")
		return nil
	}
	for _, res := range results {
		fmt.Printf("%-30s  [%s]  %s\n", res.Key, res.Kind, res.Snippet)
	}
	return nil
}
