package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/mirefeld/worldbuilder/internal/apperr"
	"github.com/mirefeld/worldbuilder/internal/index"
	"github.com/mirefeld/worldbuilder/internal/store"
	"github.com/mirefeld/worldbuilder/internal/tree"
)

func treeCommand() *cli.Command {
	return &cli.Command{
		Name:  "tree",
		Usage: "print hierarchy tree",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "start from a specific root node name",
			},
			dirFlag(),
		},
		Action: runTree,
	}
}

func runTree(_ context.Context, cmd *cli.Command) error {
	dataDir := resolveDir(cmd.String("dir"))
	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		return fail("No data directory: " + dataDir)
	}

	st, err := store.NewFS(dataDir)
	if err != nil {
		return fmt.Errorf("tree: open store: %w", err)
	}
	idx, err := index.Build(st)
	if err != nil {
		return fmt.Errorf("tree: build index: %w", err)
	}

	if root := cmd.String("root"); root != "" {
		if err := tree.Render(os.Stdout, idx, root); err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return fail("Root not found: " + root)
			}
			return fmt.Errorf("tree: render: %w", err)
		}
		return nil
	}
	tree.RenderAll(os.Stdout, idx)
	return nil
}
