package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/mirefeld/worldbuilder/internal/editor"
	"github.com/mirefeld/worldbuilder/internal/store"
)

func editCommand() *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "edit a node in $EDITOR",
		ArgsUsage: "NAME",
		Flags:     []cli.Flag{dirFlag()},
		Action:    runEdit,
	}
}

func runEdit(_ context.Context, cmd *cli.Command) error {
	name := cmd.Args().First()
	if name == "" {
		return fail("edit: node name is required")
	}

	dataDir := resolveDir(cmd.String("dir"))
	key := store.Slugify(name)

	st, err := store.NewFS(dataDir)
	if err != nil || !st.Exists(key) {
		return fail("Node not found: " + nodePath(dataDir, name))
	}

	if err := editor.Open(st.Path(key)); err != nil {
		var notFound *editor.NotFoundError
		if errors.As(err, &notFound) {
			return fail("Editor not found: " + notFound.Name)
		}
		return fmt.Errorf("edit: %w", err)
	}
	return nil
}
