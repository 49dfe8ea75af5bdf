package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/mirefeld/worldbuilder/internal/models"
	"github.com/mirefeld/worldbuilder/internal/record"
	"github.com/mirefeld/worldbuilder/internal/store"
)

func addCommand() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "add a node",
		ArgsUsage: "NAME",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "node type (e.g., Continent, Kingdom)",
				Value:   models.DefaultType,
			},
			&cli.StringFlag{
				Name:    "parent",
				Aliases: []string{"p"},
				Usage:   "parent key (e.g., /continents/edoras) or '-'",
			},
			&cli.StringFlag{
				Name:    "notes",
				Aliases: []string{"n"},
				Usage:   "initial notes",
			},
			dirFlag(),
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "overwrite if exists",
			},
		},
		Action: runAdd,
	}
}

func runAdd(_ context.Context, cmd *cli.Command) error {
	name := cmd.Args().First()
	if name == "" {
		return fail("add: node name is required")
	}

	dataDir := resolveDir(cmd.String("dir"))
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("add: create data dir: %w", err)
	}

	st, err := store.NewFS(dataDir)
	if err != nil {
		return fmt.Errorf("add: open store: %w", err)
	}

	key := store.Slugify(name)
	if st.Exists(key) && !cmd.Bool("force") {
		return fail("Refusing to overwrite existing node: " + st.Path(key))
	}

	data := record.Encode(models.Node{
		Type:   cmd.String("type"),
		Parent: cmd.String("parent"),
		Notes:  cmd.String("notes"),
	})
	if err := st.Write(key, data); err != nil {
		return fmt.Errorf("add: write record: %w", err)
	}

	fmt.Printf("Created node: %s\n", st.Path(key))
	return nil
}
