package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/mirefeld/worldbuilder/internal/record"
	"github.com/mirefeld/worldbuilder/internal/store"
)

func showCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "show a node",
		ArgsUsage: "NAME",
		Flags:     []cli.Flag{dirFlag()},
		Action:    runShow,
	}
}

func runShow(_ context.Context, cmd *cli.Command) error {
	name := cmd.Args().First()
	if name == "" {
		return fail("show: node name is required")
	}

	dataDir := resolveDir(cmd.String("dir"))
	key := store.Slugify(name)

	st, err := store.NewFS(dataDir)
	if err != nil || !st.Exists(key) {
		return fail("Node not found: " + nodePath(dataDir, name))
	}

	data, err := st.Read(key)
	if err != nil {
		return fmt.Errorf("show: read record: %w", err)
	}
	n := record.Parse(data)

	fmt.Printf("Name:   %s\n", name)
	fmt.Printf("Type:   %s\n", n.Type)
	fmt.Printf("Parent: %s\n", n.Parent)
	fmt.Println("Notes:")
	if n.Notes != "" {
		fmt.Println(n.Notes)
	} else {
		fmt.Println("(none)")
	}
	return nil
}
