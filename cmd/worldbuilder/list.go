package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/mirefeld/worldbuilder/internal/record"
	"github.com/mirefeld/worldbuilder/internal/store"
)

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "list nodes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "filter by type (e.g., Kingdom)",
			},
			dirFlag(),
		},
		Action: runList,
	}
}

func runList(_ context.Context, cmd *cli.Command) error {
	dataDir := resolveDir(cmd.String("dir"))
	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		return fail("No data directory: " + dataDir)
	}

	st, err := store.NewFS(dataDir)
	if err != nil {
		return fmt.Errorf("list: open store: %w", err)
	}

	metas, err := st.List()
	if err != nil {
		return fmt.Errorf("list: scan records: %w", err)
	}

	kind := cmd.String("type")
	count := 0
	for _, m := range metas {
		data, err := st.Read(m.Key)
		if err != nil {
			return fmt.Errorf("list: read %s: %w", m.Key, err)
		}
		n := record.Parse(data)
		if kind != "" && !strings.EqualFold(n.Type, kind) {
			continue
		}
		fmt.Printf("%-30s  [%s]  parent=%s\n", m.Key, n.Type, n.Parent)
		count++
	}
	if count == 0 {
		fmt.Println("(no nodes)")
	}
	return nil
}
