package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
)

const readmeSeed = "World Builder data directory.\n" +
	"You can store your notes here in plain text files.\n"

func initCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "initialize a data directory",
		Flags: []cli.Flag{dirFlag()},
		Action: func(_ context.Context, cmd *cli.Command) error {
			dataDir := resolveDir(cmd.String("dir"))
			if err := os.MkdirAll(dataDir, 0o755); err != nil {
				return fmt.Errorf("init: create data dir: %w", err)
			}

			readme := filepath.Join(dataDir, "README.txt")
			if _, err := os.Stat(readme); os.IsNotExist(err) {
				if err := os.WriteFile(readme, []byte(readmeSeed), 0o644); err != nil {
					return fmt.Errorf("init: seed readme: %w", err)
				}
			}

			fmt.Printf("Initialized data directory at: %s\n", dataDir)
			return nil
		},
	}
}
