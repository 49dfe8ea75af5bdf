package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/mirefeld/worldbuilder/internal/store"
)

const version = "0.1.0"

func main() {
	cmd := &cli.Command{
		Name:    "worldbuilder",
		Usage:   "Personal world-building knowledge base: flat-text records, hierarchy trees, full-text search",
		Version: version,
		Commands: []*cli.Command{
			initCommand(),
			addCommand(),
			listCommand(),
			showCommand(),
			editCommand(),
			treeCommand(),
			searchCommand(),
			serveCommand(),
			mcpCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// defaultDataDir is the per-user application data path used when -d is not given.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "worldbuilder"
	}
	return filepath.Join(home, ".local", "share", "worldbuilder")
}

// dirFlag is the shared -d/--dir flag carried by every data-touching command.
func dirFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "dir",
		Aliases: []string{"d"},
		Usage:   "data dir",
		Value:   defaultDataDir(),
		Sources: cli.EnvVars("WORLDBUILDER_DATA_DIR"),
	}
}

// resolveDir expands a leading ~ and makes the path absolute.
func resolveDir(dir string) string {
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, dir[1:])
		}
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	return abs
}

// nodePath is the record file path for a node name, used in user-facing
// messages even when the store cannot be opened.
func nodePath(dataDir, name string) string {
	return filepath.Join(dataDir, store.Slugify(name)+".txt")
}

// fail prints a one-line message to stdout and exits with status 1.
func fail(msg string) error {
	os.Stdout.WriteString(msg + "\n")
	return cli.Exit("", 1)
}
