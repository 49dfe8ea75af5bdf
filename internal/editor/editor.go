// Package editor launches the user's text editor on a record file.
package editor

import (
	"fmt"
	"os"
	"os/exec"
)

// fallbackEditor is used when neither $EDITOR nor $VISUAL is set.
const fallbackEditor = "nano"

// NotFoundError reports that the configured editor binary does not exist.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return "editor not found: " + e.Name
}

// Resolve returns the editor command to use: $EDITOR, then $VISUAL, then
// the fallback.
func Resolve() string {
	if e := os.Getenv("EDITOR"); e != "" {
		return e
	}
	if v := os.Getenv("VISUAL"); v != "" {
		return v
	}
	return fallbackEditor
}

// Open runs the resolved editor on path, attached to the terminal, and
// blocks until it exits. A missing editor binary surfaces as *NotFoundError
// before launch so callers can print a one-line refusal instead of a
// half-started subprocess error.
func Open(path string) error {
	name := Resolve()
	bin, err := exec.LookPath(name)
	if err != nil {
		return &NotFoundError{Name: name}
	}

	cmd := exec.Command(bin, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor: run %s: %w", name, err)
	}
	return nil
}
