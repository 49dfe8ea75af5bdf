package editor

import (
	"errors"
	"testing"
)

func TestResolve_Precedence(t *testing.T) {
	t.Setenv("EDITOR", "ed-from-editor")
	t.Setenv("VISUAL", "ed-from-visual")
	if got := Resolve(); got != "ed-from-editor" {
		t.Errorf("Resolve = %q, want $EDITOR", got)
	}

	t.Setenv("EDITOR", "")
	if got := Resolve(); got != "ed-from-visual" {
		t.Errorf("Resolve = %q, want $VISUAL", got)
	}

	t.Setenv("VISUAL", "")
	if got := Resolve(); got != fallbackEditor {
		t.Errorf("Resolve = %q, want fallback %q", got, fallbackEditor)
	}
}

func TestOpen_MissingEditor(t *testing.T) {
	t.Setenv("EDITOR", "definitely-not-an-editor-binary")
	err := Open("/dev/null")
	var nfe *NotFoundError
	if !errors.As(err, &nfe) {
		t.Fatalf("err = %v, want *NotFoundError", err)
	}
	if nfe.Name != "definitely-not-an-editor-binary" {
		t.Errorf("Name = %q", nfe.Name)
	}
}
