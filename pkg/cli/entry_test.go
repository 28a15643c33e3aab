package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRunExitCodes(t *testing.T) {
	if code := Run([]string{"--help"}); code != 0 {
		t.Fatalf("--help: expected 0, got %d", code)
	}
	if code := Run([]string{"--bogus"}); code != 2 {
		t.Fatalf("unknown flag: expected 2, got %d", code)
	}
	if code := Run([]string{"a.sl", "b.sl"}); code != 2 {
		t.Fatalf("extra args: expected 2, got %d", code)
	}
	if code := Run([]string{filepath.Join(t.TempDir(), "missing.sl")}); code != 1 {
		t.Fatalf("missing file: expected 1, got %d", code)
	}
}

func TestRunFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.sl")
	if err := os.WriteFile(path, []byte("print(1 + 2)\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if code := RunFile(path); code != 0 {
		t.Fatalf("expected 0, got %d", code)
	}

	bad := filepath.Join(dir, "bad.sl")
	if err := os.WriteFile(bad, []byte("val x = 0\n1 / x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if code := RunFile(bad); code != 1 {
		t.Fatalf("pipeline error: expected 1, got %d", code)
	}
}
