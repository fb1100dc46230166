package gen

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTestFile(t *testing.T, dir, name, content string) {
	t.Helper()

	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestEngineRun(t *testing.T) {
	input := t.TempDir()
	output := t.TempDir()

	writeTestFile(t, input, "grammar.json", `[{"applyTo": "sword-*"}]`)
	writeTestFile(t, input, "sword-iron.json", `{"name": "iron"}`)
	writeTestFile(t, input, "ladder.json", `{"name": "ladder"}`)

	d := &fakeDialect{}

	if err := New(d, Options{}).Run(input, output); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// Matched target was transformed.
	got, err := os.ReadFile(filepath.Join(output, "sword-iron.json"))
	if err != nil {
		t.Fatalf("transformed output missing: %v", err)
	}

	if string(got) != "{}" {
		t.Errorf("transformed output = %s", got)
	}

	// Unmatched target was copied through unchanged.
	got, err = os.ReadFile(filepath.Join(output, "ladder.json"))
	if err != nil {
		t.Fatalf("skipped copy missing: %v", err)
	}

	if string(got) != `{"name": "ladder"}` {
		t.Errorf("skipped copy = %s", got)
	}
}

func TestEngineRunDry(t *testing.T) {
	input := t.TempDir()
	output := t.TempDir()

	writeTestFile(t, input, "grammar.json", `[{"applyTo": "*"}]`)
	writeTestFile(t, input, "sword-iron.json", `{}`)

	if err := New(&fakeDialect{}, Options{DryRun: true}).Run(input, output); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(output, "sword-iron.json")); !errors.Is(err, os.ErrNotExist) {
		t.Error("dry run wrote output")
	}
}

func TestEngineRunSamePath(t *testing.T) {
	dir := t.TempDir()

	err := New(&fakeDialect{}, Options{}).Run(dir, dir)
	if !errors.Is(err, ErrSamePath) {
		t.Errorf("Run() error = %v, want ErrSamePath", err)
	}
}

func TestEngineBatchAbsoluteGuard(t *testing.T) {
	err := New(&fakeDialect{}, Options{}).Batch("/abs/in", "out")
	if !errors.Is(err, ErrAbsolutePath) {
		t.Errorf("Batch() error = %v, want ErrAbsolutePath", err)
	}
}

func TestEngineBatch(t *testing.T) {
	input := t.TempDir()
	output := t.TempDir()

	dir := filepath.Join(input, "weapons", "fake")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	writeTestFile(t, dir, "grammar.json", `[{"applyTo": "*"}]`)
	writeTestFile(t, dir, "sword.json", `{}`)

	if err := New(&fakeDialect{}, Options{Absolute: true}).Batch(input, output); err != nil {
		t.Fatalf("Batch() error = %v", err)
	}

	path := filepath.Join(output, "weapons", "fake", "sword.json")
	if _, err := os.Stat(path); err != nil {
		t.Errorf("batch output missing: %v", err)
	}
}
