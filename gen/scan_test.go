package gen

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestDirectories(t *testing.T) {
	root := t.TempDir()

	for _, dir := range []string{
		"weapons/recipes/metal",
		"weapons/textures",
		"tools/recipes",
		"__pycache__/recipes",
	} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			t.Fatal(err)
		}
	}

	got, err := Directories(root, []string{"recipes"}, []string{"__pycache__"})
	if err != nil {
		t.Fatalf("Directories() error = %v", err)
	}

	slices.Sort(got)

	want := []string{
		filepath.Join("tools", "recipes"),
		filepath.Join("weapons", "recipes"),
		filepath.Join("weapons", "recipes", "metal"),
	}

	if !slices.Equal(got, want) {
		t.Errorf("Directories() = %v, want %v", got, want)
	}
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"grammar.json", "dagger.json", "sword.json5", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := Files(dir)
	if err != nil {
		t.Fatalf("Files() error = %v", err)
	}

	slices.Sort(got)

	want := []string{"dagger.json", "grammar.json", "sword.json5"}
	if !slices.Equal(got, want) {
		t.Errorf("Files() = %v, want %v", got, want)
	}
}
