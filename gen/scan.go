package gen

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Input file extensions recognized by the scanners.
var inputExts = []string{".json", ".json5"}

// Directories returns the paths under root, relative to root, whose
// immediate parent chain starts with <entry>/<wanted> for some top-level
// entry, including every nested subdirectory. Excluded names are pruned
// wherever they appear.
func Directories(root string, wanted, exclude []string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var out []string

	for _, entry := range entries {
		if !entry.IsDir() || slices.Contains(exclude, entry.Name()) {
			continue
		}

		for _, folder := range wanted {
			base := filepath.Join(root, entry.Name(), folder)

			info, err := os.Stat(base)
			if err != nil || !info.IsDir() {
				continue
			}

			err = filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}

				if !d.IsDir() {
					return nil
				}

				if slices.Contains(exclude, d.Name()) {
					return filepath.SkipDir
				}

				rel, err := filepath.Rel(root, path)
				if err != nil {
					return err
				}

				out = append(out, rel)

				return nil
			})
			if err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

// Files returns the input files directly inside dir, relative to dir.
func Files(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var out []string

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if slices.Contains(inputExts, ext) {
			out = append(out, entry.Name())
		}
	}

	return out, nil
}
