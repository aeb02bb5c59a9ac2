package result

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// ErrRootNotFound reports a results root that does not exist.
var ErrRootNotFound = errors.New("results directory not found")

// Files returns the result files exactly two directory levels below
// root, i.e. root/<author>/<model>/*.json. Non-directories at the
// author and model levels and files without a .json extension are
// skipped silently; unreadable subdirectories are logged and skipped.
func Files(root string) ([]string, error) {
	if _, err := os.Stat(root); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRootNotFound, root)
		}
		return nil, fmt.Errorf("reading results directory %s: %w", root, err)
	}
	authors, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading results directory %s: %w", root, err)
	}

	var files []string
	for _, author := range authors {
		if !author.IsDir() {
			continue
		}
		authorDir := filepath.Join(root, author.Name())
		models, err := os.ReadDir(authorDir)
		if err != nil {
			slog.Error("skipping unreadable author directory", "dir", authorDir, "error", err)
			continue
		}
		for _, model := range models {
			if !model.IsDir() {
				continue
			}
			modelDir := filepath.Join(authorDir, model.Name())
			entries, err := os.ReadDir(modelDir)
			if err != nil {
				slog.Error("skipping unreadable model directory", "dir", modelDir, "error", err)
				continue
			}
			for _, entry := range entries {
				if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
					continue
				}
				files = append(files, filepath.Join(modelDir, entry.Name()))
			}
		}
	}
	return files, nil
}

// Collect walks root and extracts one record per well-formed result
// file. Per-file failures are logged and skipped so the rest of the
// batch still goes through; an empty tree yields an empty set and a
// warning, not an error.
func Collect(root string) (ResultSet, error) {
	files, err := Files(root)
	if err != nil {
		return nil, err
	}
	set := make(ResultSet, 0, len(files))
	for _, path := range files {
		rec, err := ExtractFile(path)
		if err != nil {
			slog.Error("skipping result file", "file", path, "error", err)
			continue
		}
		set = append(set, rec)
	}
	if len(set) == 0 {
		slog.Warn("no valid result files found", "dir", root)
	}
	return set, nil
}
