// Package batch runs the plotter over every AlphaFold3 output directory under a root.
package batch

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/mwiater/afplotter/internal/appconfig"
)

// IsValidTarget reports whether path is named after its parent directory,
// i.e. <dir>/<dir>_confidences.json.
func IsValidTarget(path string) bool {
	parent := filepath.Base(filepath.Dir(path))
	return filepath.Base(path) == parent+"_confidences.json"
}

// Find walks root and returns, in lexical order, every file matching
// appconfig.BatchGlob that passes IsValidTarget.
func Find(afs afero.Fs, root string) ([]string, error) {
	var found []string
	err := afero.Walk(afs, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if ok, _ := filepath.Match(appconfig.BatchGlob, info.Name()); ok && IsValidTarget(path) {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return found, nil
}
