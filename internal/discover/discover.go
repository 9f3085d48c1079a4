// Package discover resolves command-line targets into confidence files.
package discover

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
)

// Options controls how directory targets are searched.
type Options struct {
	Glob      string
	Recursive bool
}

// Resolve expands targets into file paths. Directories are searched for
// entries whose base name matches opts.Glob; files are returned as given,
// whether or not they match. Results keep target order and are not deduplicated.
func Resolve(afs afero.Fs, targets []string, opts Options) ([]string, error) {
	if _, err := filepath.Match(opts.Glob, ""); err != nil {
		return nil, fmt.Errorf("invalid glob %q: %w", opts.Glob, err)
	}
	if len(targets) == 0 {
		targets = []string{"."}
	}

	var files []string
	for _, target := range targets {
		info, err := afs.Stat(target)
		if err != nil {
			return nil, fmt.Errorf("target %s: %w", target, err)
		}
		if !info.IsDir() {
			files = append(files, target)
			continue
		}

		var found []string
		if opts.Recursive {
			found, err = walkMatches(afs, target, opts.Glob)
		} else {
			found, err = dirMatches(afs, target, opts.Glob)
		}
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

// dirMatches lists the direct children of dir that match glob.
func dirMatches(afs afero.Fs, dir, glob string) ([]string, error) {
	entries, err := afero.ReadDir(afs, dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ok, _ := filepath.Match(glob, e.Name()); ok {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(out)
	return out, nil
}

// walkMatches walks root depth-first in lexical order and returns every
// regular file whose base name matches glob.
func walkMatches(afs afero.Fs, root, glob string) ([]string, error) {
	var out []string
	err := afero.Walk(afs, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if ok, _ := filepath.Match(glob, info.Name()); ok {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return out, nil
}
