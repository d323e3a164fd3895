package driver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"cdl/internal/diag"
	"cdl/internal/source"
)

// SourceExt is the extension of CDL source files.
const SourceExt = ".cdl"

// ListSources expands paths into a sorted, duplicate-free list of *.cdl files.
// Directories are walked recursively; explicit files are taken as given.
func ListSources(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// expandSources lists every root on its own so a missing path is reported
// without hiding the sources found under the other roots.
func expandSources(paths []string, r diag.Reporter) ([]string, error) {
	var (
		files []string
		errs  []error
	)
	for _, root := range paths {
		found, err := ListSources([]string{root})
		if err != nil {
			r.Report(diag.IOLoadFileError, diag.SevError, source.Span{}, fmt.Sprintf("failed to list %s: %v", root, err), nil)
			errs = append(errs, fmt.Errorf("list %s: %w", root, err))
			continue
		}
		files = append(files, found...)
	}
	sort.Strings(files)
	files = slices.Compact(files)
	return files, errors.Join(errs...)
}

// loadFiles reads every path into fs. A file that cannot be read is reported
// and skipped; the rest are still compiled.
func loadFiles(fileSet *source.FileSet, paths []string, r diag.Reporter) ([]source.FileID, error) {
	ids := make([]source.FileID, 0, len(paths))
	var firstErr error
	for _, p := range paths {
		id, err := fileSet.Load(p)
		if err != nil {
			r.Report(diag.IOLoadFileError, diag.SevError, source.Span{}, fmt.Sprintf("failed to read %s: %v", p, err), nil)
			if firstErr == nil {
				firstErr = fmt.Errorf("load %s: %w", p, err)
			}
			continue
		}
		ids = append(ids, id)
	}
	return ids, firstErr
}
