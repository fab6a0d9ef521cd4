package processor

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Resolve expands targets into the files to convert.
//
// File targets are returned as-is; the extension filter is applied when they
// are processed so that a mismatch is reported instead of silently dropped.
// Directory targets contribute their regular files, including symlinks to
// regular files (all descendants when opts.Recursive is set), that match
// opts.Extension. A target that does not
// exist or a directory that cannot be read yields one Failed result and does
// not affect the other targets. Files are deduplicated and sorted.
func Resolve(targets []string, opts Options) ([]string, []Result) {
	var files []string
	var failures []Result
	seen := make(map[string]bool)

	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			failures = append(failures, targetFailure(target, err))
			continue
		}

		var found []string
		if info.IsDir() {
			var errs []Result
			found, errs = enumerate(target, opts)
			failures = append(failures, errs...)
		} else {
			found = []string{target}
		}

		for _, path := range found {
			key := pathKey(path)
			if seen[key] {
				continue
			}
			seen[key] = true
			files = append(files, path)
		}
	}

	sort.Strings(files)
	return files, failures
}

func enumerate(dir string, opts Options) ([]string, []Result) {
	if !opts.Recursive {
		return listDir(dir, opts)
	}

	var files []string
	var failures []Result
	fsys := os.DirFS(dir)
	_ = fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, walkErr error) error {
		fullPath := filepath.Join(dir, filepath.FromSlash(path))
		if walkErr != nil {
			failures = append(failures, Result{Path: fullPath, Outcome: Failed, Err: walkErr})
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !matchesExtension(path, opts.Extension) {
			return nil
		}
		regular, err := isRegularFile(fullPath, d)
		if err != nil {
			failures = append(failures, Result{Path: fullPath, Outcome: Failed, Err: err})
			return nil
		}
		if regular {
			files = append(files, fullPath)
		}
		return nil
	})
	return files, failures
}

func listDir(dir string, opts Options) ([]string, []Result) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, []Result{{Path: dir, Outcome: Failed, Err: err}}
	}

	var files []string
	var failures []Result
	for _, entry := range entries {
		if entry.IsDir() || !matchesExtension(entry.Name(), opts.Extension) {
			continue
		}
		fullPath := filepath.Join(dir, entry.Name())
		regular, err := isRegularFile(fullPath, entry)
		if err != nil {
			failures = append(failures, Result{Path: fullPath, Outcome: Failed, Err: err})
			continue
		}
		if regular {
			files = append(files, fullPath)
		}
	}
	return files, failures
}

// isRegularFile reports whether d is a regular file, following a symlink to
// its target. Symlinked directories are not descended into. A dangling link
// is an error.
func isRegularFile(path string, d fs.DirEntry) (bool, error) {
	if d.Type().IsRegular() {
		return true, nil
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

func targetFailure(target string, err error) Result {
	if os.IsNotExist(err) {
		err = ErrNotFound
	}
	return Result{Path: target, Outcome: Failed, Err: err}
}

func matchesExtension(path, ext string) bool {
	return ext == "" || strings.EqualFold(filepath.Ext(path), ext)
}

func pathKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
