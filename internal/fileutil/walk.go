package fileutil

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-git/go-billy/v5"
)

// prunedDirs holds the directory names Walk never descends into
var prunedDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
}

// SkipReason explains why Walk left an entry out
type SkipReason string

const (
	// SkipPruned marks a directory excluded by IsPruned
	SkipPruned SkipReason = "pruned"
	// SkipSymlinkDir marks a symlink whose target is a directory
	SkipSymlinkDir SkipReason = "symlinked directory"
	// SkipSpecial marks pipes, sockets and device nodes
	SkipSpecial SkipReason = "special file"
)

// FileFunc receives every file Walk reaches. A non-nil err means the entry at
// path is a directory that could not be listed.
type FileFunc func(path string, err error)

// WalkOptions configures optional Walk callbacks
type WalkOptions struct {
	// Skipped is called for every entry the walk leaves out (optional)
	Skipped func(path string, reason SkipReason)
}

// IsPruned reports whether a directory with the given base name is excluded
// from traversal
func IsPruned(name string) bool {
	return prunedDirs[name]
}

// Walk visits the tree rooted at root depth-first and calls visit for each file
func Walk(fsys billy.Filesystem, root string, opts WalkOptions, visit FileFunc) error {
	info, err := fsys.Stat(root)
	if err != nil {
		return fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", root)
	}

	entries, err := readDirSorted(fsys, root)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", root, err)
	}

	w := &walker{fs: fsys, opts: opts, visit: visit}
	w.walkEntries(root, entries)
	return nil
}

type walker struct {
	fs    billy.Filesystem
	opts  WalkOptions
	visit FileFunc
}

func (w *walker) walkDir(dir string) {
	entries, err := readDirSorted(w.fs, dir)
	if err != nil {
		w.visit(dir, err)
		return
	}
	w.walkEntries(dir, entries)
}

func (w *walker) walkEntries(dir string, entries []os.FileInfo) {
	var subdirs []string

	for _, entry := range entries {
		path := w.fs.Join(dir, entry.Name())

		switch mode := entry.Mode(); {
		case mode.IsDir():
			subdirs = append(subdirs, entry.Name())
		case mode&os.ModeSymlink != 0:
			w.handleSymlink(path)
		case mode.IsRegular():
			w.visit(path, nil)
		default:
			w.skip(path, SkipSpecial)
		}
	}

	for _, name := range subdirs {
		if IsPruned(name) {
			w.skip(w.fs.Join(dir, name), SkipPruned)
		}
	}
	for _, name := range filterDirs(subdirs) {
		w.walkDir(w.fs.Join(dir, name))
	}
}

// handleSymlink resolves a link and hands it on unless it points at a
// directory or a special file. Dangling links go to visit so the open fails
// there.
func (w *walker) handleSymlink(path string) {
	target, err := w.fs.Stat(path)
	if err != nil {
		w.visit(path, nil)
		return
	}
	switch {
	case target.IsDir():
		w.skip(path, SkipSymlinkDir)
	case target.Mode().IsRegular():
		w.visit(path, nil)
	default:
		w.skip(path, SkipSpecial)
	}
}

func (w *walker) skip(path string, reason SkipReason) {
	if w.opts.Skipped != nil {
		w.opts.Skipped(path, reason)
	}
}

// filterDirs drops pruned names from a list of child directories
func filterDirs(names []string) []string {
	kept := make([]string, 0, len(names))
	for _, name := range names {
		if !IsPruned(name) {
			kept = append(kept, name)
		}
	}
	return kept
}

func readDirSorted(fsys billy.Filesystem, dir string) ([]os.FileInfo, error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	return entries, nil
}
