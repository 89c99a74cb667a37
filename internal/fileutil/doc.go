// Package fileutil walks directory trees for utf8check.
//
// The walk runs over a billy.Filesystem so the same code serves the real
// operating system (osfs) and in-memory trees (memfs) in tests.
//
// # Traversal
//
// Walk is depth-first. Inside each directory the entries are sorted by name,
// the files are handed to the caller first, and the remaining child
// directories are filtered through IsPruned before the walk descends into
// them. A pruned directory is never listed, so nothing below it is opened.
//
// Directories named exactly "node_modules" or ".git" are pruned. The list is
// fixed and not configurable.
//
// # Symlinks
//
// Symlinks are resolved with Stat:
//   - a link to a directory is never followed (this also rules out cycles)
//   - a link to a regular file is handed to the caller like any file
//   - a dangling link is handed to the caller as well, so that opening it
//     reports the failure
//
// # Special files
//
// Named pipes, sockets and device nodes are skipped. Opening a pipe would
// block the walk and a device can be read forever.
//
// # Errors
//
// Walk fails only when the root cannot be used as a directory. A directory
// below the root that cannot be listed is reported to the caller through the
// FileFunc with a non-nil error and the walk moves on.
//
// # Usage
//
//	err := fileutil.Walk(osfs.New(root), "/", fileutil.WalkOptions{},
//	    func(path string, err error) {
//	        fmt.Println(path, err)
//	    })
package fileutil
