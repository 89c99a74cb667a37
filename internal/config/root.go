package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// executablePath is swapped out in tests
var executablePath = os.Executable

// ResolveRoot returns the absolute directory to scan.
// Priority order:
//  1. the explicit argument (if given)
//  2. the directory holding the utf8check executable
//  3. the current working directory (fallback)
func ResolveRoot(arg string) (string, error) {
	if arg != "" {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return "", fmt.Errorf("resolve root %s: %w", arg, err)
		}
		return abs, nil
	}

	if dir, err := executableDir(); err == nil {
		return dir, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return cwd, nil
}

// executableDir returns the directory of the running binary with symlinks resolved
func executableDir() (string, error) {
	exe, err := executablePath()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	abs, err := filepath.Abs(exe)
	if err != nil {
		return "", err
	}
	return filepath.Dir(abs), nil
}
