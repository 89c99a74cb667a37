// Package scanner walks a directory tree and collects every file that is not
// valid UTF-8 text.
package scanner

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/harrison/utf8check/internal/fileutil"
	"github.com/harrison/utf8check/internal/textcheck"
)

// Logger receives scan progress. *logger.ConsoleLogger satisfies it.
type Logger interface {
	LogDebug(message string)
	LogWarn(message string)
}

// ErrorKind classifies a Finding
type ErrorKind string

const (
	// KindDecode marks bytes that are not valid UTF-8
	KindDecode ErrorKind = "decode"
	// KindAccess marks a file or directory that could not be read
	KindAccess ErrorKind = "access"
)

// Finding is one file that failed the check
type Finding struct {
	// Path is the display path (display root joined with the walk path)
	Path string
	// Err is a *textcheck.DecodeError or *textcheck.AccessError
	Err error
}

// Kind reports which of the two error kinds the finding carries
func (f Finding) Kind() ErrorKind {
	var decodeErr *textcheck.DecodeError
	if errors.As(f.Err, &decodeErr) {
		return KindDecode
	}
	return KindAccess
}

// Description is the human-readable error text for the finding
func (f Finding) Description() string {
	return f.Err.Error()
}

// ScanResult holds the findings of one scan in traversal order
type ScanResult struct {
	Findings     []Finding
	FilesChecked int
	DirsPruned   int
	Duration     time.Duration
}

// Valid reports whether the scan found nothing to report
func (r *ScanResult) Valid() bool {
	return len(r.Findings) == 0
}

// Scanner checks every file below a root on a billy filesystem
type Scanner struct {
	fs          billy.Filesystem
	root        string
	displayRoot string
	logger      Logger
}

// New creates a Scanner that walks fsys from its own root ("/") and reports
// paths under displayRoot. A nil logger discards progress messages.
func New(fsys billy.Filesystem, displayRoot string, logger Logger) *Scanner {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Scanner{
		fs:          fsys,
		root:        "/",
		displayRoot: displayRoot,
		logger:      logger,
	}
}

// Scan walks the tree and returns the accumulated result. Individual file
// failures never stop the walk; an error is returned only when the root
// itself cannot be scanned.
func (s *Scanner) Scan() (*ScanResult, error) {
	start := time.Now()
	result := &ScanResult{Findings: make([]Finding, 0)}

	opts := fileutil.WalkOptions{
		Skipped: func(path string, reason fileutil.SkipReason) {
			if reason == fileutil.SkipPruned {
				result.DirsPruned++
			}
			s.logger.LogDebug(fmt.Sprintf("Skipping %s (%s)", s.displayPath(path), reason))
		},
	}

	err := fileutil.Walk(s.fs, s.root, opts, func(path string, walkErr error) {
		if walkErr != nil {
			s.logger.LogWarn(fmt.Sprintf("Cannot list directory %s: %v", s.displayPath(path), walkErr))
			result.Findings = append(result.Findings, Finding{
				Path: s.displayPath(path),
				Err:  &textcheck.AccessError{Err: walkErr},
			})
			return
		}

		result.FilesChecked++
		if err := textcheck.CheckFile(s.fs, path); err != nil {
			s.logger.LogDebug(fmt.Sprintf("Invalid %s: %v", s.displayPath(path), err))
			result.Findings = append(result.Findings, Finding{
				Path: s.displayPath(path),
				Err:  err,
			})
			return
		}
		s.logger.LogDebug(fmt.Sprintf("Checked %s", s.displayPath(path)))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", s.displayRoot, err)
	}

	result.Duration = time.Since(start)
	return result, nil
}

// displayPath maps a walk path onto the display root
func (s *Scanner) displayPath(path string) string {
	return filepath.Join(s.displayRoot, filepath.FromSlash(path))
}

type nopLogger struct{}

func (nopLogger) LogDebug(string) {}
func (nopLogger) LogWarn(string)  {}
