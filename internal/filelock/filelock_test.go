package filelock

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockUnlock(t *testing.T) {
	lock := NewFileLock(filepath.Join(t.TempDir(), "report.lock"))

	require.NoError(t, lock.Lock())
	require.NoError(t, lock.Unlock())
}

func TestTryLock(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "report.lock")

	first := NewFileLock(lockPath)
	require.NoError(t, first.Lock())

	second := NewFileLock(lockPath)
	acquired, err := second.TryLock()
	require.NoError(t, err)
	assert.False(t, acquired, "lock should be held by the first owner")

	require.NoError(t, first.Unlock())

	acquired, err = second.TryLock()
	require.NoError(t, err)
	assert.True(t, acquired)
	require.NoError(t, second.Unlock())
}

func TestAtomicWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")

	require.NoError(t, AtomicWrite(path, []byte("first")))
	require.NoError(t, AtomicWrite(path, []byte("second")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}

func TestAtomicWriteNoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.txt")

	require.NoError(t, AtomicWrite(path, []byte("content")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"), "temp file left behind: %s", e.Name())
	}
}

func TestAtomicWriteIntoDirectoryFails(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "taken")
	require.NoError(t, os.MkdirAll(filepath.Join(target, "child"), 0755))

	err := AtomicWrite(target, []byte("x"))
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should be removed after a failed rename")
}

func TestWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "reports", "utf8.txt")

	require.NoError(t, WriteReport(path, []byte("Scanning directory: /repo\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Scanning directory: /repo\n", string(data))
}

func TestWriteReportConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "utf8.txt")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			report := strings.Repeat(fmt.Sprintf("run %d\n", n), 200)
			assert.NoError(t, WriteReport(path, []byte(report)))
		}(i)
	}
	wg.Wait()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// The file must be exactly one complete report
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 200)
	for _, line := range lines {
		assert.Equal(t, lines[0], line)
	}
}
