package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charlievieth/fastwalk"
	"github.com/jamesainslie/infodump/pkg/infodump/logging"
	"github.com/jamesainslie/infodump/pkg/infodump/types"
)

// ErrRootUnavailable indicates the scan root could not be opened at all.
// It is distinct from per-entry failures, which never abort a scan.
var ErrRootUnavailable = errors.New("scan root unavailable")

// statEntry reads the file info for a walked entry. Overridable so tests
// can exercise the vanished-file path deterministically.
var statEntry = func(d fs.DirEntry) (fs.FileInfo, error) {
	return d.Info()
}

// Scanner collects (size, path) pairs for regular files and selects the
// largest ones. Entries that cannot be measured are skipped per entry.
type Scanner struct {
	opts Options

	// Atomic counters; fastwalk invokes the callback concurrently.
	dirsScanned  atomic.Int64
	filesScanned atomic.Int64
	bytesScanned atomic.Int64

	// entries collects every measurable file. The full set is buffered and
	// sorted once; a bounded heap would give the same top-K on a static tree.
	entries   []types.FileEntry
	entriesMu sync.Mutex

	// errors collects per-entry failures without stopping the scan.
	errors   []types.ScanError
	errorsMu sync.Mutex

	// root is the resolved absolute path being scanned.
	root string
}

// New creates a new Scanner with the given options.
func New(opts Options) *Scanner {
	_ = opts.Validate()
	return &Scanner{
		opts:    opts,
		entries: make([]types.FileEntry, 0),
		errors:  make([]types.ScanError, 0),
	}
}

// Scan walks the tree and returns the largest files found.
// A root that cannot be opened is a whole-operation error; everything
// else is a per-entry omission recorded in the result's error list.
func (s *Scanner) Scan(ctx context.Context) (*types.ScanResult, error) {
	startTime := time.Now()

	root, err := s.validateRoot()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRootUnavailable, err)
	}
	s.root = root

	logger := logging.Get("scanner")
	logger.Debug("scan started", "root", root, "limit", s.opts.Limit)

	if err := s.executeWalk(ctx); err != nil {
		return nil, err
	}

	result := &types.ScanResult{
		Files:        s.selectLargest(),
		DirsScanned:  s.dirsScanned.Load(),
		FilesScanned: s.filesScanned.Load(),
		TotalSize:    s.bytesScanned.Load(),
		Elapsed:      time.Since(startTime),
		Errors:       s.errors,
	}

	logger.Debug("scan finished",
		"files", result.FilesScanned,
		"dirs", result.DirsScanned,
		"skipped", len(result.Errors),
		"elapsed", result.Elapsed)

	return result, nil
}

// validateRoot resolves the root path to absolute and verifies it is a
// directory that can be opened.
func (s *Scanner) validateRoot() (string, error) {
	root, err := filepath.Abs(s.opts.Root)
	if err != nil {
		return "", err
	}

	rootInfo, err := os.Stat(root)
	if err != nil {
		return "", err
	}
	if !rootInfo.IsDir() {
		return "", fmt.Errorf("%s: not a directory", root)
	}

	// Opening the directory catches permission failures Stat does not.
	f, err := os.Open(root)
	if err != nil {
		return "", err
	}
	_ = f.Close()

	return root, nil
}

// executeWalk runs fastwalk over the root.
func (s *Scanner) executeWalk(ctx context.Context) error {
	conf := fastwalk.Config{
		Follow: false, // Don't follow symlinks.
	}

	walkCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})
	go func() {
		<-walkCtx.Done()
		close(done)
	}()

	err := fastwalk.Walk(&conf, s.root, s.walkCallback(done))
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, fastwalk.ErrSkipFiles) {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return nil
}

// walkCallback returns the callback function for fastwalk.Walk.
func (s *Scanner) walkCallback(done <-chan struct{}) fs.WalkDirFunc {
	return func(path string, d fs.DirEntry, err error) error {
		select {
		case <-done:
			// Prune descent so a cancelled scan stops traversing
			// instead of skipping files all the way down.
			if d != nil && d.IsDir() {
				return fastwalk.SkipDir
			}
			return fastwalk.ErrSkipFiles
		default:
		}

		// Unreadable entries are omissions, not scan failures.
		if err != nil {
			s.addError(path, err)
			return nil
		}

		if s.isExcluded(path) {
			if d.IsDir() {
				return fastwalk.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			s.dirsScanned.Add(1)
			return nil
		}

		if d.Type().IsRegular() {
			s.processFile(path, d)
		}

		return nil
	}
}

// processFile measures a regular file and buffers its entry.
// Files that vanish between traversal and stat are skipped.
func (s *Scanner) processFile(path string, d fs.DirEntry) {
	info, err := statEntry(d)
	if err != nil {
		s.addError(path, err)
		return
	}

	size := info.Size()
	s.filesScanned.Add(1)
	s.bytesScanned.Add(size)

	s.entriesMu.Lock()
	s.entries = append(s.entries, types.FileEntry{Path: path, Size: size})
	s.entriesMu.Unlock()
}

// selectLargest sorts the buffered entries by size descending, breaking
// ties by path ascending so identical trees produce identical output,
// and truncates to the configured limit.
func (s *Scanner) selectLargest() []types.FileEntry {
	sort.Slice(s.entries, func(i, j int) bool {
		if s.entries[i].Size != s.entries[j].Size {
			return s.entries[i].Size > s.entries[j].Size
		}
		return s.entries[i].Path < s.entries[j].Path
	})

	limit := s.opts.Limit
	if limit > len(s.entries) {
		limit = len(s.entries)
	}
	return s.entries[:limit]
}

// addError records a per-entry failure thread-safely.
func (s *Scanner) addError(path string, err error) {
	s.errorsMu.Lock()
	s.errors = append(s.errors, types.ScanError{
		Path:  path,
		Error: err.Error(),
	})
	s.errorsMu.Unlock()
}

// isExcluded checks if a path matches any exclusion pattern.
func (s *Scanner) isExcluded(path string) bool {
	for _, pattern := range s.opts.Exclude {
		if matchesExclusionPattern(path, pattern) {
			return true
		}
	}
	return false
}

// matchesExclusionPattern checks if a path matches a single pattern,
// either as a path prefix or as a glob against the basename or full path.
func matchesExclusionPattern(path, pattern string) bool {
	if pattern == "" {
		return false
	}

	if path == pattern {
		return true
	}
	if len(path) > len(pattern) && path[:len(pattern)+1] == pattern+string(filepath.Separator) {
		return true
	}

	if matched, err := filepath.Match(pattern, filepath.Base(path)); err == nil && matched {
		return true
	}
	if matched, err := filepath.Match(pattern, path); err == nil && matched {
		return true
	}

	return false
}
