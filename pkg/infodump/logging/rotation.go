package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// RotationConfig configures size-based log rotation.
type RotationConfig struct {
	// MaxSizeBytes rotates the file when it would exceed this size.
	// Zero or negative disables rotation.
	MaxSizeBytes int64

	// MaxBackups is the number of rotated files to keep
	// (infodump.log.1 is the newest backup).
	MaxBackups int
}

// DefaultRotationConfig returns rotation defaults: 10 MiB, 5 backups.
func DefaultRotationConfig() RotationConfig {
	return RotationConfig{
		MaxSizeBytes: 10 * 1024 * 1024,
		MaxBackups:   5,
	}
}

// RotatingWriter is an io.WriteCloser that rotates the underlying file
// by size. Rotation renames the current file to <path>.1, shifting
// older backups up to MaxBackups before dropping them.
type RotatingWriter struct {
	mu   sync.Mutex
	path string
	cfg  RotationConfig
	file *os.File
	size int64
}

// NewRotatingWriter opens (or creates) the log file at path.
// Parent directories are created as needed.
func NewRotatingWriter(path string, cfg RotationConfig) (*RotatingWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	w := &RotatingWriter{path: path, cfg: cfg}
	if err := w.open(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *RotatingWriter) open() error {
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("stat log file: %w", err)
	}

	w.file = f
	w.size = info.Size()
	return nil
}

// Write appends to the log file, rotating first if the write would push
// the file past the configured size.
func (w *RotatingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cfg.MaxSizeBytes > 0 && w.size+int64(len(p)) > w.cfg.MaxSizeBytes && w.size > 0 {
		if err := w.rotate(); err != nil {
			return 0, err
		}
	}

	n, err := w.file.Write(p)
	w.size += int64(n)
	return n, err
}

// rotate shifts backups and reopens an empty current file.
// Must be called with the mutex held.
func (w *RotatingWriter) rotate() error {
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("closing log file for rotation: %w", err)
	}

	backups := w.cfg.MaxBackups
	if backups < 1 {
		backups = 1
	}

	// Oldest backup falls off the end.
	_ = os.Remove(fmt.Sprintf("%s.%d", w.path, backups))
	for i := backups - 1; i >= 1; i-- {
		src := fmt.Sprintf("%s.%d", w.path, i)
		dst := fmt.Sprintf("%s.%d", w.path, i+1)
		if _, err := os.Stat(src); err == nil {
			_ = os.Rename(src, dst)
		}
	}
	if err := os.Rename(w.path, w.path+".1"); err != nil {
		return fmt.Errorf("rotating log file: %w", err)
	}

	return w.open()
}

// Close closes the underlying file.
func (w *RotatingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}
