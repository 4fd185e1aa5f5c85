// Package types provides core data types for the infodump diagnostic tool.
// It includes structures for file and process entries, scan results, and
// the size formatting used throughout the report.
package types

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// Size constants for binary (IEC) units.
const (
	KiB int64 = 1024
	MiB int64 = 1024 * KiB
	GiB int64 = 1024 * MiB
	TiB int64 = 1024 * GiB
)

// FileEntry pairs a regular file with its size in bytes.
// Entries are ephemeral: collected during a single scan, sorted,
// truncated, rendered, and discarded.
type FileEntry struct {
	// Path is the absolute path to the file.
	Path string `json:"path"`

	// Size is the file size in bytes.
	Size int64 `json:"size"`
}

// HumanSize returns the entry size formatted for the report.
func (f *FileEntry) HumanSize() string {
	return FormatSize(f.Size)
}

// ScanResult contains the aggregated results of a largest-files scan.
type ScanResult struct {
	// Files contains the top entries, sorted by size descending.
	Files []FileEntry `json:"files"`

	// DirsScanned is the total number of directories traversed.
	DirsScanned int64 `json:"dirs_scanned"`

	// FilesScanned is the total number of regular files measured.
	FilesScanned int64 `json:"files_scanned"`

	// TotalSize is the sum of all measured file sizes in bytes.
	TotalSize int64 `json:"total_size"`

	// Elapsed is the total time taken to complete the scan.
	Elapsed time.Duration `json:"elapsed"`

	// Errors contains per-entry failures that did not abort the scan.
	Errors []ScanError `json:"errors,omitempty"`
}

// ScanError represents a per-entry failure encountered during scanning.
type ScanError struct {
	// Path is the file or directory path where the error occurred.
	Path string `json:"path"`

	// Error is the error message describing what went wrong.
	Error string `json:"error"`
}

// ProcessEntry describes one process in a CPU usage snapshot.
// It is valid only for the instant of collection; the process may have
// exited by the time the entry is rendered.
type ProcessEntry struct {
	// PID is the process identifier.
	PID int32 `json:"pid"`

	// Name is the process name. Empty when the name could not be read
	// before the process disappeared.
	Name string `json:"name"`

	// CPUPercent is the instantaneous CPU usage. A value that could not
	// be read ranks as zero; the entry is never dropped for it.
	CPUPercent float64 `json:"cpu_percent"`
}

// FormatSize converts a byte count to the report's size string:
// "%.2f GB" at or above one GiB, otherwise "%.2f MB" (bytes / 2^20).
//
// Examples:
//   - FormatSize(2 * GiB) returns "2.00 GB"
//   - FormatSize(500 * MiB) returns "500.00 MB"
//   - FormatSize(0) returns "0.00 MB"
func FormatSize(bytes int64) string {
	if bytes >= GiB {
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(GiB))
	}
	return fmt.Sprintf("%.2f MB", float64(bytes)/float64(MiB))
}

// FormatCount converts a byte count to an IEC string for statistics
// lines ("1.5 GiB"). Report entries use FormatSize instead.
func FormatCount(bytes int64) string {
	return humanize.IBytes(uint64(bytes))
}
