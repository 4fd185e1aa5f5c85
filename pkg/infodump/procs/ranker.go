// Package procs ranks live processes by instantaneous CPU usage.
//
// The snapshot comes from gopsutil's process table. CPU percent on a
// first read has no baseline interval, so most entries report zero on a
// quiet system; entries with unreadable usage rank as zero rather than
// being dropped, because "not yet measured" has a well-defined fallback.
package procs

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jamesainslie/infodump/pkg/infodump/logging"
	"github.com/jamesainslie/infodump/pkg/infodump/types"
	"github.com/shirou/gopsutil/v4/process"
)

// ErrSnapshotUnavailable indicates the process table could not be read
// at all. Per-process field failures never produce this.
var ErrSnapshotUnavailable = errors.New("process snapshot unavailable")

// Lister produces a snapshot of currently visible processes.
// Injectable so the ranking logic tests against synthetic lists.
type Lister func(ctx context.Context) ([]types.ProcessEntry, error)

// Ranker selects the top CPU-consuming processes from a snapshot.
type Ranker struct {
	list Lister
}

// New creates a Ranker backed by the live process table.
func New() *Ranker {
	return &Ranker{list: listProcesses}
}

// NewWithLister creates a Ranker with a custom snapshot provider.
func NewWithLister(list Lister) *Ranker {
	return &Ranker{list: list}
}

// TopCPU returns the n processes with the highest CPU usage, sorted by
// usage descending with ties broken by ascending PID. n <= 0 returns an
// empty slice without error.
func (r *Ranker) TopCPU(ctx context.Context, n int) ([]types.ProcessEntry, error) {
	if n <= 0 {
		return []types.ProcessEntry{}, nil
	}

	entries, err := r.list(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshotUnavailable, err)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].CPUPercent != entries[j].CPUPercent {
			return entries[i].CPUPercent > entries[j].CPUPercent
		}
		return entries[i].PID < entries[j].PID
	})

	if n > len(entries) {
		n = len(entries)
	}

	logging.Get("procs").Debug("ranked processes", "total", len(entries), "returned", n)
	return entries[:n], nil
}

// listProcesses snapshots the live process table. A process that exits
// between enumeration and field reads keeps its entry: the missing
// field defaults (name empty, usage zero) instead of dropping the row.
func listProcesses(ctx context.Context) ([]types.ProcessEntry, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]types.ProcessEntry, 0, len(procs))
	for _, p := range procs {
		entry := types.ProcessEntry{PID: p.Pid}

		if name, err := p.NameWithContext(ctx); err == nil {
			entry.Name = name
		}
		if pct, err := p.CPUPercentWithContext(ctx); err == nil {
			entry.CPUPercent = pct
		}

		entries = append(entries, entry)
	}
	return entries, nil
}
