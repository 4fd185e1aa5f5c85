// Package sysinfo collects host identity, memory, disk usage, and
// network interface information for the diagnostic report.
package sysinfo

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/user"
	"time"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	gnet "github.com/shirou/gopsutil/v4/net"
)

// Identity describes the host and the invoking user.
type Identity struct {
	WorkingDir string
	Username   string
	Hostname   string
	Kernel     string
	OS         string
	Lang       string
	Time       time.Time
}

// MemoryStats holds a virtual memory snapshot.
type MemoryStats struct {
	TotalBytes     uint64
	AvailableBytes uint64
	UsedBytes      uint64
	UsedPercent    float64
}

// PartitionUsage is the usage of one mounted partition. Err carries a
// per-partition failure (typically permission denied) so it renders
// inline instead of dropping the partition.
type PartitionUsage struct {
	Device      string
	Mountpoint  string
	UsedPercent float64
	Err         string
}

// CollectIdentity gathers host identity information. Fields that cannot
// be read are filled with "unknown" rather than failing the section.
func CollectIdentity(ctx context.Context) Identity {
	id := Identity{
		Username: "unknown",
		Hostname: "unknown",
		Kernel:   "unknown",
		OS:       "unknown",
		Time:     time.Now(),
	}

	if wd, err := os.Getwd(); err == nil {
		id.WorkingDir = wd
	}
	if u, err := user.Current(); err == nil {
		id.Username = u.Username
	}
	if lang := os.Getenv("LANG"); lang != "" {
		id.Lang = lang
	} else {
		id.Lang = "unknown"
	}

	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return id
	}
	id.Hostname = info.Hostname
	id.Kernel = info.KernelVersion
	id.OS = fmt.Sprintf("%s %s", info.Platform, info.PlatformVersion)
	return id
}

// CollectMemory snapshots virtual memory usage.
func CollectMemory(ctx context.Context) (MemoryStats, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return MemoryStats{}, fmt.Errorf("reading virtual memory: %w", err)
	}
	return MemoryStats{
		TotalBytes:     vm.Total,
		AvailableBytes: vm.Available,
		UsedBytes:      vm.Used,
		UsedPercent:    vm.UsedPercent,
	}, nil
}

// listPartitions and partitionUsage read the live partition table.
// Overridable in tests.
var (
	listPartitions = disk.PartitionsWithContext
	partitionUsage = disk.UsageWithContext
)

// CollectDisks reports usage for every mounted partition. A partition
// whose usage cannot be read keeps its row with the failure inline; an
// unreadable partition table is a whole-operation error.
func CollectDisks(ctx context.Context) ([]PartitionUsage, error) {
	parts, err := listPartitions(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("listing partitions: %w", err)
	}

	out := make([]PartitionUsage, 0, len(parts))
	for _, p := range parts {
		pu := PartitionUsage{Device: p.Device, Mountpoint: p.Mountpoint}
		usage, err := partitionUsage(ctx, p.Mountpoint)
		switch {
		case errors.Is(err, fs.ErrPermission):
			pu.Err = "Permission Denied"
		case err != nil:
			pu.Err = err.Error()
		default:
			pu.UsedPercent = usage.UsedPercent
		}
		out = append(out, pu)
	}
	return out, nil
}

// CollectInterfaces returns the names of all network interfaces.
func CollectInterfaces(ctx context.Context) ([]string, error) {
	ifaces, err := gnet.InterfacesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing interfaces: %w", err)
	}

	names := make([]string, 0, len(ifaces))
	for _, iface := range ifaces {
		names = append(names, iface.Name)
	}
	return names, nil
}
