package sysinfo

import (
	"context"
	"errors"
	"io/fs"
	"testing"
	"time"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectIdentity(t *testing.T) {
	id := CollectIdentity(context.Background())

	assert.NotEmpty(t, id.WorkingDir)
	assert.NotEmpty(t, id.Username)
	assert.NotEmpty(t, id.Hostname)
	assert.NotEmpty(t, id.OS)
	assert.WithinDuration(t, time.Now(), id.Time, 5*time.Second)
}

func TestCollectMemory(t *testing.T) {
	stats, err := CollectMemory(context.Background())
	require.NoError(t, err)

	assert.Positive(t, stats.TotalBytes)
	assert.LessOrEqual(t, stats.UsedBytes, stats.TotalBytes)
	assert.GreaterOrEqual(t, stats.UsedPercent, 0.0)
	assert.LessOrEqual(t, stats.UsedPercent, 100.0)
}

func TestCollectDisks(t *testing.T) {
	parts, err := CollectDisks(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, parts)

	for _, p := range parts {
		assert.NotEmpty(t, p.Mountpoint)
		if p.Err == "" {
			assert.GreaterOrEqual(t, p.UsedPercent, 0.0)
		}
	}
}

func TestCollectDisksErrorMapping(t *testing.T) {
	origList, origUsage := listPartitions, partitionUsage
	defer func() { listPartitions, partitionUsage = origList, origUsage }()

	listPartitions = func(ctx context.Context, all bool) ([]disk.PartitionStat, error) {
		return []disk.PartitionStat{
			{Device: "/dev/sda1", Mountpoint: "/"},
			{Device: "/dev/sdb1", Mountpoint: "/locked"},
			{Device: "/dev/sdc1", Mountpoint: "/flaky"},
		}, nil
	}
	partitionUsage = func(ctx context.Context, path string) (*disk.UsageStat, error) {
		switch path {
		case "/locked":
			return nil, &fs.PathError{Op: "statfs", Path: path, Err: fs.ErrPermission}
		case "/flaky":
			return nil, errors.New("device busy")
		}
		return &disk.UsageStat{Path: path, UsedPercent: 42.5}, nil
	}

	parts, err := CollectDisks(context.Background())
	require.NoError(t, err)
	require.Len(t, parts, 3)

	assert.Empty(t, parts[0].Err)
	assert.InDelta(t, 42.5, parts[0].UsedPercent, 1e-9)

	// Only permission failures render the canonical message.
	assert.Equal(t, "Permission Denied", parts[1].Err)
	assert.Contains(t, parts[2].Err, "device busy")
}

func TestCollectInterfaces(t *testing.T) {
	names, err := CollectInterfaces(context.Background())
	require.NoError(t, err)
	// Every host has at least a loopback interface.
	assert.NotEmpty(t, names)
}
