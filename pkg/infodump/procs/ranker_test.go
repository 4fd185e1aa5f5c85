package procs

import (
	"context"
	"errors"
	"testing"

	"github.com/jamesainslie/infodump/pkg/infodump/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticLister(entries []types.ProcessEntry) Lister {
	return func(ctx context.Context) ([]types.ProcessEntry, error) {
		out := make([]types.ProcessEntry, len(entries))
		copy(out, entries)
		return out, nil
	}
}

func TestTopCPUOrdering(t *testing.T) {
	r := NewWithLister(staticLister([]types.ProcessEntry{
		{PID: 1, Name: "a", CPUPercent: 5.0},
		{PID: 2, Name: "b", CPUPercent: 90.0},
		{PID: 3, Name: "c", CPUPercent: 0}, // unreadable usage ranks as zero
	}))

	top, err := r.TopCPU(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, top, 2)

	assert.Equal(t, int32(2), top[0].PID)
	assert.Equal(t, "b", top[0].Name)
	assert.InDelta(t, 90.0, top[0].CPUPercent, 1e-9)

	assert.Equal(t, int32(1), top[1].PID)
	assert.Equal(t, "a", top[1].Name)
}

func TestTopCPUTieBreakByPID(t *testing.T) {
	r := NewWithLister(staticLister([]types.ProcessEntry{
		{PID: 40, Name: "later", CPUPercent: 10.0},
		{PID: 4, Name: "earlier", CPUPercent: 10.0},
		{PID: 400, Name: "latest", CPUPercent: 10.0},
	}))

	top, err := r.TopCPU(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, []int32{4, 40, 400}, []int32{top[0].PID, top[1].PID, top[2].PID})
}

func TestTopCPUZeroN(t *testing.T) {
	called := false
	r := NewWithLister(func(ctx context.Context) ([]types.ProcessEntry, error) {
		called = true
		return nil, nil
	})

	top, err := r.TopCPU(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, top)
	assert.False(t, called, "snapshot should not be taken for N=0")
}

func TestTopCPUFewerThanN(t *testing.T) {
	r := NewWithLister(staticLister([]types.ProcessEntry{
		{PID: 1, Name: "only", CPUPercent: 1.0},
	}))

	top, err := r.TopCPU(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, top, 1)
}

func TestTopCPUUnreadableEntriesKept(t *testing.T) {
	// A process with no usage reading ranks as zero, never dropped.
	r := NewWithLister(staticLister([]types.ProcessEntry{
		{PID: 9, Name: ""}, // name unreadable, usage unreadable
		{PID: 2, Name: "busy", CPUPercent: 50.0},
	}))

	top, err := r.TopCPU(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, int32(2), top[0].PID)
	assert.Equal(t, int32(9), top[1].PID)
	assert.Zero(t, top[1].CPUPercent)
}

func TestTopCPUSnapshotFailure(t *testing.T) {
	r := NewWithLister(func(ctx context.Context) ([]types.ProcessEntry, error) {
		return nil, errors.New("permission denied")
	})

	top, err := r.TopCPU(context.Background(), 3)
	assert.Nil(t, top)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSnapshotUnavailable)
}

func TestLiveSnapshot(t *testing.T) {
	// The live lister must at least see this test process.
	r := New()
	top, err := r.TopCPU(context.Background(), 5)
	require.NoError(t, err)
	assert.NotEmpty(t, top)
}
