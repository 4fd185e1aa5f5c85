package netcheck

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPingSuccess(t *testing.T) {
	orig := runPing
	runPing = func(ctx context.Context, target string) error {
		assert.Equal(t, "1.1.1.1", target)
		return nil
	}
	defer func() { runPing = orig }()

	c := &Checker{Target: "1.1.1.1"}
	ok, err := c.Ping(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPingFailure(t *testing.T) {
	orig := runPing
	runPing = func(ctx context.Context, target string) error {
		return errors.New("exit status 1")
	}
	defer func() { runPing = orig }()

	c := &Checker{Target: "192.0.2.1"}
	ok, err := c.Ping(context.Background())
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestPingTimeoutApplied(t *testing.T) {
	orig := runPing
	runPing = func(ctx context.Context, target string) error {
		deadline, ok := ctx.Deadline()
		require.True(t, ok, "ping context must carry a deadline")
		assert.LessOrEqual(t, time.Until(deadline), 100*time.Millisecond)
		return nil
	}
	defer func() { runPing = orig }()

	c := &Checker{Target: "1.1.1.1", Timeout: 100 * time.Millisecond}
	_, err := c.Ping(context.Background())
	require.NoError(t, err)
}
