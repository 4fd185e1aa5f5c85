package report

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunnerExecutesAllSections(t *testing.T) {
	var buf bytes.Buffer
	var order []string

	section := func(name string) Section {
		return Section{
			Title: name,
			Run: func(ctx context.Context, sink Sink) error {
				order = append(order, name)
				sink.Line(name+" body", StyleNone)
				return nil
			},
		}
	}

	r := NewRunner(NewSink(&buf, false), section("FIRST"), section("SECOND"))
	failed := r.Run(context.Background())

	assert.Zero(t, failed)
	assert.Equal(t, []string{"FIRST", "SECOND"}, order)
	assert.Contains(t, buf.String(), "FIRST body")
	assert.Contains(t, buf.String(), "SECOND body")
}

func TestRunnerFaultIsolation(t *testing.T) {
	var buf bytes.Buffer
	ranAfterFailure := false

	r := NewRunner(NewSink(&buf, false),
		Section{
			Title: "BROKEN",
			Run: func(ctx context.Context, sink Sink) error {
				return errors.New("scan root unavailable")
			},
		},
		Section{
			Title: "HEALTHY",
			Run: func(ctx context.Context, sink Sink) error {
				ranAfterFailure = true
				sink.Line("still here", StyleNone)
				return nil
			},
		},
	)

	failed := r.Run(context.Background())

	assert.Equal(t, 1, failed)
	assert.True(t, ranAfterFailure, "a failing section must not abort later sections")
	assert.Contains(t, buf.String(), "Error: scan root unavailable")
	assert.Contains(t, buf.String(), "still here")
}

func TestRunnerAdd(t *testing.T) {
	var buf bytes.Buffer
	ran := false

	r := NewRunner(NewSink(&buf, false))
	r.Add(Section{
		Title: "ADDED",
		Run: func(ctx context.Context, sink Sink) error {
			ran = true
			return nil
		},
	})

	r.Run(context.Background())
	assert.True(t, ran)
}
