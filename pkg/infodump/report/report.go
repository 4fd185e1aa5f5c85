package report

import (
	"context"

	"github.com/jamesainslie/infodump/pkg/infodump/logging"
)

// Section is one independent block of the report. Run emits the
// section's content on the sink; a returned error describes a
// whole-section failure (per-entry omissions are handled inside).
type Section struct {
	Title string
	Run   func(ctx context.Context, sink Sink) error
}

// Runner executes sections in order. Sections are fault-isolated: a
// failing section renders a single error line and the next section
// still runs. The report never aborts.
type Runner struct {
	sink     Sink
	sections []Section
}

// NewRunner creates a Runner that renders to the given sink.
func NewRunner(sink Sink, sections ...Section) *Runner {
	return &Runner{sink: sink, sections: sections}
}

// Add appends a section to the run order.
func (r *Runner) Add(s Section) {
	r.sections = append(r.sections, s)
}

// Run executes every section in sequence and returns the number of
// sections that failed. Failures are already rendered inline.
func (r *Runner) Run(ctx context.Context) int {
	failed := 0
	for _, section := range r.sections {
		r.sink.Header(section.Title)
		if err := section.Run(ctx, r.sink); err != nil {
			failed++
			logging.Get("report").Warn("section failed", "section", section.Title, "error", err)
			Linef(r.sink, StyleError, "Error: %v", err)
		}
	}
	return failed
}
