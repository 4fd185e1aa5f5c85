// Package report renders the diagnostic report through an output sink
// and drives the independent, fault-isolated report sections.
//
// The sink is chosen once at startup (styled or plain) and passed
// explicitly to every section; no section branches on output mode.
package report

import (
	"fmt"
	"io"
	"strings"
)

// Style selects cosmetic rendering for a line. Styling never affects
// selection logic or content.
type Style int

// Line styles.
const (
	StyleNone Style = iota
	StyleError
	StyleWarning
	StyleSuccess
	StyleMuted
)

// Sink receives report output one line at a time.
type Sink interface {
	// Header emits a section title.
	Header(title string)

	// Line emits one line of section content.
	Line(text string, style Style)
}

// Linef formats and emits one line on the sink.
func Linef(s Sink, style Style, format string, args ...interface{}) {
	s.Line(fmt.Sprintf(format, args...), style)
}

// NewSink returns the styled sink when color is enabled and the plain
// sink otherwise.
func NewSink(w io.Writer, color bool) Sink {
	if color {
		return &StyledSink{w: w}
	}
	return &PlainSink{w: w}
}

// PlainSink writes unstyled text, suitable for piping.
type PlainSink struct {
	w io.Writer
}

// Header writes a banner line: ==== TITLE ====.
func (s *PlainSink) Header(title string) {
	fmt.Fprintf(s.w, "\n%s %s %s\n", strings.Repeat("=", 20), title, strings.Repeat("=", 20))
}

// Line writes the text verbatim.
func (s *PlainSink) Line(text string, _ Style) {
	fmt.Fprintln(s.w, text)
}

// StyledSink writes lipgloss-styled text for terminal display.
type StyledSink struct {
	w io.Writer
}

// Header writes the title inside a bordered panel.
func (s *StyledSink) Header(title string) {
	fmt.Fprintln(s.w)
	fmt.Fprintln(s.w, HeaderBox.Render(TitleStyle.Render(title)))
}

// Line writes the text with the style's color applied.
func (s *StyledSink) Line(text string, style Style) {
	switch style {
	case StyleError:
		text = ErrorStyle.Render(text)
	case StyleWarning:
		text = WarningStyle.Render(text)
	case StyleSuccess:
		text = SuccessStyle.Render(text)
	case StyleMuted:
		text = MutedStyle.Render(text)
	}
	fmt.Fprintln(s.w, text)
}

// Ensure both sinks implement Sink.
var (
	_ Sink = (*PlainSink)(nil)
	_ Sink = (*StyledSink)(nil)
)
