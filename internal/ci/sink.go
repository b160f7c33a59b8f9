// Package ci implements the thin contract with the invoking automation
// platform: a line-oriented log sink with collapsible group markers, a
// settings reader over INPUT_* environment variables, and a key-value
// output writer.
package ci

import (
	"fmt"
	"io"
	"os"
)

// Sink writes console lines for the automation platform's log viewer.
// StartGroup and EndGroup emit the platform's collapsible-section markers.
type Sink struct {
	w io.Writer
}

// NewSink returns a sink writing to w.
func NewSink(w io.Writer) *Sink {
	return &Sink{w: w}
}

// Stdout returns a sink on standard output, where the platform collects
// workflow logs.
func Stdout() *Sink {
	return NewSink(os.Stdout)
}

// Line writes a single log line.
func (s *Sink) Line(text string) {
	fmt.Fprintln(s.w, text)
}

// Linef writes a single formatted log line.
func (s *Sink) Linef(format string, args ...interface{}) {
	fmt.Fprintf(s.w, format+"\n", args...)
}

// Blank writes an empty separator line.
func (s *Sink) Blank() {
	fmt.Fprintln(s.w)
}

// StartGroup opens a collapsible log section titled title.
func (s *Sink) StartGroup(title string) {
	fmt.Fprintf(s.w, "::group::%s\n", title)
}

// EndGroup closes the most recently opened log section.
func (s *Sink) EndGroup() {
	fmt.Fprintln(s.w, "::endgroup::")
}

// Warningf emits a warning annotation line.
func (s *Sink) Warningf(format string, args ...interface{}) {
	fmt.Fprintf(s.w, "::warning::"+format+"\n", args...)
}
