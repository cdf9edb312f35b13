// Package report renders protocol.Event values to the wire line formats in
// spec.md §6, against any io.Writer. It does not own event lifetime: the
// caller still owns pooling via protocol.AcquireEvent/ReleaseEvent.
package report

import (
	"bufio"
	"io"

	"github.com/coredepth/matchcore/protocol"
)

// Writer buffers rendered event lines to an underlying io.Writer.
type Writer struct {
	out *bufio.Writer
}

// New wraps w in a buffered line writer. Callers must call Flush when done.
func New(w io.Writer) *Writer {
	return &Writer{out: bufio.NewWriter(w)}
}

// Write renders e and writes it as one line, terminated with "\n".
func (w *Writer) Write(e *protocol.Event) error {
	if _, err := w.out.WriteString(e.Render()); err != nil {
		return err
	}
	return w.out.WriteByte('\n')
}

// WriteAll renders each event in order, stopping at the first error.
func (w *Writer) WriteAll(events []*protocol.Event) error {
	for _, e := range events {
		if err := w.Write(e); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes any buffered output to the underlying writer.
func (w *Writer) Flush() error {
	return w.out.Flush()
}
