// Package output provides adapters for writing application output.
package output

import (
	"fmt"
	"io"
	"os"
)

// Writer writes the resolved web URL to the configured output destination.
// By default, it writes to stdout.
type Writer struct {
	out io.Writer
}

// NewWriter creates a new Writer that writes to stdout.
func NewWriter() *Writer {
	return &Writer{out: os.Stdout}
}

// NewWriterWithOutput creates a new Writer with a custom output destination.
// This is useful for testing.
func NewWriterWithOutput(out io.Writer) *Writer {
	return &Writer{out: out}
}

// WriteWebURL writes the web URL to the output destination as a single line
// without any prefix or formatting, so the output can be piped.
func (w *Writer) WriteWebURL(url string) error {
	_, err := fmt.Fprintln(w.out, url)
	return err
}
