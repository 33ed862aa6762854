package sinks

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// MatrixFile writes the shared .counts/.freqs/.biases format: a header
// of integer heights, then one row of per-bin values per US iteration,
// each value followed by a trailing space before the newline.
type MatrixFile struct {
	w      *bufio.Writer
	closer io.Closer
}

// NewMatrixFile opens path for writing and wraps it as a MatrixFile.
func NewMatrixFile(path string) (*MatrixFile, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("sinks: open matrix file %s: %w", path, err)
	}
	return &MatrixFile{w: bufio.NewWriter(f), closer: f}, nil
}

func (m *MatrixFile) WriteHeader(heights []int) error {
	for _, h := range heights {
		if _, err := fmt.Fprintf(m.w, "%d ", h); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(m.w)
	return err
}

func (m *MatrixFile) WriteRow(values []float64) error {
	for _, v := range values {
		if _, err := fmt.Fprintf(m.w, "%g ", v); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(m.w)
	return err
}

func (m *MatrixFile) Close() error {
	if err := m.w.Flush(); err != nil {
		m.closer.Close()
		return fmt.Errorf("sinks: flush matrix file: %w", err)
	}
	return m.closer.Close()
}
