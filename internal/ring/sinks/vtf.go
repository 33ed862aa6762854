package sinks

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/Biochemical-Networks/actinringsmc/internal/ring"
)

// VTFFile writes the trajectory sink in VMD's VTF format: an atom
// declaration block on open (one line per filament, contiguous atom
// index ranges, colored by filament index), then one "t"-prefixed
// coordinate block per frame.
type VTFFile struct {
	w      *bufio.Writer
	closer io.Closer
}

// NewVTFFile opens path for writing and wraps it as a VTFFile.
func NewVTFFile(path string) (*VTFFile, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("sinks: open vtf file %s: %w", path, err)
	}
	return &VTFFile{w: bufio.NewWriter(f), closer: f}, nil
}

func (v *VTFFile) WriteTopology(s *ring.System) error {
	start := 0
	for _, f := range s.Filaments {
		end := start + f.Len() - 1
		if _, err := fmt.Fprintf(v.w, "a %d:%d c %d r 2.5\n", start, end, f.Index); err != nil {
			return err
		}
		start = end + 1
	}
	_, err := fmt.Fprintln(v.w)
	return err
}

func (v *VTFFile) WriteFrame(s *ring.System) error {
	if _, err := fmt.Fprintln(v.w, "t"); err != nil {
		return err
	}
	for _, f := range s.Filaments {
		for _, c := range f.Sites() {
			if _, err := fmt.Fprintf(v.w, "%d %d 0\n", c.X*10, c.Y); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(v.w)
	return err
}

func (v *VTFFile) Close() error {
	if err := v.w.Flush(); err != nil {
		v.closer.Close()
		return fmt.Errorf("sinks: flush vtf file: %w", err)
	}
	return v.closer.Close()
}
