// Package sinks provides the concrete file-backed adapters for the
// external interfaces of the MC/US core: order parameters, trajectory
// frames, US histogram matrices, run parameters, and bias restart
// files.
package sinks

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/Biochemical-Networks/actinringsmc/internal/ring"
)

// OpsFile writes the order-parameters sink: a header line followed by
// one "<step> <energy> <height> <radius>" record per write interval.
type OpsFile struct {
	w      *bufio.Writer
	closer io.Closer
}

// NewOpsFile opens path for writing and wraps it as an OpsFile.
func NewOpsFile(path string) (*OpsFile, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("sinks: open ops file %s: %w", path, err)
	}
	return &OpsFile{w: bufio.NewWriter(f), closer: f}, nil
}

func (o *OpsFile) WriteHeader() error {
	_, err := fmt.Fprintln(o.w, "step energy height radius")
	return err
}

func (o *OpsFile) WriteRecord(r ring.OpsRecord) error {
	_, err := fmt.Fprintf(o.w, "%d %g %d %g\n", r.Step, r.Energy, r.Height, r.Radius)
	return err
}

func (o *OpsFile) Close() error {
	if err := o.w.Flush(); err != nil {
		o.closer.Close()
		return fmt.Errorf("sinks: flush ops file: %w", err)
	}
	return o.closer.Close()
}
