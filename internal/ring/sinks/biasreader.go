package sinks

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// FileBiasReader reads the bias-restart input file: a skipped header
// line, then one whitespace-delimited row of enes per iteration. Row
// numbering is 1-based, matching the US driver's iteration numbering.
type FileBiasReader struct {
	path string
}

// NewFileBiasReader returns a FileBiasReader targeting path.
func NewFileBiasReader(path string) *FileBiasReader {
	return &FileBiasReader{path: path}
}

func (r *FileBiasReader) ReadEnes(restartIter int) ([]float64, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("sinks: open bias restart file %s: %w", r.path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return nil, fmt.Errorf("sinks: bias restart file %s is empty", r.path)
	}

	row := 0
	for scanner.Scan() {
		row++
		if row != restartIter {
			continue
		}
		fields := strings.Fields(scanner.Text())
		enes := make([]float64, len(fields))
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("sinks: bias restart file %s row %d field %d: %w", r.path, row, i, err)
			}
			enes[i] = v
		}
		return enes, nil
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("sinks: read bias restart file %s: %w", r.path, err)
	}
	return nil, fmt.Errorf("sinks: bias restart file %s has no row %d", r.path, restartIter)
}
