package sinks

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Biochemical-Networks/actinringsmc/internal/ring"
)

// parmsDoc is the exact key set of the .parms sink (spec.md §6).
type parmsDoc struct {
	Lf              int     `json:"lf"`
	T               float64 `json:"T"`
	Kd              float64 `json:"kd"`
	Ks              float64 `json:"ks"`
	EI              float64 `json:"EI"`
	FilamentLength  float64 `json:"Lf"`
	Xc              float64 `json:"Xc"`
	Nfil            int     `json:"Nfil"`
	Nsca            int     `json:"Nsca"`
	Delta           float64 `json:"delta"`
	Steps           int     `json:"steps"`
	WriteInterval   int     `json:"write_interval"`
	FileBase        string  `json:"filebase"`
	MaxBiasDiff     float64 `json:"max_bias_diff"`
	RadiusMoveFreq  float64 `json:"radius_move_freq"`
	Iters           int     `json:"iters"`
	AnalyticalBiases bool   `json:"analytical_biases"`
	BinWidth        int     `json:"binwidth"`
}

// ParmsFile writes the single-object .parms JSON sink.
type ParmsFile struct {
	path string
}

// NewParmsFile returns a ParmsFile targeting path; nothing is opened
// until WriteParms is called, since the whole document is written in
// one shot.
func NewParmsFile(path string) *ParmsFile {
	return &ParmsFile{path: path}
}

func (p *ParmsFile) WriteParms(sp ring.SystemParams, sim ring.SimParams) error {
	doc := parmsDoc{
		Lf:               sp.SitesPerFilament,
		T:                sp.T,
		Kd:               sp.Kd,
		Ks:               sp.Ks,
		EI:               sp.EI,
		FilamentLength:   sp.Lf,
		Xc:               sp.Xc,
		Nfil:             sp.NumFilaments,
		Nsca:             sp.NumScaffolds,
		Delta:            sp.Delta,
		Steps:            sim.Steps,
		WriteInterval:    sim.WriteInterval,
		FileBase:         sim.FileBase,
		MaxBiasDiff:      sp.MaxBiasDiff,
		RadiusMoveFreq:   sp.RadiusMoveFreq,
		Iters:            sim.Iters,
		AnalyticalBiases: sim.AnalyticalBiases,
		BinWidth:         sim.BinWidth,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("sinks: encode parms: %w", err)
	}
	if err := os.WriteFile(p.path, data, 0o644); err != nil {
		return fmt.Errorf("sinks: write parms file %s: %w", p.path, err)
	}
	return nil
}
