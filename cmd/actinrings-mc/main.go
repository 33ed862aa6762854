// Command actinrings-mc runs a single Metropolis MC trajectory with no
// bias term and writes order parameters and a trajectory to
// <filebase>.ops / <filebase>.vtf.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/Biochemical-Networks/actinringsmc/internal/cli"
	"github.com/Biochemical-Networks/actinringsmc/internal/ring"
	"github.com/Biochemical-Networks/actinringsmc/internal/ring/sinks"
	"github.com/Biochemical-Networks/actinringsmc/pkg/client"
)

// runConfig is the on-disk shape fed to this binary: SystemParams plus
// the run-level knobs of SimParams that a single MC run actually needs.
type runConfig struct {
	Ks    float64 `json:"ks"`
	Kd    float64 `json:"kd"`
	T     float64 `json:"T"`
	Delta float64 `json:"delta"`
	Xc    float64 `json:"Xc"`
	EI    float64 `json:"EI"`
	Lf    float64 `json:"Lf"`

	SitesPerFilament int `json:"lf"`
	NumFilaments     int `json:"Nfil"`
	NumScaffolds     int `json:"Nsca"`

	MinHeight int `json:"min_height"`
	MaxHeight int `json:"max_height"`

	RadiusMoveFreq float64 `json:"radius_move_freq"`
	MaxBiasDiff    float64 `json:"max_bias_diff"`
	Mult           float64 `json:"mult"`

	Overlap     int `json:"overlap"`
	StartHeight int `json:"start_height"`

	Steps         int `json:"steps"`
	WriteInterval int `json:"write_interval"`
}

func loadRunConfig(path string) (runConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return runConfig{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg runConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return runConfig{}, fmt.Errorf("parsing config JSON: %w", err)
	}
	if cfg.Mult == 0 {
		cfg.Mult = 1
	}
	return cfg, nil
}

func main() {
	var (
		configFile = flag.String("config", "", "path to run configuration JSON file (required)")
		filebase   = flag.String("filebase", "run", "output file base name (writes <filebase>.ops and <filebase>.vtf)")
		seed       = flag.Int64("seed", 1, "RNG seed")
		logLevel   = flag.String("log-level", "info", "log level: debug, info, warn, error")
		monitorURL = flag.String("monitor-url", "", "if set, POST each write_interval's order parameters to this actinrings-monitor server")
	)
	flag.Parse()

	if *configFile == "" {
		fmt.Fprintln(os.Stderr, "error: --config is required")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := loadRunConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}

	params := ring.SystemParams{
		Ks: cfg.Ks, Kd: cfg.Kd, T: cfg.T, Delta: cfg.Delta, Xc: cfg.Xc, EI: cfg.EI, Lf: cfg.Lf,
		SitesPerFilament: cfg.SitesPerFilament, NumFilaments: cfg.NumFilaments, NumScaffolds: cfg.NumScaffolds,
		MinHeight: cfg.MinHeight, MaxHeight: cfg.MaxHeight,
		RadiusMoveFreq: cfg.RadiusMoveFreq, MaxBiasDiff: cfg.MaxBiasDiff, Mult: cfg.Mult,
	}

	system, err := ring.NewSystemWithStartup(params, cfg.Overlap, cfg.StartHeight)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error building startup configuration: %v\n", err)
		os.Exit(1)
	}

	ops, err := sinks.NewOpsFile(*filebase + ".ops")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening ops sink: %v\n", err)
		os.Exit(1)
	}
	vtf, err := sinks.NewVTFFile(*filebase + ".vtf")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening vtf sink: %v\n", err)
		os.Exit(1)
	}

	sim := ring.SimParams{
		Steps:         cfg.Steps,
		WriteInterval: cfg.WriteInterval,
		FileBase:      *filebase,
	}

	logger := cli.NewLogger(*logLevel)

	if *monitorURL != "" {
		mon := client.New(*monitorURL)
		sim.Publish = func(rec ring.OpsRecord) {
			frame := client.Frame{FileBase: *filebase, Record: rec}
			if err := mon.Publish(context.Background(), frame); err != nil {
				logger.Warnf("publishing frame to monitor: %v", err)
			}
		}
	}

	rng := rand.New(rand.NewSource(*seed))
	if err := ring.Run(system, nil, sim, rng, ops, vtf, logger); err != nil {
		fmt.Fprintf(os.Stderr, "error during run: %v\n", err)
		os.Exit(1)
	}
	if err := ops.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "error closing ops sink: %v\n", err)
		os.Exit(1)
	}
	if err := vtf.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "error closing vtf sink: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("run finished (filebase=%s, steps=%d): height=%d radius=%g energy=%g\n",
		*filebase, cfg.Steps, system.Lattice.Height(), system.Lattice.Radius(), system.Energy)
}
