// Command actinrings-us runs an umbrella-sampling refinement of the
// bias table against ring height, writing per-iteration order
// parameters/trajectories plus the counts/freqs/biases/parms sinks.
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
	BinWidth      int `json:"binwidth"`

	AnalyticalBiases bool   `json:"analytical_biases"`
	BiasFile         string `json:"bias_file"`
	RestartIter      int    `json:"restart_iter"`

	StartIter int `json:"start_iter"`
	EndIter   int `json:"end_iter"`
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
	if cfg.EndIter == 0 {
		cfg.EndIter = cfg.StartIter
	}
	return cfg, nil
}

func main() {
	var (
		configFile = flag.String("config", "", "path to run configuration JSON file (required)")
		filebase   = flag.String("filebase", "us", "output file base name")
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

	sim := ring.SimParams{
		Steps:            cfg.Steps,
		WriteInterval:    cfg.WriteInterval,
		FileBase:         *filebase,
		BinWidth:         cfg.BinWidth,
		AnalyticalBiases: cfg.AnalyticalBiases,
		RestartIter:      cfg.RestartIter,
		StartIter:        cfg.StartIter,
		EndIter:          cfg.EndIter,
		Iters:            cfg.EndIter - cfg.StartIter + 1,
	}

	countsSink, err := sinks.NewMatrixFile(*filebase + ".counts")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening counts sink: %v\n", err)
		os.Exit(1)
	}
	freqsSink, err := sinks.NewMatrixFile(*filebase + ".freqs")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening freqs sink: %v\n", err)
		os.Exit(1)
	}
	biasesSink, err := sinks.NewMatrixFile(*filebase + ".biases")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening biases sink: %v\n", err)
		os.Exit(1)
	}
	parmsSink := sinks.NewParmsFile(*filebase + ".parms")

	var biasReader ring.BiasReader
	if cfg.BiasFile != "" {
		biasReader = sinks.NewFileBiasReader(cfg.BiasFile)
	}

	opsFactory := func(iter int) (ring.OpsSink, error) {
		return sinks.NewOpsFile(fmt.Sprintf("%s_%d.ops", *filebase, iter))
	}
	vtfFactory := func(iter int) (ring.VTFSink, error) {
		return sinks.NewVTFFile(fmt.Sprintf("%s_%d.vtf", *filebase, iter))
	}

	logger := cli.NewLogger(*logLevel)

	var publish ring.IterPublishFunc
	if *monitorURL != "" {
		mon := client.New(*monitorURL)
		publish = func(iter int, rec ring.OpsRecord) {
			frame := client.Frame{FileBase: *filebase, Iter: iter, Record: rec}
			if err := mon.Publish(context.Background(), frame); err != nil {
				logger.Warnf("publishing frame to monitor: %v", err)
			}
		}
	}

	rng := rand.New(rand.NewSource(*seed))
	biases, err := ring.RunUS(system, sim, rng, logger, parmsSink, countsSink, freqsSink, biasesSink, biasReader, opsFactory, vtfFactory, publish)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error during US run: %v\n", err)
		os.Exit(1)
	}

	if err := countsSink.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "error closing counts sink: %v\n", err)
		os.Exit(1)
	}
	if err := freqsSink.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "error closing freqs sink: %v\n", err)
		os.Exit(1)
	}
	if err := biasesSink.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "error closing biases sink: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("US run finished (filebase=%s, iters=%d..%d): numbins=%d\n", *filebase, cfg.StartIter, cfg.EndIter, biases.NumBins)
}
