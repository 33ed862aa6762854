package ring

// OpsRecord is one row of the order-parameters sink (spec.md §6): step,
// total energy, lattice height, and ring radius at a write_interval
// boundary.
type OpsRecord struct {
	Step   int
	Energy float64
	Height int
	Radius float64
}

// PublishFunc receives the same OpsRecord Run just wrote to its ops
// sink, letting a caller mirror a run's trajectory to an external
// observer (see internal/ring/monitor) without Run depending on any
// particular transport.
type PublishFunc func(OpsRecord)

// SimParams is the run-level configuration layered on top of the
// physical SystemParams: step/iteration counts, bias seeding mode, and
// output naming. The .parms sink writes its Steps, WriteInterval,
// FileBase, Iters, AnalyticalBiases and BinWidth fields alongside
// SystemParams (spec.md §6); the remaining fields are not written there.
type SimParams struct {
	Steps         int
	WriteInterval int
	FileBase      string

	Overlap     int // startup uniform-overlap distance
	StartHeight int // initial lattice height

	BinWidth         int
	AnalyticalBiases bool
	RestartIter      int

	StartIter int
	EndIter   int
	Iters     int

	// Publish, if set, is called with every OpsRecord Run writes.
	Publish PublishFunc
}

// OpsSink is the order-parameters (.ops) adapter: one header line, then
// one record per write_interval.
type OpsSink interface {
	WriteHeader() error
	WriteRecord(OpsRecord) error
	Close() error
}

// VTFSink is the trajectory (.vtf) adapter: topology once on open, one
// frame per write_interval.
type VTFSink interface {
	WriteTopology(*System) error
	WriteFrame(*System) error
	Close() error
}

// USMatrixSink is the shared shape of the .counts/.freqs/.biases
// adapters: a header of integer heights, then one row of per-bin values
// per US iteration.
type USMatrixSink interface {
	WriteHeader(heights []int) error
	WriteRow(values []float64) error
	Close() error
}

// ParmsSink is the .parms adapter: a single JSON object of run
// parameters, emitted once.
type ParmsSink interface {
	WriteParms(SystemParams, SimParams) error
}

// BiasReader is the bias-restart-file adapter: given the restart
// iteration row, return that row's bias energies.
type BiasReader interface {
	ReadEnes(restartIter int) ([]float64, error)
}

// OpsSinkFactory and VTFSinkFactory open a fresh per-iteration sink for
// the US driver, which opens and closes its ops/vtf sinks once per
// iteration (spec.md §4.8).
type OpsSinkFactory func(iter int) (OpsSink, error)
type VTFSinkFactory func(iter int) (VTFSink, error)
