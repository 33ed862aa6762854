package main

// preset is a named, ready-to-run bundle of physical and run-level
// parameters for a common ring size, written out as the JSON document
// actinrings-mc/actinrings-us expect via --config.
type preset struct {
	Name string
	Doc  map[string]any
}

// presets mirrors the scenario sizes spec.md's scenario list exercises:
// a small lattice cheap enough for brute-force cross-checks, a
// reference-sized ring matching the analytical-seeding worked example,
// and a large ring for throughput testing.
//
// min_height/start_height must be large enough that BuildStartupConfiguration's
// scaffold columns (x=0 and x=1) actually wind around the period at
// startup, or every connectivity-checked move rejects immediately and the
// sampler never advances. For Nsca/2 filaments stacked per column with
// step = lf-2*overlap, the column's own reach is
// L = (Nsca/2-1)*step + lf; min_height must be at least L-1.
var presets = []preset{
	{
		Name: "small",
		Doc: map[string]any{
			"ks": 1e-6, "kd": 1e-6, "T": 300.0, "delta": 5.4e-9, "Xc": 1e-6,
			"EI": 6.9e-26, "Lf": 1e-6,
			"lf": 4, "Nfil": 4, "Nsca": 2,
			"min_height": 3, "max_height": 20,
			"radius_move_freq": 0.2, "max_bias_diff": 1.0, "mult": 1.0,
			"overlap": 2, "start_height": 3,
			"steps": 10000, "write_interval": 100, "binwidth": 1,
		},
	},
	{
		Name: "reference",
		Doc: map[string]any{
			"ks": 1e-6, "kd": 1e-6, "T": 300.0, "delta": 5.4e-9, "Xc": 1e-6,
			"EI": 6.9e-26, "Lf": 1e-6,
			"lf": 10, "Nfil": 2, "Nsca": 2,
			"min_height": 9, "max_height": 60,
			"radius_move_freq": 0.2, "max_bias_diff": 1.0, "mult": 1.0,
			"overlap": 4, "start_height": 9,
			"steps": 1000000, "write_interval": 1000, "binwidth": 2,
		},
	},
	{
		Name: "large",
		Doc: map[string]any{
			"ks": 1e-6, "kd": 1e-6, "T": 300.0, "delta": 5.4e-9, "Xc": 1e-6,
			"EI": 6.9e-26, "Lf": 1e-6,
			"lf": 20, "Nfil": 40, "Nsca": 20,
			"min_height": 55, "max_height": 400,
			"radius_move_freq": 0.1, "max_bias_diff": 1.0, "mult": 1.0,
			"overlap": 8, "start_height": 55,
			"steps": 5000000, "write_interval": 5000, "binwidth": 4,
		},
	},
}

func findPreset(name string) (preset, bool) {
	for _, p := range presets {
		if p.Name == name {
			return p, true
		}
	}
	return preset{}, false
}
