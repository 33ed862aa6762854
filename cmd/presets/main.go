// Command presets writes one of the named scenario configurations
// (small, reference, large) to a file, ready to pass as --config to
// actinrings-mc or actinrings-us.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
)

func main() {
	var (
		name = flag.String("name", "", "preset name (small, reference, large)")
		out  = flag.String("out", "", "output file path (defaults to <name>.json)")
	)
	flag.Parse()

	if *name == "" {
		names := make([]string, len(presets))
		for i, p := range presets {
			names[i] = p.Name
		}
		sort.Strings(names)
		fmt.Fprintf(os.Stderr, "error: --name is required (available: %v)\n", names)
		os.Exit(1)
	}

	p, ok := findPreset(*name)
	if !ok {
		fmt.Fprintf(os.Stderr, "error: unknown preset %q\n", *name)
		os.Exit(1)
	}

	path := *out
	if path == "" {
		path = p.Name + ".json"
	}

	data, err := json.MarshalIndent(p.Doc, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error encoding preset: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error writing %s: %v\n", path, err)
		os.Exit(1)
	}

	fmt.Printf("wrote preset %q to %s\n", p.Name, path)
}
