// Command wren-perft runs the move-generator correctness fixtures (§8)
// against the engine and reports pass/fail per position.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"gopkg.in/yaml.v3"

	"wren/engine"
)

type fixture struct {
	Name  string `yaml:"name"`
	FEN   string `yaml:"fen"`
	Depth int    `yaml:"depth"`
	Nodes uint64 `yaml:"nodes"`
}

func loadFixtures(path string) ([]fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fixtures []fixture
	if err := yaml.Unmarshal(data, &fixtures); err != nil {
		return nil, err
	}
	return fixtures, nil
}

func main() {
	path := flag.String("fixtures", "testdata/perft.yaml", "path to the perft fixture YAML file")
	flag.Parse()

	fixtures, err := loadFixtures(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "wren-perft:", err)
		os.Exit(1)
	}

	bar := progressbar.Default(int64(len(fixtures)))
	failures := 0

	for _, f := range fixtures {
		board, err := engine.ParseFEN(f.FEN)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: bad fen: %v\n", f.Name, err)
			failures++
			bar.Add(1)
			continue
		}

		got := engine.Perft(board, f.Depth)
		if got != f.Nodes {
			fmt.Printf("FAIL %-24s depth %d: want %d, got %d\n", f.Name, f.Depth, f.Nodes, got)
			failures++
		} else {
			fmt.Printf("ok   %-24s depth %d: %d nodes\n", f.Name, f.Depth, got)
		}
		bar.Add(1)
	}

	if failures > 0 {
		fmt.Printf("\n%d of %d fixtures failed\n", failures, len(fixtures))
		os.Exit(1)
	}
	fmt.Printf("\nall %d fixtures passed\n", len(fixtures))
}
