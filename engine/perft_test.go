package engine

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type perftFixture struct {
	Name  string `yaml:"name"`
	FEN   string `yaml:"fen"`
	Depth int    `yaml:"depth"`
	Nodes uint64 `yaml:"nodes"`
}

func loadPerftFixtures(t *testing.T) []perftFixture {
	t.Helper()
	data, err := os.ReadFile("../testdata/perft.yaml")
	require.NoError(t, err)
	var fixtures []perftFixture
	require.NoError(t, yaml.Unmarshal(data, &fixtures))
	return fixtures
}

func TestPerftFixtures(t *testing.T) {
	for _, f := range loadPerftFixtures(t) {
		f := f
		if testing.Short() && f.Depth >= 4 {
			continue
		}
		t.Run(f.Name, func(t *testing.T) {
			b, err := ParseFEN(f.FEN)
			require.NoError(t, err)
			require.Equal(t, f.Nodes, Perft(b, f.Depth))
		})
	}
}
