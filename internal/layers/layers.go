// Package layers generates named scalar property layers over a cell space
// using layered simplex noise. A layer writes one float64 per cell into the
// cell's Properties bag; the engine never interprets the values, models and
// renderers do.
package layers

import (
	"fmt"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/cellspace/internal/space"
)

// Config holds noise generation parameters for one layer.
type Config struct {
	Seed        int64   // Random seed (0 = derive one)
	Octaves     int     // Number of noise layers
	Frequency   float64 // Base sampling frequency
	Persistence float64 // Amplitude falloff per octave
}

// DefaultConfig returns parameters that give smooth, natural-looking fields
// on grids of a few thousand cells.
func DefaultConfig() Config {
	return Config{
		Octaves:     4,
		Frequency:   0.08,
		Persistence: 0.5,
	}
}

// Generate writes a noise layer named name into every cell of the space,
// sampling at the cell's coordinate. Values are normalized to [0, 1].
// Generation is deterministic for a fixed non-zero seed.
func Generate(sp *space.Space, name string, cfg Config) error {
	if name == "" {
		return fmt.Errorf("%w: empty layer name", space.ErrInvalidArgument)
	}
	if cfg.Octaves < 1 {
		return fmt.Errorf("%w: octaves %d, need >= 1", space.ErrInvalidArgument, cfg.Octaves)
	}
	if cfg.Frequency <= 0 {
		return fmt.Errorf("%w: frequency %v, need > 0", space.ErrInvalidArgument, cfg.Frequency)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	noise := opensimplex.NewNormalized(seed)

	for _, cell := range sp.Cells().Cells() {
		coord := cell.Coordinate()
		x, y := float64(coord[1]), float64(coord[0])
		cell.Properties[name] = octaveNoise(noise, x, y, cfg.Octaves, cfg.Frequency, cfg.Persistence)
	}
	return nil
}

// Value reads a layer value back from a cell.
func Value(cell *space.Cell, name string) (float64, bool) {
	v, ok := cell.Properties[name].(float64)
	return v, ok
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0
	freq := frequency
	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*freq, y*freq) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		freq *= 2
	}
	return total / maxVal
}
