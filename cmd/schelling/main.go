// Command schelling runs a Schelling segregation model on a Moore torus
// grid. It exists to exercise the engine end to end: seeded construction,
// neighborhood queries, the empties index, weighted relocation, property
// layers, and per-step observation.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/talgya/cellspace/internal/agents"
	"github.com/talgya/cellspace/internal/layers"
	"github.com/talgya/cellspace/internal/observe"
	"github.com/talgya/cellspace/internal/sim"
	"github.com/talgya/cellspace/internal/space"
)

type resident struct {
	agents.Base
	kind  int
	model *schelling
}

// Step counts same-kind neighbors within the model radius. A content
// resident stays; an unhappy one relocates to an empty cell, preferring
// high-desirability ground.
func (r *resident) Step() {
	hood, err := r.Cell().Neighborhood(r.model.radius)
	if err != nil {
		panic(err) // radius is validated at startup
	}

	similar := 0
	for _, a := range hood.Agents() {
		if a.(*resident).kind == r.kind {
			similar++
		}
	}
	if similar >= r.model.homophily {
		r.model.happy++
		return
	}

	if err := r.relocate(); err != nil && !errors.Is(err, space.ErrEmptyCollection) {
		slog.Warn("relocation failed", "agent", r.AgentID(), "error", err)
	}
}

func (r *resident) relocate() error {
	open, err := r.model.grid.Cells().Select(func(c *space.Cell) bool {
		return c.Empty()
	}, space.NoLimit)
	if err != nil {
		return err
	}
	cells := open.Cells()
	weights := make([]float64, len(cells))
	for i, c := range cells {
		// Desirability shifts where the displaced settle, not whether
		// they are happy; a flat floor keeps every empty cell reachable.
		v, _ := layers.Value(c, "desirability")
		weights[i] = 0.1 + v
	}
	dst, err := open.Choices(1, weights, nil)
	if err != nil {
		return err
	}
	return r.MoveTo(dst[0])
}

type schelling struct {
	*sim.Model
	grid      *space.Grid
	radius    int
	homophily int
	happy     int
	residents int
}

func newSchelling(width, height int, density, minority float64, homophily, radius int, seed int64) (*schelling, error) {
	m := &schelling{
		Model:     sim.NewModel(seed),
		radius:    radius,
		homophily: homophily,
	}

	cfg := space.DefaultGridConfig()
	cfg.Rand = m.Random()
	grid, err := space.NewOrthogonalMooreGrid(width, height, cfg)
	if err != nil {
		return nil, err
	}
	m.grid = grid

	if err := layers.Generate(grid.Space, "desirability", layers.Config{
		Seed:        m.Random().Int63(),
		Octaves:     4,
		Frequency:   0.08,
		Persistence: 0.5,
	}); err != nil {
		return nil, err
	}

	for _, cell := range grid.Cells().Cells() {
		if m.Random().Float64() >= density {
			continue
		}
		kind := 0
		if m.Random().Float64() < minority {
			kind = 1
		}
		r := &resident{kind: kind, model: m}
		r.Init(r, m.NextID(), grid.Space)
		if err := r.MoveTo(cell); err != nil {
			return nil, err
		}
		m.Add(r)
		m.residents++
	}
	return m, nil
}

// step runs one full pass: reset the happiness counter, activate every
// resident in a fresh random order.
func (m *schelling) step() {
	m.happy = 0
	m.StepRandom()
}

func main() {
	var (
		width     = flag.Int("width", 50, "grid width")
		height    = flag.Int("height", 50, "grid height")
		density   = flag.Float64("density", 0.8, "fraction of cells initially occupied")
		minority  = flag.Float64("minority", 0.35, "fraction of residents in the minority kind")
		homophily = flag.Int("homophily", 3, "same-kind neighbors needed to be content")
		radius    = flag.Int("radius", 1, "neighborhood radius")
		steps     = flag.Int("steps", 100, "number of steps to run")
		seed      = flag.Int64("seed", 42, "random seed (0 = derive from clock)")
		dbPath    = flag.String("db", "", "optional SQLite file for per-step metrics")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if *radius < 1 {
		slog.Error("radius must be at least 1", "radius", *radius)
		os.Exit(1)
	}

	var sink *observe.Sink
	if *dbPath != "" {
		var err error
		sink, err = observe.OpenSink(*dbPath, *seed)
		if err != nil {
			slog.Error("failed to open metrics sink", "error", err)
			os.Exit(1)
		}
		defer sink.Close()
		slog.Info("metrics sink opened", "path", *dbPath, "run", sink.RunID())
	}

	model, err := newSchelling(*width, *height, *density, *minority, *homophily, *radius, *seed)
	if err != nil {
		slog.Error("failed to build model", "error", err)
		os.Exit(1)
	}

	slog.Info("schelling model ready",
		"cells", humanize.Comma(int64(model.grid.Len())),
		"residents", humanize.Comma(int64(model.residents)),
		"empty", humanize.Comma(int64(model.grid.EmptyCount())),
		"seed", model.Random().Seed(),
	)

	collector := observe.NewCollector(sink)
	collector.Track("happy", func() float64 { return float64(model.happy) })
	collector.Track("happy_fraction", func() float64 {
		if model.residents == 0 {
			return 0
		}
		return float64(model.happy) / float64(model.residents)
	})
	collector.Track("empty_cells", func() float64 { return float64(model.grid.EmptyCount()) })

	for i := 1; i <= *steps; i++ {
		model.step()
		if err := collector.Collect(i); err != nil {
			slog.Error("failed to record step", "step", i, "error", err)
			os.Exit(1)
		}
		if i%10 == 0 || model.happy == model.residents {
			slog.Info("step", "n", i,
				"happy", model.happy,
				"of", model.residents,
			)
		}
		if model.happy == model.residents {
			slog.Info("all residents content, stopping early", "step", i)
			break
		}
	}

	last, _ := collector.Last()
	fmt.Printf("final: %s of %s residents happy (%.1f%%) after %d steps\n",
		humanize.Comma(int64(last.Values["happy"])),
		humanize.Comma(int64(model.residents)),
		100*last.Values["happy_fraction"],
		model.Steps(),
	)
}
