package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/delaneyj/signalgraph/reactivity"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

const (
	configKey  = "config"
	repeatsKey = "repeats"
	observeKey = "observe"
)

func layersCommand() *cli.Command {
	return &cli.Command{
		Name:  "layers",
		Usage: "Run the layered dynamic graph suites",
		Flags: commonFlags(
			&cli.StringFlag{
				Name:  configKey,
				Usage: "YAML file with a list of suites; the built-in suites run when empty",
			},
			&cli.UintFlag{
				Name:  repeatsKey,
				Usage: "Timed repetitions per suite; the best one is reported",
				Value: 5,
			},
			&cli.BoolFlag{
				Name:  observeKey,
				Usage: "Subscribe an effect to every read leaf instead of pulling leaves",
			},
		),
		Action: profiled(runLayers),
	}
}

type layerResult struct {
	sum      int
	count    int64
	duration time.Duration
}

func runLayers(ctx context.Context, cmd *cli.Command) error {
	suites, err := loadSuites(cmd.String(configKey))
	if err != nil {
		return err
	}
	repeats := int(cmd.Uint(repeatsKey))
	observe := cmd.Bool(observeKey)
	m := newEngineMetrics(cmd)

	log.Print("Starting layers benchmark, please wait...")
	defer log.Print("Finished layers benchmark")

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{
		"size", "nSources", "read%", "static%",
		"nTimes", "test", "time", "updateRate", "title",
	})

	for _, s := range suites {
		if err := ctx.Err(); err != nil {
			return err
		}
		log.Printf("Running '%s' config", s.Name)

		runOnce := func() (int, int64, error) {
			counter := new(int64)
			graph, err := makeLayeredGraph(m.newSystem(), s, counter, observe)
			if err != nil {
				return 0, 0, err
			}
			defer graph.stop()
			*counter = 0
			sum, err := graph.run(s.Iterations)
			return sum, *counter, err
		}

		// run once to warm up
		if _, _, err := runOnce(); err != nil {
			return fmt.Errorf("%s: %w", s.Name, err)
		}

		best := &layerResult{duration: time.Hour}
		for i := 0; i < repeats; i++ {
			log.Printf("Running '%s' config, iteration %d/%d %d%%", s.Name, i+1, repeats, (i+1)*100/repeats)
			start := time.Now()
			sum, count, err := runOnce()
			if err != nil {
				return fmt.Errorf("%s: %w", s.Name, err)
			}
			duration := time.Since(start)
			if duration < best.duration {
				best = &layerResult{sum: sum, count: count, duration: duration}
			}
		}

		if s.ExpectedSum != 0 && float64(best.sum) != s.ExpectedSum {
			log.Printf("'%s' sum %d, expected %g", s.Name, best.sum, s.ExpectedSum)
		}
		if s.ExpectedCount != 0 && best.count != s.ExpectedCount {
			log.Printf("'%s' count %d, expected %d", s.Name, best.count, s.ExpectedCount)
		}

		updateRate := float64(best.count) / (float64(best.duration) / float64(time.Millisecond))

		table.Append([]string{
			fmt.Sprintf("%dx%d", s.Width, s.TotalLayers), // size
			fmt.Sprint(s.NSources),                       // nSources
			fmt.Sprint(s.ReadFraction),                   // read%
			fmt.Sprint(s.StaticFraction),                 // static%
			humanize.Comma(s.Iterations),                 // nTimes
			s.Name,                                       // test
			fmt.Sprint(best.duration),                    // time
			humanize.Comma(int64(updateRate)),            // updateRate
			s.title(),                                    // title
		})
	}
	table.Render()
	return m.render("Engine metrics")
}

type reader func() int

// layeredGraph is a grid of computeds: every node of a layer sums nSources
// neighbours of the layer above. Dynamic nodes skip one of their sources
// depending on the value of the first.
type layeredGraph struct {
	rs        *reactivity.System
	sources   []*reactivity.SignalRef[int]
	leaves    []reader
	isDynamic [][]bool
	effects   []*reactivity.ReactiveEffect
}

func makeLayeredGraph(rs *reactivity.System, s suite, counter *int64, observe bool) (*layeredGraph, error) {
	g := &layeredGraph{rs: rs}
	prevRow := make([]reader, s.Width)
	for i := 0; i < s.Width; i++ {
		src := reactivity.Signal(rs, i)
		g.sources = append(g.sources, src)
		prevRow[i] = src.Value
	}

	random := rand.New(rand.NewSource(0))
	for l := 0; l < s.TotalLayers-1; l++ {
		row, isDynamic := makeLayer(rs, prevRow, s, counter, random)
		g.isDynamic = append(g.isDynamic, isDynamic)
		prevRow = row
	}

	skipCount := int(math.Round(float64(len(prevRow)) * (1 - s.ReadFraction)))
	g.leaves = removeElems(prevRow, skipCount, rand.New(rand.NewSource(0)))

	if observe {
		for _, leaf := range g.leaves {
			leaf := leaf
			e, err := reactivity.Effect(rs, func() error {
				leaf()
				return nil
			})
			if err != nil {
				g.stop()
				return nil, err
			}
			g.effects = append(g.effects, e)
		}
	}
	return g, nil
}

func makeLayer(rs *reactivity.System, sources []reader, s suite, counter *int64, random *rand.Rand) ([]reader, []bool) {
	row := make([]reader, len(sources))
	isDynamic := make([]bool, len(sources))

	for myDex := range sources {
		mySources := make([]reader, 0, s.NSources)
		for sourceDex := 0; sourceDex < s.NSources; sourceDex++ {
			mySources = append(mySources, sources[(myDex+sourceDex)%len(sources)])
		}

		if random.Float64() < s.StaticFraction {
			// static node, always reference sources
			row[myDex] = reactivity.Computed(rs, func(oldValue int) int {
				*counter++
				sum := 0
				for _, source := range mySources {
					sum += source()
				}
				return sum
			}).Value
			continue
		}

		first, tail := mySources[0], mySources[1:]
		row[myDex] = reactivity.Computed(rs, func(oldValue int) int {
			*counter++
			sum := first()
			if len(tail) == 0 {
				return sum
			}
			shouldDrop := sum&0x1 > 0
			dropDex := sum % len(tail)

			for i := 0; i < len(tail); i++ {
				if shouldDrop && i == dropDex {
					continue
				}
				sum += tail[i]()
			}
			return sum
		}).Value
		isDynamic[myDex] = true
	}
	return row, isDynamic
}

// run writes one source per iteration and reads the leaves, returning the
// sum of the leaves afterwards.
func (g *layeredGraph) run(iterations int64) (int, error) {
	for i := 0; i < int(iterations); i++ {
		err := g.rs.Batch(func() error {
			sourceDex := i % len(g.sources)
			return g.sources[sourceDex].Set(i + sourceDex)
		})
		if err != nil {
			return 0, err
		}

		for _, leaf := range g.leaves {
			leaf()
		}
	}

	sum := 0
	for _, leaf := range g.leaves {
		sum += leaf()
	}
	return sum, nil
}

func (g *layeredGraph) stop() {
	for _, e := range g.effects {
		e.Stop()
	}
	g.effects = nil
}

func removeElems[T any](src []T, rmCount int, random *rand.Rand) []T {
	out := make([]T, len(src))
	copy(out, src)
	for i := 0; i < rmCount && len(out) > 0; i++ {
		rmDex := random.Intn(len(out))
		out[rmDex] = out[len(out)-1]
		out = out[:len(out)-1]
	}
	return out
}
