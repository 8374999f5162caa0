package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/delaneyj/signalgraph/reactivity"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

const (
	maxWidthKey  = "max-width"
	maxHeightKey = "max-height"
	itersKey     = "iters"
)

func propagateCommand() *cli.Command {
	return &cli.Command{
		Name:  "propagate",
		Usage: "Time a write propagating through w chains of h computeds",
		Flags: commonFlags(
			&cli.UintFlag{
				Name:  maxWidthKey,
				Usage: "Largest number of chains; sizes step by powers of ten",
				Value: 1_000,
			},
			&cli.UintFlag{
				Name:  maxHeightKey,
				Usage: "Longest chain; sizes step by powers of ten",
				Value: 1_000,
			},
			&cli.UintFlag{
				Name:  itersKey,
				Usage: "Writes timed per graph",
				Value: 100,
			},
		),
		Action: profiled(propagate),
	}
}

// steps returns 1, 10, 100... up to and including max.
func steps(max int) []int {
	var out []int
	for n := 1; n <= max; n *= 10 {
		out = append(out, n)
	}
	return out
}

func addOne(oldValue int) int {
	return oldValue + 1
}

// propagationGraph is w chains of h computeds over one source, each chain
// observed by an effect.
type propagationGraph struct {
	rs      *reactivity.System
	src     *reactivity.SignalRef[int]
	effects []*reactivity.ReactiveEffect
}

func buildPropagationGraph(rs *reactivity.System, w, h int) (*propagationGraph, error) {
	g := &propagationGraph{
		rs:  rs,
		src: reactivity.Signal(rs, 1),
	}
	for i := 0; i < w; i++ {
		last := func() int { return g.src.Value() }
		for j := 0; j < h; j++ {
			prev := last
			c := reactivity.Computed(rs, func(oldValue int) int {
				return addOne(prev())
			})
			last = c.Value
		}

		e, err := reactivity.Effect(rs, func() error {
			last()
			return nil
		})
		if err != nil {
			return nil, err
		}
		g.effects = append(g.effects, e)
	}
	return g, nil
}

func (g *propagationGraph) stop() {
	for _, e := range g.effects {
		e.Stop()
	}
}

func propagate(ctx context.Context, cmd *cli.Command) error {
	iters := int(cmd.Uint(itersKey))
	ww := steps(int(cmd.Uint(maxWidthKey)))
	hh := steps(int(cmd.Uint(maxHeightKey)))
	m := newEngineMetrics(cmd)

	log.Printf("warming up")

	tbl := table.NewWriter()
	tbl.SetTitle("Propagation")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	for _, w := range ww {
		for _, h := range hh {
			if err := ctx.Err(); err != nil {
				return err
			}
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			g, err := buildPropagationGraph(m.newSystem(), w, h)
			if err != nil {
				return fmt.Errorf("building %d * %d: %w", w, h, err)
			}
			for i := 0; i < iters; i++ {
				start := time.Now()
				if err := g.src.Set(g.src.Peek() + 1); err != nil {
					return err
				}
				tach.AddTime(time.Since(start))
			}
			g.stop()

			calc := tach.Calc()
			tbl.AppendRows([]table.Row{
				{
					fmt.Sprintf("propagate: %d * %d", w, h),
					calc.Time.Avg,
					calc.Time.Min,
					calc.Time.P75,
					calc.Time.P99,
					calc.Time.Max,
				},
			})
		}
	}

	tbl.Render()
	return m.render("Engine metrics")
}
