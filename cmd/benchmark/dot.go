package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/delaneyj/signalgraph/pkg/inspect"
	"github.com/delaneyj/signalgraph/reactivity"
	"github.com/urfave/cli/v3"
)

const (
	widthKey  = "width"
	heightKey = "height"
	outKey    = "out"
)

func dotCommand() *cli.Command {
	return &cli.Command{
		Name:  "dot",
		Usage: "Print a propagation graph as Graphviz DOT",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  widthKey,
				Usage: "Number of chains",
				Value: 2,
			},
			&cli.UintFlag{
				Name:  heightKey,
				Usage: "Computeds per chain",
				Value: 3,
			},
			&cli.StringFlag{
				Name:  outKey,
				Usage: "Output file; stdout when empty",
			},
		},
		Action: printDot,
	}
}

func printDot(ctx context.Context, cmd *cli.Command) error {
	var w io.Writer = os.Stdout
	if path := cmd.String(outKey); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return writeDot(w, int(cmd.Uint(widthKey)), int(cmd.Uint(heightKey)))
}

// writeDot builds a named propagation graph, writes once so link versions
// are non-trivial, and renders it.
func writeDot(w io.Writer, width, height int) error {
	rs := reactivity.New()
	src := reactivity.Signal(rs, 1)
	src.SetName("src")

	for i := 0; i < width; i++ {
		last := func() int { return src.Value() }
		for j := 0; j < height; j++ {
			prev := last
			c := reactivity.Computed(rs, func(oldValue int) int {
				return addOne(prev())
			}, reactivity.ComputedName[int](fmt.Sprintf("c%d.%d", i, j)))
			last = c.Value
		}
		if _, err := reactivity.Effect(rs, func() error {
			last()
			return nil
		}, reactivity.EffectName(fmt.Sprintf("effect%d", i))); err != nil {
			return err
		}
	}
	if err := src.Set(2); err != nil {
		return err
	}

	g, err := inspect.Snapshot(src)
	if err != nil {
		return err
	}
	g.WriteDOT(w, "propagate")
	return nil
}
