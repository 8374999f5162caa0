package main

import (
	"context"
	"log"
	"os"
	"runtime/pprof"

	"github.com/urfave/cli/v3"
)

const (
	cpuProfileKey = "cpuprofile"
	metricsKey    = "metrics"
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark",
		Usage: "Benchmark and inspect the reactivity engine",
		Commands: []*cli.Command{
			propagateCommand(),
			layersCommand(),
			dotCommand(),
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// commonFlags are shared by the benchmark subcommands.
func commonFlags(flags ...cli.Flag) []cli.Flag {
	return append([]cli.Flag{
		&cli.StringFlag{
			Name:  cpuProfileKey,
			Usage: "Write a CPU profile to this file (use default.pgo for PGO builds)",
		},
		&cli.BoolFlag{
			Name:  metricsKey,
			Usage: "Collect engine metrics and print a summary after the run",
		},
	}, flags...)
}

// profiled wraps action with CPU profiling when --cpuprofile is set.
func profiled(action func(ctx context.Context, cmd *cli.Command) error) func(ctx context.Context, cmd *cli.Command) error {
	return func(ctx context.Context, cmd *cli.Command) error {
		path := cmd.String(cpuProfileKey)
		if path == "" {
			return action(ctx, cmd)
		}

		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()

		return action(ctx, cmd)
	}
}
