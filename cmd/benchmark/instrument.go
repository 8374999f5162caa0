package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/delaneyj/signalgraph/pkg/metrics"
	"github.com/delaneyj/signalgraph/reactivity"
	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"
)

// engineMetrics collects metrics for every System built during one run.
// A nil *engineMetrics builds uninstrumented Systems.
type engineMetrics struct {
	reg *prometheus.Registry
	in  *metrics.Instrument
}

func newEngineMetrics(cmd *cli.Command) *engineMetrics {
	if !cmd.Bool(metricsKey) {
		return nil
	}
	reg := prometheus.NewRegistry()
	return &engineMetrics{
		reg: reg,
		in:  metrics.New(metrics.WithRegistry(reg)),
	}
}

func (m *engineMetrics) newSystem() *reactivity.System {
	if m == nil {
		return reactivity.New()
	}
	return reactivity.New(reactivity.WithInstrument(m.in))
}

func (m *engineMetrics) render(title string) error {
	if m == nil {
		return nil
	}
	families, err := m.reg.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}

	tbl := table.NewWriter()
	tbl.SetTitle(title)
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"metric", "labels", "value"})
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			labels := make([]string, 0, len(metric.GetLabel()))
			for _, lp := range metric.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			var value string
			switch {
			case metric.GetCounter() != nil:
				value = humanize.Comma(int64(metric.GetCounter().GetValue()))
			case metric.GetHistogram() != nil:
				h := metric.GetHistogram()
				value = humanize.Comma(int64(h.GetSampleCount())) + " samples"
				if strings.HasSuffix(mf.GetName(), "_seconds") && h.GetSampleCount() > 0 {
					value += fmt.Sprintf(", avg %s", humanizeSeconds(h.GetSampleSum()/float64(h.GetSampleCount())))
				}
			default:
				continue
			}
			tbl.AppendRow(table.Row{mf.GetName(), strings.Join(labels, ","), value})
		}
	}
	tbl.Render()
	return nil
}

func humanizeSeconds(s float64) string {
	v, unit := humanize.ComputeSI(s)
	return fmt.Sprintf("%.2f%ss", v, unit)
}
