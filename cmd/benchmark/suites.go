package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// suite describes one layered graph benchmark.
type suite struct {
	Name           string  `yaml:"name"`           // friendly name for the test, should be unique
	Width          int     `yaml:"width"`          // width of dependency graph to construct
	TotalLayers    int     `yaml:"totalLayers"`    // depth of dependency graph to construct
	StaticFraction float64 `yaml:"staticFraction"` // fraction of nodes that are static
	NSources       int     `yaml:"nSources"`       // number of sources read by each node
	ReadFraction   float64 `yaml:"readFraction"`   // fraction of leaves read each iteration
	Iterations     int64   `yaml:"iterations"`     // number of test iterations
	ExpectedSum    float64 `yaml:"expectedSum"`    // sum of all leaves after the run, zero to skip
	ExpectedCount  int64   `yaml:"expectedCount"`  // computed evaluations during the run, zero to skip
}

type suiteFile struct {
	Suites []suite `yaml:"suites"`
}

var defaultSuites = []suite{
	{
		Name:           "simple component",
		Width:          10,
		StaticFraction: 1,
		NSources:       2,
		TotalLayers:    5,
		ReadFraction:   0.2,
		Iterations:     600000,
		ExpectedSum:    19199968,
		ExpectedCount:  3480000,
	},
	{
		Name:           "dynamic component",
		Width:          10,
		TotalLayers:    10,
		StaticFraction: 0.75,
		NSources:       6,
		ReadFraction:   0.2,
		Iterations:     15000,
		ExpectedSum:    302310782860,
		ExpectedCount:  1155000,
	},
	{
		Name:           "large web app",
		Width:          1000,
		TotalLayers:    12,
		StaticFraction: 0.95,
		NSources:       4,
		ReadFraction:   1,
		Iterations:     7000,
		ExpectedSum:    29355933696000,
		ExpectedCount:  1463000,
	},
	{
		Name:           "wide dense",
		Width:          1000,
		TotalLayers:    5,
		StaticFraction: 1,
		NSources:       25,
		ReadFraction:   1,
		Iterations:     3000,
		ExpectedSum:    1171484375000,
		ExpectedCount:  732000,
	},
	{
		Name:           "deep",
		Width:          5,
		TotalLayers:    500,
		StaticFraction: 1,
		NSources:       3,
		ReadFraction:   1,
		Iterations:     500,
		ExpectedSum:    3.0239642676898464e241,
		ExpectedCount:  1246500,
	},
	{
		Name:           "very dynamic",
		Width:          100,
		TotalLayers:    15,
		StaticFraction: 0.5,
		NSources:       6,
		ReadFraction:   1,
		Iterations:     2000,
		ExpectedSum:    15664996402790400,
		ExpectedCount:  1078000,
	},
}

func loadSuites(path string) ([]suite, error) {
	if path == "" {
		return defaultSuites, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseSuites(b)
}

func parseSuites(b []byte) ([]suite, error) {
	var f suiteFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parsing suites: %w", err)
	}
	if len(f.Suites) == 0 {
		return nil, fmt.Errorf("parsing suites: no suites defined")
	}
	for i, s := range f.Suites {
		if err := s.validate(); err != nil {
			return nil, fmt.Errorf("suite %d (%q): %w", i, s.Name, err)
		}
	}
	return f.Suites, nil
}

func (s suite) validate() error {
	switch {
	case s.Width < 1:
		return fmt.Errorf("width must be positive")
	case s.TotalLayers < 2:
		return fmt.Errorf("totalLayers must be at least 2")
	case s.NSources < 1:
		return fmt.Errorf("nSources must be positive")
	case s.Iterations < 1:
		return fmt.Errorf("iterations must be positive")
	case s.ReadFraction < 0 || s.ReadFraction > 1:
		return fmt.Errorf("readFraction must be within [0, 1]")
	case s.StaticFraction < 0 || s.StaticFraction > 1:
		return fmt.Errorf("staticFraction must be within [0, 1]")
	}
	return nil
}

func (s suite) title() string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("%dx%d %d sources", s.Width, s.TotalLayers, s.NSources))
	if s.StaticFraction < 1 {
		sb.WriteString(" dynamic")
	}
	if s.ReadFraction < 1 {
		sb.WriteString(fmt.Sprintf(" read %0.2f%%", 100*s.ReadFraction))
	}
	return sb.String()
}
