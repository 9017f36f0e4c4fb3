// Package scenario holds named (distance, lanes) inputs for demonstration runs
// and renders their outcomes as plain text.
package scenario

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"lane-strategy-service/internal/domain"

	"gopkg.in/yaml.v3"
)

type Scenario struct {
	Name            string `yaml:"name"`
	DistanceKm      int    `yaml:"distance_km"`
	AvailableLanes  int    `yaml:"available_lanes"`
	ExactRemainders bool   `yaml:"exact_remainders"`
}

type file struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// Defaults are the reference examples.
func Defaults() []Scenario {
	return []Scenario{
		{Name: "Example 1", DistanceKm: 1000, AvailableLanes: 4},
		{Name: "Example 2", DistanceKm: 800, AvailableLanes: 8},
		{Name: "Example 3", DistanceKm: 1500, AvailableLanes: 6},
	}
}

// Load reads scenarios from a YAML file.
func Load(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scenarios: read %q: %w", path, err)
	}

	out, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load scenarios %q: %w", path, err)
	}
	return out, nil
}

// Parse decodes a YAML document of the form
//
//	scenarios:
//	  - name: short trip
//	    distance_km: 100
//	    available_lanes: 2
//
// Unnamed scenarios are named "Example N" by position.
func Parse(data []byte) ([]Scenario, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse scenarios: %w", err)
	}
	if len(f.Scenarios) == 0 {
		return nil, errors.New("parse scenarios: no scenarios defined")
	}

	for i := range f.Scenarios {
		f.Scenarios[i].Name = strings.TrimSpace(f.Scenarios[i].Name)
		if f.Scenarios[i].Name == "" {
			f.Scenarios[i].Name = fmt.Sprintf("Example %d", i+1)
		}
	}
	return f.Scenarios, nil
}

// Render writes a human readable summary of one scenario outcome.
func Render(w io.Writer, sc Scenario, strategy *domain.Strategy, err error) error {
	var b strings.Builder

	fmt.Fprintf(&b, "--- %s: D=%d km, L=%d ---\n", sc.Name, sc.DistanceKm, sc.AvailableLanes)
	if err != nil {
		fmt.Fprintf(&b, "Error: %v\n", err)
		_, werr := io.WriteString(w, b.String())
		return werr
	}

	fmt.Fprintf(&b, "Optimal Time: %d hours\n", strategy.OptimalTimeHours)
	fmt.Fprintf(&b, "Max People: %d\n", strategy.MaxPeople)
	for _, j := range strategy.Journeys {
		fmt.Fprintf(&b, "Journey %s: %s (lanes=%d, covered=%d km)\n",
			j.Label, strings.Join(j.Route.Labels(), " + "), j.LanesReserved, j.DistanceCoveredKm)
	}
	if u := strategy.UncoveredKm(); u != 0 {
		fmt.Fprintf(&b, "Uncovered: %d km\n", u)
	}

	_, werr := io.WriteString(w, b.String())
	return werr
}
