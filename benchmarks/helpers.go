// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/comalice/gearbox"
	"github.com/comalice/gearbox/internal/core"
	"github.com/comalice/gearbox/internal/primitives"
	"github.com/comalice/gearbox/internal/production"
)

// GenTable creates a touching table in which every gear spans width speeds.
func GenTable(width int) gearbox.Table {
	if width < 1 {
		width = 1
	}
	return primitives.NewTable(
		0, width,
		width, 2*width,
		2*width, 3*width,
		3*width, 4*width,
		4*width, 5*width,
	)
}

// GenRoundTripScript drives from standstill to top speed in fifth gear and
// back, shifting at every boundary. Every operation in it is accepted.
func GenRoundTripScript(width int) []core.Command {
	var script []core.Command
	for g := 1; g <= 5; g++ {
		script = append(script, core.Command{Op: core.IncreaseSpeed, Repeat: width})
		if g < 5 {
			script = append(script, core.Command{Op: core.IncreaseGear, Repeat: 1})
		}
	}
	for g := 5; g >= 1; g-- {
		script = append(script, core.Command{Op: core.DecreaseSpeed, Repeat: width})
		if g > 1 {
			script = append(script, core.Command{Op: core.DecreaseGear, Repeat: 1})
		}
	}
	return script
}

// GenScenarioYAML generates a scenario document with the round trip script.
func GenScenarioYAML(width int) []byte {
	table := GenTable(width)
	s := production.Scenario{
		Name:    fmt.Sprintf("round_trip_%d", width),
		Gears:   table[:],
		DriveTo: []int{5 * width, 0},
	}
	for _, cmd := range GenRoundTripScript(width) {
		s.Steps = append(s.Steps, cmd.String())
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		panic(err)
	}
	return data
}

// mustNew builds the initial transmission or panics.
func mustNew(table gearbox.Table) gearbox.Transmission {
	tr, err := gearbox.NewFromTable(table)
	if err != nil {
		panic(err)
	}
	return tr
}

func itoa(n int) string {
	return fmt.Sprint(n)
}
