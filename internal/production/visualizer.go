// Package production provides production integrations: step publishing,
// metrics, visualization and scenario/report files.
package production

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/comalice/gearbox/internal/primitives"
)

// DefaultVisualizer renders a range table as a Graphviz graph.
type DefaultVisualizer struct{}

// Edge represents a legal shift between adjacent gears.
type Edge struct {
	From  int
	To    int
	Label string
}

// ExportDOT generates Graphviz DOT source for the table. The gear the
// transmission is in is filled, and its label carries the current speed.
func (v *DefaultVisualizer) ExportDOT(table primitives.Table, speed, gear int) string {
	var buf bytes.Buffer
	buf.WriteString(`digraph Gearbox {
  rankdir=LR;
  node [shape=box, fontsize=10, style=rounded];
  edge [fontsize=9];
`)

	for g := primitives.MinGear; g <= primitives.MaxGear; g++ {
		renderGear(&buf, g, table.Range(g), g == gear, speed)
	}

	for _, edge := range collectEdges(table) {
		buf.WriteString(fmt.Sprintf("  \"gear%d\" -> \"gear%d\" [label=\"%s\"];\n", edge.From, edge.To, edge.Label))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// ExportJSON serializes the table keyed by gear number.
func (v *DefaultVisualizer) ExportJSON(table primitives.Table) ([]byte, error) {
	return json.MarshalIndent(table.Gears(), "", "  ")
}

// ExportYAML serializes the table keyed by gear number.
func (v *DefaultVisualizer) ExportYAML(table primitives.Table) ([]byte, error) {
	return yaml.Marshal(table.Gears())
}

// collectEdges returns the up and down shift between every pair of adjacent
// gears, labeled with the speeds at which the shift is legal.
func collectEdges(table primitives.Table) []Edge {
	var edges []Edge
	for g := primitives.MinGear; g < primitives.MaxGear; g++ {
		window := shiftWindow(table, g)
		edges = append(edges,
			Edge{From: g, To: g + 1, Label: "up " + window},
			Edge{From: g + 1, To: g, Label: "down " + window},
		)
	}
	return edges
}

// shiftWindow is the overlap zone of gear and gear+1, or the single
// boundary speed they share.
func shiftWindow(table primitives.Table, gear int) string {
	if zone, ok := table.Overlap(gear); ok {
		return zone.String()
	}
	return fmt.Sprintf("@%d", table.Range(gear+1).Low)
}

func renderGear(buf *bytes.Buffer, gear int, r primitives.GearRange, active bool, speed int) {
	label := fmt.Sprintf("gear %d %s", gear, r)
	style := ""
	if active {
		label = fmt.Sprintf("%s\\nspeed %d", label, speed)
		style = ` style="rounded,filled" fillcolor=lightgreen`
	}
	buf.WriteString(fmt.Sprintf("  \"gear%d\" [label=\"%s\"%s];\n", gear, label, style))
}
