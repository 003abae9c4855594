// Package primitives defines the foundational data structures for the gearbox model.
//
// Table holds the inclusive speed range of each of the five gears. Gear numbers
// are 1-based everywhere in the public API; the array index is gear-1.
package primitives

import "fmt"

const (
	// MinGear is the lowest gear a transmission can engage.
	MinGear = 1
	// MaxGear is the highest gear a transmission can engage.
	MaxGear = 5
	// NumGears is the number of gears in a Table.
	NumGears = MaxGear - MinGear + 1
)

// GearRange is the inclusive speed interval in which a gear may be engaged.
type GearRange struct {
	Low  int `json:"low" yaml:"low"`
	High int `json:"high" yaml:"high"`
}

// Contains reports whether speed lies inside the range.
func (r GearRange) Contains(speed int) bool {
	return r.Low <= speed && speed <= r.High
}

// Intersects reports whether the two ranges share at least one speed value.
func (r GearRange) Intersects(o GearRange) bool {
	return r.Low <= o.High && o.Low <= r.High
}

func (r GearRange) String() string {
	return fmt.Sprintf("[%d-%d]", r.Low, r.High)
}

// Table maps gears 1..5 to their speed ranges.
type Table [NumGears]GearRange

// NewTable builds a Table from ten bounds given as low/high pairs in
// ascending gear order.
func NewTable(l1, h1, l2, h2, l3, h3, l4, h4, l5, h5 int) Table {
	return Table{
		{Low: l1, High: h1},
		{Low: l2, High: h2},
		{Low: l3, High: h3},
		{Low: l4, High: h4},
		{Low: l5, High: h5},
	}
}

// Range returns the speed range of gear. It panics if gear is outside
// [MinGear, MaxGear], like an out of range slice index.
func (t *Table) Range(gear int) GearRange {
	return t[gear-MinGear]
}

// MinSpeed is the lowest speed the table allows (first gear's low bound).
func (t *Table) MinSpeed() int {
	return t[0].Low
}

// MaxSpeed is the highest speed the table allows (top gear's high bound).
func (t *Table) MaxSpeed() int {
	return t[NumGears-1].High
}

// Overlap returns the zone shared by gear and gear+1. ok is false when the
// two ranges only touch at a single boundary value or gear is the top gear.
func (t *Table) Overlap(gear int) (zone GearRange, ok bool) {
	if gear < MinGear || gear >= MaxGear {
		return GearRange{}, false
	}
	cur, next := t.Range(gear), t.Range(gear+1)
	if next.Low >= cur.High {
		return GearRange{}, false
	}
	return GearRange{Low: next.Low, High: cur.High}, true
}

// Gears returns the ranges keyed by gear number.
func (t *Table) Gears() map[int]GearRange {
	m := make(map[int]GearRange, NumGears)
	for i, r := range t {
		m[i+MinGear] = r
	}
	return m
}
