// Package gearbox models a five-gear manual transmission.
//
// A Transmission is an immutable value. Every operation returns a new value
// describing the attempted change and leaves the receiver untouched; a
// rejected change still returns a new value whose Status explains why.
package gearbox

import (
	"fmt"
	"strings"

	"github.com/comalice/gearbox/internal/primitives"
)

// Configuration and error types shared with the primitives package.
type (
	GearRange       = primitives.GearRange
	Table           = primitives.Table
	Rule            = primitives.Rule
	ValidationError = primitives.ValidationError
)

// Status messages reported by Transmission.Status.
const (
	StatusOK                 = "OK: everything is OK."
	StatusMayIncreaseGear    = "OK: you may increase the gear."
	StatusMayDecreaseGear    = "OK: you may decrease the gear."
	StatusMaxSpeed           = "Cannot increase speed. Reached maximum speed."
	StatusMinSpeed           = "Cannot decrease speed. Reached minimum speed."
	StatusIncreaseGearFirst  = "Cannot increase speed, increase gear first."
	StatusDecreaseGearFirst  = "Cannot decrease speed, decrease gear first."
	StatusMaxGear            = "Cannot increase gear. Reached maximum gear."
	StatusMinGear            = "Cannot decrease gear. Reached minimum gear."
	StatusIncreaseSpeedFirst = "Cannot increase gear, increase speed first."
	StatusDecreaseSpeedFirst = "Cannot decrease gear, decrease speed first."
)

const speedStep = 1

// Transmission is one snapshot of the transmission: the shared range table
// plus the current speed, gear and status.
type Transmission struct {
	table  *primitives.Table
	speed  int
	gear   int
	status string
}

//
// Public API
//

// New validates the ten bounds (low/high for gears 1..5 in order) and returns
// the initial transmission: lowest speed, first gear, StatusOK.
func New(l1, h1, l2, h2, l3, h3, l4, h4, l5, h5 int) (Transmission, error) {
	return NewFromTable(primitives.NewTable(l1, h1, l2, h2, l3, h3, l4, h4, l5, h5))
}

// NewFromTable is New for an already assembled table.
func NewFromTable(table Table) (Transmission, error) {
	if err := table.Validate(); err != nil {
		return Transmission{}, err
	}
	t := &table
	return Transmission{
		table:  t,
		speed:  t.MinSpeed(),
		gear:   primitives.MinGear,
		status: StatusOK,
	}, nil
}

func (t Transmission) Speed() int {
	return t.speed
}

func (t Transmission) Gear() int {
	return t.gear
}

func (t Transmission) Status() string {
	return t.status
}

// Table returns a copy of the configured range table.
func (t Transmission) Table() Table {
	if t.table == nil {
		return Table{}
	}
	return *t.table
}

// Accepted reports whether the change that produced this value went through.
func (t Transmission) Accepted() bool {
	return strings.HasPrefix(t.status, "OK:")
}

func (t Transmission) String() string {
	return fmt.Sprintf("gear=%d speed=%d status=%q", t.gear, t.speed, t.status)
}

// IncreaseSpeed raises the speed by one if the current gear allows it.
func (t Transmission) IncreaseSpeed() Transmission {
	if t.table == nil {
		return t
	}
	nextLow := t.neighbour(+1).Low
	currentHigh := t.table.Range(t.gear).High
	next := t.speed + speedStep
	top := t.gear == primitives.MaxGear

	switch {
	case next > t.table.MaxSpeed():
		return t.with(t.speed, t.gear, StatusMaxSpeed)
	case next >= nextLow && next > currentHigh && !top:
		return t.with(t.speed, t.gear, StatusIncreaseGearFirst)
	case next >= nextLow && nextLow < currentHigh && !top:
		return t.with(next, t.gear, StatusMayIncreaseGear)
	default:
		return t.with(next, t.gear, StatusOK)
	}
}

// DecreaseSpeed lowers the speed by one if the current gear allows it.
func (t Transmission) DecreaseSpeed() Transmission {
	if t.table == nil {
		return t
	}
	prevHigh := t.neighbour(-1).High
	currentLow := t.table.Range(t.gear).Low
	next := t.speed - speedStep
	bottom := t.gear == primitives.MinGear

	switch {
	case next < t.table.MinSpeed():
		return t.with(t.speed, t.gear, StatusMinSpeed)
	case next <= prevHigh && next < currentLow && !bottom:
		return t.with(t.speed, t.gear, StatusDecreaseGearFirst)
	case next <= prevHigh && prevHigh > currentLow && next >= currentLow && !bottom:
		return t.with(next, t.gear, StatusMayDecreaseGear)
	default:
		return t.with(next, t.gear, StatusOK)
	}
}

// IncreaseGear shifts up one gear if the current speed is legal there.
func (t Transmission) IncreaseGear() Transmission {
	if t.table == nil {
		return t
	}
	switch {
	case t.gear == primitives.MaxGear:
		return t.with(t.speed, t.gear, StatusMaxGear)
	case t.neighbour(+1).Low > t.speed:
		return t.with(t.speed, t.gear, StatusIncreaseSpeedFirst)
	default:
		return t.with(t.speed, t.gear+1, StatusOK)
	}
}

// DecreaseGear shifts down one gear if the current speed is legal there.
func (t Transmission) DecreaseGear() Transmission {
	if t.table == nil {
		return t
	}
	switch {
	case t.gear == primitives.MinGear:
		return t.with(t.speed, t.gear, StatusMinGear)
	case t.speed > t.neighbour(-1).High:
		return t.with(t.speed, t.gear, StatusDecreaseSpeedFirst)
	default:
		return t.with(t.speed, t.gear-1, StatusOK)
	}
}

//
// Helper Functions (internal API)
//

// with returns a new snapshot sharing the receiver's table.
func (t Transmission) with(speed, gear int, status string) Transmission {
	return Transmission{
		table:  t.table,
		speed:  speed,
		gear:   gear,
		status: status,
	}
}

// neighbour returns the range of the gear dir steps away, or the current
// gear's own range when no such gear exists.
func (t Transmission) neighbour(dir int) GearRange {
	g := t.gear + dir
	if g < primitives.MinGear || g > primitives.MaxGear {
		g = t.gear
	}
	return t.table.Range(g)
}
