package gearbox

import (
	"fmt"

	"github.com/comalice/gearbox/internal/primitives"
)

// TableBuilder provides a fluent API for assembling a range table gear by
// gear instead of passing ten positional bounds to New.
type TableBuilder struct {
	table primitives.Table
	err   error
}

// NewTableBuilder creates an empty builder. Gears that are never set stay
// at [0-0] and fail validation in Build.
func NewTableBuilder() *TableBuilder {
	return &TableBuilder{}
}

// Gear sets the inclusive speed range of gear. The first out of range gear
// number is remembered and reported by Build.
func (b *TableBuilder) Gear(gear, low, high int) *TableBuilder {
	if gear < primitives.MinGear || gear > primitives.MaxGear {
		if b.err == nil {
			b.err = fmt.Errorf("gear %d out of range [%d, %d]", gear, primitives.MinGear, primitives.MaxGear)
		}
		return b
	}
	b.table[gear-primitives.MinGear] = GearRange{Low: low, High: high}
	return b
}

// Table returns the table assembled so far without validating it.
func (b *TableBuilder) Table() Table {
	return b.table
}

// Build validates the table and constructs the initial Transmission.
func (b *TableBuilder) Build() (Transmission, error) {
	if b.err != nil {
		return Transmission{}, b.err
	}
	return NewFromTable(b.table)
}
