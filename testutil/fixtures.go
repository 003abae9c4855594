// Package testutil provides canonical range tables and drive helpers shared
// by the gearbox test suites.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/comalice/gearbox"
	"github.com/comalice/gearbox/internal/primitives"
)

// Touching returns the table whose adjacent ranges share exactly one
// boundary speed: (0,20)(20,40)(40,60)(60,80)(80,100).
func Touching() gearbox.Table {
	return primitives.NewTable(0, 20, 20, 40, 40, 60, 60, 80, 80, 100)
}

// Overlapping returns a table with two real overlap zones, 10..20 between
// gears 1 and 2 and 50..60 between gears 3 and 4:
// (0,20)(10,40)(40,60)(50,80)(80,100).
func Overlapping() gearbox.Table {
	return primitives.NewTable(0, 20, 10, 40, 40, 60, 50, 80, 80, 100)
}

// Op is one transmission operation as a method value.
type Op func(gearbox.Transmission) gearbox.Transmission

var (
	IncreaseSpeed Op = gearbox.Transmission.IncreaseSpeed
	DecreaseSpeed Op = gearbox.Transmission.DecreaseSpeed
	IncreaseGear  Op = gearbox.Transmission.IncreaseGear
	DecreaseGear  Op = gearbox.Transmission.DecreaseGear
)

// MustNew builds a transmission from table or fails the test.
func MustNew(tb testing.TB, table gearbox.Table) gearbox.Transmission {
	tb.Helper()
	tr, err := gearbox.NewFromTable(table)
	require.NoError(tb, err)
	return tr
}

// Repeat applies op n times without checking intermediate states.
func Repeat(tr gearbox.Transmission, op Op, n int) gearbox.Transmission {
	for i := 0; i < n; i++ {
		tr = op(tr)
	}
	return tr
}

// RepeatStatus applies op n times and requires every intermediate status
// to equal status.
func RepeatStatus(tb testing.TB, tr gearbox.Transmission, op Op, n int, status string) gearbox.Transmission {
	tb.Helper()
	for i := 0; i < n; i++ {
		tr = op(tr)
		require.Equal(tb, status, tr.Status(), "step %d of %d (%s)", i+1, n, tr)
	}
	return tr
}

// RequireState requires tr to be at speed and gear with status.
func RequireState(tb testing.TB, tr gearbox.Transmission, speed, gear int, status string) {
	tb.Helper()
	require.Equal(tb, speed, tr.Speed(), "speed (%s)", tr)
	require.Equal(tb, gear, tr.Gear(), "gear (%s)", tr)
	require.Equal(tb, status, tr.Status(), "status (%s)", tr)
}
