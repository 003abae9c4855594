// Tests for the step publishers and their integration with the Driver.
package production

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/comalice/gearbox"
	"github.com/comalice/gearbox/internal/core"
	"github.com/comalice/gearbox/internal/logging"
	"github.com/comalice/gearbox/testutil"
)

// runShortScript drives the touching table up to 20 in first gear, shifts
// once and then tries a second shift that needs more speed. It applies 23
// operations, two of them rejected.
func runShortScript(t *testing.T, p core.Publisher) gearbox.Transmission {
	t.Helper()
	script, err := core.ParseScript([]string{"+s x21", "+g", "+g"})
	require.NoError(t, err)

	d := core.NewDriver(core.WithPublisher(p), core.WithRunID("run-42"))
	final, err := d.Run(context.Background(), testutil.MustNew(t, testutil.Touching()), script)
	require.NoError(t, err)
	return final
}

func TestJournal_RecordsInOrder(t *testing.T) {
	j := NewJournal()
	final := runShortScript(t, j)

	steps := j.Steps()
	require.Len(t, steps, 23)
	for i, s := range steps {
		assert.Equal(t, i+1, s.Index)
		assert.Equal(t, "run-42", s.RunID)
	}
	assert.Equal(t, core.ViewOf(final), steps[len(steps)-1].After)

	accepted, rejected := j.Counts()
	assert.Equal(t, 21, accepted)
	assert.Equal(t, 2, rejected)
}

func TestJournal_StepsReturnsCopy(t *testing.T) {
	j := NewJournal()
	require.NoError(t, j.Publish(context.Background(), core.Step{Index: 1}))

	steps := j.Steps()
	steps[0].Index = 99

	assert.Equal(t, 1, j.Steps()[0].Index)
}

func TestLogPublisher_Levels(t *testing.T) {
	logger, logs := logging.NewObserved(zapcore.DebugLevel)
	p := NewLogPublisher(logger)

	runShortScript(t, p)

	assert.Equal(t, 21, logs.FilterMessage("step accepted").Len())
	rejected := logs.FilterMessage("step rejected").AllUntimed()
	require.Len(t, rejected, 2)

	first := rejected[0]
	assert.Equal(t, zapcore.InfoLevel, first.Level)
	fields := first.ContextMap()
	assert.Equal(t, int64(21), fields["step"])
	assert.Equal(t, "increase-speed", fields["op"])
	assert.Equal(t, gearbox.StatusIncreaseGearFirst, fields["status"])
	assert.Equal(t, "run-42", fields["run_id"])
}

func TestLogPublisher_InfoHidesAcceptedSteps(t *testing.T) {
	logger, logs := logging.NewObserved(zapcore.InfoLevel)
	runShortScript(t, NewLogPublisher(logger))

	assert.Equal(t, 0, logs.FilterMessage("step accepted").Len())
	assert.Equal(t, 2, logs.Len())
}

func TestLogPublisher_NilLogger(t *testing.T) {
	p := NewLogPublisher(nil)
	assert.NoError(t, p.Publish(context.Background(), core.Step{Index: 1}))
}

type failingPublisher struct {
	err error
}

func (f failingPublisher) Publish(ctx context.Context, step core.Step) error {
	return f.err
}

func TestMultiPublisher_FanOut(t *testing.T) {
	a, b := NewJournal(), NewJournal()
	runShortScript(t, MultiPublisher{a, b})

	assert.Len(t, a.Steps(), 23)
	assert.Equal(t, a.Steps(), b.Steps())
}

func TestMultiPublisher_JoinsErrors(t *testing.T) {
	errA := errors.New("a failed")
	errB := errors.New("b failed")
	j := NewJournal()
	m := MultiPublisher{failingPublisher{errA}, j, failingPublisher{errB}}

	err := m.Publish(context.Background(), core.Step{Index: 7})
	require.Error(t, err)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
	assert.Len(t, j.Steps(), 1, "publishers after a failure still receive the step")
}
