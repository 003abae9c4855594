package production

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/comalice/gearbox/internal/core"
	"github.com/comalice/gearbox/internal/primitives"
	"github.com/comalice/gearbox/testutil"
)

const touchingYAML = `name: touching
gears:
  - {low: 0, high: 20}
  - {low: 20, high: 40}
  - {low: 40, high: 60}
  - {low: 60, high: 80}
  - {low: 80, high: 100}
steps:
  - "# warm up"
  - increase-speed x21
  - +g
  - +g
drive_to: [100, 0]
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario_YAML(t *testing.T) {
	s, err := LoadScenario(writeFile(t, "touching.yaml", touchingYAML))
	require.NoError(t, err)

	assert.Equal(t, "touching", s.Name)
	assert.Equal(t, []int{100, 0}, s.DriveTo)

	table, err := s.Table()
	require.NoError(t, err)
	assert.Equal(t, testutil.Touching(), table)

	script, err := s.Script()
	require.NoError(t, err)
	assert.Equal(t, []core.Command{
		{Op: core.IncreaseSpeed, Repeat: 21},
		{Op: core.IncreaseGear, Repeat: 1},
		{Op: core.IncreaseGear, Repeat: 1},
	}, script)
}

func TestLoadScenario_JSONDefaultsName(t *testing.T) {
	content := `{"gears":[{"low":0,"high":20},{"low":10,"high":40},{"low":40,"high":60},{"low":50,"high":80},{"low":80,"high":100}],"steps":["+s x5"]}`
	s, err := LoadScenario(writeFile(t, "overlap.json", content))
	require.NoError(t, err)

	assert.Equal(t, "overlap", s.Name)
	table, err := s.Table()
	require.NoError(t, err)
	assert.Equal(t, testutil.Overlapping(), table)
}

func TestLoadScenario_Errors(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, err = LoadScenario(writeFile(t, "table.toml", "name = 'x'"))
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = LoadScenario(writeFile(t, "broken.yml", "gears: [oops"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "yaml unmarshal")
}

func TestScenario_WrongGearCount(t *testing.T) {
	s := Scenario{Name: "short", Gears: []primitives.GearRange{{Low: 0, High: 20}}}
	_, err := s.Table()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want 5 gears, got 1")
}

func TestScenario_BadStep(t *testing.T) {
	s := Scenario{Name: "bad", Steps: []string{"+s", "brake"}}
	_, err := s.Script()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `scenario "bad"`)
	assert.Contains(t, err.Error(), "line 2")
}

func sampleReport(t *testing.T) Report {
	j := NewJournal()
	final := runShortScript(t, j)
	table := testutil.Touching()
	accepted, rejected := j.Counts()
	return Report{
		RunID:       "run-42",
		Scenario:    "touching",
		Fingerprint: table.Fingerprint(),
		Final:       core.ViewOf(final),
		Accepted:    accepted,
		Rejected:    rejected,
		Steps:       j.Steps(),
	}
}

func TestWriteReport_YAMLRoundTrip(t *testing.T) {
	want := sampleReport(t)

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, FormatYAML, want))
	assert.Contains(t, buf.String(), "op: increase-speed")

	var got Report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, want, got)
}

func TestWriteReport_JSON(t *testing.T) {
	want := sampleReport(t)

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, "JSON", want))

	var got Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, want.Final, got.Final)
	assert.Len(t, got.Steps, 23)
	assert.Equal(t, core.IncreaseGear, got.Steps[21].Op)
}

func TestWriteReport_UnknownFormat(t *testing.T) {
	err := WriteReport(&bytes.Buffer{}, "xml", Report{})
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
