package production

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/comalice/gearbox/internal/core"
	"github.com/comalice/gearbox/internal/primitives"
)

// Report formats accepted by WriteReport.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

var ErrUnknownFormat = errors.New("unknown format")

// Scenario is a range table plus the operations to run against it.
type Scenario struct {
	Name    string                 `json:"name" yaml:"name"`
	Gears   []primitives.GearRange `json:"gears" yaml:"gears"`
	Steps   []string               `json:"steps,omitempty" yaml:"steps,omitempty"`
	DriveTo []int                  `json:"drive_to,omitempty" yaml:"drive_to,omitempty"`
}

// Table converts the gear list into a Table. It does not validate the
// ranges; that is left to gearbox.NewFromTable.
func (s Scenario) Table() (primitives.Table, error) {
	var t primitives.Table
	if len(s.Gears) != primitives.NumGears {
		return t, fmt.Errorf("scenario %q: want %d gears, got %d", s.Name, primitives.NumGears, len(s.Gears))
	}
	copy(t[:], s.Gears)
	return t, nil
}

// Script parses the step lines.
func (s Scenario) Script() ([]core.Command, error) {
	cmds, err := core.ParseScript(s.Steps)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	return cmds, nil
}

// LoadScenario reads a scenario file. The decoder is chosen by extension:
// .json for JSON, .yaml or .yml for YAML.
func LoadScenario(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Scenario{}, fmt.Errorf("scenario %q: %w", path, os.ErrNotExist)
		}
		return Scenario{}, fmt.Errorf("read %s: %w", path, err)
	}

	var s Scenario
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &s); err != nil {
			return Scenario{}, fmt.Errorf("json unmarshal %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &s); err != nil {
			return Scenario{}, fmt.Errorf("yaml unmarshal %s: %w", path, err)
		}
	default:
		return Scenario{}, fmt.Errorf("%w: scenario extension %q", ErrUnknownFormat, ext)
	}

	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Report summarizes one scenario run.
type Report struct {
	RunID       string         `json:"run_id" yaml:"run_id"`
	Scenario    string         `json:"scenario" yaml:"scenario"`
	Fingerprint string         `json:"fingerprint" yaml:"fingerprint"`
	Final       core.StateView `json:"final" yaml:"final"`
	Accepted    int            `json:"accepted" yaml:"accepted"`
	Rejected    int            `json:"rejected" yaml:"rejected"`
	Steps       []core.Step    `json:"steps" yaml:"steps"`
}

// WriteReport encodes r to w as YAML or JSON.
func WriteReport(w io.Writer, format string, r Report) error {
	switch strings.ToLower(format) {
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("yaml encode: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("json encode: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
