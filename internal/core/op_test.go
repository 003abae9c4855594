package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseOp(t *testing.T) {
	tests := []struct {
		in      string
		want    Op
		wantErr bool
	}{
		{in: "increase-speed", want: IncreaseSpeed},
		{in: "Decrease-Speed", want: DecreaseSpeed},
		{in: " +g ", want: IncreaseGear},
		{in: "-g", want: DecreaseGear},
		{in: "+s", want: IncreaseSpeed},
		{in: "-s", want: DecreaseSpeed},
		{in: "brake", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOp(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		in      string
		want    Command
		wantErr bool
	}{
		{in: "increase-speed", want: Command{Op: IncreaseSpeed, Repeat: 1}},
		{in: "increase-speed x20", want: Command{Op: IncreaseSpeed, Repeat: 20}},
		{in: "-s 3", want: Command{Op: DecreaseSpeed, Repeat: 3}},
		{in: "+g X2", want: Command{Op: IncreaseGear, Repeat: 2}},
		{in: "+g x0", wantErr: true},
		{in: "+g xx", wantErr: true},
		{in: "+g x1 extra", wantErr: true},
		{in: "   ", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCommand(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseScript(t *testing.T) {
	cmds, err := ParseScript([]string{
		"# warm up",
		"increase-speed x20",
		"",
		"increase-gear",
	})
	require.NoError(t, err)
	assert.Equal(t, []Command{
		{Op: IncreaseSpeed, Repeat: 20},
		{Op: IncreaseGear, Repeat: 1},
	}, cmds)

	_, err = ParseScript([]string{"+s", "launch"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "increase-gear", Command{Op: IncreaseGear, Repeat: 1}.String())
	assert.Equal(t, "decrease-speed x5", Command{Op: DecreaseSpeed, Repeat: 5}.String())
	assert.Equal(t, "op(9)", Op(9).String())
}

func TestOpTextEncoding(t *testing.T) {
	data, err := json.Marshal(struct{ Op Op }{Op: DecreaseGear})
	require.NoError(t, err)
	assert.JSONEq(t, `{"Op":"decrease-gear"}`, string(data))

	var decoded struct {
		Op Op `yaml:"op"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("op: +s\n"), &decoded))
	assert.Equal(t, IncreaseSpeed, decoded.Op)

	_, err = json.Marshal(struct{ Op Op }{Op: Op(0)})
	assert.Error(t, err)
}
