package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/comalice/gearbox"
)

// Op is one of the four transmission operations.
type Op int

const (
	IncreaseSpeed Op = iota + 1
	DecreaseSpeed
	IncreaseGear
	DecreaseGear
)

var opNames = map[Op]string{
	IncreaseSpeed: "increase-speed",
	DecreaseSpeed: "decrease-speed",
	IncreaseGear:  "increase-gear",
	DecreaseGear:  "decrease-gear",
}

var opAliases = map[string]Op{
	"increase-speed": IncreaseSpeed,
	"decrease-speed": DecreaseSpeed,
	"increase-gear":  IncreaseGear,
	"decrease-gear":  DecreaseGear,
	"+s":             IncreaseSpeed,
	"-s":             DecreaseSpeed,
	"+g":             IncreaseGear,
	"-g":             DecreaseGear,
}

// ParseOp accepts the long names (increase-speed) and the short forms
// (+s, -s, +g, -g), case-insensitively.
func ParseOp(s string) (Op, error) {
	op, ok := opAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("unknown operation %q", s)
	}
	return op, nil
}

func (o Op) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return fmt.Sprintf("op(%d)", int(o))
}

// Apply runs the operation against tr.
func (o Op) Apply(tr gearbox.Transmission) gearbox.Transmission {
	switch o {
	case IncreaseSpeed:
		return tr.IncreaseSpeed()
	case DecreaseSpeed:
		return tr.DecreaseSpeed()
	case IncreaseGear:
		return tr.IncreaseGear()
	case DecreaseGear:
		return tr.DecreaseGear()
	default:
		return tr
	}
}

func (o Op) MarshalText() ([]byte, error) {
	if _, ok := opNames[o]; !ok {
		return nil, fmt.Errorf("unknown operation %d", int(o))
	}
	return []byte(o.String()), nil
}

func (o *Op) UnmarshalText(text []byte) error {
	op, err := ParseOp(string(text))
	if err != nil {
		return err
	}
	*o = op
	return nil
}

// Command repeats one operation.
type Command struct {
	Op     Op
	Repeat int
}

func (c Command) String() string {
	if c.Repeat == 1 {
		return c.Op.String()
	}
	return fmt.Sprintf("%s x%d", c.Op, c.Repeat)
}

// ParseCommand parses "OP", "OP xN" or "OP N", e.g. "increase-speed x20".
func ParseCommand(s string) (Command, error) {
	fields := strings.Fields(s)
	switch len(fields) {
	case 1, 2:
	default:
		return Command{}, fmt.Errorf("invalid command %q: want OP [xN]", s)
	}

	op, err := ParseOp(fields[0])
	if err != nil {
		return Command{}, err
	}
	cmd := Command{Op: op, Repeat: 1}
	if len(fields) == 2 {
		n, err := strconv.Atoi(strings.TrimPrefix(strings.ToLower(fields[1]), "x"))
		if err != nil || n < 1 {
			return Command{}, fmt.Errorf("invalid repeat count %q in command %q", fields[1], s)
		}
		cmd.Repeat = n
	}
	return cmd, nil
}

// ParseScript parses each line as a command. Blank lines and lines starting
// with # are skipped.
func ParseScript(lines []string) ([]Command, error) {
	var cmds []Command
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cmd, err := ParseCommand(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}
