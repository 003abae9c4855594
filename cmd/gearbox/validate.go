package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/comalice/gearbox"
)

const numBounds = 10

var errHelp = errors.New("help requested")

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate L1 H1 L2 H2 L3 H3 L4 H4 L5 H5",
		Short: "Check a gear range table",
		Long: `Check the ten range bounds (low and high of gears 1 to 5 in order).
Prints "valid" and the table fingerprint, or the first violated rule.

Negative bounds are read as numbers, not flags, so tables such as
"validate 0 -10 10 20 ..." can be checked directly.`,
		// Flag parsing would read negative bounds like -10 as shorthand flags.
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			bounds, err := boundArgs(cmd, args)
			if errors.Is(err, errHelp) {
				return cmd.Help()
			}
			if err != nil {
				return err
			}

			tr, err := gearbox.New(bounds[0], bounds[1], bounds[2], bounds[3], bounds[4],
				bounds[5], bounds[6], bounds[7], bounds[8], bounds[9])
			if err != nil {
				return err
			}
			table := tr.Table()
			fmt.Fprintf(cmd.OutOrStdout(), "valid %s\n", table.Fingerprint())
			return nil
		},
	}
}

// boundArgs extracts the ten integer bounds from raw arguments. "--" is
// skipped, global flags and their values are ignored, and -h/--help asks
// for usage.
func boundArgs(cmd *cobra.Command, args []string) ([numBounds]int, error) {
	var bounds [numBounds]int
	n := 0

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			continue
		}

		if !strings.HasPrefix(arg, "-") || isNumber(arg) {
			v, err := strconv.Atoi(arg)
			if err != nil {
				return bounds, fmt.Errorf("bound %d: %w", n+1, err)
			}
			if n == numBounds {
				return bounds, fmt.Errorf("want %d bounds, got more", numBounds)
			}
			bounds[n] = v
			n++
			continue
		}

		name, _, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if name == "h" || name == "help" {
			return bounds, errHelp
		}
		if cmd.Root().PersistentFlags().Lookup(name) == nil {
			return bounds, fmt.Errorf("unknown flag %q", arg)
		}
		if !hasValue {
			i++
		}
	}

	if n != numBounds {
		return bounds, fmt.Errorf("want %d bounds, got %d", numBounds, n)
	}
	return bounds, nil
}

func isNumber(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}
