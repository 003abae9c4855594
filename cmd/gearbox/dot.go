package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comalice/gearbox"
	"github.com/comalice/gearbox/internal/production"
)

func dotCmd(global *globalFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "dot SCENARIO",
		Short: "Render a scenario's gear table",
		Long: `Render the gear table of a scenario at its initial state. The default
output is Graphviz DOT; json and yaml print the ranges keyed by gear.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, err := setup(cmd, global)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			scenario, err := production.LoadScenario(args[0])
			if err != nil {
				return err
			}
			table, err := scenario.Table()
			if err != nil {
				return err
			}
			tr, err := gearbox.NewFromTable(table)
			if err != nil {
				return fmt.Errorf("scenario %q: %w", scenario.Name, err)
			}

			v := &production.DefaultVisualizer{}
			out := cmd.OutOrStdout()
			switch format {
			case "dot", "":
				_, err = fmt.Fprint(out, v.ExportDOT(table, tr.Speed(), tr.Gear()))
				return err
			case production.FormatJSON:
				data, err := v.ExportJSON(table)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			case production.FormatYAML:
				data, err := v.ExportYAML(table)
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			default:
				return fmt.Errorf("%w: %q", production.ErrUnknownFormat, format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "dot", "Output format: dot, json, yaml")

	return cmd
}
