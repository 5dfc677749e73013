package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arloliu/endf/tape"
)

func (a *app) legendreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "legendre <tape>",
		Short: "Print the MF4 Legendre coefficients as MAT MT E P0 P1 ... rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.readTape(cmd, args[0])
			if err != nil {
				return err
			}
			rows, err := t.LegendreCoefficients(tape.WithLogger(a.logger))
			if err != nil {
				return err
			}

			for _, r := range rows {
				fmt.Fprintf(a.stdout, "%d %d %.6e %s\n", r.MAT, r.MT, r.E, joinFloats(r.Coeffs))
			}

			return nil
		},
	}
}

func (a *app) groupXSCmd() *cobra.Command {
	var f tape.Filter
	cmd := &cobra.Command{
		Use:   "groupxs <errorr-tape>",
		Short: "Print the multigroup cross sections of an ERRORR tape, one group per row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.readTape(cmd, args[0])
			if err != nil {
				return err
			}
			table, err := t.GroupCrossSections(f, tape.WithLogger(a.logger))
			if err != nil {
				return err
			}

			head := []string{"E_low", "E_high"}
			for _, k := range table.Reactions {
				head = append(head, fmt.Sprintf("%d/%d", k.MAT, k.MT))
			}
			fmt.Fprintln(a.stdout, strings.Join(head, " "))

			for g := range table.Groups() {
				row := []float64{table.Boundaries[g], table.Boundaries[g+1]}
				for _, xs := range table.XS {
					row = append(row, xs[g])
				}
				fmt.Fprintln(a.stdout, joinFloats(row))
			}

			return nil
		},
	}
	fs := cmd.Flags()
	fs.IntSliceVar(&f.MAT, "mat", nil, "material numbers to keep (default all)")
	fs.IntSliceVar(&f.MT, "mt", nil, "reaction numbers to keep (default all)")

	return cmd
}

func joinFloats(vals []float64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprintf("%.6e", v)
	}

	return strings.Join(parts, " ")
}
