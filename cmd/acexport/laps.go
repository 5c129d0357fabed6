package main

import (
	"io"

	"codeberg.org/mutker/actelemetry/internal/export"
	"github.com/spf13/cobra"
)

func newLapsCmd() *cobra.Command {
	var input, output string

	cmd := &cobra.Command{
		Use:   "laps",
		Short: "Export throttle and brake traces numbered per lap",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd.Context(), input, output, func(s *export.Store, w io.Writer) error {
				rows, err := s.LapInputs(cmd.Context())
				if err != nil {
					return err
				}
				return export.WriteLapInputs(w, rows)
			})
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Session CSV file to read")
	cmd.Flags().StringVarP(&output, "output", "o", "lap_gas_brake.csv", "Destination CSV file, - for stdout")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}
