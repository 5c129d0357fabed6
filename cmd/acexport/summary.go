package main

import (
	"io"

	"codeberg.org/mutker/actelemetry/internal/export"
	"github.com/spf13/cobra"
)

func newSummaryCmd() *cobra.Command {
	var input, output string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Export one line of statistics per lap",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd.Context(), input, output, func(s *export.Store, w io.Writer) error {
				laps, err := s.LapSummaries(cmd.Context())
				if err != nil {
					return err
				}
				return export.WriteLapSummaries(w, laps)
			})
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Session CSV file to read")
	cmd.Flags().StringVarP(&output, "output", "o", "lap_summary.csv", "Destination CSV file, - for stdout")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}
