package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kilianp07/rebelay/pkg/export"
)

func newExportCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export sweep samples or caver studies as JSON or CSV",
	}
	cmd.AddCommand(newExportSamplesCmd(c), newExportStudyCmd(c))
	return cmd
}

// openOutput returns stdout for an empty path or "-".
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func newExportSamplesCmd(c *cli) *cobra.Command {
	var (
		party  partyFlags
		sweep  sweepFlags
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "samples",
		Short: "Export the swept (rebelays, section length, time) samples",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			d, cavers, err := party.parse()
			if err != nil {
				return err
			}
			planner, err := c.planner()
			if err != nil {
				return err
			}
			res, err := planner.Optimize(d, party.rope, cavers, sweep.apply(cmd, planner.Defaults()))
			if err != nil {
				return err
			}
			w, closeFn, err := openOutput(cmd, out)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := closeFn(); err == nil {
					err = cerr
				}
			}()
			return export.WriteSamples(w, f, res.Samples)
		},
	}
	party.register(cmd)
	sweep.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "json", "json or csv")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (stdout when empty)")
	return cmd
}

func newExportStudyCmd(c *cli) *cobra.Command {
	var (
		rope      float64
		maxCavers int
		sweep     sweepFlags
		format    string
		out       string
	)
	cmd := &cobra.Command{
		Use:   "study",
		Short: "Export the optimum spacing per group size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			planner, err := c.planner()
			if err != nil {
				return err
			}
			rows, err := planner.Study(cmd.Context(), rope, maxCavers, sweep.apply(cmd, planner.Defaults()))
			if err != nil {
				return err
			}
			w, closeFn, err := openOutput(cmd, out)
			if err != nil {
				return fmt.Errorf("open output: %w", err)
			}
			defer func() {
				if cerr := closeFn(); err == nil {
					err = cerr
				}
			}()
			return export.WriteStudy(w, f, rows)
		},
	}
	cmd.Flags().Float64VarP(&rope, "rope", "r", 0, "rope length in meters")
	cmd.Flags().IntVarP(&maxCavers, "max-cavers", "m", 8, "largest group size studied")
	_ = cmd.MarkFlagRequired("rope")
	sweep.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "json", "json or csv")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (stdout when empty)")
	return cmd
}
