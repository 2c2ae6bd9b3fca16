package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"reel/internal/sample"
	"reel/internal/store"
)

func newSampleCommand(ctx *commandContext) *cobra.Command {
	var req sample.Request
	var asJSON bool
	var all bool

	cmd := &cobra.Command{
		Use:   "sample <project>",
		Short: "Export effect parameter values over a frame range",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("workers") {
				req.Workers = cfg.Sampling.Workers
			}
			req.IncludeDisabled = all

			return ctx.withStore(cmd, func(s *store.Store) error {
				p, _, err := s.Load(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !cmd.Flags().Changed("to") {
					req.To = p.Timeline.DurationFrames()
				}
				series, err := sample.Sample(cmd.Context(), p.Timeline, req)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, series)
				}
				out := cmd.OutOrStdout()
				if len(series) == 0 {
					fmt.Fprintln(out, "No effect parameters in range")
					return nil
				}
				var rows [][]string
				for _, sr := range series {
					for _, pt := range sr.Points {
						rows = append(rows, []string{sr.Clip, sr.Effect, sr.Parameter, strconv.FormatInt(pt.Frame, 10), pt.Value.String()})
					}
				}
				fmt.Fprintln(out, renderTable(out, []string{"Clip", "Effect", "Parameter", "Frame", "Value"}, rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight}))
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&req.From, "from", 0, "First frame")
	cmd.Flags().Int64Var(&req.To, "to", 0, "Last frame, inclusive (defaults to the timeline end)")
	cmd.Flags().Int64Var(&req.Step, "step", 1, "Frames between samples")
	cmd.Flags().StringSliceVar(&req.ClipIDs, "clip", nil, "Only sample these clip ids")
	cmd.Flags().IntVar(&req.Workers, "workers", 0, "Concurrent sampling jobs (defaults to the configured count)")
	cmd.Flags().BoolVar(&all, "all", false, "Include disabled effects")
	addJSONFlag(cmd, &asJSON, "")
	return cmd
}
