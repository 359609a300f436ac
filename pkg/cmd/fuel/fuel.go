package fuel

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/raceiq/raceiq-engine/pkg/cmd/cmdutil"
	"github.com/raceiq/raceiq-engine/pkg/degradation"
	"github.com/raceiq/raceiq-engine/pkg/model"
)

type options struct {
	params    degradation.FuelParams
	laps      int
	trackName string
	format    string
}

func NewFuelCmd() *cobra.Command {
	opts := options{}
	cmd := &cobra.Command{
		Use:   "fuel",
		Short: "shows fuel usage and the laps the remaining fuel lasts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cmdutil.CheckFormat(opts.format); err != nil {
				return err
			}
			return run(cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().IntVar(&opts.laps, "laps", 0, "laps driven")
	cmd.Flags().StringVar(&opts.trackName, "track", "", "track name (scales consumption)")
	cmdutil.AddFuelFlags(cmd, &opts.params)
	cmdutil.AddFormatFlag(cmd, &opts.format)
	return cmd
}

func evaluate(opts options) model.FuelState {
	return degradation.FuelStateAt(opts.params, opts.laps, cmdutil.TrackLength(opts.trackName))
}

func run(w io.Writer, opts options) error {
	state := evaluate(opts)
	if opts.format == cmdutil.FormatJSON {
		return cmdutil.WriteJSON(w, state)
	}
	t := cmdutil.NewTable(w)
	t.AppendHeader(table.Row{"Initial (l)", "Used (l)", "Remaining (l)", "Laps left", "Saving", "Pace cost (s)"})
	t.AppendRow(table.Row{
		cmdutil.F(state.InitialFuel, 1),
		cmdutil.F(state.FuelUsed, 2),
		cmdutil.F(state.FuelRemaining, 2),
		cmdutil.F(state.FuelLapsRemaining, 1),
		state.SavingMode,
		cmdutil.F(degradation.SavingPenalty(state.SavingMode), 1),
	})
	t.Render()
	return nil
}
