package tires

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/raceiq/raceiq-engine/pkg/cmd/cmdutil"
	"github.com/raceiq/raceiq-engine/pkg/degradation"
	"github.com/raceiq/raceiq-engine/pkg/model"
)

type options struct {
	compound string
	laps     int
	curve    bool
	format   string
}

type result struct {
	model.TireState
	LapTimePenalty float64                  `json:"lapTimePenalty"`
	MaxLaps        int                      `json:"maxLaps"`
	Curve          []degradation.CurvePoint `json:"curve,omitempty"`
}

func NewTiresCmd() *cobra.Command {
	opts := options{}
	cmd := &cobra.Command{
		Use:   "tires",
		Short: "shows tire grip after a number of laps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cmdutil.CheckFormat(opts.format); err != nil {
				return err
			}
			return run(cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.compound, "compound", string(model.CompoundMedium),
		"tire compound (Soft, Medium, Hard, Intermediate, Wet)")
	cmd.Flags().IntVar(&opts.laps, "laps", 0, "laps driven on the tire set")
	cmd.Flags().BoolVar(&opts.curve, "curve", false, "print the degradation curve")
	cmdutil.AddFormatFlag(cmd, &opts.format)
	return cmd
}

func evaluate(opts options) result {
	c := cmdutil.ParseCompound(opts.compound)
	state := degradation.TireStateAt(c, opts.laps)
	spec, _ := degradation.SpecFor(c)
	ret := result{
		TireState:      state,
		LapTimePenalty: degradation.LapTimePenalty(state.Grip),
		MaxLaps:        spec.MaxLaps,
	}
	if opts.curve {
		ret.Curve = degradation.DegradationCurve(c)
	}
	return ret
}

func run(w io.Writer, opts options) error {
	res := evaluate(opts)
	if opts.format == cmdutil.FormatJSON {
		return cmdutil.WriteJSON(w, res)
	}
	fmt.Fprintf(w, "%s after %d laps: grip %.1f%%, +%.3f s per lap (max %d laps)\n",
		res.Compound, res.LapsUsed, res.Grip, res.LapTimePenalty, res.MaxLaps)
	if len(res.Curve) == 0 {
		return nil
	}
	t := cmdutil.NewTable(w)
	t.AppendHeader(table.Row{"Lap", "Grip (%)", "Penalty (s)"})
	for _, p := range res.Curve {
		t.AppendRow(table.Row{p.Lap, cmdutil.F(p.Grip, 1), cmdutil.F(p.LapTimePenalty, 3)})
	}
	t.Render()
	return nil
}
