package pit

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/raceiq/raceiq-engine/pkg/cmd/cmdutil"
	"github.com/raceiq/raceiq-engine/pkg/degradation"
	"github.com/raceiq/raceiq-engine/pkg/model"
	"github.com/raceiq/raceiq-engine/pkg/strategy"
)

type options struct {
	raceLaps   int
	compound   string
	lapsUsed   int
	trackName  string
	fuel       degradation.FuelParams
	thresholds strategy.Thresholds
	avgLap     time.Duration
	pitTime    time.Duration
	format     string
}

type stintView struct {
	Compound  model.Compound `json:"compound"`
	LapStart  int            `json:"lapStart"`
	LapEnd    int            `json:"lapEnd"`
	StintTime float64        `json:"stintTime"` // seconds
}

type result struct {
	Tire          model.TireState    `json:"tire"`
	Fuel          model.FuelState    `json:"fuel"`
	Advice        strategy.PitAdvice `json:"advice"`
	OptimalPitLap int                `json:"optimalPitLap"`
	Stints        []stintView        `json:"stints"`
	Stops         int                `json:"stops"`
	TotalTime     float64            `json:"totalTime"` // seconds
}

func NewPitCmd() *cobra.Command {
	opts := options{}
	cmd := &cobra.Command{
		Use:   "pit",
		Short: "advises on pit stops and plans the stints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cmdutil.CheckFormat(opts.format); err != nil {
				return err
			}
			return run(cmd.OutOrStdout(), opts)
		},
	}
	def := strategy.DefaultThresholds()
	cmd.Flags().IntVar(&opts.raceLaps, "race-laps", 53, "race distance in laps")
	cmd.Flags().StringVar(&opts.compound, "compound", string(model.CompoundMedium), "tire compound")
	cmd.Flags().IntVar(&opts.lapsUsed, "laps-used", 0, "laps driven on the current tires and fuel")
	cmd.Flags().StringVar(&opts.trackName, "track", "", "track name (scales consumption)")
	cmd.Flags().Float64Var(&opts.thresholds.Grip, "grip-threshold", def.Grip,
		"pit for tires below this grip (percent)")
	cmd.Flags().Float64Var(&opts.thresholds.FuelLaps, "fuel-threshold", def.FuelLaps,
		"pit for fuel below this many laps of fuel")
	cmd.Flags().DurationVar(&opts.avgLap, "avg-lap", 90*time.Second, "lap time on fresh tires")
	cmd.Flags().DurationVar(&opts.pitTime, "pit-time", 22500*time.Millisecond, "time lost per stop")
	cmdutil.AddFuelFlags(cmd, &opts.fuel)
	cmdutil.AddFormatFlag(cmd, &opts.format)
	return cmd
}

func evaluate(opts options) result {
	c := cmdutil.ParseCompound(opts.compound)
	trackLen := cmdutil.TrackLength(opts.trackName)
	th := opts.thresholds
	ret := result{
		Tire: degradation.TireStateAt(c, opts.lapsUsed),
		Fuel: degradation.FuelStateAt(opts.fuel, opts.lapsUsed, trackLen),
	}
	ret.Advice = strategy.Advise(ret.Tire, ret.Fuel, th)
	if th == strategy.DefaultThresholds() {
		ret.OptimalPitLap = strategy.FindOptimalPitLap(opts.raceLaps, c, opts.fuel.Throttle,
			opts.fuel, trackLen)
	} else {
		ret.OptimalPitLap = th.OptimalPitLap(opts.raceLaps, c, opts.fuel, trackLen)
	}

	plan := strategy.PlanStints(&strategy.PlanParams{
		RaceLaps:      opts.raceLaps,
		Compound:      c,
		Fuel:          opts.fuel,
		TrackLengthKm: trackLen,
		AvgLap:        opts.avgLap,
		PitTime:       opts.pitTime,
		Thresholds:    &th,
	})
	for _, s := range plan.Stints() {
		ret.Stints = append(ret.Stints, stintView{
			Compound:  s.Compound(),
			LapStart:  s.LapStart(),
			LapEnd:    s.LapEnd(),
			StintTime: s.StintTime().Seconds(),
		})
	}
	ret.Stops = plan.Stops()
	ret.TotalTime = plan.TotalTime().Seconds()
	return ret
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func run(w io.Writer, opts options) error {
	res := evaluate(opts)
	if opts.format == cmdutil.FormatJSON {
		return cmdutil.WriteJSON(w, res)
	}
	fmt.Fprintf(w, "After %d laps: grip %.1f%%, fuel for %.1f laps\n",
		res.Tire.LapsUsed, res.Tire.Grip, res.Fuel.FuelLapsRemaining)
	fmt.Fprintf(w, "Pit for tires: %s, pit for fuel: %s, pit now: %s\n",
		yesNo(res.Advice.PitForTires), yesNo(res.Advice.PitForFuel), yesNo(res.Advice.PitNow))
	fmt.Fprintf(w, "Optimal pit lap: %d\n", res.OptimalPitLap)

	t := cmdutil.NewTable(w)
	t.AppendHeader(table.Row{"Stint", "Compound", "Laps", "Time"})
	for i, s := range res.Stints {
		t.AppendRow(table.Row{
			i + 1, s.Compound, fmt.Sprintf("%d-%d", s.LapStart, s.LapEnd),
			secondsToDuration(s.StintTime),
		})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d stops", res.Stops), "",
		secondsToDuration(res.TotalTime)})
	t.Render()
	return nil
}

func secondsToDuration(s float64) string {
	return time.Duration(s * float64(time.Second)).Round(time.Millisecond).String()
}
