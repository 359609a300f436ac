package strategy

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/raceiq/raceiq-engine/pkg/cmd/cmdutil"
	"github.com/raceiq/raceiq-engine/pkg/model"
	"github.com/raceiq/raceiq-engine/pkg/strategy"
)

func NewStrategyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strategy",
		Short: "compares race strategies and evaluates pit battles",
	}
	cmd.AddCommand(newCompareCmd(), newUndercutCmd())
	return cmd
}

type compareOptions struct {
	raceLaps     int
	avgLap       float64
	pitLaneDelta float64
	weather      string
	format       string
}

type strategyView struct {
	strategy.RaceStrategy
	PitStops    int     `json:"pitStops"`
	AveragePace float64 `json:"averagePace"`
	RiskScore   int     `json:"riskScore"`
}

func newCompareCmd() *cobra.Command {
	opts := compareOptions{}
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "ranks the preset strategies by total race time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cmdutil.CheckFormat(opts.format); err != nil {
				return err
			}
			return runCompare(cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().IntVar(&opts.raceLaps, "race-laps", 53, "race distance in laps")
	cmd.Flags().Float64Var(&opts.avgLap, "avg-lap", 92.3, "average lap time in seconds")
	cmd.Flags().Float64Var(&opts.pitLaneDelta, "pit-delta", 22.5, "time lost in the pit lane in seconds")
	cmd.Flags().StringVar(&opts.weather, "weather", string(model.WeatherDry), "weather conditions")
	cmdutil.AddFormatFlag(cmd, &opts.format)
	return cmd
}

func compare(opts compareOptions) ([]strategyView, error) {
	weather, err := cmdutil.ParseWeather(opts.weather)
	if err != nil {
		return nil, err
	}
	res := strategy.CompareStrategies(opts.raceLaps, opts.avgLap, opts.pitLaneDelta, weather)
	ret := make([]strategyView, 0, len(res))
	for _, s := range res {
		ret = append(ret, strategyView{
			RaceStrategy: s,
			PitStops:     s.PitStops(),
			AveragePace:  s.AveragePace(),
			RiskScore:    strategy.StrategyRisk(s.Stints, weather),
		})
	}
	return ret, nil
}

func runCompare(w io.Writer, opts compareOptions) error {
	res, err := compare(opts)
	if err != nil {
		return err
	}
	if opts.format == cmdutil.FormatJSON {
		return cmdutil.WriteJSON(w, res)
	}
	t := cmdutil.NewTable(w)
	t.AppendHeader(table.Row{"Pos", "Strategy", "Stints", "Stops", "Total (s)", "Avg pace", "Risk", "Score"})
	for _, s := range res {
		t.AppendRow(table.Row{
			s.Position, s.Name, stintSummary(s.Stints), s.PitStops,
			cmdutil.F(s.TotalTime, 1), cmdutil.F(s.AveragePace, 2), s.RiskLevel, s.RiskScore,
		})
	}
	t.Render()
	return nil
}

func stintSummary(stints []strategy.Stint) string {
	ret := ""
	for i, s := range stints {
		if i > 0 {
			ret += ", "
		}
		ret += fmt.Sprintf("%s %d-%d", s.Compound, s.StartLap, s.EndLap)
	}
	return ret
}

type undercutOptions struct {
	gap           float64
	pitAdvantage  float64
	tireAdvantage float64
	pitLaneDelta  float64
	format        string
}

type battle struct {
	Undercut strategy.PassAttempt `json:"undercut"`
	Overcut  strategy.PassAttempt `json:"overcut"`
}

func newUndercutCmd() *cobra.Command {
	opts := undercutOptions{}
	cmd := &cobra.Command{
		Use:   "undercut",
		Short: "evaluates undercut and overcut against the car ahead",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cmdutil.CheckFormat(opts.format); err != nil {
				return err
			}
			return runUndercut(cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().Float64Var(&opts.gap, "gap", 2.8, "gap to the car ahead in seconds")
	cmd.Flags().Float64Var(&opts.pitAdvantage, "pit-advantage", 1.2,
		"pace advantage per lap in seconds")
	cmd.Flags().Float64Var(&opts.tireAdvantage, "tire-advantage", 1.8,
		"fresh tire advantage in seconds")
	cmd.Flags().Float64Var(&opts.pitLaneDelta, "pit-delta", 22.5,
		"time lost in the pit lane in seconds")
	cmdutil.AddFormatFlag(cmd, &opts.format)
	return cmd
}

func evaluateBattle(opts undercutOptions) battle {
	return battle{
		Undercut: strategy.Undercut(opts.gap, opts.pitAdvantage, opts.tireAdvantage),
		Overcut:  strategy.Overcut(opts.gap, opts.pitAdvantage, opts.pitLaneDelta),
	}
}

func runUndercut(w io.Writer, opts undercutOptions) error {
	res := evaluateBattle(opts)
	if opts.format == cmdutil.FormatJSON {
		return cmdutil.WriteJSON(w, res)
	}
	t := cmdutil.NewTable(w)
	t.AppendHeader(table.Row{"Move", "Gained (s)", "Needed (s)", "Probability", "Works"})
	add := func(name string, p strategy.PassAttempt) {
		t.AppendRow(table.Row{
			name, cmdutil.F(p.Advantage, 2), cmdutil.F(p.Required, 2),
			cmdutil.F(p.Probability, 0) + "%", p.Success,
		})
	}
	add("Undercut", res.Undercut)
	add("Overcut", res.Overcut)
	t.Render()
	return nil
}
