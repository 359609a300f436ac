package telemetry

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/raceiq/raceiq-engine/pkg/cmd/cmdutil"
	"github.com/raceiq/raceiq-engine/pkg/model"
	"github.com/raceiq/raceiq-engine/pkg/physics"
	"github.com/raceiq/raceiq-engine/pkg/telemetry"
)

type manualOptions struct {
	throttle float64
	brake    float64
	steps    int
	seed     uint64
	format   string
}

func newManualCmd() *cobra.Command {
	opts := manualOptions{}
	cmd := &cobra.Command{
		Use:   "manual",
		Short: "drives the car with fixed pedal inputs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cmdutil.CheckFormat(opts.format); err != nil {
				return err
			}
			return manual(cmd.OutOrStdout(), opts, newRand(opts.seed))
		},
	}
	cmd.Flags().Float64Var(&opts.throttle, "throttle", 80, "throttle input in percent")
	cmd.Flags().Float64Var(&opts.brake, "brake", 0, "brake input in percent")
	cmd.Flags().IntVar(&opts.steps, "steps", 10, "number of 100ms steps")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed (0 uses the clock)")
	cmdutil.AddFormatFlag(cmd, &opts.format)
	return cmd
}

func manual(w io.Writer, opts manualOptions, rnd physics.Rand) error {
	state := telemetry.NewManualState(rnd)
	samples := make([]model.TelemetrySample, 0, max(opts.steps, 0))
	for range max(opts.steps, 0) {
		samples = append(samples, state.Step(opts.throttle, opts.brake))
	}
	return writeSamples(w, samples, 1, opts.format)
}
