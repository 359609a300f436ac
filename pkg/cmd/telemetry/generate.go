package telemetry

import (
	"context"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/raceiq/raceiq-engine/log"
	"github.com/raceiq/raceiq-engine/pkg/cmd/cmdutil"
	"github.com/raceiq/raceiq-engine/pkg/model"
	"github.com/raceiq/raceiq-engine/pkg/physics"
	"github.com/raceiq/raceiq-engine/pkg/telemetry"
)

const instrumentationName = "github.com/raceiq/raceiq-engine/pkg/cmd/telemetry"

type generateOptions struct {
	duration  float64
	trackName string
	seed      uint64
	every     int
	format    string
}

func newGenerateCmd() *cobra.Command {
	opts := generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "synthesizes telemetry samples at 10 Hz",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cmdutil.CheckFormat(opts.format); err != nil {
				return err
			}
			samples := generate(cmd.Context(), opts, newRand(opts.seed))
			return writeSamples(cmd.OutOrStdout(), samples, opts.every, opts.format)
		},
	}
	cmd.Flags().Float64Var(&opts.duration, "duration", 9, "duration in seconds (max 3600)")
	cmd.Flags().StringVar(&opts.trackName, "track", "", "track name")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed (0 uses the clock)")
	cmd.Flags().IntVar(&opts.every, "every", 1, "print every n-th sample (table output)")
	cmdutil.AddFormatFlag(cmd, &opts.format)
	return cmd
}

func generate(ctx context.Context, opts generateOptions, rnd physics.Rand) []model.TelemetrySample {
	attrs := []attribute.KeyValue{
		attribute.String("track", opts.trackName),
		attribute.Float64("duration", opts.duration),
	}
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "generate",
		trace.WithAttributes(attrs...))
	defer span.End()

	g := telemetry.NewGenerator(
		telemetry.WithTrack(resolveTrack(opts.trackName)),
		telemetry.WithRand(rnd))
	samples := g.Generate(opts.duration)

	span.SetAttributes(attribute.Int("samples", len(samples)))
	counter, err := otel.Meter(instrumentationName).Int64Counter("riq.telemetry.samples",
		metric.WithDescription("Number of generated telemetry samples"),
		metric.WithUnit("{sample}"))
	if err == nil {
		counter.Add(ctx, int64(len(samples)), metric.WithAttributes(attrs[0]))
	}
	log.Debug("telemetry generated",
		log.String("track", opts.trackName),
		log.Int("samples", len(samples)))
	return samples
}
