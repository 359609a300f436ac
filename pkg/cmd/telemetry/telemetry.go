package telemetry

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/raceiq/raceiq-engine/log"
	"github.com/raceiq/raceiq-engine/pkg/cmd/cmdutil"
	"github.com/raceiq/raceiq-engine/pkg/model"
	"github.com/raceiq/raceiq-engine/pkg/physics"
	"github.com/raceiq/raceiq-engine/pkg/track"
)

func NewTelemetryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "telemetry",
		Short: "synthesize, replay and drive telemetry",
	}
	cmd.AddCommand(newGenerateCmd(), newReplayCmd(), newManualCmd())
	return cmd
}

// resolveTrack returns nil for unknown or empty names.
// The generator falls back to its track independent profile in that case.
func resolveTrack(name string) *model.Track {
	if name == "" {
		return nil
	}
	t, ok := track.Default().LookupByName(name)
	if !ok {
		log.Warn("Unknown track, using generic speed profile", log.String("track", name))
		return nil
	}
	return t
}

func newRand(seed uint64) physics.Rand {
	if seed == 0 {
		return physics.NewTimeSeededRand()
	}
	return physics.NewRand(seed)
}

func writeSamples(w io.Writer, samples []model.TelemetrySample, every int, format string) error {
	if format == cmdutil.FormatJSON {
		return cmdutil.WriteJSON(w, samples)
	}
	every = max(every, 1)
	t := cmdutil.NewTable(w)
	t.AppendHeader(table.Row{"t (s)", "Speed", "RPM", "Gear", "Throttle", "Brake", "G lat", "G vert", "G long"})
	for i, s := range samples {
		if i%every != 0 {
			continue
		}
		t.AppendRow(table.Row{
			cmdutil.F(s.Timestamp, 1), cmdutil.F(s.Speed, 1), cmdutil.F(s.RPM, 0), s.Gear,
			cmdutil.F(s.Throttle, 1), cmdutil.F(s.Brake, 1),
			cmdutil.F(s.GForceX, 2), cmdutil.F(s.GForceY, 2), cmdutil.F(s.GForceZ, 2),
		})
	}
	if len(samples) > 0 {
		top := lo.MaxBy(samples, func(a, b model.TelemetrySample) bool { return a.Speed > b.Speed })
		avg := lo.SumBy(samples, func(s model.TelemetrySample) float64 { return s.Speed }) /
			float64(len(samples))
		t.AppendFooter(table.Row{"", "top " + cmdutil.F(top.Speed, 1), "", "",
			"avg " + cmdutil.F(avg, 1)})
	}
	t.Render()
	return nil
}
