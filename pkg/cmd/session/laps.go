package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/raceiq/raceiq-engine/log"
	"github.com/raceiq/raceiq-engine/pkg/cmd/cmdutil"
	"github.com/raceiq/raceiq-engine/pkg/model"
	"github.com/raceiq/raceiq-engine/pkg/physics"
	"github.com/raceiq/raceiq-engine/pkg/repository"
	sess "github.com/raceiq/raceiq-engine/pkg/session"
	"github.com/raceiq/raceiq-engine/pkg/track"
)

func newLapCmd() *cobra.Command {
	var lap model.LapRecord
	var compound string
	cmd := &cobra.Command{
		Use:   "lap",
		Short: "records a lap on the current session",
		Args:  cobra.NoArgs,
		RunE: repoCommand(func(ctx context.Context, repo repository.Repository, w io.Writer, _ []string) error {
			lap.Compound = cmdutil.ParseCompound(compound)
			got, err := addLap(ctx, repo, lap)
			if err != nil {
				return err
			}
			printLap(w, got)
			return nil
		}),
	}
	cmd.Flags().Float64Var(&lap.LapTime, "time", 0, "lap time in seconds")
	cmd.Flags().Float64Var(&lap.Sector1, "s1", 0, "sector 1 time in seconds")
	cmd.Flags().Float64Var(&lap.Sector2, "s2", 0, "sector 2 time in seconds")
	cmd.Flags().Float64Var(&lap.Sector3, "s3", 0, "sector 3 time in seconds")
	cmd.Flags().Float64Var(&lap.Speed, "speed", 0, "average speed in km/h (default 250)")
	cmd.Flags().Float64Var(&lap.FuelLoad, "fuel", 0, "fuel load in liters (default 50)")
	cmd.Flags().StringVar(&compound, "compound", string(model.CompoundMedium), "tire compound")
	cmd.Flags().StringVar(&lap.Notes, "notes", "", "free text")
	//nolint:errcheck // flag exists
	cmd.MarkFlagRequired("time")
	return cmd
}

// addLap records the lap on the current session and stores it.
// Sector times not matching the lap time are logged but accepted.
func addLap(ctx context.Context, repo repository.Repository, lap model.LapRecord) (model.LapRecord, error) {
	if lap.LapTime <= 0 {
		return model.LapRecord{}, fmt.Errorf("lap time must be positive, got %v", lap.LapTime)
	}
	s, err := current(ctx, repo)
	if err != nil {
		return model.LapRecord{}, err
	}
	var mismatch *sess.SectorMismatchError
	if err := sess.ValidateSectors(lap); errors.As(err, &mismatch) {
		log.Warn("Sector times do not match lap time",
			log.Float64("lapTime", mismatch.LapTime),
			log.Float64("sectorSum", mismatch.SectorSum))
	}
	recorded := sess.AddLap(s, lap)
	if err := repo.SetCurrent(ctx, s); err != nil {
		return model.LapRecord{}, err
	}
	log.Debug("Lap recorded",
		log.Int("lap", recorded.LapNumber),
		log.Float64("time", recorded.LapTime),
		log.Bool("best", recorded.IsSessionBest))
	return recorded, nil
}

func printLap(w io.Writer, l model.LapRecord) {
	best := ""
	if l.IsSessionBest {
		best = " (session best)"
	}
	fmt.Fprintf(w, "Lap %d: %s%s\n", l.LapNumber, cmdutil.LapTime(l.LapTime), best)
}

func newQuickLapCmd() *cobra.Command {
	var kind string
	var seed uint64
	cmd := &cobra.Command{
		Use:   "quick-lap",
		Short: "records a synthetic lap (fast, average, slow)",
		Args:  cobra.NoArgs,
		RunE: repoCommand(func(ctx context.Context, repo repository.Repository, w io.Writer, _ []string) error {
			k, err := sess.ParseLapKind(kind)
			if err != nil {
				return err
			}
			rnd := physics.NewTimeSeededRand()
			if seed != 0 {
				rnd = physics.NewRand(seed)
			}
			got, err := quickLap(ctx, repo, k, rnd)
			if err != nil {
				return err
			}
			printLap(w, got)
			return nil
		}),
	}
	cmd.Flags().StringVar(&kind, "kind", string(sess.LapAverage), "lap kind (fast, average, slow)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 uses the clock)")
	return cmd
}

func quickLap(ctx context.Context, repo repository.Repository, kind sess.LapKind, rnd physics.Rand) (
	model.LapRecord, error,
) {
	s, err := current(ctx, repo)
	if err != nil {
		return model.LapRecord{}, err
	}
	return addLap(ctx, repo, sess.QuickLap(kind, s.TrackName, len(s.Laps)+1, rnd))
}

func newStatsCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "stats [id]",
		Short: "shows performance metrics of the current or a saved session",
		Args:  cobra.MaximumNArgs(1),
		RunE: repoCommand(func(ctx context.Context, repo repository.Repository, w io.Writer, args []string) error {
			if err := cmdutil.CheckFormat(format); err != nil {
				return err
			}
			s, err := resolve(ctx, repo, args)
			if err != nil {
				return err
			}
			return stats(w, s, format)
		}),
	}
	cmdutil.AddFormatFlag(cmd, &format)
	return cmd
}

func metrics(s *model.Session) model.PerformanceMetrics {
	t, _ := track.Default().LookupByName(s.TrackName)
	return sess.Aggregate(s.Laps, t)
}

func stats(w io.Writer, s *model.Session, format string) error {
	m := metrics(s)
	if format == cmdutil.FormatJSON {
		return cmdutil.WriteJSON(w, m)
	}
	t := cmdutil.NewTable(w)
	t.AppendHeader(table.Row{"Laps", "Best", "Average", "Consistency (s)", "Top speed", "Avg speed", "Distance (km)"})
	t.AppendRow(table.Row{
		len(s.Laps), cmdutil.LapTime(m.BestLap), cmdutil.LapTime(m.AverageLap),
		cmdutil.F(m.Consistency, 3), cmdutil.F(m.TopSpeed, 1), cmdutil.F(m.AverageSpeed, 1),
		cmdutil.F(m.TotalDistance, 3),
	})
	t.Render()
	return nil
}

func newDeltaCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "delta <lap> <reference-lap>",
		Short: "compares two laps of the current session",
		Args:  cobra.ExactArgs(2),
		RunE: repoCommand(func(ctx context.Context, repo repository.Repository, w io.Writer, args []string) error {
			if err := cmdutil.CheckFormat(format); err != nil {
				return err
			}
			s, err := current(ctx, repo)
			if err != nil {
				return err
			}
			d, err := delta(s, args[0], args[1])
			if err != nil {
				return err
			}
			if format == cmdutil.FormatJSON {
				return cmdutil.WriteJSON(w, d)
			}
			t := cmdutil.NewTable(w)
			t.AppendHeader(table.Row{"Total", "S1", "S2", "S3"})
			t.AppendRow(table.Row{
				signed(d.Total), signed(d.Sector1), signed(d.Sector2), signed(d.Sector3),
			})
			t.Render()
			return nil
		}),
	}
	cmdutil.AddFormatFlag(cmd, &format)
	return cmd
}

func delta(s *model.Session, lapArg, refArg string) (model.LapDelta, error) {
	find := func(arg string) (model.LapRecord, error) {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return model.LapRecord{}, fmt.Errorf("invalid lap number %q", arg)
		}
		l, ok := sess.FindLap(s.Laps, n)
		if !ok {
			return model.LapRecord{}, fmt.Errorf("lap %d not found", n)
		}
		return l, nil
	}
	a, err := find(lapArg)
	if err != nil {
		return model.LapDelta{}, err
	}
	b, err := find(refArg)
	if err != nil {
		return model.LapDelta{}, err
	}
	return sess.LapDelta(a, b), nil
}

func signed(v float64) string {
	return fmt.Sprintf("%+.3f", v)
}
