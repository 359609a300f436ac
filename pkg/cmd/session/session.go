package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/raceiq/raceiq-engine/log"
	"github.com/raceiq/raceiq-engine/pkg/cmd/cmdutil"
	"github.com/raceiq/raceiq-engine/pkg/model"
	"github.com/raceiq/raceiq-engine/pkg/repository"
	sess "github.com/raceiq/raceiq-engine/pkg/session"
)

var ErrNoCurrentSession = errors.New("no current session, use 'riq session create' first")

// repoCommand wraps fn so that it runs with the configured session store.
func repoCommand(fn func(ctx context.Context, repo repository.Repository, w io.Writer, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return cmdutil.WithRepository(cmd.Context(), func(repo repository.Repository) error {
			return fn(cmd.Context(), repo, cmd.OutOrStdout(), args)
		})
	}
}

func NewSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "records laps and manages saved sessions",
	}
	cmd.AddCommand(
		newCreateCmd(),
		newLapCmd(),
		newQuickLapCmd(),
		newStatsCmd(),
		newDeltaCmd(),
		newListCmd(),
		newShowCmd(),
		newDeleteCmd(),
		newSaveCmd(),
		newClearCmd(),
		newExportCmd(),
		newImportCmd(),
	)
	return cmd
}

func current(ctx context.Context, repo repository.Repository) (*model.Session, error) {
	s, err := repo.Current(ctx)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return nil, ErrNoCurrentSession
	}
	return s, err
}

// resolve returns the session with the given id or the current session if no id is given.
func resolve(ctx context.Context, repo repository.Repository, args []string) (*model.Session, error) {
	if len(args) == 0 {
		return current(ctx, repo)
	}
	id, err := uuid.FromString(args[0])
	if err != nil {
		return nil, fmt.Errorf("invalid session id %q: %w", args[0], err)
	}
	return repo.Load(ctx, id)
}

func newCreateCmd() *cobra.Command {
	var p sess.Params
	var sessionType, weather string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "starts a new current session",
		Args:  cobra.NoArgs,
		RunE: repoCommand(func(ctx context.Context, repo repository.Repository, w io.Writer, _ []string) error {
			var err error
			if p.SessionType, err = cmdutil.ParseSessionType(sessionType); err != nil {
				return err
			}
			if p.Weather, err = cmdutil.ParseWeather(weather); err != nil {
				return err
			}
			s, err := create(ctx, repo, p, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "Session %s created\n", s.ID)
			return nil
		}),
	}
	cmd.Flags().StringVar(&p.DriverName, "driver", "", "driver name")
	cmd.Flags().StringVar(&p.CarNumber, "car", "", "car number")
	cmd.Flags().StringVar(&p.Team, "team", "", "team name")
	cmd.Flags().StringVar(&p.TrackName, "track", "", "track name")
	cmd.Flags().StringVar(&sessionType, "type", string(model.SessionPractice),
		"session type (Practice, Qualifying, Race)")
	cmd.Flags().StringVar(&weather, "weather", string(model.WeatherDry),
		"weather (Dry, Light Rain, Heavy Rain, Cloudy, Sunny)")
	return cmd
}

func create(ctx context.Context, repo repository.Repository, p sess.Params, now time.Time) (
	*model.Session, error,
) {
	s, err := sess.New(p, now)
	if err != nil {
		return nil, err
	}
	if err := repo.SetCurrent(ctx, s); err != nil {
		return nil, err
	}
	log.Info("Session created",
		log.String("id", s.ID.String()),
		log.String("driver", s.DriverName),
		log.String("track", s.TrackName))
	return s, nil
}

func newListCmd() *cobra.Command {
	var limit int
	var format string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "lists saved sessions, most recent first",
		Args:  cobra.NoArgs,
		RunE: repoCommand(func(ctx context.Context, repo repository.Repository, w io.Writer, _ []string) error {
			if err := cmdutil.CheckFormat(format); err != nil {
				return err
			}
			return list(ctx, repo, w, limit, format)
		}),
	}
	cmd.Flags().IntVar(&limit, "limit", repository.MaxSaved, "max number of sessions (0 lists all)")
	cmdutil.AddFormatFlag(cmd, &format)
	return cmd
}

func list(ctx context.Context, repo repository.Repository, w io.Writer, limit int, format string) error {
	items, err := repo.ListRecent(ctx, limit)
	if err != nil {
		return err
	}
	if format == cmdutil.FormatJSON {
		return cmdutil.WriteJSON(w, items)
	}
	t := cmdutil.NewTable(w)
	t.AppendHeader(table.Row{"ID", "Created", "Driver", "Track", "Type", "Weather", "Laps", "Best"})
	for _, s := range items {
		best := "-"
		if l, ok := sess.BestLap(s.Laps); ok {
			best = cmdutil.LapTime(l.LapTime)
		}
		t.AppendRow(table.Row{
			s.ID, s.CreatedAt.Local().Format(time.DateTime), s.DriverName, s.TrackName,
			s.SessionType, s.Weather, len(s.Laps), best,
		})
	}
	t.Render()
	return nil
}

func newShowCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "shows the laps of the current or a saved session",
		Args:  cobra.MaximumNArgs(1),
		RunE: repoCommand(func(ctx context.Context, repo repository.Repository, w io.Writer, args []string) error {
			if err := cmdutil.CheckFormat(format); err != nil {
				return err
			}
			s, err := resolve(ctx, repo, args)
			if err != nil {
				return err
			}
			return show(w, s, format)
		}),
	}
	cmdutil.AddFormatFlag(cmd, &format)
	return cmd
}

func flag(b bool, mark string) string {
	if b {
		return mark
	}
	return ""
}

func show(w io.Writer, s *model.Session, format string) error {
	if format == cmdutil.FormatJSON {
		return cmdutil.WriteJSON(w, s)
	}
	fmt.Fprintf(w, "%s (#%s, %s) - %s %s, %s\n",
		s.DriverName, s.CarNumber, s.Team, s.TrackName, s.SessionType, s.Weather)
	t := cmdutil.NewTable(w)
	t.AppendHeader(table.Row{"Lap", "Time", "S1", "S2", "S3", "Speed", "Tire", "Fuel", "PB", "SB", "Notes"})
	for _, l := range s.Laps {
		t.AppendRow(table.Row{
			l.LapNumber, cmdutil.LapTime(l.LapTime),
			cmdutil.F(l.Sector1, 3), cmdutil.F(l.Sector2, 3), cmdutil.F(l.Sector3, 3),
			cmdutil.F(l.Speed, 1), l.Compound, cmdutil.F(l.FuelLoad, 1),
			flag(l.IsPersonalBest, "*"), flag(l.IsSessionBest, "*"), l.Notes,
		})
	}
	t.Render()
	return nil
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "deletes a saved session",
		Args:  cobra.ExactArgs(1),
		RunE: repoCommand(func(ctx context.Context, repo repository.Repository, w io.Writer, args []string) error {
			id, err := uuid.FromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid session id %q: %w", args[0], err)
			}
			if err := repo.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(w, "Session %s deleted\n", id)
			return nil
		}),
	}
}

func newSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "saves the current session",
		Args:  cobra.NoArgs,
		RunE: repoCommand(func(ctx context.Context, repo repository.Repository, w io.Writer, _ []string) error {
			s, err := save(ctx, repo)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "Session %s saved (%d laps)\n", s.ID, len(s.Laps))
			return nil
		}),
	}
}

func save(ctx context.Context, repo repository.Repository) (*model.Session, error) {
	s, err := current(ctx, repo)
	if err != nil {
		return nil, err
	}
	if err := repo.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "discards the current session",
		Args:  cobra.NoArgs,
		RunE: repoCommand(func(ctx context.Context, repo repository.Repository, w io.Writer, _ []string) error {
			if err := repo.ClearCurrent(ctx); err != nil {
				return err
			}
			fmt.Fprintln(w, "Current session cleared")
			return nil
		}),
	}
}
