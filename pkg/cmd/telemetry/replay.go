package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/raceiq/raceiq-engine/log"
	"github.com/raceiq/raceiq-engine/pkg/cmd/cmdutil"
	"github.com/raceiq/raceiq-engine/pkg/config"
	"github.com/raceiq/raceiq-engine/pkg/model"
	"github.com/raceiq/raceiq-engine/pkg/telemetry"
	"github.com/raceiq/raceiq-engine/pkg/utils"
	"github.com/raceiq/raceiq-engine/pkg/utils/broadcast"
)

var errNoSubscribers = errors.New("nothing to replay to: --quiet needs --nats-url")

type replayOptions struct {
	generateOptions
	interval time.Duration
	quiet    bool
}

func newReplayCmd() *cobra.Command {
	opts := replayOptions{}
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "replays synthesized telemetry in real time",
		Long: `Generates telemetry and emits one sample per interval.
Samples are printed and, if --nats-url is given, published to NATS on
<nats-subject>.<track>.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.quiet && config.NatsURL == "" {
				return errNoSubscribers
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			var conn telemetry.Conn
			if config.NatsURL != "" {
				nc, err := connectNats(ctx, config.NatsURL)
				if err != nil {
					return err
				}
				defer nc.Drain() //nolint:errcheck // best effort on shutdown
				conn = nc
			}
			out := cmd.OutOrStdout()
			if opts.quiet {
				out = nil
			}
			return replay(ctx, opts, out, conn)
		},
	}
	cmd.Flags().Float64Var(&opts.duration, "duration", 120, "duration in seconds (max 3600)")
	cmd.Flags().StringVar(&opts.trackName, "track", "", "track name")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed (0 uses the clock)")
	cmd.Flags().DurationVar(&opts.interval, "interval", telemetry.DefaultReplayInterval,
		"time between two samples")
	cmd.Flags().BoolVar(&opts.quiet, "quiet", false, "do not print samples")
	cmd.Flags().StringVar(&config.NatsURL, "nats-url", "", "publish samples to this NATS server")
	cmd.Flags().StringVar(&config.NatsSubject, "nats-subject", telemetry.DefaultSubjectPrefix,
		"subject prefix for published samples")
	return cmd
}

func connectNats(ctx context.Context, url string) (*nats.Conn, error) {
	if addr := utils.ExtractFromNatsURL(url); addr != "" {
		if err := utils.WaitForTCP(ctx, addr, cmdutil.WaitTimeout()); err != nil {
			return nil, fmt.Errorf("nats not ready: %w", err)
		}
	}
	nc, err := nats.Connect(url, nats.Name("riq"))
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	log.Info("Connected to NATS", log.String("url", nc.ConnectedUrl()))
	return nc, nil
}

// replay feeds the samples through a broadcast server. Subscribers are a
// printer (w != nil) and a NATS publisher (conn != nil).
func replay(ctx context.Context, opts replayOptions, w io.Writer, conn telemetry.Conn) error {
	if w == nil && conn == nil {
		return errNoSubscribers
	}
	samples := generate(ctx, opts.generateOptions, newRand(opts.seed))
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	src := telemetry.Replay(ctx, samples, opts.interval)
	bcst := broadcast.NewServer(ctx, "telemetry", src,
		broadcast.WithLogger[model.TelemetrySample](
			log.GetFromContext(ctx).Named("broadcast")))
	defer bcst.Close()

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	if w != nil {
		ch := bcst.Subscribe()
		wg.Add(1)
		go func() {
			defer wg.Done()
			for s := range ch {
				fmt.Fprintf(w, "%6.1fs %6.1f km/h %5.0f rpm gear %d thr %5.1f brk %5.1f\n",
					s.Timestamp, s.Speed, s.RPM, s.Gear, s.Throttle, s.Brake)
			}
		}()
	}
	if conn != nil {
		pub := telemetry.NewNatsPublisher(conn, config.NatsSubject, opts.trackName)
		log.Info("Publishing telemetry", log.String("subject", pub.Subject()))
		ch := bcst.Subscribe()
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := pub.Run(ctx, ch); err != nil {
				log.GetFromContext(ctx).Error("Publishing telemetry failed",
					log.String("subject", pub.Subject()), log.ErrorField(err))
				errs <- err
				cancel()
			}
		}()
	}
	wg.Wait()
	close(errs)
	return <-errs
}
