package telemetry

import (
	"context"
	"time"

	"github.com/raceiq/raceiq-engine/log"
	"github.com/raceiq/raceiq-engine/pkg/model"
)

const DefaultReplayInterval = 100 * time.Millisecond

// Replay emits samples on the returned channel, one per tick.
// The channel is closed when all samples are sent or ctx is done.
func Replay(
	ctx context.Context,
	samples []model.TelemetrySample,
	interval time.Duration,
) <-chan model.TelemetrySample {
	if interval <= 0 {
		interval = DefaultReplayInterval
	}
	ch := make(chan model.TelemetrySample)
	go func() {
		defer close(ch)
		l := log.GetFromContext(ctx).Named("replay")
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for i := range samples {
			select {
			case <-ctx.Done():
				l.Debug("replay cancelled", log.Int("sent", i))
				return
			case <-ticker.C:
			}
			select {
			case <-ctx.Done():
				l.Debug("replay cancelled", log.Int("sent", i))
				return
			case ch <- samples[i]:
			}
		}
		l.Debug("replay done", log.Int("sent", len(samples)))
	}()
	return ch
}
