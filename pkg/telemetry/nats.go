package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/nats-io/nats.go"

	"github.com/raceiq/raceiq-engine/log"
	"github.com/raceiq/raceiq-engine/pkg/model"
)

const DefaultSubjectPrefix = "riq.telemetry"

// Conn is the subset of *nats.Conn used for publishing.
type Conn interface {
	Publish(subj string, data []byte) error
}

var _ Conn = (*nats.Conn)(nil)

type NatsPublisher struct {
	conn    Conn
	subject string
	l       *log.Logger
	numSnd  int
}

func NewNatsPublisher(conn Conn, prefix, trackName string) *NatsPublisher {
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	return &NatsPublisher{
		conn:    conn,
		subject: prefix + "." + TrackSlug(trackName),
		l:       log.Default().Named("nats"),
	}
}

func (p *NatsPublisher) Subject() string {
	return p.subject
}

func (p *NatsPublisher) Publish(s model.TelemetrySample) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", p.subject, err)
	}
	p.numSnd++
	return nil
}

// Run publishes every sample from src until src is closed or ctx is done.
func (p *NatsPublisher) Run(ctx context.Context, src <-chan model.TelemetrySample) error {
	defer func() {
		p.l.Info("publisher done",
			log.String("subject", p.subject), log.Int("snd", p.numSnd))
	}()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case s, ok := <-src:
			if !ok {
				return nil
			}
			if err := p.Publish(s); err != nil {
				return err
			}
		}
	}
}

// TrackSlug converts a track name into a single NATS subject token.
// "Monaco Grand Prix" becomes "monaco-grand-prix".
func TrackSlug(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}
	ret := strings.TrimSuffix(b.String(), "-")
	if ret == "" {
		return "unknown"
	}
	return ret
}
