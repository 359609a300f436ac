package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raceiq/raceiq-engine/pkg/model"
)

type recordingConn struct {
	subjects []string
	payloads [][]byte
	err      error
}

func (c *recordingConn) Publish(subj string, data []byte) error {
	if c.err != nil {
		return c.err
	}
	c.subjects = append(c.subjects, subj)
	c.payloads = append(c.payloads, data)
	return nil
}

func TestTrackSlug(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Monaco Grand Prix", "monaco-grand-prix"},
		{"Spa-Francorchamps", "spa-francorchamps"},
		{"  Buddh International Circuit ", "buddh-international-circuit"},
		{"a.b*c>d", "a-b-c-d"},
		{"", "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TrackSlug(tt.name))
		})
	}
}

func TestNatsPublisherRun(t *testing.T) {
	conn := &recordingConn{}
	p := NewNatsPublisher(conn, "", "Monza Circuit")
	assert.Equal(t, "riq.telemetry.monza-circuit", p.Subject())

	src := make(chan model.TelemetrySample, 2)
	src <- model.TelemetrySample{Timestamp: 0, Speed: 100, Gear: 3}
	src <- model.TelemetrySample{Timestamp: 0.1, Speed: 101, Gear: 3}
	close(src)

	require.NoError(t, p.Run(context.Background(), src))
	require.Len(t, conn.payloads, 2)

	var got model.TelemetrySample
	require.NoError(t, json.Unmarshal(conn.payloads[1], &got))
	assert.InDelta(t, 101.0, got.Speed, 1e-9)
	assert.Equal(t, []string{p.Subject(), p.Subject()}, conn.subjects)
}

func TestNatsPublisherError(t *testing.T) {
	errBoom := errors.New("boom")
	p := NewNatsPublisher(&recordingConn{err: errBoom}, "x", "Monaco")
	src := make(chan model.TelemetrySample, 1)
	src <- model.TelemetrySample{}
	err := p.Run(context.Background(), src)
	assert.ErrorIs(t, err, errBoom)
}
