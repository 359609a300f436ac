package repository

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"

	"github.com/raceiq/raceiq-engine/pkg/model"
)

// MaxSaved is the number of saved sessions a repository keeps.
const MaxSaved = 10

var ErrSessionNotFound = errors.New("session not found")

// Repository stores saved sessions and the session currently worked on.
type Repository interface {
	Load(ctx context.Context, id uuid.UUID) (*model.Session, error)
	// Save stores the session as the most recent one and drops the oldest
	// sessions beyond MaxSaved. Saving a known session moves it to the front.
	Save(ctx context.Context, s *model.Session) error
	// ListRecent returns up to n sessions, most recently saved first.
	// n <= 0 means all.
	ListRecent(ctx context.Context, n int) ([]*model.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error

	Current(ctx context.Context) (*model.Session, error)
	SetCurrent(ctx context.Context, s *model.Session) error
	ClearCurrent(ctx context.Context) error

	Close() error
}

// Clone returns a deep copy of the session.
func Clone(s *model.Session) *model.Session {
	if s == nil {
		return nil
	}
	ret := *s
	ret.Laps = append(make([]model.LapRecord, 0, len(s.Laps)), s.Laps...)
	return &ret
}
