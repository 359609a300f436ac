package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/gofrs/uuid/v5"

	"github.com/raceiq/raceiq-engine/pkg/model"
	"github.com/raceiq/raceiq-engine/pkg/repository"
)

// Store keeps sessions in memory. The zero value is not usable, use New.
type Store struct {
	mu      sync.Mutex
	saved   []*model.Session // most recent first
	current *model.Session
}

var _ repository.Repository = (*Store)(nil)

func New() *Store {
	return &Store{saved: make([]*model.Session, 0, repository.MaxSaved)}
}

func (s *Store) Load(_ context.Context, id uuid.UUID) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexOf(id); idx >= 0 {
		return repository.Clone(s.saved[idx]), nil
	}
	return nil, repository.ErrSessionNotFound
}

func (s *Store) Save(_ context.Context, sess *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexOf(sess.ID); idx >= 0 {
		s.saved = slices.Delete(s.saved, idx, idx+1)
	}
	s.saved = slices.Insert(s.saved, 0, repository.Clone(sess))
	if len(s.saved) > repository.MaxSaved {
		s.saved = s.saved[:repository.MaxSaved]
	}
	return nil
}

func (s *Store) ListRecent(_ context.Context, n int) ([]*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n <= 0 || n > len(s.saved) {
		n = len(s.saved)
	}
	ret := make([]*model.Session, n)
	for i := range n {
		ret[i] = repository.Clone(s.saved[i])
	}
	return ret, nil
}

func (s *Store) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return repository.ErrSessionNotFound
	}
	s.saved = slices.Delete(s.saved, idx, idx+1)
	return nil
}

func (s *Store) Current(_ context.Context) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil, repository.ErrSessionNotFound
	}
	return repository.Clone(s.current), nil
}

func (s *Store) SetCurrent(_ context.Context, sess *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = repository.Clone(sess)
	return nil
}

func (s *Store) ClearCurrent(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	return nil
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) indexOf(id uuid.UUID) int {
	return slices.IndexFunc(s.saved, func(e *model.Session) bool { return e.ID == id })
}
