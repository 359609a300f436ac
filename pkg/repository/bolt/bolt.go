package bolt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.etcd.io/bbolt"
	berrors "go.etcd.io/bbolt/errors"

	"github.com/raceiq/raceiq-engine/pkg/model"
	"github.com/raceiq/raceiq-engine/pkg/repository"
)

var (
	sessionsBucketName = []byte("sessions")
	currentBucketName  = []byte("current")

	currentKey = []byte("current")
)

// entry is the stored form of a saved session. Seq orders saves.
type entry struct {
	Seq     uint64         `json:"seq"`
	SavedAt time.Time      `json:"savedAt"`
	Session *model.Session `json:"session"`
}

type Store struct {
	db *bbolt.DB
}

var _ repository.Repository = (*Store)(nil)

// Open opens (or creates) the bolt file.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt store %s: %w", path, err)
	}
	return New(db), nil
}

func New(db *bbolt.DB) *Store {
	return &Store{db: db}
}

func (bs *Store) Close() error {
	return bs.db.Close()
}

func bucket(tx *bbolt.Tx, name []byte) (*bbolt.Bucket, error) {
	if !tx.Writable() {
		bkt := tx.Bucket(name)
		if bkt == nil {
			return nil, berrors.ErrBucketNotFound
		}
		return bkt, nil
	}
	return tx.CreateBucketIfNotExists(name)
}

func (bs *Store) encode(data any) ([]byte, error) {
	return json.Marshal(data)
}

func (bs *Store) decode(data []byte, out any) error {
	return json.Unmarshal(data, out)
}

func (bs *Store) Load(_ context.Context, id uuid.UUID) (*model.Session, error) {
	var ret *model.Session
	err := bs.db.View(func(tx *bbolt.Tx) error {
		bkt, err := bucket(tx, sessionsBucketName)
		if errors.Is(err, berrors.ErrBucketNotFound) {
			return repository.ErrSessionNotFound
		} else if err != nil {
			return err
		}
		data := bkt.Get(id.Bytes())
		if data == nil {
			return repository.ErrSessionNotFound
		}
		var e entry
		if err := bs.decode(data, &e); err != nil {
			return err
		}
		ret = e.Session
		return nil
	})
	return ret, err
}

func (bs *Store) Save(_ context.Context, s *model.Session) error {
	return bs.db.Update(func(tx *bbolt.Tx) error {
		bkt, err := bucket(tx, sessionsBucketName)
		if err != nil {
			return err
		}
		seq, err := bkt.NextSequence()
		if err != nil {
			return err
		}
		encoded, err := bs.encode(&entry{Seq: seq, SavedAt: time.Now(), Session: s})
		if err != nil {
			return err
		}
		if err := bkt.Put(s.ID.Bytes(), encoded); err != nil {
			return err
		}
		return bs.prune(bkt)
	})
}

// prune removes the oldest entries beyond MaxSaved.
func (bs *Store) prune(bkt *bbolt.Bucket) error {
	entries, err := bs.entries(bkt)
	if err != nil {
		return err
	}
	for _, e := range entries[min(len(entries), repository.MaxSaved):] {
		if err := bkt.Delete(e.Session.ID.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

// entries returns all entries, most recent first.
func (bs *Store) entries(bkt *bbolt.Bucket) ([]*entry, error) {
	var ret []*entry
	err := bkt.ForEach(func(_, v []byte) error {
		var e *entry
		if err := bs.decode(v, &e); err != nil {
			return err
		}
		ret = append(ret, e)
		return nil
	})
	slices.SortFunc(ret, func(a, b *entry) int {
		switch {
		case a.Seq > b.Seq:
			return -1
		case a.Seq < b.Seq:
			return 1
		default:
			return 0
		}
	})
	return ret, err
}

func (bs *Store) ListRecent(_ context.Context, n int) ([]*model.Session, error) {
	ret := make([]*model.Session, 0)
	err := bs.db.View(func(tx *bbolt.Tx) error {
		bkt, err := bucket(tx, sessionsBucketName)
		if errors.Is(err, berrors.ErrBucketNotFound) {
			return nil
		} else if err != nil {
			return err
		}
		entries, err := bs.entries(bkt)
		if err != nil {
			return err
		}
		if n > 0 && n < len(entries) {
			entries = entries[:n]
		}
		for _, e := range entries {
			ret = append(ret, e.Session)
		}
		return nil
	})
	return ret, err
}

func (bs *Store) Delete(_ context.Context, id uuid.UUID) error {
	return bs.db.Update(func(tx *bbolt.Tx) error {
		bkt, err := bucket(tx, sessionsBucketName)
		if err != nil {
			return err
		}
		if bkt.Get(id.Bytes()) == nil {
			return repository.ErrSessionNotFound
		}
		return bkt.Delete(id.Bytes())
	})
}

func (bs *Store) Current(_ context.Context) (*model.Session, error) {
	var ret *model.Session
	err := bs.db.View(func(tx *bbolt.Tx) error {
		bkt, err := bucket(tx, currentBucketName)
		if errors.Is(err, berrors.ErrBucketNotFound) {
			return repository.ErrSessionNotFound
		} else if err != nil {
			return err
		}
		data := bkt.Get(currentKey)
		if data == nil {
			return repository.ErrSessionNotFound
		}
		return bs.decode(data, &ret)
	})
	return ret, err
}

func (bs *Store) SetCurrent(_ context.Context, s *model.Session) error {
	return bs.db.Update(func(tx *bbolt.Tx) error {
		bkt, err := bucket(tx, currentBucketName)
		if err != nil {
			return err
		}
		encoded, err := bs.encode(s)
		if err != nil {
			return err
		}
		return bkt.Put(currentKey, encoded)
	})
}

func (bs *Store) ClearCurrent(_ context.Context) error {
	return bs.db.Update(func(tx *bbolt.Tx) error {
		bkt, err := bucket(tx, currentBucketName)
		if err != nil {
			return err
		}
		return bkt.Delete(currentKey)
	})
}
