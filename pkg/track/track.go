package track

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/raceiq/raceiq-engine/pkg/model"
	"github.com/raceiq/raceiq-engine/pkg/physics"
)

// ErrReservedName is returned when a track would replace a reference track.
var ErrReservedName = errors.New("track name belongs to a reference track")

type Catalog struct {
	mu     sync.RWMutex
	tracks []*model.Track
}

var defaultCatalog = NewCatalog(builtin...)

func NewCatalog(tracks ...*model.Track) *Catalog {
	c := &Catalog{}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range tracks {
		c.put(t)
	}
	return c
}

// Default returns the process wide catalog, preloaded with the reference tracks.
func Default() *Catalog {
	return defaultCatalog
}

// LookupByName resolves a track by its display name in the default catalog.
func LookupByName(name string) (*model.Track, bool) {
	return defaultCatalog.LookupByName(name)
}

func Names() []string {
	return defaultCatalog.Names()
}

func (c *Catalog) LookupByName(name string) (*model.Track, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	idx := slices.IndexFunc(c.tracks, func(t *model.Track) bool { return t.Name == name })
	if idx < 0 {
		return nil, false
	}
	return c.tracks[idx], true
}

func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ret := make([]string, len(c.tracks))
	for i, t := range c.tracks {
		ret[i] = t.Name
	}
	return ret
}

func (c *Catalog) All() []*model.Track {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.tracks)
}

// Add appends tracks. A custom track with an already known name replaces the
// old entry. Reference track names are refused and nothing is added.
func (c *Catalog) Add(tracks ...*model.Track) error {
	for _, t := range tracks {
		if IsReference(t.Name) {
			return fmt.Errorf("track %q: %w", t.Name, ErrReservedName)
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range tracks {
		c.put(t)
	}
	return nil
}

func (c *Catalog) put(t *model.Track) {
	idx := slices.IndexFunc(c.tracks, func(e *model.Track) bool { return e.Name == t.Name })
	if idx >= 0 {
		c.tracks[idx] = t
	} else {
		c.tracks = append(c.tracks, t)
	}
}

// IsReference reports whether name belongs to one of the reference tracks.
func IsReference(name string) bool {
	return slices.ContainsFunc(builtin, func(t *model.Track) bool { return t.Name == name })
}

type catalogFile struct {
	Tracks []*model.Track `yaml:"tracks"`
}

// LoadCatalog reads additional tracks from a YAML document with a top level
// "tracks" list. Every track needs a name and a positive length, every corner
// a gear within 1..8 and positive entry and exit speeds.
func LoadCatalog(r io.Reader) ([]*model.Track, error) {
	var f catalogFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode track catalog: %w", err)
	}
	for i, t := range f.Tracks {
		if t.Name == "" {
			return nil, fmt.Errorf("track #%d: missing name", i+1)
		}
		if t.Length <= 0 {
			return nil, fmt.Errorf("track %q: length must be positive", t.Name)
		}
		for _, c := range t.Corners {
			if err := validateCorner(c); err != nil {
				return nil, fmt.Errorf("track %q corner %d: %w", t.Name, c.Number, err)
			}
		}
	}
	return f.Tracks, nil
}

func validateCorner(c model.Corner) error {
	if c.Gear < physics.MinGear || c.Gear > physics.MaxGear {
		return fmt.Errorf("gear %d outside %d..%d", c.Gear, physics.MinGear, physics.MaxGear)
	}
	if c.EntrySpeed <= 0 || c.ExitSpeed <= 0 {
		return errors.New("entry and exit speed must be positive")
	}
	return nil
}
