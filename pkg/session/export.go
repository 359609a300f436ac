package session

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"

	"github.com/gofrs/uuid/v5"

	"github.com/raceiq/raceiq-engine/pkg/model"
)

var whitespace = regexp.MustCompile(`\s+`)

// ExportFileName builds the download name, e.g. raceiq_Monaco_Grand_Prix_Race_2024-05-26.json
func ExportFileName(s *model.Session) string {
	return fmt.Sprintf("raceiq_%s_%s_%s.json",
		whitespace.ReplaceAllString(s.TrackName, "_"),
		s.SessionType,
		s.CreatedAt.UTC().Format("2006-01-02"))
}

// Export writes the session as indented JSON. Values keep full precision.
func Export(w io.Writer, s *model.Session) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("export session: %w", err)
	}
	return nil
}

// Import reads a session written by Export.
// Sessions without an id get a new one.
func Import(r io.Reader) (*model.Session, error) {
	var s model.Session
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("import session: %w", err)
	}
	if s.ID.IsNil() {
		id, err := uuid.NewV4()
		if err != nil {
			return nil, err
		}
		s.ID = id
	}
	if s.Laps == nil {
		s.Laps = []model.LapRecord{}
	}
	if err := Validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}
