package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/raceiq/raceiq-engine/pkg/model"
)

var ErrInvalidSession = errors.New("invalid session")

type Params struct {
	DriverName  string
	CarNumber   string
	Team        string
	SessionType model.SessionType
	TrackName   string
	Weather     model.Weather
}

// New creates an empty session. Missing type and weather default to Practice and Dry.
func New(p Params, now time.Time) (*model.Session, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	s := &model.Session{
		ID:          id,
		DriverName:  p.DriverName,
		CarNumber:   p.CarNumber,
		Team:        p.Team,
		SessionType: p.SessionType,
		TrackName:   p.TrackName,
		Weather:     p.Weather,
		Laps:        []model.LapRecord{},
		CreatedAt:   now,
	}
	if s.SessionType == "" {
		s.SessionType = model.SessionPractice
	}
	if s.Weather == "" {
		s.Weather = model.WeatherDry
	}
	if err := Validate(s); err != nil {
		return nil, err
	}
	return s, nil
}

func Validate(s *model.Session) error {
	switch {
	case s.DriverName == "":
		return fmt.Errorf("%w: driver name is required", ErrInvalidSession)
	case s.TrackName == "":
		return fmt.Errorf("%w: track name is required", ErrInvalidSession)
	}
	switch s.SessionType {
	case model.SessionPractice, model.SessionQualifying, model.SessionRace:
	default:
		return fmt.Errorf("%w: unknown session type %q", ErrInvalidSession, s.SessionType)
	}
	return nil
}
