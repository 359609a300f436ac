package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

type SessionType string

const (
	SessionPractice   SessionType = "Practice"
	SessionQualifying SessionType = "Qualifying"
	SessionRace       SessionType = "Race"
)

type Weather string

const (
	WeatherDry       Weather = "Dry"
	WeatherLightRain Weather = "Light Rain"
	WeatherHeavyRain Weather = "Heavy Rain"
	WeatherCloudy    Weather = "Cloudy"
	WeatherSunny     Weather = "Sunny"
)

type Session struct {
	ID          uuid.UUID   `json:"id"`
	DriverName  string      `json:"driverName"`
	CarNumber   string      `json:"carNumber"`
	Team        string      `json:"team"`
	SessionType SessionType `json:"sessionType"`
	TrackName   string      `json:"trackName"`
	Weather     Weather     `json:"weather"`
	Laps        []LapRecord `json:"laps"`
	CreatedAt   time.Time   `json:"createdAt"`
}
