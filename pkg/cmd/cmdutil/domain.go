package cmdutil

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raceiq/raceiq-engine/log"
	"github.com/raceiq/raceiq-engine/pkg/degradation"
	"github.com/raceiq/raceiq-engine/pkg/model"
	"github.com/raceiq/raceiq-engine/pkg/track"
)

// ParseCompound matches s case-insensitively against the known compounds.
// Unknown names are passed through and use the Medium characteristics.
func ParseCompound(s string) model.Compound {
	for _, c := range model.Compounds {
		if strings.EqualFold(string(c), s) {
			return c
		}
	}
	log.Warn("Unknown compound, using Medium characteristics", log.String("compound", s))
	return model.Compound(s)
}

// TrackLength returns the length of the named track or 0 if it is unknown.
func TrackLength(name string) float64 {
	if name == "" {
		return 0
	}
	t, ok := track.Default().LookupByName(name)
	if !ok {
		log.Warn("Unknown track, ignoring track length", log.String("track", name))
		return 0
	}
	return t.Length
}

// AddFuelFlags registers the fuel parameters, defaulting to degradation.DefaultFuelParams.
func AddFuelFlags(cmd *cobra.Command, p *degradation.FuelParams) {
	def := degradation.DefaultFuelParams()
	cmd.Flags().Float64Var(&p.InitialFuel, "initial", def.InitialFuel, "initial fuel in liters")
	cmd.Flags().Float64Var(&p.ConsumptionRate, "rate", def.ConsumptionRate,
		"consumption rate in liters per lap")
	cmd.Flags().Float64Var(&p.Throttle, "throttle", def.Throttle, "average throttle in percent")
	cmd.Flags().IntVar(&p.SavingMode, "saving", def.SavingMode, "fuel saving mode (0, 1, 2)")
}

var weathers = []model.Weather{
	model.WeatherDry, model.WeatherLightRain, model.WeatherHeavyRain,
	model.WeatherCloudy, model.WeatherSunny,
}

func ParseWeather(s string) (model.Weather, error) {
	for _, w := range weathers {
		if strings.EqualFold(string(w), s) {
			return w, nil
		}
	}
	return "", fmt.Errorf("unknown weather %q", s)
}

var sessionTypes = []model.SessionType{
	model.SessionPractice, model.SessionQualifying, model.SessionRace,
}

func ParseSessionType(s string) (model.SessionType, error) {
	for _, st := range sessionTypes {
		if strings.EqualFold(string(st), s) {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown session type %q", s)
}
