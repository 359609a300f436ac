package strategy

import (
	"math"

	"github.com/raceiq/raceiq-engine/pkg/physics"
)

const (
	minProbability = 5.0
	maxProbability = 95.0
	// laps the car stays out before the rival pits
	overcutStayOut = 3
)

type PassAttempt struct {
	Success     bool    `json:"success"`
	Probability float64 `json:"probability"` // percent
	Advantage   float64 `json:"advantage"`   // seconds gained
	Required    float64 `json:"required"`    // seconds needed
}

func probability(gained, required float64) float64 {
	p := gained / required * 100
	if math.IsNaN(p) {
		return minProbability
	}
	return physics.Clamp(p, minProbability, maxProbability)
}

// Undercut evaluates pitting before the car ahead.
func Undercut(gap, pitAdvantage, freshTireAdvantage float64) PassAttempt {
	adv := pitAdvantage + freshTireAdvantage
	return PassAttempt{
		Success:     adv > gap,
		Probability: probability(adv, gap),
		Advantage:   adv,
		Required:    gap,
	}
}

// Overcut evaluates staying out while the car ahead pits.
func Overcut(gap, pitAdvantage, pitLaneDelta float64) PassAttempt {
	trackPos := gap + pitLaneDelta
	gained := pitAdvantage * overcutStayOut
	return PassAttempt{
		Success:     gained > trackPos,
		Probability: probability(gained, trackPos),
		Advantage:   gained,
		Required:    trackPos,
	}
}
