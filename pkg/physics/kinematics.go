package physics

import "math"

const (
	IdleRPM         = 800.0
	MaxRPM          = 15000.0
	FinalDriveRatio = 3.5
	WheelDiameter   = 0.66 // meters
	MinGear         = 1
	MaxGear         = 8
)

// index 0 is neutral
var gearRatios = [...]float64{0, 3.2, 2.4, 1.9, 1.5, 1.2, 1.0, 0.85, 0.72}

// SpeedAndGearToRPM converts road speed (km/h) in the given gear to engine rpm.
// Gear 0 or standstill yields idle rpm. Gears outside 1..8 are clamped and the
// result is always within [IdleRPM, MaxRPM].
func SpeedAndGearToRPM(speed float64, gear int) float64 {
	if gear == 0 || speed == 0 {
		return IdleRPM
	}
	gear = max(MinGear, min(MaxGear, gear))
	wheelCircumference := math.Pi * WheelDiameter
	wheelRPM := (speed * 1000 / 3600) / wheelCircumference * 60
	engineRPM := wheelRPM * gearRatios[gear] * FinalDriveRatio
	return Clamp(engineRPM, IdleRPM, MaxRPM)
}

// GearForSpeed picks a gear for manual driving: one gear per 45 km/h.
func GearForSpeed(speed float64) int {
	g := int(math.Floor(speed/45)) + 1
	return max(MinGear, min(MaxGear, g))
}
