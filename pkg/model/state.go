package model

// TireState is derived from compound and usage, never persisted.
type TireState struct {
	Compound Compound `json:"compound"`
	LapsUsed int      `json:"lapsUsed"`
	Grip     float64  `json:"grip"` // percent
}

// FuelState is derived from fuel parameters and usage, never persisted.
type FuelState struct {
	InitialFuel       float64 `json:"initialFuel"`     // liters
	ConsumptionRate   float64 `json:"consumptionRate"` // liters per lap
	ThrottlePercent   float64 `json:"throttlePercent"`
	SavingMode        int     `json:"savingMode"`
	FuelUsed          float64 `json:"fuelUsed"`
	FuelRemaining     float64 `json:"fuelRemaining"`
	FuelLapsRemaining float64 `json:"fuelLapsRemaining"`
}
