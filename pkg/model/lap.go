package model

type Compound string

const (
	CompoundSoft         Compound = "Soft"
	CompoundMedium       Compound = "Medium"
	CompoundHard         Compound = "Hard"
	CompoundIntermediate Compound = "Intermediate"
	CompoundWet          Compound = "Wet"
)

var Compounds = []Compound{
	CompoundSoft, CompoundMedium, CompoundHard, CompoundIntermediate, CompoundWet,
}

type LapRecord struct {
	LapNumber      int      `json:"lapNumber"`
	LapTime        float64  `json:"lapTime"` // seconds
	Sector1        float64  `json:"sector1"`
	Sector2        float64  `json:"sector2"`
	Sector3        float64  `json:"sector3"`
	Speed          float64  `json:"speed"` // km/h
	Compound       Compound `json:"compound"`
	FuelLoad       float64  `json:"fuelLoad"` // liters
	IsPersonalBest bool     `json:"isPersonalBest"`
	IsSessionBest  bool     `json:"isSessionBest"`
	Notes          string   `json:"notes,omitempty"`
}

type LapDelta struct {
	Total   float64 `json:"total"`
	Sector1 float64 `json:"sector1"`
	Sector2 float64 `json:"sector2"`
	Sector3 float64 `json:"sector3"`
}

type PerformanceMetrics struct {
	BestLap       float64 `json:"bestLap"`
	AverageLap    float64 `json:"averageLap"`
	Consistency   float64 `json:"consistency"` // population stddev of lap times
	TopSpeed      float64 `json:"topSpeed"`
	AverageSpeed  float64 `json:"averageSpeed"`
	TotalDistance float64 `json:"totalDistance"` // km
}
