package model

// TelemetrySample is one 10 Hz frame of synthesized vehicle data.
//
//nolint:tagliatelle // keeps the export format of the dashboard
type TelemetrySample struct {
	Timestamp float64 `json:"timestamp"` // seconds since start
	Speed     float64 `json:"speed"`     // km/h
	RPM       float64 `json:"rpm"`
	Throttle  float64 `json:"throttle"` // percent
	Brake     float64 `json:"brake"`    // percent
	GForceX   float64 `json:"gForceX"`  // lateral
	GForceY   float64 `json:"gForceY"`  // vertical
	GForceZ   float64 `json:"gForceZ"`  // longitudinal
	Gear      int     `json:"gear"`
}

type GForce struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}
