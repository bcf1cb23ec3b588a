package domain

import (
	"fmt"
	"math"
)

// TravelMode is one of the fixed modes estimates are computed for.
type TravelMode string

const (
	ModeCar  TravelMode = "car"
	ModeBike TravelMode = "bike"
)

const (
	carSpeedKmh  = 60.0
	bikeSpeedKmh = 30.0
)

// Speed returns the constant speed in km/h assumed for the mode.
func (m TravelMode) Speed() float64 {
	switch m {
	case ModeBike:
		return bikeSpeedKmh
	default:
		return carSpeedKmh
	}
}

// A naive constant-speed travel time for a single mode.
type TravelEstimate struct {
	Mode      TravelMode
	Minutes   float64
	Formatted string
}

// CalculateTime returns the minutes needed to cover distanceKm at speedKmh.
func CalculateTime(distanceKm, speedKmh float64) float64 {
	return (distanceKm / speedKmh) * 60
}

// FormatTime renders minutes as "{hours}h:{minutes}m".
// Both parts are truncated, sub-minute precision is dropped.
func FormatTime(minutes float64) string {
	hours := int(math.Floor(minutes / 60))
	remaining := int(math.Mod(minutes, 60))
	return fmt.Sprintf("%dh:%dm", hours, remaining)
}

func EstimateFor(mode TravelMode, distanceKm float64) TravelEstimate {
	minutes := CalculateTime(distanceKm, mode.Speed())
	return TravelEstimate{
		Mode:      mode,
		Minutes:   minutes,
		Formatted: FormatTime(minutes),
	}
}

// Estimates returns the car and bike estimates for a distance, in that order.
func Estimates(distanceKm float64) (car, bike TravelEstimate) {
	return EstimateFor(ModeCar, distanceKm), EstimateFor(ModeBike, distanceKm)
}
