package domain

import (
	"fmt"
	"math"
)

// Mean Earth radius used for great-circle distances.
const earthRadiusKm = 6371.0

// Immutable geographic coordinates in degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Return coordinates as [lon, lat] for routing API compatibility.
func (c Coordinates) LonLat() []float64 { return []float64{c.Lon, c.Lat} }

// Return coordinates as [lat, lon], the order map libraries expect.
func (c Coordinates) LatLon() []float64 { return []float64{c.Lat, c.Lon} }

func (c Coordinates) String() string {
	return fmt.Sprintf("(%f, %f)", c.Lat, c.Lon)
}

// GeodesicKm returns the great-circle distance between a and b in kilometers.
func GeodesicKm(a, b Coordinates) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := lat2 - lat1
	dLon := toRadians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
