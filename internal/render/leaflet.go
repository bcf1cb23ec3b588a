// Package render turns a resolved route into a self-contained Leaflet page.
package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"map-routing-service/internal/domain"
)

const DefaultZoom = 13

//go:embed templates/map.html.tmpl
var templateFS embed.FS

var mapTemplate = template.Must(template.ParseFS(templateFS, "templates/map.html.tmpl"))

// MapView is everything drawn on a route map.
type MapView struct {
	Start      domain.Coordinates
	End        domain.Coordinates
	Path       []domain.Coordinates
	DistanceKm float64
	Car        domain.TravelEstimate
	Bike       domain.TravelEstimate
	Zoom       int
}

type mapData struct {
	Center     []float64
	Zoom       int
	Start      []float64
	End        []float64
	Path       [][]float64
	DistanceKm float64
	Car        domain.TravelEstimate
	Bike       domain.TravelEstimate
}

// Render produces the map document: centered on the start point, with
// start/end markers, the route polyline and two fixed info panels.
func Render(v MapView) ([]byte, error) {
	if len(v.Path) == 0 {
		return nil, errors.New("render map: path is empty")
	}

	zoom := v.Zoom
	if zoom <= 0 {
		zoom = DefaultZoom
	}

	path := make([][]float64, 0, len(v.Path))
	for _, c := range v.Path {
		path = append(path, c.LatLon())
	}

	data := mapData{
		Center:     v.Start.LatLon(),
		Zoom:       zoom,
		Start:      v.Start.LatLon(),
		End:        v.End.LatLon(),
		Path:       path,
		DistanceKm: v.DistanceKm,
		Car:        v.Car,
		Bike:       v.Bike,
	}

	var buf bytes.Buffer
	if err := mapTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render map: %w", err)
	}
	return buf.Bytes(), nil
}
