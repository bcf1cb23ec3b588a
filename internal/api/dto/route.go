package dto

type RouteRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type EstimateResponse struct {
	Minutes   float64 `json:"minutes"`
	Formatted string  `json:"formatted"`
}

type RouteResponse struct {
	MapID            string           `json:"map_id"`
	MapURL           string           `json:"map_url"`
	DistanceKm       float64          `json:"distance"`
	DurationMinutes  float64          `json:"duration"`
	RouteCoordinates [][2]float64     `json:"route_coordinates"`
	Car              EstimateResponse `json:"car"`
	Bike             EstimateResponse `json:"bike"`
}
