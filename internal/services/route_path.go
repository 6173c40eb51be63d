package services

import (
	"math"

	"rutaviva/internal/models/db_models"
	"rutaviva/internal/models/response_models"
)

const earthRadiusKm = 6371.0

// sortMarkersByPath orders listings as a nearest-neighbor walk starting
// from the first listing in inventory order. Good enough for a handful
// of stops on a tourist map; this is not a TSP solver.
func sortMarkersByPath(listings []db_models.Listing) []response_models.MapMarker {
	markers := make([]response_models.MapMarker, 0, len(listings))
	if len(listings) == 0 {
		return markers
	}

	remaining := make([]db_models.Listing, len(listings))
	copy(remaining, listings)

	current := remaining[0]
	remaining = remaining[1:]
	markers = append(markers, markerFor(current, 0))

	for len(remaining) > 0 {
		nearest := 0
		nearestKm := haversineKm(current.Latitude, current.Longitude, remaining[0].Latitude, remaining[0].Longitude)
		for i := 1; i < len(remaining); i++ {
			km := haversineKm(current.Latitude, current.Longitude, remaining[i].Latitude, remaining[i].Longitude)
			if km < nearestKm {
				nearest = i
				nearestKm = km
			}
		}

		current = remaining[nearest]
		remaining = append(remaining[:nearest], remaining[nearest+1:]...)
		markers = append(markers, markerFor(current, math.Round(nearestKm*100)/100))
	}
	return markers
}

func markerFor(l db_models.Listing, legKm float64) response_models.MapMarker {
	return response_models.MapMarker{
		ID:        l.ID.String(),
		Title:     l.Title,
		Category:  l.Category,
		Latitude:  l.Latitude,
		Longitude: l.Longitude,
		LegKm:     legKm,
	}
}

func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
