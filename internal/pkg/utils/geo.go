package utils

import "math"

const earthRadiusKm = 6371.0

// HaversineDistanceKm computes the great-circle distance between two
// points in kilometers.
func HaversineDistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLng := (lng2 - lng1) * math.Pi / 180.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLng/2)*math.Sin(dLng/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(a)))
}

// HaversineDistanceMeters computes the great-circle distance in meters.
func HaversineDistanceMeters(lat1, lng1, lat2, lng2 float64) float64 {
	return HaversineDistanceKm(lat1, lng1, lat2, lng2) * 1000
}

// RoundKm rounds a kilometer distance to two decimals for display.
func RoundKm(km float64) float64 {
	return math.Round(km*100) / 100
}

// RoundMeters rounds a meter distance to the nearest integer.
func RoundMeters(m float64) int {
	return int(math.Round(m))
}

// ValidateCoordinates checks that a coordinate pair is on the globe.
func ValidateCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// ValidateRadiusMeters checks a search radius. Zero is allowed and
// matches only exactly coincident points.
func ValidateRadiusMeters(radius float64) bool {
	return radius >= 0
}
