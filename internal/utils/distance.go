package utils

import (
	"math"
)

func CalculateDistance(lat1, lon1, lat2, lon2 float64) float64 {
	return haversineDistance(lat1, lon1, lat2, lon2)
}

func haversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lon1Rad := lon1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	lon2Rad := lon2 * math.Pi / 180

	dLat := lat2Rad - lat1Rad
	dLon := lon2Rad - lon1Rad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKM * c
}

// EstimateETAMinutes returns distance / speed in minutes, or false when the
// speed is not positive.
func EstimateETAMinutes(distanceKM, speedKMH float64) (float64, bool) {
	if speedKMH <= 0 {
		return 0, false
	}
	return distanceKM / speedKMH * 60, true
}

// RoundTo rounds half away from zero to the given number of decimals.
func RoundTo(value float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(value*p) / p
}

func MetersToKM(meters int) float64 {
	return float64(meters) / 1000
}
