package utils

import "math"

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// RoundCoordinate округляет координату до 6 знаков (~10 см), точнее карта не отдаёт
func RoundCoordinate(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
