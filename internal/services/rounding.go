package services

import "math"

// Hours are rounded to 4 decimals before the rate multiplication so
// sub-cent precision survives it; money is rounded to 2 decimals after.
// These are the only two rounding points in the billing math.

func roundHours(h float64) float64 {
	return math.Round(h*10000) / 10000
}

func roundMoney(m float64) float64 {
	return math.Round(m*100) / 100
}
