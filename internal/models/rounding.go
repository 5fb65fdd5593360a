package models

import (
	"math"

	"github.com/shopspring/decimal"
)

// RoundTo rounds half away from zero to the given number of decimal places
func RoundTo(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

// RoundHalfPoint rounds to the nearest 0.5 with halves going up
func RoundHalfPoint(v float64) float64 {
	return RoundHalfUp(v*2) / 2
}

// RoundHalfUp rounds to the nearest integer with halves going toward +Inf
func RoundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
