package strategy

import (
	"math"

	"github.com/shopspring/decimal"
)

// Output precision for the derived table view
const (
	moneyPlaces    int32 = 2
	pricePlaces    int32 = 4
	percentPlaces  int32 = 1
	leveragePlaces int32 = 2
	volumePlaces   int32 = 2
)

// roundTo rounds half away from zero on the shortest decimal form of v.
// Infinities and NaN are returned unchanged since decimal cannot hold them.
func roundTo(v float64, places int32) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return v
	}
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

func roundMoney(v float64) float64   { return roundTo(v, moneyPlaces) }
func roundPrice(v float64) float64   { return roundTo(v, pricePlaces) }
func roundPercent(v float64) float64 { return roundTo(v, percentPlaces) }
func roundVolume(v float64) float64  { return roundTo(v, volumePlaces) }
