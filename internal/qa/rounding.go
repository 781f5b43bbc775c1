package qa

import (
	"math"
	"strings"
)

// roundingGrid maps a canonical unit to the shopping grid its amounts are
// rounded onto. Gram and milliliter grids widen with the amount, handled in
// RoundUpForShopping; everything listed here uses a single grid. New units
// are additive entries, not new branches.
var roundingGrid = map[string]float64{
	"cup":  0.25,
	"tbsp": 1,
	"tsp":  0.5,
	"lb":   0.5,
	"oz":   1,
}

// unitAliases folds common spellings onto canonical unit names.
var unitAliases = map[string]string{
	"grams":       "g",
	"gram":        "g",
	"milliliters": "ml",
	"milliliter":  "ml",
	"cups":        "cup",
	"tablespoons": "tbsp",
	"tablespoon":  "tbsp",
	"teaspoons":   "tsp",
	"teaspoon":    "tsp",
	"pounds":      "lb",
	"pound":       "lb",
	"lbs":         "lb",
	"ounces":      "oz",
	"ounce":       "oz",
}

// gridEpsilon keeps exact grid multiples from being pushed a full step up by
// floating-point noise.
const gridEpsilon = 1e-9

// RoundUpForShopping rounds an ingredient amount up to a practical shopping
// quantity. Always a ceiling onto the unit's grid, never down: buying
// slightly more is fine, under-buying is not. Unknown units are treated as
// count-like and rounded up to whole units.
func RoundUpForShopping(amount float64, unit string) float64 {
	if amount <= 0 {
		return 0
	}

	grid := 1.0
	switch u := canonicalUnit(unit); u {
	case "g":
		switch {
		case amount <= 100:
			grid = 10
		case amount <= 300:
			grid = 25
		default:
			grid = 50
		}
	case "ml":
		if amount <= 250 {
			grid = 25
		} else {
			grid = 50
		}
	default:
		if g, ok := roundingGrid[u]; ok {
			grid = g
		}
	}

	return math.Ceil(amount/grid-gridEpsilon) * grid
}

func canonicalUnit(unit string) string {
	u := strings.ToLower(strings.TrimSpace(unit))
	if alias, ok := unitAliases[u]; ok {
		return alias
	}
	return u
}
