package extract

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/labelscope/labelscope/internal/model"
)

// Unit alternatives are ordered longest-first so "milliliters" is never
// consumed as a bare "l".
var volumeRe = regexp.MustCompile(`(\d+\.?\d*)\s*(milliliters?|fluid\s*ounces?|litres?|liters?|fl\s*oz|ounces?|pints?|quarts?|gallons?|ml|oz|pt|qt|gal|l)`)

var spaceCollapseRe = regexp.MustCompile(`\s+`)

// Conversion factors to milliliters
var unitToML = map[string]float64{
	"ml":           1.0,
	"milliliter":   1.0,
	"milliliters":  1.0,
	"l":            1000.0,
	"liter":        1000.0,
	"liters":       1000.0,
	"litre":        1000.0,
	"litres":       1000.0,
	"fl oz":        29.5735,
	"oz":           29.5735,
	"ounce":        29.5735,
	"ounces":       29.5735,
	"fluid ounce":  29.5735,
	"fluid ounces": 29.5735,
	"pt":           473.176,
	"pint":         473.176,
	"pints":        473.176,
	"qt":           946.353,
	"quart":        946.353,
	"quarts":       946.353,
	"gal":          3785.41,
	"gallon":       3785.41,
	"gallons":      3785.41,
}

// ExtractVolume finds the first volume statement in text and returns the
// amount with its unit as written (lower-cased, spacing collapsed).
func ExtractVolume(text string) (float64, string, bool) {
	m := volumeRe.FindStringSubmatch(strings.ToLower(text))
	if m == nil {
		return 0, "", false
	}
	amount, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, "", false
	}
	unit := spaceCollapseRe.ReplaceAllString(strings.TrimSpace(m[2]), " ")
	return amount, unit, true
}

// ToMilliliters converts an amount in the given unit to milliliters
func ToMilliliters(amount float64, unit string) (float64, error) {
	factor, ok := unitToML[strings.ToLower(strings.TrimSpace(unit))]
	if !ok {
		return 0, fmt.Errorf("unknown unit: %q", unit)
	}
	return amount * factor, nil
}

// ParseNetContents extracts and converts a net-contents statement like
// "750 mL" or "25.4 fl oz" to milliliters in one step
func ParseNetContents(text string) (float64, bool) {
	amount, unit, ok := ExtractVolume(text)
	if !ok {
		return 0, false
	}
	ml, err := ToMilliliters(amount, unit)
	if err != nil {
		return 0, false
	}
	return ml, true
}

// 27 CFR 5.47a - approved standards of fill for distilled spirits, in ml
var spiritsStandardSizesML = []float64{
	3750, 3000, 2000, 1800, 1750, 1500, 1000, 945, 900,
	750, 720, 710, 700, 570, 500, 475, 375, 355, 350,
	331, 250, 200, 187, 100, 50,
}

// 27 CFR 4.71 - approved standards of fill for wine, in ml
var wineStandardSizesML = []float64{
	3000, 2250, 1800, 1500, 1000, 750, 720, 700, 620, 600,
	568, 550, 500, 473, 375, 360, 355, 330, 300, 250,
	200, 187, 180, 100, 50,
}

// DefaultSizeTolerance absorbs unit-conversion rounding when comparing
// against the standards-of-fill tables
const DefaultSizeTolerance = 1.0

// IsStandardSize reports whether a container volume is an approved
// standard of fill for the product type. Beer has no standards of fill
// (27 CFR 7.70): any container size is valid.
func IsStandardSize(ml float64, productType model.ProductType, tolerance float64) bool {
	var sizes []float64
	switch productType {
	case model.ProductSpirits:
		sizes = spiritsStandardSizesML
	case model.ProductWine:
		sizes = wineStandardSizesML
	default:
		return true
	}

	for _, standard := range sizes {
		if math.Abs(ml-standard) <= tolerance {
			return true
		}
	}
	return false
}
