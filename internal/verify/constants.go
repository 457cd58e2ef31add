// Package verify implements field-by-field verification of alcohol
// beverage label claims against OCR evidence, per TTB labeling
// regulations (27 CFR Parts 4, 5, 7 and 16). Verifiers are pure: every
// business outcome is a FieldResult status, never a Go error.
package verify

// 27 CFR Part 16 - mandated health warning statement, exact text
const governmentWarningText = "GOVERNMENT WARNING: (1) According to the Surgeon General, " +
	"women should not drink alcoholic beverages during pregnancy because of " +
	"the risk of birth defects. (2) Consumption of alcoholic beverages " +
	"impairs your ability to drive a car or operate machinery, and may " +
	"cause health problems."

// Keywords that must all be present for the warning to count at all
var governmentWarningKeywords = []string{
	"government warning",
	"surgeon general",
	"pregnancy",
	"birth defects",
	"impairs",
	"drive",
}

// Product class synonym groups. A claimed class matches if any synonym
// from its group appears literally in the evidence text.
var productClassSynonyms = map[string][]string{
	// Spirits
	"bourbon": {"bourbon whiskey", "bourbon whisky", "kentucky bourbon"},
	"whiskey": {"whisky", "scotch", "rye", "irish whiskey", "tennessee whiskey"},
	"vodka":   {"vodka"},
	"gin":     {"gin", "london dry gin", "dry gin"},
	"rum":     {"rum", "dark rum", "light rum", "spiced rum"},
	"tequila": {"tequila", "añejo", "reposado", "blanco"},
	"brandy":  {"brandy", "cognac", "armagnac"},

	// Wine
	"red wine":       {"cabernet", "merlot", "pinot noir", "shiraz", "syrah", "zinfandel"},
	"white wine":     {"chardonnay", "sauvignon blanc", "pinot grigio", "riesling"},
	"rosé":           {"rose", "rosé wine"},
	"sparkling wine": {"champagne", "prosecco", "cava", "sparkling"},

	// Beer
	"beer":  {"malt beverage", "ale", "lager"},
	"ipa":   {"india pale ale", "ipa"},
	"stout": {"stout", "porter"},
	"lager": {"lager", "pilsner", "pilsener"},
}

// Match thresholds and tolerances
const (
	brandThreshold   = 0.85
	classThreshold   = 0.80
	warningThreshold = 0.95 // strict: the warning text is mandated verbatim

	synonymConfidence = 0.8

	abvTolerance    = 0.5 // percentage points, 27 CFR 5.37
	volumeTolerance = 1.0 // ml, absorbs unit-conversion rounding
	proofTolerance  = 1.0 // proof = ABV x 2, within one proof point

	// Warning text coverage bands; keyword tokens are matched at 0.85
	warningCoverageMatch   = 0.85
	warningCoveragePartial = 0.70
	warningKeywordBar      = 0.80
)
