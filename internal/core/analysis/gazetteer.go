// internal/core/analysis/gazetteer.go
package analysis

// Static lookup tables for detection. Treated as immutable after init;
// Analyze only ever reads them, so concurrent calls are safe.

// cityGazetteer lists known city names, multi-word entries included.
// Matching is whole-word against the normalized text and preserves this
// order, so keep related spellings adjacent. Entries that are substrings of
// other entries ("delhi" vs "new delhi") both match independently; no
// suppression is performed.
var cityGazetteer = []string{
	"jaipur",
	"new delhi",
	"delhi",
	"mumbai",
	"goa",
	"agra",
	"udaipur",
	"jodhpur",
	"jaisalmer",
	"varanasi",
	"bengaluru",
	"bangalore",
	"kolkata",
	"chennai",
	"hyderabad",
	"pune",
	"amritsar",
	"rishikesh",
	"haridwar",
	"manali",
	"shimla",
	"mysuru",
	"kochi",
	"ahmedabad",
	"lucknow",
	"pondicherry",
	"darjeeling",
	"ooty",
	"munnar",
	"leh",
}

// poiKeywords are single-token point-of-interest hints.
var poiKeywords = map[string]bool{
	"fort":       true,
	"temple":     true,
	"museum":     true,
	"palace":     true,
	"cafe":       true,
	"beach":      true,
	"lake":       true,
	"park":       true,
	"market":     true,
	"bazaar":     true,
	"garden":     true,
	"zoo":        true,
	"monument":   true,
	"mosque":     true,
	"church":     true,
	"gurudwara":  true,
	"restaurant": true,
	"mall":       true,
	"waterfall":  true,
	"hill":       true,
	"stepwell":   true,
	"ghat":       true,
}

// timeOfDayTokens is the fixed vocabulary for time-of-day hints. Detection
// preserves this order.
var timeOfDayTokens = []string{
	"morning",
	"afternoon",
	"evening",
	"night",
	"today",
	"tomorrow",
	"weekend",
}
