// internal/core/classify/rules.go
package classify

import "github.com/Shubhankar10/Map-Assistant/internal/models"

// rule gates and boosts one feature. A feature is only a candidate when at
// least one must phrase occurs in the query; boost phrases then nudge the
// score. Phrases are matched as case-insensitive substrings of the
// normalized text.
type rule struct {
	must  []string
	boost []string
}

// featureRules drives the scorer. Keys cover every routable feature;
// models.FeatureOther deliberately has no rule, it is the fallback.
var featureRules = map[models.Feature]rule{
	models.FeatureTripSuggestions: {
		must:  []string{"suggest", "recommend", "things to do", "places to visit", "trip"},
		boost: []string{"weekend", "getaway", "heritage", "budget", "attractions"},
	},
	models.FeatureItineraryPlanner: {
		must:  []string{"itinerary", "plan my", "day plan", "day wise", "day-wise", "schedule"},
		boost: []string{"days", "morning", "evening", "budget", "pace"},
	},
	models.FeatureReviewSummarizer: {
		must:  []string{"review", "ratings", "what do people say", "summarize", "summarise"},
		boost: []string{"summary", "opinion", "rating", "feedback", "worth visiting"},
	},
	models.FeatureMeetingPoint: {
		must:  []string{"meet", "meeting point", "between", "midway", "halfway"},
		boost: []string{"cafe", "fair", "equidistant", "both", "middle"},
	},
	models.FeatureRouteOptimization: {
		must:  []string{"optimize", "optimise", "route", "shortest", "order to visit", "cover all"},
		boost: []string{"visit", "multiple", "spots", "fastest", "sequence"},
	},
	models.FeatureTravelComparison: {
		must:  []string{"compare", "flight", "train", "hotel", "vs", "cheaper"},
		boost: []string{"cheapest", "price", "fare", "cost", "under"},
	},
}
