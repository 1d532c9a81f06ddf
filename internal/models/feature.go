// internal/models/feature.go
package models

// Feature identifies one of the assistant's core capabilities plus OTHER as
// a fallback. Keep the string values stable; they appear in logs, Redis keys
// and the routed_queries audit table.
type Feature string

const (
	FeatureTripSuggestions   Feature = "smart_trip_suggestions"
	FeatureItineraryPlanner  Feature = "personalized_itinerary_planner"
	FeatureReviewSummarizer  Feature = "review_aggregator_summarizer"
	FeatureMeetingPoint      Feature = "meeting_point_recommender"
	FeatureRouteOptimization Feature = "multi_spot_route_optimization"
	FeatureTravelComparison  Feature = "flights_trains_hotels_comparison"
	FeatureOther             Feature = "other"
)

// AllFeatures lists the routable features in priority order. Classification
// ties are broken by position in this slice, so the order is part of the
// routing contract.
var AllFeatures = []Feature{
	FeatureTripSuggestions,
	FeatureItineraryPlanner,
	FeatureReviewSummarizer,
	FeatureMeetingPoint,
	FeatureRouteOptimization,
	FeatureTravelComparison,
}

// Ordinal returns the tie-break rank of f. Lower wins. Unknown features and
// OTHER sort last.
func (f Feature) Ordinal() int {
	for i, known := range AllFeatures {
		if known == f {
			return i
		}
	}
	return len(AllFeatures)
}

func (f Feature) String() string {
	return string(f)
}
