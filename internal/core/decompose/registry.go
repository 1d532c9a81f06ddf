// internal/core/decompose/registry.go

// Package decompose maps a classified feature to an ordered, executable plan.
// A Decomposer states *what should happen next*, never *how*: builders are
// pure functions over the analysis with no network or storage access, and
// every step they emit is tagged with exactly one executor.
package decompose

import (
	"fmt"

	"github.com/Shubhankar10/Map-Assistant/internal/models"
)

// Decomposer builds the logical plan for one feature.
type Decomposer func(a *models.QueryAnalysis) models.Decomposition

// registry is the explicit dispatch table, fixed at init. No dynamic
// registration happens after startup.
var registry = map[models.Feature]Decomposer{
	models.FeatureTripSuggestions:   buildTripSuggestions,
	models.FeatureItineraryPlanner:  buildItinerary,
	models.FeatureReviewSummarizer:  buildReviewSummary,
	models.FeatureMeetingPoint:      buildMeetingPoint,
	models.FeatureRouteOptimization: buildRouteOptimization,
	models.FeatureTravelComparison:  buildTravelComparison,
}

// Get returns the decomposer for feature. It never fails: unknown features
// receive a fallback that yields an empty plan with an explanatory note, so
// the router's output stays well-formed.
func Get(feature models.Feature) Decomposer {
	if fn, ok := registry[feature]; ok {
		return fn
	}
	return func(_ *models.QueryAnalysis) models.Decomposition {
		return models.Decomposition{
			Steps: []models.PlanStep{},
			Notes: fmt.Sprintf("No decomposer registered for %s", feature),
		}
	}
}

// Registered reports which features have a decomposer. Debug helper.
func Registered() []models.Feature {
	out := make([]models.Feature, 0, len(registry))
	for _, f := range models.AllFeatures {
		if _, ok := registry[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// firstCity returns the first detected city or empty.
func firstCity(a *models.QueryAnalysis) string {
	if len(a.Cities) > 0 {
		return a.Cities[0]
	}
	return ""
}

// daysOrDefault returns the detected day count or fallback.
func daysOrDefault(a *models.QueryAnalysis, fallback int) int {
	if a.Days != nil {
		return *a.Days
	}
	return fallback
}
