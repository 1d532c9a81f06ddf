// internal/core/decompose/meeting_point.go
package decompose

import "github.com/Shubhankar10/Map-Assistant/internal/models"

// buildMeetingPoint plans 'find a fair cafe halfway between A and B' style
// queries. The executor will later resolve the party locations with an LLM,
// fetch POIs near the midpoint, compute per-party travel times, rank by a
// fairness metric and explain the tradeoffs.
func buildMeetingPoint(a *models.QueryAnalysis) models.Decomposition {
	poiTypes := []string{"cafe", "coffee", "bakery", "tea", "restaurant"}
	// A POI type mentioned in the query takes priority over the defaults.
	if len(a.POIs) > 0 {
		poiTypes = uniqueOrdered(append(append([]string{}, a.POIs...), poiTypes...))
	}

	steps := []models.PlanStep{
		{
			Op: "EXTRACT_LOCATIONS_FOR_PARTIES",
			Args: map[string]interface{}{
				"text":        a.Raw,
				"max_parties": 2,
			},
			Source: models.SourceLLM,
		},
		{
			Op: "CANDIDATE_POIS_MIDPOINT",
			Args: map[string]interface{}{
				"poi_types":      poiTypes,
				"radius_m":       2500,
				"max_results":    30,
				"dedupe_by_name": true,
			},
			Source: models.SourcePOIsDB,
		},
		{
			Op: "TRAVEL_TIMES_PER_PARTY",
			Args: map[string]interface{}{
				"modes":     []string{"driving", "transit", "walking"},
				"timeout_s": 8,
			},
			Source: models.SourceRoutingAPI,
		},
		{
			Op: "FAIRNESS_RANK",
			Args: map[string]interface{}{
				"metric":       "minimax",
				"tie_breakers": []string{"mean_time", "poi_rating_desc"},
				"top_k":        5,
			},
			Source: models.SourceEngine,
		},
		{
			// Explanation references computed metrics only; the LLM must not
			// invent new facts here.
			Op: "EXPLAIN_TRADEOFFS",
			Args: map[string]interface{}{
				"style":           "concise",
				"include_metrics": []string{"you_min", "friend_min", "delta", "mode"},
			},
			Source: models.SourceLLM,
		},
	}

	return models.Decomposition{
		Steps: steps,
		Notes: "Find equidistant, fair meeting options",
	}
}

// uniqueOrdered removes duplicates keeping first occurrence.
func uniqueOrdered(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
