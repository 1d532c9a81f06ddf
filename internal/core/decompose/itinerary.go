// internal/core/decompose/itinerary.go
package decompose

import "github.com/Shubhankar10/Map-Assistant/internal/models"

// buildItinerary plans day-wise itinerary queries.
func buildItinerary(a *models.QueryAnalysis) models.Decomposition {
	steps := []models.PlanStep{
		{
			Op: "NL_EXTRACT_ITINERARY_PARAMS",
			Args: map[string]interface{}{
				"text":      a.Raw,
				"city_hint": firstCity(a),
				"days":      daysOrDefault(a, 1),
			},
			Source: models.SourceLLM,
		},
		{
			Op: "FETCH_POI_CANDIDATES",
			Args: map[string]interface{}{
				"city":        firstCity(a),
				"poi_types":   a.POIs,
				"max_results": 60,
			},
			Source: models.SourcePOIsDB,
		},
		{
			Op: "CLUSTER_POIS_BY_DAY",
			Args: map[string]interface{}{
				"days": daysOrDefault(a, 1),
				"pace": "moderate",
			},
			Source: models.SourceEngine,
		},
		{
			// Sanity-check travel legs between clustered stops before the
			// itinerary is written up.
			Op: "VALIDATE_TRAVEL_LEGS",
			Args: map[string]interface{}{
				"modes":     []string{"driving", "walking"},
				"timeout_s": 8,
			},
			Source: models.SourceRoutingAPI,
		},
		{
			Op: "COMPOSE_DAYWISE_ITINERARY",
			Args: map[string]interface{}{
				"times_of_day": a.TimesOfDay,
				"constraints":  a.Constraints,
				"style":        "structured",
			},
			Source: models.SourceLLM,
		},
	}

	return models.Decomposition{
		Steps: steps,
		Notes: "Build a day-wise itinerary within detected constraints",
	}
}
