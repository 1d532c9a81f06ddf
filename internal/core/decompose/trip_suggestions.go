// internal/core/decompose/trip_suggestions.go
package decompose

import "github.com/Shubhankar10/Map-Assistant/internal/models"

// buildTripSuggestions plans 'suggest things to do in X' style queries.
func buildTripSuggestions(a *models.QueryAnalysis) models.Decomposition {
	steps := []models.PlanStep{
		{
			Op: "NL_EXTRACT_TRIP_PREFS",
			Args: map[string]interface{}{
				"text":      a.Raw,
				"city_hint": firstCity(a),
				"poi_hints": a.POIs,
			},
			Source: models.SourceLLM,
		},
		{
			Op: "FETCH_POI_CANDIDATES",
			Args: map[string]interface{}{
				"city":        firstCity(a),
				"poi_types":   a.POIs,
				"max_results": 40,
			},
			Source: models.SourcePOIsDB,
		},
		{
			Op: "SCORE_AND_RANK_SPOTS",
			Args: map[string]interface{}{
				"criteria":    []string{"popularity", "rating"},
				"constraints": a.Constraints,
				"top_k":       10,
			},
			Source: models.SourceEngine,
		},
		{
			Op: "COMPOSE_SUGGESTIONS",
			Args: map[string]interface{}{
				"style": "concise",
				"days":  daysOrDefault(a, 1),
			},
			Source: models.SourceLLM,
		},
	}

	return models.Decomposition{
		Steps: steps,
		Notes: "Suggest spots matching detected interests and constraints",
	}
}
