// internal/core/decompose/route_optimization.go
package decompose

import "github.com/Shubhankar10/Map-Assistant/internal/models"

// buildRouteOptimization plans 'best order to cover these spots' queries.
func buildRouteOptimization(a *models.QueryAnalysis) models.Decomposition {
	steps := []models.PlanStep{
		{
			Op: "NL_EXTRACT_STOPS",
			Args: map[string]interface{}{
				"text":      a.Raw,
				"poi_hints": a.POIs,
				"city_hint": firstCity(a),
			},
			Source: models.SourceLLM,
		},
		{
			Op: "TRAVEL_TIME_MATRIX",
			Args: map[string]interface{}{
				"modes":     []string{"driving", "walking"},
				"timeout_s": 8,
			},
			Source: models.SourceRoutingAPI,
		},
		{
			Op: "OPTIMIZE_VISIT_ORDER",
			Args: map[string]interface{}{
				"objective": "least_total_time",
				"start":     "current_location",
			},
			Source: models.SourceEngine,
		},
		{
			Op: "EXPLAIN_ROUTE",
			Args: map[string]interface{}{
				"style": "concise",
			},
			Source: models.SourceLLM,
		},
	}

	return models.Decomposition{
		Steps: steps,
		Notes: "Order multiple stops to minimize total travel time",
	}
}
