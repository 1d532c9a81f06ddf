// internal/core/decompose/travel_comparison.go
package decompose

import "github.com/Shubhankar10/Map-Assistant/internal/models"

// buildTravelComparison plans flight/train/hotel comparison queries.
func buildTravelComparison(a *models.QueryAnalysis) models.Decomposition {
	steps := []models.PlanStep{
		{
			Op: "NL_EXTRACT_COMPARISON_PARAMS",
			Args: map[string]interface{}{
				"text":       a.Raw,
				"cities":     a.Cities,
				"date_spans": a.DateSpans,
			},
			Source: models.SourceLLM,
		},
		{
			Op: "FETCH_TRANSPORT_OPTIONS",
			Args: map[string]interface{}{
				"modes":       []string{"flight", "train"},
				"date_spans":  a.DateSpans,
				"max_results": 20,
			},
			Source: models.SourceRoutingAPI,
		},
		{
			Op: "FETCH_STAY_OPTIONS",
			Args: map[string]interface{}{
				"city":        firstCity(a),
				"constraints": a.Constraints,
				"max_results": 20,
			},
			Source: models.SourcePOIsDB,
		},
		{
			Op: "RANK_OPTIONS_BY_VALUE",
			Args: map[string]interface{}{
				"criteria":    []string{"price", "duration", "rating"},
				"constraints": a.Constraints,
				"top_k":       5,
			},
			Source: models.SourceEngine,
		},
		{
			Op: "COMPOSE_COMPARISON",
			Args: map[string]interface{}{
				"style":    "table",
				"currency": a.Currency,
			},
			Source: models.SourceLLM,
		},
	}

	return models.Decomposition{
		Steps: steps,
		Notes: "Compare transport and stay options under detected constraints",
	}
}
