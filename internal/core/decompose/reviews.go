// internal/core/decompose/reviews.go
package decompose

import "github.com/Shubhankar10/Map-Assistant/internal/models"

// buildReviewSummary plans 'what do people say about X' style queries.
func buildReviewSummary(a *models.QueryAnalysis) models.Decomposition {
	steps := []models.PlanStep{
		{
			Op: "NL_EXTRACT_TARGET_POI",
			Args: map[string]interface{}{
				"text":      a.Raw,
				"poi_hints": a.POIs,
				"city_hint": firstCity(a),
			},
			Source: models.SourceLLM,
		},
		{
			Op: "FETCH_POI_REVIEWS",
			Args: map[string]interface{}{
				"max_reviews": 100,
				"timeframe":   "all_time",
			},
			Source: models.SourcePOIsDB,
		},
		{
			Op: "AGGREGATE_REVIEW_STATS",
			Args: map[string]interface{}{
				"buckets": []string{"positive", "negative", "neutral"},
			},
			Source: models.SourceEngine,
		},
		{
			Op: "SUMMARIZE_REVIEWS",
			Args: map[string]interface{}{
				"sentiment_focus": "overall",
				"style":           "concise",
			},
			Source: models.SourceLLM,
		},
	}

	return models.Decomposition{
		Steps: steps,
		Notes: "Aggregate and summarize reviews for the target place",
	}
}
