// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"os"
)

// LoadRegistry reads an operation catalog from a JSON file. Deployments can
// override the built-in catalog, e.g. to tighten schemas per environment.
func LoadRegistry(path string) (*OperationRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg OperationRegistry
	err = json.Unmarshal(data, &reg)
	return &reg, err
}

func objSchema(required []string, props map[string]interface{}) map[string]interface{} {
	s := map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

var (
	strT    = map[string]interface{}{"type": "string"}
	intT    = map[string]interface{}{"type": "integer"}
	boolT   = map[string]interface{}{"type": "boolean"}
	strArrT = map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}}
	objT    = map[string]interface{}{"type": "object"}
)

// Default returns the built-in operation catalog covering every operation
// the decomposers emit.
func Default() *OperationRegistry {
	return &OperationRegistry{
		Version: "1.0",
		Operations: []Operation{
			// --- llm ---
			{
				Op: "NL_EXTRACT_TRIP_PREFS", Executor: "llm",
				Description: "Parse trip preferences (city, interests, budget) from free text",
				ArgsSchema:  objSchema([]string{"text"}, map[string]interface{}{"text": strT, "city_hint": strT, "poi_hints": strArrT}),
			},
			{
				Op: "NL_EXTRACT_ITINERARY_PARAMS", Executor: "llm",
				Description: "Parse itinerary parameters (city, days, pace) from free text",
				ArgsSchema:  objSchema([]string{"text"}, map[string]interface{}{"text": strT, "city_hint": strT, "days": intT}),
			},
			{
				Op: "NL_EXTRACT_TARGET_POI", Executor: "llm",
				Description: "Identify the place a review query is about",
				ArgsSchema:  objSchema([]string{"text"}, map[string]interface{}{"text": strT, "poi_hints": strArrT, "city_hint": strT}),
			},
			{
				Op: "NL_EXTRACT_STOPS", Executor: "llm",
				Description: "Extract the list of stops to order from free text",
				ArgsSchema:  objSchema([]string{"text"}, map[string]interface{}{"text": strT, "poi_hints": strArrT, "city_hint": strT}),
			},
			{
				Op: "NL_EXTRACT_COMPARISON_PARAMS", Executor: "llm",
				Description: "Parse origin, destination and dates for a travel comparison",
				ArgsSchema:  objSchema([]string{"text"}, map[string]interface{}{"text": strT, "cities": strArrT, "date_spans": strArrT}),
			},
			{
				Op: "EXTRACT_LOCATIONS_FOR_PARTIES", Executor: "llm",
				Description: "Resolve free-text party locations to normalized coordinates",
				ArgsSchema:  objSchema([]string{"text", "max_parties"}, map[string]interface{}{"text": strT, "max_parties": intT}),
			},
			{
				Op: "COMPOSE_SUGGESTIONS", Executor: "llm",
				Description: "Write up the ranked trip suggestions",
				ArgsSchema:  objSchema(nil, map[string]interface{}{"style": strT, "days": intT}),
			},
			{
				Op: "COMPOSE_DAYWISE_ITINERARY", Executor: "llm",
				Description: "Write up the clustered stops as a day-wise itinerary",
				ArgsSchema:  objSchema(nil, map[string]interface{}{"times_of_day": strArrT, "constraints": objT, "style": strT}),
			},
			{
				Op: "SUMMARIZE_REVIEWS", Executor: "llm",
				Description: "Summarize aggregated review stats in natural language",
				ArgsSchema:  objSchema(nil, map[string]interface{}{"sentiment_focus": strT, "style": strT}),
			},
			{
				Op: "EXPLAIN_TRADEOFFS", Executor: "llm",
				Description: "Explain meeting-point tradeoffs using computed metrics only",
				ArgsSchema:  objSchema(nil, map[string]interface{}{"style": strT, "include_metrics": strArrT}),
			},
			{
				Op: "EXPLAIN_ROUTE", Executor: "llm",
				Description: "Explain the optimized visit order",
				ArgsSchema:  objSchema(nil, map[string]interface{}{"style": strT}),
			},
			{
				Op: "COMPOSE_COMPARISON", Executor: "llm",
				Description: "Write up the ranked transport and stay options",
				ArgsSchema:  objSchema(nil, map[string]interface{}{"style": strT, "currency": strT}),
			},

			// --- pois_db ---
			{
				Op: "FETCH_POI_CANDIDATES", Executor: "pois_db",
				Description: "Fetch candidate POIs for a city",
				ArgsSchema:  objSchema([]string{"max_results"}, map[string]interface{}{"city": strT, "poi_types": strArrT, "max_results": intT}),
			},
			{
				Op: "CANDIDATE_POIS_MIDPOINT", Executor: "pois_db",
				Description: "Fetch candidate venues near the computed midpoint",
				ArgsSchema: objSchema([]string{"poi_types", "radius_m", "max_results"},
					map[string]interface{}{"poi_types": strArrT, "radius_m": intT, "max_results": intT, "dedupe_by_name": boolT}),
			},
			{
				Op: "FETCH_POI_REVIEWS", Executor: "pois_db",
				Description: "Fetch reviews for the target POI",
				ArgsSchema:  objSchema([]string{"max_reviews"}, map[string]interface{}{"max_reviews": intT, "timeframe": strT}),
			},
			{
				Op: "FETCH_STAY_OPTIONS", Executor: "pois_db",
				Description: "Fetch stay options for the destination city",
				ArgsSchema:  objSchema([]string{"max_results"}, map[string]interface{}{"city": strT, "constraints": objT, "max_results": intT}),
			},

			// --- routing_api ---
			{
				Op: "TRAVEL_TIMES_PER_PARTY", Executor: "routing_api",
				Description: "Compute multi-modal travel times per party per candidate",
				ArgsSchema:  objSchema([]string{"modes", "timeout_s"}, map[string]interface{}{"modes": strArrT, "timeout_s": intT}),
			},
			{
				Op: "TRAVEL_TIME_MATRIX", Executor: "routing_api",
				Description: "Compute pairwise travel times between stops",
				ArgsSchema:  objSchema([]string{"modes", "timeout_s"}, map[string]interface{}{"modes": strArrT, "timeout_s": intT}),
			},
			{
				Op: "VALIDATE_TRAVEL_LEGS", Executor: "routing_api",
				Description: "Check that travel legs between clustered stops are feasible",
				ArgsSchema:  objSchema([]string{"modes", "timeout_s"}, map[string]interface{}{"modes": strArrT, "timeout_s": intT}),
			},
			{
				Op: "FETCH_TRANSPORT_OPTIONS", Executor: "routing_api",
				Description: "Fetch flight and train options for the detected dates",
				ArgsSchema:  objSchema([]string{"modes", "max_results"}, map[string]interface{}{"modes": strArrT, "date_spans": strArrT, "max_results": intT}),
			},

			// --- engine ---
			{
				Op: "SCORE_AND_RANK_SPOTS", Executor: "engine",
				Description: "Rank POI candidates by the given criteria",
				ArgsSchema:  objSchema([]string{"criteria", "top_k"}, map[string]interface{}{"criteria": strArrT, "constraints": objT, "top_k": intT}),
			},
			{
				Op: "CLUSTER_POIS_BY_DAY", Executor: "engine",
				Description: "Cluster POIs into per-day groups",
				ArgsSchema:  objSchema([]string{"days"}, map[string]interface{}{"days": intT, "pace": strT}),
			},
			{
				Op: "AGGREGATE_REVIEW_STATS", Executor: "engine",
				Description: "Bucket reviews into sentiment stats",
				ArgsSchema:  objSchema([]string{"buckets"}, map[string]interface{}{"buckets": strArrT}),
			},
			{
				Op: "FAIRNESS_RANK", Executor: "engine",
				Description: "Rank meeting-point candidates by minimax fairness",
				ArgsSchema: objSchema([]string{"metric", "top_k"},
					map[string]interface{}{"metric": strT, "tie_breakers": strArrT, "top_k": intT}),
			},
			{
				Op: "OPTIMIZE_VISIT_ORDER", Executor: "engine",
				Description: "Order stops to minimize total travel time",
				ArgsSchema:  objSchema([]string{"objective"}, map[string]interface{}{"objective": strT, "start": strT}),
			},
			{
				Op: "RANK_OPTIONS_BY_VALUE", Executor: "engine",
				Description: "Rank transport and stay options by value criteria",
				ArgsSchema:  objSchema([]string{"criteria", "top_k"}, map[string]interface{}{"criteria": strArrT, "constraints": objT, "top_k": intT}),
			},
		},
	}
}
