// internal/core/decompose/meeting_point_test.go
package decompose

import (
	"testing"

	"github.com/Shubhankar10/Map-Assistant/internal/core/analysis"
	"github.com/Shubhankar10/Map-Assistant/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMeetingPoint_FiveOrderedSteps(t *testing.T) {
	a := analysis.Analyze("Find a fair cafe to meet between Connaught Place and Hauz Khas")
	plan := buildMeetingPoint(a)

	require.Len(t, plan.Steps, 5)

	wantOps := []string{
		"EXTRACT_LOCATIONS_FOR_PARTIES",
		"CANDIDATE_POIS_MIDPOINT",
		"TRAVEL_TIMES_PER_PARTY",
		"FAIRNESS_RANK",
		"EXPLAIN_TRADEOFFS",
	}
	wantExecutors := []string{
		models.SourceLLM,
		models.SourcePOIsDB,
		models.SourceRoutingAPI,
		models.SourceEngine,
		models.SourceLLM,
	}

	for i, step := range plan.Steps {
		assert.Equal(t, wantOps[i], step.Op)
		assert.Equal(t, wantExecutors[i], step.Source)
	}

	assert.Equal(t, "Find equidistant, fair meeting options", plan.Notes)
}

func TestBuildMeetingPoint_Args(t *testing.T) {
	a := analysis.Analyze("meet halfway for coffee")
	plan := buildMeetingPoint(a)

	extract := plan.Steps[0].Args
	assert.Equal(t, "meet halfway for coffee", extract["text"])
	assert.Equal(t, 2, extract["max_parties"])

	candidates := plan.Steps[1].Args
	assert.Equal(t, 2500, candidates["radius_m"])
	assert.Equal(t, 30, candidates["max_results"])
	assert.Equal(t, true, candidates["dedupe_by_name"])

	times := plan.Steps[2].Args
	assert.Equal(t, []string{"driving", "transit", "walking"}, times["modes"])
	assert.Equal(t, 8, times["timeout_s"])

	rank := plan.Steps[3].Args
	assert.Equal(t, "minimax", rank["metric"])
	assert.Equal(t, []string{"mean_time", "poi_rating_desc"}, rank["tie_breakers"])
	assert.Equal(t, 5, rank["top_k"])

	explain := plan.Steps[4].Args
	assert.Equal(t, "concise", explain["style"])
	assert.Equal(t, []string{"you_min", "friend_min", "delta", "mode"}, explain["include_metrics"])
}

func TestBuildMeetingPoint_POIHintsLeadTheTypeList(t *testing.T) {
	a := analysis.Analyze("meet at a park between our places")
	plan := buildMeetingPoint(a)

	poiTypes, ok := plan.Steps[1].Args["poi_types"].([]string)
	require.True(t, ok)
	assert.Equal(t, "park", poiTypes[0])
	assert.Contains(t, poiTypes, "cafe")
}

func TestBuildMeetingPoint_DefaultTypesWithoutHints(t *testing.T) {
	a := analysis.Analyze("where should we meet, somewhere between us")
	plan := buildMeetingPoint(a)

	poiTypes, ok := plan.Steps[1].Args["poi_types"].([]string)
	require.True(t, ok)
	assert.Equal(t, []string{"cafe", "coffee", "bakery", "tea", "restaurant"}, poiTypes)
}
