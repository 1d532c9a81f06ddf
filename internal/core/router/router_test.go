// internal/core/router/router_test.go
package router

import (
	"reflect"
	"testing"

	"github.com/Shubhankar10/Map-Assistant/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcess_EndToEndTripSuggestion(t *testing.T) {
	routed := Process("Suggest a 3-day Jaipur trip with heritage focus and mid budget")

	assert.Contains(t, routed.Analysis.Cities, "jaipur")
	require.NotNil(t, routed.Analysis.Days)
	assert.Equal(t, 3, *routed.Analysis.Days)

	assert.Equal(t, models.FeatureTripSuggestions, routed.Classification.Feature)
	assert.GreaterOrEqual(t, routed.Classification.Confidence, 0.6)
	assert.NotEmpty(t, routed.Decomposition.Steps)
}

func TestProcess_EndToEndMeetingPoint(t *testing.T) {
	routed := Process("Find a fair cafe to meet between Connaught Place and Hauz Khas")

	assert.Contains(t, routed.Analysis.Tokens, "between")
	assert.Equal(t, models.FeatureMeetingPoint, routed.Classification.Feature)

	require.Len(t, routed.Decomposition.Steps, 5)
	executors := make([]string, 0, 5)
	for _, step := range routed.Decomposition.Steps {
		executors = append(executors, step.Source)
	}
	assert.Equal(t, []string{
		models.SourceLLM,
		models.SourcePOIsDB,
		models.SourceRoutingAPI,
		models.SourceEngine,
		models.SourceLLM,
	}, executors)
}

func TestProcess_EndToEndComparison(t *testing.T) {
	routed := Process("Compare flights and hotels from Mumbai to Goa 1-4 Oct under ₹8,000")

	require.NotNil(t, routed.Analysis.Money)
	assert.Equal(t, 8000.0, *routed.Analysis.Money)
	assert.Equal(t, "₹", routed.Analysis.Currency)
	assert.NotEmpty(t, routed.Analysis.DateSpans)
	assert.Equal(t, models.FeatureTravelComparison, routed.Classification.Feature)
}

func TestProcess_Fallback(t *testing.T) {
	routed := Process("hi how are you")

	assert.Equal(t, models.FeatureOther, routed.Classification.Feature)
	assert.Equal(t, 0.3, routed.Classification.Confidence)
	assert.Empty(t, routed.Decomposition.Steps)
	assert.NotEmpty(t, routed.Decomposition.Notes)
}

// Same input, same output, byte for byte. The whole pipeline is pure.
func TestProcess_Deterministic(t *testing.T) {
	queries := []string{
		"Suggest a 3-day Jaipur trip with heritage focus and mid budget",
		"Find a fair cafe to meet between Connaught Place and Hauz Khas",
		"Compare flights and hotels from Mumbai to Goa 1-4 Oct under ₹8,000",
		"hi how are you",
	}

	for _, q := range queries {
		first := Process(q)
		second := Process(q)
		assert.True(t, reflect.DeepEqual(first, second), q)
	}
}
