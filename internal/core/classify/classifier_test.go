// internal/core/classify/classifier_test.go
package classify

import (
	"strings"
	"testing"

	"github.com/Shubhankar10/Map-Assistant/internal/core/analysis"
	"github.com/Shubhankar10/Map-Assistant/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classifyRaw(raw string) models.Classification {
	return Classify(analysis.Analyze(raw))
}

func TestClassify_TripSuggestion(t *testing.T) {
	c := classifyRaw("Suggest a 3-day Jaipur trip with heritage focus and mid budget")

	assert.Equal(t, models.FeatureTripSuggestions, c.Feature)
	assert.GreaterOrEqual(t, c.Confidence, 0.6)
	assert.Equal(t, 1.0, c.Confidence)
}

func TestClassify_TravelComparison(t *testing.T) {
	c := classifyRaw("Compare flights and hotels from Mumbai to Goa 1-4 Oct under ₹8,000")

	assert.Equal(t, models.FeatureTravelComparison, c.Feature)
	assert.Equal(t, 0.85, c.Confidence)
}

func TestClassify_MeetingPoint(t *testing.T) {
	c := classifyRaw("Find a fair cafe to meet between Connaught Place and Hauz Khas")

	assert.Equal(t, models.FeatureMeetingPoint, c.Feature)
	assert.Equal(t, 0.95, c.Confidence)

	joined := strings.Join(c.Reasons, " | ")
	assert.Contains(t, joined, "between")
}

func TestClassify_Fallback(t *testing.T) {
	c := classifyRaw("hi how are you")

	assert.Equal(t, models.FeatureOther, c.Feature)
	assert.Equal(t, 0.3, c.Confidence)
	assert.Equal(t, []string{"no feature keywords matched"}, c.Reasons)
}

// Equal scores resolve by the fixed feature ordering, so route optimization
// beats travel comparison when both match with nothing else to separate them.
func TestClassify_TieBreakByOrdinal(t *testing.T) {
	for i := 0; i < 10; i++ {
		c := classifyRaw("compare route")
		assert.Equal(t, models.FeatureRouteOptimization, c.Feature)
		assert.Equal(t, 0.6, c.Confidence)
	}
}

func TestClassify_ConfidenceBounds(t *testing.T) {
	queries := []string{
		"Suggest a 3-day Jaipur trip with heritage focus and mid budget",
		"Plan my itinerary for 5 days in Goa with a relaxed pace",
		"What do people say about Hawa Mahal? summarize the reviews and ratings",
		"Find a cafe halfway between us, something fair for both",
		"optimize the shortest route to cover all spots, fort temple museum",
		"compare train vs flight, whichever is cheaper under ₹5,000",
		"hi how are you",
		"",
	}

	for _, q := range queries {
		c := classifyRaw(q)
		assert.GreaterOrEqual(t, c.Confidence, 0.0, q)
		assert.LessOrEqual(t, c.Confidence, 1.0, q)
		assert.NotEmpty(t, c.Reasons, q)
	}
}

// Every point of confidence must be traceable: a non-fallback result carries
// a matched-phrases reason first.
func TestClassify_Traceability(t *testing.T) {
	c := classifyRaw("recommend attractions for a weekend getaway trip")

	require.NotEqual(t, models.FeatureOther, c.Feature)
	require.NotEmpty(t, c.Reasons)
	assert.True(t, strings.HasPrefix(c.Reasons[0], "matched: "))
}

func TestClassify_BoostCapAtThreeHits(t *testing.T) {
	// Five comparison boosts present but only three count: 0.6 + 0.3,
	// capped at 0.95, then +0.1 for the detected budget, +0.05 solo.
	c := classifyRaw("compare the cheapest price, fare and cost under ₹2,000")

	assert.Equal(t, models.FeatureTravelComparison, c.Feature)
	assert.Equal(t, 1.0, c.Confidence)
}

func TestClassify_SoloCandidateBonus(t *testing.T) {
	// Single matching feature with no boosts or signals: 0.6 + 0.05.
	c := classifyRaw("summarize what visitors think")

	assert.Equal(t, models.FeatureReviewSummarizer, c.Feature)
	assert.Equal(t, 0.65, c.Confidence)
	assert.Contains(t, c.Reasons, "only candidate feature")
}

func TestClassify_ItineraryDaySignal(t *testing.T) {
	c := classifyRaw("plan my 4 days schedule")

	assert.Equal(t, models.FeatureItineraryPlanner, c.Feature)

	joined := strings.Join(c.Reasons, " | ")
	assert.Contains(t, joined, "day count detected: 4")
}

func TestClassify_Deterministic(t *testing.T) {
	raw := "Suggest places to visit in Udaipur, maybe a lake and a palace"
	first := classifyRaw(raw)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, classifyRaw(raw))
	}
}
