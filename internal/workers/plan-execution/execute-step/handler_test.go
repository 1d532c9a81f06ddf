// internal/workers/plan-execution/execute-step/handler_test.go
package executestep

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	commonhttp "github.com/Shubhankar10/Map-Assistant/internal/common/http"
	"github.com/Shubhankar10/Map-Assistant/internal/common/logger"
	"github.com/Shubhankar10/Map-Assistant/internal/engine"
	"github.com/Shubhankar10/Map-Assistant/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		POIIndex: "pois",
		Timeout:  5 * time.Second,
	}
}

type testLogger struct {
	t *testing.T
}

func (tl *testLogger) Debug(msg string, fields map[string]interface{}) {
	tl.t.Logf("DEBUG: %s %v", msg, fields)
}

func (tl *testLogger) Info(msg string, fields map[string]interface{}) {
	tl.t.Logf("INFO: %s %v", msg, fields)
}

func (tl *testLogger) Warn(msg string, fields map[string]interface{}) {
	tl.t.Logf("WARN: %s %v", msg, fields)
}

func (tl *testLogger) Error(msg string, fields map[string]interface{}) {
	tl.t.Logf("ERROR: %s %v", msg, fields)
}

func (tl *testLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return tl
}

func (tl *testLogger) WithError(err error) logger.Logger {
	return tl.WithFields(map[string]interface{}{"error": err})
}

func newTestLogger(t *testing.T) logger.Logger {
	return &testLogger{t: t}
}

func newEngineHandler(t *testing.T) *Handler {
	return NewHandler(createTestConfig(), nil, nil, nil, newTestLogger(t))
}

func engineStep(op string, args map[string]interface{}) models.PlanStep {
	return models.PlanStep{Op: op, Args: args, Source: models.SourceEngine}
}

// ==========================
// Engine Executor Tests
// ==========================

func TestHandler_Execute_FairnessRank(t *testing.T) {
	handler := newEngineHandler(t)

	input := &Input{
		Step: engineStep("FAIRNESS_RANK", map[string]interface{}{"top_k": 2}),
		Payload: map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"name": "Far Cafe", "partyTimes": []float64{40, 10}, "rating": 4.8},
				{"name": "Fair Cafe", "partyTimes": []float64{20, 22}, "rating": 4.1},
				{"name": "Middle Cafe", "partyTimes": []float64{25, 18}, "rating": 4.5},
			},
		},
	}

	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "FAIRNESS_RANK", output.Op)
	assert.Equal(t, models.SourceEngine, output.Executor)

	ranked, ok := output.Result.([]engine.Ranked)
	require.True(t, ok)
	require.Len(t, ranked, 2)
	assert.Equal(t, "Fair Cafe", ranked[0].Name)
	assert.Equal(t, "Middle Cafe", ranked[1].Name)
}

func TestHandler_Execute_ScoreAndRankSpots(t *testing.T) {
	handler := newEngineHandler(t)

	input := &Input{
		Step: engineStep("SCORE_AND_RANK_SPOTS", map[string]interface{}{"top_k": 2}),
		Payload: map[string]interface{}{
			"spots": []map[string]interface{}{
				{"name": "Quiet Garden", "rating": 4.9, "popularity": 10},
				{"name": "Famous Fort", "rating": 4.5, "popularity": 90},
				{"name": "Old Market", "rating": 4.2, "popularity": 60},
			},
		},
	}

	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	ranked, ok := output.Result.([]engine.Spot)
	require.True(t, ok)
	require.Len(t, ranked, 2)
	assert.Equal(t, "Famous Fort", ranked[0].Name)
	assert.Equal(t, "Old Market", ranked[1].Name)
}

func TestHandler_Execute_OptimizeVisitOrder(t *testing.T) {
	handler := newEngineHandler(t)

	input := &Input{
		Step: engineStep("OPTIMIZE_VISIT_ORDER", map[string]interface{}{"start": 0}),
		Payload: map[string]interface{}{
			"matrix": [][]float64{
				{0, 30, 10},
				{30, 0, 15},
				{10, 15, 0},
			},
		},
	}

	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	order, ok := output.Result.([]int)
	require.True(t, ok)
	assert.Equal(t, []int{0, 2, 1}, order)
}

func TestHandler_Execute_AggregateReviewStats(t *testing.T) {
	handler := newEngineHandler(t)

	input := &Input{
		Step: engineStep("AGGREGATE_REVIEW_STATS", nil),
		Payload: map[string]interface{}{
			"reviews": []map[string]interface{}{
				{"rating": 5, "text": "great"},
				{"rating": 4, "text": "good"},
				{"rating": 3, "text": "okay"},
				{"rating": 1, "text": "bad"},
			},
		},
	}

	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	stats, ok := output.Result.(engine.ReviewStats)
	require.True(t, ok)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.Positive)
	assert.Equal(t, 1, stats.Negative)
	assert.Equal(t, 1, stats.Neutral)
	assert.InDelta(t, 3.25, stats.AvgRating, 0.0001)
}

func TestHandler_Execute_RankOptionsByValue(t *testing.T) {
	handler := newEngineHandler(t)

	input := &Input{
		Step: engineStep("RANK_OPTIONS_BY_VALUE", map[string]interface{}{"top_k": 3}),
		Payload: map[string]interface{}{
			"options": []map[string]interface{}{
				{"name": "Flight A", "price": 5200, "durationMin": 90, "rating": 4.0},
				{"name": "Train B", "price": 1800, "durationMin": 960, "rating": 4.2},
				{"name": "Unknown C", "price": 0, "durationMin": 60, "rating": 4.9},
			},
		},
	}

	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	ranked, ok := output.Result.([]engine.Option)
	require.True(t, ok)
	require.Len(t, ranked, 3)
	assert.Equal(t, "Train B", ranked[0].Name)
	assert.Equal(t, "Flight A", ranked[1].Name)
	// Zero price means missing data, sorts last.
	assert.Equal(t, "Unknown C", ranked[2].Name)
}

// ==========================
// Dispatch & Error Tests
// ==========================

func TestHandler_Execute_UnknownExecutor(t *testing.T) {
	handler := newEngineHandler(t)

	input := &Input{
		Step: models.PlanStep{Op: "ANYTHING", Source: "carrier_pigeon"},
	}

	output, err := handler.Execute(context.Background(), input)

	assert.ErrorIs(t, err, ErrUnknownExecutor)
	assert.Nil(t, output)
	assert.Equal(t, "UNKNOWN_EXECUTOR", handler.mapErrorToCode(err))
}

func TestHandler_Execute_UnknownEngineOp(t *testing.T) {
	handler := newEngineHandler(t)

	input := &Input{
		Step: engineStep("SOLVE_HALTING_PROBLEM", nil),
	}

	output, err := handler.Execute(context.Background(), input)

	assert.ErrorIs(t, err, ErrUnknownOperation)
	assert.Nil(t, output)
	assert.Equal(t, "UNKNOWN_OPERATION", handler.mapErrorToCode(err))
}

func TestHandler_Execute_MissingPayload(t *testing.T) {
	handler := newEngineHandler(t)

	input := &Input{
		Step: engineStep("FAIRNESS_RANK", map[string]interface{}{"top_k": 5}),
	}

	output, err := handler.Execute(context.Background(), input)

	assert.ErrorIs(t, err, ErrStepFailed)
	assert.Nil(t, output)
}

func TestHandler_Execute_EmptyOp(t *testing.T) {
	handler := newEngineHandler(t)

	output, err := handler.Execute(context.Background(), &Input{})

	assert.ErrorIs(t, err, ErrStepFailed)
	assert.Nil(t, output)
}

func TestHandler_Execute_LLMNotConfigured(t *testing.T) {
	handler := newEngineHandler(t)

	input := &Input{
		Step: models.PlanStep{Op: "SUMMARIZE_REVIEWS", Source: models.SourceLLM},
	}

	output, err := handler.Execute(context.Background(), input)

	assert.ErrorIs(t, err, ErrStepFailed)
	assert.Nil(t, output)
}

// ==========================
// Routing API Tests
// ==========================

func TestHandler_Execute_RoutingAPI(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"durations": map[string]interface{}{"driving": 25, "transit": 40},
		})
	}))
	defer server.Close()

	config := createTestConfig()
	config.RoutingBaseURL = server.URL
	handler := NewHandler(config, nil, nil, commonhttp.NewClient(5*time.Second, 1), newTestLogger(t))

	input := &Input{
		Step: models.PlanStep{
			Op:     "TRAVEL_TIMES_PER_PARTY",
			Args:   map[string]interface{}{"modes": []interface{}{"driving", "transit"}, "timeout_s": 8},
			Source: models.SourceRoutingAPI,
		},
		Payload: map[string]interface{}{"parties": []interface{}{"a", "b"}},
	}

	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "/travel_times_per_party", gotPath)
	assert.Contains(t, gotBody, "args")
	assert.Contains(t, gotBody, "payload")

	result, ok := output.Result.(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, result, "durations")
}

func TestHandler_Execute_RoutingNotConfigured(t *testing.T) {
	handler := newEngineHandler(t)

	input := &Input{
		Step: models.PlanStep{Op: "TRAVEL_TIME_MATRIX", Source: models.SourceRoutingAPI},
	}

	output, err := handler.Execute(context.Background(), input)

	assert.ErrorIs(t, err, ErrStepFailed)
	assert.Nil(t, output)
}

// ==========================
// POI Search Tests
// ==========================

func newTestESClient(t *testing.T, handlerFunc http.HandlerFunc) (*elasticsearch.Client, *httptest.Server) {
	server := httptest.NewServer(handlerFunc)
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{server.URL},
	})
	require.NoError(t, err)
	return client, server
}

func esSearchResponse(sources ...map[string]interface{}) []byte {
	hits := make([]interface{}, 0, len(sources))
	for _, s := range sources {
		hits = append(hits, map[string]interface{}{"_source": s})
	}
	body, _ := json.Marshal(map[string]interface{}{
		"took": 3,
		"hits": map[string]interface{}{
			"total":     map[string]interface{}{"value": len(sources)},
			"max_score": 1.0,
			"hits":      hits,
		},
	})
	return body
}

func TestHandler_Execute_POISearch(t *testing.T) {
	var gotBody map[string]interface{}
	esClient, server := newTestESClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			json.NewDecoder(r.Body).Decode(&gotBody)
		}
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.Write(esSearchResponse(
			map[string]interface{}{"name": "Blue Tokai", "category": "cafe", "rating": 4.6},
			map[string]interface{}{"name": "blue tokai", "category": "cafe", "rating": 4.6},
			map[string]interface{}{"name": "Chai Point", "category": "cafe", "rating": 4.2},
		))
	})
	defer server.Close()

	handler := NewHandler(createTestConfig(), nil, esClient, nil, newTestLogger(t))

	input := &Input{
		Step: models.PlanStep{
			Op: "CANDIDATE_POIS_MIDPOINT",
			Args: map[string]interface{}{
				"poi_types":      []interface{}{"cafe", "restaurant"},
				"max_results":    30,
				"dedupe_by_name": true,
			},
			Source: models.SourcePOIsDB,
		},
	}

	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)

	data, ok := output.Result.([]map[string]interface{})
	require.True(t, ok)
	// Case-insensitive duplicate collapsed.
	require.Len(t, data, 2)
	assert.Equal(t, "Blue Tokai", data[0]["name"])
	assert.Equal(t, "Chai Point", data[1]["name"])

	query, ok := gotBody["query"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, query, "bool")
}

func TestHandler_Execute_POISearchError(t *testing.T) {
	esClient, server := newTestESClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer server.Close()

	handler := NewHandler(createTestConfig(), nil, esClient, nil, newTestLogger(t))

	input := &Input{
		Step: models.PlanStep{
			Op:     "FETCH_POI_CANDIDATES",
			Args:   map[string]interface{}{"max_results": 40},
			Source: models.SourcePOIsDB,
		},
	}

	output, err := handler.Execute(context.Background(), input)

	assert.ErrorIs(t, err, ErrStepFailed)
	assert.Nil(t, output)
}
