// internal/workers/plan-execution/execute-step/handler.go
package executestep

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/Shubhankar10/Map-Assistant/internal/common/errors"
	"github.com/Shubhankar10/Map-Assistant/internal/common/http"
	"github.com/Shubhankar10/Map-Assistant/internal/common/llm"
	"github.com/Shubhankar10/Map-Assistant/internal/common/logger"
	"github.com/Shubhankar10/Map-Assistant/internal/common/metrics"
	"github.com/Shubhankar10/Map-Assistant/internal/engine"
	"github.com/Shubhankar10/Map-Assistant/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

const (
	TaskType = "execute-plan-step"
)

var (
	ErrUnknownExecutor  = errors.New("UNKNOWN_EXECUTOR")
	ErrUnknownOperation = errors.New("UNKNOWN_OPERATION")
	ErrStepFailed       = errors.New("STEP_EXECUTION_FAILED")
)

type Handler struct {
	config *Config
	llm    *llm.Client
	es     *elasticsearch.Client
	http   *http.Client
	logger logger.Logger
}

func NewHandler(config *Config, llmClient *llm.Client, esClient *elasticsearch.Client, httpClient *http.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		llm:    llmClient,
		es:     esClient,
		http:   httpClient,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		bpmnErr := apperrors.ConvertToBPMNError(h.classifyError(err, input.Step.Source))
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, bpmnErr.Code).Inc()
		if bpmnErr.Retryable && bpmnErr.Retries > 0 {
			h.failJobRetryable(client, job, bpmnErr)
		} else {
			h.failJob(client, job, bpmnErr.Code, err.Error())
		}
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	step := input.Step
	if step.Op == "" {
		return nil, fmt.Errorf("%w: empty op", ErrStepFailed)
	}

	start := time.Now()

	var result interface{}
	var err error
	switch step.Source {
	case models.SourceLLM:
		result, err = h.executeLLM(ctx, step, input.Payload)
	case models.SourcePOIsDB:
		result, err = h.executePOISearch(ctx, step)
	case models.SourceRoutingAPI:
		result, err = h.executeRouting(ctx, step, input.Payload)
	case models.SourceEngine:
		result, err = h.executeEngine(step, input.Payload)
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownExecutor, step.Source)
	}

	if err != nil {
		metrics.StepsExecuted.WithLabelValues(step.Source, "error").Inc()
		return nil, err
	}
	metrics.StepsExecuted.WithLabelValues(step.Source, "success").Inc()

	h.logger.Info("step executed", map[string]interface{}{
		"op":       step.Op,
		"executor": step.Source,
		"tookMs":   time.Since(start).Milliseconds(),
	})

	return &Output{
		Op:       step.Op,
		Executor: step.Source,
		Result:   result,
		TookMs:   time.Since(start).Milliseconds(),
	}, nil
}

func (h *Handler) executeLLM(ctx context.Context, step models.PlanStep, payload map[string]interface{}) (interface{}, error) {
	if h.llm == nil {
		return nil, fmt.Errorf("%w: llm client not configured", ErrStepFailed)
	}

	args, _ := json.Marshal(step.Args)
	var sb strings.Builder
	fmt.Fprintf(&sb, "Operation: %s\nArguments: %s\n", step.Op, args)
	if len(payload) > 0 {
		upstream, _ := json.Marshal(payload)
		fmt.Fprintf(&sb, "Upstream data: %s\n", upstream)
	}
	sb.WriteString("Respond with the operation result only.")

	completion, err := h.llm.Complete(ctx, sb.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStepFailed, err)
	}
	return completion, nil
}

func (h *Handler) executePOISearch(ctx context.Context, step models.PlanStep) (interface{}, error) {
	if h.es == nil {
		return nil, fmt.Errorf("%w: elasticsearch client not configured", ErrStepFailed)
	}

	size := intArg(step.Args, "max_results", 20)
	if size > 100 {
		size = 100
	}

	queryBody := buildPOIQuery(step.Args)
	body, _ := json.Marshal(queryBody)

	req := esapi.SearchRequest{
		Index: []string{h.config.POIIndex},
		Body:  strings.NewReader(string(body)),
		Size:  &size,
	}

	res, err := req.Do(ctx, h.es)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w: search timed out", ErrStepFailed)
		}
		return nil, fmt.Errorf("%w: %v", ErrStepFailed, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("%w: search failed: %s", ErrStepFailed, res.Status())
	}

	var r map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrStepFailed, err)
	}

	hits, ok := r["hits"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: malformed search response", ErrStepFailed)
	}

	var data []map[string]interface{}
	if rawHits, ok := hits["hits"].([]interface{}); ok {
		for _, hit := range rawHits {
			if doc, ok := hit.(map[string]interface{}); ok {
				if source, ok := doc["_source"].(map[string]interface{}); ok {
					data = append(data, source)
				}
			}
		}
	}

	if dedupe, _ := step.Args["dedupe_by_name"].(bool); dedupe {
		data = dedupeByName(data)
	}
	return data, nil
}

func buildPOIQuery(args map[string]interface{}) map[string]interface{} {
	filterClauses := []interface{}{}

	if rawTypes, ok := args["poi_types"].([]interface{}); ok && len(rawTypes) > 0 {
		types := make([]string, 0, len(rawTypes))
		for _, t := range rawTypes {
			if s, ok := t.(string); ok {
				types = append(types, s)
			}
		}
		if len(types) > 0 {
			filterClauses = append(filterClauses, map[string]interface{}{
				"terms": map[string]interface{}{"category": types},
			})
		}
	}

	if city, ok := args["city"].(string); ok && city != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"city": city},
		})
	}

	query := map[string]interface{}{"match_all": map[string]interface{}{}}
	if len(filterClauses) > 0 {
		query = map[string]interface{}{
			"bool": map[string]interface{}{"filter": filterClauses},
		}
	}
	return map[string]interface{}{
		"query": query,
		"sort": []interface{}{
			map[string]interface{}{"rating": map[string]interface{}{"order": "desc"}},
		},
	}
}

func dedupeByName(data []map[string]interface{}) []map[string]interface{} {
	seen := map[string]bool{}
	out := make([]map[string]interface{}, 0, len(data))
	for _, doc := range data {
		name, _ := doc["name"].(string)
		key := strings.ToLower(name)
		if name != "" && seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, doc)
	}
	return out
}

func (h *Handler) executeRouting(ctx context.Context, step models.PlanStep, payload map[string]interface{}) (interface{}, error) {
	if h.http == nil || h.config.RoutingBaseURL == "" {
		return nil, fmt.Errorf("%w: routing client not configured", ErrStepFailed)
	}

	url := h.config.RoutingBaseURL + "/" + strings.ToLower(step.Op)
	body := map[string]interface{}{
		"args":    step.Args,
		"payload": payload,
	}

	var out map[string]interface{}
	if err := h.http.PostJSON(ctx, url, nil, body, &out); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w: routing api timed out", ErrStepFailed)
		}
		return nil, fmt.Errorf("%w: %v", ErrStepFailed, err)
	}
	return out, nil
}

func (h *Handler) executeEngine(step models.PlanStep, payload map[string]interface{}) (interface{}, error) {
	switch step.Op {
	case "FAIRNESS_RANK":
		var candidates []engine.Candidate
		if err := decodePayload(payload["candidates"], &candidates); err != nil {
			return nil, err
		}
		return engine.FairnessRank(candidates, intArg(step.Args, "top_k", 5)), nil

	case "SCORE_AND_RANK_SPOTS":
		var spots []engine.Spot
		if err := decodePayload(payload["spots"], &spots); err != nil {
			return nil, err
		}
		return engine.ScoreAndRankSpots(spots, intArg(step.Args, "top_k", 10)), nil

	case "CLUSTER_POIS_BY_DAY":
		var spots []engine.Spot
		if err := decodePayload(payload["spots"], &spots); err != nil {
			return nil, err
		}
		return engine.ClusterByDay(spots, intArg(step.Args, "days", 1)), nil

	case "OPTIMIZE_VISIT_ORDER":
		var matrix [][]float64
		if err := decodePayload(payload["matrix"], &matrix); err != nil {
			return nil, err
		}
		return engine.OptimizeVisitOrder(matrix, intArg(step.Args, "start", 0)), nil

	case "AGGREGATE_REVIEW_STATS":
		var reviews []engine.Review
		if err := decodePayload(payload["reviews"], &reviews); err != nil {
			return nil, err
		}
		return engine.AggregateReviewStats(reviews), nil

	case "RANK_OPTIONS_BY_VALUE":
		var options []engine.Option
		if err := decodePayload(payload["options"], &options); err != nil {
			return nil, err
		}
		return engine.RankOptionsByValue(options, intArg(step.Args, "top_k", 5)), nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, step.Op)
}

// decodePayload converts loosely-typed plan variables into the engine's
// concrete types via a JSON round trip.
func decodePayload(raw interface{}, target interface{}) error {
	if raw == nil {
		return fmt.Errorf("%w: missing payload data", ErrStepFailed)
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStepFailed, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("%w: %v", ErrStepFailed, err)
	}
	return nil
}

func intArg(args map[string]interface{}, key string, fallback int) int {
	switch v := args[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return fallback
}

// classifyError maps an execution failure to its standardized form, which
// carries the retry budget. Dispatch defects never retry; collaborator
// failures do.
func (h *Handler) classifyError(err error, executor string) *apperrors.StandardError {
	switch {
	case errors.Is(err, ErrUnknownExecutor):
		return apperrors.NewUnknownExecutorError(executor)
	case errors.Is(err, ErrUnknownOperation):
		return &apperrors.StandardError{
			Code:      apperrors.ErrCodeUnknownOperation,
			Message:   "Step names an unknown operation",
			Details:   err.Error(),
			Retryable: false,
			Timestamp: time.Now().UTC(),
		}
	}

	switch executor {
	case models.SourceLLM:
		return &apperrors.StandardError{
			Code:      apperrors.ErrCodeLLMCallFailed,
			Message:   "LLM call failed",
			Details:   err.Error(),
			Retryable: true,
			Timestamp: time.Now().UTC(),
		}
	case models.SourcePOIsDB:
		return apperrors.NewPOISearchFailedError(err)
	case models.SourceRoutingAPI:
		return &apperrors.StandardError{
			Code:      apperrors.ErrCodeRoutingFailed,
			Message:   "Routing API call failed",
			Details:   err.Error(),
			Retryable: true,
			Timestamp: time.Now().UTC(),
		}
	}
	return &apperrors.StandardError{
		Code:      apperrors.ErrCodeStepExecutionFailed,
		Message:   "Plan step execution failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func (h *Handler) mapErrorToCode(err error) string {
	return string(h.classifyError(err, "").Code)
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

// failJobRetryable reports the failure back with a retry budget instead of
// raising a BPMN error, so the broker re-delivers the job.
func (h *Handler) failJobRetryable(client worker.JobClient, job entities.Job, bpmnErr *apperrors.BPMNError) {
	h.logger.Warn("job failed, will retry", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    bpmnErr.Code,
		"errorMessage": bpmnErr.Message,
		"retries":      bpmnErr.Retries,
	})

	_, err := client.NewFailJobCommand().
		JobKey(job.Key).
		Retries(int32(bpmnErr.Retries)).
		ErrorMessage(bpmnErr.Details).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to fail job", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
