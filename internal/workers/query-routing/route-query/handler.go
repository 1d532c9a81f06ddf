// internal/workers/query-routing/route-query/handler.go
package routequery

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Shubhankar10/Map-Assistant/internal/common/database"
	apperrors "github.com/Shubhankar10/Map-Assistant/internal/common/errors"
	"github.com/Shubhankar10/Map-Assistant/internal/common/logger"
	"github.com/Shubhankar10/Map-Assistant/internal/common/metrics"
	"github.com/Shubhankar10/Map-Assistant/internal/common/validation"
	"github.com/Shubhankar10/Map-Assistant/internal/core/router"
	"github.com/Shubhankar10/Map-Assistant/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "route-query"
)

var (
	ErrEmptyQuery = errors.New("EMPTY_QUERY")
)

type Handler struct {
	config    *Config
	redis     *redis.Client
	queryLog  *database.QueryLog
	validator *validation.PlanValidator
	logger    logger.Logger
}

func NewHandler(config *Config, rdb *redis.Client, db *sql.DB, validator *validation.PlanValidator, log logger.Logger) *Handler {
	var queryLog *database.QueryLog
	if db != nil {
		queryLog = database.NewQueryLog(db)
	}
	return &Handler{
		config:    config,
		redis:     rdb,
		queryLog:  queryLog,
		validator: validator,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
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
		stdErr := apperrors.NewRouteQueryFailedError(err)
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
		h.failJob(client, job, string(stdErr.Code), stdErr.Details)
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if strings.TrimSpace(input.Query) == "" {
		return nil, ErrEmptyQuery
	}

	requestID := uuid.New().String()
	cacheKey := h.cacheKey(input.Query)

	if routed, ok := h.cacheGet(ctx, cacheKey); ok {
		h.logger.Info("cache hit", map[string]interface{}{
			"requestId": requestID,
			"feature":   routed.Classification.Feature,
		})
		return &Output{
			RequestID:       requestID,
			Routed:          routed,
			CacheHit:        true,
			ValidationNotes: h.validate(routed),
		}, nil
	}

	routed := router.Process(input.Query)
	notes := h.validate(routed)

	feature := string(routed.Classification.Feature)
	metrics.QueriesRouted.WithLabelValues(feature).Inc()
	metrics.RoutingConfidence.WithLabelValues(feature).Observe(routed.Classification.Confidence)
	metrics.PlanStepsEmitted.WithLabelValues(feature).Observe(float64(len(routed.Decomposition.Steps)))

	h.logger.Info("query routed", map[string]interface{}{
		"requestId":  requestID,
		"feature":    feature,
		"confidence": routed.Classification.Confidence,
		"steps":      len(routed.Decomposition.Steps),
	})

	h.cacheSet(ctx, cacheKey, routed)
	h.persist(ctx, requestID, input.UserID, routed)

	return &Output{
		RequestID:       requestID,
		Routed:          routed,
		CacheHit:        false,
		ValidationNotes: notes,
	}, nil
}

func (h *Handler) validate(routed *models.RoutedQuery) []string {
	if h.validator == nil {
		return nil
	}
	return h.validator.Validate(routed.Decomposition)
}

func (h *Handler) cacheKey(query string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(query)), " ")
	sum := sha256.Sum256([]byte(normalized))
	return h.config.CachePrefix + hex.EncodeToString(sum[:])
}

func (h *Handler) cacheGet(ctx context.Context, key string) (*models.RoutedQuery, bool) {
	if h.redis == nil {
		return nil, false
	}
	val, err := h.redis.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}
	var routed models.RoutedQuery
	if err := json.Unmarshal([]byte(val), &routed); err != nil {
		return nil, false
	}
	return &routed, true
}

func (h *Handler) cacheSet(ctx context.Context, key string, routed *models.RoutedQuery) {
	if h.redis == nil {
		return
	}
	data, err := json.Marshal(routed)
	if err != nil {
		return
	}
	if err := h.redis.Set(ctx, key, data, h.config.CacheTTL).Err(); err != nil {
		h.logger.Warn("cache write failed", map[string]interface{}{"error": err})
	}
}

func (h *Handler) persist(ctx context.Context, requestID, userID string, routed *models.RoutedQuery) {
	if h.queryLog == nil || !h.config.PersistQueries {
		return
	}
	if err := h.queryLog.Insert(ctx, requestID, userID, routed); err != nil {
		h.logger.Warn("audit insert failed", map[string]interface{}{
			"requestId": requestID,
			"error":     err,
		})
	}
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

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
