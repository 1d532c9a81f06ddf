// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Shubhankar10/Map-Assistant/internal/common/config"
	"github.com/Shubhankar10/Map-Assistant/internal/common/database"
	commonhttp "github.com/Shubhankar10/Map-Assistant/internal/common/http"
	"github.com/Shubhankar10/Map-Assistant/internal/common/llm"
	"github.com/Shubhankar10/Map-Assistant/internal/common/logger"
	"github.com/Shubhankar10/Map-Assistant/internal/common/observability"
	"github.com/Shubhankar10/Map-Assistant/internal/common/validation"
	"github.com/Shubhankar10/Map-Assistant/pkg/registry"

	es "github.com/Shubhankar10/Map-Assistant/internal/workers/plan-execution/execute-step"
	rq "github.com/Shubhankar10/Map-Assistant/internal/workers/query-routing/route-query"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var zeebeClient zbc.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebeClient, err = zbc.NewClient(&zbc.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init External Service Clients ---
	llmClient, err := llm.NewClient(cfg.APIs.LLM)
	if err != nil {
		zapLog.Fatal("llm client init failed", zap.Error(err))
	}

	routingClient := commonhttp.NewClient(
		time.Duration(cfg.APIs.Routing.Timeout)*time.Millisecond,
		cfg.APIs.Routing.MaxRetries,
	)

	planValidator := validation.NewPlanValidator(registry.Default())

	zapLog.Info("All external service clients initialized")

	// --- Register Workers ---
	if cfg.Workers[rq.TaskType].Enabled {
		handler := rq.NewHandler(
			&rq.Config{
				CacheTTL:       time.Duration(cfg.Routing.CacheTTL) * time.Second,
				CachePrefix:    cfg.Routing.CachePrefix,
				PersistQueries: cfg.Routing.PersistQueries,
				Timeout:        time.Duration(cfg.Workers[rq.TaskType].Timeout) * time.Millisecond,
			},
			redis.Client, pg.DB, planValidator, log,
		)
		startWorker(zeebeClient, rq.TaskType, cfg.Workers[rq.TaskType], handler.Handle, obs, zapLog)
	}

	if cfg.Workers[es.TaskType].Enabled {
		handler := es.NewHandler(
			&es.Config{
				POIIndex:       cfg.Database.Elasticsearch.POIIndex,
				RoutingBaseURL: cfg.APIs.Routing.BaseURL,
				Timeout:        time.Duration(cfg.Workers[es.TaskType].Timeout) * time.Millisecond,
			},
			llmClient, esClient.Client, routingClient, log,
		)
		startWorker(zeebeClient, es.TaskType, cfg.Workers[es.TaskType], handler.Handle, obs, zapLog)
	}

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")

	if err := zeebeClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func startWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handlerFunc func(worker.JobClient, entities.Job), obs *observability.Observability, log *zap.Logger) {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return
	}

	timed := func(jobClient worker.JobClient, job entities.Job) {
		start := time.Now()
		handlerFunc(jobClient, job)
		obs.RecordJobHandled(context.Background(), taskType, time.Since(start))
	}

	client.NewJobWorker().
		JobType(taskType).
		Handler(timed).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond).
		Open()

	log.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)
}
