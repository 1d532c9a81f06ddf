// internal/common/database/querylog.go
package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Shubhankar10/Map-Assistant/internal/models"

	"github.com/lib/pq"
)

// QueryLog persists routed queries for audit and offline rule tuning.
// The core pipeline never touches this; only the route-query worker writes
// here, best-effort.
type QueryLog struct {
	db *sql.DB
}

func NewQueryLog(db *sql.DB) *QueryLog {
	return &QueryLog{db: db}
}

const insertRoutedQuery = `
	INSERT INTO routed_queries
		(request_id, user_id, query, feature, confidence, reasons, plan, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())`

// Insert writes one routed query. The plan is stored as JSONB so the audit
// table can be queried by operation.
func (q *QueryLog) Insert(ctx context.Context, requestID, userID string, routed *models.RoutedQuery) error {
	plan, err := json.Marshal(routed.Decomposition)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}

	_, err = q.db.ExecContext(ctx, insertRoutedQuery,
		requestID,
		userID,
		routed.Analysis.Raw,
		string(routed.Classification.Feature),
		routed.Classification.Confidence,
		pq.Array(routed.Classification.Reasons),
		plan,
	)
	if err != nil {
		return fmt.Errorf("insert routed query: %w", err)
	}
	return nil
}

// FeatureCounts returns how many queries each feature received, for the
// registry-validator tool's coverage report.
func (q *QueryLog) FeatureCounts(ctx context.Context) (map[string]int, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT feature, COUNT(*) FROM routed_queries GROUP BY feature`)
	if err != nil {
		return nil, fmt.Errorf("feature counts: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var feature string
		var n int
		if err := rows.Scan(&feature, &n); err != nil {
			return nil, err
		}
		counts[feature] = n
	}
	return counts, rows.Err()
}
