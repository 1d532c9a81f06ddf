// internal/common/database/querylog_test.go
package database

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shubhankar10/Map-Assistant/internal/models"
)

func setupQueryLog(t *testing.T) (*QueryLog, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewQueryLog(db), mock, db
}

func TestQueryLog_Insert(t *testing.T) {
	queryLog, mock, db := setupQueryLog(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO routed_queries").
		WillReturnResult(sqlmock.NewResult(1, 1))

	routed := &models.RoutedQuery{
		Analysis: &models.QueryAnalysis{Raw: "plan a 3-day jaipur trip"},
		Classification: models.Classification{
			Feature:    models.FeatureTripSuggestions,
			Confidence: 1.0,
			Reasons:    []string{"matched: trip"},
		},
	}

	err := queryLog.Insert(context.Background(), "req-1", "user-1", routed)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryLog_FeatureCounts(t *testing.T) {
	queryLog, mock, db := setupQueryLog(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"feature", "count"}).
		AddRow("smart_trip_suggestions", 12).
		AddRow("meeting_point_recommender", 4)
	mock.ExpectQuery("SELECT feature, COUNT").WillReturnRows(rows)

	counts, err := queryLog.FeatureCounts(context.Background())

	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		"smart_trip_suggestions":    12,
		"meeting_point_recommender": 4,
	}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryLog_FeatureCounts_QueryError(t *testing.T) {
	queryLog, mock, db := setupQueryLog(t)
	defer db.Close()

	mock.ExpectQuery("SELECT feature, COUNT").WillReturnError(sql.ErrConnDone)

	_, err := queryLog.FeatureCounts(context.Background())

	assert.Error(t, err)
}
