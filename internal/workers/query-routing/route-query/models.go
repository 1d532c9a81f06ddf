// internal/workers/query-routing/route-query/models.go
package routequery

import "github.com/Shubhankar10/Map-Assistant/internal/models"

type Input struct {
	Query  string `json:"query"`
	UserID string `json:"userId,omitempty"`
}

type Output struct {
	RequestID       string              `json:"requestId"`
	Routed          *models.RoutedQuery `json:"routed"`
	CacheHit        bool                `json:"cacheHit"`
	ValidationNotes []string            `json:"validationNotes,omitempty"`
}
