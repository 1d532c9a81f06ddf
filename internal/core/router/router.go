// internal/core/router/router.go

// Package router is the composition root of the query understanding
// pipeline: analysis, classification, decomposition, in that fixed order.
// Process is stateless and touches no shared mutable state, so callers may
// invoke it concurrently without locks.
package router

import (
	"github.com/Shubhankar10/Map-Assistant/internal/core/analysis"
	"github.com/Shubhankar10/Map-Assistant/internal/core/classify"
	"github.com/Shubhankar10/Map-Assistant/internal/core/decompose"
	"github.com/Shubhankar10/Map-Assistant/internal/models"
)

// Process runs the full pipeline over one raw query. Identical inputs yield
// identical RoutedQuery values.
func Process(raw string) *models.RoutedQuery {
	a := analysis.Analyze(raw)
	c := classify.Classify(a)
	d := decompose.Get(c.Feature)(a)

	return &models.RoutedQuery{
		Analysis:       a,
		Classification: c,
		Decomposition:  d,
	}
}
