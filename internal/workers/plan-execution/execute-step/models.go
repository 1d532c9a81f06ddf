// internal/workers/plan-execution/execute-step/models.go
package executestep

import "github.com/Shubhankar10/Map-Assistant/internal/models"

type Input struct {
	Step models.PlanStep `json:"step"`
	// Payload carries outputs of upstream steps keyed by the names the
	// plan builders use (candidates, spots, matrix, reviews, options).
	Payload map[string]interface{} `json:"payload,omitempty"`
}

type Output struct {
	Op       string      `json:"op"`
	Executor string      `json:"executor"`
	Result   interface{} `json:"result"`
	TookMs   int64       `json:"tookMs"`
}
