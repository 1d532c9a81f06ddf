// internal/models/query.go
package models

// QueryAnalysis is the output of the analysis stage: everything we could
// deterministically pull out of the raw query text. All fields derive from
// Raw alone, so identical inputs always produce identical records.
type QueryAnalysis struct {
	Raw    string   `json:"raw"`
	Tokens []string `json:"tokens"`

	Cities []string `json:"cities"`
	POIs   []string `json:"pois"`
	// People holds group-size hints as strings (e.g. "2"). Duplicates from
	// different detection rules are kept in detection order.
	People []string `json:"people"`

	Money    *float64 `json:"money,omitempty"`
	Currency string   `json:"currency,omitempty"`

	Days       *int     `json:"days,omitempty"`
	DateSpans  []string `json:"dateSpans"`
	TimesOfDay []string `json:"timesOfDay"`

	// Constraints is a convenience bag combining the money/day/date findings
	// under stable keys: budget_value, budget_currency, days, date_spans.
	Constraints map[string]interface{} `json:"constraints"`
}

// Classification is the routing verdict for a query.
type Classification struct {
	Feature    Feature  `json:"feature"`
	Confidence float64  `json:"confidence"`
	// Reasons is the audit trail: every point of confidence must be
	// traceable to one of these strings.
	Reasons []string `json:"reasons"`
}

// PlanStep is a single named unit of downstream work.
//
// Conventions:
//   - Op: UPPER_SNAKE verbs, stable across releases
//   - Args: JSON-serializable values only
//   - Source: which collaborator executes the step ('llm', 'pois_db',
//     'engine', 'routing_api')
type PlanStep struct {
	Op     string                 `json:"op"`
	Args   map[string]interface{} `json:"args"`
	Source string                 `json:"source"`
}

// Executor tags a PlanStep may carry.
const (
	SourceLLM        = "llm"
	SourcePOIsDB     = "pois_db"
	SourceEngine     = "engine"
	SourceRoutingAPI = "routing_api"
)

// Decomposition is the ordered logical plan for one query. Step order is the
// contract with the orchestrator that executes it.
type Decomposition struct {
	Steps []PlanStep `json:"steps"`
	Notes string     `json:"notes"`
}

// RoutedQuery bundles the three pipeline outputs. It is immutable after
// construction.
type RoutedQuery struct {
	Analysis       *QueryAnalysis `json:"analysis"`
	Classification Classification `json:"classification"`
	Decomposition  Decomposition  `json:"decomposition"`
}
