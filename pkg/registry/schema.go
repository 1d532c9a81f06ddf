// pkg/registry/schema.go
package registry

// OperationRegistry is the catalog of plan operations the executors accept.
// It is the contract between the query-understanding core and the
// orchestrator: every PlanStep a decomposer emits must name an operation
// from this catalog, carry its executor tag, and satisfy its args schema.
type OperationRegistry struct {
	Version     string      `json:"version"`
	LastUpdated string      `json:"lastUpdated"`
	Operations  []Operation `json:"operations"`
}

type Operation struct {
	Op          string                 `json:"op"`
	Executor    string                 `json:"executor"`
	Description string                 `json:"description"`
	ArgsSchema  map[string]interface{} `json:"argsSchema"`
	Features    []string               `json:"features,omitempty"`
}

// ByOp indexes the catalog for lookup.
func (r *OperationRegistry) ByOp() map[string]Operation {
	out := make(map[string]Operation, len(r.Operations))
	for _, op := range r.Operations {
		out[op.Op] = op
	}
	return out
}
