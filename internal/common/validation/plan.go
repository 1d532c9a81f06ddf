// internal/common/validation/plan.go

// Package validation checks emitted plans against the operation catalog.
// Validation failures are surfaced as data (notes, error variables), never
// as panics: a malformed plan is a bug report, not a crash.
package validation

import (
	"fmt"
	"strings"

	"github.com/Shubhankar10/Map-Assistant/internal/models"
	"github.com/Shubhankar10/Map-Assistant/pkg/registry"

	"github.com/xeipuuv/gojsonschema"
)

var knownExecutors = map[string]bool{
	models.SourceLLM:        true,
	models.SourcePOIsDB:     true,
	models.SourceEngine:     true,
	models.SourceRoutingAPI: true,
}

// PlanValidator validates decompositions against an operation catalog.
type PlanValidator struct {
	ops map[string]registry.Operation
}

func NewPlanValidator(reg *registry.OperationRegistry) *PlanValidator {
	return &PlanValidator{ops: reg.ByOp()}
}

// Validate returns one message per defect found in the plan. An empty slice
// means the plan is well-formed.
func (v *PlanValidator) Validate(dec models.Decomposition) []string {
	var problems []string

	for i, step := range dec.Steps {
		if !knownExecutors[step.Source] {
			problems = append(problems, fmt.Sprintf("step %d (%s): unknown executor %q", i, step.Op, step.Source))
			continue
		}

		op, ok := v.ops[step.Op]
		if !ok {
			problems = append(problems, fmt.Sprintf("step %d: operation %q not in catalog", i, step.Op))
			continue
		}
		if op.Executor != step.Source {
			problems = append(problems, fmt.Sprintf("step %d (%s): executor %q, catalog expects %q", i, step.Op, step.Source, op.Executor))
		}

		if len(op.ArgsSchema) == 0 {
			continue
		}
		schemaLoader := gojsonschema.NewGoLoader(op.ArgsSchema)
		documentLoader := gojsonschema.NewGoLoader(step.Args)

		result, err := gojsonschema.Validate(schemaLoader, documentLoader)
		if err != nil {
			problems = append(problems, fmt.Sprintf("step %d (%s): validation error: %v", i, step.Op, err))
			continue
		}
		if !result.Valid() {
			var msgs []string
			for _, desc := range result.Errors() {
				msgs = append(msgs, desc.String())
			}
			problems = append(problems, fmt.Sprintf("step %d (%s): args invalid: %s", i, step.Op, strings.Join(msgs, "; ")))
		}
	}

	return problems
}
