// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeRouteQueryFailed     ErrorCode = "ROUTE_QUERY_FAILED"
	ErrCodePlanValidationFailed ErrorCode = "PLAN_VALIDATION_FAILED"

	ErrCodeStepExecutionFailed ErrorCode = "STEP_EXECUTION_FAILED"
	ErrCodeUnknownExecutor     ErrorCode = "UNKNOWN_EXECUTOR"
	ErrCodeUnknownOperation    ErrorCode = "UNKNOWN_OPERATION"

	ErrCodeLLMTimeout      ErrorCode = "LLM_TIMEOUT"
	ErrCodeLLMCallFailed   ErrorCode = "LLM_CALL_FAILED"
	ErrCodePOISearchFailed ErrorCode = "POI_SEARCH_FAILED"
	ErrCodeRoutingTimeout  ErrorCode = "ROUTING_API_TIMEOUT"
	ErrCodeRoutingFailed   ErrorCode = "ROUTING_API_FAILED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeQueryTimeout             ErrorCode = "QUERY_TIMEOUT"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	if e.ErrorVariables != nil {
		for k, v := range e.ErrorVariables {
			vars[k] = v
		}
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewRouteQueryFailedError wraps an unexpected failure in the route-query worker.
func NewRouteQueryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRouteQueryFailed,
		Message:   "Query routing failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewPlanValidationFailedError reports a plan that does not match the
// operation catalog. Non-retryable: the plan is deterministic.
func NewPlanValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodePlanValidationFailed,
		Message:   "Emitted plan failed schema validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownExecutorError reports a step whose executor tag is not one of
// the known collaborators.
func NewUnknownExecutorError(executor string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownExecutor,
		Message:   "Step names an unknown executor",
		Details:   fmt.Sprintf("executor: %s", executor),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewLLMTimeoutError creates a retryable LLM timeout error.
func NewLLMTimeoutError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeLLMTimeout,
		Message:   "LLM call timed out",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewPOISearchFailedError creates a retryable POI search error.
func NewPOISearchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodePOISearchFailed,
		Message:   "POI search failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRoutingTimeoutError creates a retryable routing API timeout error.
func NewRoutingTimeoutError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRoutingTimeout,
		Message:   "Routing API call timed out",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseError creates a retryable database error.
func NewDatabaseError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database operation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Retry Policy
// ==========================

// retryCounts maps error codes to how many Camunda retries they warrant.
var retryCounts = map[ErrorCode]int{
	ErrCodeLLMTimeout:               1,
	ErrCodeLLMCallFailed:            2,
	ErrCodePOISearchFailed:          2,
	ErrCodeRoutingTimeout:           1,
	ErrCodeRoutingFailed:            2,
	ErrCodeDatabaseConnectionFailed: 3,
	ErrCodeQueryExecutionFailed:     2,
	ErrCodeQueryTimeout:             1,
}

// GetRetryCount returns the retry budget for a code; 0 means fail fast.
func GetRetryCount(code ErrorCode) int {
	return retryCounts[code]
}

// ConvertToBPMNError maps a StandardError to its workflow-engine form.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	return &BPMNError{
		Code:      string(stdErr.Code),
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   GetRetryCount(stdErr.Code),
	}
}
