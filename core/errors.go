package core

import "fmt"

// Error codes carried by ToolError for categorization.
const (
	// ToolErrorCodeNotFound marks a call naming an unregistered function.
	ToolErrorCodeNotFound = "TOOL_NOT_FOUND"
	// ToolErrorCodeValidation marks an argument payload that failed to parse
	// or to validate against the declared parameter schema.
	ToolErrorCodeValidation = "VALIDATION_ERROR"
	// ToolErrorCodeExecution marks a handler that returned an error.
	ToolErrorCodeExecution = "EXECUTION_ERROR"
)

// ToolError represents errors that occur while resolving or executing a tool
// call. Errors of this class are recovered: the executor converts them into
// tool-role conversation content so the model can react, and the run
// continues.
type ToolError struct {
	Tool    string      `json:"tool"`              // Name of the tool that failed
	Message string      `json:"message"`           // Error message
	Code    string      `json:"code"`              // Error code for categorization
	Details interface{} `json:"details,omitempty"` // Additional error details
}

func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// NewToolError creates a new ToolError with the specified details.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{
		Tool:    tool,
		Message: message,
		Code:    code,
	}
}

// InvalidFunctionError reports an attempt to register something that cannot
// be invoked as an agent function. It is raised at registration time, never
// during a run.
type InvalidFunctionError struct {
	Reason string
}

func (e *InvalidFunctionError) Error() string {
	return fmt.Sprintf("invalid function: %s", e.Reason)
}

// ResultCastError reports a function return value that could not be rendered
// into text. It is fatal: the run aborts because the value signals a
// programming error in the function, not a transient condition.
type ResultCastError struct {
	Value any
	Err   error
}

func (e *ResultCastError) Error() string {
	return fmt.Sprintf(
		"failed to cast result of type %T to string: make sure the function returns a string, *core.Result or *core.Agent: %v",
		e.Value, e.Err,
	)
}

func (e *ResultCastError) Unwrap() error { return e.Err }

// ProviderError wraps a completion provider failure. It is fatal: the run
// aborts immediately and no retry is attempted.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
