package tools

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ErrorCodeInvalidInput is returned when arguments do not match the input schema.
	ErrorCodeInvalidInput = "INVALID_INPUT"
	// ErrorCodeNotFound is returned when a tool name is unknown.
	ErrorCodeNotFound = "TOOL_NOT_FOUND"
	// ErrorCodeExecutionFailed is a generic fallback for tool failures.
	ErrorCodeExecutionFailed = "EXECUTION_FAILED"
)

// ToolError is a structured tool invocation error
type ToolError struct {
	Tool    string `json:"tool,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *ToolError) Error() string {
	if e == nil {
		return ""
	}
	code := strings.TrimSpace(e.Code)
	if code == "" {
		code = ErrorCodeExecutionFailed
	}
	if e.Tool == "" {
		return fmt.Sprintf("%s: %s", code, e.Message)
	}
	return fmt.Sprintf("%s %s: %s", e.Tool, code, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *ToolError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// NewToolError returns a ToolError, the message defaults to the cause text
func NewToolError(tool string, code string, message string, cause error) *ToolError {
	if message == "" && cause != nil {
		message = cause.Error()
	}
	return &ToolError{
		Tool:    tool,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// ErrorCode returns the ToolError code carried by err, or empty string
func ErrorCode(err error) string {
	var te *ToolError
	if errors.As(err, &te) {
		return te.Code
	}
	return ""
}
