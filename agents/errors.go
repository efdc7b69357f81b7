package agents

import (
	"errors"
	"fmt"

	"github.com/bububa/heroku-a2a/components/provider"
)

var (
	// ErrMissingCredential is returned when no inference API key is configured
	ErrMissingCredential = provider.ErrMissingCredential
	// ErrNoClient is returned when running an agent without model client
	ErrNoClient = errors.New("agent has no model client")
	// ErrToolRoundsExceeded is returned when the model keeps requesting tools past the round limit
	ErrToolRoundsExceeded = errors.New("tool round limit exceeded")
	// ErrInvalidSchema is returned when a chain step receives an unexpected value
	ErrInvalidSchema = errors.New("invalid input schema")
)

// ConfigurationError reports an agent which could not be constructed
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return e.Err.Error()
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// InvocationError reports a failed agent run
type InvocationError struct {
	Agent string
	Err   error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("agent %s: %v", e.Agent, e.Err)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

func newInvocationError(agent string, err error) error {
	var ie *InvocationError
	if errors.As(err, &ie) {
		return err
	}
	return &InvocationError{Agent: agent, Err: err}
}
