package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/bububa/heroku-a2a/schema"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate validates a tool input struct against its validate tags
func Validate(in any) error {
	return validate.Struct(in)
}

type anonymousTool[I any, O any] struct {
	tool Tool[I, O]
	spec Spec
}

var _ AnonymousTool = (*anonymousTool[struct{}, struct{}])(nil)

// Anonymous adapts a typed tool into an AnonymousTool.
// Arguments are decoded into I, defaulted, validated and passed to Run.
func Anonymous[I any, O any](t Tool[I, O]) AnonymousTool {
	return &anonymousTool[I, O]{
		tool: t,
		spec: Spec{
			Name:         t.Name(),
			Description:  t.Description(),
			InputSchema:  schema.ReflectType[I](),
			OutputSchema: schema.ReflectType[O](),
		},
	}
}

func (a *anonymousTool[I, O]) Name() string {
	return a.spec.Name
}

func (a *anonymousTool[I, O]) Description() string {
	return a.spec.Description
}

func (a *anonymousTool[I, O]) Spec() Spec {
	return a.spec
}

// Call runs the tool with raw JSON arguments
func (a *anonymousTool[I, O]) Call(ctx context.Context, args json.RawMessage) (ret any, err error) {
	in := new(I)
	if len(bytes.TrimSpace(args)) > 0 {
		if err := json.Unmarshal(args, in); err != nil {
			return nil, NewToolError(a.Name(), ErrorCodeInvalidInput, "", err)
		}
	}
	if d, ok := any(in).(Defaulter); ok {
		d.SetDefaults()
	}
	if err := validate.Struct(in); err != nil {
		return nil, NewToolError(a.Name(), ErrorCodeInvalidInput, "", err)
	}
	defer func() {
		if r := recover(); r != nil {
			ret = nil
			err = NewToolError(a.Name(), ErrorCodeExecutionFailed, fmt.Sprintf("panic: %v", r), nil)
		}
	}()
	out, err := a.tool.Run(ctx, in)
	if err != nil {
		var te *ToolError
		if errors.As(err, &te) {
			return nil, err
		}
		return nil, NewToolError(a.Name(), ErrorCodeExecutionFailed, "", err)
	}
	return out, nil
}
