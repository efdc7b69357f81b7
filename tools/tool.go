package tools

import (
	"context"
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// ITool is the identity shared by every tool
type ITool interface {
	Name() string
	Description() string
}

// Tool is a typed tool with input schema I and output schema O
type Tool[I any, O any] interface {
	ITool
	Run(context.Context, *I) (*O, error)
}

// AnonymousTool is a tool callable with raw JSON arguments, the shape agents consume
type AnonymousTool interface {
	ITool
	Spec() Spec
	Call(ctx context.Context, args json.RawMessage) (any, error)
}

// Spec describes a tool to a language model
type Spec struct {
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	InputSchema  *jsonschema.Schema `json:"input_schema,omitempty"`
	OutputSchema *jsonschema.Schema `json:"output_schema,omitempty"`
}

// Defaulter is implemented by inputs which fill omitted fields before validation
type Defaulter interface {
	SetDefaults()
}

// Names returns the names of the tools in order
func Names(list []AnonymousTool) []string {
	ret := make([]string, 0, len(list))
	for _, t := range list {
		ret = append(ret, t.Name())
	}
	return ret
}
