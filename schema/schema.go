package schema

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// Schema is message schema interface
type Schema interface {
	String() string
}

// Stringify returns the text presentation of a schema used in chat messages
func Stringify(s Schema) string {
	if s == nil {
		return ""
	}
	return s.String()
}

// JSON marshals v and returns it as string, errors are rendered as empty object
func JSON(v any) string {
	bs, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(bs)
}

var reflector = &jsonschema.Reflector{
	DoNotReference: true,
	ExpandedStruct: true,
}

// Reflect returns the JSON schema describing v
func Reflect(v any) *jsonschema.Schema {
	ret := reflector.Reflect(v)
	ret.Version = ""
	return ret
}

// ReflectType returns the JSON schema describing T
func ReflectType[T any]() *jsonschema.Schema {
	return Reflect(new(T))
}
