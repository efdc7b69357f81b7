// Package builtin wires the tools shipped with the agent into a registry
package builtin

import (
	"github.com/bububa/heroku-a2a/tools"
	"github.com/bububa/heroku-a2a/tools/calculator"
	"github.com/bububa/heroku-a2a/tools/search"
)

// Calculator returns the calculator tool ready to be attached to an agent
func Calculator() tools.AnonymousTool {
	return tools.Anonymous[calculator.Input, calculator.Output](calculator.New())
}

// Search returns the mock search tool ready to be attached to an agent
func Search() tools.AnonymousTool {
	return tools.Anonymous[search.Input, search.Output](search.New())
}

// NewRegistry returns a registry holding the calculator and search tools
func NewRegistry() *tools.Registry {
	reg, err := tools.NewRegistry(Calculator(), Search())
	if err != nil {
		panic(err)
	}
	return reg
}
