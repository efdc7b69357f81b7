package calculator

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/bububa/heroku-a2a/schema"
	"github.com/bububa/heroku-a2a/tools"
)

// Input Tool for performing calculations. Supports basic arithmetic operations
// like addition, subtraction, multiplication, and division, as well as
// exponentiation and trigonometric functions.
type Input struct {
	// Expression Mathematical expression to evaluate. For example, '2 + 2'.
	Expression string `json:"expression" jsonschema:"title=expression,description=The mathematical expression to evaluate. Supports basic operators (+ - * / ^) and functions (sin cos tan sqrt abs round) and the constants pi and e." validate:"required"`
}

func NewInput(exp string) *Input {
	return &Input{
		Expression: exp,
	}
}

func (s Input) String() string {
	return schema.JSON(s)
}

// Output Schema for the output of the calculator tool
type Output struct {
	// Result Result of the calculation, null when the expression could not be evaluated
	Result float64 `json:"result" jsonschema:"title=result,description=The result of the calculation."`
	// Expression The evaluated expression, or the error message
	Expression string `json:"expression" jsonschema:"title=expression,description=The expression that was evaluated."`
}

func NewOutput(result float64, exp string) *Output {
	return &Output{
		Result:     result,
		Expression: exp,
	}
}

// NewErrorOutput returns the failure output for exp
func NewErrorOutput(exp string, err error) *Output {
	return NewOutput(math.NaN(), fmt.Sprintf("Error evaluating %s: %v", exp, err))
}

// Failed reports whether the output carries an evaluation error
func (s Output) Failed() bool {
	return math.IsNaN(s.Result)
}

func (s Output) MarshalJSON() ([]byte, error) {
	type output struct {
		Result     *float64 `json:"result"`
		Expression string   `json:"expression"`
	}
	ret := output{Expression: s.Expression}
	if !s.Failed() && !math.IsInf(s.Result, 0) {
		ret.Result = &s.Result
	}
	return json.Marshal(ret)
}

func (s Output) String() string {
	return schema.JSON(s)
}

type Tool struct {
	tools.Config
}

func New(opts ...tools.Option) *Tool {
	ret := new(Tool)
	tools.Apply(&ret.Config, "calculator", "Evaluates mathematical expressions", opts...)
	return ret
}

// Run evaluates the expression. Evaluation faults are reported in the output, not as an error.
func (t *Tool) Run(ctx context.Context, input *Input) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result, err := Evaluate(input.Expression)
	if err != nil {
		return NewErrorOutput(input.Expression, err), nil
	}
	return NewOutput(result, input.Expression), nil
}
