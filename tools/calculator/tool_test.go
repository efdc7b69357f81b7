package calculator

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bububa/heroku-a2a/tools"
)

func TestEvaluate(t *testing.T) {
	cases := []struct {
		exp  string
		want float64
	}{
		{"2 + 2", 4},
		{"sqrt(16) + 5 * 2", 14},
		{"10 - 4 - 3", 3},
		{"8 / 4 / 2", 1},
		{"2 ^ 3 ^ 2", 512},
		{"2 ** 10", 1024},
		{"-2 ^ 2", -4},
		{"2 ^ -1", 0.5},
		{"(1 + 2) * 3", 9},
		{"--3", 3},
		{"+.5", 0.5},
		{"abs(-3.5)", 3.5},
		{"round(2.5)", 2},
		{"round(3.5)", 4},
		{"cos(0)", 1},
		{"sin(0) + tan(0)", 0},
		{"pi", math.Pi},
		{"e ^ 1", math.E},
		{"sqrt(sqrt(256))", 4},
		{"  7\t*\n6 ", 42},
	}
	for _, c := range cases {
		got, err := Evaluate(c.exp)
		require.NoError(t, err, c.exp)
		assert.InDelta(t, c.want, got, 1e-9, c.exp)
	}
}

func TestEvaluateFaults(t *testing.T) {
	cases := []struct {
		exp  string
		want string
	}{
		{"1 / 0", "division by zero"},
		{"5 / (2 - 2)", "division by zero"},
		{"sqrt(-1)", "math domain error"},
		{"10 ^ 400", "numerical result out of range"},
		{"__import__('os')", "not allowed"},
		{"os.system('ls')", "not allowed"},
		{"2 + x", "not allowed"},
		{"1e5", "not allowed"},
		{"2 % 3", "not allowed"},
		{"1.2.3", "invalid number"},
		{"(1 + 2", "expected ')'"},
		{"1 + 2)", "unexpected"},
		{"2 +", "unexpected end of expression"},
		{"sqrt 4", "expected '(' after sqrt"},
		{"", "unexpected end of expression"},
		{strings.Repeat("(", 500) + "1" + strings.Repeat(")", 500), "nested too deeply"},
	}
	for _, c := range cases {
		_, err := Evaluate(c.exp)
		require.Error(t, err, c.exp)
		assert.Contains(t, err.Error(), c.want, c.exp)
	}
}

func TestRun(t *testing.T) {
	ctx := context.Background()
	tool := New()
	assert.Equal(t, "calculator", tool.Name())
	assert.Equal(t, "Evaluates mathematical expressions", tool.Description())

	ret, err := tool.Run(ctx, NewInput("2 + 2"))
	require.NoError(t, err)
	assert.Equal(t, NewOutput(4, "2 + 2"), ret)
	assert.False(t, ret.Failed())
	assert.JSONEq(t, `{"result":4,"expression":"2 + 2"}`, ret.String())

	ret, err = tool.Run(ctx, NewInput("1 / 0"))
	require.NoError(t, err)
	assert.True(t, ret.Failed())
	assert.Equal(t, "Error evaluating 1 / 0: division by zero", ret.Expression)
	assert.JSONEq(t, `{"result":null,"expression":"Error evaluating 1 / 0: division by zero"}`, ret.String())
}

func TestAnonymousCall(t *testing.T) {
	ctx := context.Background()
	tool := tools.Anonymous[Input, Output](New())
	spec := tool.Spec()
	require.NotNil(t, spec.InputSchema)
	assert.Equal(t, []string{"expression"}, spec.InputSchema.Required)

	ret, err := tool.Call(ctx, json.RawMessage(`{"expression":"sqrt(16) + 5 * 2"}`))
	require.NoError(t, err)
	out, ok := ret.(*Output)
	require.True(t, ok)
	assert.Equal(t, float64(14), out.Result)

	_, err = tool.Call(ctx, json.RawMessage(`{}`))
	require.Error(t, err)
	assert.Equal(t, tools.ErrorCodeInvalidInput, tools.ErrorCode(err))
}

func ExampleTool_Run() {
	tool := New()
	ret, _ := tool.Run(context.Background(), NewInput("2 ^ 3 + sqrt(9)"))
	fmt.Println(ret.Result)
	// Output: 11
}
