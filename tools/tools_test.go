package tools

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upperInput struct {
	Text  string `json:"text" validate:"required"`
	Times int    `json:"times,omitempty" validate:"gte=0,lte=3"`
}

func (in *upperInput) SetDefaults() {
	if in.Times == 0 {
		in.Times = 1
	}
}

type upperOutput struct {
	Text string `json:"text"`
}

type upperTool struct {
	Config
	fail  error
	panic bool
}

func newUpperTool(opts ...Option) *upperTool {
	ret := new(upperTool)
	Apply(&ret.Config, "upper", "Uppercases text", opts...)
	return ret
}

func (t *upperTool) Run(_ context.Context, in *upperInput) (*upperOutput, error) {
	if t.panic {
		panic("boom")
	}
	if t.fail != nil {
		return nil, t.fail
	}
	return &upperOutput{Text: strings.Repeat(strings.ToUpper(in.Text), in.Times)}, nil
}

func TestAnonymousCall(t *testing.T) {
	ctx := context.Background()
	tool := Anonymous[upperInput, upperOutput](newUpperTool())
	assert.Equal(t, "upper", tool.Name())
	assert.Equal(t, "Uppercases text", tool.Description())
	require.NotNil(t, tool.Spec().InputSchema)
	require.NotNil(t, tool.Spec().OutputSchema)

	ret, err := tool.Call(ctx, json.RawMessage(`{"text":"go"}`))
	require.NoError(t, err)
	assert.Equal(t, &upperOutput{Text: "GO"}, ret)

	ret, err = tool.Call(ctx, json.RawMessage(`{"text":"go","times":2}`))
	require.NoError(t, err)
	assert.Equal(t, &upperOutput{Text: "GOGO"}, ret)
}

func TestAnonymousCallInvalidInput(t *testing.T) {
	ctx := context.Background()
	tool := Anonymous[upperInput, upperOutput](newUpperTool())
	for _, args := range []string{`{`, `{}`, `{"text":"go","times":9}`, `{"text":1}`, ``} {
		_, err := tool.Call(ctx, json.RawMessage(args))
		require.Error(t, err, args)
		assert.Equal(t, ErrorCodeInvalidInput, ErrorCode(err), args)
	}
}

func TestAnonymousCallFailures(t *testing.T) {
	ctx := context.Background()
	cause := errors.New("backend down")
	failing := newUpperTool(WithName("failing"))
	failing.fail = cause
	_, err := Anonymous[upperInput, upperOutput](failing).Call(ctx, json.RawMessage(`{"text":"go"}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ErrorCodeExecutionFailed, ErrorCode(err))
	assert.Equal(t, "failing EXECUTION_FAILED: backend down", err.Error())

	panicking := newUpperTool()
	panicking.panic = true
	_, err = Anonymous[upperInput, upperOutput](panicking).Call(ctx, json.RawMessage(`{"text":"go"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic: boom")
}

func TestRegistry(t *testing.T) {
	first := Anonymous[upperInput, upperOutput](newUpperTool())
	second := Anonymous[upperInput, upperOutput](newUpperTool(WithName("lower")))
	reg, err := NewRegistry(first, second)
	require.NoError(t, err)

	assert.Equal(t, []string{"upper", "lower"}, reg.Names())
	assert.Equal(t, 2, reg.Len())
	for _, name := range reg.Names() {
		got, ok := reg.Get(name)
		require.True(t, ok)
		assert.Equal(t, name, got.Name())
	}
	_, ok := reg.Get("nonexistent")
	assert.False(t, ok)

	replacement := Anonymous[upperInput, upperOutput](newUpperTool(WithDescription("replacement")))
	require.NoError(t, reg.Register(replacement))
	assert.Equal(t, []string{"upper", "lower"}, reg.Names())
	assert.Len(t, reg.All(), 2)
	got, _ := reg.Get("upper")
	assert.Equal(t, "replacement", got.Description())

	assert.ErrorIs(t, reg.Register(Anonymous[upperInput, upperOutput](newUpperTool(WithName(" ")))), ErrEmptyName)
	assert.ErrorIs(t, reg.Register(Anonymous[upperInput, upperOutput](newUpperTool(WithName(" calc")))), ErrInvalidName)
	_, ok = reg.Get("calc")
	assert.False(t, ok)
	for _, name := range reg.Names() {
		got, ok := reg.Get(name)
		require.True(t, ok)
		assert.Equal(t, name, got.Name())
	}
	assert.Error(t, reg.Register(nil))

	assert.Equal(t, []string{"lower", "upper"}, Names(reg.Select("lower", "missing", "upper")))
}

func TestRegistryZeroValue(t *testing.T) {
	var reg Registry
	require.NoError(t, reg.Register(Anonymous[upperInput, upperOutput](newUpperTool())))
	assert.Equal(t, []string{"upper"}, reg.Names())
}
