package calculator

import (
	"errors"
	"fmt"
	"math"

	"github.com/Knetic/govaluate"
)

var (
	errDivisionByZero = errors.New("division by zero")
	errMathDomain     = errors.New("math domain error")
	errOutOfRange     = errors.New("numerical result out of range")
)

// constParams are the only names usable as values
var constParams = map[string]interface{}{
	"pi": math.Pi,
	"e":  math.E,
}

// publicFunctions are the only names usable as calls
var publicFunctions = map[string]govaluate.ExpressionFunction{
	"sin":   unary("sin", math.Sin),
	"cos":   unary("cos", math.Cos),
	"tan":   unary("tan", math.Tan),
	"abs":   unary("abs", math.Abs),
	"round": unary("round", math.RoundToEven),
	"sqrt": unary("sqrt", func(x float64) float64 {
		if x < 0 {
			return math.NaN()
		}
		return math.Sqrt(x)
	}),
}

// functions is the govaluate function table, div and pow back the / and ^ operators
var functions = func() map[string]govaluate.ExpressionFunction {
	ret := make(map[string]govaluate.ExpressionFunction, len(publicFunctions)+2)
	for k, v := range publicFunctions {
		ret[k] = v
	}
	ret["div"] = binary("div", func(x, y float64) (float64, error) {
		if y == 0 {
			return 0, errDivisionByZero
		}
		return x / y, nil
	})
	ret["pow"] = binary("pow", func(x, y float64) (float64, error) {
		if x == 0 && y < 0 {
			return 0, errors.New("0.0 cannot be raised to a negative power")
		}
		ret := math.Pow(x, y)
		if math.IsNaN(ret) {
			return 0, errMathDomain
		}
		if math.IsInf(ret, 0) {
			return 0, errOutOfRange
		}
		return ret, nil
	})
	return ret
}()

func unary(name string, fn func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		values, err := floatArgs(name, 1, args)
		if err != nil {
			return nil, err
		}
		ret := fn(values[0])
		if math.IsNaN(ret) {
			return nil, errMathDomain
		}
		return ret, nil
	}
}

func binary(name string, fn func(float64, float64) (float64, error)) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		values, err := floatArgs(name, 2, args)
		if err != nil {
			return nil, err
		}
		return fn(values[0], values[1])
	}
}

func floatArgs(name string, n int, args []interface{}) ([]float64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%s() takes exactly %d argument(s) (%d given)", name, n, len(args))
	}
	ret := make([]float64, 0, n)
	for _, arg := range args {
		v, ok := arg.(float64)
		if !ok {
			return nil, fmt.Errorf("%s() argument must be a number, not %T", name, arg)
		}
		ret = append(ret, v)
	}
	return ret, nil
}
