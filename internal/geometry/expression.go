package geometry

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ErrExpression reports a map expression that does not compile or does not
// yield two finite numbers at the check point.
var ErrExpression = errors.New("invalid map expression")

// ExpressionCheck is the point every expression is evaluated at before use.
var ExpressionCheck = Point{X: 1, Y: 1}

// ExpressionStart is where an expression orbit begins.
var ExpressionStart = ExpressionCheck

type exprEnv struct {
	X float64 `expr:"x"`
	Y float64 `expr:"y"`
}

func unary(name string, fn func(float64) float64) expr.Option {
	return expr.Function(name, func(params ...any) (any, error) {
		return fn(params[0].(float64)), nil
	}, new(func(float64) float64))
}

var exprOptions = []expr.Option{
	expr.Env(exprEnv{}),
	unary("sin", math.Sin),
	unary("cos", math.Cos),
	unary("tan", math.Tan),
	unary("sqrt", math.Sqrt),
	unary("exp", math.Exp),
	unary("log", math.Log),
	expr.Function("atan2", func(params ...any) (any, error) {
		return math.Atan2(params[0].(float64), params[1].(float64)), nil
	}, new(func(float64, float64) float64)),
}

// ExprMap is a planar map written as two comma separated expressions in x
// and y, e.g. "x + y, y - x".
type ExprMap struct {
	Source  string
	program *vm.Program
	machine vm.VM
}

// CompileExprMap compiles src and checks it at ExpressionCheck.
func CompileExprMap(src string) (*ExprMap, error) {
	if strings.TrimSpace(src) == "" {
		return nil, fmt.Errorf("%w: empty", ErrExpression)
	}
	program, err := expr.Compile("["+src+"]", exprOptions...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExpression, err)
	}
	m := &ExprMap{Source: src, program: program}
	q, err := m.Apply(ExpressionCheck)
	if err != nil {
		return nil, err
	}
	if !finitePoint(q) {
		return nil, fmt.Errorf("%w: %q gives %v at %v", ErrExpression, src, q, ExpressionCheck)
	}
	return m, nil
}

// Apply evaluates the map at p. The result may be non-finite.
func (m *ExprMap) Apply(p Point) (Point, error) {
	out, err := m.machine.Run(m.program, exprEnv{X: p.X, Y: p.Y})
	if err != nil {
		return Point{}, fmt.Errorf("%w: %v", ErrExpression, err)
	}
	vals, ok := out.([]any)
	if !ok || len(vals) != 2 {
		return Point{}, fmt.Errorf("%w: %q must give two values", ErrExpression, m.Source)
	}
	x, okx := toFloat(vals[0])
	y, oky := toFloat(vals[1])
	if !okx || !oky {
		return Point{}, fmt.Errorf("%w: %q must give numbers", ErrExpression, m.Source)
	}
	return Point{X: x, Y: y}, nil
}

// Step adapts the map to the driver: one successor per point, none once the
// orbit leaves the finite plane.
func (m *ExprMap) Step(p Point, _ int) []Point {
	q, err := m.Apply(p)
	if err != nil || !finitePoint(q) {
		return nil
	}
	return []Point{q}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	}
	return 0, false
}

func finitePoint(p Point) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}
