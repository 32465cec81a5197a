package interp

import (
	"maiden/internal/ast"
	"maiden/internal/errors"
)

// evalExpr evaluates an expression node to a Value (spec.md section 4.3's
// eval_expr).
func (interp *Interpreter) evalExpr(env *Environment, expr ast.Expression, line int) (Value, error) {
	switch e := expr.(type) {
	case *ast.StringLiteral:
		return &StringValue{Value: e.Value}, nil

	case *ast.NumberLiteral:
		return &NumberValue{Value: e.Value}, nil

	case *ast.BooleanLiteral:
		return boolValue(e.Value), nil

	case *ast.NullLiteral:
		return nullValue, nil

	case *ast.MysteriousLiteral:
		return mysterious, nil

	case *ast.VariableRef:
		if v, ok := env.Get(e.Name); ok {
			return v, nil
		}
		return nil, errors.New(errors.MissingVariable, line, "undefined variable: "+e.Name)

	case *ast.Pronoun:
		if v, ok := env.Get(e.Resolved); ok {
			return v, nil
		}
		return nil, errors.New(errors.MissingVariable, line, "undefined variable: "+e.Resolved)

	case *ast.Not:
		right, err := interp.evalExpr(env, e.Right, line)
		if err != nil {
			return nil, err
		}
		truthy, ok := Truthy(right)
		if !ok {
			return nil, errors.New(errors.BadBooleanResolve, line, "cannot resolve "+right.Type()+" to boolean")
		}
		return boolValue(!truthy), nil

	case *ast.Call:
		return interp.callFunction(env, e.Name, e.Args, line)

	case *ast.BinaryOp:
		return interp.evalBinaryOp(env, e, line)

	default:
		return nil, errors.Newf(errors.Unimplemented, line, "unhandled expression %T", expr)
	}
}

func (interp *Interpreter) evalBinaryOp(env *Environment, e *ast.BinaryOp, line int) (Value, error) {
	left, err := interp.evalExpr(env, e.Left, line)
	if err != nil {
		return nil, err
	}

	// And/Or/Nor short-circuit on truthiness before the right side is
	// even evaluated (spec.md section 4.3).
	switch e.Op {
	case ast.OpAnd:
		lt, ok := Truthy(left)
		if !ok {
			return nil, errors.New(errors.BadBooleanResolve, line, "cannot resolve "+left.Type()+" to boolean")
		}
		if !lt {
			return falseValue, nil
		}
		return interp.evalTruthyRight(env, e.Right, line)
	case ast.OpOr:
		lt, ok := Truthy(left)
		if !ok {
			return nil, errors.New(errors.BadBooleanResolve, line, "cannot resolve "+left.Type()+" to boolean")
		}
		if lt {
			return trueValue, nil
		}
		return interp.evalTruthyRight(env, e.Right, line)
	case ast.OpNor:
		lt, ok := Truthy(left)
		if !ok {
			return nil, errors.New(errors.BadBooleanResolve, line, "cannot resolve "+left.Type()+" to boolean")
		}
		if lt {
			return falseValue, nil
		}
		rt, err := interp.evalTruthyRight(env, e.Right, line)
		if err != nil {
			return nil, err
		}
		return boolValue(!rt.(*BooleanValue).Value), nil
	}

	right, err := interp.evalExpr(env, e.Right, line)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case ast.OpAdd:
		return Add(left, right, line)
	case ast.OpSubtract:
		return Subtract(left, right, line)
	case ast.OpTimes:
		return Times(left, right, line)
	case ast.OpDivide:
		return Divide(left, right, line)
	case ast.OpIs:
		return boolValue(Equal(left, right)), nil
	case ast.OpAint:
		return boolValue(!Equal(left, right)), nil
	case ast.OpGreaterThan:
		cmp, err := Compare(left, right, line)
		if err != nil {
			return nil, err
		}
		return boolValue(cmp > 0), nil
	case ast.OpGreaterThanOrEqual:
		cmp, err := Compare(left, right, line)
		if err != nil {
			return nil, err
		}
		return boolValue(cmp >= 0), nil
	case ast.OpLessThan:
		cmp, err := Compare(left, right, line)
		if err != nil {
			return nil, err
		}
		return boolValue(cmp < 0), nil
	case ast.OpLessThanOrEqual:
		cmp, err := Compare(left, right, line)
		if err != nil {
			return nil, err
		}
		return boolValue(cmp <= 0), nil
	default:
		return nil, errors.Newf(errors.Unimplemented, line, "unhandled operator %v", e.Op)
	}
}

func (interp *Interpreter) evalTruthyRight(env *Environment, right ast.Expression, line int) (Value, error) {
	rv, err := interp.evalExpr(env, right, line)
	if err != nil {
		return nil, err
	}
	rt, ok := Truthy(rv)
	if !ok {
		return nil, errors.New(errors.BadBooleanResolve, line, "cannot resolve "+rv.Type()+" to boolean")
	}
	return boolValue(rt), nil
}
