package evaluator

import (
	"github.com/slate-lang/slate/internal/core"
	"github.com/slate-lang/slate/internal/diagnostics"
)

func (ev *Evaluator) evalUnary(e *core.Unary, env *Environment) Object {
	operand := ev.Eval(e.Operand, env)
	if isError(operand) || isSignal(operand) {
		return operand
	}
	switch e.Operator {
	case "-":
		return &Integer{Value: -operand.(*Integer).Value}
	case "!":
		return nativeBoolToBooleanObject(!operand.(*Boolean).Value)
	default:
		return ev.errorAt(diagnostics.ErrI001, e.Token, "unknown unary operator %s", e.Operator)
	}
}

func (ev *Evaluator) evalBinary(e *core.Binary, env *Environment) Object {
	// && and || short-circuit; the right operand may never run.
	if e.Operator == "&&" || e.Operator == "||" {
		return ev.evalLogical(e, env)
	}

	left := ev.Eval(e.Left, env)
	if isError(left) || isSignal(left) {
		return left
	}
	right := ev.Eval(e.Right, env)
	if isError(right) || isSignal(right) {
		return right
	}

	switch e.Operator {
	case "==":
		return nativeBoolToBooleanObject(objectsEqual(left, right))
	case "!=":
		return nativeBoolToBooleanObject(!objectsEqual(left, right))
	}

	if ls, ok := left.(*String); ok {
		rs := right.(*String)
		if e.Operator == "+" {
			return &String{Value: ls.Value + rs.Value}
		}
		return ev.errorAt(diagnostics.ErrI001, e.Token, "operator %s on strings escaped type checking", e.Operator)
	}

	li := left.(*Integer).Value
	ri := right.(*Integer).Value
	switch e.Operator {
	case "+":
		return &Integer{Value: li + ri}
	case "-":
		return &Integer{Value: li - ri}
	case "*":
		return &Integer{Value: li * ri}
	case "/":
		if ri == 0 {
			return ev.errorAt(diagnostics.ErrR001, e.Token, "division by zero")
		}
		return &Integer{Value: li / ri}
	case "%":
		if ri == 0 {
			return ev.errorAt(diagnostics.ErrR001, e.Token, "division by zero")
		}
		// Mathematical mod: the result follows the sign of the divisor.
		return &Integer{Value: ((li % ri) + ri) % ri}
	case "<":
		return nativeBoolToBooleanObject(li < ri)
	case "<=":
		return nativeBoolToBooleanObject(li <= ri)
	case ">":
		return nativeBoolToBooleanObject(li > ri)
	case ">=":
		return nativeBoolToBooleanObject(li >= ri)
	default:
		return ev.errorAt(diagnostics.ErrI001, e.Token, "unknown operator %s", e.Operator)
	}
}

func (ev *Evaluator) evalLogical(e *core.Binary, env *Environment) Object {
	left := ev.Eval(e.Left, env)
	if isError(left) || isSignal(left) {
		return left
	}
	lv := left.(*Boolean).Value
	if e.Operator == "&&" && !lv {
		return False
	}
	if e.Operator == "||" && lv {
		return True
	}
	right := ev.Eval(e.Right, env)
	if isError(right) || isSignal(right) {
		return right
	}
	return nativeBoolToBooleanObject(right.(*Boolean).Value)
}

func objectsEqual(left, right Object) bool {
	switch l := left.(type) {
	case *Integer:
		r, ok := right.(*Integer)
		return ok && l.Value == r.Value
	case *Boolean:
		r, ok := right.(*Boolean)
		return ok && l.Value == r.Value
	case *String:
		r, ok := right.(*String)
		return ok && l.Value == r.Value
	case *UnitValue:
		_, ok := right.(*UnitValue)
		return ok
	default:
		return left == right
	}
}
