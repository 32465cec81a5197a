// Package interp evaluates a maiden *ast.Program: a tree-walking
// evaluator over the weak-typed Number/String/Boolean/Null/Mysterious/
// Function value model of spec.md section 4.3.
package interp

import "strconv"

// Value is implemented by every runtime value kind. Modeled on the
// teacher's Value interface (internal/interp/value.go): no interface{},
// one concrete struct per kind.
type Value interface {
	Type() string
	String() string
}

// NumberValue is maiden's sole numeric kind — Rockstar arithmetic is
// spec'd as uniformly double-precision, so there is no int/float split.
type NumberValue struct{ Value float64 }

func (n *NumberValue) Type() string   { return "NUMBER" }
func (n *NumberValue) String() string { return strconv.FormatFloat(n.Value, 'g', -1, 64) }

type StringValue struct{ Value string }

func (s *StringValue) Type() string   { return "STRING" }
func (s *StringValue) String() string { return s.Value }

type BooleanValue struct{ Value bool }

func (b *BooleanValue) Type() string { return "BOOLEAN" }
func (b *BooleanValue) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// NullValue is Rockstar's explicit null ("null"/"nothing"/"nowhere"/
// "nobody"/"gone").
type NullValue struct{}

func (n *NullValue) Type() string   { return "NULL" }
func (n *NullValue) String() string { return "null" }

// MysteriousValue is Rockstar's distinct "mysterious" value — an
// undefined-but-not-null state, and also what an Undetermined function
// return yields.
type MysteriousValue struct{}

func (m *MysteriousValue) Type() string   { return "MYSTERIOUS" }
func (m *MysteriousValue) String() string { return "mysterious" }

// FunctionValue is the Function case of the value model. The evaluator
// never constructs one: functions are only called by name, and naming a
// function where a value is expected reads it as an undefined variable.
type FunctionValue struct {
	Name   string
	Params []string
}

func (f *FunctionValue) Type() string   { return "FUNCTION" }
func (f *FunctionValue) String() string { return "function " + f.Name }

var (
	trueValue  = &BooleanValue{Value: true}
	falseValue = &BooleanValue{Value: false}
	nullValue  = &NullValue{}
	mysterious = &MysteriousValue{}
)

func boolValue(b bool) *BooleanValue {
	if b {
		return trueValue
	}
	return falseValue
}

// Truthy implements spec.md section 4.3's boolean-resolution rule used by
// If/While/Until conditions and the And/Or/Nor operators: Boolean is
// itself, Number is truthy unless zero, String is truthy unless empty,
// Null and Mysterious are always falsy.
func Truthy(v Value) (bool, bool) {
	switch val := v.(type) {
	case *BooleanValue:
		return val.Value, true
	case *NumberValue:
		return val.Value != 0, true
	case *StringValue:
		return val.Value != "", true
	case *NullValue:
		return false, true
	case *MysteriousValue:
		return false, true
	default:
		return false, false
	}
}
