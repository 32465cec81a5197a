package interp

import (
	"strconv"
	"strings"

	"maiden/internal/errors"
)

// toNumber coerces a value to a float for arithmetic, per spec.md
// section 4.3: Boolean is 0/1, Null is 0. Strings and Mysterious cannot
// be coerced this way.
func toNumber(v Value) (float64, bool) {
	switch val := v.(type) {
	case *NumberValue:
		return val.Value, true
	case *BooleanValue:
		if val.Value {
			return 1, true
		}
		return 0, true
	case *NullValue:
		return 0, true
	default:
		return 0, false
	}
}

// displayString renders v for string concatenation and, through
// sayString, for Say (the String row of the coercion table:
// Number/Boolean/Null each have a defined "+" text). Null renders as ""
// here; sayString prints it as "null".
func displayString(v Value) string {
	switch val := v.(type) {
	case *StringValue:
		return val.Value
	case *NumberValue:
		return strconv.FormatFloat(val.Value, 'g', -1, 64)
	case *BooleanValue:
		if val.Value {
			return "true"
		}
		return "false"
	case *NullValue:
		return ""
	case *MysteriousValue:
		return "mysterious"
	default:
		return ""
	}
}

// Add implements "+": numeric addition when both sides coerce to a
// number, string concatenation once either side is a String.
func Add(left, right Value, line int) (Value, error) {
	if _, isStr := left.(*StringValue); isStr {
		return &StringValue{Value: displayString(left) + displayString(right)}, nil
	}
	if _, isStr := right.(*StringValue); isStr {
		return &StringValue{Value: displayString(left) + displayString(right)}, nil
	}
	ln, lok := toNumber(left)
	rn, rok := toNumber(right)
	if !lok || !rok {
		return nil, errors.New(errors.BadBooleanResolve, line, "cannot add "+left.Type()+" and "+right.Type())
	}
	return &NumberValue{Value: ln + rn}, nil
}

// Subtract/Times/Divide are numeric-only, per spec.md section 4.3 (only
// "+" has a string meaning).
func Subtract(left, right Value, line int) (Value, error) {
	ln, rn, err := bothNumbers(left, right, line, "subtract")
	if err != nil {
		return nil, err
	}
	return &NumberValue{Value: ln - rn}, nil
}

func Times(left, right Value, line int) (Value, error) {
	ln, rn, err := bothNumbers(left, right, line, "multiply")
	if err != nil {
		return nil, err
	}
	return &NumberValue{Value: ln * rn}, nil
}

func Divide(left, right Value, line int) (Value, error) {
	ln, rn, err := bothNumbers(left, right, line, "divide")
	if err != nil {
		return nil, err
	}
	if rn == 0 {
		return nil, errors.Newf(errors.Infinity, line, "division by zero: %v / %v", ln, rn)
	}
	return &NumberValue{Value: ln / rn}, nil
}

func bothNumbers(left, right Value, line int, verb string) (float64, float64, error) {
	ln, lok := toNumber(left)
	rn, rok := toNumber(right)
	if !lok || !rok {
		return 0, 0, errors.New(errors.BadBooleanResolve, line, "cannot "+verb+" "+left.Type()+" and "+right.Type())
	}
	return ln, rn, nil
}

// Equal implements "Is" per spec.md section 4.3: Mysterious is never
// equal to anything, including another Mysterious. Null Is Null is
// true. Otherwise same-type values compare by value, and Number/
// Boolean/Null cross-compare via the numeric coercion above.
func Equal(left, right Value) bool {
	if _, ok := left.(*MysteriousValue); ok {
		return false
	}
	if _, ok := right.(*MysteriousValue); ok {
		return false
	}

	if ls, ok := left.(*StringValue); ok {
		if rs, ok := right.(*StringValue); ok {
			return ls.Value == rs.Value
		}
		return false
	}
	if _, ok := right.(*StringValue); ok {
		return false
	}

	if _, ok := left.(*NullValue); ok {
		if _, ok := right.(*NullValue); ok {
			return true
		}
	}

	ln, lok := toNumber(left)
	rn, rok := toNumber(right)
	if lok && rok {
		return ln == rn
	}
	return false
}

// Compare implements the four ordering comparisons. Two strings compare
// lexicographically; otherwise both sides must coerce to a number.
func Compare(left, right Value, line int) (int, error) {
	if ls, ok := left.(*StringValue); ok {
		if rs, ok := right.(*StringValue); ok {
			return strings.Compare(ls.Value, rs.Value), nil
		}
	}
	ln, lok := toNumber(left)
	rn, rok := toNumber(right)
	if !lok || !rok {
		return 0, errors.New(errors.BadBooleanResolve, line, "cannot compare "+left.Type()+" and "+right.Type())
	}
	switch {
	case ln < rn:
		return -1, nil
	case ln > rn:
		return 1, nil
	default:
		return 0, nil
	}
}
