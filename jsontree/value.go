package jsontree

import (
	"github.com/shopspring/decimal"
)

// Kind classifies a value within the model.
type Kind int

// Value kinds.
const (
	KindInvalid Kind = iota
	KindNull
	KindBoolean
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the JSON Schema type name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// KindOf classifies a value. Plain Go numeric types are accepted alongside
// decimal.Decimal so hand-built instances work as well as decoded ones.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBoolean
	case decimal.Decimal, float64, float32, int, int64, int32, uint64:
		return KindNumber
	case string:
		return KindString
	case []any:
		return KindArray
	case *Object:
		return KindObject
	default:
		return KindInvalid
	}
}

// Num converts any supported numeric representation to a decimal.
// Returns false if v is not a number.
func Num(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, true
	case float64:
		return decimal.NewFromFloat(n), true
	case float32:
		return decimal.NewFromFloat32(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	case int32:
		return decimal.NewFromInt32(n), true
	case uint64:
		return decimal.NewFromUint64(n), true
	default:
		return decimal.Decimal{}, false
	}
}

// IsInteger reports whether v is a number with no fractional part.
// JSON Schema treats 1.0 as an integer.
func IsInteger(v any) bool {
	d, ok := Num(v)
	return ok && d.IsInteger()
}

// Equal compares two values with JSON Schema equality semantics: numbers are
// equal by numeric value regardless of representation, objects by key set and
// member values regardless of order, arrays element-wise.
func Equal(a, b any) bool {
	if da, ok := Num(a); ok {
		db, ok := Num(b)
		return ok && da.Equal(db)
	}
	switch av := a.(type) {
	case nil:
		return b == nil
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *Object:
		bv, ok := b.(*Object)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for k, v := range av.Items() {
			ov, present := bv.Get(k)
			if !present || !Equal(v, ov) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
