package jsontree

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestKindOf(t *testing.T) {
	obj := NewObject()
	tests := []struct {
		value any
		want  Kind
	}{
		{nil, KindNull},
		{true, KindBoolean},
		{decimal.NewFromInt(3), KindNumber},
		{3.5, KindNumber},
		{7, KindNumber},
		{"s", KindString},
		{[]any{}, KindArray},
		{obj, KindObject},
		{struct{}{}, KindInvalid},
	}
	for _, tt := range tests {
		if got := KindOf(tt.value); got != tt.want {
			t.Errorf("KindOf(%v) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindNull, "null"},
		{KindBoolean, "boolean"},
		{KindNumber, "number"},
		{KindString, "string"},
		{KindArray, "array"},
		{KindObject, "object"},
		{KindInvalid, "invalid"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}

func TestIsInteger(t *testing.T) {
	mustDecode := func(s string) any {
		v, err := Decode([]byte(s))
		if err != nil {
			t.Fatalf("Decode(%s): %v", s, err)
		}
		return v
	}

	if !IsInteger(mustDecode("5")) {
		t.Error("5 should be an integer")
	}
	if !IsInteger(mustDecode("1.0")) {
		t.Error("1.0 should count as an integer")
	}
	if IsInteger(mustDecode("1.5")) {
		t.Error("1.5 should not be an integer")
	}
	if IsInteger("5") {
		t.Error("a string is never an integer")
	}
}

func TestNum(t *testing.T) {
	if d, ok := Num(decimal.NewFromInt(2)); !ok || !d.Equal(decimal.NewFromInt(2)) {
		t.Error("Num should pass decimals through")
	}
	if d, ok := Num(3); !ok || !d.Equal(decimal.NewFromInt(3)) {
		t.Error("Num should accept int")
	}
	if d, ok := Num(2.5); !ok || d.String() != "2.5" {
		t.Error("Num should accept float64")
	}
	if _, ok := Num("2"); ok {
		t.Error("Num should reject strings")
	}
}

func TestEqualNumbers(t *testing.T) {
	one := decimal.NewFromInt(1)
	onePointZero, _ := decimal.NewFromString("1.0")

	if !Equal(one, onePointZero) {
		t.Error("1 and 1.0 should be equal")
	}
	if !Equal(one, 1) {
		t.Error("decimal 1 and int 1 should be equal")
	}
	if !Equal(1.5, decimal.NewFromFloat(1.5)) {
		t.Error("float 1.5 and decimal 1.5 should be equal")
	}
	if Equal(one, decimal.NewFromInt(2)) {
		t.Error("1 and 2 should differ")
	}
	if Equal(one, "1") {
		t.Error("number and string should differ")
	}
}

func TestEqualObjects(t *testing.T) {
	a := NewObject()
	a.Set("x", decimal.NewFromInt(1))
	a.Set("y", "s")

	// Same members, different insertion order.
	b := NewObject()
	b.Set("y", "s")
	b.Set("x", decimal.NewFromInt(1))

	if !Equal(a, b) {
		t.Error("objects with equal members should be equal regardless of order")
	}

	c := NewObject()
	c.Set("x", decimal.NewFromInt(1))
	if Equal(a, c) {
		t.Error("objects with different key sets should differ")
	}
}

func TestEqualArrays(t *testing.T) {
	if !Equal([]any{decimal.NewFromInt(1), "a"}, []any{1, "a"}) {
		t.Error("element-wise equal arrays should be equal")
	}
	if Equal([]any{"a", "b"}, []any{"b", "a"}) {
		t.Error("array order matters")
	}
	if Equal([]any{"a"}, []any{"a", "a"}) {
		t.Error("arrays of different length should differ")
	}
}

func TestEqualScalars(t *testing.T) {
	if !Equal(nil, nil) || !Equal(true, true) || !Equal("x", "x") {
		t.Error("identical scalars should be equal")
	}
	if Equal(nil, false) || Equal(true, "true") {
		t.Error("scalars of different kinds should differ")
	}
}
