package jsontree

import (
	"slices"
	"testing"

	"github.com/shopspring/decimal"
)

func TestDecodeObject(t *testing.T) {
	v, err := Decode([]byte(`{"b": 1, "a": {"nested": true}, "c": null}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	obj, ok := v.(*Object)
	if !ok {
		t.Fatalf("decoded %T, want *Object", v)
	}
	if !slices.Equal(obj.Keys(), []string{"b", "a", "c"}) {
		t.Errorf("key order = %v, want document order", obj.Keys())
	}

	b, _ := obj.Get("b")
	if d, ok := b.(decimal.Decimal); !ok || !d.Equal(decimal.NewFromInt(1)) {
		t.Errorf("b = %v (%T), want decimal 1", b, b)
	}

	a, _ := obj.Get("a")
	nested, ok := a.(*Object)
	if !ok {
		t.Fatalf("a = %T, want *Object", a)
	}
	if v, _ := nested.Get("nested"); v != true {
		t.Errorf("a.nested = %v, want true", v)
	}

	if c, _ := obj.Get("c"); c != nil {
		t.Errorf("c = %v, want nil", c)
	}
}

func TestDecodeArray(t *testing.T) {
	v, err := Decode([]byte(`[1, "two", false, [3]]`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	arr, ok := v.([]any)
	if !ok || len(arr) != 4 {
		t.Fatalf("decoded %T len %d, want []any len 4", v, len(arr))
	}
	if arr[1] != "two" || arr[2] != false {
		t.Errorf("unexpected elements: %v", arr)
	}
	inner, ok := arr[3].([]any)
	if !ok || len(inner) != 1 {
		t.Errorf("arr[3] = %v, want nested array", arr[3])
	}
}

func TestDecodeEmptyArray(t *testing.T) {
	v, err := Decode([]byte(`[]`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	arr, ok := v.([]any)
	if !ok || arr == nil || len(arr) != 0 {
		t.Errorf("empty array decoded as %v (%T), want non-nil empty slice", v, v)
	}
}

func TestDecodeNumberPrecision(t *testing.T) {
	v, err := Decode([]byte(`0.1`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	d, ok := v.(decimal.Decimal)
	if !ok {
		t.Fatalf("decoded %T, want decimal.Decimal", v)
	}
	if d.String() != "0.1" {
		t.Errorf("0.1 decoded as %s; decimal decode must be exact", d)
	}
}

func TestDecodeScalars(t *testing.T) {
	tests := []struct {
		input string
		want  any
	}{
		{`"hello"`, "hello"},
		{`true`, true},
		{`false`, false},
		{`null`, nil},
		{`"esc\nape"`, "esc\nape"},
	}
	for _, tt := range tests {
		v, err := Decode([]byte(tt.input))
		if err != nil {
			t.Errorf("Decode(%s): %v", tt.input, err)
			continue
		}
		if v != tt.want {
			t.Errorf("Decode(%s) = %v, want %v", tt.input, v, tt.want)
		}
	}
}

func TestDecodeInvalid(t *testing.T) {
	for _, input := range []string{``, `{`, `{"a":}`, `[1,`} {
		if _, err := Decode([]byte(input)); err == nil {
			t.Errorf("Decode(%q) should fail", input)
		}
	}
}
