package jsontree

import (
	"fmt"

	"github.com/buger/jsonparser"
	"github.com/shopspring/decimal"
)

// Decode parses raw JSON bytes into the generic value model:
// object -> *Object, array -> []any, string -> string,
// number -> decimal.Decimal, boolean -> bool, null -> nil.
func Decode(data []byte) (any, error) {
	value, dataType, _, err := jsonparser.Get(data)
	if err != nil {
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}
	return parseValue(value, dataType)
}

func parseValue(value []byte, dataType jsonparser.ValueType) (any, error) {
	switch dataType {
	case jsonparser.Object:
		obj := NewObject()
		err := jsonparser.ObjectEach(value, func(key, v []byte, dt jsonparser.ValueType, _ int) error {
			child, err := parseValue(v, dt)
			if err != nil {
				return err
			}
			obj.Set(string(key), child)
			return nil
		})
		if err != nil {
			return nil, err
		}
		return obj, nil

	case jsonparser.Array:
		var items []any
		var itemErr error
		_, err := jsonparser.ArrayEach(value, func(v []byte, dt jsonparser.ValueType, _ int, err error) {
			if itemErr != nil || err != nil {
				if itemErr == nil {
					itemErr = err
				}
				return
			}
			child, err := parseValue(v, dt)
			if err != nil {
				itemErr = err
				return
			}
			items = append(items, child)
		})
		if err != nil {
			return nil, err
		}
		if itemErr != nil {
			return nil, itemErr
		}
		if items == nil {
			items = []any{}
		}
		return items, nil

	case jsonparser.String:
		s, err := jsonparser.ParseString(value)
		if err != nil {
			return nil, fmt.Errorf("decoding string: %w", err)
		}
		return s, nil

	case jsonparser.Number:
		d, err := decimal.NewFromString(string(value))
		if err != nil {
			return nil, fmt.Errorf("decoding number %q: %w", value, err)
		}
		return d, nil

	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(value)
		if err != nil {
			return nil, err
		}
		return b, nil

	case jsonparser.Null:
		return nil, nil

	default:
		return nil, fmt.Errorf("unexpected JSON value type %v", dataType)
	}
}
