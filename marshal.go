package tsion

import (
	"fmt"
	"math/big"
	"sort"
)

// Marshaler is implemented by a host type that knows how to convert itself
// into a [Value]. [From] invokes this hook before any type classification
// happens, and re-derives the Value from the hook's result rather than
// inspecting the host type directly.
type Marshaler interface {
	MarshalTsion() (Value, error)
}

// From adapts a Go-native value or [Marshaler] into a [Value]: the boundary
// where dynamically-typed host data crosses into the codec. [Encode] itself
// stays total over [Value]; From is where that guarantee gets established.
//
// Recognized inputs: nil, bool, every integer and float kind, *[big.Int],
// string, []any (recursively converted), *[Object], map[string]any
// (recursively converted; since Go map iteration order is undefined, keys
// are sorted lexically; callers that need a specific key order should
// build a *[Object] directly, e.g. via the yamlvalue package), [Value]
// (returned as-is), and [Marshaler] (hook invoked, then its result is
// returned directly, since it is already a Value and needs no further
// re-entry). Anything else converts to [Null].
func From(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case Marshaler:
		mv, err := x.MarshalTsion()
		if err != nil {
			return Value{}, fmt.Errorf("marshal tsion value: %w", err)
		}

		return mv, nil
	case bool:
		return Bool(x), nil
	case int:
		return Number(float64(x)), nil
	case int8:
		return Number(float64(x)), nil
	case int16:
		return Number(float64(x)), nil
	case int32:
		return Number(float64(x)), nil
	case int64:
		return Number(float64(x)), nil
	case uint:
		return Number(float64(x)), nil
	case uint8:
		return Number(float64(x)), nil
	case uint16:
		return Number(float64(x)), nil
	case uint32:
		return Number(float64(x)), nil
	case uint64:
		return Number(float64(x)), nil
	case float32:
		return Number(float64(x)), nil
	case float64:
		return Number(x), nil
	case *big.Int:
		return BigIntValue(x), nil
	case string:
		return String(x), nil
	case []any:
		items := make([]Value, len(x))

		for i, item := range x {
			iv, err := From(item)
			if err != nil {
				return Value{}, fmt.Errorf("array element %d: %w", i, err)
			}

			items[i] = iv
		}

		return Array(items...), nil
	case *Object:
		return ObjectValue(x), nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}

		sort.Strings(keys)

		obj := NewObject()

		for _, k := range keys {
			fv, err := From(x[k])
			if err != nil {
				return Value{}, fmt.Errorf("object key %q: %w", k, err)
			}

			obj.Set(k, fv)
		}

		return ObjectValue(obj), nil
	default:
		return Null(), nil
	}
}
