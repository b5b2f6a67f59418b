package yamlvalue

import (
	"fmt"
	"math"

	"github.com/goccy/go-yaml"

	"go.tsion.dev/tsion"
)

// Emit renders v as YAML text. Object key order is preserved via
// [yaml.MapSlice]. Arbitrary-precision integers lower to their decimal
// string form, since YAML's integer scalars are bounded by the reader's
// native int type; non-finite numbers (NaN, +Inf, -Inf) lower to their
// YAML 1.1 scalar spellings (".nan", ".inf", "-.inf").
func Emit(v tsion.Value) ([]byte, error) {
	native, err := toNative(v)
	if err != nil {
		return nil, fmt.Errorf("convert to yaml: %w", err)
	}

	out, err := yaml.Marshal(native)
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}

	return out, nil
}

func toNative(v tsion.Value) (any, error) {
	switch v.Kind() {
	case tsion.KindNull:
		return nil, nil
	case tsion.KindBool:
		b, _ := v.Bool()

		return b, nil
	case tsion.KindNumber:
		f, _ := v.Num()

		return numberToNative(f), nil
	case tsion.KindBigInt:
		n, _ := v.BigInt()

		return n.String(), nil
	case tsion.KindString:
		s, _ := v.Str()

		return s, nil
	case tsion.KindArray:
		return arrayToNative(v)
	case tsion.KindObject:
		return objectToNative(v)
	default:
		return nil, fmt.Errorf("%w: kind %s", errUnsupportedKind, v.Kind())
	}
}

func numberToNative(f float64) any {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	case f == math.Trunc(f) && math.Abs(f) < 1<<53:
		return int64(f)
	default:
		return f
	}
}

func arrayToNative(v tsion.Value) (any, error) {
	items, _ := v.ArrayItems()

	out := make([]any, len(items))

	for i, item := range items {
		nv, err := toNative(item)
		if err != nil {
			return nil, fmt.Errorf("array element %d: %w", i, err)
		}

		out[i] = nv
	}

	return out, nil
}

func objectToNative(v tsion.Value) (any, error) {
	obj, _ := v.Object()

	slice := make(yaml.MapSlice, 0, obj.Len())

	var rangeErr error

	obj.Range(func(key string, val tsion.Value) bool {
		nv, err := toNative(val)
		if err != nil {
			rangeErr = fmt.Errorf("key %q: %w", key, err)

			return false
		}

		slice = append(slice, yaml.MapItem{Key: key, Value: nv})

		return true
	})

	if rangeErr != nil {
		return nil, rangeErr
	}

	return slice, nil
}

var errUnsupportedKind = fmt.Errorf("unsupported value kind")
