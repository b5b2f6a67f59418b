package tsion_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.tsion.dev/tsion"
)

func TestEncodeScalars(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		value tsion.Value
		want  string
	}{
		"null":        {tsion.Null(), ":n"},
		"true":        {tsion.Bool(true), ":t"},
		"false":       {tsion.Bool(false), ":f"},
		"string":      {tsion.String("hello"), "&hello"},
		"empty string": {tsion.String(""), "&"},
		"number":      {tsion.Number(42), "#42"},
		"negative":    {tsion.Number(-7), "#-7"},
		"fraction":    {tsion.Number(1.5), "#1.5"},
		"nan":         {tsion.Number(math.NaN()), ":nan"},
		"inf":         {tsion.Number(math.Inf(1)), ":inf"},
		"ninf":        {tsion.Number(math.Inf(-1)), ":ninf"},
		"bigint":      {tsion.BigIntValue(big.NewInt(123456789012345)), "%123456789012345"},
		"bigint negative": {
			tsion.BigIntValue(new(big.Int).Neg(big.NewInt(42))), "%-42",
		},
		"empty array":  {tsion.Array(), "[]"},
		"empty object": {tsion.ObjectValue(tsion.NewObject()), "{}"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := tsion.Encode(tc.value)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEncodeDuplicateStringsLiftToDictionary(t *testing.T) {
	t.Parallel()

	v := tsion.Array(tsion.String("a"), tsion.String("a"))

	got, err := tsion.Encode(v)
	require.NoError(t, err)
	assert.Equal(t, "&a\x00[$0$0]", got)
}

func TestEncodeNoDuplicatesProducesNoNUL(t *testing.T) {
	t.Parallel()

	obj := tsion.NewObject()
	obj.Set("x", tsion.Number(1))
	obj.Set("y", tsion.Number(2))

	got, err := tsion.Encode(tsion.ObjectValue(obj))
	require.NoError(t, err)
	assert.NotContains(t, got, "\x00")
	assert.NotContains(t, got, "$")
}

func TestEncodeSingleKeyObjectHasNoKeyArrayWrapper(t *testing.T) {
	t.Parallel()

	obj := tsion.NewObject()
	obj.Set("k", tsion.Number(1))

	got, err := tsion.Encode(tsion.ObjectValue(obj))
	require.NoError(t, err)
	assert.Equal(t, "{&k#1}", got)
}

func TestEncodeMultiKeyObjectUsesKeyArrayWrapper(t *testing.T) {
	t.Parallel()

	obj := tsion.NewObject()
	obj.Set("x", tsion.Number(1))
	obj.Set("y", tsion.Number(2))

	got, err := tsion.Encode(tsion.ObjectValue(obj))
	require.NoError(t, err)
	assert.Equal(t, "{[&x&y]#1#2}", got)
}

func TestEncodeRepeatedObjectStructureDeduplicates(t *testing.T) {
	t.Parallel()

	mk := func() tsion.Value {
		o := tsion.NewObject()
		o.Set("k", tsion.Number(1))

		return tsion.ObjectValue(o)
	}

	v := tsion.Array(mk(), mk())

	got, err := tsion.Encode(v)
	require.NoError(t, err)
	assert.Equal(t, "{&k#1}\x00[$0$0]", got)
}

func TestEncodeLiteralDuplicatedAcrossNestedStructuresLifts(t *testing.T) {
	t.Parallel()

	// "hello" occurs inside two distinct structure bodies (the inner array
	// and the outer array that contains it), so its structure-count is 2
	// and it is lifted to the dictionary even though every occurrence is
	// nested rather than repeated at the same level.
	v := tsion.Array(tsion.String("hello"), tsion.Array(tsion.String("hello")))

	got, err := tsion.Encode(v)
	require.NoError(t, err)
	assert.Equal(t, "&hello\x00[$0[$0]]", got)

	decoded, err := tsion.Decode(got)
	require.NoError(t, err)
	assert.True(t, v.Equal(decoded))
}

func TestEncodeSingleNestedOccurrenceProducesNoNUL(t *testing.T) {
	t.Parallel()

	// "hello" appears exactly once, nested one level inside an array. A
	// lone occurrence is never promoted, regardless of nesting depth.
	v := tsion.Array(tsion.String("hello"))

	got, err := tsion.Encode(v)
	require.NoError(t, err)
	assert.NotContains(t, got, "\x00")

	decoded, err := tsion.Decode(got)
	require.NoError(t, err)
	assert.True(t, v.Equal(decoded))
}

func TestEncodeStringEscaping(t *testing.T) {
	t.Parallel()

	tcs := map[string]string{
		"colon":      ":",
		"dollar":     "$",
		"ampersand":  "&",
		"hash":       "#",
		"percent":    "%",
		"open brack": "[",
		"close brack": "]",
		"open brace":  "{",
		"close brace": "}",
		"backslash":   `\`,
		"nul":         "\x00",
		"tab":         "\t",
		"newline":     "\n",
		"cr":          "\r",
		"mixed":       "a:b$c&d#e%f[g]h{i}j\\k\x00l\tm\nn\ro",
	}

	for name, s := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			encoded, err := tsion.Encode(tsion.String(s))
			require.NoError(t, err)

			decoded, err := tsion.Decode(encoded)
			require.NoError(t, err)

			got, ok := decoded.Str()
			require.True(t, ok)
			assert.Equal(t, s, got)
		})
	}
}
