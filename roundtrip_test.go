package tsion_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.tsion.dev/tsion"
	"go.tsion.dev/tsion/stringtest"
)

func TestRoundTripDeeplyNestedValue(t *testing.T) {
	t.Parallel()

	inner := tsion.NewObject()
	inner.Set("id", tsion.BigIntValue(big.NewInt(9007199254740993)))
	inner.Set("tags", tsion.Array(tsion.String("a"), tsion.String("a"), tsion.String("b")))

	outer := tsion.NewObject()
	outer.Set("left", tsion.ObjectValue(inner))
	outer.Set("right", tsion.ObjectValue(inner))
	outer.Set("count", tsion.Int(3))

	v := tsion.ObjectValue(outer)

	encoded, err := tsion.Encode(v)
	require.NoError(t, err)

	decoded, err := tsion.Decode(encoded)
	require.NoError(t, err)

	assert.True(t, v.Equal(decoded), "round trip changed the value tree")
}

func TestRoundTripRepeatedIdenticalSubtreesShareOneDictionaryEntry(t *testing.T) {
	t.Parallel()

	leaf := tsion.NewObject()
	leaf.Set("a", tsion.Int(1))
	leaf.Set("b", tsion.Int(2))

	v := tsion.Array(
		tsion.ObjectValue(leaf),
		tsion.ObjectValue(leaf),
		tsion.ObjectValue(leaf),
	)

	encoded, err := tsion.Encode(v)
	require.NoError(t, err)

	// Three identical object structures collapse to a single dictionary
	// entry referenced three times, never emitted three times over.
	assert.Equal(t, 1, countOccurrences(encoded, "[&a&b]"))

	decoded, err := tsion.Decode(encoded)
	require.NoError(t, err)
	assert.True(t, v.Equal(decoded))
}

func TestRoundTripMultilineString(t *testing.T) {
	t.Parallel()

	text := stringtest.JoinLF("first line", "second line", "third line")
	v := tsion.String(text)

	encoded, err := tsion.Encode(v)
	require.NoError(t, err)

	decoded, err := tsion.Decode(encoded)
	require.NoError(t, err)

	got, ok := decoded.Str()
	require.True(t, ok)
	assert.Equal(t, text, got)
}

func TestRoundTripEmptyCollections(t *testing.T) {
	t.Parallel()

	v := tsion.Array(tsion.Array(), tsion.ObjectValue(tsion.NewObject()), tsion.Null())

	encoded, err := tsion.Encode(v)
	require.NoError(t, err)

	decoded, err := tsion.Decode(encoded)
	require.NoError(t, err)
	assert.True(t, v.Equal(decoded))
}

func TestRoundTripFromAdaptedValue(t *testing.T) {
	t.Parallel()

	v, err := tsion.From(map[string]any{
		"name":  "example",
		"count": 3,
		"tags":  []any{"x", "y"},
	})
	require.NoError(t, err)

	encoded, err := tsion.Encode(v)
	require.NoError(t, err)

	decoded, err := tsion.Decode(encoded)
	require.NoError(t, err)
	assert.True(t, v.Equal(decoded))
}

func countOccurrences(s, substr string) int {
	count := 0

	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			count++
		}
	}

	return count
}
