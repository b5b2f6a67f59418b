package main

import (
	"fmt"
	"strings"

	"go.tsion.dev/tsion"
)

// buildTree renders dict (the decoded dictionary, in $n order) and content
// (the final decoded value) as a flat list of indented lines, suitable for
// a scrollable viewport. Dictionary entries are labeled by their
// backreference index; content is rendered last under its own heading.
func buildTree(dict []tsion.Value, content tsion.Value) []string {
	var lines []string

	for i, v := range dict {
		lines = append(lines, fmt.Sprintf("$%d", i))
		lines = append(lines, renderValue(v, 1)...)
	}

	lines = append(lines, "content")
	lines = append(lines, renderValue(content, 1)...)

	return lines
}

// renderValue recursively renders v as indented lines, starting at the
// given depth.
func renderValue(v tsion.Value, depth int) []string {
	indent := strings.Repeat("  ", depth)

	switch v.Kind() {
	case tsion.KindNull:
		return []string{indent + "null"}
	case tsion.KindBool:
		b, _ := v.Bool()

		return []string{indent + fmt.Sprintf("%t", b)}
	case tsion.KindNumber:
		n, _ := v.Num()

		return []string{indent + fmt.Sprintf("%v", n)}
	case tsion.KindBigInt:
		n, _ := v.BigInt()

		return []string{indent + n.String()}
	case tsion.KindString:
		s, _ := v.Str()

		return []string{indent + fmt.Sprintf("%q", s)}
	case tsion.KindArray:
		return renderArray(v, depth, indent)
	case tsion.KindObject:
		return renderObject(v, depth, indent)
	default:
		return []string{indent + "?"}
	}
}

func renderArray(v tsion.Value, depth int, indent string) []string {
	items, _ := v.ArrayItems()
	if len(items) == 0 {
		return []string{indent + "[]"}
	}

	lines := []string{indent + "["}

	for _, item := range items {
		lines = append(lines, renderValue(item, depth+1)...)
	}

	return append(lines, indent+"]")
}

func renderObject(v tsion.Value, depth int, indent string) []string {
	obj, _ := v.Object()
	if obj.Len() == 0 {
		return []string{indent + "{}"}
	}

	lines := []string{indent + "{"}
	childIndent := strings.Repeat("  ", depth+1)

	for _, k := range obj.Keys() {
		val, _ := obj.Get(k)

		lines = append(lines, childIndent+k+":")
		lines = append(lines, renderValue(val, depth+2)...)
	}

	return append(lines, indent+"}")
}
