package tsion

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Encode produces the Tsion wire-format text for v. Encode is total over
// every acyclic [Value] tree: it never fails. Output is UTF-8 text
// containing at most one unescaped NUL byte (the dictionary/content
// separator); NUL bytes inside strings are emitted backslash-escaped.
//
// Cycles are undefined behavior: the encoder walks depth-first without a
// visited set. Callers must guarantee v is acyclic.
func Encode(v Value) (string, error) {
	enc := newEncoder()

	content := enc.encodeValue(v)
	dup := enc.detectDuplicates()
	dictionary := enc.rewrite(dup)
	resolvedContent := enc.resolveBody(content, enc.dictIDs)

	if dictionary == "" {
		return resolvedContent, nil
	}

	return dictionary + "\x00" + resolvedContent, nil
}

// encoder holds the transient state of a single Encode call: the
// insertion-ordered literal and structure interning maps, and (once the
// rewrite pass runs) the placeholder -> dictionary-index assignment.
type encoder struct {
	literalBodies []string       // ?n -> body, insertion order.
	literalIndex  map[string]int // body -> n, for interning.

	structBodies []string       // +n -> body, insertion order (depth-first post-order).
	structIndex  map[string]int // body -> n, for interning.

	dictIDs map[string]int // "?n"/"+n" -> $m, populated by rewrite.
}

func newEncoder() *encoder {
	return &encoder{
		literalIndex: make(map[string]int),
		structIndex:  make(map[string]int),
	}
}

// internLiteral interns body (a leaf token including its sigil) into
// literalBodies, returning its "?n" placeholder. Repeated bodies intern to
// the same index.
func (e *encoder) internLiteral(body string) string {
	if n, ok := e.literalIndex[body]; ok {
		return "?" + strconv.Itoa(n)
	}

	n := len(e.literalBodies)
	e.literalBodies = append(e.literalBodies, body)
	e.literalIndex[body] = n

	return "?" + strconv.Itoa(n)
}

// internStruct interns body (a composite token including its delimiters)
// into structBodies, returning its "+n" placeholder.
func (e *encoder) internStruct(body string) string {
	if n, ok := e.structIndex[body]; ok {
		return "+" + strconv.Itoa(n)
	}

	n := len(e.structBodies)
	e.structBodies = append(e.structBodies, body)
	e.structIndex[body] = n

	return "+" + strconv.Itoa(n)
}

// encodeValue recursively encodes v, returning a token: a bare constant
// (":n", ":t", ...) for non-interned constants, or a "?n"/"+n" placeholder
// for interned literals/structures.
func (e *encoder) encodeValue(v Value) string {
	switch v.Kind() {
	case KindNull:
		return ":n"
	case KindBool:
		b, _ := v.Bool()
		if b {
			return ":t"
		}

		return ":f"
	case KindNumber:
		return e.encodeNumber(v)
	case KindBigInt:
		n, _ := v.BigInt()

		return e.internLiteral("%" + n.String())
	case KindString:
		s, _ := v.Str()

		return e.internLiteral("&" + escapeString(s))
	case KindArray:
		return e.encodeArray(v)
	case KindObject:
		return e.encodeObject(v)
	default:
		// Unknown value kinds encode as null.
		return ":n"
	}
}

func (e *encoder) encodeNumber(v Value) string {
	f, _ := v.Num()

	switch {
	case math.IsNaN(f):
		return ":nan"
	case math.IsInf(f, 1):
		return ":inf"
	case math.IsInf(f, -1):
		return ":ninf"
	default:
		return e.internLiteral("#" + formatNumber(f))
	}
}

func (e *encoder) encodeArray(v Value) string {
	items, _ := v.ArrayItems()

	var sb strings.Builder

	sb.WriteByte('[')

	for _, item := range items {
		sb.WriteString(e.encodeValue(item))
	}

	sb.WriteByte(']')

	return e.internStruct(sb.String())
}

// encodeObject chooses the empty, single-entry, or multi-entry object
// shape by key count. The asymmetry between the single-key form (bare key
// token) and the two-or-more-key form (key-array wrapper) is intentional:
// a lone key is never worth wrapping in an array just for uniformity.
func (e *encoder) encodeObject(v Value) string {
	obj, _ := v.Object()

	switch obj.Len() {
	case 0:
		return e.internStruct("{}")
	case 1:
		key := obj.Keys()[0]
		val, _ := obj.Get(key)

		keyTok := e.internLiteral("&" + escapeString(key))
		valTok := e.encodeValue(val)

		return e.internStruct("{" + keyTok + valTok + "}")
	default:
		return e.encodeMultiKeyObject(obj)
	}
}

func (e *encoder) encodeMultiKeyObject(obj *Object) string {
	keys := obj.Keys()

	keyValues := make([]Value, len(keys))
	for i, k := range keys {
		keyValues[i] = String(k)
	}

	keyArrTok := e.encodeValue(Array(keyValues...))

	var sb strings.Builder

	sb.WriteByte('{')
	sb.WriteString(keyArrTok)

	for _, k := range keys {
		val, _ := obj.Get(k)
		sb.WriteString(e.encodeValue(val))
	}

	sb.WriteByte('}')

	return e.internStruct(sb.String())
}

// detectDuplicates scans every structBodies entry and counts "?n"/"+n"
// occurrences across the union of those bodies. Root content is
// deliberately excluded from the count: a placeholder used once in content
// and never inside any structure is not promoted, even though this can
// leave avoidable duplication at the root.
func (e *encoder) detectDuplicates() map[string]bool {
	counts := make(map[string]int)

	for _, body := range e.structBodies {
		for _, ph := range extractPlaceholders(body) {
			counts[ph]++
		}
	}

	dup := make(map[string]bool, len(counts))

	for ph, n := range counts {
		if n >= 2 {
			dup[ph] = true
		}
	}

	return dup
}

// rewrite promotes duplicate placeholders to dictionary entries: literal
// duplicates first (in literalMap insertion order), then structureMap
// entries in insertion order (depth-first post-order), resolving embedded
// placeholders and promoting duplicates to dictionary entries as they are
// encountered. It populates e.dictIDs for the subsequent content
// resolution and returns the assembled dictionary.
func (e *encoder) rewrite(dup map[string]bool) string {
	e.dictIDs = make(map[string]int)

	var dict strings.Builder

	nextID := 0

	for n, body := range e.literalBodies {
		ph := "?" + strconv.Itoa(n)
		if dup[ph] {
			e.dictIDs[ph] = nextID
			dict.WriteString(body)
			nextID++
		}
	}

	for n := range e.structBodies {
		ph := "+" + strconv.Itoa(n)

		resolved := e.resolveBody(e.structBodies[n], e.dictIDs)
		e.structBodies[n] = resolved

		if dup[ph] {
			e.dictIDs[ph] = nextID
			dict.WriteString(resolved)
			nextID++
		}
	}

	return dict.String()
}

// resolveBody replaces every "?n"/"+n" placeholder in body with either its
// "$m" dictionary reference (if dictIDs has one) or its inlined literal/
// structure body. Structure references always point to an earlier,
// already-resolved structMap entry (post-order insertion guarantees
// k < n), so inlining here never re-introduces an unresolved placeholder.
func (e *encoder) resolveBody(body string, dictIDs map[string]int) string {
	if !strings.ContainsAny(body, "?+") {
		return body
	}

	var sb strings.Builder

	i, n := 0, len(body)

	for i < n {
		c := body[i]
		if c != '?' && c != '+' {
			sb.WriteByte(c)
			i++

			continue
		}

		j := i + 1
		for j < n && isDigit(body[j]) {
			j++
		}

		if j == i+1 {
			sb.WriteByte(c)
			i++

			continue
		}

		ph := body[i:j]

		if id, ok := dictIDs[ph]; ok {
			fmt.Fprintf(&sb, "$%d", id)
		} else {
			idx, _ := strconv.Atoi(body[i+1 : j])
			if c == '?' {
				sb.WriteString(e.literalBodies[idx])
			} else {
				sb.WriteString(e.structBodies[idx])
			}
		}

		i = j
	}

	return sb.String()
}

// extractPlaceholders returns every "?n"/"+n" occurrence in body, in
// left-to-right order. Structure bodies at detection time contain only
// placeholders and delimiters/constants (literal text is never inlined
// before the rewrite pass), so '?'/'+' unambiguously start a placeholder.
func extractPlaceholders(body string) []string {
	var out []string

	i, n := 0, len(body)

	for i < n {
		c := body[i]
		if c != '?' && c != '+' {
			i++

			continue
		}

		j := i + 1
		for j < n && isDigit(body[j]) {
			j++
		}

		if j > i+1 {
			out = append(out, body[i:j])
			i = j
		} else {
			i++
		}
	}

	return out
}
