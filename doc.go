// Package tsion implements the Tsion textual serialization codec: an
// in-memory value tree (nulls, booleans, numbers, arbitrary-precision
// integers, strings, arrays, and ordered objects) encodes to a single
// textual payload in which every repeated literal and repeated composite
// substructure appears at most once, lifted into a dictionary prefix and
// referenced by compact back-references.
//
// The two entry points are [Encode] and [Decode]. Both operate on complete,
// in-memory [Value] trees; there is no streaming mode, no binary framing,
// and no schema validation (see the package-level Non-goals below).
//
// # Wire Format
//
// Encoded text has the shape "dictionary NUL content", or just "content"
// when there is no duplication to lift. Every token begins with a sigil or
// a delimiter:
//
//	:n :t :f :inf :ninf :nan   constants (null, true, false, +Inf, -Inf, NaN)
//	&escaped-chars             string literal
//	#decimal                   finite number
//	%decimal                   arbitrary-precision integer
//	$n                         dictionary back-reference
//	[ tok* ]                   array
//	{ }  { key val }  { keyArr val* }   object (empty / single-key / multi-key)
//
// Sigils (':','$','&','#','%') and delimiters ('[',']','{','}') are
// reserved: see [Symbols]. A string body backslash-escapes every
// reserved character plus '\\', NUL, tab, newline, and carriage return.
//
// # Encoding Pipeline
//
// [Encode] walks the value tree depth-first, interning every literal and
// every composite structure into two maps under synthetic placeholders
// ("?n" for literals, "+n" for structures; internal only, never emitted).
// It then counts how many times each placeholder appears across every
// interned structure body (the root value's own top-level token is
// deliberately excluded from this count) and promotes any placeholder
// referenced two or more times to a dictionary entry. A final
// rewrite pass walks the structure map in insertion order, which is
// exactly depth-first post-order, so every structure only ever references
// earlier, already-resolved entries. It replaces each placeholder with
// either its dictionary reference or its inlined body, and assembles the
// dictionary in the same sequential order the decoder will reconstruct it.
//
// # Decoding
//
// [Decode] scans tokens left to right, appending each top-level token it
// reads to a growing dictionary (indexed $0, $1, $2, ...) until it hits the
// NUL separator or the end of input. A NUL switches it into
// "decode exactly one more token as the final value" mode; no NUL means the
// input was content-only, and exactly one top-level token must have been
// present. [DecodeWithDictionary] exposes that intermediate dictionary
// alongside the final value, for callers that want to display it.
//
// # Host Types
//
// [Value] is this package's own tagged-union domain type. [From] adapts
// Go-native values (and any type implementing [Marshaler]) into a [Value]
// before they cross into the codec. [Encode] and [Decode] themselves only
// ever see [Value]; they never fail on a well-formed, acyclic input.
//
// # Errors
//
// [Encode] does not fail on acyclic input. [Decode] returns a
// [*DecodeError] wrapping one of this package's sentinel errors
// (ErrMissingCloser, ErrUnexpectedChar, ErrMalformedNumber, and so on; see
// errors.go), quoting the offending token truncated to 12 runes.
//
// # Non-goals
//
// Streaming (both operations require the complete value/text up front),
// binary framing (the format is textual with a single NUL delimiter),
// schema validation, cyclic input support (cyclic [Value] trees are
// undefined behavior; the encoder assumes a DAG), and object key-order
// canonicalization (key order is preserved exactly as given).
package tsion
