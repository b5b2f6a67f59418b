package tsion

import (
	"math"
	"math/big"
	"strconv"
)

// Decode parses Tsion wire-format text into a [Value], or fails with a
// [*DecodeError] pointing at the offending token. Decode accepts either
// form of the grammar: dictionary-prefixed ("dict\x00content") or
// content-only (no NUL, exactly one top-level token).
func Decode(text string) (Value, error) {
	d := &decoder{src: text}

	return d.decode()
}

// DecodeWithDictionary behaves like [Decode] but also returns every
// top-level token read before the final value, in the order they were
// assigned backreference indices ($0, $1, ...). For content-only input
// (no NUL separator) dict holds that same single value alongside content.
// Callers that want to inspect or display the dictionary entries backing
// a decoded document (e.g. a tree browser) should use this instead of
// [Decode].
func DecodeWithDictionary(text string) (dict []Value, content Value, err error) {
	d := &decoder{src: text}

	v, err := d.decode()
	if err != nil {
		return nil, Value{}, err
	}

	return d.dict, v, nil
}

// decoder holds the transient state of a single Decode call: the source
// text, a byte cursor, and the growing dictionary of top-level tokens read
// so far.
type decoder struct {
	src  string
	pos  int
	dict []Value
}

func (d *decoder) decode() (Value, error) {
	for d.pos < len(d.src) && d.src[d.pos] != 0 {
		v, err := d.readValue()
		if err != nil {
			return Value{}, err
		}

		d.dict = append(d.dict, v)
	}

	if d.pos >= len(d.src) {
		if len(d.dict) != 1 {
			return Value{}, d.fail(ErrBadInput, d.preview(0))
		}

		return d.dict[0], nil
	}

	// d.src[d.pos] == 0: advance past the separator into POST_SEPARATOR mode.
	d.pos++

	v, err := d.readValue()
	if err != nil {
		return Value{}, err
	}

	if d.pos != len(d.src) {
		return Value{}, d.fail(ErrBadInput, d.preview(d.pos))
	}

	return v, nil
}

// readValue dispatches on the next byte and decodes exactly one token,
// recursing for composites. It never appends to d.dict; only decode's
// top-level loop does that.
func (d *decoder) readValue() (Value, error) {
	if d.pos >= len(d.src) {
		return Value{}, d.fail(ErrUnexpectedChar, "")
	}

	switch d.src[d.pos] {
	case '$':
		return d.readBackref()
	case ':':
		return d.readConstant()
	case '&':
		return d.readString()
	case '#':
		return d.readNumber()
	case '%':
		return d.readBigInt()
	case '[':
		return d.readArray()
	case '{':
		return d.readObject()
	case ']', '}':
		return Value{}, d.fail(ErrUnbalancedInput, d.preview(d.pos))
	default:
		return Value{}, d.fail(ErrUnexpectedChar, d.preview(d.pos))
	}
}

// readLeafBody consumes token characters (anything that is not a sigil,
// delimiter, NUL, or end-of-input) starting at the current position,
// which must be just past a leaf token's sigil.
func (d *decoder) readLeafBody() string {
	start := d.pos
	for d.pos < len(d.src) && !isTerminator(d.src[d.pos]) {
		d.pos++
	}

	return d.src[start:d.pos]
}

func (d *decoder) readBackref() (Value, error) {
	start := d.pos
	d.pos++ // consume '$'

	body := d.readLeafBody()
	if body == "" || !isAllDigits(body) {
		return Value{}, d.fail(ErrUnknownReference, d.src[start:d.pos])
	}

	n, err := strconv.Atoi(body)
	if err != nil || n < 0 || n >= len(d.dict) {
		return Value{}, d.fail(ErrUnknownReference, d.src[start:d.pos])
	}

	return d.dict[n], nil
}

func (d *decoder) readConstant() (Value, error) {
	start := d.pos
	d.pos++ // consume ':'

	switch d.readLeafBody() {
	case "n":
		return Null(), nil
	case "t":
		return Bool(true), nil
	case "f":
		return Bool(false), nil
	case "inf":
		return Number(math.Inf(1)), nil
	case "ninf":
		return Number(math.Inf(-1)), nil
	case "nan":
		return Number(math.NaN()), nil
	default:
		return Value{}, d.fail(ErrUnknownConstant, d.src[start:d.pos])
	}
}

func (d *decoder) readNumber() (Value, error) {
	start := d.pos
	d.pos++ // consume '#'

	body := d.readLeafBody()
	if !validNumber(body) {
		return Value{}, d.fail(ErrMalformedNumber, d.src[start:d.pos])
	}

	f, err := strconv.ParseFloat(body, 64)
	if err != nil {
		return Value{}, d.fail(ErrMalformedNumber, d.src[start:d.pos])
	}

	return Number(f), nil
}

func (d *decoder) readBigInt() (Value, error) {
	start := d.pos
	d.pos++ // consume '%'

	body := d.readLeafBody()
	if !validBigInt(body) {
		return Value{}, d.fail(ErrMalformedBigInt, d.src[start:d.pos])
	}

	n, ok := new(big.Int).SetString(body, 10)
	if !ok {
		return Value{}, d.fail(ErrMalformedBigInt, d.src[start:d.pos])
	}

	return BigIntValue(n), nil
}

// readString decodes a '&' string token. Escaping is active for the whole
// body: while scanning an escape sequence, any character (including
// sigils and delimiters) belongs to the body. Unescaped whitespace and
// other non-reserved characters pass through as-is; only the reserved
// sigils, delimiters, NUL, and the control characters listed in
// [Symbols.Escape] ever need escaping.
func (d *decoder) readString() (Value, error) {
	start := d.pos
	d.pos++ // consume '&'

	var buf []byte

	for d.pos < len(d.src) {
		c := d.src[d.pos]

		if c == '\\' {
			d.pos++

			if d.pos >= len(d.src) {
				return Value{}, d.fail(ErrTruncatedEscape, d.src[start:d.pos])
			}

			esc := d.src[d.pos]
			if !isEscapable(esc) {
				return Value{}, d.fail(ErrInvalidEscape, d.src[start:d.pos+1])
			}

			buf = append(buf, esc)
			d.pos++

			continue
		}

		if isTerminator(c) {
			break
		}

		buf = append(buf, c)
		d.pos++
	}

	return String(string(buf)), nil
}

func (d *decoder) readArray() (Value, error) {
	start := d.pos
	d.pos++ // consume '['

	var items []Value

	for {
		if d.pos >= len(d.src) {
			return Value{}, d.fail(ErrMissingCloser, d.src[start:])
		}

		if d.src[d.pos] == ']' {
			d.pos++

			break
		}

		v, err := d.readValue()
		if err != nil {
			return Value{}, err
		}

		items = append(items, v)
	}

	return Array(items...), nil
}

func (d *decoder) readObject() (Value, error) {
	start := d.pos
	d.pos++ // consume '{'

	if d.pos < len(d.src) && d.src[d.pos] == '}' {
		d.pos++

		return ObjectValue(NewObject()), nil
	}

	if d.pos >= len(d.src) {
		return Value{}, d.fail(ErrMissingCloser, d.src[start:])
	}

	keyTok, err := d.readValue()
	if err != nil {
		return Value{}, err
	}

	keys, err := d.objectKeys(keyTok, start)
	if err != nil {
		return Value{}, err
	}

	obj := NewObject()

	for _, k := range keys {
		if d.pos >= len(d.src) {
			return Value{}, d.fail(ErrMissingCloser, d.src[start:])
		}

		if d.src[d.pos] == '}' {
			return Value{}, d.fail(ErrValueCount, d.preview(start))
		}

		v, err := d.readValue()
		if err != nil {
			return Value{}, err
		}

		obj.Set(k, v)
	}

	if d.pos >= len(d.src) {
		return Value{}, d.fail(ErrMissingCloser, d.src[start:])
	}

	if d.src[d.pos] != '}' {
		return Value{}, d.fail(ErrValueCount, d.preview(start))
	}

	d.pos++

	return ObjectValue(obj), nil
}

// objectKeys validates and extracts the key list from an object's first
// token: a single string (single-key object) or an array of >=2 strings
// (multi-key object with a key-array wrapper).
func (d *decoder) objectKeys(keyTok Value, start int) ([]string, error) {
	switch keyTok.Kind() {
	case KindString:
		k, _ := keyTok.Str()

		return []string{k}, nil
	case KindArray:
		items, _ := keyTok.ArrayItems()
		if len(items) < 2 {
			return nil, d.fail(ErrInvalidKey, d.preview(start))
		}

		keys := make([]string, len(items))

		for i, item := range items {
			k, ok := item.Str()
			if !ok {
				return nil, d.fail(ErrInvalidKey, d.preview(start))
			}

			keys[i] = k
		}

		return keys, nil
	default:
		return nil, d.fail(ErrInvalidKey, d.preview(start))
	}
}

func (d *decoder) fail(err error, token string) error {
	return &DecodeError{Err: err, Token: token, Offset: d.pos}
}

// preview returns a bounded snippet of the source starting at pos, for use
// as a DecodeError token; [DecodeError.Error] truncates further to 12
// runes, so the exact bound here only needs to be "long enough."
func (d *decoder) preview(pos int) string {
	const maxPreview = 64

	end := min(pos+maxPreview, len(d.src))

	if pos >= len(d.src) {
		return ""
	}

	return d.src[pos:end]
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}

	for i := range len(s) {
		if !isDigit(s[i]) {
			return false
		}
	}

	return true
}
