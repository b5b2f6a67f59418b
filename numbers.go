package tsion

import (
	"strconv"
	"strings"
)

// formatNumber renders f as the decimal body of a '#' token: finite,
// shortest round-trip. NaN and ±Inf never reach here; they encode as the
// ':nan'/':inf'/':ninf' constants instead.
//
// [strconv.FormatFloat] with precision -1 already implements shortest
// round-trip formatting in the standard library, so no external
// dependency is needed; its exponent form just needs normalizing to match
// the grammar's "no leading zero in the exponent" rule.
func formatNumber(f float64) string {
	return normalizeExponent(strconv.FormatFloat(f, 'g', -1, 64))
}

// normalizeExponent strips the leading zeros strconv pads exponents with
// (e.g. "1e+08" -> "1e+8") so the result matches the grammar's
// ([eE][+-]?(0|[1-9]\d*))? exponent form.
func normalizeExponent(s string) string {
	idx := strings.IndexAny(s, "eE")
	if idx < 0 {
		return s
	}

	mantissa, exp := s[:idx], s[idx+1:]

	sign := ""
	if exp != "" && (exp[0] == '+' || exp[0] == '-') {
		sign = exp[:1]
		exp = exp[1:]
	}

	exp = strings.TrimLeft(exp, "0")
	if exp == "" {
		exp = "0"
	}

	return mantissa + "e" + sign + exp
}

// validNumber reports whether s matches
// -?(0|[1-9]\d*)(\.\d+)?([eE][+-]?(0|[1-9]\d*))?,
// written as a hand scanner rather than regexp.
func validNumber(s string) bool {
	i, n := 0, len(s)
	if n == 0 {
		return false
	}

	if s[i] == '-' {
		i++
	}

	var ok bool

	i, ok = scanUnsignedInt(s, i)
	if !ok {
		return false
	}

	if i < n && s[i] == '.' {
		i++

		fracStart := i
		for i < n && isDigit(s[i]) {
			i++
		}

		if i == fracStart {
			return false
		}
	}

	if i < n && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < n && (s[i] == '+' || s[i] == '-') {
			i++
		}

		i, ok = scanUnsignedInt(s, i)
		if !ok {
			return false
		}
	}

	return i == n
}

// validBigInt reports whether s matches -?(0|[1-9]\d*).
func validBigInt(s string) bool {
	i, n := 0, len(s)
	if n == 0 {
		return false
	}

	if s[i] == '-' {
		i++
	}

	i, ok := scanUnsignedInt(s, i)
	if !ok {
		return false
	}

	return i == n
}

// scanUnsignedInt scans (0|[1-9]\d*) starting at i, returning the new
// index and whether a match was found.
func scanUnsignedInt(s string, i int) (int, bool) {
	n := len(s)
	if i >= n || !isDigit(s[i]) {
		return i, false
	}

	if s[i] == '0' {
		return i + 1, true
	}

	for i < n && isDigit(s[i]) {
		i++
	}

	return i, true
}
