package namelist

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Indent prefixes every field line inside a namelist group.
const Indent = "    "

// Group brackets field lines with the ` &name` and ` /` delimiters.
func Group(name string, fields []string) string {
	lines := make([]string, 0, len(fields)+2)
	lines = append(lines, " &"+name)
	lines = append(lines, fields...)
	lines = append(lines, " /")
	return strings.Join(lines, "\n")
}

// PushField appends a `name=value,` line with value rendered verbatim.
func PushField(lines []string, name, value string) []string {
	return append(lines, fmt.Sprintf("%s%s=%s,", Indent, name, value))
}

// PushStringField appends a `name='value',` line.
func PushStringField(lines []string, name, value string) []string {
	return PushField(lines, name, Quote(value))
}

// PushBoolField appends a `name=.true.,` or `name=.false.,` line when b is
// set and leaves lines untouched otherwise.
func PushBoolField(lines []string, name string, b *bool) []string {
	if b == nil {
		return lines
	}
	return PushField(lines, name, Bool(*b))
}

// Bool returns the Fortran logical token for b.
func Bool(b bool) string {
	if b {
		return ".true."
	}
	return ".false."
}

// Quote wraps s in single quotes.
func Quote(s string) string {
	return "'" + s + "'"
}

// Float formats f in plain decimal form using the fewest digits that
// round-trip. Integral values carry no fractional part.
func Float(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Sci formats f in exponent form with the shortest round-trip mantissa and an
// unpadded exponent, e.g. 1e-8 or 2.5e3.
func Sci(f float64) string {
	s := strconv.FormatFloat(f, 'e', -1, 64)
	mant, exp, ok := strings.Cut(s, "e")
	if !ok {
		// NaN and Inf carry no exponent.
		return s
	}
	n, err := strconv.Atoi(exp)
	if err != nil {
		return s
	}
	return mant + "e" + strconv.Itoa(n)
}

// CheckUTF8 returns encErr when path is not valid UTF-8 text.
func CheckUTF8(path string, encErr error) (string, error) {
	if !utf8.ValidString(path) {
		return "", encErr
	}
	return path, nil
}

// Ptr returns a pointer to v. It keeps optional fields in literals short.
func Ptr[T any](v T) *T {
	return &v
}
