// Package version implements loose version strings: a version is tokenized
// into integer and lowercase-word parts and ordered positionally.
//
// The ordering treats an integer part as less than a string part whenever the
// two disagree in type. This rule is not transitive for every mix of integer
// and string parts; it is kept as-is so that orderings stay compatible with
// binaries already cached under older version names.
package version

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var componentRegex = regexp.MustCompile(`\d+|[a-z]+|\.`)

// Part is a single token of a version: either an integer or a string.
type Part struct {
	num   int64
	str   string
	isInt bool
}

// IntPart returns an integer token.
func IntPart(n int64) Part {
	return Part{num: n, isInt: true}
}

// StringPart returns a string token.
func StringPart(s string) Part {
	return Part{str: s}
}

// IsInt reports whether the part is an integer token.
func (p Part) IsInt() bool {
	return p.isInt
}

// Int returns the integer value. It is zero for string tokens.
func (p Part) Int() int64 {
	return p.num
}

// String returns the token as text.
func (p Part) String() string {
	if p.isInt {
		return strconv.FormatInt(p.num, 10)
	}
	return p.str
}

// comparePart orders two present parts. Integers are less than strings.
func comparePart(a, b Part) int {
	switch {
	case a.isInt && b.isInt:
		switch {
		case a.num < b.num:
			return -1
		case a.num > b.num:
			return 1
		}
		return 0
	case !a.isInt && !b.isInt:
		return strings.Compare(a.str, b.str)
	case a.isInt:
		return -1
	default:
		return 1
	}
}

// Version is a parsed loose version. The source string is kept verbatim for
// display; the parts are never serialized back into a string.
type Version struct {
	raw   string
	parts []Part
}

// Parse tokenizes s. Runs of digits become integer parts, runs of lowercase
// letters become string parts, dots are separators and any other character
// is ignored. A digit run too large for int64 is kept as a string part.
// Parse never fails; an input with no tokens yields an empty version.
func Parse(s string) Version {
	v := Version{raw: s}
	for _, tok := range componentRegex.FindAllString(s, -1) {
		if tok == "." {
			continue
		}
		if n, err := strconv.ParseInt(tok, 10, 64); err == nil {
			v.parts = append(v.parts, IntPart(n))
			continue
		}
		v.parts = append(v.parts, StringPart(tok))
	}
	return v
}

// String returns the original version string.
func (v Version) String() string {
	return v.raw
}

// Parts returns a copy of the tokens.
func (v Version) Parts() []Part {
	return slices.Clone(v.parts)
}

// Len returns the number of tokens.
func (v Version) Len() int {
	return len(v.parts)
}

// IsZero reports whether the version has no tokens.
func (v Version) IsZero() bool {
	return len(v.parts) == 0
}

// Major returns the leading integer part, or -1 if the version does not
// start with one.
func (v Version) Major() int64 {
	if len(v.parts) == 0 || !v.parts[0].isInt {
		return -1
	}
	return v.parts[0].num
}

// Compare returns -1, 0 or +1 depending on whether a sorts before, equal to,
// or after b. A missing part sorts before any present part.
func Compare(a, b Version) int {
	n := max(len(a.parts), len(b.parts))
	for i := 0; i < n; i++ {
		switch {
		case i >= len(a.parts):
			return -1
		case i >= len(b.parts):
			return 1
		}
		if c := comparePart(a.parts[i], b.parts[i]); c != 0 {
			return c
		}
	}
	return 0
}

// Compare compares v with other. See the package-level Compare.
func (v Version) Compare(other Version) int {
	return Compare(v, other)
}

// Equal reports whether v and other compare equal.
func (v Version) Equal(other Version) bool {
	return Compare(v, other) == 0
}

// Less reports whether v sorts before other.
func (v Version) Less(other Version) bool {
	return Compare(v, other) < 0
}

// Sort orders versions ascending in place. The sort is stable so inputs that
// compare equal keep their relative order.
func Sort(versions []Version) {
	slices.SortStableFunc(versions, Compare)
}
