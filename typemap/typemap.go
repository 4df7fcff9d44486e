// Package typemap converts C type expressions, as written in the Vulkan registry, to D syntax.
//
// The conversion works on text with a couple of regular expressions: it is not a C parser.
// Expressions it doesn't recognize are returned unchanged.
package typemap

import (
	"regexp"
	"slices"
	"strings"
)

var (
	reSingleConst = regexp.MustCompile(`^const\s+(.+)\*\s*$`)
	reDoubleConst = regexp.MustCompile(`^const\s+(.+)\*\s+const\*\s*$`)
)

// Keywords are D reserved words that may show up as registry identifiers.
var Keywords = []string{"module", "version", "function", "delegate", "body", "alias", "align", "scope"}

// BasicType maps a fixed-width C integer typedef to its D equivalent.
type BasicType struct {
	C, D string
}

// BasicTypes is emitted as aliases ahead of the registry base types.
var BasicTypes = []BasicType{
	{"uint8_t", "ubyte"},
	{"uint16_t", "ushort"},
	{"uint32_t", "uint"},
	{"uint64_t", "ulong"},
	{"int8_t", "byte"},
	{"int16_t", "short"},
	{"int32_t", "int"},
	{"int64_t", "long"},
}

// ConvertConst rewrites C pointers to const in D transitive const syntax:
//
//	const T* const*  ->  const(T*)*
//	const T*         ->  const(T)*
//
// The double indirection form must be tested first, since the single form would also match it.
func ConvertConst(typ string) string {
	if m := reDoubleConst.FindStringSubmatch(typ); m != nil {
		return "const(" + m[1] + "*)*"
	}
	if m := reSingleConst.FindStringSubmatch(typ); m != nil {
		return "const(" + m[1] + ")*"
	}
	return typ
}

func normalizePart(part string) string {
	part = strings.ReplaceAll(part, "struct ", "")
	part = strings.TrimSpace(part)
	return strings.ReplaceAll(part, "const", "const ")
}

// MapParts converts a type expression given as the text fragments of a registry element
// (e.g. "const ", "VkAllocationCallbacks", "* ") to D.
func MapParts(parts []string) string {
	var sb strings.Builder
	for _, part := range parts {
		sb.WriteString(normalizePart(part))
	}
	return ConvertConst(strings.ReplaceAll(sb.String(), "const *", "const*"))
}

// SafeName returns name with a "_" suffix if it is a D keyword.
func SafeName(name string) string {
	if slices.Contains(Keywords, name) {
		return name + "_"
	}
	return name
}

var literalMarkers = []struct{ from, to string }{
	{"0ULL", "0"},
	{"0L", "0"},
	{"0U", "0"},
	{"(", ""},
	{")", ""},
}

// NormalizeLiteral strips from a C constant expression the integer suffixes and parentheses D
// doesn't need: "(~0ULL)" becomes "~0". Applying it twice gives the same result as once.
//
// Markers are removed in a fixed order, repeatedly until nothing changes: removing "0U" from "0UL"
// leaves a "0L" behind.
func NormalizeLiteral(value string) string {
	for {
		previous := value
		for _, m := range literalMarkers {
			value = strings.ReplaceAll(value, m.from, m.to)
		}
		if value == previous {
			return value
		}
	}
}
