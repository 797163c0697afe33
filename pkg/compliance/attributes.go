package compliance

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/goliatone/go-wamvgen/pkg/layout"
)

// poseComponents must hold numeric values wherever they appear, nested
// records included. R/P/Y and post_Y are the sensor macro spellings.
var poseComponents = []string{"x", "y", "z", "roll", "pitch", "yaw", "R", "P", "Y", "post_Y"}

var translation = []string{"x", "y", "z"}

func malformed(src *layout.Source, entry layout.Entry, attr, format string, args ...any) error {
	return &layout.ConfigurationError{
		Kind:      layout.KindMissingOrMalformedAttribute,
		Source:    src.ID(),
		Entry:     entry.Key,
		Attribute: attr,
		Detail:    fmt.Sprintf(format, args...),
	}
}

func checkMacro(src *layout.Source, entry layout.Entry, limits Limits, noun string) error {
	if limits.allowsMacro(entry.Macro) {
		return nil
	}
	return malformed(src, entry, "", "%q is not a supported %s macro (allowed: %s)", entry.Macro, noun, strings.Join(limits.Macros, ", "))
}

func requireName(src *layout.Source, entry layout.Entry, attr string) error {
	value, ok := entry.Lookup(attr)
	if !ok {
		return malformed(src, entry, attr, "required")
	}
	return checkName(src, entry, attr, value)
}

func checkOptionalName(src *layout.Source, entry layout.Entry, attr string) error {
	value, ok := entry.Lookup(attr)
	if !ok {
		return nil
	}
	return checkName(src, entry, attr, value)
}

func checkName(src *layout.Source, entry layout.Entry, attr string, value layout.Value) error {
	if value.Type != layout.TypeString || strings.TrimSpace(value.Scalar) == "" {
		return malformed(src, entry, attr, "must be a non-empty string")
	}
	return nil
}

// checkUniqueFlattened rejects entries whose nested records would flatten
// into repeated XML attributes.
func checkUniqueFlattened(src *layout.Source, entry layout.Entry) error {
	seen := make(map[string]struct{})
	for _, attr := range entry.Flatten() {
		if _, exists := seen[attr.Name]; exists {
			return malformed(src, entry, attr.Name, "declared more than once after flattening nested records")
		}
		seen[attr.Name] = struct{}{}
	}
	return nil
}

// checkMarkupSafe rejects attribute names that are not XML names and values
// holding characters XML 1.0 cannot represent. Both reach the assembled
// document verbatim.
func checkMarkupSafe(src *layout.Source, entry layout.Entry) error {
	for _, attr := range entry.Flatten() {
		if !isXMLName(attr.Name) {
			return malformed(src, entry, attr.Name, "%q is not a valid XML attribute name", attr.Name)
		}
		if r, ok := illegalXMLChar(attr.Value.Scalar); ok {
			return malformed(src, entry, attr.Name, "contains %U, which XML does not allow", r)
		}
	}
	return nil
}

// isXMLName accepts names made of letters, digits, '_', '-' and '.', starting
// with a letter or '_'. Colons are left out so no namespace prefix can be
// smuggled in.
func isXMLName(name string) bool {
	if name == "" || !utf8.ValidString(name) {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && (r == '-' || r == '.' || unicode.IsDigit(r)):
		default:
			return false
		}
	}
	return true
}

func illegalXMLChar(s string) (rune, bool) {
	for i, r := range s {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(s[i:]); size <= 1 {
				return r, true
			}
		}
		switch {
		case r == '\t' || r == '\n' || r == '\r':
		case r >= 0x20 && r <= 0xD7FF:
		case r >= 0xE000 && r <= 0xFFFD:
		case r >= 0x10000 && r <= 0x10FFFF:
		default:
			return r, true
		}
	}
	return 0, false
}

func checkPoseComponents(src *layout.Source, entry layout.Entry) error {
	for _, attr := range entry.Flatten() {
		if !slices.Contains(poseComponents, attr.Name) {
			continue
		}
		if !isNumeric(attr.Value) {
			return malformed(src, entry, attr.Name, "must be numeric, got %q", attr.Value.Scalar)
		}
	}
	return nil
}

func checkVector(src *layout.Source, entry layout.Entry, attr string) error {
	value, ok := entry.Lookup(attr)
	if !ok {
		return nil
	}
	if !isVector3(value) {
		return malformed(src, entry, attr, "must hold three numeric components, got %q", value.Scalar)
	}
	return nil
}

func hasTranslation(entry layout.Entry) bool {
	if _, ok := entry.Lookup("position"); ok {
		return true
	}
	for _, name := range translation {
		if _, ok := entry.Find(name); ok {
			return true
		}
	}
	return false
}

func isNumeric(v layout.Value) bool {
	switch v.Type {
	case layout.TypeNumber:
		if isNumericText(v.Scalar) {
			return true
		}
		// YAML integer spellings such as 0x1F or 1_000.
		_, err := strconv.ParseInt(strings.ReplaceAll(v.Scalar, "_", ""), 0, 64)
		return err == nil
	case layout.TypeString:
		return isNumericText(v.Scalar)
	default:
		return false
	}
}

func isNumericText(s string) bool {
	s = strings.TrimSpace(s)
	if isExpression(s) {
		return true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return false
	}
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// isExpression recognises xacro ${...} expressions, which are passed through
// without evaluation.
func isExpression(s string) bool {
	return len(s) > 3 && strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}")
}

func isVector3(v layout.Value) bool {
	if v.Type != layout.TypeString {
		return false
	}
	parts := strings.Fields(v.Scalar)
	if len(parts) != 3 {
		return false
	}
	for _, part := range parts {
		if !isNumericText(part) {
			return false
		}
	}
	return true
}

// literalPoint resolves the entry translation when every component is a
// numeric literal. Missing components default to zero, matching the macro
// defaults. Expressions make the point unknown.
func literalPoint(entry layout.Entry) (Point, bool) {
	if value, ok := entry.Lookup("position"); ok {
		parts := strings.Fields(value.Scalar)
		if len(parts) != 3 {
			return Point{}, false
		}
		var coords [3]float64
		for i, part := range parts {
			f, err := strconv.ParseFloat(part, 64)
			if err != nil {
				return Point{}, false
			}
			coords[i] = f
		}
		return Point{X: coords[0], Y: coords[1], Z: coords[2]}, true
	}

	var coords [3]float64
	for i, name := range translation {
		value, ok := entry.Find(name)
		if !ok {
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(value.Scalar), 64)
		if err != nil {
			return Point{}, false
		}
		coords[i] = f
	}
	return Point{X: coords[0], Y: coords[1], Z: coords[2]}, true
}

func checkEnvelope(src *layout.Source, entry layout.Entry, limits Limits) error {
	if len(limits.Envelopes) == 0 {
		return nil
	}
	point, ok := literalPoint(entry)
	if !ok {
		return nil
	}
	for _, box := range limits.Envelopes {
		if box.Contains(point) {
			return nil
		}
	}
	return &layout.ConfigurationError{
		Kind:   layout.KindPoseOutsideEnvelope,
		Source: src.ID(),
		Entry:  entry.Key,
		Detail: fmt.Sprintf("position (%g, %g, %g) lies outside every mounting envelope", point.X, point.Y, point.Z),
	}
}
