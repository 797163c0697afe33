package compliance

import (
	"fmt"

	"github.com/goliatone/go-wamvgen/pkg/layout"
)

// CountChecker validates the number of entries in a layout.
type CountChecker interface {
	CountCompliance(src *layout.Source) error
}

// ParamChecker validates the attributes carried by every entry.
type ParamChecker interface {
	ParamCompliance(src *layout.Source) error
}

// Checker bundles both checks for one pipeline.
type Checker interface {
	CountChecker
	ParamChecker
}

// Check runs the cheap count check before the per entry parameter check and
// returns the first failure.
func Check(c Checker, src *layout.Source) error {
	if err := c.CountCompliance(src); err != nil {
		return err
	}
	return c.ParamCompliance(src)
}

func countCompliance(src *layout.Source, limits Limits, noun string) error {
	n := src.Len()
	switch {
	case n == 0:
		return countError(src, "", "no %ss declared", noun)
	case n < limits.Min:
		return countError(src, "", "%d %ss declared, at least %d required", n, noun, limits.Min)
	case limits.Max > 0 && n > limits.Max:
		return countError(src, "", "%d %ss declared, at most %d allowed", n, noun, limits.Max)
	}
	return nil
}

func perMacroCompliance(src *layout.Source, limits Limits) error {
	if len(limits.PerMacro) == 0 {
		return nil
	}
	seen := make(map[string]int, len(limits.PerMacro))
	for _, entry := range src.Entries() {
		seen[entry.Macro]++
		limit, ok := limits.PerMacro[entry.Macro]
		if !ok {
			continue
		}
		if seen[entry.Macro] > limit {
			return countError(src, entry.Key, "more than %d %s instances declared", limit, entry.Macro)
		}
	}
	return nil
}

func countError(src *layout.Source, entry, format string, args ...any) error {
	return &layout.ConfigurationError{
		Kind:   layout.KindCountOutOfBounds,
		Source: src.ID(),
		Entry:  entry,
		Detail: fmt.Sprintf(format, args...),
	}
}
