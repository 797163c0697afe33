package compliance

import (
	"slices"

	"github.com/goliatone/go-wamvgen/pkg/layout"
)

// Sensor validates sensor layouts. The macro name is the sensor type; every
// entry needs a name and, unless its type is pose optional, a mount pose.
type Sensor struct {
	limits Limits
}

var _ Checker = (*Sensor)(nil)

// NewSensor constructs a sensor checker bounded by limits.
func NewSensor(limits Limits) *Sensor {
	return &Sensor{limits: limits.clone()}
}

// Limits returns a copy of the configured limits.
func (s *Sensor) Limits() Limits {
	return s.limits.clone()
}

// CountCompliance checks the total entry count, then the per type caps in
// declaration order.
func (s *Sensor) CountCompliance(src *layout.Source) error {
	if err := countCompliance(src, s.limits, "sensor"); err != nil {
		return err
	}
	return perMacroCompliance(src, s.limits)
}

// ParamCompliance validates entries in declaration order and reports the
// first violation.
func (s *Sensor) ParamCompliance(src *layout.Source) error {
	for _, entry := range src.Entries() {
		if err := s.checkEntry(src, entry); err != nil {
			return err
		}
	}
	return nil
}

func (s *Sensor) checkEntry(src *layout.Source, entry layout.Entry) error {
	if err := checkMacro(src, entry, s.limits, "sensor"); err != nil {
		return err
	}
	if err := requireName(src, entry, "name"); err != nil {
		return err
	}
	if err := checkOptionalName(src, entry, "type"); err != nil {
		return err
	}
	if err := checkUniqueFlattened(src, entry); err != nil {
		return err
	}
	if err := checkMarkupSafe(src, entry); err != nil {
		return err
	}
	if !slices.Contains(s.limits.PoseOptional, entry.Macro) && !hasTranslation(entry) {
		return malformed(src, entry, "x", "mount pose requires at least one of x, y, z")
	}
	if err := checkVector(src, entry, "position"); err != nil {
		return err
	}
	if err := checkPoseComponents(src, entry); err != nil {
		return err
	}
	return checkEnvelope(src, entry, s.limits)
}
