package compliance

import (
	"github.com/goliatone/go-wamvgen/pkg/layout"
)

// Thruster validates thruster layouts. Every entry needs a prefix, which also
// names the thrust command channel (<prefix>_thrust_cmd), and a pose given
// either as a position vector or as x, y and z components.
type Thruster struct {
	limits Limits
}

var _ Checker = (*Thruster)(nil)

// NewThruster constructs a thruster checker bounded by limits.
func NewThruster(limits Limits) *Thruster {
	return &Thruster{limits: limits.clone()}
}

// Limits returns a copy of the configured limits.
func (t *Thruster) Limits() Limits {
	return t.limits.clone()
}

// CountCompliance fails when the layout declares no thrusters or more than the
// configured maximum.
func (t *Thruster) CountCompliance(src *layout.Source) error {
	if err := countCompliance(src, t.limits, "thruster"); err != nil {
		return err
	}
	return perMacroCompliance(src, t.limits)
}

// ParamCompliance validates entries in declaration order and reports the
// first violation.
func (t *Thruster) ParamCompliance(src *layout.Source) error {
	for _, entry := range src.Entries() {
		if err := t.checkEntry(src, entry); err != nil {
			return err
		}
	}
	return nil
}

func (t *Thruster) checkEntry(src *layout.Source, entry layout.Entry) error {
	if err := checkMacro(src, entry, t.limits, "thruster"); err != nil {
		return err
	}
	if err := requireName(src, entry, "prefix"); err != nil {
		return err
	}
	if err := checkOptionalName(src, entry, "name"); err != nil {
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

	if _, ok := entry.Lookup("position"); ok {
		if err := checkVector(src, entry, "position"); err != nil {
			return err
		}
	} else {
		for _, name := range translation {
			if _, ok := entry.Find(name); !ok {
				return malformed(src, entry, name, "thruster pose requires a position vector or x, y and z")
			}
		}
	}
	if err := checkVector(src, entry, "orientation"); err != nil {
		return err
	}
	if err := checkPoseComponents(src, entry); err != nil {
		return err
	}
	return checkEnvelope(src, entry, t.limits)
}
