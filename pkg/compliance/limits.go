package compliance

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Point is a translation in the WAM-V base frame, in metres.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Box is an axis aligned mounting envelope on the vehicle.
type Box struct {
	Name string `yaml:"name"`
	Min  Point  `yaml:"min"`
	Max  Point  `yaml:"max"`
}

// Contains reports whether p lies inside the box, bounds included.
func (b Box) Contains(p Point) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Limits bounds what a layout may declare.
type Limits struct {
	// Min and Max bound the total number of entries. Zero entries always fail.
	Min int `yaml:"min"`
	Max int `yaml:"max"`
	// Macros lists the macro names a layout may instantiate. Empty allows any.
	Macros []string `yaml:"macros"`
	// PerMacro caps the number of entries per macro name.
	PerMacro map[string]int `yaml:"per_macro"`
	// PoseOptional lists macros whose entries need no mount pose.
	PoseOptional []string `yaml:"pose_optional"`
	// Envelopes, when set, restrict literal poses to at least one box.
	Envelopes []Box `yaml:"envelopes"`
}

// ThrusterLimits returns the default thruster bounds: between one and four
// engine instances anywhere on the hull.
func ThrusterLimits() Limits {
	return Limits{
		Min:    1,
		Max:    4,
		Macros: []string{"engine"},
	}
}

// SensorLimits returns the default sensor bounds. The total cap is the sum of
// the per type caps.
func SensorLimits() Limits {
	perMacro := map[string]int{
		"wamv_camera":       3,
		"wamv_gps":          1,
		"wamv_imu":          1,
		"lidar":             2,
		"wamv_p3d":          1,
		"wamv_pinger":       1,
		"wamv_ball_shooter": 1,
	}
	return Limits{
		Min:          1,
		Max:          10,
		Macros:       []string{"wamv_camera", "wamv_gps", "wamv_imu", "lidar", "wamv_p3d", "wamv_pinger", "wamv_ball_shooter"},
		PerMacro:     perMacro,
		PoseOptional: []string{"wamv_p3d"},
	}
}

// LoadLimits reads a YAML limits file and overlays the fields it sets onto
// base. Unset fields keep the base values.
func LoadLimits(path string, base Limits) (Limits, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Limits{}, fmt.Errorf("compliance: read limits %s: %w", path, err)
	}
	return ParseLimits(path, data, base)
}

// ParseLimits decodes limits from data, see LoadLimits.
func ParseLimits(source string, data []byte, base Limits) (Limits, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Limits{}, fmt.Errorf("compliance: limits file %s is empty", source)
	}

	var overlay Limits
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return Limits{}, fmt.Errorf("compliance: parse limits %s: %w", source, err)
	}

	out := base.clone()
	if overlay.Min != 0 {
		out.Min = overlay.Min
	}
	if overlay.Max != 0 {
		out.Max = overlay.Max
	}
	if overlay.Macros != nil {
		out.Macros = overlay.Macros
	}
	if overlay.PerMacro != nil {
		out.PerMacro = overlay.PerMacro
	}
	if overlay.PoseOptional != nil {
		out.PoseOptional = overlay.PoseOptional
	}
	if overlay.Envelopes != nil {
		out.Envelopes = overlay.Envelopes
	}

	if err := out.Validate(); err != nil {
		return Limits{}, fmt.Errorf("compliance: limits %s: %w", source, err)
	}
	return out, nil
}

// Validate checks the limits are internally consistent.
func (l Limits) Validate() error {
	if l.Min < 1 {
		return fmt.Errorf("min must be at least 1, got %d", l.Min)
	}
	if l.Max < l.Min {
		return fmt.Errorf("max %d is below min %d", l.Max, l.Min)
	}
	for _, macro := range l.Macros {
		if !isXMLName(macro) {
			return fmt.Errorf("macro %q is not a valid XML name", macro)
		}
	}
	for macro, limit := range l.PerMacro {
		if limit < 0 {
			return fmt.Errorf("per_macro limit for %q is negative", macro)
		}
	}
	for i, box := range l.Envelopes {
		if box.Min.X > box.Max.X || box.Min.Y > box.Max.Y || box.Min.Z > box.Max.Z {
			return fmt.Errorf("envelope %d (%s) has min above max", i, box.Name)
		}
	}
	return nil
}

func (l Limits) clone() Limits {
	out := l
	out.Macros = append([]string(nil), l.Macros...)
	out.PoseOptional = append([]string(nil), l.PoseOptional...)
	out.Envelopes = append([]Box(nil), l.Envelopes...)
	if l.PerMacro != nil {
		out.PerMacro = make(map[string]int, len(l.PerMacro))
		for k, v := range l.PerMacro {
			out.PerMacro[k] = v
		}
	}
	return out
}

func (l Limits) allowsMacro(macro string) bool {
	if len(l.Macros) == 0 {
		return true
	}
	return slices.Contains(l.Macros, macro)
}
