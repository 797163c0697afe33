package layout

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a ConfigurationError.
type Kind string

const (
	KindCountOutOfBounds            Kind = "entry count out of bounds"
	KindMissingOrMalformedAttribute Kind = "missing or malformed attribute"
	KindMalformedIdentifier         Kind = "malformed identifier"
	KindDuplicateEntry              Kind = "duplicate entry"
	KindMalformedDocument           Kind = "malformed document"
	KindPoseOutsideEnvelope         Kind = "pose outside envelope"
	KindTargetCollision             Kind = "target collision"
)

// ConfigurationError reports user configuration that cannot be turned into a
// xacro file. It is always fatal to the pipeline that raised it.
type ConfigurationError struct {
	Kind Kind
	// Source is the layout identifier, when known.
	Source string
	// Entry is the offending entry key, when the failure is entry specific.
	Entry string
	// Attribute is the offending attribute name.
	Attribute string
	Detail    string
}

func (e *ConfigurationError) Error() string {
	var b strings.Builder
	b.WriteString("configuration error: ")
	b.WriteString(string(e.Kind))
	if e.Source != "" {
		fmt.Fprintf(&b, " in %s", e.Source)
	}
	if e.Entry != "" {
		fmt.Fprintf(&b, ": entry %q", e.Entry)
	}
	if e.Attribute != "" {
		fmt.Fprintf(&b, " attribute %q", e.Attribute)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

// IsKind reports whether err wraps a ConfigurationError of the given kind.
func IsKind(err error, kind Kind) bool {
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		return false
	}
	return cfgErr.Kind == kind
}

// AsConfigurationError unwraps err into a ConfigurationError.
func AsConfigurationError(err error) (*ConfigurationError, bool) {
	var cfgErr *ConfigurationError
	if errors.As(err, &cfgErr) {
		return cfgErr, true
	}
	return nil, false
}
