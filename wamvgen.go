// Package wamvgen turns thruster and sensor layout YAML files into xacro
// fragments for the VRX WAM-V and expands them into a URDF.
package wamvgen

import (
	"context"

	"github.com/goliatone/go-wamvgen/pkg/compliance"
	"github.com/goliatone/go-wamvgen/pkg/layout"
	"github.com/goliatone/go-wamvgen/pkg/orchestrator"
)

// Request aliases orchestrator.Request for callers of the root package.
type Request = orchestrator.Request

// Result aliases orchestrator.Result.
type Result = orchestrator.Result

// ConfigurationError aliases the typed layout error returned by every
// compliance check.
type ConfigurationError = layout.ConfigurationError

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Generate runs the thruster and sensor pipelines named by req and then the
// xacro expansion.
func Generate(ctx context.Context, req Request, options ...orchestrator.Option) (Result, error) {
	return orchestrator.New(options...).Generate(ctx, req)
}

// RetargetExtension maps a layout path to the xacro path written next to it.
func RetargetExtension(identifier string) (string, error) {
	return layout.RetargetExtension(identifier)
}

// WithLimits swaps in compliance checkers built from custom limits.
func WithLimits(thruster, sensor compliance.Limits) []orchestrator.Option {
	return []orchestrator.Option{
		orchestrator.WithThrusterChecker(compliance.NewThruster(thruster)),
		orchestrator.WithSensorChecker(compliance.NewSensor(sensor)),
	}
}
