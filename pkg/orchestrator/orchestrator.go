package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/goliatone/go-wamvgen/pkg/compliance"
	"github.com/goliatone/go-wamvgen/pkg/emitter"
	"github.com/goliatone/go-wamvgen/pkg/layout"
	"github.com/goliatone/go-wamvgen/pkg/markup"
	"github.com/goliatone/go-wamvgen/pkg/xacro"
)

// Pipeline names.
const (
	PipelineThruster = "thruster"
	PipelineSensor   = "sensor"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects the layout loader.
func WithLoader(loader layout.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithThrusterChecker replaces the thruster compliance checker.
func WithThrusterChecker(checker compliance.Checker) Option {
	return func(o *Orchestrator) {
		o.thrusterChecker = checker
	}
}

// WithSensorChecker replaces the sensor compliance checker.
func WithSensorChecker(checker compliance.Checker) Option {
	return func(o *Orchestrator) {
		o.sensorChecker = checker
	}
}

// WithEmitter injects the document writer.
func WithEmitter(e emitter.Emitter) Option {
	return func(o *Orchestrator) {
		o.emitter = e
	}
}

// WithRunner injects the xacro command runner.
func WithRunner(runner xacro.Runner) Option {
	return func(o *Orchestrator) {
		o.runner = runner
	}
}

// WithTemplates injects pre-parsed boilerplate templates.
func WithTemplates(templates *markup.Templates) Option {
	return func(o *Orchestrator) {
		o.templates = templates
	}
}

// WithCompanions overrides the companion includes declared by the
// boilerplate. Empty fields omit the include.
func WithCompanions(companions Companions) Option {
	return func(o *Orchestrator) {
		o.companions = &companions
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// Companions names the xacro files each boilerplate pair includes.
type Companions struct {
	Thruster     string
	GazeboThrust string
	Sensor       string
}

// DefaultCompanions returns the includes used by the VRX WAM-V description.
func DefaultCompanions() Companions {
	return Companions{
		Thruster:     markup.ThrusterCompanion,
		GazeboThrust: markup.GazeboThrustCompanion,
	}
}

// Orchestrator runs the thruster and sensor pipelines and then the xacro
// expansion. Missing collaborators fall back to the file based defaults.
type Orchestrator struct {
	loader          layout.Loader
	thrusterChecker compliance.Checker
	sensorChecker   compliance.Checker
	emitter         emitter.Emitter
	runner          xacro.Runner
	templates       *markup.Templates
	companions      *Companions
	logger          *slog.Logger

	thrusterAssembler *markup.Assembler
	gazeboAssembler   *markup.Assembler
	sensorAssembler   *markup.Assembler

	initialiseErr error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request is the typed replacement for the thruster_yaml, sensor_yaml,
// wamv_target and wamv_gazebo parameters.
type Request struct {
	// ThrusterYAML enables the thruster pipeline when non-empty.
	ThrusterYAML string
	// SensorYAML enables the sensor pipeline when non-empty.
	SensorYAML string
	WAMVTarget string
	WAMVGazebo string
	// DryRun writes the xacro files but does not run the expansion.
	DryRun bool
}

// Result reports what Generate produced.
type Result struct {
	ThrusterXacro string
	SensorXacro   string
	Command       xacro.Command
	// Executed is true once the expansion command ran successfully.
	Executed bool
}

// PipelineError attributes a failure to the thruster or sensor pipeline.
type PipelineError struct {
	Pipeline string
	Source   string
	Err      error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("orchestrator: %s pipeline: %v", e.Pipeline, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

type job struct {
	pipeline string
	source   string
	target   string
}

// Generate runs the requested pipelines in order, thruster first, then builds
// and runs the expansion command referencing the written files. A failing
// pipeline stops Generate before that pipeline writes anything; files from
// a pipeline that already succeeded stay on disk. Errors from the runner are
// returned unmodified.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := o.initialiseErr; err != nil {
		return Result{}, err
	}

	jobs, err := plan(req)
	if err != nil {
		return Result{}, err
	}

	var result Result
	params := xacro.Params{Target: req.WAMVTarget, Gazebo: req.WAMVGazebo}
	for _, j := range jobs {
		switch j.pipeline {
		case PipelineThruster:
			params.ThrusterXacro = j.target
		case PipelineSensor:
			params.SensorXacro = j.target
		}
	}
	cmd, err := xacro.BuildCommand(params)
	if err != nil {
		return Result{}, err
	}

	for _, j := range jobs {
		if err := o.runPipeline(ctx, j); err != nil {
			return result, &PipelineError{Pipeline: j.pipeline, Source: j.source, Err: err}
		}
		switch j.pipeline {
		case PipelineThruster:
			result.ThrusterXacro = j.target
		case PipelineSensor:
			result.SensorXacro = j.target
		}
	}
	result.Command = cmd

	if req.DryRun {
		o.logger.Info("dry run, skipping xacro expansion", "command", cmd.String())
		return result, nil
	}

	o.logger.Debug("running xacro expansion", "command", cmd.String())
	if err := o.runner.Run(ctx, cmd); err != nil {
		return result, err
	}
	result.Executed = true
	o.logger.Info("WAM-V urdf file successfully generated", "target", req.WAMVTarget)
	return result, nil
}

// Render validates src for the named pipeline and returns the xacro document
// without writing it.
func (o *Orchestrator) Render(pipeline string, src *layout.Source) (string, error) {
	if err := o.initialiseErr; err != nil {
		return "", err
	}

	var checker compliance.Checker
	switch pipeline {
	case PipelineThruster:
		checker = o.thrusterChecker
	case PipelineSensor:
		checker = o.sensorChecker
	default:
		return "", fmt.Errorf("orchestrator: unknown pipeline %q", pipeline)
	}

	if err := checker.CountCompliance(src); err != nil {
		return "", err
	}
	if err := checker.ParamCompliance(src); err != nil {
		return "", err
	}

	if pipeline == PipelineThruster {
		return o.renderThrusters(src)
	}
	return o.renderSensors(src)
}

func plan(req Request) ([]job, error) {
	var jobs []job
	for _, candidate := range []struct {
		pipeline string
		source   string
	}{
		{PipelineThruster, req.ThrusterYAML},
		{PipelineSensor, req.SensorYAML},
	} {
		if candidate.source == "" {
			continue
		}
		target, err := layout.RetargetExtension(candidate.source)
		if err != nil {
			return nil, &PipelineError{Pipeline: candidate.pipeline, Source: candidate.source, Err: err}
		}
		jobs = append(jobs, job{pipeline: candidate.pipeline, source: candidate.source, target: target})
	}

	if len(jobs) == 2 && samePath(jobs[0].target, jobs[1].target) {
		return nil, &layout.ConfigurationError{
			Kind:   layout.KindTargetCollision,
			Source: req.SensorYAML,
			Detail: fmt.Sprintf("thruster and sensor layouts would both be written to %s", jobs[0].target),
		}
	}
	return jobs, nil
}

func samePath(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

func (o *Orchestrator) runPipeline(ctx context.Context, j job) error {
	logger := o.logger.With("pipeline", j.pipeline, "source", j.source)

	src, err := o.loader.Load(ctx, j.source)
	if err != nil {
		return err
	}
	logger.Debug("layout loaded", "entries", src.Len())

	doc, err := o.Render(j.pipeline, src)
	if err != nil {
		logger.Warn("layout rejected", "error", err)
		return err
	}

	if err := o.emitter.Emit(ctx, j.target, doc); err != nil {
		return err
	}
	logger.Info("xacro file written", "target", j.target, "entries", src.Len())
	return nil
}

func (o *Orchestrator) renderThrusters(src *layout.Source) (string, error) {
	bp, err := o.templates.Boilerplate(markup.PairThruster, o.companions.Thruster)
	if err != nil {
		return "", err
	}
	gz, err := o.templates.Boilerplate(markup.PairGazeboThrust, o.companions.GazeboThrust)
	if err != nil {
		return "", err
	}
	cfg, err := markup.GazeboThrusterConfig(src)
	if err != nil {
		return "", err
	}

	plugin := o.gazeboAssembler.Assemble(cfg, gz)
	return o.thrusterAssembler.Assemble(src, markup.Boilerplate{Top: bp.Top, Bottom: bp.Bottom + plugin}), nil
}

func (o *Orchestrator) renderSensors(src *layout.Source) (string, error) {
	bp, err := o.templates.Boilerplate(markup.PairSensor, o.companions.Sensor)
	if err != nil {
		return "", err
	}
	return o.sensorAssembler.Assemble(src, bp), nil
}

func (o *Orchestrator) applyDefaults() {
	if o.loader == nil {
		o.loader = layout.NewFileLoader()
	}
	if o.thrusterChecker == nil {
		o.thrusterChecker = compliance.NewThruster(compliance.ThrusterLimits())
	}
	if o.sensorChecker == nil {
		o.sensorChecker = compliance.NewSensor(compliance.SensorLimits())
	}
	if o.emitter == nil {
		o.emitter = emitter.New()
	}
	if o.runner == nil {
		o.runner = xacro.ExecRunner{Stdout: os.Stdout, Stderr: os.Stderr}
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.companions == nil {
		companions := DefaultCompanions()
		o.companions = &companions
	}
	if o.templates == nil {
		templates, err := markup.NewTemplates()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: boilerplate templates: %w", err)
		}
		o.templates = templates
	}

	o.thrusterAssembler = markup.New(markup.WithIndent("  "))
	o.gazeboAssembler = markup.New(markup.WithIndent("      "))
	o.sensorAssembler = markup.New(markup.WithIndent("    "))
}
