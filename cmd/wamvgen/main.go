package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/goliatone/go-wamvgen/internal/cli"
	"github.com/goliatone/go-wamvgen/internal/prompt"
	"github.com/goliatone/go-wamvgen/pkg/compliance"
	"github.com/goliatone/go-wamvgen/pkg/emitter"
	"github.com/goliatone/go-wamvgen/pkg/orchestrator"
	"github.com/goliatone/go-wamvgen/pkg/xacro"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := run(ctx, os.Stdout, os.Args[1:], env{})
	stop()
	if exitErr := cli.Classify(err); exitErr != nil {
		fmt.Fprintln(os.Stderr, exitErr.Message)
		os.Exit(exitErr.Code)
	}
}

// env carries the collaborators tests replace. Nil fields use the real
// subprocess runner and the survey prompts.
type env struct {
	runner xacro.Runner
	driver prompt.Driver
}

func run(ctx context.Context, out io.Writer, args []string, e env) error {
	cfg, shouldExit, err := cli.Parse(args, out)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	logger := cli.NewLogger(out, cfg.LogFormat, cfg.LogLevel)

	driver := e.driver
	if driver == nil && cfg.Interactive {
		driver = prompt.NewSurvey()
	}

	if cfg.Interactive {
		err := prompt.Fill(ctx, driver,
			prompt.Field{Name: "wamv_target", Help: "URDF file to produce", Value: &cfg.WAMVTarget},
			prompt.Field{Name: "wamv_gazebo", Help: "WAM-V gazebo xacro to expand", Value: &cfg.WAMVGazebo},
		)
		if err != nil {
			return err
		}
	}

	thrusterLimits, sensorLimits, err := loadLimits(cfg)
	if err != nil {
		return err
	}

	options := []orchestrator.Option{
		orchestrator.WithThrusterChecker(compliance.NewThruster(thrusterLimits)),
		orchestrator.WithSensorChecker(compliance.NewSensor(sensorLimits)),
		orchestrator.WithLogger(logger),
	}
	if cfg.Interactive && !cfg.Force {
		options = append(options, orchestrator.WithEmitter(emitter.New(emitter.WithConfirm(prompt.OverwriteConfirm(driver)))))
	}
	if e.runner != nil {
		options = append(options, orchestrator.WithRunner(e.runner))
	} else {
		options = append(options, orchestrator.WithRunner(xacro.ExecRunner{Stdout: out, Stderr: os.Stderr}))
	}

	result, err := orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		ThrusterYAML: cfg.ThrusterYAML,
		SensorYAML:   cfg.SensorYAML,
		WAMVTarget:   cfg.WAMVTarget,
		WAMVGazebo:   cfg.WAMVGazebo,
		DryRun:       cfg.DryRun,
	})
	if err != nil {
		return err
	}
	if cfg.DryRun {
		fmt.Fprintln(out, result.Command.String())
	}
	return nil
}

func loadLimits(cfg *cli.Config) (compliance.Limits, compliance.Limits, error) {
	thruster := compliance.ThrusterLimits()
	sensor := compliance.SensorLimits()

	var err error
	if cfg.ThrusterLimits != "" {
		if thruster, err = compliance.LoadLimits(cfg.ThrusterLimits, thruster); err != nil {
			return thruster, sensor, &cli.ExitError{Code: cli.ExitConfiguration, Message: err.Error()}
		}
	}
	if cfg.SensorLimits != "" {
		if sensor, err = compliance.LoadLimits(cfg.SensorLimits, sensor); err != nil {
			return thruster, sensor, &cli.ExitError{Code: cli.ExitConfiguration, Message: err.Error()}
		}
	}
	return thruster, sensor, nil
}
