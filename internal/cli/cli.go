package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/goliatone/go-wamvgen/pkg/layout"
)

// Exit codes.
const (
	ExitFailure       = 1
	ExitUsage         = 2
	ExitConfiguration = 3
)

// ExitError is an error carrying the process exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Config is the parsed command line.
type Config struct {
	ThrusterYAML string
	SensorYAML   string
	WAMVTarget   string
	WAMVGazebo   string

	// ThrusterLimits and SensorLimits name optional YAML files overriding
	// the built in compliance limits.
	ThrusterLimits string
	SensorLimits   string

	DryRun      bool
	Interactive bool
	Force       bool

	LogFormat string
	LogLevel  string
}

// Parse processes command-line arguments. It returns the Config, whether the
// program should exit cleanly (help was requested), or an ExitError.
func Parse(args []string, output io.Writer) (*Config, bool, error) {
	flagSet := flag.NewFlagSet("wamvgen", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
wamvgen - generate WAM-V thruster and sensor xacro files and expand them into a URDF.

Usage:
  wamvgen -wamv_target <urdf> -wamv_gazebo <xacro> [-thruster_yaml <yaml>] [-sensor_yaml <yaml>] [options]

Options:
`)
		flagSet.PrintDefaults()
	}

	cfg := &Config{}
	flagSet.StringVar(&cfg.ThrusterYAML, "thruster_yaml", "", "Thruster layout YAML. Enables thruster generation.")
	flagSet.StringVar(&cfg.SensorYAML, "sensor_yaml", "", "Sensor layout YAML. Enables sensor generation.")
	flagSet.StringVar(&cfg.WAMVTarget, "wamv_target", "", "URDF file to produce.")
	flagSet.StringVar(&cfg.WAMVGazebo, "wamv_gazebo", "", "Top level WAM-V gazebo xacro to expand.")
	flagSet.StringVar(&cfg.ThrusterLimits, "limits-thruster", "", "YAML file overriding the thruster compliance limits.")
	flagSet.StringVar(&cfg.SensorLimits, "limits-sensor", "", "YAML file overriding the sensor compliance limits.")
	flagSet.BoolVar(&cfg.DryRun, "dry-run", false, "Write the xacro files and print the expansion command without running it.")
	flagSet.BoolVar(&cfg.Interactive, "interactive", false, "Prompt for missing parameters and before overwriting files.")
	flagSet.BoolVar(&cfg.Force, "force", false, "Overwrite existing xacro files without asking.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	if flagSet.NArg() > 0 {
		return nil, false, &ExitError{Code: ExitUsage, Message: fmt.Sprintf("unexpected argument %q", flagSet.Arg(0))}
	}

	cfg.LogFormat = strings.ToLower(*logFormatFlag)
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	cfg.LogLevel = strings.ToLower(*logLevelFlag)
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	// Interactive runs ask for these later.
	if !cfg.Interactive {
		if strings.TrimSpace(cfg.WAMVTarget) == "" {
			return nil, false, &ExitError{Code: ExitUsage, Message: "-wamv_target is required"}
		}
		if strings.TrimSpace(cfg.WAMVGazebo) == "" {
			return nil, false, &ExitError{Code: ExitUsage, Message: "-wamv_gazebo is required"}
		}
	}
	return cfg, false, nil
}

// NewLogger builds the process logger. Unknown levels fall back to info and
// any format other than json yields the text handler.
func NewLogger(out io.Writer, format, level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(out, opts))
	}
	return slog.New(slog.NewTextHandler(out, opts))
}

// Classify wraps err in an ExitError with the matching code: configuration
// errors exit with 3, everything else with 1. ExitErrors pass through.
func Classify(err error) *ExitError {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	if _, ok := layout.AsConfigurationError(err); ok {
		return &ExitError{Code: ExitConfiguration, Message: err.Error()}
	}
	return &ExitError{Code: ExitFailure, Message: err.Error()}
}
