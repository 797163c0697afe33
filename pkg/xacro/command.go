// Package xacro builds and runs the xacro command line that expands the
// WAM-V gazebo description, together with any generated thruster and sensor
// xacro files, into the final URDF.
package xacro

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"
)

// Params carries the inputs of the expansion command.
type Params struct {
	// Target is the URDF file to produce (wamv_target).
	Target string
	// Gazebo is the top level WAM-V gazebo xacro (wamv_gazebo).
	Gazebo string
	// ThrusterXacro and SensorXacro name generated files; empty means the
	// pipeline did not run.
	ThrusterXacro string
	SensorXacro   string
}

// Command is a program and its arguments, run without a shell.
type Command struct {
	Name string
	Args []string
}

// String renders the command for logs, quoted so a shell splits it back into
// the same words.
func (c Command) String() string {
	return shellquote.Join(append([]string{c.Name}, c.Args...)...)
}

// BuildCommand assembles
//
//	rosrun xacro xacro --inorder -o <target> <gazebo>
//	    [yaml_thruster_generation:=true thruster_xacro_file:=<file>]
//	    [yaml_sensor_generation:=true sensor_xacro_file:=<file>]
func BuildCommand(p Params) (Command, error) {
	if strings.TrimSpace(p.Target) == "" {
		return Command{}, errors.New("xacro: wamv_target is required")
	}
	if strings.TrimSpace(p.Gazebo) == "" {
		return Command{}, errors.New("xacro: wamv_gazebo is required")
	}

	args := []string{"xacro", "xacro", "--inorder", "-o", p.Target, p.Gazebo}
	if p.ThrusterXacro != "" {
		args = append(args, "yaml_thruster_generation:=true", "thruster_xacro_file:="+p.ThrusterXacro)
	}
	if p.SensorXacro != "" {
		args = append(args, "yaml_sensor_generation:=true", "sensor_xacro_file:="+p.SensorXacro)
	}
	return Command{Name: "rosrun", Args: args}, nil
}

// Runner executes an expansion command.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// ExecRunner runs commands as subprocesses.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

var _ Runner = ExecRunner{}

// Run starts the command and waits for it. The error from the subprocess is
// returned as is.
func (r ExecRunner) Run(ctx context.Context, cmd Command) error {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Stdout = r.Stdout
	c.Stderr = r.Stderr
	return c.Run()
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context, cmd Command) error

// Run calls f.
func (f RunnerFunc) Run(ctx context.Context, cmd Command) error {
	return f(ctx, cmd)
}
