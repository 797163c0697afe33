package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-wamvgen/internal/cli"
	"github.com/goliatone/go-wamvgen/internal/prompt"
	"github.com/goliatone/go-wamvgen/pkg/emitter"
	"github.com/goliatone/go-wamvgen/pkg/xacro"
)

const thrusterLayout = `engine:
  - prefix: left
    position: "-2.373776 1.027135 0.318237"
    orientation: "0.0 0.0 0.0"
  - prefix: right
    position: "-2.373776 -1.027135 0.318237"
    orientation: "0.0 0.0 0.0"
`

func writeLayout(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "failed to set up layout")
	return path
}

type recorder struct {
	commands []xacro.Command
	err      error
}

func (r *recorder) Run(_ context.Context, cmd xacro.Command) error {
	r.commands = append(r.commands, cmd)
	return r.err
}

type fakeDriver struct {
	inputs  []string
	confirm bool
}

func (d *fakeDriver) Input(context.Context, prompt.InputConfig) (string, error) {
	answer := d.inputs[0]
	d.inputs = d.inputs[1:]
	return answer, nil
}

func (d *fakeDriver) Confirm(context.Context, prompt.ConfirmConfig) (bool, error) {
	return d.confirm, nil
}

func TestRun_ShouldExit(t *testing.T) {
	out := &bytes.Buffer{}
	err := run(context.Background(), out, []string{"-h"}, env{})
	require.NoError(t, err, "run() should return a nil error when help is requested")
	require.Contains(t, out.String(), "Usage:")
}

func TestRun_ParseError(t *testing.T) {
	err := run(context.Background(), &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"}, env{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
	require.Equal(t, cli.ExitUsage, cli.Classify(err).Code)
}

func TestRun_GeneratesAndExpands(t *testing.T) {
	dir := t.TempDir()
	thrusters := writeLayout(t, dir, "thrusters.yaml", thrusterLayout)
	target := filepath.Join(dir, "wamv.urdf")
	runner := &recorder{}

	err := run(context.Background(), &bytes.Buffer{}, []string{
		"-thruster_yaml", thrusters,
		"-wamv_target", target,
		"-wamv_gazebo", "wamv_gazebo.urdf.xacro",
	}, env{runner: runner})
	require.NoError(t, err)

	require.FileExists(t, filepath.Join(dir, "thrusters.xacro"))
	require.Len(t, runner.commands, 1)
	require.Contains(t, runner.commands[0].Args, "thruster_xacro_file:="+filepath.Join(dir, "thrusters.xacro"))
}

func TestRun_DryRunPrintsCommand(t *testing.T) {
	dir := t.TempDir()
	thrusters := writeLayout(t, dir, "thrusters.yaml", thrusterLayout)
	runner := &recorder{}
	out := &bytes.Buffer{}

	err := run(context.Background(), out, []string{
		"-thruster_yaml", thrusters,
		"-wamv_target", "wamv.urdf",
		"-wamv_gazebo", "wamv_gazebo.urdf.xacro",
		"-dry-run",
	}, env{runner: runner})
	require.NoError(t, err)
	require.Empty(t, runner.commands)
	require.Contains(t, out.String(), "rosrun xacro xacro --inorder -o wamv.urdf wamv_gazebo.urdf.xacro")
}

func TestRun_ConfigurationErrorExitCode(t *testing.T) {
	dir := t.TempDir()
	sensors := writeLayout(t, dir, "sensors.yaml", "wamv_gps:\n  - x: 1\n")

	err := run(context.Background(), &bytes.Buffer{}, []string{
		"-sensor_yaml", sensors,
		"-wamv_target", "wamv.urdf",
		"-wamv_gazebo", "wamv_gazebo.urdf.xacro",
	}, env{runner: &recorder{}})
	require.Error(t, err)
	require.Equal(t, cli.ExitConfiguration, cli.Classify(err).Code)
	require.NoFileExists(t, filepath.Join(dir, "sensors.xacro"))
}

func TestRun_InvalidLimitsFile(t *testing.T) {
	dir := t.TempDir()
	limits := writeLayout(t, dir, "limits.yaml", "min: 3\nmax: 2\n")

	err := run(context.Background(), &bytes.Buffer{}, []string{
		"-limits-thruster", limits,
		"-wamv_target", "wamv.urdf",
		"-wamv_gazebo", "wamv_gazebo.urdf.xacro",
	}, env{runner: &recorder{}})
	require.Equal(t, cli.ExitConfiguration, cli.Classify(err).Code)
}

func TestRun_RunnerFailureExitCode(t *testing.T) {
	err := run(context.Background(), &bytes.Buffer{}, []string{
		"-wamv_target", "wamv.urdf",
		"-wamv_gazebo", "wamv_gazebo.urdf.xacro",
	}, env{runner: &recorder{err: errors.New("exit status 1")}})
	require.EqualError(t, err, "exit status 1")
	require.Equal(t, cli.ExitFailure, cli.Classify(err).Code)
}

func TestRun_InteractivePromptsAndConfirmsOverwrite(t *testing.T) {
	dir := t.TempDir()
	thrusters := writeLayout(t, dir, "thrusters.yaml", thrusterLayout)
	existing := writeLayout(t, dir, "thrusters.xacro", "keep me")
	target := filepath.Join(dir, "wamv.urdf")
	runner := &recorder{}

	err := run(context.Background(), &bytes.Buffer{}, []string{
		"-interactive",
		"-thruster_yaml", thrusters,
	}, env{runner: runner, driver: &fakeDriver{inputs: []string{target, "wamv_gazebo.urdf.xacro"}, confirm: false}})
	require.ErrorIs(t, err, emitter.ErrOverwriteDeclined)
	require.Empty(t, runner.commands)

	data, readErr := os.ReadFile(existing)
	require.NoError(t, readErr)
	require.Equal(t, "keep me", string(data))

	err = run(context.Background(), &bytes.Buffer{}, []string{
		"-interactive", "-force",
		"-thruster_yaml", thrusters,
		"-wamv_target", target,
		"-wamv_gazebo", "wamv_gazebo.urdf.xacro",
	}, env{runner: runner, driver: &fakeDriver{}})
	require.NoError(t, err)
	require.Len(t, runner.commands, 1)
	require.Equal(t, target, runner.commands[0].Args[4])
}
