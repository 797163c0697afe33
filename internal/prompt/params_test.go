package prompt_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-wamvgen/internal/prompt"
)

type scriptedDriver struct {
	answers  []string
	confirm  bool
	err      error
	messages []string
}

func (d *scriptedDriver) Input(_ context.Context, cfg prompt.InputConfig) (string, error) {
	d.messages = append(d.messages, cfg.Message)
	if d.err != nil {
		return "", d.err
	}
	answer := d.answers[0]
	d.answers = d.answers[1:]
	if cfg.Validator != nil {
		if err := cfg.Validator(answer); err != nil {
			return "", err
		}
	}
	return answer, nil
}

func (d *scriptedDriver) Confirm(_ context.Context, cfg prompt.ConfirmConfig) (bool, error) {
	d.messages = append(d.messages, cfg.Message)
	return d.confirm, d.err
}

func TestFill_AsksOnlyForEmptyFields(t *testing.T) {
	driver := &scriptedDriver{answers: []string{" out.urdf ", ""}}
	target := ""
	gazebo := "wamv_gazebo.urdf.xacro"
	sensors := ""

	err := prompt.Fill(context.Background(), driver,
		prompt.Field{Name: "wamv_target", Value: &target},
		prompt.Field{Name: "wamv_gazebo", Value: &gazebo},
		prompt.Field{Name: "sensor_yaml", Optional: true, Value: &sensors},
	)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if target != "out.urdf" || sensors != "" {
		t.Fatalf("unexpected values target=%q sensors=%q", target, sensors)
	}
	if diff := cmp.Diff([]string{"wamv_target:", "sensor_yaml:"}, driver.messages); diff != "" {
		t.Fatalf("prompts mismatch (-want +got):\n%s", diff)
	}
}

func TestFill_RequiredRejectsBlank(t *testing.T) {
	driver := &scriptedDriver{answers: []string{"   "}}
	target := ""
	err := prompt.Fill(context.Background(), driver, prompt.Field{Name: "wamv_target", Value: &target})
	if err == nil {
		t.Fatalf("expected blank answer to be rejected")
	}
}

func TestFill_PropagatesAbort(t *testing.T) {
	driver := &scriptedDriver{err: prompt.ErrAborted}
	target := ""
	err := prompt.Fill(context.Background(), driver, prompt.Field{Name: "wamv_target", Value: &target})
	if !errors.Is(err, prompt.ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestOverwriteConfirm(t *testing.T) {
	driver := &scriptedDriver{confirm: true}
	ok, err := prompt.OverwriteConfirm(driver)(context.Background(), "thrusters.xacro")
	if err != nil || !ok {
		t.Fatalf("expected confirmation, got %v %v", ok, err)
	}
	if diff := cmp.Diff([]string{"thrusters.xacro exists. Overwrite?"}, driver.messages); diff != "" {
		t.Fatalf("prompt mismatch (-want +got):\n%s", diff)
	}
}
