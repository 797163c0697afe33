package prompt

import (
	"context"
	"fmt"
	"strings"
)

// Field is one parameter the operator may be asked for.
type Field struct {
	// Name is the parameter key, e.g. wamv_target.
	Name string
	Help string
	// Optional fields accept an empty answer.
	Optional bool
	// Value points at the current value; it is only asked for when empty.
	Value *string
}

// Fill asks for every field whose value is empty, in order. Answers are
// trimmed before they are stored.
func Fill(ctx context.Context, driver Driver, fields ...Field) error {
	for _, field := range fields {
		if field.Value == nil || strings.TrimSpace(*field.Value) != "" {
			continue
		}
		cfg := InputConfig{
			Message: field.Name + ":",
			Help:    field.Help,
		}
		if !field.Optional {
			cfg.Validator = NotBlank
		}
		answer, err := driver.Input(ctx, cfg)
		if err != nil {
			return fmt.Errorf("prompt: %s: %w", field.Name, err)
		}
		*field.Value = strings.TrimSpace(answer)
	}
	return nil
}

// OverwriteConfirm returns a hook suitable for emitter.WithConfirm that asks
// before an existing file is replaced. Declining keeps the file.
func OverwriteConfirm(driver Driver) func(ctx context.Context, path string) (bool, error) {
	return func(ctx context.Context, path string) (bool, error) {
		return driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("%s exists. Overwrite?", path),
			Default: false,
		})
	}
}
