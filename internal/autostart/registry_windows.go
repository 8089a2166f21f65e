//go:build windows

package autostart

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows/registry"
)

const runKey = `Software\Microsoft\Windows\CurrentVersion\Run`

// RunKey manages a value under HKCU\...\CurrentVersion\Run.
type RunKey struct {
	Command string
}

func NewDefault(command string) (Registrar, error) {
	return &RunKey{Command: command}, nil
}

func (r *RunKey) SetEnabled(enabled bool) error {
	key, err := registry.OpenKey(registry.CURRENT_USER, runKey, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("autostart: open run key: %w", err)
	}
	defer key.Close()

	if enabled {
		if err := key.SetStringValue(AppName, fmt.Sprintf("%q", r.Command)); err != nil {
			return fmt.Errorf("autostart: set value: %w", err)
		}
		return nil
	}
	if err := key.DeleteValue(AppName); err != nil && !errors.Is(err, registry.ErrNotExist) {
		return fmt.Errorf("autostart: delete value: %w", err)
	}
	return nil
}

func (r *RunKey) IsEnabled() (bool, error) {
	key, err := registry.OpenKey(registry.CURRENT_USER, runKey, registry.QUERY_VALUE)
	if err != nil {
		return false, fmt.Errorf("autostart: open run key: %w", err)
	}
	defer key.Close()

	value, _, err := key.GetStringValue(AppName)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("autostart: query value: %w", err)
	}
	return value != "", nil
}
