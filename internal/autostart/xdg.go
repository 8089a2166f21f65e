//go:build !windows

package autostart

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// XDG manages a desktop entry under $XDG_CONFIG_HOME/autostart.
type XDG struct {
	Dir     string
	Command string
}

// NewDefault returns the platform registrar launching command at login.
func NewDefault(command string) (Registrar, error) {
	dir := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME"))
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("autostart: resolve home: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return &XDG{Dir: filepath.Join(dir, "autostart"), Command: command}, nil
}

func (x *XDG) path() string {
	return filepath.Join(x.Dir, strings.ToLower(AppName)+".desktop")
}

func (x *XDG) SetEnabled(enabled bool) error {
	if !enabled {
		if err := os.Remove(x.path()); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("autostart: remove entry: %w", err)
		}
		return nil
	}
	if strings.TrimSpace(x.Command) == "" {
		return errors.New("autostart: command is required")
	}
	if err := os.MkdirAll(x.Dir, 0o755); err != nil {
		return fmt.Errorf("autostart: create dir: %w", err)
	}
	entry := strings.Join([]string{
		"[Desktop Entry]",
		"Type=Application",
		"Name=Lins",
		"Exec=" + x.Command,
		"X-GNOME-Autostart-enabled=true",
		"",
	}, "\n")
	if err := os.WriteFile(x.path(), []byte(entry), 0o644); err != nil {
		return fmt.Errorf("autostart: write entry: %w", err)
	}
	return nil
}

func (x *XDG) IsEnabled() (bool, error) {
	raw, err := os.ReadFile(x.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("autostart: read entry: %w", err)
	}
	for _, line := range strings.Split(string(raw), "\n") {
		if v, ok := strings.CutPrefix(strings.TrimSpace(line), "Exec="); ok {
			return strings.TrimSpace(v) != "", nil
		}
	}
	return false, nil
}
