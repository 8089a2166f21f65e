// Package autostart registers the application to launch at login.
package autostart

// AppName is the entry name used by every backend.
const AppName = "Lins_Task_Manager"

type Registrar interface {
	SetEnabled(enabled bool) error
	IsEnabled() (bool, error)
}

// Memory is an in-process registrar for tests and unsupported platforms.
type Memory struct {
	Enabled bool
}

func (m *Memory) SetEnabled(enabled bool) error {
	m.Enabled = enabled
	return nil
}

func (m *Memory) IsEnabled() (bool, error) {
	return m.Enabled, nil
}
