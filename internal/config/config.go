// Package config resolves runtime options from defaults and LINS_* variables.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/lins/internal/logging"
)

const (
	StorageJSON   = "json"
	StorageSQLite = "sqlite"
)

type RuntimeConfig struct {
	TasksPath            string
	SettingsPath         string
	Storage              string
	SQLitePath           string
	PollInterval         time.Duration
	AlertSound           string
	DesktopNotifications bool
	SchedulerBuffer      int
	Log                  logging.Config
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		TasksPath:            "tasks.json",
		SettingsPath:         "settings.json",
		Storage:              StorageJSON,
		SQLitePath:           "lins.db",
		PollInterval:         10 * time.Second,
		AlertSound:           "assets/alert.wav",
		DesktopNotifications: true,
		SchedulerBuffer:      64,
		Log: logging.Config{
			Level:      "info",
			Encoding:   "console",
			OutputPath: "lins.log",
		},
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvString("LINS_TASKS_FILE"); ok {
		cfg.TasksPath = v
	}
	if v, ok := getEnvString("LINS_SETTINGS_FILE"); ok {
		cfg.SettingsPath = v
	}
	if v, ok := getEnvString("LINS_STORAGE"); ok {
		switch strings.ToLower(v) {
		case StorageJSON, StorageSQLite:
			cfg.Storage = strings.ToLower(v)
		}
	}
	if v, ok := getEnvString("LINS_SQLITE_PATH"); ok {
		cfg.SQLitePath = v
	}
	if v, ok := getEnvInt("LINS_POLL_SECONDS"); ok && v > 0 {
		cfg.PollInterval = time.Duration(v) * time.Second
	}
	if v, ok := getEnvString("LINS_ALERT_SOUND"); ok {
		cfg.AlertSound = v
	}
	if v, ok := getEnvBool("LINS_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvInt("LINS_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	if v, ok := getEnvString("LINS_LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	if v, ok := getEnvString("LINS_LOG_FILE"); ok {
		cfg.Log.OutputPath = v
	}
	if v, ok := getEnvString("LINS_LOG_ENCODING"); ok {
		cfg.Log.Encoding = v
	}
	return cfg
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	return raw, raw != ""
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
