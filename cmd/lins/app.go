package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/sandeepkv93/lins/internal/autostart"
	"github.com/sandeepkv93/lins/internal/config"
	"github.com/sandeepkv93/lins/internal/logging"
	"github.com/sandeepkv93/lins/internal/notify"
	"github.com/sandeepkv93/lins/internal/presence"
	"github.com/sandeepkv93/lins/internal/scheduler"
	"github.com/sandeepkv93/lins/internal/settings"
	"github.com/sandeepkv93/lins/internal/storage"
	"github.com/sandeepkv93/lins/internal/tasks"
)

// app holds the wired components shared by every subcommand.
type app struct {
	cfg      config.RuntimeConfig
	log      logging.Logger
	tasks    *tasks.Store
	settings *settings.Store
	engine   *scheduler.Engine
	presence *presence.Machine
	desktop  notify.Presenter
	sound    *notify.SoundPlayer
	closers  []func() error
}

func resolveConfig() config.RuntimeConfig {
	cfg := config.RuntimeConfigFromEnv(config.DefaultRuntimeConfig())
	if v := strings.TrimSpace(tasksPath); v != "" {
		cfg.TasksPath = v
	}
	if v := strings.TrimSpace(settingsPath); v != "" {
		cfg.SettingsPath = v
	}
	switch strings.ToLower(strings.TrimSpace(storageKind)) {
	case config.StorageJSON:
		cfg.Storage = config.StorageJSON
	case config.StorageSQLite:
		cfg.Storage = config.StorageSQLite
	}
	return cfg
}

func newApp() (*app, error) {
	cfg := resolveConfig()
	base, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	log := base.With("session", uuid.NewString())
	ctx := context.Background()

	a := &app{cfg: cfg, log: log, presence: presence.New()}
	a.closers = append(a.closers, log.Sync)

	repo, err := openRepository(cfg)
	if err != nil {
		return nil, err
	}
	if closer, ok := repo.(interface{ Close() error }); ok {
		a.closers = append(a.closers, closer.Close)
	}
	a.tasks = tasks.NewStore(repo)
	if err := a.tasks.Load(ctx); err != nil {
		if tasks.IsCorrupt(err) {
			log.Warnf(ctx, "tasks document is corrupt, starting empty: %v", err)
		} else {
			log.Warnf(ctx, "load tasks: %v", err)
		}
	}
	for _, err := range a.tasks.Invalid() {
		log.Warnf(ctx, "tasks document: %v", err)
	}

	a.settings = settings.NewStore(cfg.SettingsPath, newRegistrar(log))
	if _, err := a.settings.Load(); err != nil {
		log.Warnf(ctx, "load settings, using defaults: %v", err)
	}

	a.engine = scheduler.NewEngine(a.tasks, a.settings, scheduler.Options{
		Period: cfg.PollInterval,
		Buffer: cfg.SchedulerBuffer,
		Logger: log,
	})

	if cfg.DesktopNotifications {
		a.desktop = notify.NewDesktop(log)
	} else {
		a.desktop = notify.Noop{}
	}
	a.sound = notify.NewSoundPlayer(cfg.AlertSound, log)

	log.Infof(ctx, "lins ready: tasks=%s (%s) settings=%s", repo.Location(), cfg.Storage, cfg.SettingsPath)
	return a, nil
}

func openRepository(cfg config.RuntimeConfig) (storage.TaskRepository, error) {
	if cfg.Storage == config.StorageSQLite {
		repo, err := storage.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite storage: %w", err)
		}
		return repo, nil
	}
	return storage.NewFileRepository(cfg.TasksPath), nil
}

func newRegistrar(log logging.Logger) autostart.Registrar {
	exe, err := os.Executable()
	if err != nil {
		log.Warnf(context.Background(), "resolve executable for autostart: %v", err)
		return &autostart.Memory{}
	}
	reg, err := autostart.NewDefault(exe)
	if err != nil {
		log.Warnf(context.Background(), "autostart unavailable: %v", err)
		return &autostart.Memory{}
	}
	return reg
}

// shutdown persists state and stops the scheduler. Safe to call twice.
func (a *app) shutdown() {
	ctx := context.Background()
	a.engine.Stop()
	if err := a.settings.Persist(); err != nil {
		a.log.Errorf(ctx, "save settings: %v", err)
	}
	if err := a.tasks.Save(ctx); err != nil {
		a.log.Errorf(ctx, "save tasks: %v", err)
	}
}

func (a *app) close() {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		a.log.Debugf(context.Background(), "close: %v", err)
	}
}
