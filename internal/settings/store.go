package settings

import (
	"encoding/json"
	"errors"
	"os"
	"strings"
	"sync"

	"github.com/sandeepkv93/lins/internal/autostart"
	"github.com/sandeepkv93/lins/internal/model"
	"github.com/sandeepkv93/lins/internal/storage"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const (
	keyWidth         = "width"
	keyHeight        = "height"
	keyX             = "x"
	keyY             = "y"
	keyState         = "state"
	keyNotifications = "notifications_enabled"
	keyRepeat        = "repeat_interval"
	keySound         = "sound_enabled"
	keyAutostart     = "autostart_enabled"
)

type document struct {
	Width                int    `json:"width"`
	Height               int    `json:"height"`
	X                    *int   `json:"x"`
	Y                    *int   `json:"y"`
	State                string `json:"state"`
	NotificationsEnabled bool   `json:"notifications_enabled"`
	RepeatInterval       int    `json:"repeat_interval"`
	SoundEnabled         bool   `json:"sound_enabled"`
	AutostartEnabled     bool   `json:"autostart_enabled"`
}

// Store holds the authoritative settings for the running session. It is safe
// for concurrent use by the host and the scheduler.
type Store struct {
	mu        sync.RWMutex
	current   Settings
	path      string
	registrar autostart.Registrar
}

func NewStore(path string, registrar autostart.Registrar) *Store {
	if registrar == nil {
		registrar = &autostart.Memory{}
	}
	return &Store{
		current:   Defaults(),
		path:      strings.TrimSpace(path),
		registrar: registrar,
	}
}

func (s *Store) Path() string {
	return s.path
}

// Load reads the settings file. A missing file yields defaults and no error;
// an unreadable or malformed file yields defaults and a
// *model.PersistenceError. Each key falls back to its own default.
// autostart_enabled always reflects the registrar when it answers.
func (s *Store) Load() (Settings, error) {
	out := Defaults()
	registered, regErr := s.registrar.IsEnabled()
	if regErr == nil {
		out.AutostartEnabled = registered
	}

	var loadErr error
	if _, err := os.Stat(s.path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			loadErr = &model.PersistenceError{Op: "load settings", Path: s.path, Err: err}
		}
	} else {
		v := viper.New()
		v.SetConfigFile(s.path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			loadErr = &model.PersistenceError{Op: "load settings", Path: s.path, Err: err}
		} else {
			out = merge(v, out, regErr != nil)
		}
	}

	s.mu.Lock()
	s.current = out
	s.mu.Unlock()
	return clone(out), loadErr
}

// merge overlays file values on out. The saved autostart flag is used only
// when the registrar could not report the OS state.
func merge(v *viper.Viper, out Settings, fileAutostart bool) Settings {
	if n, ok := positiveInt(v, keyWidth); ok {
		out.Window.Width = n
	}
	if n, ok := positiveInt(v, keyHeight); ok {
		out.Window.Height = n
	}
	out.Window.X = coordinate(v, keyX)
	out.Window.Y = coordinate(v, keyY)
	if st, err := cast.ToStringE(v.Get(keyState)); err == nil && (st == StateNormal || st == StateZoomed) {
		out.Window.State = st
	}
	if b, ok := boolValue(v, keyNotifications); ok {
		out.NotificationsEnabled = b
	}
	if b, ok := boolValue(v, keySound); ok {
		out.SoundEnabled = b
	}
	if b, ok := boolValue(v, keyAutostart); ok && fileAutostart {
		out.AutostartEnabled = b
	}
	if v.IsSet(keyRepeat) {
		if n, err := cast.ToIntE(v.Get(keyRepeat)); err == nil && n >= 0 {
			out.RepeatInterval = n
		}
	}
	return out
}

func positiveInt(v *viper.Viper, key string) (int, bool) {
	if !v.IsSet(key) {
		return 0, false
	}
	n, err := cast.ToIntE(v.Get(key))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func coordinate(v *viper.Viper, key string) *int {
	raw := v.Get(key)
	if raw == nil {
		return nil
	}
	n, err := cast.ToIntE(raw)
	if err != nil || n <= offscreenLimit {
		return nil
	}
	return &n
}

func boolValue(v *viper.Viper, key string) (bool, bool) {
	if !v.IsSet(key) {
		return false, false
	}
	b, ok := v.Get(key).(bool)
	return b, ok
}

// Save fully overwrites the settings file with in and makes it current.
// A write failure is returned but the in-memory value still wins.
func (s *Store) Save(in Settings) error {
	s.mu.Lock()
	s.current = clone(in)
	s.mu.Unlock()

	doc := document{
		Width:                in.Window.Width,
		Height:               in.Window.Height,
		X:                    in.Window.X,
		Y:                    in.Window.Y,
		State:                in.Window.State,
		NotificationsEnabled: in.NotificationsEnabled,
		RepeatInterval:       in.RepeatInterval,
		SoundEnabled:         in.SoundEnabled,
		AutostartEnabled:     in.AutostartEnabled,
	}
	payload, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return &model.PersistenceError{Op: "save settings", Path: s.path, Err: err}
	}
	if err := storage.WriteFileAtomic(s.path, append(payload, '\n')); err != nil {
		return &model.PersistenceError{Op: "save settings", Path: s.path, Err: err}
	}
	return nil
}

// Persist saves the current settings.
func (s *Store) Persist() error {
	return s.Save(s.Current())
}

func (s *Store) Current() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.current)
}

// Update applies fn under the write lock and returns the result.
func (s *Store) Update(fn func(*Settings)) Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.current)
	return clone(s.current)
}

// SetAutostart registers or unregisters the login entry and records the flag
// only when the registrar succeeds.
func (s *Store) SetAutostart(enabled bool) error {
	if err := s.registrar.SetEnabled(enabled); err != nil {
		return err
	}
	s.Update(func(cur *Settings) { cur.AutostartEnabled = enabled })
	return nil
}
